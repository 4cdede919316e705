package repositories

import (
	"context"

	courseModels "learnhub/models/course"

	"gorm.io/gorm"
)

type ProgressRepository struct {
	db *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{db: db}
}

func (r *ProgressRepository) Find(ctx context.Context, userID, classID string) (courseModels.ClassProgress, error) {
	var mark courseModels.ClassProgress
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND class_id = ?", userID, classID).
		First(&mark).Error
	return mark, translate(err, "find class progress")
}

func (r *ProgressRepository) Create(ctx context.Context, mark *courseModels.ClassProgress) error {
	return translate(r.db.WithContext(ctx).Create(mark).Error, "create class progress")
}

func (r *ProgressRepository) Delete(ctx context.Context, userID, classID string) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND class_id = ?", userID, classID).
		Delete(&courseModels.ClassProgress{}).Error
	return translate(err, "delete class progress")
}

// CountCompleted counts the user's marks restricted to classIDs.
func (r *ProgressRepository) CountCompleted(ctx context.Context, userID string, classIDs []string) (int64, error) {
	if len(classIDs) == 0 {
		return 0, nil
	}
	var count int64
	err := r.db.WithContext(ctx).Model(&courseModels.ClassProgress{}).
		Where("user_id = ? AND class_id IN ?", userID, classIDs).
		Count(&count).Error
	return count, translate(err, "count class progress")
}

// CompletedClassIDs returns which of classIDs the user has marked, in one query.
func (r *ProgressRepository) CompletedClassIDs(ctx context.Context, userID string, classIDs []string) ([]string, error) {
	ids := []string{}
	if len(classIDs) == 0 {
		return ids, nil
	}
	err := r.db.WithContext(ctx).Model(&courseModels.ClassProgress{}).
		Where("user_id = ? AND class_id IN ?", userID, classIDs).
		Pluck("class_id", &ids).Error
	return ids, translate(err, "list completed classes")
}
