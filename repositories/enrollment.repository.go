package repositories

import (
	"context"
	"time"

	courseModels "learnhub/models/course"

	"gorm.io/gorm"
)

type EnrollmentRepository struct {
	db *gorm.DB
}

func NewEnrollmentRepository(db *gorm.DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

func (r *EnrollmentRepository) Create(ctx context.Context, enrollment *courseModels.Enrollment) error {
	return translate(r.db.WithContext(ctx).Create(enrollment).Error, "create enrollment")
}

func (r *EnrollmentRepository) Exists(ctx context.Context, userID, courseID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&courseModels.Enrollment{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Count(&count).Error
	return count > 0, translate(err, "count enrollments")
}

func (r *EnrollmentRepository) FindByUserAndCourse(ctx context.Context, userID, courseID string) (courseModels.Enrollment, error) {
	var enrollment courseModels.Enrollment
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		First(&enrollment).Error
	return enrollment, translate(err, "find enrollment")
}

func (r *EnrollmentRepository) FindByCertificateHash(ctx context.Context, hash string) (courseModels.Enrollment, error) {
	var enrollment courseModels.Enrollment
	err := r.db.WithContext(ctx).
		Where("certificate_hash = ?", hash).
		First(&enrollment).Error
	return enrollment, translate(err, "find enrollment by certificate")
}

func (r *EnrollmentRepository) ListByUser(ctx context.Context, userID string) ([]courseModels.Enrollment, error) {
	var enrollments []courseModels.Enrollment
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("enrolled_at desc").
		Find(&enrollments).Error
	return enrollments, translate(err, "list enrollments")
}

// SetCertificateHash writes the hash only while the slot is still empty. It
// reports false when another writer got there first.
func (r *EnrollmentRepository) SetCertificateHash(ctx context.Context, enrollmentID, hash string, issuedAt time.Time) (bool, error) {
	result := r.db.WithContext(ctx).Model(&courseModels.Enrollment{}).
		Where("id = ? AND certificate_hash IS NULL", enrollmentID).
		Updates(map[string]interface{}{
			"certificate_hash":      hash,
			"certificate_issued_at": issuedAt,
		})
	if result.Error != nil {
		return false, translate(result.Error, "set certificate hash")
	}
	return result.RowsAffected == 1, nil
}
