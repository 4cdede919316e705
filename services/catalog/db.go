package catalog

import (
	"context"

	"learnhub/models"
	courseModels "learnhub/models/course"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DB serves catalog and identity facts from the local tables.
type DB struct {
	db *gorm.DB
}

var (
	_ Catalog  = (*DB)(nil)
	_ Identity = (*DB)(nil)
)

func NewDB(db *gorm.DB) *DB {
	return &DB{db: db}
}

func (c *DB) course(ctx context.Context, courseID string) (courseModels.Course, error) {
	var course courseModels.Course
	err := c.db.WithContext(ctx).
		Where("id = ? AND is_deleted = ?", courseID, false).
		First(&course).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return course, ErrCourseNotFound
	}
	return course, errors.Wrap(err, "load course")
}

func (c *DB) CourseExists(ctx context.Context, courseID string) (bool, error) {
	var count int64
	err := c.db.WithContext(ctx).Model(&courseModels.Course{}).
		Where("id = ? AND is_deleted = ?", courseID, false).
		Count(&count).Error
	return count > 0, errors.Wrap(err, "count courses")
}

func (c *DB) CourseTitle(ctx context.Context, courseID string) (string, error) {
	course, err := c.course(ctx, courseID)
	return course.Title, err
}

func (c *DB) CoursePrice(ctx context.Context, courseID string) (decimal.Decimal, error) {
	course, err := c.course(ctx, courseID)
	return course.Price, err
}

func (c *DB) InstructorName(ctx context.Context, courseID string) (string, error) {
	course, err := c.course(ctx, courseID)
	if err != nil {
		return "", err
	}
	if course.InstructorID == "" {
		return "", nil
	}
	name, err := c.UserDisplayName(ctx, course.InstructorID)
	if errors.Is(err, ErrUserNotFound) {
		return "", nil
	}
	return name, err
}

func (c *DB) classesInCourse(ctx context.Context, courseID string) *gorm.DB {
	return c.db.WithContext(ctx).Model(&courseModels.Class{}).
		Joins("JOIN modules ON modules.id = classes.module_id").
		Where("modules.course_id = ? AND modules.is_deleted = ? AND classes.is_deleted = ?", courseID, false, false)
}

func (c *DB) CountClassesInCourse(ctx context.Context, courseID string) (int, error) {
	var count int64
	err := c.classesInCourse(ctx, courseID).Count(&count).Error
	return int(count), errors.Wrap(err, "count classes")
}

func (c *DB) ClassIDsInCourse(ctx context.Context, courseID string) ([]string, error) {
	ids := []string{}
	err := c.classesInCourse(ctx, courseID).Pluck("classes.id", &ids).Error
	return ids, errors.Wrap(err, "list class ids")
}

func (c *DB) Outline(ctx context.Context, courseID string) ([]ModuleOutline, error) {
	if _, err := c.course(ctx, courseID); err != nil {
		return nil, err
	}

	var modules []courseModels.Module
	if err := c.db.WithContext(ctx).
		Where("course_id = ? AND is_deleted = ?", courseID, false).
		Order("order_index asc, created_at asc").
		Find(&modules).Error; err != nil {
		return nil, errors.Wrap(err, "list modules")
	}
	if len(modules) == 0 {
		return []ModuleOutline{}, nil
	}

	moduleIDs := make([]string, len(modules))
	for i, m := range modules {
		moduleIDs[i] = m.ID
	}
	var classes []courseModels.Class
	if err := c.db.WithContext(ctx).
		Where("module_id IN ? AND is_deleted = ?", moduleIDs, false).
		Order("order_index asc, created_at asc").
		Find(&classes).Error; err != nil {
		return nil, errors.Wrap(err, "list classes")
	}

	byModule := make(map[string][]ClassOutline, len(modules))
	for _, cl := range classes {
		byModule[cl.ModuleID] = append(byModule[cl.ModuleID], ClassOutline{ID: cl.ID, Title: cl.Title})
	}

	outline := make([]ModuleOutline, len(modules))
	for i, m := range modules {
		outline[i] = ModuleOutline{ID: m.ID, Title: m.Title, Classes: byModule[m.ID]}
		if outline[i].Classes == nil {
			outline[i].Classes = []ClassOutline{}
		}
	}
	return outline, nil
}

func (c *DB) ClassExists(ctx context.Context, classID string) (bool, error) {
	var count int64
	err := c.db.WithContext(ctx).Model(&courseModels.Class{}).
		Joins("JOIN modules ON modules.id = classes.module_id").
		Where("classes.id = ? AND classes.is_deleted = ? AND modules.is_deleted = ?", classID, false, false).
		Count(&count).Error
	return count > 0, errors.Wrap(err, "count classes")
}

func (c *DB) user(ctx context.Context, userID string) (models.User, error) {
	var user models.User
	err := c.db.WithContext(ctx).
		Where("id = ? AND is_deleted = ?", userID, false).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return user, ErrUserNotFound
	}
	return user, errors.Wrap(err, "load user")
}

func (c *DB) UserDisplayName(ctx context.Context, userID string) (string, error) {
	user, err := c.user(ctx, userID)
	return user.Name, err
}

func (c *DB) UserEmail(ctx context.Context, userID string) (string, error) {
	user, err := c.user(ctx, userID)
	return user.Email, err
}
