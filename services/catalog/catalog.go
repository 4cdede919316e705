// Package catalog holds the read-only collaborators the enrollment engine consumes:
// course facts and user identity. Course/module/class CRUD lives elsewhere.
package catalog

import (
	"context"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

var (
	ErrCourseNotFound = errors.New("course not found")
	ErrUserNotFound   = errors.New("user not found")
)

// Catalog answers questions about courses and their classes.
type Catalog interface {
	CourseExists(ctx context.Context, courseID string) (bool, error)
	CourseTitle(ctx context.Context, courseID string) (string, error)
	CoursePrice(ctx context.Context, courseID string) (decimal.Decimal, error)
	InstructorName(ctx context.Context, courseID string) (string, error)
	// CountClassesInCourse sums classes across every module of the course.
	CountClassesInCourse(ctx context.Context, courseID string) (int, error)
	ClassIDsInCourse(ctx context.Context, courseID string) ([]string, error)
	// Outline returns modules and their classes, both in display order.
	Outline(ctx context.Context, courseID string) ([]ModuleOutline, error)
	ClassExists(ctx context.Context, classID string) (bool, error)
}

// Identity resolves user facts owned by the auth side.
type Identity interface {
	UserDisplayName(ctx context.Context, userID string) (string, error)
	UserEmail(ctx context.Context, userID string) (string, error)
}

type ModuleOutline struct {
	ID      string         `json:"id"`
	Title   string         `json:"title"`
	Classes []ClassOutline `json:"classes"`
}

type ClassOutline struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}
