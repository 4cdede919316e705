package enrollment

import (
	"context"
	"math"
	"time"

	courseModels "learnhub/models/course"
	"learnhub/repositories"
	"learnhub/services/catalog"

	"github.com/pkg/errors"
)

// ProgressSnapshot is recomputed from completion marks on every call.
type ProgressSnapshot struct {
	TotalClasses     int `json:"total_classes"`
	CompletedClasses int `json:"completed_classes"`
	ProgressPercent  int `json:"progress_percent"`
}

// Complete reports whether every class is done. A course without classes is never complete.
func (p ProgressSnapshot) Complete() bool {
	return p.TotalClasses > 0 && p.CompletedClasses >= p.TotalClasses
}

// Percent rounds completed/total*100 half away from zero; total 0 yields 0.
func Percent(completed, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}

type ClassView struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

type ModuleView struct {
	ID      string      `json:"id"`
	Title   string      `json:"title"`
	Classes []ClassView `json:"classes"`
}

type CourseOutlineView struct {
	CourseID string           `json:"course_id"`
	Title    string           `json:"title"`
	Enrolled bool             `json:"enrolled"`
	Modules  []ModuleView     `json:"modules"`
	Progress ProgressSnapshot `json:"progress"`
}

// MarkClassComplete records the completion mark, returning the existing one if present.
func (s *Service) MarkClassComplete(ctx context.Context, classID, userID string) (courseModels.ClassProgress, error) {
	existing, err := s.progress.Find(ctx, userID, classID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return courseModels.ClassProgress{}, err
	}

	ok, err := s.catalog.ClassExists(ctx, classID)
	if err != nil {
		return courseModels.ClassProgress{}, errors.Wrap(err, "check class")
	}
	if !ok {
		return courseModels.ClassProgress{}, ErrClassNotFound
	}

	mark := courseModels.ClassProgress{UserID: userID, ClassID: classID, CompletedAt: s.now()}
	if err := s.progress.Create(ctx, &mark); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return s.progress.Find(ctx, userID, classID)
		}
		return courseModels.ClassProgress{}, err
	}
	return mark, nil
}

func (s *Service) UnmarkClassComplete(ctx context.Context, classID, userID string) error {
	return s.progress.Delete(ctx, userID, classID)
}

func (s *Service) ComputeProgress(ctx context.Context, userID, courseID string) (ProgressSnapshot, error) {
	classIDs, err := s.catalog.ClassIDsInCourse(ctx, courseID)
	if err != nil {
		return ProgressSnapshot{}, courseErr(err, "list classes")
	}
	return s.snapshot(ctx, userID, classIDs)
}

func (s *Service) snapshot(ctx context.Context, userID string, classIDs []string) (ProgressSnapshot, error) {
	completed, err := s.progress.CountCompleted(ctx, userID, classIDs)
	if err != nil {
		return ProgressSnapshot{}, err
	}
	total := len(classIDs)
	return ProgressSnapshot{
		TotalClasses:     total,
		CompletedClasses: int(completed),
		ProgressPercent:  Percent(int(completed), total),
	}, nil
}

// CourseOutline returns the course structure with a completed flag on every class.
// Completed class ids are fetched in one query.
func (s *Service) CourseOutline(ctx context.Context, userID, courseID string) (CourseOutlineView, error) {
	outline, err := s.catalog.Outline(ctx, courseID)
	if err != nil {
		return CourseOutlineView{}, courseErr(err, "load outline")
	}
	title, err := s.catalog.CourseTitle(ctx, courseID)
	if err != nil {
		return CourseOutlineView{}, courseErr(err, "load title")
	}
	enrolled, err := s.enrollments.Exists(ctx, userID, courseID)
	if err != nil {
		return CourseOutlineView{}, err
	}

	var classIDs []string
	for _, m := range outline {
		for _, c := range m.Classes {
			classIDs = append(classIDs, c.ID)
		}
	}
	done, err := s.progress.CompletedClassIDs(ctx, userID, classIDs)
	if err != nil {
		return CourseOutlineView{}, err
	}
	completed := make(map[string]struct{}, len(done))
	for _, id := range done {
		completed[id] = struct{}{}
	}

	view := CourseOutlineView{
		CourseID: courseID,
		Title:    title,
		Enrolled: enrolled,
		Modules:  make([]ModuleView, 0, len(outline)),
	}
	for _, m := range outline {
		mv := ModuleView{ID: m.ID, Title: m.Title, Classes: make([]ClassView, 0, len(m.Classes))}
		for _, c := range m.Classes {
			_, ok := completed[c.ID]
			mv.Classes = append(mv.Classes, ClassView{ID: c.ID, Title: c.Title, Completed: ok})
		}
		view.Modules = append(view.Modules, mv)
	}
	view.Progress = ProgressSnapshot{
		TotalClasses:     len(classIDs),
		CompletedClasses: len(done),
		ProgressPercent:  Percent(len(done), len(classIDs)),
	}
	return view, nil
}

type EnrollmentView struct {
	ID              string           `json:"id"`
	CourseID        string           `json:"course_id"`
	CourseTitle     string           `json:"course_title"`
	EnrolledAt      time.Time        `json:"enrolled_at"`
	Progress        ProgressSnapshot `json:"progress"`
	CertificateHash string           `json:"certificate_hash,omitempty"`
}

// ListEnrollments returns the user's courses with live progress.
func (s *Service) ListEnrollments(ctx context.Context, userID string) ([]EnrollmentView, error) {
	enrollments, err := s.enrollments.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	views := make([]EnrollmentView, 0, len(enrollments))
	for _, e := range enrollments {
		view := EnrollmentView{ID: e.ID, CourseID: e.CourseID, EnrolledAt: e.EnrolledAt}
		if e.HasCertificate() {
			view.CertificateHash = *e.CertificateHash
		}
		title, err := s.catalog.CourseTitle(ctx, e.CourseID)
		if err != nil {
			if errors.Is(err, catalog.ErrCourseNotFound) {
				views = append(views, view)
				continue
			}
			return nil, errors.Wrap(err, "load course title")
		}
		view.CourseTitle = title
		if view.Progress, err = s.ComputeProgress(ctx, userID, e.CourseID); err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}
