package catalog

import (
	"context"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// Remote reads catalog and identity facts from the catalog HTTP service.
type Remote struct {
	client *resty.Client
}

var (
	_ Catalog  = (*Remote)(nil)
	_ Identity = (*Remote)(nil)
)

type remoteCourse struct {
	ID             string          `json:"id"`
	Title          string          `json:"title"`
	InstructorName string          `json:"instructor_name"`
	Price          decimal.Decimal `json:"price"`
	Modules        []ModuleOutline `json:"modules"`
}

type remoteUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func NewRemote(baseURL string) *Remote {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(5*time.Second).
		SetRetryCount(2).
		SetHeader("Accept", "application/json")
	return &Remote{client: client}
}

// get fetches path into out; found is false on 404.
func (r *Remote) get(ctx context.Context, path, id string, out interface{}) (bool, error) {
	resp, err := r.client.R().
		SetContext(ctx).
		SetPathParam("id", id).
		SetResult(out).
		Get(path)
	if err != nil {
		return false, errors.Wrapf(err, "catalog GET %s", path)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return false, nil
	}
	if resp.IsError() {
		return false, errors.Errorf("catalog GET %s: unexpected status %d", path, resp.StatusCode())
	}
	return true, nil
}

func (r *Remote) course(ctx context.Context, courseID string) (remoteCourse, error) {
	var course remoteCourse
	found, err := r.get(ctx, "/courses/{id}", courseID, &course)
	if err != nil {
		return course, err
	}
	if !found {
		return course, ErrCourseNotFound
	}
	return course, nil
}

func (r *Remote) CourseExists(ctx context.Context, courseID string) (bool, error) {
	_, err := r.course(ctx, courseID)
	if errors.Is(err, ErrCourseNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (r *Remote) CourseTitle(ctx context.Context, courseID string) (string, error) {
	course, err := r.course(ctx, courseID)
	return course.Title, err
}

func (r *Remote) CoursePrice(ctx context.Context, courseID string) (decimal.Decimal, error) {
	course, err := r.course(ctx, courseID)
	return course.Price, err
}

func (r *Remote) InstructorName(ctx context.Context, courseID string) (string, error) {
	course, err := r.course(ctx, courseID)
	return course.InstructorName, err
}

func (r *Remote) CountClassesInCourse(ctx context.Context, courseID string) (int, error) {
	ids, err := r.ClassIDsInCourse(ctx, courseID)
	return len(ids), err
}

func (r *Remote) ClassIDsInCourse(ctx context.Context, courseID string) ([]string, error) {
	course, err := r.course(ctx, courseID)
	if err != nil {
		return nil, err
	}
	ids := []string{}
	for _, m := range course.Modules {
		for _, c := range m.Classes {
			ids = append(ids, c.ID)
		}
	}
	return ids, nil
}

func (r *Remote) Outline(ctx context.Context, courseID string) ([]ModuleOutline, error) {
	course, err := r.course(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if course.Modules == nil {
		return []ModuleOutline{}, nil
	}
	return course.Modules, nil
}

func (r *Remote) ClassExists(ctx context.Context, classID string) (bool, error) {
	var class ClassOutline
	return r.get(ctx, "/classes/{id}", classID, &class)
}

func (r *Remote) user(ctx context.Context, userID string) (remoteUser, error) {
	var user remoteUser
	found, err := r.get(ctx, "/users/{id}", userID, &user)
	if err != nil {
		return user, err
	}
	if !found {
		return user, ErrUserNotFound
	}
	return user, nil
}

func (r *Remote) UserDisplayName(ctx context.Context, userID string) (string, error) {
	user, err := r.user(ctx, userID)
	return user.Name, err
}

func (r *Remote) UserEmail(ctx context.Context, userID string) (string, error) {
	user, err := r.user(ctx, userID)
	return user.Email, err
}
