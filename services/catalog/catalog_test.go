package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"learnhub/database"
	"learnhub/models"
	courseModels "learnhub/models/course"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedCourse(t *testing.T) (*DB, courseModels.Course) {
	t.Helper()
	db, err := database.OpenMemory(t.Name())
	require.NoError(t, err)

	instructor := models.User{Name: "Grace Hopper", Email: "grace@example.com", Role: "INSTRUCTOR"}
	require.NoError(t, db.Create(&instructor).Error)

	course := courseModels.Course{
		Title:        "Compilers",
		InstructorID: instructor.ID,
		Price:        decimal.RequireFromString("49.90"),
		IsPublished:  true,
	}
	require.NoError(t, db.Create(&course).Error)

	second := courseModels.Module{CourseID: course.ID, Title: "Parsing", OrderIndex: 2}
	first := courseModels.Module{CourseID: course.ID, Title: "Lexing", OrderIndex: 1}
	removed := courseModels.Module{CourseID: course.ID, Title: "Old", OrderIndex: 3, IsDeleted: true}
	require.NoError(t, db.Create(&second).Error)
	require.NoError(t, db.Create(&first).Error)
	require.NoError(t, db.Create(&removed).Error)

	classes := []courseModels.Class{
		{ModuleID: first.ID, Title: "Tokens", OrderIndex: 1},
		{ModuleID: second.ID, Title: "LL(1)", OrderIndex: 2},
		{ModuleID: second.ID, Title: "Grammars", OrderIndex: 1},
		{ModuleID: second.ID, Title: "Dropped", OrderIndex: 3, IsDeleted: true},
		{ModuleID: removed.ID, Title: "Orphan", OrderIndex: 1},
	}
	require.NoError(t, db.Create(&classes).Error)

	return NewDB(db), course
}

func TestDBCatalogCourseFacts(t *testing.T) {
	ctx := context.Background()
	cat, course := seedCourse(t)

	exists, err := cat.CourseExists(ctx, course.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = cat.CourseExists(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, exists)

	title, err := cat.CourseTitle(ctx, course.ID)
	require.NoError(t, err)
	assert.Equal(t, "Compilers", title)

	price, err := cat.CoursePrice(ctx, course.ID)
	require.NoError(t, err)
	assert.True(t, price.Equal(decimal.RequireFromString("49.90")))

	name, err := cat.InstructorName(ctx, course.ID)
	require.NoError(t, err)
	assert.Equal(t, "Grace Hopper", name)

	_, err = cat.CourseTitle(ctx, "missing")
	assert.ErrorIs(t, err, ErrCourseNotFound)
}

func TestDBCatalogCountsOnlyLiveClasses(t *testing.T) {
	ctx := context.Background()
	cat, course := seedCourse(t)

	count, err := cat.CountClassesInCourse(ctx, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	ids, err := cat.ClassIDsInCourse(ctx, course.ID)
	require.NoError(t, err)
	assert.Len(t, ids, 3)

	count, err = cat.CountClassesInCourse(ctx, "missing")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestDBCatalogOutlineIsOrdered(t *testing.T) {
	ctx := context.Background()
	cat, course := seedCourse(t)

	outline, err := cat.Outline(ctx, course.ID)
	require.NoError(t, err)
	require.Len(t, outline, 2)
	assert.Equal(t, "Lexing", outline[0].Title)
	assert.Equal(t, "Parsing", outline[1].Title)
	require.Len(t, outline[1].Classes, 2)
	assert.Equal(t, "Grammars", outline[1].Classes[0].Title)
	assert.Equal(t, "LL(1)", outline[1].Classes[1].Title)

	exists, err := cat.ClassExists(ctx, outline[0].Classes[0].ID)
	require.NoError(t, err)
	assert.True(t, exists)

	_, err = cat.Outline(ctx, "missing")
	assert.ErrorIs(t, err, ErrCourseNotFound)
}

func TestDBIdentity(t *testing.T) {
	ctx := context.Background()
	cat, course := seedCourse(t)

	var instructor models.User
	require.NoError(t, cat.db.First(&instructor, "id = ?", course.InstructorID).Error)

	email, err := cat.UserEmail(ctx, instructor.ID)
	require.NoError(t, err)
	assert.Equal(t, "grace@example.com", email)

	_, err = cat.UserDisplayName(ctx, "ghost")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func newCatalogServer(t *testing.T) *httptest.Server {
	t.Helper()
	course := remoteCourse{
		ID:             "c1",
		Title:          "Distributed Systems",
		InstructorName: "Leslie",
		Price:          decimal.RequireFromString("15"),
		Modules: []ModuleOutline{
			{ID: "m1", Title: "Clocks", Classes: []ClassOutline{{ID: "k1", Title: "Lamport"}, {ID: "k2", Title: "Vector"}}},
			{ID: "m2", Title: "Consensus", Classes: []ClassOutline{{ID: "k3", Title: "Paxos"}}},
		},
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/courses/c1", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(course)
	})
	mux.HandleFunc("/classes/k1", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(ClassOutline{ID: "k1", Title: "Lamport"})
	})
	mux.HandleFunc("/users/u1", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(remoteUser{ID: "u1", Name: "Ada", Email: "ada@example.com"})
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestRemoteCatalog(t *testing.T) {
	ctx := context.Background()
	cat := NewRemote(newCatalogServer(t).URL)

	exists, err := cat.CourseExists(ctx, "c1")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = cat.CourseExists(ctx, "nope")
	require.NoError(t, err)
	assert.False(t, exists)

	title, err := cat.CourseTitle(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "Distributed Systems", title)

	count, err := cat.CountClassesInCourse(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	ids, err := cat.ClassIDsInCourse(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, []string{"k1", "k2", "k3"}, ids)

	name, err := cat.InstructorName(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "Leslie", name)

	ok, err := cat.ClassExists(ctx, "k1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = cat.ClassExists(ctx, "k9")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = cat.Outline(ctx, "nope")
	assert.ErrorIs(t, err, ErrCourseNotFound)
}

func TestRemoteIdentity(t *testing.T) {
	ctx := context.Background()
	cat := NewRemote(newCatalogServer(t).URL)

	name, err := cat.UserDisplayName(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Ada", name)

	_, err = cat.UserEmail(ctx, "u2")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

const catalogCSV = `course_title,course_price,instructor_email,module_title,module_order,class_title,class_order
Go Basics,19.90,ada@example.com,Syntax,1,Variables,1
Go Basics,19.90,ada@example.com,Syntax,1,Functions,2
Go Basics,19.90,ada@example.com,Concurrency,2,Goroutines,1
,,,,,,
`

func TestImportCSVIsRepeatable(t *testing.T) {
	ctx := context.Background()
	db, err := database.OpenMemory(t.Name())
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.User{Name: "Ada", Email: "ada@example.com"}).Error)

	stats, err := ImportCSV(ctx, db, strings.NewReader(catalogCSV))
	require.NoError(t, err)
	assert.Equal(t, ImportStats{Courses: 1, Modules: 2, Classes: 3, Skipped: 1}, stats)

	stats, err = ImportCSV(ctx, db, strings.NewReader(catalogCSV))
	require.NoError(t, err)
	assert.Equal(t, ImportStats{Skipped: 1}, stats)

	var course courseModels.Course
	require.NoError(t, db.Where("title = ?", "Go Basics").First(&course).Error)

	cat := NewDB(db)
	count, err := cat.CountClassesInCourse(ctx, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	name, err := cat.InstructorName(ctx, course.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada", name)

	outline, err := cat.Outline(ctx, course.ID)
	require.NoError(t, err)
	require.Len(t, outline, 2)
	assert.Equal(t, "Syntax", outline[0].Title)
	assert.Equal(t, "Functions", outline[0].Classes[1].Title)
}

func TestImportCSVRejectsEmptyFile(t *testing.T) {
	db, err := database.OpenMemory(t.Name())
	require.NoError(t, err)

	_, err = ImportCSV(context.Background(), db, strings.NewReader("course_title\n"))
	assert.Error(t, err)
}
