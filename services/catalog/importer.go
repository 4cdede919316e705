package catalog

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"learnhub/models"
	courseModels "learnhub/models/course"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ImportStats counts what an import touched.
type ImportStats struct {
	Courses int
	Modules int
	Classes int
	Skipped int
}

// ImportCSV seeds the local catalog tables. Each row describes one class:
// course_title, course_price, instructor_email, module_title, module_order,
// class_title, class_order. Rows are matched by title so re-running is safe.
func ImportCSV(ctx context.Context, db *gorm.DB, r io.Reader) (ImportStats, error) {
	var stats ImportStats

	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return stats, errors.Wrap(err, "read csv")
	}
	if len(records) < 2 {
		return stats, errors.New("csv has no data rows")
	}

	headerIndex := make(map[string]int)
	for i, h := range records[0] {
		headerIndex[strings.TrimSpace(h)] = i
	}

	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, row := range records[1:] {
			courseTitle := getField(row, headerIndex, "course_title")
			moduleTitle := getField(row, headerIndex, "module_title")
			classTitle := getField(row, headerIndex, "class_title")
			if courseTitle == "" || moduleTitle == "" || classTitle == "" {
				stats.Skipped++
				continue
			}

			price, err := decimal.NewFromString(getField(row, headerIndex, "course_price"))
			if err != nil {
				price = decimal.Zero
			}
			course := courseModels.Course{
				Title:        courseTitle,
				Price:        price,
				IsPublished:  true,
				InstructorID: instructorID(tx, getField(row, headerIndex, "instructor_email")),
			}
			created, err := firstOrCreate(tx, &course, "title = ? AND is_deleted = ?", courseTitle, false)
			if err != nil {
				return errors.Wrapf(err, "course %q", courseTitle)
			}
			if created {
				stats.Courses++
			}

			module := courseModels.Module{
				CourseID:   course.ID,
				Title:      moduleTitle,
				OrderIndex: parseInt(getField(row, headerIndex, "module_order")),
			}
			created, err = firstOrCreate(tx, &module, "course_id = ? AND title = ? AND is_deleted = ?", course.ID, moduleTitle, false)
			if err != nil {
				return errors.Wrapf(err, "module %q", moduleTitle)
			}
			if created {
				stats.Modules++
			}

			class := courseModels.Class{
				ModuleID:   module.ID,
				Title:      classTitle,
				OrderIndex: parseInt(getField(row, headerIndex, "class_order")),
			}
			created, err = firstOrCreate(tx, &class, "module_id = ? AND title = ? AND is_deleted = ?", module.ID, classTitle, false)
			if err != nil {
				return errors.Wrapf(err, "class %q", classTitle)
			}
			if created {
				stats.Classes++
			}
		}
		return nil
	})
	return stats, err
}

// firstOrCreate loads the row matching query into dest, or inserts dest when none exists.
func firstOrCreate(tx *gorm.DB, dest interface{}, query string, args ...interface{}) (bool, error) {
	err := tx.Where(query, args...).First(dest).Error
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}
	return true, tx.Create(dest).Error
}

func instructorID(tx *gorm.DB, email string) string {
	if email == "" {
		return ""
	}
	var user models.User
	if err := tx.Where("email = ? AND is_deleted = ?", email, false).First(&user).Error; err != nil {
		return ""
	}
	return user.ID
}

// getField safely gets a field from the row by header name
func getField(row []string, headerIndex map[string]int, field string) string {
	if idx, ok := headerIndex[field]; ok && idx < len(row) {
		return strings.TrimSpace(row[idx])
	}
	return ""
}

func parseInt(s string) int {
	val, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return val
}
