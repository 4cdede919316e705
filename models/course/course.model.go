package course

import (
	"learnhub/models"

	"github.com/shopspring/decimal"
)

// Course represents a published learning course
type Course struct {
	models.Base
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	InstructorID string          `json:"instructor_id" gorm:"type:varchar(36);index"`
	Instructor   models.User     `json:"instructor" gorm:"foreignKey:InstructorID"`
	Price        decimal.Decimal `json:"price" gorm:"type:decimal(10,2);default:0"`
	IsPublished  bool            `json:"is_published" gorm:"default:false"`
	IsDeleted    bool            `json:"-" gorm:"default:false"`
}
