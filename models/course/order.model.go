package course

import (
	"time"

	"learnhub/models"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// OrderItem is the per-course line stored inside an Order.
type OrderItem struct {
	CourseID string          `json:"course_id"`
	Title    string          `json:"title"`
	Price    decimal.Decimal `json:"price"`
}

// Order is the receipt written by a checkout that created at least one enrollment.
type Order struct {
	models.Base
	UserID          string                          `json:"user_id" gorm:"type:varchar(36);index;not null"`
	OrderDate       time.Time                       `json:"order_date"`
	EnrolledCourses int                             `json:"enrolled_courses"`
	TotalPrice      decimal.Decimal                 `json:"total_price" gorm:"type:decimal(10,2);default:0"`
	Items           datatypes.JSONSlice[OrderItem] `json:"items"`
}
