package course

import (
	"time"

	"learnhub/models"

	"github.com/shopspring/decimal"
)

// CartItem is a pending intent to enroll, one per (user, course).
type CartItem struct {
	models.Base
	UserID         string          `json:"user_id" gorm:"type:varchar(36);not null;uniqueIndex:idx_cart_user_course"`
	CourseID       string          `json:"course_id" gorm:"type:varchar(36);not null;uniqueIndex:idx_cart_user_course"`
	UnitPrice      decimal.Decimal `json:"unit_price" gorm:"type:decimal(10,2);not null;default:0"`
	ReminderSentAt *time.Time      `json:"-"`
}
