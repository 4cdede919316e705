package course

import (
	"time"

	"learnhub/models"
)

// ClassProgress marks that a user finished a class. Existence is the only state.
type ClassProgress struct {
	models.Base
	UserID      string    `json:"user_id" gorm:"type:varchar(36);not null;uniqueIndex:idx_progress_user_class"`
	ClassID     string    `json:"class_id" gorm:"type:varchar(36);not null;uniqueIndex:idx_progress_user_class"`
	CompletedAt time.Time `json:"completed_at"`
}

func (ClassProgress) TableName() string {
	return "class_progresses"
}
