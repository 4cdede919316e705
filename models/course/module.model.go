package course

import "learnhub/models"

// Module represents a section/module within a course
type Module struct {
	models.Base
	CourseID   string `json:"course_id" gorm:"type:varchar(36);index;not null"`
	Title      string `json:"title"`
	OrderIndex int    `json:"order_index" gorm:"default:0"` // Module order in course
	IsDeleted  bool   `json:"-" gorm:"default:false"`
}

// Class is a single lesson inside a module
type Class struct {
	models.Base
	ModuleID   string `json:"module_id" gorm:"type:varchar(36);index;not null"`
	Title      string `json:"title"`
	OrderIndex int    `json:"order_index" gorm:"default:0"` // Order within module
	IsDeleted  bool   `json:"-" gorm:"default:false"`
}
