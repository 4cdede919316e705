package models

type User struct {
	Base
	Name      string `json:"name" gorm:"default:''"`
	Email     string `json:"email" gorm:"type:varchar(255);unique;not null"`
	Role      string `json:"role" gorm:"default:'STUDENT'"` // STUDENT, INSTRUCTOR, ADMIN
	IsDeleted bool   `json:"-" gorm:"default:false"`
}
