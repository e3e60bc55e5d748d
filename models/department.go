package models

import (
	"gorm.io/gorm"
)

type Department struct {
	gorm.Model
	Name        string   `json:"name" gorm:"unique"`
	Description string   `json:"description"`
	Doctors     []Doctor `json:"doctors,omitempty" gorm:"foreignKey:DepartmentID"`
}
