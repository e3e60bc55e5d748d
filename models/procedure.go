package models

import (
	"gorm.io/gorm"
)

type Procedure struct {
	gorm.Model
	Name        string   `json:"name" gorm:"unique"`
	Description string   `json:"description"`
	Duration    Duration `json:"duration" gorm:"type:jsonb"` // default appointment length
	Cost        float64  `json:"cost"`
	Doctors     []Doctor `json:"doctors,omitempty" gorm:"many2many:doctor_procedures;"`
}
