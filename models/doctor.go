package models

import (
	"gorm.io/gorm"
)

type Doctor struct {
	gorm.Model
	Name           string         `json:"name"`
	Email          string         `json:"email" gorm:"unique"`
	Phone          string         `json:"phone"`
	DepartmentID   uint           `json:"department_id"`
	Department     Department     `json:"department,omitempty" gorm:"foreignKey:DepartmentID"`
	Procedures     []Procedure    `json:"procedures,omitempty" gorm:"many2many:doctor_procedures;"`
	WeeklyTemplate WeeklyTemplate `json:"weekly_template" gorm:"type:jsonb"`
	Appointments   []Appointment  `json:"appointments,omitempty" gorm:"foreignKey:DoctorID"`
}
