package models

import (
	"time"

	"gorm.io/gorm"
)

type Patient struct {
	gorm.Model
	Name         string        `json:"name"`
	Email        string        `json:"email" gorm:"unique"`
	Phone        string        `json:"phone"`
	DateOfBirth  *time.Time    `json:"date_of_birth,omitempty" gorm:"type:date"`
	Appointments []Appointment `json:"appointments,omitempty" gorm:"foreignKey:PatientID"`
}
