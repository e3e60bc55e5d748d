package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "scheduled"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusCompleted AppointmentStatus = "completed"
)

// StatusCancelled is the one status excluded from conflict checks: a
// cancelled appointment keeps its record but no longer occupies its window.

type Appointment struct {
	gorm.Model
	Reference   string            `json:"reference" gorm:"uniqueIndex"`
	DoctorID    uint              `json:"doctor_id" gorm:"index:idx_doctor_date"`
	Doctor      Doctor            `json:"doctor,omitempty" gorm:"foreignKey:DoctorID"`
	PatientID   uint              `json:"patient_id"`
	Patient     Patient           `json:"patient,omitempty" gorm:"foreignKey:PatientID"`
	ProcedureID uint              `json:"procedure_id"`
	Procedure   Procedure         `json:"procedure,omitempty" gorm:"foreignKey:ProcedureID"`
	Date        time.Time         `json:"date" gorm:"type:date;index:idx_doctor_date"`
	StartTime   TimeOfDay         `json:"start_time"`
	EndTime     TimeOfDay         `json:"end_time"`
	Status      AppointmentStatus `json:"status"`
	Notes       string            `json:"notes"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.Status == "" {
		a.Status = StatusScheduled
	}
	if a.Reference == "" {
		a.Reference = uuid.NewString()
	}
	return nil
}

// UpdateStatus applies the status transition rules and persists the change.
// Completed and cancelled appointments are frozen.
func (a *Appointment) UpdateStatus(tx *gorm.DB, newStatus AppointmentStatus) error {
	switch a.Status {
	case StatusScheduled:
		if newStatus != StatusConfirmed && newStatus != StatusCancelled {
			return fmt.Errorf("invalid transition from scheduled to %s", newStatus)
		}
	case StatusConfirmed:
		if newStatus != StatusCompleted && newStatus != StatusCancelled {
			return fmt.Errorf("invalid transition from confirmed to %s", newStatus)
		}
	case StatusCompleted, StatusCancelled:
		return fmt.Errorf("no transitions allowed from %s", a.Status)
	}

	a.Status = newStatus
	return tx.Save(a).Error
}
