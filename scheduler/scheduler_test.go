package scheduler

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/clinicflow/clinic-api/models"
)

// Shared fixtures for the scheduler tests: in-memory appointment and doctor
// sources plus a pinned clock.

type fakeAppointments struct {
	appointments []models.Appointment
}

func sameDate(a, b time.Time) bool {
	return a.Format("2006-01-02") == b.Format("2006-01-02")
}

func (f *fakeAppointments) ForDoctorDate(_ context.Context, doctorID uint, date time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, appt := range f.appointments {
		if appt.DoctorID == doctorID && sameDate(appt.Date, date) {
			out = append(out, appt)
		}
	}
	return out, nil
}

func (f *fakeAppointments) ForDoctorDateLocked(ctx context.Context, doctorID uint, date time.Time, excludeID uint) ([]models.Appointment, error) {
	all, _ := f.ForDoctorDate(ctx, doctorID, date)
	var out []models.Appointment
	for _, appt := range all {
		if appt.ID != excludeID {
			out = append(out, appt)
		}
	}
	return out, nil
}

type fakeDoctors struct {
	doctors []models.Doctor
}

func (f *fakeDoctors) Get(_ context.Context, id uint) (*models.Doctor, error) {
	for i := range f.doctors {
		if f.doctors[i].ID == id {
			return &f.doctors[i], nil
		}
	}
	return nil, ErrDoctorNotFound
}

func (f *fakeDoctors) List(_ context.Context, filter DoctorFilter) ([]models.Doctor, error) {
	var out []models.Doctor
	for _, doc := range f.doctors {
		if filter.DepartmentID != 0 && doc.DepartmentID != filter.DepartmentID {
			continue
		}
		if filter.ProcedureID != 0 && !hasProcedure(doc, filter.ProcedureID) {
			continue
		}
		out = append(out, doc)
	}
	return out, nil
}

func hasProcedure(doc models.Doctor, procedureID uint) bool {
	for _, p := range doc.Procedures {
		if p.ID == procedureID {
			return true
		}
	}
	return false
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

// 2025-06-02 is a Monday.
var monday = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

func hm(h, m int) models.TimeOfDay {
	return models.TimeOfDay(h*60 + m)
}

func workday(start, end models.TimeOfDay, pause *models.BreakWindow) models.DaySchedule {
	return models.DaySchedule{Available: true, StartTime: start, EndTime: end, Break: pause}
}

func appointment(id, doctorID uint, date time.Time, start, end models.TimeOfDay, status models.AppointmentStatus) models.Appointment {
	return models.Appointment{
		Model:     gorm.Model{ID: id},
		DoctorID:  doctorID,
		Date:      date,
		StartTime: start,
		EndTime:   end,
		Status:    status,
	}
}
