package scheduler

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/clinicflow/clinic-api/models"
)

// GormAppointmentSource reads appointments through GORM. Build it from the
// write transaction when feeding a BookingValidator so the FOR UPDATE locks
// live until that transaction commits.
type GormAppointmentSource struct {
	db *gorm.DB
}

func NewGormAppointmentSource(db *gorm.DB) *GormAppointmentSource {
	return &GormAppointmentSource{db: db}
}

func (s *GormAppointmentSource) ForDoctorDate(ctx context.Context, doctorID uint, date time.Time) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := s.db.WithContext(ctx).
		Where("doctor_id = ? AND date = ?", doctorID, date.Format("2006-01-02")).
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

// ForDoctorDateLocked serializes concurrent bookings for one doctor-day.
// Row locks alone cannot do this: an empty day has no rows to lock, and a row
// inserted by a concurrent transaction is a phantom the FOR UPDATE re-read
// never sees. The transaction-scoped advisory lock on the (doctor, day) key
// makes the second writer wait until the first one commits its insert.
func (s *GormAppointmentSource) ForDoctorDateLocked(ctx context.Context, doctorID uint, date time.Time, excludeID uint) ([]models.Appointment, error) {
	day := date.Format("2006-01-02")

	err := s.db.WithContext(ctx).Exec(
		"SELECT pg_advisory_xact_lock(hashtextextended(?::text || ':' || ?::text, 0))",
		doctorID, day,
	).Error
	if err != nil {
		return nil, err
	}

	var appointments []models.Appointment
	err = s.db.WithContext(ctx).Raw(`
		SELECT *
		FROM appointments
		WHERE doctor_id = ? AND date = ? AND id <> ? AND deleted_at IS NULL
		FOR UPDATE
	`, doctorID, day, excludeID).
		Scan(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

// GormDoctorSource reads doctor records for the availability engine.
type GormDoctorSource struct {
	db *gorm.DB
}

func NewGormDoctorSource(db *gorm.DB) *GormDoctorSource {
	return &GormDoctorSource{db: db}
}

func (s *GormDoctorSource) Get(ctx context.Context, id uint) (*models.Doctor, error) {
	var doctor models.Doctor
	err := s.db.WithContext(ctx).First(&doctor, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrDoctorNotFound
	}
	if err != nil {
		return nil, err
	}
	return &doctor, nil
}

func (s *GormDoctorSource) List(ctx context.Context, filter DoctorFilter) ([]models.Doctor, error) {
	query := s.db.WithContext(ctx).Model(&models.Doctor{})
	if filter.DepartmentID != 0 {
		query = query.Where("department_id = ?", filter.DepartmentID)
	}
	if filter.ProcedureID != 0 {
		query = query.
			Joins("JOIN doctor_procedures ON doctor_procedures.doctor_id = doctors.id").
			Where("doctor_procedures.procedure_id = ?", filter.ProcedureID)
	}

	var doctors []models.Doctor
	if err := query.Find(&doctors).Error; err != nil {
		return nil, err
	}
	return doctors, nil
}
