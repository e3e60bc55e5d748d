package controllers

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/clinicflow/clinic-api/db"
	"github.com/clinicflow/clinic-api/logger"
	"github.com/clinicflow/clinic-api/models"
	"github.com/clinicflow/clinic-api/redis"
	"github.com/clinicflow/clinic-api/scheduler"
	"github.com/clinicflow/clinic-api/utils"
)

// AppointmentRequest is the booking write shape. Times are "HH:MM"; when
// end_time is omitted the procedure's default duration fills it in.
type AppointmentRequest struct {
	DoctorID    uint   `json:"doctor_id" validate:"required"`
	PatientID   uint   `json:"patient_id" validate:"required"`
	ProcedureID uint   `json:"procedure_id" validate:"required"`
	Date        string `json:"date" validate:"required"`
	StartTime   string `json:"start_time" validate:"required"`
	EndTime     string `json:"end_time"`
	Notes       string `json:"notes"`
}

type RescheduleRequest struct {
	DoctorID  uint   `json:"doctor_id"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Notes     string `json:"notes"`
}

func parseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

var errOutsideWorkingHours = errors.New("appointment is outside working hours or during break")

// ensureWithinWorkingHours rejects windows outside the doctor's declared
// schedule. Both the create and the reschedule path run it; the booking
// validator itself only guards against double-booking.
func ensureWithinWorkingHours(doctor *models.Doctor, date time.Time, w scheduler.Window) error {
	day := doctor.WeeklyTemplate.Day(date.Weekday())
	if !scheduler.WithinWorkingHours(day, w) {
		return errOutsideWorkingHours
	}
	return nil
}

// applyReschedule folds the request's set fields into the appointment and
// reports whether doctor, date or window changed. A new start without an
// explicit end keeps the booked length.
func applyReschedule(appointment *models.Appointment, req *RescheduleRequest) (bool, error) {
	if req.DoctorID != 0 {
		appointment.DoctorID = req.DoctorID
	}
	if req.Date != "" {
		date, err := parseDate(req.Date)
		if err != nil {
			return false, fmt.Errorf("invalid date format, use YYYY-MM-DD")
		}
		appointment.Date = date
	}
	if req.StartTime != "" {
		start, err := models.ParseTimeOfDay(req.StartTime)
		if err != nil {
			return false, err
		}
		length := appointment.EndTime - appointment.StartTime
		appointment.StartTime = start
		appointment.EndTime = start + length
	}
	if req.EndTime != "" {
		end, err := models.ParseTimeOfDay(req.EndTime)
		if err != nil {
			return false, err
		}
		appointment.EndTime = end
	}
	if req.Notes != "" {
		appointment.Notes = req.Notes
	}
	return req.DoctorID != 0 || req.Date != "" || req.StartTime != "" || req.EndTime != "", nil
}

// conflictResponse maps scheduler errors onto client responses. A
// TimeConflict is a client rejection, never a server fault.
func conflictResponse(c *fiber.Ctx, err error) error {
	var conflict *scheduler.ConflictError
	if errors.As(err, &conflict) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message":        "Time slot not available",
			"doctor_id":      conflict.DoctorID,
			"date":           conflict.Date.Format("2006-01-02"),
			"conflict_start": conflict.Conflict.StartTime,
			"conflict_end":   conflict.Conflict.EndTime,
		})
	}
	if errors.Is(err, scheduler.ErrInvalidWindow) {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "start_time must be before end_time",
		})
	}
	if errors.Is(err, errOutsideWorkingHours) {
		return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
			Message: "Appointment is outside working hours or during break",
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
		Message: "Failed to save appointment",
		Error:   err.Error(),
	})
}

// GetAllAppointments returns all appointments
func GetAllAppointments(c *fiber.Ctx) error {
	var appointments []models.Appointment
	if err := db.DB.Preload("Doctor").Preload("Patient").Preload("Procedure").Find(&appointments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch appointments",
			Error:   err.Error(),
		})
	}
	return c.JSON(appointments)
}

// GetAppointment returns an appointment by ID
func GetAppointment(c *fiber.Ctx) error {
	id := c.Params("id")
	var appointment models.Appointment
	if err := db.DB.Preload("Doctor").Preload("Patient").Preload("Procedure").First(&appointment, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Appointment not found",
			Error:   err.Error(),
		})
	}
	return c.JSON(appointment)
}

// CreateAppointment books a new appointment. The conflict check and the
// insert run in one transaction with the doctor's day locked, so two
// concurrent requests for overlapping windows cannot both succeed.
func CreateAppointment(c *fiber.Ctx) error {
	req := new(AppointmentRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if err := utils.ValidateStruct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid appointment payload",
			Error:   err.Error(),
		})
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid date format, use YYYY-MM-DD",
		})
	}
	startTime, err := models.ParseTimeOfDay(req.StartTime)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid start_time",
			Error:   err.Error(),
		})
	}

	var doctor models.Doctor
	if err := db.DB.First(&doctor, req.DoctorID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Doctor not found",
			Error:   err.Error(),
		})
	}
	var procedure models.Procedure
	if err := db.DB.First(&procedure, req.ProcedureID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Procedure not found",
			Error:   err.Error(),
		})
	}

	var endTime models.TimeOfDay
	if req.EndTime != "" {
		endTime, err = models.ParseTimeOfDay(req.EndTime)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
				Message: "Invalid end_time",
				Error:   err.Error(),
			})
		}
	} else {
		endTime = startTime.Add(procedure.Duration.ToDuration())
	}

	window := scheduler.Window{StartTime: startTime, EndTime: endTime}

	if err := ensureWithinWorkingHours(&doctor, date, window); err != nil {
		return conflictResponse(c, err)
	}

	appointment := models.Appointment{
		DoctorID:    req.DoctorID,
		PatientID:   req.PatientID,
		ProcedureID: req.ProcedureID,
		Date:        date,
		StartTime:   startTime,
		EndTime:     endTime,
		Notes:       req.Notes,
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		validator := scheduler.NewBookingValidator(scheduler.NewGormAppointmentSource(tx))
		if err := validator.ValidateNew(c.Context(), req.DoctorID, date, window); err != nil {
			return err
		}
		return tx.Create(&appointment).Error
	})
	if err != nil {
		return conflictResponse(c, err)
	}

	redis.InvalidateDoctor(appointment.DoctorID)
	notifyBooking(&appointment, "Appointment Confirmation", "has been booked")

	return c.Status(fiber.StatusCreated).JSON(appointment)
}

// RescheduleAppointment moves an appointment to a new doctor, date or window.
// The appointment being moved never conflicts with its own prior state.
func RescheduleAppointment(c *fiber.Ctx) error {
	id := c.Params("id")
	req := new(RescheduleRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	var appointment models.Appointment
	var previousDoctor uint
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Raw(`
			SELECT *
			FROM appointments
			WHERE id = ? AND deleted_at IS NULL
			FOR UPDATE
		`, id).Scan(&appointment).Error; err != nil {
			return err
		}
		if appointment.ID == 0 {
			return gorm.ErrRecordNotFound
		}
		if appointment.Status == models.StatusCompleted || appointment.Status == models.StatusCancelled {
			return fmt.Errorf("cannot reschedule a %s appointment", appointment.Status)
		}

		previousDoctor = appointment.DoctorID

		timeChanged, err := applyReschedule(&appointment, req)
		if err != nil {
			return err
		}

		if timeChanged {
			var doctor models.Doctor
			if err := tx.First(&doctor, appointment.DoctorID).Error; err != nil {
				return err
			}
			window := scheduler.Window{StartTime: appointment.StartTime, EndTime: appointment.EndTime}
			if err := ensureWithinWorkingHours(&doctor, appointment.Date, window); err != nil {
				return err
			}
			validator := scheduler.NewBookingValidator(scheduler.NewGormAppointmentSource(tx))
			if err := validator.ValidateUpdate(c.Context(), appointment.ID, appointment.DoctorID, appointment.Date, window); err != nil {
				return err
			}
		}

		return tx.Save(&appointment).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Appointment not found",
		})
	}
	if err != nil {
		return conflictResponse(c, err)
	}

	// Invalidate only after commit; a concurrent reader must not re-cache
	// pre-commit data.
	if previousDoctor != appointment.DoctorID {
		redis.InvalidateDoctor(previousDoctor)
	}
	redis.InvalidateDoctor(appointment.DoctorID)
	notifyBooking(&appointment, "Appointment Rescheduled", "has been rescheduled")

	return c.JSON(appointment)
}

// UpdateAppointmentStatus applies a status transition. Cancelling frees the
// window for other bookings without deleting the record.
func UpdateAppointmentStatus(c *fiber.Ctx) error {
	id := c.Params("id")
	type StatusRequest struct {
		Status models.AppointmentStatus `json:"status" validate:"required"`
	}

	req := new(StatusRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	var appointment models.Appointment
	if err := db.DB.First(&appointment, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Appointment not found",
			Error:   err.Error(),
		})
	}

	if err := appointment.UpdateStatus(db.DB, req.Status); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid status transition",
			Error:   err.Error(),
		})
	}

	if req.Status == models.StatusCancelled {
		redis.InvalidateDoctor(appointment.DoctorID)
	}

	return c.JSON(appointment)
}

// DeleteAppointment hard-deletes an appointment; no re-validation happens on
// delete.
func DeleteAppointment(c *fiber.Ctx) error {
	id := c.Params("id")
	var appointment models.Appointment
	if err := db.DB.First(&appointment, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Appointment not found",
			Error:   err.Error(),
		})
	}

	if err := db.DB.Delete(&appointment).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to delete appointment",
			Error:   err.Error(),
		})
	}

	redis.InvalidateDoctor(appointment.DoctorID)
	return c.SendStatus(fiber.StatusNoContent)
}

// notifyBooking mails the patient and the doctor. Delivery problems are
// logged, never surfaced to the booking caller.
func notifyBooking(appointment *models.Appointment, subject, verb string) {
	var patient models.Patient
	var doctor models.Doctor
	if err := db.DB.First(&patient, appointment.PatientID).Error; err != nil {
		logger.L.Warnw("Patient lookup for notification failed", "appointment", appointment.ID, "error", err)
		return
	}
	if err := db.DB.First(&doctor, appointment.DoctorID).Error; err != nil {
		logger.L.Warnw("Doctor lookup for notification failed", "appointment", appointment.ID, "error", err)
		return
	}

	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your appointment %s.</p>
		<p><strong>Details:</strong></p>
		<ul>
			<li><strong>Doctor:</strong> %s</li>
			<li><strong>Date:</strong> %s</li>
			<li><strong>Time:</strong> %s - %s</li>
			<li><strong>Reference:</strong> %s</li>
		</ul>
		<p>Best regards,</p>
		<p>Your Clinic Team</p>
	`, patient.Name, verb, doctor.Name,
		appointment.Date.Format("2006-01-02"),
		appointment.StartTime, appointment.EndTime, appointment.Reference)

	if err := utils.SendEmail(patient.Email, subject, body); err != nil {
		logger.L.Warnw("Failed to send patient notification", "appointment", appointment.ID, "error", err)
	}

	body = fmt.Sprintf(`
		<p>Dear Dr. %s,</p>
		<p>An appointment with %s %s.</p>
		<ul>
			<li><strong>Date:</strong> %s</li>
			<li><strong>Time:</strong> %s - %s</li>
			<li><strong>Reference:</strong> %s</li>
		</ul>
		<p>Best regards,</p>
		<p>Your Clinic Team</p>
	`, doctor.Name, patient.Name, verb,
		appointment.Date.Format("2006-01-02"),
		appointment.StartTime, appointment.EndTime, appointment.Reference)

	if err := utils.SendEmail(doctor.Email, subject, body); err != nil {
		logger.L.Warnw("Failed to send doctor notification", "appointment", appointment.ID, "error", err)
	}
}
