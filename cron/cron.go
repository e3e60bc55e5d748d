package cron

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/clinicflow/clinic-api/db"
	"github.com/clinicflow/clinic-api/logger"
	"github.com/clinicflow/clinic-api/models"
	"github.com/clinicflow/clinic-api/utils"
)

// StartCronJobs initializes the scheduler for appointment reminders.
func StartCronJobs() {
	c := cron.New()
	// Run every minute to catch appointments starting about an hour out.
	_, err := c.AddFunc("* * * * *", sendAppointmentReminders)
	if err != nil {
		logger.L.Fatalf("Failed to add cron job: %v", err)
	}
	c.Start()
	logger.L.Info("Cron scheduler started for appointment reminders")
}

// sendAppointmentReminders emails patients whose confirmed appointment
// starts in roughly one hour. Appointments store a calendar date plus a
// minutes-since-midnight start, so the window check happens in Go.
func sendAppointmentReminders() {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	minutes := models.TimeOfDay(now.Hour()*60 + now.Minute())

	var appointments []models.Appointment
	err := db.DB.Preload("Patient").Preload("Doctor").Preload("Procedure").
		Where("status = ? AND date = ?", models.StatusConfirmed, today).
		Find(&appointments).Error
	if err != nil {
		logger.L.Errorf("Fetching appointments for reminders: %v", err)
		return
	}

	for _, appointment := range appointments {
		lead := appointment.StartTime - minutes
		if lead < 55 || lead > 65 {
			continue
		}
		if appointment.Patient.Email == "" {
			continue
		}
		if err := sendReminderEmail(&appointment); err != nil {
			logger.L.Errorf("Reminder for appointment %d failed: %v", appointment.ID, err)
			continue
		}
		logger.L.Infof("Sent reminder for appointment %d to %s", appointment.ID, appointment.Patient.Email)
	}
}

func sendReminderEmail(appointment *models.Appointment) error {
	subject := fmt.Sprintf("Reminder: Upcoming Appointment - %s", appointment.Procedure.Name)
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>This is a reminder for your upcoming appointment scheduled in one hour.</p>
		<p><strong>Details:</strong></p>
		<ul>
			<li><strong>Procedure:</strong> %s</li>
			<li><strong>Doctor:</strong> %s</li>
			<li><strong>Date:</strong> %s</li>
			<li><strong>Time:</strong> %s - %s</li>
		</ul>
		<p>Please arrive on time. If you need to reschedule or cancel, contact us as soon as possible.</p>
		<p>Best regards,</p>
		<p>Your Clinic Team</p>
	`, appointment.Patient.Name, appointment.Procedure.Name, appointment.Doctor.Name,
		appointment.Date.Format("2006-01-02"),
		appointment.StartTime.String(), appointment.EndTime.String())

	return utils.SendEmail(appointment.Patient.Email, subject, body)
}
