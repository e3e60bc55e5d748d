package scheduler

import (
	"context"
	"time"

	"github.com/clinicflow/clinic-api/models"
)

// AppointmentSource reads the appointment store for one doctor on one date.
// The scheduling core never loads appointments for other doctors or dates.
type AppointmentSource interface {
	// ForDoctorDate returns every live appointment row for (doctorID, date),
	// cancelled ones included.
	ForDoctorDate(ctx context.Context, doctorID uint, date time.Time) ([]models.Appointment, error)

	// ForDoctorDateLocked is the write-path variant: it must lock the returned
	// rows for the remainder of the caller's transaction so the
	// check-then-insert sequence is serialized per (doctorID, date).
	// excludeID, when non-zero, drops that appointment from the result.
	ForDoctorDateLocked(ctx context.Context, doctorID uint, date time.Time, excludeID uint) ([]models.Appointment, error)
}

// ConflictChecker decides whether a candidate window collides with an
// existing non-cancelled appointment.
type ConflictChecker struct {
	source AppointmentSource
}

func NewConflictChecker(source AppointmentSource) *ConflictChecker {
	return &ConflictChecker{source: source}
}

// occupied filters out cancelled rows and projects the rest onto windows.
func occupied(appointments []models.Appointment) []Window {
	windows := make([]Window, 0, len(appointments))
	for _, appt := range appointments {
		if appt.Status == models.StatusCancelled {
			continue
		}
		windows = append(windows, Window{StartTime: appt.StartTime, EndTime: appt.EndTime})
	}
	return windows
}

func firstOverlap(busy []Window, w Window) *Window {
	for _, b := range busy {
		if b.Overlaps(w) {
			hit := b
			return &hit
		}
	}
	return nil
}

// HasConflict reports whether the window overlaps any non-cancelled
// appointment for the doctor on the date.
func (c *ConflictChecker) HasConflict(ctx context.Context, doctorID uint, date time.Time, w Window) (bool, error) {
	if !w.Valid() {
		return false, ErrInvalidWindow
	}
	busy, err := c.BusyWindows(ctx, doctorID, date)
	if err != nil {
		return false, err
	}
	return firstOverlap(busy, w) != nil, nil
}

// BusyWindows returns the occupied windows for the doctor on the date.
func (c *ConflictChecker) BusyWindows(ctx context.Context, doctorID uint, date time.Time) ([]Window, error) {
	appointments, err := c.source.ForDoctorDate(ctx, doctorID, date)
	if err != nil {
		return nil, err
	}
	return occupied(appointments), nil
}

// FreeWindows returns the subsequence of candidates with no conflict.
func (c *ConflictChecker) FreeWindows(ctx context.Context, doctorID uint, date time.Time, candidates []Window) ([]Window, error) {
	busy, err := c.BusyWindows(ctx, doctorID, date)
	if err != nil {
		return nil, err
	}
	free := make([]Window, 0, len(candidates))
	for _, cand := range candidates {
		if !cand.Valid() {
			return nil, ErrInvalidWindow
		}
		if firstOverlap(busy, cand) == nil {
			free = append(free, cand)
		}
	}
	return free, nil
}
