package scheduler

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalidWindow rejects windows whose start is not before their end.
	ErrInvalidWindow = errors.New("scheduler: window start must be before window end")

	// ErrInvalidDuration rejects non-positive or sub-minute slot durations.
	ErrInvalidDuration = errors.New("scheduler: duration must be a positive whole number of minutes")

	// ErrDoctorNotFound is returned for an unknown doctor id.
	ErrDoctorNotFound = errors.New("scheduler: doctor not found")
)

// ConflictError reports that a requested window overlaps an existing
// non-cancelled appointment. It carries the conflicting window so callers can
// show a specific message; suggesting alternatives is the caller's job.
type ConflictError struct {
	DoctorID uint
	Date     time.Time
	Conflict Window
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("doctor %d already booked on %s from %s to %s",
		e.DoctorID, e.Date.Format("2006-01-02"), e.Conflict.StartTime, e.Conflict.EndTime)
}
