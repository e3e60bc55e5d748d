package scheduler

import (
	"context"
	"time"
)

// BookingValidator is the write-path guard: appointment create and time-field
// update handlers call it before committing. It checks conflicts only; whether
// the window falls inside the doctor's declared working hours is left to the
// caller (out-of-hours bookings stay possible, e.g. emergency overrides).
//
// The source must be bound to the surrounding write transaction: the locked
// read keeps the day's rows held until commit, so two concurrent bookings for
// overlapping windows cannot both pass the check.
type BookingValidator struct {
	source AppointmentSource
}

func NewBookingValidator(source AppointmentSource) *BookingValidator {
	return &BookingValidator{source: source}
}

// ValidateNew rejects a proposed appointment window that overlaps an existing
// non-cancelled appointment for the doctor on the date.
func (v *BookingValidator) ValidateNew(ctx context.Context, doctorID uint, date time.Time, w Window) error {
	return v.validate(ctx, 0, doctorID, date, w)
}

// ValidateUpdate is ValidateNew with the appointment being rescheduled
// excluded from the comparison set; an appointment never conflicts with its
// own prior state.
func (v *BookingValidator) ValidateUpdate(ctx context.Context, appointmentID, doctorID uint, date time.Time, w Window) error {
	return v.validate(ctx, appointmentID, doctorID, date, w)
}

func (v *BookingValidator) validate(ctx context.Context, excludeID, doctorID uint, date time.Time, w Window) error {
	if !w.Valid() {
		return ErrInvalidWindow
	}
	appointments, err := v.source.ForDoctorDateLocked(ctx, doctorID, date, excludeID)
	if err != nil {
		return err
	}
	if hit := firstOverlap(occupied(appointments), w); hit != nil {
		return &ConflictError{DoctorID: doctorID, Date: date, Conflict: *hit}
	}
	return nil
}
