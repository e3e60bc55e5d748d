package scheduler

import (
	"github.com/clinicflow/clinic-api/models"
)

// Window is a half-open interval [Start, End) on a single calendar date.
type Window struct {
	StartTime models.TimeOfDay `json:"start_time"`
	EndTime   models.TimeOfDay `json:"end_time"`
}

// Valid reports whether the window is non-empty and correctly ordered.
func (w Window) Valid() bool {
	return w.StartTime < w.EndTime
}

// Overlaps applies the half-open overlap rule: two windows conflict iff each
// one starts before the other ends. Back-to-back windows never overlap.
func (w Window) Overlaps(o Window) bool {
	return w.StartTime < o.EndTime && o.StartTime < w.EndTime
}

// Contains reports whether o fits entirely inside w.
func (w Window) Contains(o Window) bool {
	return w.StartTime <= o.StartTime && o.EndTime <= w.EndTime
}

// Slot is a candidate bookable window. It is derived on every query and never
// persisted.
type Slot struct {
	StartTime models.TimeOfDay `json:"start_time"`
	EndTime   models.TimeOfDay `json:"end_time"`
	Available bool             `json:"available"`
}

// Window returns the slot's time window.
func (s Slot) Window() Window {
	return Window{StartTime: s.StartTime, EndTime: s.EndTime}
}
