package scheduler

import (
	"time"

	"github.com/clinicflow/clinic-api/models"
)

// GenerateSlots turns one weekday of a doctor's template into the ordered
// candidate slots of the given duration. Starting at the working window's
// start it steps forward by duration; a trailing slot that would overrun the
// end of the window is dropped. Slots intersecting the break are marked
// unavailable here, before any appointment is consulted. An unavailable day
// yields no slots.
func GenerateSlots(day models.DaySchedule, duration time.Duration) ([]Slot, error) {
	if duration < time.Minute || duration%time.Minute != 0 {
		return nil, ErrInvalidDuration
	}
	if !day.Available {
		return []Slot{}, nil
	}
	if day.StartTime >= day.EndTime {
		return nil, ErrInvalidWindow
	}

	step := models.TimeOfDay(duration / time.Minute)
	slots := make([]Slot, 0, int((day.EndTime-day.StartTime)/step))
	for cur := day.StartTime; cur+step <= day.EndTime; cur += step {
		slot := Slot{StartTime: cur, EndTime: cur + step, Available: true}
		if day.Break != nil {
			pause := Window{StartTime: day.Break.StartTime, EndTime: day.Break.EndTime}
			if slot.Window().Overlaps(pause) {
				slot.Available = false
			}
		}
		slots = append(slots, slot)
	}
	return slots, nil
}
