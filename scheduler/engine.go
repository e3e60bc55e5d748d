package scheduler

import (
	"context"
	"time"

	"github.com/clinicflow/clinic-api/models"
)

// DoctorSource reads doctor records for the availability engine. The engine
// only ever touches the weekly template and filter columns, never profile
// fields.
type DoctorSource interface {
	Get(ctx context.Context, id uint) (*models.Doctor, error)
	List(ctx context.Context, filter DoctorFilter) ([]models.Doctor, error)
}

// DoctorFilter narrows the doctor set by plain membership; zero means "any".
type DoctorFilter struct {
	DepartmentID uint
	ProcedureID  uint
}

// AvailabilityFilter is the query shape of DoctorsAvailableFor.
type AvailabilityFilter struct {
	DoctorFilter
	Date     *time.Time
	Time     *models.TimeOfDay
	Duration time.Duration
}

// Engine composes slot generation and conflict checking into the availability
// queries. It holds no mutable state; every answer is recomputed from the
// template and the appointment store.
type Engine struct {
	doctors DoctorSource
	checker *ConflictChecker
	clock   Clock
}

func NewEngine(doctors DoctorSource, appointments AppointmentSource, clock Clock) *Engine {
	if clock == nil {
		clock = SystemClock()
	}
	return &Engine{
		doctors: doctors,
		checker: NewConflictChecker(appointments),
		clock:   clock,
	}
}

// SlotsForDate returns the day's candidate slots with final availability
// flags. Break-blocked slots are reported unavailable without consulting the
// appointment store; the rest are checked against booked windows.
func (e *Engine) SlotsForDate(ctx context.Context, doctorID uint, date time.Time, duration time.Duration) ([]Slot, error) {
	doctor, err := e.doctors.Get(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	return e.slotsForDoctorDate(ctx, doctor, date, duration)
}

func (e *Engine) slotsForDoctorDate(ctx context.Context, doctor *models.Doctor, date time.Time, duration time.Duration) ([]Slot, error) {
	day := doctor.WeeklyTemplate.Day(date.Weekday())
	slots, err := GenerateSlots(day, duration)
	if err != nil {
		return nil, err
	}
	if len(slots) == 0 {
		return slots, nil
	}

	busy, err := e.checker.BusyWindows(ctx, doctor.ID, date)
	if err != nil {
		return nil, err
	}
	for i := range slots {
		if slots[i].Available && firstOverlap(busy, slots[i].Window()) != nil {
			slots[i].Available = false
		}
	}
	return slots, nil
}

// SlotsForRange maps each date in [from, to] to its slots, keyed by
// YYYY-MM-DD. Days the template marks fully unavailable are omitted rather
// than reported empty; an inverted range yields an empty map.
func (e *Engine) SlotsForRange(ctx context.Context, doctorID uint, from, to time.Time, duration time.Duration) (map[string][]Slot, error) {
	if duration < time.Minute || duration%time.Minute != 0 {
		return nil, ErrInvalidDuration
	}
	doctor, err := e.doctors.Get(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	out := make(map[string][]Slot)
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if !doctor.WeeklyTemplate.Day(d.Weekday()).Available {
			continue
		}
		slots, err := e.slotsForDoctorDate(ctx, doctor, d, duration)
		if err != nil {
			return nil, err
		}
		out[d.Format("2006-01-02")] = slots
	}
	return out, nil
}

// DoctorsAvailableFor narrows doctors by department/procedure membership and,
// when a date or time is requested, by actual schedule availability. With
// neither date nor time it returns every doctor whose template declares at
// least one working day, computing no slots at all.
func (e *Engine) DoctorsAvailableFor(ctx context.Context, filter AvailabilityFilter) ([]models.Doctor, error) {
	doctors, err := e.doctors.List(ctx, filter.DoctorFilter)
	if err != nil {
		return nil, err
	}

	if filter.Date == nil && filter.Time == nil {
		available := make([]models.Doctor, 0, len(doctors))
		for _, doc := range doctors {
			if !doc.WeeklyTemplate.Empty() {
				available = append(available, doc)
			}
		}
		return available, nil
	}

	if filter.Duration < time.Minute || filter.Duration%time.Minute != 0 {
		return nil, ErrInvalidDuration
	}

	date := e.clock.Now()
	if filter.Date != nil {
		date = *filter.Date
	}

	available := make([]models.Doctor, 0, len(doctors))
	for i := range doctors {
		ok, err := e.doctorFree(ctx, &doctors[i], date, filter.Time, filter.Duration)
		if err != nil {
			return nil, err
		}
		if ok {
			available = append(available, doctors[i])
		}
	}
	return available, nil
}

// doctorFree decides availability for one doctor. A requested time is a
// specific instant, not a generated grid point: the window [time, time+d)
// must fit inside the working hours, clear of the break and of every booked
// appointment. Without a time, any available generated slot qualifies.
func (e *Engine) doctorFree(ctx context.Context, doctor *models.Doctor, date time.Time, at *models.TimeOfDay, duration time.Duration) (bool, error) {
	day := doctor.WeeklyTemplate.Day(date.Weekday())
	if !day.Available {
		return false, nil
	}

	if at == nil {
		slots, err := e.slotsForDoctorDate(ctx, doctor, date, duration)
		if err != nil {
			return false, err
		}
		for _, slot := range slots {
			if slot.Available {
				return true, nil
			}
		}
		return false, nil
	}

	requested := Window{StartTime: *at, EndTime: at.Add(duration)}
	if !WithinWorkingHours(day, requested) {
		return false, nil
	}
	conflict, err := e.checker.HasConflict(ctx, doctor.ID, date, requested)
	if err != nil {
		return false, err
	}
	return !conflict, nil
}

// WithinWorkingHours reports whether the window fits inside the day's working
// hours without touching the break. The booking write path deliberately does
// not enforce this; it is an opt-in check for callers.
func WithinWorkingHours(day models.DaySchedule, w Window) bool {
	if !day.Available || !w.Valid() {
		return false
	}
	working := Window{StartTime: day.StartTime, EndTime: day.EndTime}
	if !working.Contains(w) {
		return false
	}
	if day.Break != nil {
		pause := Window{StartTime: day.Break.StartTime, EndTime: day.Break.EndTime}
		if w.Overlaps(pause) {
			return false
		}
	}
	return true
}
