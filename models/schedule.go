package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// TimeOfDay is a clock time with minute precision, stored as minutes since
// midnight so interval comparisons stay plain integer comparisons.
type TimeOfDay int

const MinutesPerDay = 24 * 60

// ParseTimeOfDay parses a "HH:MM" 24h string.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q, expected HH:MM", s)
	}
	return TimeOfDay(t.Hour()*60 + t.Minute()), nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// Add steps the time forward by a whole number of minutes.
func (t TimeOfDay) Add(d time.Duration) TimeOfDay {
	return t + TimeOfDay(d/time.Minute)
}

func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// BreakWindow is the optional mid-day pause inside a working day.
type BreakWindow struct {
	StartTime TimeOfDay `json:"start_time"`
	EndTime   TimeOfDay `json:"end_time"`
}

// DaySchedule describes one weekday of a doctor's recurring schedule. When
// Available is false the remaining fields are ignored.
type DaySchedule struct {
	Available bool         `json:"available"`
	StartTime TimeOfDay    `json:"start_time,omitempty"`
	EndTime   TimeOfDay    `json:"end_time,omitempty"`
	Break     *BreakWindow `json:"break,omitempty"`
}

// WeeklyTemplate maps lowercase English weekday names to day schedules. It is
// owned by exactly one doctor and replaced wholesale on every doctor write.
type WeeklyTemplate map[string]DaySchedule

var weekdayKeys = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// WeekdayKey returns the template key for a weekday.
func WeekdayKey(d time.Weekday) string {
	switch d {
	case time.Sunday:
		return "sunday"
	case time.Monday:
		return "monday"
	case time.Tuesday:
		return "tuesday"
	case time.Wednesday:
		return "wednesday"
	case time.Thursday:
		return "thursday"
	case time.Friday:
		return "friday"
	default:
		return "saturday"
	}
}

// Day returns the schedule for a weekday. A missing day reads as unavailable.
func (wt WeeklyTemplate) Day(d time.Weekday) DaySchedule {
	return wt[WeekdayKey(d)]
}

// Empty reports whether the template declares no working day at all.
func (wt WeeklyTemplate) Empty() bool {
	for _, day := range wt {
		if day.Available {
			return false
		}
	}
	return true
}

// ValidationError describes a malformed weekly template. It is raised at
// doctor write time so the scheduling engine only ever sees valid templates.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid weekly template: %s: %s", e.Field, e.Reason)
}

// Validate checks weekday keys, window ordering and break containment.
func (wt WeeklyTemplate) Validate() error {
	for key, day := range wt {
		if _, ok := weekdayKeys[key]; !ok {
			return &ValidationError{Field: key, Reason: "unknown weekday"}
		}
		if !day.Available {
			continue
		}
		if day.StartTime < 0 || day.EndTime > MinutesPerDay {
			return &ValidationError{Field: key, Reason: "working hours outside the day"}
		}
		if day.StartTime >= day.EndTime {
			return &ValidationError{Field: key, Reason: "start_time must be before end_time"}
		}
		if day.Break == nil {
			continue
		}
		if day.Break.StartTime >= day.Break.EndTime {
			return &ValidationError{Field: key, Reason: "break start must be before break end"}
		}
		if day.Break.StartTime < day.StartTime || day.Break.EndTime > day.EndTime {
			return &ValidationError{Field: key, Reason: "break must fall within working hours"}
		}
	}
	return nil
}

// Value implements driver.Valuer so the template persists as a JSONB column.
func (wt WeeklyTemplate) Value() (driver.Value, error) {
	jsonData, err := json.Marshal(wt)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface.
func (wt *WeeklyTemplate) Scan(value interface{}) error {
	if value == nil {
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("failed to unmarshal WeeklyTemplate: unsupported type %T", value)
	}

	return json.Unmarshal(data, wt)
}
