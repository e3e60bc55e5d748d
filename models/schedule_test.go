package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hm(h, m int) TimeOfDay {
	return TimeOfDay(h*60 + m)
}

func TestParseTimeOfDay(t *testing.T) {
	parsed, err := ParseTimeOfDay("09:30")
	require.NoError(t, err)
	assert.Equal(t, hm(9, 30), parsed)
	assert.Equal(t, "09:30", parsed.String())

	_, err = ParseTimeOfDay("9:30am")
	assert.Error(t, err)

	_, err = ParseTimeOfDay("25:00")
	assert.Error(t, err)
}

func TestTimeOfDayJSONRoundTrip(t *testing.T) {
	data, err := json.Marshal(hm(14, 5))
	require.NoError(t, err)
	assert.Equal(t, `"14:05"`, string(data))

	var parsed TimeOfDay
	require.NoError(t, json.Unmarshal([]byte(`"08:15"`), &parsed))
	assert.Equal(t, hm(8, 15), parsed)
}

func validTemplate() WeeklyTemplate {
	return WeeklyTemplate{
		"monday": {
			Available: true,
			StartTime: hm(9, 0),
			EndTime:   hm(17, 0),
			Break:     &BreakWindow{StartTime: hm(13, 0), EndTime: hm(14, 0)},
		},
		"tuesday": {Available: false},
	}
}

func TestWeeklyTemplateValidate(t *testing.T) {
	assert.NoError(t, validTemplate().Validate())
}

func TestWeeklyTemplateValidateUnknownWeekday(t *testing.T) {
	tpl := validTemplate()
	tpl["funday"] = DaySchedule{Available: true, StartTime: hm(9, 0), EndTime: hm(17, 0)}

	var verr *ValidationError
	require.ErrorAs(t, tpl.Validate(), &verr)
	assert.Equal(t, "funday", verr.Field)
}

func TestWeeklyTemplateValidateInvertedWindow(t *testing.T) {
	tpl := WeeklyTemplate{
		"monday": {Available: true, StartTime: hm(17, 0), EndTime: hm(9, 0)},
	}
	assert.Error(t, tpl.Validate())

	tpl["monday"] = DaySchedule{Available: true, StartTime: hm(9, 0), EndTime: hm(9, 0)}
	assert.Error(t, tpl.Validate())
}

func TestWeeklyTemplateValidateBreakOutsideWindow(t *testing.T) {
	tpl := WeeklyTemplate{
		"monday": {
			Available: true,
			StartTime: hm(9, 0),
			EndTime:   hm(17, 0),
			Break:     &BreakWindow{StartTime: hm(8, 0), EndTime: hm(10, 0)},
		},
	}
	assert.Error(t, tpl.Validate())

	tpl["monday"] = DaySchedule{
		Available: true,
		StartTime: hm(9, 0),
		EndTime:   hm(17, 0),
		Break:     &BreakWindow{StartTime: hm(14, 0), EndTime: hm(13, 0)},
	}
	assert.Error(t, tpl.Validate())
}

func TestWeeklyTemplateUnavailableDayIgnoresFields(t *testing.T) {
	// An unavailable day carries no constraints, whatever the other fields say.
	tpl := WeeklyTemplate{
		"monday": {Available: false, StartTime: hm(17, 0), EndTime: hm(9, 0)},
	}
	assert.NoError(t, tpl.Validate())
}

func TestWeeklyTemplateDayAndEmpty(t *testing.T) {
	tpl := validTemplate()
	assert.True(t, tpl.Day(time.Monday).Available)
	assert.False(t, tpl.Day(time.Tuesday).Available)
	assert.False(t, tpl.Day(time.Sunday).Available, "missing day reads as unavailable")
	assert.False(t, tpl.Empty())

	assert.True(t, WeeklyTemplate{}.Empty())
	assert.True(t, WeeklyTemplate{"tuesday": {Available: false}}.Empty())
}

func TestWeeklyTemplateValueScanRoundTrip(t *testing.T) {
	tpl := validTemplate()

	value, err := tpl.Value()
	require.NoError(t, err)

	var scanned WeeklyTemplate
	require.NoError(t, scanned.Scan(value))
	assert.Equal(t, tpl, scanned)
}
