package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicflow/clinic-api/models"
)

func TestGenerateSlotsFillsWorkingWindow(t *testing.T) {
	day := workday(hm(9, 0), hm(17, 0), nil)

	slots, err := GenerateSlots(day, time.Hour)
	require.NoError(t, err)
	require.Len(t, slots, 8)

	assert.Equal(t, hm(9, 0), slots[0].StartTime)
	assert.Equal(t, hm(17, 0), slots[7].EndTime)
	for _, slot := range slots {
		assert.True(t, slot.Available)
		assert.LessOrEqual(t, slot.EndTime, day.EndTime)
	}
}

func TestGenerateSlotsDropsPartialTrailingSlot(t *testing.T) {
	day := workday(hm(9, 0), hm(17, 30), nil)

	slots, err := GenerateSlots(day, time.Hour)
	require.NoError(t, err)
	// 17:00-18:00 would overrun 17:30, so the count stays floor(L/d).
	require.Len(t, slots, 8)
	assert.Equal(t, hm(17, 0), slots[7].EndTime)
}

func TestGenerateSlotsMarksBreakSlotsUnavailable(t *testing.T) {
	day := workday(hm(9, 0), hm(17, 0), &models.BreakWindow{StartTime: hm(13, 0), EndTime: hm(14, 0)})

	slots, err := GenerateSlots(day, time.Hour)
	require.NoError(t, err)
	require.Len(t, slots, 8)

	for _, slot := range slots {
		if slot.StartTime == hm(13, 0) {
			assert.False(t, slot.Available, "slot inside the break must be unavailable")
		} else {
			assert.True(t, slot.Available, "slot at %s should be available", slot.StartTime)
		}
	}
}

func TestGenerateSlotsBreakPartialOverlap(t *testing.T) {
	// A break that straddles two slot boundaries blocks both slots.
	day := workday(hm(9, 0), hm(17, 0), &models.BreakWindow{StartTime: hm(13, 30), EndTime: hm(14, 30)})

	slots, err := GenerateSlots(day, time.Hour)
	require.NoError(t, err)

	blocked := map[models.TimeOfDay]bool{}
	for _, slot := range slots {
		if !slot.Available {
			blocked[slot.StartTime] = true
		}
	}
	assert.Equal(t, map[models.TimeOfDay]bool{hm(13, 0): true, hm(14, 0): true}, blocked)
}

func TestGenerateSlotsUnavailableDay(t *testing.T) {
	slots, err := GenerateSlots(models.DaySchedule{Available: false}, time.Hour)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGenerateSlotsRejectsBadDuration(t *testing.T) {
	day := workday(hm(9, 0), hm(17, 0), nil)

	_, err := GenerateSlots(day, 0)
	assert.ErrorIs(t, err, ErrInvalidDuration)

	_, err = GenerateSlots(day, 90*time.Second)
	assert.ErrorIs(t, err, ErrInvalidDuration)

	_, err = GenerateSlots(day, -time.Hour)
	assert.ErrorIs(t, err, ErrInvalidDuration)
}

func TestGenerateSlotsRejectsInvertedWindow(t *testing.T) {
	day := workday(hm(17, 0), hm(9, 0), nil)

	_, err := GenerateSlots(day, time.Hour)
	assert.ErrorIs(t, err, ErrInvalidWindow)
}

func TestGenerateSlotsDurationLongerThanWindow(t *testing.T) {
	day := workday(hm(9, 0), hm(9, 30), nil)

	slots, err := GenerateSlots(day, time.Hour)
	require.NoError(t, err)
	assert.Empty(t, slots)
}
