package scheduler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicflow/clinic-api/models"
)

func TestWindowOverlapIsSymmetric(t *testing.T) {
	cases := []struct {
		name string
		a, b Window
		want bool
	}{
		{"disjoint", Window{hm(9, 0), hm(10, 0)}, Window{hm(11, 0), hm(12, 0)}, false},
		{"partial", Window{hm(10, 0), hm(11, 0)}, Window{hm(10, 30), hm(11, 30)}, true},
		{"contained", Window{hm(9, 0), hm(12, 0)}, Window{hm(10, 0), hm(11, 0)}, true},
		{"identical", Window{hm(10, 0), hm(11, 0)}, Window{hm(10, 0), hm(11, 0)}, true},
		{"back to back", Window{hm(10, 0), hm(11, 0)}, Window{hm(11, 0), hm(12, 0)}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.a.Overlaps(tc.b))
			assert.Equal(t, tc.want, tc.b.Overlaps(tc.a))
		})
	}
}

func TestHasConflictOverlappingAppointment(t *testing.T) {
	source := &fakeAppointments{appointments: []models.Appointment{
		appointment(1, 7, monday, hm(10, 0), hm(11, 0), models.StatusScheduled),
	}}
	checker := NewConflictChecker(source)

	conflict, err := checker.HasConflict(context.Background(), 7, monday, Window{hm(10, 30), hm(11, 30)})
	require.NoError(t, err)
	assert.True(t, conflict)
}

func TestHasConflictBackToBackIsFree(t *testing.T) {
	source := &fakeAppointments{appointments: []models.Appointment{
		appointment(1, 7, monday, hm(10, 0), hm(11, 0), models.StatusScheduled),
	}}
	checker := NewConflictChecker(source)

	conflict, err := checker.HasConflict(context.Background(), 7, monday, Window{hm(11, 0), hm(12, 0)})
	require.NoError(t, err)
	assert.False(t, conflict)
}

func TestHasConflictIgnoresCancelled(t *testing.T) {
	source := &fakeAppointments{appointments: []models.Appointment{
		appointment(1, 7, monday, hm(10, 0), hm(11, 0), models.StatusCancelled),
	}}
	checker := NewConflictChecker(source)

	conflict, err := checker.HasConflict(context.Background(), 7, monday, Window{hm(10, 30), hm(11, 30)})
	require.NoError(t, err)
	assert.False(t, conflict)
}

func TestHasConflictScopedToDoctorAndDate(t *testing.T) {
	tuesday := monday.AddDate(0, 0, 1)
	source := &fakeAppointments{appointments: []models.Appointment{
		appointment(1, 8, monday, hm(10, 0), hm(11, 0), models.StatusScheduled),  // other doctor
		appointment(2, 7, tuesday, hm(10, 0), hm(11, 0), models.StatusScheduled), // other date
	}}
	checker := NewConflictChecker(source)

	conflict, err := checker.HasConflict(context.Background(), 7, monday, Window{hm(10, 0), hm(11, 0)})
	require.NoError(t, err)
	assert.False(t, conflict)
}

func TestHasConflictRejectsInvertedWindow(t *testing.T) {
	checker := NewConflictChecker(&fakeAppointments{})

	_, err := checker.HasConflict(context.Background(), 7, monday, Window{hm(11, 0), hm(10, 0)})
	assert.ErrorIs(t, err, ErrInvalidWindow)

	_, err = checker.HasConflict(context.Background(), 7, monday, Window{hm(10, 0), hm(10, 0)})
	assert.ErrorIs(t, err, ErrInvalidWindow)
}

func TestFreeWindowsKeepsNonConflictingSubsequence(t *testing.T) {
	source := &fakeAppointments{appointments: []models.Appointment{
		appointment(1, 7, monday, hm(10, 0), hm(11, 0), models.StatusConfirmed),
		appointment(2, 7, monday, hm(14, 0), hm(15, 0), models.StatusScheduled),
	}}
	checker := NewConflictChecker(source)

	candidates := []Window{
		{hm(9, 0), hm(10, 0)},
		{hm(10, 0), hm(11, 0)},
		{hm(11, 0), hm(12, 0)},
		{hm(14, 30), hm(15, 30)},
		{hm(15, 0), hm(16, 0)},
	}

	free, err := checker.FreeWindows(context.Background(), 7, monday, candidates)
	require.NoError(t, err)
	assert.Equal(t, []Window{
		{hm(9, 0), hm(10, 0)},
		{hm(11, 0), hm(12, 0)},
		{hm(15, 0), hm(16, 0)},
	}, free)
}
