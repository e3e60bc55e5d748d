package scheduler

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	require.NoError(t, err)
	return db, mock
}

// The advisory lock on the doctor-day key must be taken before the rows are
// read. Without it two first bookings of an empty day both read an empty set
// and both insert.
func TestForDoctorDateLockedTakesDayLockFirst(t *testing.T) {
	db, mock := newMockDB(t)
	source := NewGormAppointmentSource(db)
	date := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	mock.ExpectExec(regexp.QuoteMeta("SELECT pg_advisory_xact_lock")).
		WithArgs(7, "2025-06-02").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("FOR UPDATE").
		WithArgs(7, "2025-06-02", 0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "doctor_id", "start_time", "end_time", "status"}).
			AddRow(3, 7, 600, 660, "scheduled"))

	appointments, err := source.ForDoctorDateLocked(context.Background(), 7, date, 0)
	require.NoError(t, err)
	require.Len(t, appointments, 1)
	assert.Equal(t, uint(3), appointments[0].ID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

// An empty day still takes the lock; the read returning no rows is not a
// reason to skip serialization.
func TestForDoctorDateLockedLocksEmptyDay(t *testing.T) {
	db, mock := newMockDB(t)
	source := NewGormAppointmentSource(db)
	date := time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)

	mock.ExpectExec(regexp.QuoteMeta("SELECT pg_advisory_xact_lock")).
		WithArgs(7, "2025-06-03").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("FOR UPDATE").
		WithArgs(7, "2025-06-03", 0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "doctor_id", "start_time", "end_time", "status"}))

	appointments, err := source.ForDoctorDateLocked(context.Background(), 7, date, 0)
	require.NoError(t, err)
	assert.Empty(t, appointments)

	assert.NoError(t, mock.ExpectationsWereMet())
}

// Updates exclude the appointment being moved from its own conflict set at
// the SQL level.
func TestForDoctorDateLockedExcludesOwnRow(t *testing.T) {
	db, mock := newMockDB(t)
	source := NewGormAppointmentSource(db)
	date := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	mock.ExpectExec(regexp.QuoteMeta("SELECT pg_advisory_xact_lock")).
		WithArgs(7, "2025-06-02").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("FOR UPDATE").
		WithArgs(7, "2025-06-02", 42).
		WillReturnRows(sqlmock.NewRows([]string{"id", "doctor_id", "start_time", "end_time", "status"}))

	_, err := source.ForDoctorDateLocked(context.Background(), 7, date, 42)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
