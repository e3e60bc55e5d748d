package scheduler

import "time"

// Clock supplies the current time. Queries that default a missing date to
// "today" go through it so availability answers stay deterministic in tests.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns the wall clock.
func SystemClock() Clock { return systemClock{} }
