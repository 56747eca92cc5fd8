package application

import "time"

// Clock lets services take the current time from tests
type Clock interface {
	Now() time.Time
}

// SystemClock is the default, backed by time.Now in UTC
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }

// FixedClock always returns T.
type FixedClock struct{ T time.Time }

func (c FixedClock) Now() time.Time { return c.T }
