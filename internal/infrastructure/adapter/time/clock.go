package time

import (
	"time"

	"github.com/saukimart/sauki-backend/internal/domain/port/core"
)

// RealClock implements core.Clock with the wall clock, always in UTC.
type RealClock struct{}

// NewRealClock creates a new wall clock
func NewRealClock() core.Clock {
	return RealClock{}
}

// Now returns the current time in UTC
func (RealClock) Now() time.Time {
	return time.Now().UTC()
}

// FixedClock always reports the same instant
type FixedClock struct {
	At time.Time
}

// Now returns the fixed instant
func (c FixedClock) Now() time.Time {
	return c.At
}
