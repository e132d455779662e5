package clock

import "time"

// Clock is the session's source of "now". Session timing and the feedback
// window read it instead of calling time.Now directly.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock
type SystemClock struct{}

// New creates a SystemClock
func New() *SystemClock {
	return &SystemClock{}
}

// Now returns the current wall-clock time
func (c *SystemClock) Now() time.Time {
	return time.Now()
}
