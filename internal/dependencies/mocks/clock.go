package mocks

import (
	"time"

	"github.com/mcoot/lifecounter/internal/dependencies/clock"
)

// MockClock is a manually driven Clock for tests. With a non-zero Step every
// read moves the clock forward afterwards, so a scripted sequence of actions
// sees time pass between them.
type MockClock struct {
	CurrentTime time.Time
	Step        time.Duration

	// Reads counts calls to Now
	Reads int
}

// Ensure MockClock implements Clock
var _ clock.Clock = (*MockClock)(nil)

// NewMockClock creates a MockClock stopped at the given time
func NewMockClock(t time.Time) *MockClock {
	return &MockClock{CurrentTime: t}
}

// Now returns the mocked current time, then applies Step
func (c *MockClock) Now() time.Time {
	now := c.CurrentTime
	c.Reads++
	c.CurrentTime = c.CurrentTime.Add(c.Step)
	return now
}

// Advance moves the clock forward by the given duration
func (c *MockClock) Advance(d time.Duration) {
	c.CurrentTime = c.CurrentTime.Add(d)
}

// Set jumps the clock to t
func (c *MockClock) Set(t time.Time) {
	c.CurrentTime = t
}
