package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var _ Clock = (*SystemClock)(nil)

func TestSystemClockReadsWallClock(t *testing.T) {
	c := New()

	before := time.Now()
	now := c.Now()
	after := time.Now()

	assert.False(t, now.Before(before))
	assert.False(t, now.After(after))
}
