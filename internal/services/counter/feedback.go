package counter

import (
	"time"

	"github.com/mcoot/lifecounter/internal/model"
)

// DefaultFeedbackWindow is how long a run of adjustments to one player keeps
// accumulating
const DefaultFeedbackWindow = 5 * time.Second

// RecordFeedback folds a new adjustment into the accumulator. The running
// total continues only for the same player within window of the previous
// adjustment; otherwise it restarts at amount.
func RecordFeedback(prev model.Feedback, id model.PlayerID, amount int, now time.Time, window time.Duration) model.Feedback {
	current := CurrentFeedback(prev, now, window)
	if current.Active && current.PlayerID == id {
		current.Amount += amount
		current.LastAdjustedAt = now
		return current
	}
	return model.Feedback{
		PlayerID:       id,
		Active:         true,
		Amount:         amount,
		LastAdjustedAt: now,
	}
}

// CurrentFeedback returns the accumulator as seen at now, reverting to the
// inactive zero value once the window has elapsed
func CurrentFeedback(fb model.Feedback, now time.Time, window time.Duration) model.Feedback {
	if !fb.Active || now.Sub(fb.LastAdjustedAt) >= window {
		return model.Feedback{}
	}
	return fb
}
