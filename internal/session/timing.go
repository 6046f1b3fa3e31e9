package session

import "time"

// Timing names every delay the session schedules. Transitions never touch
// the clock themselves; they emit effects carrying these durations, so
// tests can drive the machine with a zero Timing and no real sleeps.
type Timing struct {
	// RecordLead delays capture start after narration begins, so the
	// leading edge of the synthesized voice is not clipped.
	RecordLead time.Duration

	// FeedbackPause is how long a scored answer stays on screen before
	// the next step or the finish.
	FeedbackPause time.Duration

	// SkipNotice is how long the 0-of-N notice lingers when the final
	// repetition of a phrase is skipped in check mode.
	SkipNotice time.Duration

	// AutoAdvanceFactor scales the narration duration into the auto-skip
	// wait before the next repetition or phrase.
	AutoAdvanceFactor float64

	// MinAutoAdvance floors the auto-skip wait when narration reports no
	// usable duration.
	MinAutoAdvance time.Duration

	// AutoRestartWait is the pause before an auto-skip session restarts
	// itself after finishing.
	AutoRestartWait time.Duration
}

// DefaultTiming returns the delays used by the interactive app.
func DefaultTiming() Timing {
	return Timing{
		RecordLead:        50 * time.Millisecond,
		FeedbackPause:     1200 * time.Millisecond,
		SkipNotice:        1200 * time.Millisecond,
		AutoAdvanceFactor: 1.5,
		MinAutoAdvance:    500 * time.Millisecond,
		AutoRestartWait:   5 * time.Second,
	}
}
