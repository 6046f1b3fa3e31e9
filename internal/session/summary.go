package session

import (
	"math"
	"time"
)

// Summary captures the outcome of a finished session.
type Summary struct {
	// SessionID is the session's unique identifier.
	SessionID string

	// Sentence is the practiced sentence.
	Sentence string

	// Language is the BCP 47 tag the sentence was practiced in.
	Language string

	// Mode is the interaction mode the session ran under.
	Mode Mode

	// Accuracy is the percentage of scored attempts that passed,
	// rounded to the nearest whole number. Sessions with no scored
	// attempts report 100.
	Accuracy int

	// Correct is the number of attempts that met the pass threshold.
	Correct int

	// Attempts is the number of scored attempts.
	Attempts int

	// Duration is the wall-clock time from start to finish.
	Duration time.Duration
}

// NewSummary builds the summary for s at the moment it finishes.
func NewSummary(s *State) Summary {
	accuracy := 100
	if s.Attempts > 0 {
		accuracy = int(math.Round(float64(s.Correct) / float64(s.Attempts) * 100))
	}
	return Summary{
		SessionID: s.ID,
		Sentence:  s.Sentence,
		Language:  s.Language,
		Mode:      s.Mode,
		Accuracy:  accuracy,
		Correct:   s.Correct,
		Attempts:  s.Attempts,
		Duration:  time.Since(s.StartedAt),
	}
}
