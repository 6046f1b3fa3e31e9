package session

import "time"

// Effect is a side effect requested by a transition: narration, capture,
// persistence, or a timer. Transitions return effects in execution order;
// the driving layer performs them and routes completions back through
// NarrationDone, AutoAdvance, Resume and AutoRestart with the Epoch
// stamped on the effect. A stale Epoch means the session has moved on and the
// completion must be dropped.
type Effect interface {
	effect()
}

// Narrate speaks Text at Rate. The driver must report completion exactly
// once via NarrationDone, with the measured duration, even when the
// narration engine fails.
type Narrate struct {
	Text  string
	Rate  float64
	Epoch int
}

// StartRecording opens a capture cycle After the lead delay, measured
// from narration start. If a previous stop is still in flight the driver
// waits for it first; capture cycles never overlap.
type StartRecording struct {
	After time.Duration
	Epoch int
}

// StopRecording closes the open capture cycle. The finished clip is saved
// by the driver with the session's sentence, language and timestamp.
type StopRecording struct{}

// ShowFeedback carries one scored (or skipped) answer for the feedback
// line.
type ShowFeedback struct {
	// Target is the narrated phrase as displayed (junk-trimmed, original
	// case).
	Target string

	// Answer is the raw user input.
	Answer string

	// Similarity and Correct hold the scoring outcome. Both are zero
	// values when Skipped.
	Similarity float64
	Correct    bool

	// Skipped marks an empty answer: the repetition was consumed without
	// an attempt.
	Skipped bool

	// Count and Reps report repetition progress on the phrase after this
	// answer.
	Count int
	Reps  int
}

// ScheduleResume re-enters the session after a UI pause; deliver via
// Resume.
type ScheduleResume struct {
	After time.Duration
	Epoch int
}

// ScheduleAutoAdvance fires the hands-free progression for the current
// phrase; deliver via AutoAdvance.
type ScheduleAutoAdvance struct {
	After time.Duration
	Epoch int
}

// ScheduleRestart restarts a finished auto-skip session; deliver via
// AutoRestart.
type ScheduleRestart struct {
	After time.Duration
	Epoch int
}

// SaveProgress persists the advanced position for the sentence so a later
// session can resume from it.
type SaveProgress struct {
	Index int
}

// Completed carries the final summary. Emitted exactly once per finished
// session; the driver records the completion and clears saved progress.
type Completed struct {
	Summary Summary
}

func (Narrate) effect()             {}
func (StartRecording) effect()      {}
func (StopRecording) effect()       {}
func (ShowFeedback) effect()        {}
func (ScheduleResume) effect()      {}
func (ScheduleAutoAdvance) effect() {}
func (ScheduleRestart) effect()     {}
func (SaveProgress) effect()        {}
func (Completed) effect()           {}
