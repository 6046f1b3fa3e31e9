package practice

import (
	"time"

	"github.com/abhisek/shadowbox/internal/record"
)

// sessionReadyMsg carries the practice-history snapshot loaded at start.
type sessionReadyMsg struct {
	PracticesToday int
	ResumeIndex    int
	Err            error
}

// narrationDoneMsg is sent exactly once per Narrate effect, when playback
// ends or the engine fails.
type narrationDoneMsg struct {
	Epoch    int
	Duration time.Duration
	Err      error
}

// highlightTickMsg advances the spoken-word highlight during playback.
type highlightTickMsg struct {
	Epoch int
	Word  int
}

// recordLeadMsg fires after the capture lead delay.
type recordLeadMsg struct {
	Epoch int
}

// recordStartedMsg reports the outcome of opening a capture cycle.
type recordStartedMsg struct {
	Err error
}

// recordStoppedMsg carries the finished clip (or the stop error).
type recordStoppedMsg struct {
	Clip record.Clip
	Err  error
}

// resumeMsg re-enters the session after a feedback or skip pause.
type resumeMsg struct {
	Epoch int
}

// autoAdvanceMsg fires the hands-free progression in auto-skip mode.
type autoAdvanceMsg struct {
	Epoch int
}

// progressSavedMsg confirms a resume-point write.
type progressSavedMsg struct {
	Err error
}

// completionSavedMsg confirms the practice row was recorded; the screen
// hands off to the summary once it arrives.
type completionSavedMsg struct {
	Err error
}

// clipSavedMsg confirms a recording row was written.
type clipSavedMsg struct {
	Err error
}
