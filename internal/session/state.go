package session

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/shadowbox/internal/pace"
)

// Phase is the lifecycle position of a session.
type Phase int

const (
	PhaseIdle     Phase = iota // created, not started
	PhaseActive                // practicing phrases
	PhaseComplete              // finished or abandoned; terminal for this instance
)

// Mode selects how the session progresses between repetitions.
type Mode string

const (
	// ModeSkip advances only on an explicit skip; answers are not scored.
	ModeSkip Mode = "skip"
	// ModeCheck scores a typed answer against the narrated phrase.
	ModeCheck Mode = "check"
	// ModeAutoSkip advances hands-free after each narration.
	ModeAutoSkip Mode = "auto-skip"
)

// ParseMode validates a mode string from config or flags.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeSkip, ModeCheck, ModeAutoSkip:
		return Mode(s), nil
	}
	return "", fmt.Errorf("unknown practice mode %q (want skip, check or auto-skip)", s)
}

// Config selects the setup for one practice session.
type Config struct {
	// Sentence is the raw practice text. Must be non-empty after trimming.
	Sentence string

	// Language is the code recorded with completions ("en", "de", ...).
	Language string

	// Mode is fixed for the session's duration.
	Mode Mode

	// Level caps phrase length together with the newness ramp.
	Level pace.Level

	// Reps is the target repetitions per phrase; pace.AutoReps derives it
	// from PracticesToday.
	Reps int

	// Rate is the narration rate; pace.AutoRate derives it from
	// PracticesToday.
	Rate float64

	// RecordingOn requests capture of the user's repetition. The driver
	// forces it off when no recorder is available.
	RecordingOn bool

	// PracticesToday is the persistence snapshot of completed practices
	// for this sentence today. Read failures are passed in as zero.
	PracticesToday int

	// StartIndex resumes a previously saved position. Values outside the
	// word range start from zero.
	StartIndex int

	// Timing overrides the default delays; the zero value selects
	// DefaultTiming.
	Timing Timing
}

// State is the value object for one practice run. It is mutated only by
// the transition functions in this package and never shared across
// sessions.
type State struct {
	// ID is the UUID recorded with completions and recordings.
	ID string

	// Sentence is the trimmed practice text (the persistence key).
	Sentence string

	// Language travels with completions and recordings.
	Language string

	// Words is the tokenized sentence, immutable once the session starts.
	Words []string

	// Mode is fixed for the session's duration.
	Mode Mode

	// Level caps phrase length together with the newness ramp.
	Level pace.Level

	// Index is the first word of the pending phrase. It advances
	// monotonically to len(Words), at which point the session completes.
	Index int

	// Count is the repetitions completed on the current phrase, reset to
	// zero whenever Index advances.
	Count int

	// Reps is the resolved target repetitions per phrase.
	Reps int

	// Correct and Attempts accumulate check-mode scoring for the whole
	// session; they are never reset mid-session.
	Correct  int
	Attempts int

	// SelectedReps keeps the configured rep count (possibly the auto
	// sentinel) so restarts can re-resolve Reps.
	SelectedReps int

	// BaseRate is the configured narration rate (possibly the auto
	// sentinel).
	BaseRate float64

	// PracticesToday is the newness counter snapshot for this session.
	PracticesToday int

	// RecordingOn is whether capture is requested for each phrase.
	RecordingOn bool

	// Phase is the lifecycle position.
	Phase Phase

	// Epoch invalidates scheduled work: narration completions and timer
	// firings carry the Epoch they were created under and are dropped on
	// mismatch. Every transition that supersedes pending work bumps it.
	Epoch int

	// PhraseStart is the sentence-segment start for highlighting, always
	// at or before Index.
	PhraseStart int

	// PhraseEnd is the exclusive end of the current phrase, cached by the
	// last step.
	PhraseEnd int

	// LastRate is the rate used by the most recent narration.
	LastRate float64

	// StartedAt anchors the summary duration.
	StartedAt time.Time

	// Timing holds the named delays used when scheduling effects.
	Timing Timing

	// recActive is whether a capture cycle has been started and not yet
	// stopped.
	recActive bool
}

// ErrEmptySentence rejects a session over no words.
var ErrEmptySentence = errors.New("session: sentence is empty")

// NewState builds an idle session from cfg. The sentence is tokenized
// here, exactly once; an empty sentence is rejected synchronously.
func NewState(cfg Config) (*State, error) {
	sentence := strings.TrimSpace(cfg.Sentence)
	if sentence == "" {
		return nil, ErrEmptySentence
	}

	practices := cfg.PracticesToday
	if practices < 0 {
		practices = 0
	}

	words := strings.Fields(sentence)

	start := cfg.StartIndex
	if start < 0 || start >= len(words) {
		start = 0
	}

	timing := cfg.Timing
	if timing == (Timing{}) {
		timing = DefaultTiming()
	}

	return &State{
		ID:             uuid.New().String(),
		Sentence:       sentence,
		Language:       cfg.Language,
		Words:          words,
		Mode:           cfg.Mode,
		Level:          cfg.Level,
		Index:          start,
		SelectedReps:   cfg.Reps,
		BaseRate:       cfg.Rate,
		PracticesToday: practices,
		RecordingOn:    cfg.RecordingOn,
		Phase:          PhaseIdle,
		Timing:         timing,
	}, nil
}

// Progress reports completed words out of the total, for progress bars.
func (s *State) Progress() (done, total int) {
	return s.Index, len(s.Words)
}

// Recording reports whether a capture cycle is currently open.
func (s *State) Recording() bool {
	return s.recActive
}
