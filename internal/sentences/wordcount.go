package sentences

import (
	"fmt"
	"strings"

	"github.com/abhisek/shadowbox/internal/pace"
)

// wordBand is the allowed per-sentence word range for a level.
type wordBand struct {
	min, max int
}

var wordBands = map[pace.Level]wordBand{
	pace.Beginner:     {3, 8},
	pace.Intermediate: {4, 12},
	pace.Advanced:     {6, 20},
}

// bandForLevel resolves a level to its word band, falling back to
// intermediate for unknown levels.
func bandForLevel(level pace.Level) (pace.Level, wordBand) {
	if band, ok := wordBands[level]; ok {
		return level, band
	}
	return pace.Intermediate, wordBands[pace.Intermediate]
}

// WordCountValidator checks the sentence length against the level's
// word band.
type WordCountValidator struct{}

func (v *WordCountValidator) Name() string { return "word-count" }

func (v *WordCountValidator) Validate(text string, input GenerateInput) *ValidationError {
	level, band := bandForLevel(input.Level)
	n := len(strings.Fields(text))
	if n < band.min || n > band.max {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("sentence has %d words, want %d-%d for level %s", n, band.min, band.max, level),
			Retryable: true,
		}
	}
	return nil
}
