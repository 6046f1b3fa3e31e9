package sentences

import (
	"fmt"
	"strings"
)

// maxSentenceLength bounds the text so narration requests and the
// practice view stay manageable.
const maxSentenceLength = 200

// StructuralValidator checks that the sentence is present, bounded and
// terminated.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(text string, _ GenerateInput) *ValidationError {
	if text == "" {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "sentence text is empty",
			Retryable: true,
		}
	}
	if len(text) > maxSentenceLength {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("sentence exceeds %d characters", maxSentenceLength),
			Retryable: true,
		}
	}
	if !hasTerminator(text) {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("sentence %q does not end with terminal punctuation", text),
			Retryable: true,
		}
	}
	return nil
}

// hasTerminator reports whether the text ends a sentence. The set matches
// what phrase segmentation treats as a boundary.
func hasTerminator(text string) bool {
	return strings.HasSuffix(text, ".") ||
		strings.HasSuffix(text, "!") ||
		strings.HasSuffix(text, "?")
}
