package sentences

import "fmt"

// Validator checks a generated sentence.
// Implementations should be stateless and safe for concurrent use.
type Validator interface {
	// Name returns a short identifier for this validator (for error
	// messages and logging), e.g. "structural", "word-count", "dedup".
	Name() string

	// Validate checks the sentence text and returns nil if it passes.
	// The validator receives the full GenerateInput for context (level
	// band, recent sentences).
	Validate(text string, input GenerateInput) *ValidationError
}

// ValidationError describes why a sentence was rejected.
type ValidationError struct {
	Validator string // Name of the validator that failed
	Message   string // Human-readable description of the failure
	Retryable bool   // Whether regeneration is likely to fix this
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}
