package sentences

import (
	"fmt"

	"github.com/abhisek/shadowbox/internal/textnorm"
)

// DedupValidator rejects sentences the user already has. Comparison uses
// the same normalization as answer scoring, so casing and punctuation
// differences don't slip duplicates through.
type DedupValidator struct{}

func (v *DedupValidator) Name() string { return "dedup" }

func (v *DedupValidator) Validate(text string, input GenerateInput) *ValidationError {
	key := textnorm.CleanText(text)
	for _, r := range input.Recent {
		if textnorm.CleanText(r) == key {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("duplicate of existing sentence %q", r),
				Retryable: true,
			}
		}
	}
	return nil
}
