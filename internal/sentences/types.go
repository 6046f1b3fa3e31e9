package sentences

import "github.com/abhisek/shadowbox/internal/pace"

// GenerateInput holds all context needed to generate a sentence batch.
type GenerateInput struct {
	// Language is the target language code, e.g. "de" or "en".
	Language string

	// Level selects the word-count band generated sentences must fit.
	Level pace.Level

	// Topic optionally steers vocabulary, e.g. "ordering food".
	// Empty means no topic constraint.
	Topic string

	// Count is how many sentences to request. Clamped to 1-MaxCount;
	// zero means DefaultCount.
	Count int

	// Recent contains sentences the user already has. Included in the
	// prompt's avoid list and enforced by the dedup validator.
	Recent []string
}
