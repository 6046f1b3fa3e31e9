package sentences

import "context"

// Generator produces practice sentences using an LLM provider.
type Generator interface {
	// Generate produces a batch of sentences for the given input.
	// Sentences failing validation are dropped; the call errors only
	// when nothing survives.
	Generate(ctx context.Context, input GenerateInput) ([]string, error)
}
