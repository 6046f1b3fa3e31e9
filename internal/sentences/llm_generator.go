package sentences

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abhisek/shadowbox/internal/llm"
	"github.com/abhisek/shadowbox/internal/textnorm"
)

// LLMGenerator implements Generator using the LLM provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
}

// New creates a new LLMGenerator with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMGenerator {
	return &LLMGenerator{provider: provider, config: cfg}
}

// packOutput is the raw LLM response before validation.
type packOutput struct {
	Sentences []struct {
		Text string `json:"text"`
	} `json:"sentences"`
}

// Generate produces a batch of sentences for the given input. Each
// sentence runs through the validator chain; failures are dropped, and
// duplicates within the batch collapse to the first occurrence. Generate
// errors only when nothing survives.
func (g *LLMGenerator) Generate(ctx context.Context, input GenerateInput) ([]string, error) {
	ctx = llm.WithPurpose(ctx, "sentence_generation")

	if input.Count <= 0 {
		input.Count = DefaultCount
	}
	if input.Count > MaxCount {
		input.Count = MaxCount
	}

	userMsg := buildUserMessage(input, g.config)

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: userMsg},
		},
		Schema:      PackSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	var raw packOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}

	var out []string
	var firstErr *ValidationError
	seen := make(map[string]bool, len(raw.Sentences))

	for _, s := range raw.Sentences {
		text := strings.TrimSpace(s.Text)

		if verr := g.validate(text, input); verr != nil {
			if firstErr == nil {
				firstErr = verr
			}
			continue
		}

		key := textnorm.CleanText(text)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, text)
	}

	if len(out) == 0 {
		if firstErr != nil {
			return nil, firstErr
		}
		return nil, fmt.Errorf("LLM returned no sentences")
	}

	return out, nil
}

// validate runs the configured validators in order.
func (g *LLMGenerator) validate(text string, input GenerateInput) *ValidationError {
	for _, v := range g.config.Validators {
		if verr := v.Validate(text, input); verr != nil {
			return verr
		}
	}
	return nil
}
