package sentences

import (
	"context"
	"fmt"
	"strings"

	"github.com/abhisek/shadowbox/internal/store"
)

// Library manages the practice sentence collection: built-in starters,
// user additions and generated batches.
type Library struct {
	repo store.SentenceRepo
	gen  Generator
}

// NewLibrary creates a Library over the given repo. gen may be nil when
// no LLM provider is configured; Generate then returns an error.
func NewLibrary(repo store.SentenceRepo, gen Generator) *Library {
	return &Library{repo: repo, gen: gen}
}

// Seed inserts the built-in starter sentences when the library is empty.
// Safe to call on every startup.
func (l *Library) Seed(ctx context.Context) error {
	n, err := l.repo.Count(ctx, "")
	if err != nil {
		return fmt.Errorf("count sentences: %w", err)
	}
	if n > 0 {
		return nil
	}
	for _, lang := range SampleLanguages() {
		for _, text := range Samples(lang) {
			if _, err := l.repo.Add(ctx, text, lang, store.SourceBuiltin); err != nil {
				return fmt.Errorf("seed %s starters: %w", lang, err)
			}
		}
	}
	return nil
}

// Add stores a user-supplied sentence.
func (l *Library) Add(ctx context.Context, text, language string) (int64, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, fmt.Errorf("sentence text is empty")
	}
	return l.repo.Add(ctx, text, language, store.SourceUser)
}

// List returns sentences, newest first ("" = all languages).
func (l *Library) List(ctx context.Context, language string) ([]store.Sentence, error) {
	return l.repo.List(ctx, language)
}

// Random picks one sentence for practice ("" = all languages). Returns
// nil when the library is empty.
func (l *Library) Random(ctx context.Context, language string) (*store.Sentence, error) {
	return l.repo.Random(ctx, language)
}

// Delete removes a sentence by id.
func (l *Library) Delete(ctx context.Context, id int64) error {
	return l.repo.Delete(ctx, id)
}

// Generate produces a batch via the LLM and stores every surviving
// sentence. When input.Recent is empty it is filled from the library,
// oldest first, so the prompt's avoid list ends with the newest entries.
func (l *Library) Generate(ctx context.Context, input GenerateInput) ([]store.Sentence, error) {
	if l.gen == nil {
		return nil, fmt.Errorf("no LLM provider configured")
	}

	if len(input.Recent) == 0 {
		existing, err := l.repo.List(ctx, input.Language)
		if err != nil {
			return nil, fmt.Errorf("list existing sentences: %w", err)
		}
		for i := len(existing) - 1; i >= 0; i-- {
			input.Recent = append(input.Recent, existing[i].Text)
		}
	}

	texts, err := l.gen.Generate(ctx, input)
	if err != nil {
		return nil, err
	}

	out := make([]store.Sentence, 0, len(texts))
	for _, text := range texts {
		id, err := l.repo.Add(ctx, text, input.Language, store.SourceGenerated)
		if err != nil {
			return nil, fmt.Errorf("store generated sentence: %w", err)
		}
		out = append(out, store.Sentence{
			ID:       id,
			Text:     text,
			Language: input.Language,
			Source:   store.SourceGenerated,
		})
	}
	return out, nil
}
