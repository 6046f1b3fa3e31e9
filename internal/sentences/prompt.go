package sentences

import (
	"fmt"
	"strings"
)

const systemPrompt = `You write practice sentences for language learners doing shadowing drills: the learner hears a sentence and repeats it aloud.

Rules:
- Write natural, everyday sentences a native speaker would actually say.
- Write in the target language only. No translations, no romanization, no surrounding quotes.
- Every sentence must end with ".", "!" or "?".
- Stay inside the requested word range. Contractions and hyphenated words count as one word.
- Match the level: common high-frequency vocabulary for beginner, broader vocabulary and longer clauses for higher levels.
- Vary sentence openings and structures across the batch.
- Do not repeat any sentence from the "avoid" list.`

// buildUserMessage constructs the user message from GenerateInput and Config limits.
func buildUserMessage(input GenerateInput, cfg Config) string {
	level, band := bandForLevel(input.Level)

	var b strings.Builder

	fmt.Fprintf(&b, "Language: %s\n", input.Language)
	fmt.Fprintf(&b, "Level: %s (%d-%d words per sentence)\n", level, band.min, band.max)
	if input.Topic != "" {
		fmt.Fprintf(&b, "Topic: %s\n", input.Topic)
	}
	fmt.Fprintf(&b, "Sentences: %d\n", input.Count)

	b.WriteString("\nAvoid repeating:\n")
	b.WriteString(buildAvoidList(input.Recent, cfg.MaxRecent))

	return b.String()
}

// buildAvoidList formats existing sentences for the prompt, respecting the
// max limit. Returns "None" if there is nothing to avoid.
func buildAvoidList(recent []string, max int) string {
	if len(recent) == 0 {
		return "None"
	}

	// Keep only the most recent N sentences.
	if max > 0 && len(recent) > max {
		recent = recent[len(recent)-max:]
	}

	var b strings.Builder
	for i, s := range recent {
		fmt.Fprintf(&b, "%d. %s\n", i+1, s)
	}
	return strings.TrimRight(b.String(), "\n")
}
