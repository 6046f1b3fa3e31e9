package sentences

import "github.com/abhisek/shadowbox/internal/llm"

// PackSchema defines the JSON schema for LLM sentence generation responses.
var PackSchema = &llm.Schema{
	Name:        "sentence-pack",
	Description: "A batch of practice sentences for shadowing drills",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"sentences": map[string]any{
				"type":        "array",
				"description": "The generated sentences, one object each, in the target language",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"text": map[string]any{
							"type":        "string",
							"description": "One complete sentence in the target language, ending with terminal punctuation",
						},
					},
					"required":             []any{"text"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"sentences"},
		"additionalProperties": false,
	},
}
