package sentences

// Batch size bounds for a single generation request.
const (
	DefaultCount = 5
	MaxCount     = 10
)

// Config controls the behavior of the LLMGenerator.
type Config struct {
	// Validators is the ordered list of validators run on every
	// generated sentence. They execute in order; the first failure
	// drops the sentence.
	Validators []Validator

	// MaxTokens is the token budget for the LLM response.
	MaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64

	// MaxRecent is the maximum number of existing sentences to include
	// in the prompt's avoid list.
	MaxRecent int
}

// DefaultConfig returns a Config with the standard validator chain
// and recommended defaults.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
			&WordCountValidator{},
			&DedupValidator{},
		},
		MaxTokens:   512,
		Temperature: 0.8,
		MaxRecent:   12,
	}
}
