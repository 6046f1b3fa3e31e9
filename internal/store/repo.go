package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int   // max results (0 = unlimited)
	After  int64 // sequence > After
	Before int64 // sequence < Before
}

// Practice is one completed practice run of a sentence.
type Practice struct {
	ID        int64
	Sequence  int64
	SessionID string
	Sentence  string
	Language  string
	Mode      string
	Accuracy  int
	Correct   int
	Attempts  int
	Duration  time.Duration
	Timestamp time.Time
}

// Totals aggregates the whole practice history for the stats view.
type Totals struct {
	Practices   int
	Sentences   int
	Days        int
	Attempts    int
	Correct     int
	AvgAccuracy int // mean per-practice accuracy, percent
}

// LanguageStat aggregates the practices of one language.
type LanguageStat struct {
	Language    string
	Practices   int
	AvgAccuracy int // mean per-practice accuracy, percent
}

// PracticeRepo manages completed practices and per-sentence resume points.
// The sentence text (trimmed, original case) is the key for both.
type PracticeRepo interface {
	// RecordCompletion appends a completed practice and clears any saved
	// resume point for the sentence.
	RecordCompletion(ctx context.Context, p Practice) error

	// CountToday returns how many times the sentence was completed today
	// (local time).
	CountToday(ctx context.Context, sentence string) (int, error)

	// SaveProgress upserts the resume point for a sentence.
	SaveProgress(ctx context.Context, sentence string, wordIndex int) error

	// Progress returns the saved resume point, reporting whether one
	// exists.
	Progress(ctx context.Context, sentence string) (int, bool, error)

	// ClearProgress removes the resume point for a sentence.
	ClearProgress(ctx context.Context, sentence string) error

	// History returns recent practices, newest first. limit <= 0 means
	// all.
	History(ctx context.Context, limit int) ([]Practice, error)

	// Days returns the distinct local days with at least one practice,
	// newest first, formatted as 2006-01-02.
	Days(ctx context.Context) ([]string, error)

	// Totals aggregates the whole history.
	Totals(ctx context.Context) (Totals, error)

	// LanguageStats aggregates practices per language, most practiced
	// first.
	LanguageStats(ctx context.Context) ([]LanguageStat, error)
}

// Recording is the metadata row for one captured repetition; the audio
// itself lives at Path.
type Recording struct {
	ID        int64
	SessionID string
	Sentence  string
	Language  string
	Path      string
	Duration  time.Duration
	CreatedAt time.Time
}

// RecordingRepo manages capture metadata.
type RecordingRepo interface {
	// Save appends a recording row and returns its id.
	Save(ctx context.Context, rec Recording) (int64, error)

	// BySentence returns recordings of a sentence, newest first. limit <=
	// 0 means all.
	BySentence(ctx context.Context, sentence string, limit int) ([]Recording, error)

	// Count returns the total number of recordings.
	Count(ctx context.Context) (int, error)
}

// Sentence is one entry in the practice library.
type Sentence struct {
	ID        int64
	Text      string
	Language  string
	Source    string
	CreatedAt time.Time
}

// Sentence sources.
const (
	SourceUser      = "user"
	SourceBuiltin   = "builtin"
	SourceGenerated = "generated"
)

// SentenceRepo manages the practice library.
type SentenceRepo interface {
	// Add inserts a sentence, deduplicating on exact text. It returns the
	// row id, existing or new.
	Add(ctx context.Context, text, language, source string) (int64, error)

	// List returns sentences, newest first, optionally filtered by
	// language ("" = all).
	List(ctx context.Context, language string) ([]Sentence, error)

	// Random returns one random sentence, optionally filtered by language
	// ("" = all), or nil when the library is empty.
	Random(ctx context.Context, language string) (*Sentence, error)

	// Delete removes a sentence by id.
	Delete(ctx context.Context, id int64) error

	// Count returns the number of sentences, optionally filtered by
	// language ("" = all).
	Count(ctx context.Context, language string) (int, error)
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	RequestBody  string
	ResponseBody string
	ErrorMessage string
}

// LLMRequestEventRecord is a stored LLM request event.
type LLMRequestEventRecord struct {
	ID        int64
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsageStats aggregates LLM usage for one purpose.
type LLMUsageStats struct {
	Purpose      string
	Requests     int
	Failures     int
	InputTokens  int
	OutputTokens int
}

// LLMModelUsage aggregates LLM usage for one model.
type LLMModelUsage struct {
	Model        string
	Requests     int
	InputTokens  int
	OutputTokens int
}

// EventRepo provides append and query access to LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns events newest first, honoring opts.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEventRecord, error)

	// GetLLMEvent returns one event by id, or nil when absent.
	GetLLMEvent(ctx context.Context, id int64) (*LLMRequestEventRecord, error)

	// LLMUsageByPurpose aggregates usage per purpose.
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsageStats, error)

	// LLMUsageByModel aggregates usage per model.
	LLMUsageByModel(ctx context.Context) ([]LLMModelUsage, error)
}
