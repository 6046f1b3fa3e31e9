package store

import (
	"context"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil database handle")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so we skip journal_mode here. It is tested with file-based DBs.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	for _, table := range []string{"practices", "progress", "recordings", "sentences", "llm_request_events"} {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %s: %v", table, err)
		}
	}
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var seqs []int64
	for i := 0; i < 5; i++ {
		seq, err := s.seq.Next(ctx)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		seqs = append(seqs, seq)
	}

	// Should be monotonically increasing starting from 1.
	for i, seq := range seqs {
		expected := int64(i + 1)
		if seq != expected {
			t.Errorf("seq[%d] = %d, want %d", i, seq, expected)
		}
	}
}

func TestPracticeCompletionsAndCounts(t *testing.T) {
	s := openTestStore(t)
	repo := s.PracticeRepo()
	ctx := context.Background()

	base := Practice{
		SessionID: "s1",
		Sentence:  "Guten Morgen zusammen.",
		Language:  "de",
		Mode:      "check",
		Accuracy:  80,
		Correct:   4,
		Attempts:  5,
		Duration:  90 * time.Second,
	}
	for i := 0; i < 2; i++ {
		if err := repo.RecordCompletion(ctx, base); err != nil {
			t.Fatalf("record completion %d: %v", i, err)
		}
	}
	other := base
	other.SessionID = "s2"
	other.Sentence = "How are you?"
	other.Language = "en"
	other.Accuracy = 100
	other.Correct = 5
	if err := repo.RecordCompletion(ctx, other); err != nil {
		t.Fatalf("record completion: %v", err)
	}

	n, err := repo.CountToday(ctx, base.Sentence)
	if err != nil {
		t.Fatalf("count today: %v", err)
	}
	if n != 2 {
		t.Errorf("count today = %d, want 2", n)
	}

	n, err = repo.CountToday(ctx, "never practiced")
	if err != nil {
		t.Fatalf("count today: %v", err)
	}
	if n != 0 {
		t.Errorf("count today (unseen) = %d, want 0", n)
	}

	hist, err := repo.History(ctx, 2)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(hist) != 2 {
		t.Fatalf("history length = %d, want 2", len(hist))
	}
	if hist[0].Sentence != other.Sentence {
		t.Errorf("newest history row = %q, want %q", hist[0].Sentence, other.Sentence)
	}
	if hist[0].Duration != 90*time.Second {
		t.Errorf("duration = %v, want 90s", hist[0].Duration)
	}

	totals, err := repo.Totals(ctx)
	if err != nil {
		t.Fatalf("totals: %v", err)
	}
	// Mean accuracy over (80, 80, 100) rounds to 87.
	want := Totals{Practices: 3, Sentences: 2, Days: 1, Attempts: 15, Correct: 13, AvgAccuracy: 87}
	if totals != want {
		t.Errorf("totals = %+v, want %+v", totals, want)
	}

	langs, err := repo.LanguageStats(ctx)
	if err != nil {
		t.Fatalf("language stats: %v", err)
	}
	wantLangs := []LanguageStat{
		{Language: "de", Practices: 2, AvgAccuracy: 80},
		{Language: "en", Practices: 1, AvgAccuracy: 100},
	}
	if len(langs) != len(wantLangs) {
		t.Fatalf("language stats length = %d, want %d", len(langs), len(wantLangs))
	}
	for i, w := range wantLangs {
		if langs[i] != w {
			t.Errorf("language stat %d = %+v, want %+v", i, langs[i], w)
		}
	}
}

func TestPracticeDays(t *testing.T) {
	s := openTestStore(t)
	repo := s.PracticeRepo()
	ctx := context.Background()

	now := time.Now()
	for _, ts := range []time.Time{now.Add(-48 * time.Hour), now.Add(-24 * time.Hour), now} {
		p := Practice{SessionID: "s", Sentence: "x", Language: "en", Mode: "skip", Timestamp: ts}
		if err := repo.RecordCompletion(ctx, p); err != nil {
			t.Fatalf("record completion: %v", err)
		}
	}

	days, err := repo.Days(ctx)
	if err != nil {
		t.Fatalf("days: %v", err)
	}
	if len(days) != 3 {
		t.Fatalf("days = %v, want 3 entries", days)
	}
	if days[0] != now.Format("2006-01-02") {
		t.Errorf("days[0] = %q, want today", days[0])
	}
}

func TestProgressLifecycle(t *testing.T) {
	s := openTestStore(t)
	repo := s.PracticeRepo()
	ctx := context.Background()
	sentence := "Je voudrais un café."

	_, found, err := repo.Progress(ctx, sentence)
	if err != nil {
		t.Fatalf("progress (empty): %v", err)
	}
	if found {
		t.Fatal("found progress before any was saved")
	}

	if err := repo.SaveProgress(ctx, sentence, 2); err != nil {
		t.Fatalf("save progress: %v", err)
	}
	if err := repo.SaveProgress(ctx, sentence, 4); err != nil {
		t.Fatalf("save progress (upsert): %v", err)
	}

	idx, found, err := repo.Progress(ctx, sentence)
	if err != nil {
		t.Fatalf("progress: %v", err)
	}
	if !found || idx != 4 {
		t.Errorf("progress = (%d, %v), want (4, true)", idx, found)
	}

	// A completion wipes the resume point.
	err = repo.RecordCompletion(ctx, Practice{SessionID: "s", Sentence: sentence, Language: "fr", Mode: "check"})
	if err != nil {
		t.Fatalf("record completion: %v", err)
	}
	_, found, err = repo.Progress(ctx, sentence)
	if err != nil {
		t.Fatalf("progress (after completion): %v", err)
	}
	if found {
		t.Error("resume point survived a completion")
	}

	if err := repo.SaveProgress(ctx, sentence, 1); err != nil {
		t.Fatalf("save progress: %v", err)
	}
	if err := repo.ClearProgress(ctx, sentence); err != nil {
		t.Fatalf("clear progress: %v", err)
	}
	_, found, _ = repo.Progress(ctx, sentence)
	if found {
		t.Error("resume point survived ClearProgress")
	}
}

func TestSentenceLibrary(t *testing.T) {
	s := openTestStore(t)
	repo := s.SentenceRepo()
	ctx := context.Background()

	empty, err := repo.Random(ctx, "")
	if err != nil {
		t.Fatalf("random (empty): %v", err)
	}
	if empty != nil {
		t.Fatal("random returned a sentence from an empty library")
	}

	id1, err := repo.Add(ctx, "Wie geht es dir?", "de", SourceUser)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if id1 == 0 {
		t.Fatal("add returned id 0")
	}

	// Duplicate text resolves to the existing row.
	id2, err := repo.Add(ctx, "Wie geht es dir?", "de", SourceBuiltin)
	if err != nil {
		t.Fatalf("add duplicate: %v", err)
	}
	if id2 != id1 {
		t.Errorf("duplicate add id = %d, want %d", id2, id1)
	}

	if _, err := repo.Add(ctx, "Where is the station?", "en", SourceBuiltin); err != nil {
		t.Fatalf("add: %v", err)
	}

	n, err := repo.Count(ctx, "")
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 2 {
		t.Errorf("count = %d, want 2", n)
	}

	de, err := repo.List(ctx, "de")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(de) != 1 || de[0].Text != "Wie geht es dir?" {
		t.Errorf("list(de) = %+v, want the German sentence", de)
	}

	pick, err := repo.Random(ctx, "en")
	if err != nil {
		t.Fatalf("random: %v", err)
	}
	if pick == nil || pick.Language != "en" {
		t.Errorf("random(en) = %+v, want an English sentence", pick)
	}

	if err := repo.Delete(ctx, id1); err != nil {
		t.Fatalf("delete: %v", err)
	}
	n, _ = repo.Count(ctx, "de")
	if n != 0 {
		t.Errorf("count(de) after delete = %d, want 0", n)
	}
}

func TestRecordings(t *testing.T) {
	s := openTestStore(t)
	repo := s.RecordingRepo()
	ctx := context.Background()

	for i, path := range []string{"/tmp/a.wav", "/tmp/b.wav"} {
		_, err := repo.Save(ctx, Recording{
			SessionID: "s1",
			Sentence:  "Hello there.",
			Language:  "en",
			Path:      path,
			Duration:  time.Duration(i+1) * time.Second,
		})
		if err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}

	recs, err := repo.BySentence(ctx, "Hello there.", 0)
	if err != nil {
		t.Fatalf("by sentence: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("recordings = %d, want 2", len(recs))
	}
	if recs[0].Path != "/tmp/b.wav" {
		t.Errorf("newest recording = %q, want /tmp/b.wav", recs[0].Path)
	}

	recs, err = repo.BySentence(ctx, "Hello there.", 1)
	if err != nil {
		t.Fatalf("by sentence (limit): %v", err)
	}
	if len(recs) != 1 {
		t.Errorf("limited recordings = %d, want 1", len(recs))
	}

	n, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 2 {
		t.Errorf("count = %d, want 2", n)
	}
}

func TestLLMEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	err := repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider:     "anthropic",
		Model:        "m1",
		Purpose:      "sentence_generation",
		InputTokens:  100,
		OutputTokens: 50,
		LatencyMs:    1200,
		Success:      true,
		RequestBody:  "[user]\ngenerate",
		ResponseBody: `{"sentences":[]}`,
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	err = repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider:     "anthropic",
		Model:        "m1",
		Purpose:      "sentence_generation",
		LatencyMs:    300,
		Success:      false,
		ErrorMessage: "rate limited",
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 1})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("events = %d, want 1", len(events))
	}
	if events[0].Success {
		t.Error("newest event should be the failure")
	}
	if events[0].ErrorMessage != "rate limited" {
		t.Errorf("error message = %q", events[0].ErrorMessage)
	}

	all, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query all: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("events = %d, want 2", len(all))
	}

	got, err := repo.GetLLMEvent(ctx, all[1].ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil || got.RequestBody != "[user]\ngenerate" {
		t.Errorf("event = %+v, want the stored request body", got)
	}

	missing, err := repo.GetLLMEvent(ctx, 9999)
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if missing != nil {
		t.Errorf("missing event = %+v, want nil", missing)
	}

	usage, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("usage: %v", err)
	}
	if len(usage) != 1 {
		t.Fatalf("usage rows = %d, want 1", len(usage))
	}
	u := usage[0]
	if u.Purpose != "sentence_generation" || u.Requests != 2 || u.Failures != 1 ||
		u.InputTokens != 100 || u.OutputTokens != 50 {
		t.Errorf("usage = %+v", u)
	}
}
