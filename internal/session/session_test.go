package session

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/abhisek/shadowbox/internal/pace"
)

func testConfig() Config {
	return Config{
		Sentence:       "Hello there. How are you?",
		Language:       "en",
		Mode:           ModeCheck,
		Level:          pace.Intermediate,
		Reps:           1,
		Rate:           1.0,
		PracticesToday: 2,
	}
}

func startSession(t *testing.T, cfg Config) (*State, []Effect) {
	t.Helper()
	s, err := NewState(cfg)
	if err != nil {
		t.Fatalf("NewState: %v", err)
	}
	effects := Start(s)
	if s.Phase != PhaseActive {
		t.Fatalf("phase after Start = %d, want PhaseActive", s.Phase)
	}
	return s, effects
}

func effectOf[T Effect](t *testing.T, effects []Effect) T {
	t.Helper()
	for _, e := range effects {
		if v, ok := e.(T); ok {
			return v
		}
	}
	var zero T
	t.Fatalf("no %T in effects %#v", zero, effects)
	return zero
}

func hasEffect[T Effect](effects []Effect) bool {
	for _, e := range effects {
		if _, ok := e.(T); ok {
			return true
		}
	}
	return false
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestNewState(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantErr   error
		wantIndex int
		wantToday int
	}{
		{name: "valid"},
		{
			name:    "empty sentence",
			mutate:  func(c *Config) { c.Sentence = "" },
			wantErr: ErrEmptySentence,
		},
		{
			name:    "whitespace only",
			mutate:  func(c *Config) { c.Sentence = "  \t\n " },
			wantErr: ErrEmptySentence,
		},
		{
			name:   "negative practices clamped",
			mutate: func(c *Config) { c.PracticesToday = -3 },
		},
		{
			name:      "start index kept in range",
			mutate:    func(c *Config) { c.StartIndex = 2 },
			wantIndex: 2,
			wantToday: 2,
		},
		{
			name:      "start index past end resets",
			mutate:    func(c *Config) { c.StartIndex = 99 },
			wantToday: 2,
		},
		{
			name:      "negative start index resets",
			mutate:    func(c *Config) { c.StartIndex = -1 },
			wantToday: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			if tt.mutate != nil {
				tt.mutate(&cfg)
			}

			s, err := NewState(cfg)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("NewState error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewState: %v", err)
			}

			if s.ID == "" {
				t.Error("ID is empty")
			}
			if s.Phase != PhaseIdle {
				t.Errorf("Phase = %d, want PhaseIdle", s.Phase)
			}
			if len(s.Words) != 5 {
				t.Errorf("len(Words) = %d, want 5", len(s.Words))
			}
			if s.Index != tt.wantIndex {
				t.Errorf("Index = %d, want %d", s.Index, tt.wantIndex)
			}
			if tt.name == "negative practices clamped" && s.PracticesToday != 0 {
				t.Errorf("PracticesToday = %d, want 0", s.PracticesToday)
			}
			if s.Timing == (Timing{}) {
				t.Error("zero Timing was not replaced with defaults")
			}
		})
	}
}

func TestParseMode(t *testing.T) {
	for _, valid := range []string{"skip", "check", "auto-skip"} {
		if _, err := ParseMode(valid); err != nil {
			t.Errorf("ParseMode(%q) error: %v", valid, err)
		}
	}
	if _, err := ParseMode("listen"); err == nil {
		t.Error("ParseMode(\"listen\") succeeded, want error")
	}
}

func TestStartNarratesFirstPhrase(t *testing.T) {
	s, effects := startSession(t, testConfig())

	n := effectOf[Narrate](t, effects)
	if n.Text != "Hello there" {
		t.Errorf("narrated %q, want %q", n.Text, "Hello there")
	}
	if !near(n.Rate, 1.0) {
		t.Errorf("rate = %v, want 1.0", n.Rate)
	}
	if n.Epoch != s.Epoch {
		t.Errorf("narrate epoch = %d, state epoch = %d", n.Epoch, s.Epoch)
	}
	if s.PhraseStart != 0 || s.PhraseEnd != 2 {
		t.Errorf("phrase bounds = [%d,%d), want [0,2)", s.PhraseStart, s.PhraseEnd)
	}
	if s.Reps != 1 {
		t.Errorf("Reps = %d, want 1", s.Reps)
	}

	if again := Start(s); again != nil {
		t.Errorf("second Start returned effects %#v, want nil", again)
	}
}

func TestStartResumesFromSavedIndex(t *testing.T) {
	cfg := testConfig()
	cfg.StartIndex = 2
	s, effects := startSession(t, cfg)

	n := effectOf[Narrate](t, effects)
	if n.Text != "How are you" {
		t.Errorf("narrated %q, want %q", n.Text, "How are you")
	}
	if s.PhraseStart != 2 {
		t.Errorf("PhraseStart = %d, want 2", s.PhraseStart)
	}
}

func TestAutoRepsResolvedAtStart(t *testing.T) {
	tests := []struct {
		selected int
		today    int
		want     int
	}{
		{selected: 0, today: 0, want: 5},
		{selected: 0, today: 3, want: 2},
		{selected: 0, today: 9, want: 1},
		{selected: 2, today: 0, want: 2},
	}
	for _, tt := range tests {
		cfg := testConfig()
		cfg.Reps = tt.selected
		cfg.PracticesToday = tt.today
		s, _ := startSession(t, cfg)
		if s.Reps != tt.want {
			t.Errorf("reps(selected=%d, today=%d) = %d, want %d",
				tt.selected, tt.today, s.Reps, tt.want)
		}
	}
}

// Walks a whole check-mode session: two phrases, one repetition each, both
// answered correctly.
func TestCheckModeFullSession(t *testing.T) {
	s, effects := startSession(t, testConfig())

	if got := effectOf[Narrate](t, effects).Text; got != "Hello there" {
		t.Fatalf("first phrase = %q, want %q", got, "Hello there")
	}

	effects = CheckAnswer(s, "hello there")
	fb := effectOf[ShowFeedback](t, effects)
	if !fb.Correct || !near(fb.Similarity, 1.0) {
		t.Errorf("feedback = %+v, want correct with similarity 1", fb)
	}
	if fb.Target != "Hello there" {
		t.Errorf("feedback target = %q, want %q", fb.Target, "Hello there")
	}
	if fb.Count != 1 || fb.Reps != 1 {
		t.Errorf("feedback count %d/%d, want 1/1", fb.Count, fb.Reps)
	}
	if got := effectOf[SaveProgress](t, effects).Index; got != 2 {
		t.Errorf("saved index = %d, want 2", got)
	}
	pause := effectOf[ScheduleResume](t, effects)
	if pause.After != s.Timing.FeedbackPause {
		t.Errorf("resume after %v, want %v", pause.After, s.Timing.FeedbackPause)
	}

	effects = Resume(s, pause.Epoch)
	if got := effectOf[Narrate](t, effects).Text; got != "How are you" {
		t.Fatalf("second phrase = %q, want %q", got, "How are you")
	}

	effects = CheckAnswer(s, "How are you?")
	if fb := effectOf[ShowFeedback](t, effects); !fb.Correct {
		t.Errorf("punctuated answer scored incorrect: %+v", fb)
	}
	if got := effectOf[SaveProgress](t, effects).Index; got != 5 {
		t.Errorf("saved index = %d, want 5", got)
	}

	effects = Resume(s, effectOf[ScheduleResume](t, effects).Epoch)
	done := effectOf[Completed](t, effects)
	if s.Phase != PhaseComplete {
		t.Errorf("phase = %d, want PhaseComplete", s.Phase)
	}
	if done.Summary.Accuracy != 100 || done.Summary.Correct != 2 || done.Summary.Attempts != 2 {
		t.Errorf("summary = %+v, want 100%% over 2/2", done.Summary)
	}
	if hasEffect[ScheduleRestart](effects) {
		t.Error("check mode scheduled a restart")
	}
}

func TestWrongAnswersConsumeRepetitions(t *testing.T) {
	cfg := testConfig()
	cfg.Sentence = "Alpha beta gamma delta"
	cfg.Reps = 2
	cfg.PracticesToday = 10
	s, effects := startSession(t, cfg)

	if got := effectOf[Narrate](t, effects).Text; got != "Alpha beta gamma delta" {
		t.Fatalf("phrase = %q, want whole sentence", got)
	}

	effects = CheckAnswer(s, "wrong words here now")
	fb := effectOf[ShowFeedback](t, effects)
	if fb.Correct || !near(fb.Similarity, 0) {
		t.Errorf("feedback = %+v, want incorrect with similarity 0", fb)
	}
	if hasEffect[SaveProgress](effects) {
		t.Error("progress saved before repetitions were consumed")
	}

	effects = Resume(s, effectOf[ScheduleResume](t, effects).Epoch)
	if got := effectOf[Narrate](t, effects).Text; got != "Alpha beta gamma delta" {
		t.Fatalf("re-step narrated %q, want same phrase", got)
	}
	if s.Index != 0 {
		t.Errorf("Index = %d, want 0 until reps consumed", s.Index)
	}

	effects = CheckAnswer(s, "still not even close")
	if got := effectOf[SaveProgress](t, effects).Index; got != 4 {
		t.Errorf("saved index = %d, want 4 after final failed rep", got)
	}

	effects = Resume(s, effectOf[ScheduleResume](t, effects).Epoch)
	sum := effectOf[Completed](t, effects).Summary
	if sum.Attempts != 2 || sum.Correct != 0 || sum.Accuracy != 0 {
		t.Errorf("summary = %+v, want 0%% over 0/2", sum)
	}
}

func TestEmptyAnswerSkips(t *testing.T) {
	t.Run("mid repetition re-steps immediately", func(t *testing.T) {
		cfg := testConfig()
		cfg.Reps = 3
		s, _ := startSession(t, cfg)

		effects := CheckAnswer(s, "   ")
		fb := effectOf[ShowFeedback](t, effects)
		if !fb.Skipped || fb.Count != 1 {
			t.Errorf("feedback = %+v, want skipped at count 1", fb)
		}
		if s.Attempts != 0 {
			t.Errorf("Attempts = %d, want 0 after skip", s.Attempts)
		}
		if !hasEffect[Narrate](effects) {
			t.Error("skip did not re-narrate the phrase")
		}
		if hasEffect[ScheduleResume](effects) {
			t.Error("mid-rep skip scheduled a pause")
		}
	})

	t.Run("final repetition lingers in check mode", func(t *testing.T) {
		cfg := testConfig()
		cfg.Reps = 2
		s, _ := startSession(t, cfg)

		CheckAnswer(s, "")
		effects := CheckAnswer(s, "")
		pause := effectOf[ScheduleResume](t, effects)
		if pause.After != s.Timing.SkipNotice {
			t.Errorf("pause = %v, want SkipNotice %v", pause.After, s.Timing.SkipNotice)
		}
		if got := effectOf[SaveProgress](t, effects).Index; got != 2 {
			t.Errorf("saved index = %d, want 2", got)
		}
	})

	t.Run("single repetition advances immediately", func(t *testing.T) {
		s, _ := startSession(t, testConfig())

		effects := CheckAnswer(s, "")
		if pause := effectOf[ScheduleResume](t, effects); pause.After != 0 {
			t.Errorf("pause = %v, want 0", pause.After)
		}
	})

	t.Run("skip mode never lingers", func(t *testing.T) {
		cfg := testConfig()
		cfg.Mode = ModeSkip
		cfg.Reps = 2
		s, _ := startSession(t, cfg)

		CheckAnswer(s, "")
		effects := CheckAnswer(s, "")
		if pause := effectOf[ScheduleResume](t, effects); pause.After != 0 {
			t.Errorf("pause = %v, want 0", pause.After)
		}
	})
}

func TestAutoSkipFlow(t *testing.T) {
	cfg := Config{
		Sentence:       "One two three four five six",
		Language:       "en",
		Mode:           ModeAutoSkip,
		Level:          pace.Intermediate,
		Reps:           1,
		Rate:           1.0,
		PracticesToday: 5,
	}
	s, effects := startSession(t, cfg)

	n := effectOf[Narrate](t, effects)
	if n.Text != "One two three four five" {
		t.Fatalf("first phrase = %q", n.Text)
	}

	effects = NarrationDone(s, n.Epoch, 2*time.Second)
	adv := effectOf[ScheduleAutoAdvance](t, effects)
	if adv.After != 3*time.Second {
		t.Errorf("auto-advance after %v, want 3s (1.5x narration)", adv.After)
	}

	effects = AutoAdvance(s, adv.Epoch)
	if got := effectOf[Narrate](t, effects).Text; got != "six" {
		t.Fatalf("second phrase = %q, want %q", got, "six")
	}
	if got := effectOf[SaveProgress](t, effects).Index; got != 5 {
		t.Errorf("saved index = %d, want 5", got)
	}

	// Narration engines that cannot measure report a zero duration; the
	// wait falls back to the floor instead of firing instantly.
	effects = NarrationDone(s, effectOf[Narrate](t, effects).Epoch, 0)
	if got := effectOf[ScheduleAutoAdvance](t, effects).After; got != s.Timing.MinAutoAdvance {
		t.Errorf("auto-advance after %v, want floor %v", got, s.Timing.MinAutoAdvance)
	}

	effects = AutoAdvance(s, s.Epoch)
	if s.Phase != PhaseComplete {
		t.Fatalf("phase = %d, want PhaseComplete", s.Phase)
	}
	if !hasEffect[Completed](effects) {
		t.Fatal("no Completed effect at session end")
	}
	restart := effectOf[ScheduleRestart](t, effects)
	if restart.After != s.Timing.AutoRestartWait {
		t.Errorf("restart after %v, want %v", restart.After, s.Timing.AutoRestartWait)
	}

	effects = AutoRestart(s, restart.Epoch)
	if s.Phase != PhaseActive {
		t.Fatalf("phase after auto restart = %d, want PhaseActive", s.Phase)
	}
	if got := effectOf[Narrate](t, effects).Text; got != "One two three four five" {
		t.Errorf("restarted phrase = %q", got)
	}
}

func TestNarrationDoneIgnoredOutsideAutoSkip(t *testing.T) {
	s, effects := startSession(t, testConfig())
	n := effectOf[Narrate](t, effects)
	if got := NarrationDone(s, n.Epoch, time.Second); got != nil {
		t.Errorf("check mode narration completion returned %#v, want nil", got)
	}
}

func TestStaleEpochsDropped(t *testing.T) {
	s, effects := startSession(t, testConfig())
	old := effectOf[Narrate](t, effects).Epoch

	Replay(s, false)
	if s.Epoch == old {
		t.Fatal("Replay did not bump the epoch")
	}

	if got := NarrationDone(s, old, time.Second); got != nil {
		t.Errorf("stale NarrationDone returned %#v, want nil", got)
	}
	if got := Resume(s, old); got != nil {
		t.Errorf("stale Resume returned %#v, want nil", got)
	}
	if got := AutoAdvance(s, old); got != nil {
		t.Errorf("stale AutoAdvance returned %#v, want nil", got)
	}
	if s.Count != 0 {
		t.Errorf("stale AutoAdvance consumed a repetition: Count = %d", s.Count)
	}
	if got := AutoRestart(s, old); got != nil {
		t.Errorf("stale AutoRestart returned %#v, want nil", got)
	}
}

func TestReplayRates(t *testing.T) {
	cfg := testConfig()
	cfg.Rate = pace.AutoRate
	cfg.PracticesToday = 0
	s, _ := startSession(t, cfg)

	if !near(s.LastRate, 0.8) {
		t.Fatalf("initial rate = %v, want 0.8 for a new sentence", s.LastRate)
	}

	Replay(s, true)
	if !near(s.LastRate, 0.8*pace.SlowReplayRate) {
		t.Errorf("slow replay rate = %v, want %v", s.LastRate, 0.8*pace.SlowReplayRate)
	}

	Replay(s, false)
	if !near(s.LastRate, 0.8) {
		t.Errorf("normal replay rate = %v, want 0.8", s.LastRate)
	}
}

func TestSeek(t *testing.T) {
	cfg := testConfig()
	cfg.Sentence = "One two. Three four five."
	cfg.PracticesToday = 10
	s, _ := startSession(t, cfg)

	effects := Seek(s, 3)
	if got := effectOf[Narrate](t, effects).Text; got != "Three four five" {
		t.Errorf("seek narrated %q, want %q", got, "Three four five")
	}
	if s.Index != 2 {
		t.Errorf("Index = %d, want 2 (start of containing segment)", s.Index)
	}
	if s.Count != 0 {
		t.Errorf("Count = %d, want 0 after seek", s.Count)
	}

	if got := Seek(s, 99); got != nil {
		t.Errorf("out-of-range seek returned %#v, want nil", got)
	}
	if got := Seek(s, -1); got != nil {
		t.Errorf("negative seek returned %#v, want nil", got)
	}
}

func TestRestart(t *testing.T) {
	cfg := testConfig()
	cfg.Sentence = "Alpha beta gamma."
	cfg.Reps = pace.AutoReps
	cfg.PracticesToday = 0
	s, effects := startSession(t, cfg)

	if s.Reps != 5 {
		t.Fatalf("initial reps = %d, want 5", s.Reps)
	}
	if got := effectOf[Narrate](t, effects).Text; got != "Alpha" {
		t.Fatalf("first phrase = %q, want single word for a new sentence", got)
	}

	Advance(s)
	CheckAnswer(s, "beta")

	effects = Restart(s)
	if s.PracticesToday != 1 {
		t.Errorf("PracticesToday = %d, want 1 (sentence is no longer new)", s.PracticesToday)
	}
	if s.Index != 0 || s.Count != 0 || s.Correct != 0 || s.Attempts != 0 {
		t.Errorf("counters not reset: index=%d count=%d correct=%d attempts=%d",
			s.Index, s.Count, s.Correct, s.Attempts)
	}
	if s.Reps != 4 {
		t.Errorf("Reps = %d, want 4 re-resolved against one practice", s.Reps)
	}
	if got := effectOf[Narrate](t, effects).Text; got != "Alpha beta" {
		t.Errorf("restarted phrase = %q, want two words now", got)
	}
}

func TestRecordingLifecycle(t *testing.T) {
	cfg := testConfig()
	cfg.Reps = 2
	cfg.RecordingOn = true
	s, effects := startSession(t, cfg)

	rec := effectOf[StartRecording](t, effects)
	if rec.After != s.Timing.RecordLead {
		t.Errorf("capture lead = %v, want %v", rec.After, s.Timing.RecordLead)
	}
	if !s.Recording() {
		t.Error("Recording() = false after step with capture on")
	}
	if _, ok := effects[0].(Narrate); !ok {
		t.Errorf("effects[0] = %#v, want Narrate before StartRecording", effects[0])
	}

	effects = CheckAnswer(s, "hello there")
	if _, ok := effects[0].(StopRecording); !ok {
		t.Errorf("effects[0] = %#v, want StopRecording before feedback", effects[0])
	}

	effects = Resume(s, effectOf[ScheduleResume](t, effects).Epoch)
	if !hasEffect[StartRecording](effects) {
		t.Error("re-step did not reopen capture")
	}

	effects = Abandon(s)
	if !hasEffect[StopRecording](effects) {
		t.Error("abandon left capture open")
	}
	if s.Recording() {
		t.Error("Recording() = true after abandon")
	}
}

func TestRecordingOffEmitsNoCaptureEffects(t *testing.T) {
	s, effects := startSession(t, testConfig())
	if hasEffect[StartRecording](effects) || hasEffect[StopRecording](effects) {
		t.Errorf("capture effects with recording off: %#v", effects)
	}
	if s.Recording() {
		t.Error("Recording() = true with recording off")
	}
}

func TestAdvance(t *testing.T) {
	s, effects := startSession(t, testConfig())

	effects = Advance(s)
	if got := effectOf[SaveProgress](t, effects).Index; got != 2 {
		t.Errorf("saved index = %d, want 2", got)
	}
	if got := effectOf[Narrate](t, effects).Text; got != "How are you" {
		t.Errorf("advanced to %q, want %q", got, "How are you")
	}

	effects = Advance(s)
	if !hasEffect[Completed](effects) {
		t.Error("advancing past the last phrase did not complete the session")
	}
	if s.Phase != PhaseComplete {
		t.Errorf("phase = %d, want PhaseComplete", s.Phase)
	}

	if got := Advance(s); got != nil {
		t.Errorf("Advance after completion returned %#v, want nil", got)
	}
}

func TestAbandonEmitsNoSummary(t *testing.T) {
	s, _ := startSession(t, testConfig())

	effects := Abandon(s)
	if hasEffect[Completed](effects) {
		t.Error("abandon emitted a Completed effect")
	}
	if s.Phase != PhaseComplete {
		t.Errorf("phase = %d, want PhaseComplete", s.Phase)
	}
	if got := CheckAnswer(s, "hello there"); got != nil {
		t.Errorf("CheckAnswer after abandon returned %#v, want nil", got)
	}
}

func TestSummaryAccuracy(t *testing.T) {
	tests := []struct {
		correct  int
		attempts int
		want     int
	}{
		{correct: 0, attempts: 0, want: 100},
		{correct: 2, attempts: 2, want: 100},
		{correct: 1, attempts: 2, want: 50},
		{correct: 2, attempts: 3, want: 67},
		{correct: 1, attempts: 3, want: 33},
		{correct: 0, attempts: 4, want: 0},
	}
	for _, tt := range tests {
		s := &State{Correct: tt.correct, Attempts: tt.attempts, StartedAt: time.Now()}
		if got := NewSummary(s).Accuracy; got != tt.want {
			t.Errorf("accuracy(%d/%d) = %d, want %d", tt.correct, tt.attempts, got, tt.want)
		}
	}
}
