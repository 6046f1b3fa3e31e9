package narrate

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"
)

func TestEstimateDuration(t *testing.T) {
	tests := []struct {
		name string
		text string
		rate float64
		want time.Duration
	}{
		{name: "empty", text: "", rate: 1.0, want: 0},
		{name: "single word floors at half a second", text: "hello", rate: 1.0, want: 500 * time.Millisecond},
		{name: "three words", text: "one two three", rate: 1.0, want: 1200 * time.Millisecond},
		{name: "double rate halves", text: "one two three", rate: 2.0, want: 600 * time.Millisecond},
		{name: "slow rate stretches", text: "one two three", rate: 0.8, want: 1500 * time.Millisecond},
		{name: "zero rate treated as normal", text: "one two three", rate: 0, want: 1200 * time.Millisecond},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EstimateDuration(tt.text, tt.rate); got != tt.want {
				t.Errorf("EstimateDuration(%q, %v) = %v, want %v", tt.text, tt.rate, got, tt.want)
			}
		})
	}
}

func TestPlayerCommand(t *testing.T) {
	tests := []struct {
		player string
		rate   float64
		want   []string
	}{
		{
			player: "mpv",
			rate:   0.8,
			want:   []string{"mpv", "--no-terminal", "--really-quiet", "--speed=0.80", "x.mp3"},
		},
		{
			player: "/usr/bin/mpv",
			rate:   1.0,
			want:   []string{"/usr/bin/mpv", "--no-terminal", "--really-quiet", "--speed=1.00", "x.mp3"},
		},
		{
			player: "ffplay",
			rate:   0.3, // below atempo's floor
			want:   []string{"ffplay", "-nodisp", "-autoexit", "-loglevel", "quiet", "-af", "atempo=0.50", "x.mp3"},
		},
		{
			player: "afplay",
			rate:   1.2,
			want:   []string{"afplay", "-r", "1.20", "x.mp3"},
		},
		{
			player: "mpg123",
			rate:   0.8,
			want:   []string{"mpg123", "x.mp3"},
		},
	}
	for _, tt := range tests {
		got := playerCommand(tt.player, "x.mp3", tt.rate)
		if len(got) != len(tt.want) {
			t.Errorf("playerCommand(%q) = %v, want %v", tt.player, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("playerCommand(%q)[%d] = %q, want %q", tt.player, i, got[i], tt.want[i])
			}
		}
	}
}

func TestCacheKey(t *testing.T) {
	en := &GTTS{language: "en"}
	de := &GTTS{language: "de"}

	if en.cacheKey("hello") != en.cacheKey("hello") {
		t.Error("cache key is not deterministic")
	}
	if en.cacheKey("hello") == en.cacheKey("world") {
		t.Error("different texts share a cache key")
	}
	if en.cacheKey("hello") == de.cacheKey("hello") {
		t.Error("different languages share a cache key")
	}
	if strings.ContainsAny(en.cacheKey("hello there?"), "/\\ ?") {
		t.Errorf("cache key %q is not filesystem safe", en.cacheKey("hello there?"))
	}
}

func TestGTTSFetchCaches(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if got := r.URL.Query().Get("tl"); got != "de" {
			t.Errorf("tl = %q, want de", got)
		}
		if got := r.URL.Query().Get("client"); got != "tw-ob" {
			t.Errorf("client = %q, want tw-ob", got)
		}
		if r.Header.Get("User-Agent") == "" {
			t.Error("no user agent set")
		}
		w.Write([]byte("mp3-bytes"))
	}))
	defer srv.Close()

	g := &GTTS{
		language: "de",
		cacheDir: t.TempDir(),
		endpoint: srv.URL,
		client:   srv.Client(),
	}

	ctx := context.Background()
	path, err := g.ensureAudio(ctx, "Guten Morgen")
	if err != nil {
		t.Fatalf("ensure audio: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read cached audio: %v", err)
	}
	if string(data) != "mp3-bytes" {
		t.Errorf("cached audio = %q", data)
	}

	if _, err := g.ensureAudio(ctx, "Guten Morgen"); err != nil {
		t.Fatalf("ensure audio (cached): %v", err)
	}
	if requests != 1 {
		t.Errorf("requests = %d, want 1 (second call should hit the cache)", requests)
	}
}

func TestGTTSFetchErrorLeavesNoFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer srv.Close()

	dir := t.TempDir()
	g := &GTTS{language: "en", cacheDir: dir, endpoint: srv.URL, client: srv.Client()}

	if _, err := g.ensureAudio(context.Background(), "hello"); err == nil {
		t.Fatal("expected an error for a 403 response")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".mp3") {
			t.Errorf("failed fetch left %q in the cache", e.Name())
		}
	}
}

func TestSilentSpeak(t *testing.T) {
	s := NewSilent()
	d, err := s.Speak(context.Background(), "one two three", 1.0)
	if err != nil {
		t.Fatalf("speak: %v", err)
	}
	if d != 1200*time.Millisecond {
		t.Errorf("duration = %v, want the estimate", d)
	}
	if !s.Available() {
		t.Error("silent engine must always be available")
	}
}

func TestMockRecordsCalls(t *testing.T) {
	m := NewMock()
	m.Duration = 2 * time.Second

	d, err := m.Speak(context.Background(), "hello there", 0.8)
	if err != nil {
		t.Fatalf("speak: %v", err)
	}
	if d != 2*time.Second {
		t.Errorf("duration = %v, want 2s", d)
	}

	calls := m.Calls()
	if len(calls) != 1 || calls[0].Text != "hello there" || calls[0].Rate != 0.8 {
		t.Errorf("calls = %+v", calls)
	}

	m.Err = errors.New("boom")
	if _, err := m.Speak(context.Background(), "x", 1); err == nil {
		t.Error("configured error was not returned")
	}
}

func TestNewFallsBackToSilent(t *testing.T) {
	// An explicit engine name is honored even when unavailable; the
	// empty name must always resolve to something usable.
	n := New(Options{Language: "en"})
	if n == nil {
		t.Fatal("New returned nil")
	}
	if !n.Available() {
		t.Errorf("resolved engine %q is not available", n.Name())
	}
}
