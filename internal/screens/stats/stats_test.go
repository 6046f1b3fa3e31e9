package stats

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/shadowbox/internal/router"
	"github.com/abhisek/shadowbox/internal/stats"
	"github.com/abhisek/shadowbox/internal/store"
)

func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open("file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testStatsScreen(t *testing.T) (*StatsScreen, *store.Store) {
	t.Helper()
	st := openTestStore(t)
	return New(stats.NewService(st.PracticeRepo())), st
}

func TestStatsScreen_LoadsReport(t *testing.T) {
	s, st := testStatsScreen(t)

	err := st.PracticeRepo().RecordCompletion(context.Background(), store.Practice{
		SessionID: "test-session",
		Sentence:  "Hello world",
		Language:  "en",
		Mode:      "check",
		Accuracy:  100,
		Correct:   2,
		Attempts:  2,
		Duration:  time.Minute,
	})
	if err != nil {
		t.Fatalf("record completion: %v", err)
	}

	cmd := s.Init()
	if cmd == nil {
		t.Fatal("expected a load command")
	}
	s.Update(cmd())

	if s.report == nil {
		t.Fatal("expected a loaded report")
	}
	if s.report.Totals.Practices != 1 {
		t.Errorf("Practices = %d, want 1", s.report.Totals.Practices)
	}

	view := s.View(100, 40)
	if !strings.Contains(view, "practices") {
		t.Error("expected totals line in the view")
	}
}

func TestStatsScreen_View_Loading(t *testing.T) {
	s, _ := testStatsScreen(t)
	if s.View(80, 24) == "" {
		t.Error("expected non-empty loading view")
	}
}

func TestStatsScreen_EscPops(t *testing.T) {
	s, _ := testStatsScreen(t)

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected a command on esc")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected router.PopScreenMsg on esc")
	}
}
