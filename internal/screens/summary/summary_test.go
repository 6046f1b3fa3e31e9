package summary

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/shadowbox/internal/router"
	"github.com/abhisek/shadowbox/internal/screen"
	"github.com/abhisek/shadowbox/internal/session"
)

// stubScreen stands in for the rebuilt practice screen.
type stubScreen struct{}

func (stubScreen) Init() tea.Cmd                             { return nil }
func (s stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (stubScreen) View(int, int) string                      { return "stub" }
func (stubScreen) Title() string                             { return "Stub" }

func testSummary() session.Summary {
	return session.Summary{
		SessionID: "test-session",
		Sentence:  "Hello world",
		Language:  "en",
		Mode:      session.ModeCheck,
		Accuracy:  100,
		Correct:   2,
		Attempts:  2,
		Duration:  65 * time.Second,
	}
}

func TestSummaryScreen_Title(t *testing.T) {
	s := New(testSummary(), nil, 0)
	if s.Title() != "Session Summary" {
		t.Errorf("Title = %q, want %q", s.Title(), "Session Summary")
	}
}

func TestSummaryScreen_View_CheckMode(t *testing.T) {
	s := New(testSummary(), nil, 0)
	view := s.View(80, 24)
	if !strings.Contains(view, "Accuracy: 100%") {
		t.Error("expected accuracy line in check-mode view")
	}
	if !strings.Contains(view, "Hello world") {
		t.Error("expected the sentence in the view")
	}
}

func TestSummaryScreen_View_SkipModeHidesAccuracy(t *testing.T) {
	sum := testSummary()
	sum.Mode = session.ModeSkip
	s := New(sum, nil, 0)
	if strings.Contains(s.View(80, 24), "Accuracy") {
		t.Error("expected no accuracy line outside check mode")
	}
}

func TestSummaryScreen_Init_NoRestartWithoutWait(t *testing.T) {
	s := New(testSummary(), func() screen.Screen { return stubScreen{} }, 0)
	if s.Init() != nil {
		t.Error("expected no auto-restart timer for zero wait")
	}
}

func TestSummaryScreen_AutoRestart(t *testing.T) {
	s := New(testSummary(), func() screen.Screen { return stubScreen{} }, time.Second)
	if s.Init() == nil {
		t.Fatal("expected an auto-restart timer")
	}

	_, cmd := s.Update(autoRestartMsg{})
	if cmd == nil {
		t.Fatal("expected a replace command on auto-restart")
	}
	msg := cmd()
	if _, ok := msg.(router.ReplaceScreenMsg); !ok {
		t.Errorf("msg = %T, want router.ReplaceScreenMsg", msg)
	}
}

func TestSummaryScreen_KeyCancelsAutoRestart(t *testing.T) {
	s := New(testSummary(), func() screen.Screen { return stubScreen{} }, time.Second)

	s.Update(tea.KeyPressMsg{Code: 'x', Text: "x"})
	if !s.cancelled {
		t.Error("expected any key to cancel the pending restart")
	}

	_, cmd := s.Update(autoRestartMsg{})
	if cmd != nil {
		t.Error("expected no restart after cancellation")
	}
}

func TestSummaryScreen_RestartKey(t *testing.T) {
	s := New(testSummary(), func() screen.Screen { return stubScreen{} }, 0)

	_, cmd := s.Update(tea.KeyPressMsg{Code: 'r', Text: "r"})
	if cmd == nil {
		t.Fatal("expected a replace command on r")
	}
	if _, ok := cmd().(router.ReplaceScreenMsg); !ok {
		t.Error("expected router.ReplaceScreenMsg on r")
	}
}

func TestSummaryScreen_Done(t *testing.T) {
	s := New(testSummary(), nil, 0)

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a pop command on enter")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected router.PopScreenMsg on enter")
	}
}
