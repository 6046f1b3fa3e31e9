package summary

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/shadowbox/internal/router"
	"github.com/abhisek/shadowbox/internal/screen"
	"github.com/abhisek/shadowbox/internal/session"
	"github.com/abhisek/shadowbox/internal/ui/layout"
	"github.com/abhisek/shadowbox/internal/ui/theme"
)

// autoRestartMsg fires the pending hands-free restart.
type autoRestartMsg struct{}

// SummaryScreen shows the outcome of a finished session. In auto-skip
// mode it restarts the sentence by itself after the configured wait,
// unless the user presses a key first.
type SummaryScreen struct {
	summary session.Summary

	// restart builds a fresh practice screen for the same sentence and
	// settings.
	restart func() screen.Screen

	// restartWait is the auto-restart delay; zero means no auto-restart.
	restartWait time.Duration
	cancelled   bool
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a summary screen for a finished session.
func New(sum session.Summary, restart func() screen.Screen, restartWait time.Duration) *SummaryScreen {
	return &SummaryScreen{
		summary:     sum,
		restart:     restart,
		restartWait: restartWait,
	}
}

func (s *SummaryScreen) Init() tea.Cmd {
	if s.restartWait <= 0 {
		return nil
	}
	return tea.Tick(s.restartWait, func(time.Time) tea.Msg {
		return autoRestartMsg{}
	})
}

func (s *SummaryScreen) Title() string {
	return "Session Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "R", Description: "Practice again"},
		{Key: "Enter", Description: "Done"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case autoRestartMsg:
		if s.cancelled || s.restart == nil {
			return s, nil
		}
		return s, func() tea.Msg {
			return router.ReplaceScreenMsg{Screen: s.restart()}
		}

	case tea.KeyMsg:
		// Any key supersedes a pending auto-restart.
		s.cancelled = true
		switch msg.String() {
		case "r", "R":
			if s.restart != nil {
				return s, func() tea.Msg {
					return router.ReplaceScreenMsg{Screen: s.restart()}
				}
			}
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	var b strings.Builder

	center := func(style lipgloss.Style, text string) {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(text)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	center(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true), "Session complete!")
	b.WriteString("\n")

	center(lipgloss.NewStyle().Foreground(theme.Text), fmt.Sprintf("“%s”", sum.Sentence))
	b.WriteString("\n")

	mins := int(sum.Duration.Minutes())
	secs := int(sum.Duration.Seconds()) % 60
	center(lipgloss.NewStyle().Foreground(theme.TextDim),
		fmt.Sprintf("%s · %s mode · %d:%02d", sum.Language, sum.Mode, mins, secs))
	b.WriteString("\n")

	if sum.Mode == session.ModeCheck {
		accuracyStyle := theme.Correct
		if sum.Accuracy < 60 {
			accuracyStyle = theme.Incorrect
		}
		center(accuracyStyle, fmt.Sprintf("Accuracy: %d%%", sum.Accuracy))
		center(lipgloss.NewStyle().Foreground(theme.Text),
			fmt.Sprintf("%d of %d answers passed", sum.Correct, sum.Attempts))
	} else {
		center(lipgloss.NewStyle().Foreground(theme.Text), "Nice shadowing, sentence finished.")
	}

	if s.restartWait > 0 && !s.cancelled {
		b.WriteString("\n")
		center(theme.Hint, fmt.Sprintf("Restarting in %.0fs, press any key to stay here",
			s.restartWait.Seconds()))
	}

	return b.String()
}
