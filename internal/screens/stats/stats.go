package stats

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/shadowbox/internal/router"
	"github.com/abhisek/shadowbox/internal/screen"
	"github.com/abhisek/shadowbox/internal/stats"
	"github.com/abhisek/shadowbox/internal/ui/layout"
	"github.com/abhisek/shadowbox/internal/ui/theme"
)

// reportLoadedMsg carries the computed progress report.
type reportLoadedMsg struct {
	Report *stats.Report
	Err    error
}

// StatsScreen shows the practice history: totals, streaks, languages and
// recent sessions.
type StatsScreen struct {
	svc    *stats.Service
	report *stats.Report
	errMsg string
}

var _ screen.Screen = (*StatsScreen)(nil)
var _ screen.KeyHintProvider = (*StatsScreen)(nil)

// New creates the stats screen.
func New(svc *stats.Service) *StatsScreen {
	return &StatsScreen{svc: svc}
}

func (s *StatsScreen) Init() tea.Cmd {
	svc := s.svc
	return func() tea.Msg {
		report, err := svc.Report(context.Background())
		return reportLoadedMsg{Report: report, Err: err}
	}
}

func (s *StatsScreen) Title() string {
	return "Progress"
}

func (s *StatsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
	}
}

func (s *StatsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case reportLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.report = msg.Report
	case tea.KeyMsg:
		if msg.String() == "esc" {
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *StatsScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Height(height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(theme.Error).
			Render("Could not load stats: " + s.errMsg)
	}
	if s.report == nil {
		return lipgloss.NewStyle().
			Width(width).Height(height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(theme.TextDim).
			Render("Loading...")
	}

	r := s.report
	var b strings.Builder

	label := lipgloss.NewStyle().Foreground(theme.TextDim)
	value := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)

	b.WriteString("\n  " + value.Render(fmt.Sprintf("%d", r.Totals.Practices)) +
		label.Render(" practices · ") +
		value.Render(fmt.Sprintf("%d", r.Totals.Sentences)) +
		label.Render(" sentences · ") +
		value.Render(fmt.Sprintf("%d", r.Totals.Days)) +
		label.Render(" days · ") +
		value.Render(fmt.Sprintf("%d%%", r.Totals.AvgAccuracy)) +
		label.Render(" avg accuracy"))
	b.WriteString("\n\n")

	b.WriteString("  " + lipgloss.NewStyle().Foreground(theme.Accent).Render(
		fmt.Sprintf("★ Current streak: %d days   Best: %d days",
			r.Streaks.Current, r.Streaks.Best)))
	b.WriteString("\n\n")

	if len(r.Languages) > 0 {
		b.WriteString("  " + label.Render("Languages") + "\n")
		for _, l := range r.Languages {
			b.WriteString(fmt.Sprintf("    %-6s  %4d practices  %3d%% avg\n",
				l.Language, l.Practices, l.AvgAccuracy))
		}
		b.WriteString("\n")
	}

	if len(r.Recent) > 0 {
		b.WriteString("  " + label.Render("Recent sessions") + "\n")
		for _, p := range r.Recent {
			text := p.Sentence
			if len([]rune(text)) > width-36 {
				text = string([]rune(text)[:width-39]) + "..."
			}
			line := fmt.Sprintf("    %s  %-9s  %3d%%  %s",
				p.Timestamp.Local().Format("Jan 02 15:04"), p.Mode, p.Accuracy, text)
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render(line) + "\n")
		}
	} else {
		b.WriteString("  " + label.Render("No practice recorded yet.") + "\n")
	}

	return b.String()
}
