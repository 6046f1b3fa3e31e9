package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/shadowbox/internal/ui/theme"
)

// ProgressBar displays a horizontal progress bar.
type ProgressBar struct {
	Label       string
	Percent     float64
	ShowPercent bool
	Width       int
}

// NewProgressBar creates a new progress bar.
func NewProgressBar(label string, percent float64, showPercent bool, width int) ProgressBar {
	if percent < 0 {
		percent = 0
	}
	if percent > 1 {
		percent = 1
	}
	return ProgressBar{
		Label:       label,
		Percent:     percent,
		ShowPercent: showPercent,
		Width:       width,
	}
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	barWidth := p.Width
	if barWidth < 4 {
		barWidth = 4
	}

	filled := int(p.Percent * float64(barWidth))
	if filled > barWidth {
		filled = barWidth
	}

	bar := theme.ProgressFilled.Render(strings.Repeat(" ", filled)) +
		theme.ProgressEmpty.Render(strings.Repeat(" ", barWidth-filled))

	var parts []string
	if p.Label != "" {
		parts = append(parts, lipgloss.NewStyle().Foreground(theme.TextDim).Render(p.Label))
	}
	parts = append(parts, bar)
	if p.ShowPercent {
		parts = append(parts, lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Render(fmt.Sprintf("%3.0f%%", p.Percent*100)))
	}

	return strings.Join(parts, " ")
}
