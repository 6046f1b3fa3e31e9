package practice

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/shadowbox/internal/score"
	"github.com/abhisek/shadowbox/internal/session"
	"github.com/abhisek/shadowbox/internal/textnorm"
	"github.com/abhisek/shadowbox/internal/ui/components"
	"github.com/abhisek/shadowbox/internal/ui/theme"
)

func renderLoading(width, height int) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Preparing session...")
}

func renderError(width, height int, msg string) string {
	content := lipgloss.NewStyle().Foreground(theme.Error).Render("Cannot start practice") +
		"\n\n" + lipgloss.NewStyle().Foreground(theme.TextDim).Render(msg) +
		"\n\n" + theme.Hint.Render("Press any key to go back")
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

func renderQuitConfirm(width, height int) string {
	content := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("End this session?") +
		"\n\n" + lipgloss.NewStyle().Foreground(theme.TextDim).Render("Progress on finished phrases is saved.") +
		"\n\n" + theme.Hint.Render("Y to end, N to keep practicing")
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

func (p *PracticeScreen) renderSession(width, height int) string {
	s := p.state
	var b strings.Builder

	// Status line: mode, rep progress, narration rate, capture state.
	status := fmt.Sprintf("%s mode   rep %d of %d   rate %.1fx",
		s.Mode, min(s.Count+1, s.Reps), s.Reps, s.LastRate)
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render("  " + status))
	if s.Recording() {
		b.WriteString("  " + lipgloss.NewStyle().Foreground(theme.Recording).Bold(true).Render("● REC"))
	}
	b.WriteString("\n\n")

	// The sentence, wrapped, with the current phrase highlighted.
	b.WriteString(p.renderSentence(width - 4))
	b.WriteString("\n\n")

	// Progress through the sentence.
	done, total := s.Progress()
	pct := 0.0
	if total > 0 {
		pct = float64(done) / float64(total)
	}
	bar := components.NewProgressBar("", pct, true, min(width-12, 48))
	b.WriteString("  " + bar.View() + "\n\n")

	if p.feedback != nil {
		b.WriteString(p.renderFeedback(width))
		b.WriteString("\n")
	}

	if p.acceptingText() {
		b.WriteString("  " + p.input.View() + "\n")
	}

	if p.notice != "" {
		b.WriteString("\n" + lipgloss.NewStyle().Foreground(theme.Accent).Render("  "+p.notice) + "\n")
	}

	return b.String()
}

// renderSentence lays the words out with the narration state: finished
// words dim, the pending phrase bright, the word being spoken inverted.
func (p *PracticeScreen) renderSentence(maxWidth int) string {
	s := p.state
	spokenIndex := -1
	if p.narrating && p.spoken > 0 {
		spokenIndex = s.Index + p.spoken - 1
	}

	styled := make([]string, len(s.Words))
	for i, w := range s.Words {
		switch {
		case i == spokenIndex:
			styled[i] = theme.SpokenWord.Render(w)
		case i >= s.Index && i < s.PhraseEnd:
			styled[i] = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(w)
		case i < s.Index:
			styled[i] = theme.DoneWord.Render(w)
		default:
			styled[i] = lipgloss.NewStyle().Foreground(theme.TextDim).Render(w)
		}
	}

	return "  " + wrapWords(s.Words, styled, maxWidth, "  ")
}

// renderFeedback shows the scored answer: the target phrase and the
// user's words colored by how close each position came.
func (p *PracticeScreen) renderFeedback(width int) string {
	fb := p.feedback
	var b strings.Builder

	if fb.Skipped {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(
			fmt.Sprintf("  Skipped (%d of %d)", fb.Count, fb.Reps)))
		b.WriteString("\n")
		return b.String()
	}

	verdict := theme.Incorrect.Render(fmt.Sprintf("✗ %.0f%%", fb.Similarity*100))
	if fb.Correct {
		verdict = theme.Correct.Render(fmt.Sprintf("✓ %.0f%%", fb.Similarity*100))
	}
	b.WriteString("  " + verdict + "\n")

	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render("  heard:  "))
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render(fb.Target))
	b.WriteString("\n")

	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render("  yours:  "))
	b.WriteString(p.renderMarkedAnswer(fb))
	b.WriteString("\n")

	return b.String()
}

// renderMarkedAnswer colors each answer word by the mark of its target
// position. Marks never change the pass/fail verdict.
func (p *PracticeScreen) renderMarkedAnswer(fb *session.ShowFeedback) string {
	target := textnorm.CleanText(fb.Target)
	answer := textnorm.CleanText(fb.Answer)
	marks := score.MarkWords(target, answer)
	words := strings.Fields(fb.Answer)

	parts := make([]string, 0, len(words))
	for i, w := range words {
		style := lipgloss.NewStyle().Foreground(theme.Error)
		if i < len(marks) {
			switch marks[i] {
			case score.Hit:
				style = lipgloss.NewStyle().Foreground(theme.Success)
			case score.Close:
				style = lipgloss.NewStyle().Foreground(theme.Accent)
			}
		}
		parts = append(parts, style.Render(w))
	}
	if len(parts) == 0 {
		return lipgloss.NewStyle().Foreground(theme.TextDim).Render("(empty)")
	}
	return strings.Join(parts, " ")
}

// wrapWords greedily wraps pre-styled words using the plain widths, so
// ANSI sequences do not distort line breaks.
func wrapWords(plain, styled []string, maxWidth int, indent string) string {
	if maxWidth < 8 {
		maxWidth = 8
	}

	var lines []string
	var line strings.Builder
	lineLen := 0

	for i := range plain {
		w := len([]rune(plain[i]))
		if lineLen > 0 && lineLen+1+w > maxWidth {
			lines = append(lines, line.String())
			line.Reset()
			lineLen = 0
		}
		if lineLen > 0 {
			line.WriteString(" ")
			lineLen++
		}
		line.WriteString(styled[i])
		lineLen += w
	}
	if lineLen > 0 {
		lines = append(lines, line.String())
	}

	return strings.Join(lines, "\n"+indent)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
