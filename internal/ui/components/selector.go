package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/shadowbox/internal/ui/theme"
)

// Selector is one settings row cycling through a fixed set of options
// with the left/right keys.
type Selector struct {
	Label    string
	Options  []string
	Index    int
	Disabled bool
}

// NewSelector creates a selector positioned on the option matching
// value, or the first option when none matches.
func NewSelector(label string, options []string, value string) Selector {
	index := 0
	for i, o := range options {
		if o == value {
			index = i
			break
		}
	}
	return Selector{
		Label:   label,
		Options: options,
		Index:   index,
	}
}

// Prev moves to the previous option, wrapping around.
func (s *Selector) Prev() {
	if s.Disabled || len(s.Options) == 0 {
		return
	}
	s.Index--
	if s.Index < 0 {
		s.Index = len(s.Options) - 1
	}
}

// Next moves to the next option, wrapping around.
func (s *Selector) Next() {
	if s.Disabled || len(s.Options) == 0 {
		return
	}
	s.Index = (s.Index + 1) % len(s.Options)
}

// Value returns the selected option.
func (s Selector) Value() string {
	if len(s.Options) == 0 {
		return ""
	}
	return s.Options[s.Index]
}

// View renders the row. The focused row shows cycle arrows around the
// value.
func (s Selector) View(focused bool) string {
	labelStyle := lipgloss.NewStyle().Foreground(theme.Text).Width(12)
	valueStyle := lipgloss.NewStyle().Foreground(theme.Text)
	prefix := "    "

	switch {
	case s.Disabled:
		labelStyle = labelStyle.Foreground(theme.TextDim)
		valueStyle = valueStyle.Foreground(theme.TextDim)
	case focused:
		labelStyle = labelStyle.Foreground(theme.Primary).Bold(true)
		valueStyle = valueStyle.Foreground(theme.Primary).Bold(true)
		prefix = "  ▸ "
	}

	value := s.Value()
	if focused && !s.Disabled {
		value = "◂ " + value + " ▸"
	}

	return prefix + labelStyle.Render(s.Label) + "  " + valueStyle.Render(value)
}
