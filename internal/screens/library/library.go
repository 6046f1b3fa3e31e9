package library

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/shadowbox/internal/config"
	"github.com/abhisek/shadowbox/internal/pace"
	"github.com/abhisek/shadowbox/internal/record"
	"github.com/abhisek/shadowbox/internal/router"
	"github.com/abhisek/shadowbox/internal/screen"
	"github.com/abhisek/shadowbox/internal/screens/setup"
	"github.com/abhisek/shadowbox/internal/sentences"
	"github.com/abhisek/shadowbox/internal/store"
	"github.com/abhisek/shadowbox/internal/ui/components"
	"github.com/abhisek/shadowbox/internal/ui/layout"
	"github.com/abhisek/shadowbox/internal/ui/theme"
)

// listLoadedMsg carries the (re)loaded sentence list.
type listLoadedMsg struct {
	Sentences []store.Sentence
	Err       error
}

// addedMsg confirms a user sentence landed in the library.
type addedMsg struct {
	Err error
}

// generatedMsg reports an LLM generation batch.
type generatedMsg struct {
	Count int
	Err   error
}

// deletedMsg confirms a removal.
type deletedMsg struct {
	Err error
}

// libraryMode is the current interaction state.
type libraryMode int

const (
	modeBrowse libraryMode = iota
	modeAdd
	modeGenerating
)

// LibraryScreen lists the practice sentences: pick one to practice, add
// your own, generate a batch, or delete entries.
type LibraryScreen struct {
	cfg      *config.Config
	st       *store.Store
	lib      *sentences.Library
	recorder record.Recorder

	items    []store.Sentence
	selected int
	mode     libraryMode
	input    components.TextInput
	notice   string
}

var _ screen.Screen = (*LibraryScreen)(nil)
var _ screen.KeyHintProvider = (*LibraryScreen)(nil)

// New creates the library screen.
func New(cfg *config.Config, st *store.Store, lib *sentences.Library, recorder record.Recorder) *LibraryScreen {
	return &LibraryScreen{
		cfg:      cfg,
		st:       st,
		lib:      lib,
		recorder: recorder,
		input:    components.NewTextInput("New sentence...", 200),
	}
}

func (l *LibraryScreen) Init() tea.Cmd {
	return l.loadCmd()
}

func (l *LibraryScreen) Title() string {
	return "Library"
}

func (l *LibraryScreen) KeyHints() []layout.KeyHint {
	switch l.mode {
	case modeAdd:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Save"},
			{Key: "Esc", Description: "Cancel"},
		}
	case modeGenerating:
		return nil
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Practice"},
		{Key: "A", Description: "Add"},
		{Key: "G", Description: "Generate"},
		{Key: "D", Description: "Delete"},
		{Key: "Esc", Description: "Back"},
	}
}

func (l *LibraryScreen) loadCmd() tea.Cmd {
	lib, lang := l.lib, l.cfg.Language
	return func() tea.Msg {
		items, err := lib.List(context.Background(), lang)
		return listLoadedMsg{Sentences: items, Err: err}
	}
}

func (l *LibraryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case listLoadedMsg:
		if msg.Err != nil {
			l.notice = "Load failed: " + msg.Err.Error()
			return l, nil
		}
		l.items = msg.Sentences
		if l.selected >= len(l.items) {
			l.selected = len(l.items) - 1
		}
		if l.selected < 0 {
			l.selected = 0
		}
		return l, nil

	case addedMsg:
		if msg.Err != nil {
			l.notice = "Add failed: " + msg.Err.Error()
			return l, nil
		}
		l.notice = "Sentence added."
		return l, l.loadCmd()

	case generatedMsg:
		l.mode = modeBrowse
		if msg.Err != nil {
			l.notice = "Generation failed: " + msg.Err.Error()
			return l, nil
		}
		l.notice = fmt.Sprintf("Generated %d sentences.", msg.Count)
		return l, l.loadCmd()

	case deletedMsg:
		if msg.Err != nil {
			l.notice = "Delete failed: " + msg.Err.Error()
			return l, nil
		}
		return l, l.loadCmd()

	case tea.KeyMsg:
		return l.handleKey(msg)
	}

	if l.mode == modeAdd {
		var cmd tea.Cmd
		l.input, cmd = l.input.Update(msg)
		return l, cmd
	}
	return l, nil
}

func (l *LibraryScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	switch l.mode {
	case modeAdd:
		switch key {
		case "esc":
			l.mode = modeBrowse
			l.input.Reset()
			return l, nil
		case "enter":
			text := strings.TrimSpace(l.input.Value())
			l.mode = modeBrowse
			l.input.Reset()
			if text == "" {
				return l, nil
			}
			lib, lang := l.lib, l.cfg.Language
			return l, func() tea.Msg {
				_, err := lib.Add(context.Background(), text, lang)
				return addedMsg{Err: err}
			}
		}
		var cmd tea.Cmd
		l.input, cmd = l.input.Update(msg)
		return l, cmd

	case modeGenerating:
		return l, nil
	}

	switch key {
	case "esc":
		return l, func() tea.Msg { return router.PopScreenMsg{} }
	case "up", "k":
		if l.selected > 0 {
			l.selected--
		}
	case "down", "j":
		if l.selected < len(l.items)-1 {
			l.selected++
		}
	case "enter":
		if l.selected < len(l.items) {
			chosen := l.items[l.selected]
			return l, func() tea.Msg {
				return router.PushScreenMsg{
					Screen: setup.New(l.cfg, l.st, l.recorder, chosen),
				}
			}
		}
	case "a":
		l.mode = modeAdd
		l.notice = ""
		return l, l.input.Init()
	case "g":
		return l, l.generateCmd()
	case "d":
		if l.selected < len(l.items) {
			id := l.items[l.selected].ID
			lib := l.lib
			return l, func() tea.Msg {
				return deletedMsg{Err: lib.Delete(context.Background(), id)}
			}
		}
	}
	return l, nil
}

func (l *LibraryScreen) generateCmd() tea.Cmd {
	level, err := pace.ParseLevel(l.cfg.Level)
	if err != nil {
		level = pace.Intermediate
	}
	input := sentences.GenerateInput{
		Language: l.cfg.Language,
		Level:    level,
	}

	l.mode = modeGenerating
	l.notice = ""

	lib := l.lib
	return func() tea.Msg {
		batch, err := lib.Generate(context.Background(), input)
		return generatedMsg{Count: len(batch), Err: err}
	}
}

func (l *LibraryScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString("\n  ")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(
		fmt.Sprintf("%d sentences · %s", len(l.items), l.cfg.Language)))
	b.WriteString("\n\n")

	if l.mode == modeGenerating {
		b.WriteString("  " + theme.Hint.Render("Generating sentences...") + "\n\n")
	}

	maxRows := height - 8
	if maxRows < 3 {
		maxRows = 3
	}
	start := 0
	if l.selected >= maxRows {
		start = l.selected - maxRows + 1
	}

	for i := start; i < len(l.items) && i < start+maxRows; i++ {
		item := l.items[i]
		text := item.Text
		if len([]rune(text)) > width-12 {
			text = string([]rune(text)[:width-15]) + "..."
		}
		line := fmt.Sprintf("%s  %s", text,
			lipgloss.NewStyle().Foreground(theme.TextDim).Render("("+item.Source+")"))
		if i == l.selected && l.mode == modeBrowse {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("  ▸ " + line))
		} else {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render("    " + line))
		}
		b.WriteString("\n")
	}

	if len(l.items) == 0 && l.mode != modeGenerating {
		b.WriteString("    " + lipgloss.NewStyle().Foreground(theme.TextDim).Render(
			"Library is empty. Press A to add a sentence.") + "\n")
	}

	if l.mode == modeAdd {
		b.WriteString("\n  " + l.input.View() + "\n")
	}

	if l.notice != "" {
		b.WriteString("\n  " + lipgloss.NewStyle().Foreground(theme.Accent).Render(l.notice) + "\n")
	}

	return b.String()
}
