package app

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/shadowbox/internal/config"
	"github.com/abhisek/shadowbox/internal/record"
	"github.com/abhisek/shadowbox/internal/router"
	"github.com/abhisek/shadowbox/internal/screen"
	"github.com/abhisek/shadowbox/internal/screens/home"
	"github.com/abhisek/shadowbox/internal/selfupdate"
	"github.com/abhisek/shadowbox/internal/sentences"
	"github.com/abhisek/shadowbox/internal/stats"
	"github.com/abhisek/shadowbox/internal/store"
	"github.com/abhisek/shadowbox/internal/ui/layout"
)

// Options carries the wired services the TUI runs on.
type Options struct {
	Config   *config.Config
	Store    *store.Store
	Library  *sentences.Library
	Stats    *stats.Service
	Recorder record.Recorder
	Checker  *selfupdate.Checker
	Version  string
}

// streakLoadedMsg carries the consecutive-day streak for the header.
type streakLoadedMsg struct {
	Streak int
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router   *router.Router
	statsSvc *stats.Service
	width    int
	height   int
	streak   int
}

// newAppModel creates a new AppModel with the home screen.
func newAppModel(opts Options) AppModel {
	homeScreen := home.New(
		opts.Config,
		opts.Store,
		opts.Library,
		opts.Stats,
		opts.Recorder,
		opts.Checker,
		opts.Version,
	)
	return AppModel{
		router:   router.New(homeScreen),
		statsSvc: opts.Stats,
	}
}

func (m AppModel) Init() tea.Cmd {
	return tea.Batch(m.router.Active().Init(), m.loadStreakCmd())
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case streakLoadedMsg:
		m.streak = msg.Streak
		return m, nil

	case screen.StreakChangedMsg:
		return m, m.loadStreakCmd()

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.streak, m.width)

	var footerHints []layout.KeyHint
	if hp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = hp.KeyHints()
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	} else {
		footerHints = []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

func (m AppModel) loadStreakCmd() tea.Cmd {
	svc := m.statsSvc
	if svc == nil {
		return nil
	}
	return func() tea.Msg {
		streak, err := svc.CurrentStreak(context.Background())
		if err != nil {
			return nil
		}
		return streakLoadedMsg{Streak: streak}
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
