package home

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/shadowbox/internal/config"
	"github.com/abhisek/shadowbox/internal/record"
	"github.com/abhisek/shadowbox/internal/router"
	"github.com/abhisek/shadowbox/internal/screen"
	"github.com/abhisek/shadowbox/internal/screens/library"
	"github.com/abhisek/shadowbox/internal/screens/setup"
	statsscreen "github.com/abhisek/shadowbox/internal/screens/stats"
	"github.com/abhisek/shadowbox/internal/selfupdate"
	"github.com/abhisek/shadowbox/internal/sentences"
	"github.com/abhisek/shadowbox/internal/stats"
	"github.com/abhisek/shadowbox/internal/store"
	"github.com/abhisek/shadowbox/internal/ui/components"
	"github.com/abhisek/shadowbox/internal/ui/theme"
)

// randomPickedMsg carries the sentence chosen for a quick practice run.
type randomPickedMsg struct {
	Sentence *store.Sentence
	Err      error
}

// updateNoticeMsg reports a newer published release.
type updateNoticeMsg struct {
	Latest string
}

// HomeScreen is the entry menu.
type HomeScreen struct {
	cfg      *config.Config
	st       *store.Store
	lib      *sentences.Library
	statsSvc *stats.Service
	recorder record.Recorder
	checker  *selfupdate.Checker
	version  string

	menu         components.Menu
	notice       string
	updateNotice string
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates the home screen.
func New(cfg *config.Config, st *store.Store, lib *sentences.Library, statsSvc *stats.Service, recorder record.Recorder, checker *selfupdate.Checker, version string) *HomeScreen {
	h := &HomeScreen{
		cfg:      cfg,
		st:       st,
		lib:      lib,
		statsSvc: statsSvc,
		recorder: recorder,
		checker:  checker,
		version:  version,
	}

	items := []components.MenuItem{
		{Label: "PRACTICE", Hint: "random sentence", Action: func() tea.Cmd {
			return h.pickRandomCmd()
		}},
		{Label: "LIBRARY", Hint: "pick, add, generate", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{
					Screen: library.New(h.cfg, h.st, h.lib, h.recorder),
				}
			}
		}},
		{Label: "PROGRESS", Hint: "stats and streaks", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: statsscreen.New(h.statsSvc)}
			}
		}},
		{Label: "QUIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}
	h.menu = components.NewMenu(items)
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.checkUpdateCmd()
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case randomPickedMsg:
		if msg.Err != nil {
			h.notice = "Could not pick a sentence: " + msg.Err.Error()
			return h, nil
		}
		if msg.Sentence == nil {
			h.notice = "Library is empty. Add a sentence first."
			return h, nil
		}
		chosen := *msg.Sentence
		return h, func() tea.Msg {
			return router.PushScreenMsg{
				Screen: setup.New(h.cfg, h.st, h.recorder, chosen),
			}
		}

	case updateNoticeMsg:
		h.updateNotice = msg.Latest
		return h, nil
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	var sections []string

	sections = append(sections, RenderBanner(width))
	sections = append(sections, lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(" phrase-by-phrase language shadowing"))
	sections = append(sections, h.menu.View())

	if h.updateNotice != "" {
		sections = append(sections, lipgloss.NewStyle().
			Foreground(theme.Accent).
			Render("  Update available: "+h.updateNotice+" (run `shadowbox update`)"))
	}
	if h.notice != "" {
		sections = append(sections, lipgloss.NewStyle().
			Foreground(theme.Accent).
			Render("  "+h.notice))
	}

	content := strings.Join(sections, "\n\n")
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

func (h *HomeScreen) pickRandomCmd() tea.Cmd {
	lib, lang := h.lib, h.cfg.Language
	return func() tea.Msg {
		s, err := lib.Random(context.Background(), lang)
		return randomPickedMsg{Sentence: s, Err: err}
	}
}

// checkUpdateCmd runs the release check in the background; failures
// (offline, dev build) show nothing.
func (h *HomeScreen) checkUpdateCmd() tea.Cmd {
	if h.checker == nil {
		return nil
	}
	checker, version := h.checker, h.version
	return func() tea.Msg {
		res, err := checker.Check(context.Background(), &selfupdate.CheckInput{Version: version})
		if err != nil || !res.UpdateAvailable {
			return nil
		}
		return updateNoticeMsg{Latest: res.LatestVersion}
	}
}
