package setup

import (
	"fmt"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/shadowbox/internal/config"
	"github.com/abhisek/shadowbox/internal/narrate"
	"github.com/abhisek/shadowbox/internal/pace"
	"github.com/abhisek/shadowbox/internal/record"
	"github.com/abhisek/shadowbox/internal/router"
	"github.com/abhisek/shadowbox/internal/screen"
	"github.com/abhisek/shadowbox/internal/screens/practice"
	"github.com/abhisek/shadowbox/internal/session"
	"github.com/abhisek/shadowbox/internal/store"
	"github.com/abhisek/shadowbox/internal/ui/components"
	"github.com/abhisek/shadowbox/internal/ui/layout"
	"github.com/abhisek/shadowbox/internal/ui/theme"
)

const autoLabel = "auto"

// Field indices into the selector rows; the start row sits below them.
const (
	fieldMode = iota
	fieldLevel
	fieldReps
	fieldRate
	fieldRecording
	fieldStart
	fieldCount
)

// SetupScreen tunes one practice run before it starts.
type SetupScreen struct {
	cfg      *config.Config
	st       *store.Store
	recorder record.Recorder
	sentence store.Sentence

	rows    [fieldRecording + 1]components.Selector
	focused int
}

var _ screen.Screen = (*SetupScreen)(nil)
var _ screen.KeyHintProvider = (*SetupScreen)(nil)

// New creates a setup screen for the chosen sentence, seeded from the
// user configuration.
func New(cfg *config.Config, st *store.Store, recorder record.Recorder, sentence store.Sentence) *SetupScreen {
	s := &SetupScreen{
		cfg:      cfg,
		st:       st,
		recorder: recorder,
		sentence: sentence,
	}

	s.rows[fieldMode] = components.NewSelector("Mode",
		[]string{"check", "skip", "auto-skip"}, cfg.Mode)
	s.rows[fieldLevel] = components.NewSelector("Level",
		[]string{"beginner", "intermediate", "advanced"}, cfg.Level)
	s.rows[fieldReps] = components.NewSelector("Repetitions",
		[]string{autoLabel, "1", "2", "3", "4", "5"}, repsLabel(cfg.Reps))
	s.rows[fieldRate] = components.NewSelector("Rate",
		[]string{autoLabel, "0.6", "0.8", "1.0", "1.2", "1.4"}, rateLabel(cfg.Rate))

	recording := "off"
	if cfg.Recording {
		recording = "on"
	}
	s.rows[fieldRecording] = components.NewSelector("Recording",
		[]string{"on", "off"}, recording)
	if recorder == nil || !recorder.Available() {
		s.rows[fieldRecording] = components.NewSelector("Recording", []string{"off"}, "off")
		s.rows[fieldRecording].Disabled = true
	}

	return s
}

func (s *SetupScreen) Init() tea.Cmd {
	return nil
}

func (s *SetupScreen) Title() string {
	return "Session Setup"
}

func (s *SetupScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Field"},
		{Key: "←→", Description: "Change"},
		{Key: "Enter", Description: "Start"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SetupScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if s.focused > 0 {
			s.focused--
		}
	case "down", "j":
		if s.focused < fieldCount-1 {
			s.focused++
		}
	case "left", "h":
		if s.focused < len(s.rows) {
			s.rows[s.focused].Prev()
		}
	case "right", "l":
		if s.focused < len(s.rows) {
			s.rows[s.focused].Next()
		}
	case "enter":
		return s, s.start()
	case "esc":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return s, nil
}

// start builds the narrator for the sentence's language and replaces
// this screen with the practice loop.
func (s *SetupScreen) start() tea.Cmd {
	mode, err := session.ParseMode(s.rows[fieldMode].Value())
	if err != nil {
		mode = session.ModeCheck
	}
	level, err := pace.ParseLevel(s.rows[fieldLevel].Value())
	if err != nil {
		level = pace.Intermediate
	}

	params := practice.Params{
		Sentence:  s.sentence.Text,
		Language:  s.sentence.Language,
		Mode:      mode,
		Level:     level,
		Reps:      parseReps(s.rows[fieldReps].Value()),
		Rate:      parseRate(s.rows[fieldRate].Value()),
		Recording: s.rows[fieldRecording].Value() == "on",
	}

	deps := practice.Deps{
		Narrator: narrate.New(narrate.Options{
			Engine:   s.cfg.Narrator.Engine,
			Language: s.sentence.Language,
			Player:   s.cfg.Narrator.Player,
			Voice:    s.cfg.Narrator.Voice,
		}),
		Recorder:   s.recorder,
		Practices:  s.st.PracticeRepo(),
		Recordings: s.st.RecordingRepo(),
	}

	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: practice.New(deps, params)}
	}
}

func (s *SetupScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString("\n  ")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("Sentence"))
	b.WriteString("\n  ")
	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Width(width - 4).
		Render(s.sentence.Text))
	b.WriteString("\n\n")

	for i, row := range s.rows {
		b.WriteString(row.View(i == s.focused))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	startStyle := lipgloss.NewStyle().Foreground(theme.Text)
	prefix := "    "
	if s.focused == fieldStart {
		startStyle = startStyle.Foreground(theme.Success).Bold(true)
		prefix = "  ▸ "
	}
	b.WriteString(prefix + startStyle.Render("START PRACTICE"))
	b.WriteString("\n")

	return b.String()
}

func repsLabel(reps int) string {
	if reps == pace.AutoReps {
		return autoLabel
	}
	return strconv.Itoa(reps)
}

func rateLabel(rate float64) string {
	if rate == pace.AutoRate {
		return autoLabel
	}
	return fmt.Sprintf("%.1f", rate)
}

func parseReps(v string) int {
	if v == autoLabel {
		return pace.AutoReps
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return pace.AutoReps
	}
	return n
}

func parseRate(v string) float64 {
	if v == autoLabel {
		return pace.AutoRate
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return pace.AutoRate
	}
	return f
}
