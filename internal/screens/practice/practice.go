package practice

import (
	"context"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/shadowbox/internal/narrate"
	"github.com/abhisek/shadowbox/internal/pace"
	"github.com/abhisek/shadowbox/internal/record"
	"github.com/abhisek/shadowbox/internal/router"
	"github.com/abhisek/shadowbox/internal/screen"
	"github.com/abhisek/shadowbox/internal/screens/summary"
	"github.com/abhisek/shadowbox/internal/session"
	"github.com/abhisek/shadowbox/internal/store"
	"github.com/abhisek/shadowbox/internal/ui/components"
	"github.com/abhisek/shadowbox/internal/ui/layout"
)

// Params selects the sentence and settings for one practice run.
type Params struct {
	Sentence  string
	Language  string
	Mode      session.Mode
	Level     pace.Level
	Reps      int
	Rate      float64
	Recording bool

	// Timing overrides the session delays; the zero value selects the
	// defaults.
	Timing session.Timing
}

// Deps are the collaborators the practice loop drives.
type Deps struct {
	Narrator   narrate.Narrator
	Recorder   record.Recorder
	Practices  store.PracticeRepo
	Recordings store.RecordingRepo
}

// PracticeScreen drives one practice session: it executes the effects the
// session transitions return (narration, capture, timers, persistence)
// and routes their completions back into the state machine.
type PracticeScreen struct {
	deps   Deps
	params Params

	state *session.State
	input components.TextInput

	// feedback is the last scored (or skipped) answer, shown until the
	// scheduled resume fires.
	feedback *session.ShowFeedback
	waiting  bool

	// Word-highlight pacing for the phrase being narrated.
	narrating bool
	spoken    int
	narrWords int
	perWord   time.Duration

	// Capture sequencing: a stop in flight defers the next start so
	// capture cycles never overlap.
	stopInFlight bool
	startPending bool

	// restartWait is the pending auto-restart delay from the finish
	// effects, handed to the summary screen.
	restartWait time.Duration

	pendingSummary *session.Summary

	quitConfirm bool
	notice      string
	errMsg      string
}

var _ screen.Screen = (*PracticeScreen)(nil)
var _ screen.KeyHintProvider = (*PracticeScreen)(nil)

// New creates a practice screen for params.
func New(deps Deps, params Params) *PracticeScreen {
	return &PracticeScreen{
		deps:   deps,
		params: params,
		input:  components.NewTextInput("Type what you heard...", 120),
	}
}

func (p *PracticeScreen) Init() tea.Cmd {
	return tea.Batch(p.loadHistoryCmd(), p.input.Init())
}

func (p *PracticeScreen) Title() string {
	return "Practice"
}

func (p *PracticeScreen) KeyHints() []layout.KeyHint {
	if p.quitConfirm {
		return []layout.KeyHint{
			{Key: "Y", Description: "End session"},
			{Key: "N", Description: "Keep going"},
		}
	}
	if p.state != nil && p.state.Mode == session.ModeCheck {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Check"},
			{Key: "Ctrl+R", Description: "Replay"},
			{Key: "Ctrl+S", Description: "Slow replay"},
			{Key: "Ctrl+N", Description: "Next phrase"},
			{Key: "Esc", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "Space", Description: "Next"},
		{Key: "R", Description: "Replay"},
		{Key: "S", Description: "Slow"},
		{Key: "N", Description: "Next phrase"},
		{Key: "B", Description: "Segment start"},
		{Key: "Esc", Description: "Quit"},
	}
}

func (p *PracticeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionReadyMsg:
		return p.handleReady(msg)

	case narrationDoneMsg:
		return p.handleNarrationDone(msg)

	case highlightTickMsg:
		return p.handleHighlightTick(msg)

	case recordLeadMsg:
		return p.handleRecordLead(msg)

	case recordStartedMsg:
		return p.handleRecordStarted(msg)

	case recordStoppedMsg:
		return p.handleRecordStopped(msg)

	case resumeMsg:
		if p.state == nil {
			return p, nil
		}
		effects := session.Resume(p.state, msg.Epoch)
		if len(effects) > 0 {
			p.feedback = nil
			p.waiting = false
		}
		return p, p.runEffects(effects)

	case autoAdvanceMsg:
		if p.state == nil {
			return p, nil
		}
		return p, p.runEffects(session.AutoAdvance(p.state, msg.Epoch))

	case progressSavedMsg, clipSavedMsg:
		return p, nil

	case completionSavedMsg:
		return p.handleCompletionSaved()

	case tea.KeyMsg:
		return p.handleKey(msg)
	}

	if p.acceptingText() {
		var cmd tea.Cmd
		p.input, cmd = p.input.Update(msg)
		return p, cmd
	}
	return p, nil
}

func (p *PracticeScreen) View(width, height int) string {
	if p.errMsg != "" {
		return renderError(width, height, p.errMsg)
	}
	if p.state == nil {
		return renderLoading(width, height)
	}
	if p.quitConfirm {
		return renderQuitConfirm(width, height)
	}
	return p.renderSession(width, height)
}

// acceptingText reports whether keystrokes belong to the answer input.
func (p *PracticeScreen) acceptingText() bool {
	return p.state != nil &&
		p.state.Phase == session.PhaseActive &&
		p.state.Mode == session.ModeCheck &&
		!p.waiting && !p.quitConfirm && p.pendingSummary == nil
}

// loadHistoryCmd reads the newness counter and the saved resume point.
// Persistence read failures degrade to a fresh, never-practiced session.
func (p *PracticeScreen) loadHistoryCmd() tea.Cmd {
	repo := p.deps.Practices
	sentence := strings.TrimSpace(p.params.Sentence)
	return func() tea.Msg {
		ctx := context.Background()
		count, err := repo.CountToday(ctx, sentence)
		if err != nil {
			count = 0
		}
		idx, ok, err := repo.Progress(ctx, sentence)
		if err != nil || !ok {
			idx = 0
		}
		return sessionReadyMsg{PracticesToday: count, ResumeIndex: idx}
	}
}

func (p *PracticeScreen) handleReady(msg sessionReadyMsg) (screen.Screen, tea.Cmd) {
	recording := p.params.Recording
	if recording && (p.deps.Recorder == nil || !p.deps.Recorder.Available()) {
		recording = false
		p.notice = "No audio recorder found. Practicing without capture."
	}

	st, err := session.NewState(session.Config{
		Sentence:       p.params.Sentence,
		Language:       p.params.Language,
		Mode:           p.params.Mode,
		Level:          p.params.Level,
		Reps:           p.params.Reps,
		Rate:           p.params.Rate,
		RecordingOn:    recording,
		PracticesToday: msg.PracticesToday,
		StartIndex:     msg.ResumeIndex,
		Timing:         p.params.Timing,
	})
	if err != nil {
		p.errMsg = err.Error()
		return p, nil
	}

	p.state = st
	return p, p.runEffects(session.Start(st))
}

// runEffects executes one transition's effects in order, turning timers
// and I/O into commands and display effects into model updates.
func (p *PracticeScreen) runEffects(effects []session.Effect) tea.Cmd {
	var cmds []tea.Cmd
	for _, eff := range effects {
		switch e := eff.(type) {
		case session.Narrate:
			cmds = append(cmds, p.startNarration(e)...)

		case session.StartRecording:
			cmds = append(cmds, after(e.After, recordLeadMsg{Epoch: e.Epoch}))

		case session.StopRecording:
			p.stopInFlight = true
			cmds = append(cmds, p.stopRecordingCmd())

		case session.ShowFeedback:
			fb := e
			p.feedback = &fb

		case session.ScheduleResume:
			p.waiting = true
			cmds = append(cmds, after(e.After, resumeMsg{Epoch: e.Epoch}))

		case session.ScheduleAutoAdvance:
			cmds = append(cmds, after(e.After, autoAdvanceMsg{Epoch: e.Epoch}))

		case session.ScheduleRestart:
			p.restartWait = e.After

		case session.SaveProgress:
			cmds = append(cmds, p.saveProgressCmd(e.Index))

		case session.Completed:
			sum := e.Summary
			p.pendingSummary = &sum
			cmds = append(cmds, p.completeCmd(sum))
		}
	}
	return tea.Batch(cmds...)
}

// startNarration issues the blocking speak command plus the first
// word-highlight tick.
func (p *PracticeScreen) startNarration(e session.Narrate) []tea.Cmd {
	words := len(strings.Fields(e.Text))
	if words < 1 {
		words = 1
	}
	p.narrating = true
	p.spoken = 0
	p.narrWords = words
	p.perWord = narrate.EstimateDuration(e.Text, e.Rate) / time.Duration(words)

	narrator := p.deps.Narrator
	speak := func() tea.Msg {
		dur, err := narrator.Speak(context.Background(), e.Text, e.Rate)
		if dur <= 0 {
			dur = narrate.EstimateDuration(e.Text, e.Rate)
		}
		// Failures still complete the narration so the machine never
		// stalls waiting for it.
		return narrationDoneMsg{Epoch: e.Epoch, Duration: dur, Err: err}
	}

	return []tea.Cmd{speak, p.highlightTickCmd(e.Epoch, 1)}
}

func (p *PracticeScreen) highlightTickCmd(epoch, word int) tea.Cmd {
	return tea.Tick(p.perWord, func(time.Time) tea.Msg {
		return highlightTickMsg{Epoch: epoch, Word: word}
	})
}

func (p *PracticeScreen) handleHighlightTick(msg highlightTickMsg) (screen.Screen, tea.Cmd) {
	if p.state == nil || msg.Epoch != p.state.Epoch || !p.narrating {
		return p, nil
	}
	p.spoken = msg.Word
	if msg.Word < p.narrWords {
		return p, p.highlightTickCmd(msg.Epoch, msg.Word+1)
	}
	return p, nil
}

func (p *PracticeScreen) handleNarrationDone(msg narrationDoneMsg) (screen.Screen, tea.Cmd) {
	if p.state == nil || msg.Epoch != p.state.Epoch {
		return p, nil
	}
	p.narrating = false
	p.spoken = p.narrWords
	if msg.Err != nil {
		p.notice = "Narration failed: " + msg.Err.Error()
	}
	return p, p.runEffects(session.NarrationDone(p.state, msg.Epoch, msg.Duration))
}

func (p *PracticeScreen) handleRecordLead(msg recordLeadMsg) (screen.Screen, tea.Cmd) {
	if p.state == nil || msg.Epoch != p.state.Epoch || !p.state.RecordingOn {
		return p, nil
	}
	if p.stopInFlight {
		// The previous cycle has not fully ceased; the start runs once
		// its stop confirms.
		p.startPending = true
		return p, nil
	}
	return p, p.startRecordingCmd()
}

func (p *PracticeScreen) startRecordingCmd() tea.Cmd {
	rec := p.deps.Recorder
	return func() tea.Msg {
		return recordStartedMsg{Err: rec.Start(context.Background())}
	}
}

func (p *PracticeScreen) stopRecordingCmd() tea.Cmd {
	rec := p.deps.Recorder
	if rec == nil || !rec.Available() {
		return func() tea.Msg { return recordStoppedMsg{} }
	}
	return func() tea.Msg {
		clip, err := rec.Stop()
		return recordStoppedMsg{Clip: clip, Err: err}
	}
}

func (p *PracticeScreen) handleRecordStarted(msg recordStartedMsg) (screen.Screen, tea.Cmd) {
	if msg.Err == nil {
		return p, nil
	}
	// Capture failure degrades to text-only practice for the rest of
	// the session.
	if p.state != nil {
		p.state.RecordingOn = false
	}
	p.notice = "Recording unavailable: " + msg.Err.Error()
	return p, nil
}

func (p *PracticeScreen) handleRecordStopped(msg recordStoppedMsg) (screen.Screen, tea.Cmd) {
	p.stopInFlight = false

	var cmds []tea.Cmd
	if p.startPending {
		p.startPending = false
		if p.state != nil && p.state.Recording() {
			cmds = append(cmds, p.startRecordingCmd())
		}
	}

	if msg.Err == nil && msg.Clip.Path != "" && p.state != nil {
		cmds = append(cmds, p.saveClipCmd(msg.Clip))
	}
	return p, tea.Batch(cmds...)
}

func (p *PracticeScreen) saveClipCmd(clip record.Clip) tea.Cmd {
	repo := p.deps.Recordings
	rec := store.Recording{
		SessionID: p.state.ID,
		Sentence:  p.state.Sentence,
		Language:  p.state.Language,
		Path:      clip.Path,
		Duration:  clip.Duration,
	}
	return func() tea.Msg {
		_, err := repo.Save(context.Background(), rec)
		return clipSavedMsg{Err: err}
	}
}

func (p *PracticeScreen) saveProgressCmd(index int) tea.Cmd {
	repo := p.deps.Practices
	sentence := p.state.Sentence
	return func() tea.Msg {
		err := repo.SaveProgress(context.Background(), sentence, index)
		return progressSavedMsg{Err: err}
	}
}

func (p *PracticeScreen) completeCmd(sum session.Summary) tea.Cmd {
	repo := p.deps.Practices
	return func() tea.Msg {
		ctx := context.Background()
		err := repo.RecordCompletion(ctx, store.Practice{
			SessionID: sum.SessionID,
			Sentence:  sum.Sentence,
			Language:  sum.Language,
			Mode:      string(sum.Mode),
			Accuracy:  sum.Accuracy,
			Correct:   sum.Correct,
			Attempts:  sum.Attempts,
			Duration:  sum.Duration,
		})
		// The sentence is finished; a leftover resume point would start
		// the next session mid-sentence.
		if cerr := repo.ClearProgress(ctx, sum.Sentence); err == nil {
			err = cerr
		}
		return completionSavedMsg{Err: err}
	}
}

func (p *PracticeScreen) handleCompletionSaved() (screen.Screen, tea.Cmd) {
	if p.pendingSummary == nil {
		return p, nil
	}
	sum := *p.pendingSummary
	deps, params := p.deps, p.params
	restart := func() screen.Screen { return New(deps, params) }
	wait := p.restartWait

	return p, tea.Batch(
		func() tea.Msg {
			return router.ReplaceScreenMsg{Screen: summary.New(sum, restart, wait)}
		},
		func() tea.Msg { return screen.StreakChangedMsg{} },
	)
}

func (p *PracticeScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if p.errMsg != "" {
		return p, func() tea.Msg { return router.PopScreenMsg{} }
	}
	if p.state == nil || p.pendingSummary != nil {
		return p, nil
	}

	if p.quitConfirm {
		switch key {
		case "y", "Y":
			p.quitConfirm = false
			return p, tea.Batch(
				p.runEffects(session.Abandon(p.state)),
				func() tea.Msg { return router.PopScreenMsg{} },
			)
		case "n", "N", "esc":
			p.quitConfirm = false
		}
		return p, nil
	}

	switch key {
	case "esc":
		p.quitConfirm = true
		return p, nil
	case "ctrl+r":
		return p, p.interruptCmd(session.Replay(p.state, false))
	case "ctrl+s":
		return p, p.interruptCmd(session.Replay(p.state, true))
	case "ctrl+n":
		return p, p.interruptCmd(session.Advance(p.state))
	}

	if p.waiting {
		return p, nil
	}

	if p.state.Mode == session.ModeCheck {
		if key == "enter" {
			raw := p.input.Value()
			p.input.Reset()
			return p, p.runEffects(session.CheckAnswer(p.state, raw))
		}
		var cmd tea.Cmd
		p.input, cmd = p.input.Update(msg)
		return p, cmd
	}

	// Skip and auto-skip modes: plain keys, no text entry.
	switch key {
	case "space", " ", "enter":
		return p, p.runEffects(session.CheckAnswer(p.state, ""))
	case "n":
		return p, p.interruptCmd(session.Advance(p.state))
	case "r":
		return p, p.interruptCmd(session.Replay(p.state, false))
	case "s":
		return p, p.interruptCmd(session.Replay(p.state, true))
	case "b":
		return p, p.interruptCmd(session.Seek(p.state, p.state.Index))
	}
	return p, nil
}

// interruptCmd runs a user-initiated transition during a feedback pause.
// The epoch bump killed the scheduled resume, so the pause state must not
// outlive it.
func (p *PracticeScreen) interruptCmd(effects []session.Effect) tea.Cmd {
	p.feedback = nil
	p.waiting = false
	return p.runEffects(effects)
}

// after wraps a delayed message; a non-positive delay delivers it
// immediately.
func after(d time.Duration, msg tea.Msg) tea.Cmd {
	if d <= 0 {
		return func() tea.Msg { return msg }
	}
	return tea.Tick(d, func(time.Time) tea.Msg { return msg })
}
