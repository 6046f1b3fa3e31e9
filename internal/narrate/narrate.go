// Package narrate turns phrase text into speech. Engines differ in where
// the voice comes from (Google Translate's TTS endpoint, the system say
// command, or nothing at all for silent practice); all of them block
// until the narration has finished and report how long it took, which
// paces the hands-free practice mode.
package narrate

import (
	"context"
	"strings"
	"time"
)

// Narrator pronounces phrases in one fixed language.
type Narrator interface {
	// Speak pronounces text at rate (1 = normal), blocking until playback
	// ends, and returns the measured duration. A zero duration with nil
	// error means the engine cannot measure; callers should fall back to
	// EstimateDuration.
	Speak(ctx context.Context, text string, rate float64) (time.Duration, error)

	// Name identifies the engine for the setup screen and logs.
	Name() string

	// Available reports whether the engine can run on this system.
	Available() bool
}

// Options selects and tunes an engine.
type Options struct {
	// Engine is gtts, say, silent or mock. Empty picks the first
	// available of gtts, say, silent.
	Engine string

	// Language is the narration language code ("en", "de", ...).
	Language string

	// Player overrides the playback command for fetched audio.
	Player string

	// Voice is the system voice name for the say engine.
	Voice string
}

// New builds the narrator for opts, falling back from gtts to say to
// silent when the preferred engine is unavailable.
func New(opts Options) Narrator {
	switch opts.Engine {
	case "gtts":
		return NewGTTS(opts.Language, opts.Player)
	case "say":
		return NewSay(opts.Language, opts.Voice)
	case "silent":
		return NewSilent()
	case "mock":
		return NewMock()
	}

	if g := NewGTTS(opts.Language, opts.Player); g.Available() {
		return g
	}
	if s := NewSay(opts.Language, opts.Voice); s.Available() {
		return s
	}
	return NewSilent()
}

// wordsPerMinute is the assumed base speaking pace at rate 1.
const wordsPerMinute = 150

// EstimateDuration approximates how long text takes to speak at rate.
// Used by the silent engine and whenever playback cannot be measured.
func EstimateDuration(text string, rate float64) time.Duration {
	words := len(strings.Fields(text))
	if words == 0 {
		return 0
	}
	if rate <= 0 {
		rate = 1
	}

	ms := float64(words) * (60_000 / wordsPerMinute) / rate
	if ms < 500 {
		ms = 500
	}
	return time.Duration(ms) * time.Millisecond
}
