package narrate

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"time"
)

// baseWPM is the speaking pace handed to the system synthesizer at rate 1.
// Both say -r and espeak-ng -s take words per minute.
const baseWPM = 175

// Say narrates through the local speech synthesizer: say on macOS,
// espeak-ng elsewhere. No network, no cache; the voice quality is what
// the system provides.
type Say struct {
	language string
	voice    string
	binary   string
}

// NewSay builds the engine, probing for say first and espeak-ng second.
func NewSay(language, voice string) *Say {
	s := &Say{language: language, voice: voice}
	for _, bin := range []string{"say", "espeak-ng"} {
		if _, err := exec.LookPath(bin); err == nil {
			s.binary = bin
			break
		}
	}
	return s
}

func (s *Say) Name() string {
	if s.binary == "" {
		return "say"
	}
	return s.binary
}

func (s *Say) Available() bool { return s.binary != "" }

func (s *Say) Speak(ctx context.Context, text string, rate float64) (time.Duration, error) {
	if s.binary == "" {
		return 0, fmt.Errorf("narrate: no speech synthesizer found (tried say, espeak-ng)")
	}
	if rate <= 0 {
		rate = 1
	}
	wpm := strconv.Itoa(int(baseWPM * rate))

	var args []string
	switch s.binary {
	case "say":
		if s.voice != "" {
			args = append(args, "-v", s.voice)
		}
		args = append(args, "-r", wpm, text)
	default: // espeak-ng
		if s.language != "" {
			args = append(args, "-v", s.language)
		}
		args = append(args, "-s", wpm, text)
	}

	cmd := exec.CommandContext(ctx, s.binary, args...)
	start := time.Now()
	if err := cmd.Run(); err != nil {
		return 0, fmt.Errorf("narrate: %s: %w", s.binary, err)
	}
	return time.Since(start), nil
}
