package narrate

import (
	"context"
	"sync"
	"time"
)

// Silent is the no-audio engine: it never speaks, returning an estimated
// duration so paced modes still work. Used for muted practice and as the
// final fallback when nothing else is available.
type Silent struct{}

func NewSilent() *Silent { return &Silent{} }

func (*Silent) Name() string    { return "silent" }
func (*Silent) Available() bool { return true }

func (*Silent) Speak(_ context.Context, text string, rate float64) (time.Duration, error) {
	return EstimateDuration(text, rate), nil
}

// Mock records every narration for tests.
type Mock struct {
	mu    sync.Mutex
	calls []MockCall

	// Duration is what Speak reports; zero means half a second.
	Duration time.Duration

	// Err, when set, is returned by every Speak call.
	Err error
}

// MockCall is one recorded Speak invocation.
type MockCall struct {
	Text string
	Rate float64
}

func NewMock() *Mock { return &Mock{} }

func (*Mock) Name() string    { return "mock" }
func (*Mock) Available() bool { return true }

func (m *Mock) Speak(_ context.Context, text string, rate float64) (time.Duration, error) {
	m.mu.Lock()
	m.calls = append(m.calls, MockCall{Text: text, Rate: rate})
	m.mu.Unlock()

	if m.Err != nil {
		return 0, m.Err
	}
	if m.Duration > 0 {
		return m.Duration, nil
	}
	return 500 * time.Millisecond, nil
}

// Calls returns a copy of the recorded narrations.
func (m *Mock) Calls() []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]MockCall, len(m.calls))
	copy(out, m.calls)
	return out
}
