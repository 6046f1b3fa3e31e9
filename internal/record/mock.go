package record

import (
	"context"
	"sync"
	"time"
)

// Mock is an in-memory recorder for tests.
type Mock struct {
	mu     sync.Mutex
	active bool
	starts int
	stops  int

	// Err, when set, is returned by Start.
	Err error
}

func NewMock() *Mock { return &Mock{} }

func (*Mock) Available() bool { return true }

func (m *Mock) Start(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	if m.active {
		return ErrAlreadyRecording
	}
	m.active = true
	m.starts++
	return nil
}

func (m *Mock) Stop() (Clip, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.active {
		return Clip{}, ErrNotRecording
	}
	m.active = false
	m.stops++
	return Clip{Path: "/dev/null", Format: "wav", Duration: time.Second}, nil
}

// Counts returns how many captures were started and stopped.
func (m *Mock) Counts() (starts, stops int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.starts, m.stops
}
