package record

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

// recorders are probed in order.
var recorders = []string{"arecord", "rec", "sox"}

// stopGrace is how long a recorder may take to flush and exit after the
// interrupt before it is killed.
const stopGrace = 2 * time.Second

// Exec captures through a command-line recorder started per clip and
// stopped with an interrupt, which lets the tool finalize the WAV header.
type Exec struct {
	dir    string
	binary string

	mu      sync.Mutex
	cmd     *exec.Cmd
	path    string
	started time.Time
}

// NewExec builds a recorder writing clips into dir, probing for arecord,
// rec and sox in that order.
func NewExec(dir string) *Exec {
	e := &Exec{dir: dir}
	for _, bin := range recorders {
		if _, err := exec.LookPath(bin); err == nil {
			e.binary = bin
			break
		}
	}
	return e
}

func (e *Exec) Available() bool { return e.binary != "" }

func (e *Exec) Start(ctx context.Context) error {
	if e.binary == "" {
		return ErrUnavailable
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.cmd != nil {
		return ErrAlreadyRecording
	}

	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return fmt.Errorf("record: create clip dir: %w", err)
	}
	path := filepath.Join(e.dir, clipName())

	args := recorderArgs(e.binary, path)
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("record: start %s: %w", e.binary, err)
	}

	e.cmd = cmd
	e.path = path
	e.started = time.Now()
	return nil
}

func (e *Exec) Stop() (Clip, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.cmd == nil {
		return Clip{}, ErrNotRecording
	}

	cmd, path, started := e.cmd, e.path, e.started
	e.cmd = nil
	e.path = ""

	// Interrupt first so the tool can finalize the file; kill if it
	// doesn't exit in time. On platforms without interrupt support the
	// signal call fails and we kill directly.
	if err := cmd.Process.Signal(os.Interrupt); err != nil {
		cmd.Process.Kill()
	}

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()
	select {
	case <-done:
	case <-time.After(stopGrace):
		cmd.Process.Kill()
		<-done
	}

	info, err := os.Stat(path)
	if err != nil || info.Size() == 0 {
		os.Remove(path)
		return Clip{}, fmt.Errorf("record: capture produced no audio at %s", path)
	}

	return Clip{
		Path:     path,
		Format:   "wav",
		Duration: time.Since(started),
	}, nil
}

// clipName builds a unique clip filename; the timestamp keeps a directory
// listing in practice order.
func clipName() string {
	return fmt.Sprintf("clip-%s-%s.wav",
		time.Now().Format("20060102-150405"),
		uuid.New().String()[:8])
}

// recorderArgs builds the capture invocation for one recorder.
func recorderArgs(binary, path string) []string {
	switch binary {
	case "arecord":
		return []string{binary, "-q", "-f", "cd", path}
	case "rec":
		return []string{binary, "-q", path}
	default: // sox
		return []string{binary, "-q", "-d", path}
	}
}
