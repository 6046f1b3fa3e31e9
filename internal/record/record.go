// Package record captures the user's spoken repetitions. Capture runs
// through a command-line recorder (arecord, rec or sox) so no audio
// stack is linked in; systems without one degrade to text-only practice.
package record

import (
	"context"
	"errors"
	"time"
)

// Clip is one finished capture.
type Clip struct {
	// Path is the audio file on disk.
	Path string

	// Format is the container ("wav").
	Format string

	// Duration is the wall-clock capture time.
	Duration time.Duration
}

// Recorder captures one clip at a time.
type Recorder interface {
	// Start begins capturing to a new file. A capture must be stopped
	// before the next can start.
	Start(ctx context.Context) error

	// Stop ends the capture and returns the finished clip.
	Stop() (Clip, error)

	// Available reports whether capture can work on this system.
	Available() bool
}

var (
	// ErrUnavailable means no capture command exists on this system.
	ErrUnavailable = errors.New("record: no capture command available")

	// ErrAlreadyRecording rejects overlapping captures.
	ErrAlreadyRecording = errors.New("record: capture already running")

	// ErrNotRecording rejects a stop without a start.
	ErrNotRecording = errors.New("record: no capture running")
)

// Null is the recorder for systems without a capture command. Start and
// Stop always fail with ErrUnavailable; callers check Available first and
// turn capture off.
type Null struct{}

func NewNull() *Null { return &Null{} }

func (*Null) Available() bool                 { return false }
func (*Null) Start(context.Context) error     { return ErrUnavailable }
func (*Null) Stop() (Clip, error)             { return Clip{}, ErrUnavailable }
