// Package capture opens the thermal module's V4L2 node and delivers raw YUYV
// frames. The implementation depends on the build: OpenCV's VideoCapture by
// default, go4vl streaming under the purego tag.
package capture

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrConfigMismatch means the device opened but refused the requested
	// resolution. The pipeline cannot run on any other frame size.
	ErrConfigMismatch = errors.New("capture mode mismatch")

	// ErrTransient means a read produced no usable frame. Callers retry.
	ErrTransient = errors.New("no frame available")

	// ErrClosed is returned by Read after the source has been closed or the
	// device went away.
	ErrClosed = errors.New("capture source closed")
)

// Mode is a capture resolution in pixels.
type Mode struct {
	Width  int
	Height int
}

func (m Mode) String() string { return fmt.Sprintf("%dx%d", m.Width, m.Height) }

// Source delivers raw frames from an opened capture device.
type Source interface {
	// Read blocks for the next frame. Errors wrapping ErrTransient are routine.
	Read(ctx context.Context) ([]byte, error)
	Mode() Mode
	Close() error
}

// checkMode fails with ErrConfigMismatch unless the device honoured want.
func checkMode(want, got Mode) error {
	if want != got {
		return fmt.Errorf("%w: requested %s, device reports %s", ErrConfigMismatch, want, got)
	}
	return nil
}
