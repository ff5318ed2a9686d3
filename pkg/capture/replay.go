package capture

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"
)

// Replay serves frames from a file of concatenated raw captures, looping at
// the end. It stands in for the camera when developing without hardware.
type Replay struct {
	mu       sync.Mutex
	data     []byte
	frameLen int
	offset   int
	interval time.Duration
	mode     Mode
	closed   bool
}

// OpenReplay loads path. Every frame is mode.Width*mode.Height*bytesPerPixel
// bytes; a trailing partial frame is served as a short read. interval paces
// Read; zero disables pacing.
func OpenReplay(path string, mode Mode, bytesPerPixel int, interval time.Duration) (*Replay, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read replay: %w", err)
	}
	return NewReplay(data, mode, bytesPerPixel, interval)
}

// NewReplay serves frames from data.
func NewReplay(data []byte, mode Mode, bytesPerPixel int, interval time.Duration) (*Replay, error) {
	frameLen := mode.Width * mode.Height * bytesPerPixel
	if frameLen <= 0 {
		return nil, fmt.Errorf("invalid replay mode %s", mode)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("replay is empty")
	}
	return &Replay{data: data, frameLen: frameLen, interval: interval, mode: mode}, nil
}

func (r *Replay) Read(ctx context.Context) ([]byte, error) {
	if r.interval > 0 {
		t := time.NewTimer(r.interval)
		select {
		case <-ctx.Done():
			t.Stop()
			return nil, ctx.Err()
		case <-t.C:
		}
	} else if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil, ErrClosed
	}
	end := min(r.offset+r.frameLen, len(r.data))
	out := make([]byte, end-r.offset)
	copy(out, r.data[r.offset:end])
	r.offset = end
	if r.offset >= len(r.data) {
		r.offset = 0
	}
	return out, nil
}

func (r *Replay) Mode() Mode { return r.mode }

func (r *Replay) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	return nil
}
