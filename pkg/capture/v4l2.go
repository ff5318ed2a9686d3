//go:build purego && linux

package capture

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/vladimirvivien/go4vl/device"
	"github.com/vladimirvivien/go4vl/v4l2"
)

// Backend names the capture implementation compiled in.
const Backend = "go4vl"

const streamBuffers = 4

// V4L2 streams YUYV frames with go4vl's mmap capture loop.
type V4L2 struct {
	mu     sync.Mutex
	dev    *device.Device
	frames <-chan []byte
	cancel context.CancelFunc
	mode   Mode
	log    logrus.FieldLogger
}

// Open configures path for YUYV at want and starts streaming. The stream
// stops when ctx is cancelled or Close is called.
func Open(ctx context.Context, path string, want Mode, log logrus.FieldLogger) (Source, error) {
	dev, err := device.Open(path, device.WithBufferSize(streamBuffers))
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	if err := dev.SetPixFormat(v4l2.PixFormat{
		Width:       uint32(want.Width),
		Height:      uint32(want.Height),
		PixelFormat: v4l2.PixelFmtYUYV,
		Field:       v4l2.FieldNone,
	}); err != nil {
		dev.Close()
		return nil, fmt.Errorf("set pixel format: %w", err)
	}

	pix, err := dev.GetPixFormat()
	if err != nil {
		dev.Close()
		return nil, fmt.Errorf("get pixel format: %w", err)
	}
	got := Mode{Width: int(pix.Width), Height: int(pix.Height)}
	log.WithField("node", path).Infof("Capture mode: %s", got)
	if err := checkMode(want, got); err != nil {
		dev.Close()
		return nil, err
	}

	streamCtx, cancel := context.WithCancel(ctx)
	if err := dev.Start(streamCtx); err != nil {
		cancel()
		dev.Close()
		return nil, fmt.Errorf("start stream: %w", err)
	}

	return &V4L2{dev: dev, frames: dev.GetOutput(), cancel: cancel, mode: got, log: log}, nil
}

func (s *V4L2) Read(ctx context.Context) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case buf, ok := <-s.frames:
		if !ok {
			return nil, ErrClosed
		}
		if len(buf) == 0 {
			return nil, ErrTransient
		}
		out := make([]byte, len(buf))
		copy(out, buf)
		return out, nil
	}
}

func (s *V4L2) Mode() Mode { return s.mode }

// Close stops streaming and releases the device. It is safe to call more
// than once.
func (s *V4L2) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dev == nil {
		return nil
	}
	s.cancel()
	err := s.dev.Close()
	s.dev = nil
	return err
}
