package session

import (
	"context"
	"image"
	"io"
	"sync"

	"github.com/sirupsen/logrus"

	"thermalcam/pkg/capture"
	"thermalcam/pkg/thermal"
)

type read struct {
	raw []byte
	err error
}

// scriptedSource replays reads in order, then reports the device gone.
type scriptedSource struct {
	mu     sync.Mutex
	reads  []read
	closed bool
}

func (s *scriptedSource) Read(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.reads) == 0 {
		return nil, capture.ErrClosed
	}
	r := s.reads[0]
	s.reads = s.reads[1:]
	return r.raw, r.err
}

func (s *scriptedSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *scriptedSource) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

type recordingDisplay struct {
	shown []image.Rectangle
	err   error
}

func (d *recordingDisplay) Show(img *image.RGBA) error {
	d.shown = append(d.shown, img.Bounds())
	return d.err
}

// scriptedKeys returns keys in order, then NoKey.
type scriptedKeys struct {
	keys []int
}

func (k *scriptedKeys) PollKey() int {
	if len(k.keys) == 0 {
		return NoKey
	}
	key := k.keys[0]
	k.keys = k.keys[1:]
	return key
}

type recordingWriter struct {
	names []string
}

func (w *recordingWriter) Write(name string, img image.Image) (string, error) {
	w.names = append(w.names, name)
	return "/tmp/" + name, nil
}

func constantFrame(v byte) []byte {
	raw := make([]byte, thermal.SensorWidth*thermal.SensorHeight*thermal.BytesPerPixel)
	for i := 0; i < len(raw); i += thermal.BytesPerPixel {
		raw[i] = v
		raw[i+1] = 0x80
	}
	return raw
}

func frames(n int, v byte) []read {
	out := make([]read, n)
	for i := range out {
		out[i] = read{raw: constantFrame(v)}
	}
	return out
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}
