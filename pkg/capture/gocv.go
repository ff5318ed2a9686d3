//go:build !purego && !js

package capture

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"
)

// Backend names the capture implementation compiled in.
const Backend = "opencv"

// VideoCapture reads unconverted YUYV frames through OpenCV's V4L2 backend.
type VideoCapture struct {
	mu    sync.Mutex
	vc    *gocv.VideoCapture
	frame gocv.Mat
	mode  Mode
	log   logrus.FieldLogger
}

// Open opens path, disables OpenCV's RGB conversion so the raw YUYV bytes
// come through, and requests want. A device that reports any other size is
// closed again and ErrConfigMismatch returned.
func Open(ctx context.Context, path string, want Mode, log logrus.FieldLogger) (Source, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	vc, err := gocv.OpenVideoCaptureWithAPI(path, gocv.VideoCaptureV4L2)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	vc.Set(gocv.VideoCaptureConvertRGB, 0)
	vc.Set(gocv.VideoCaptureFrameWidth, float64(want.Width))
	vc.Set(gocv.VideoCaptureFrameHeight, float64(want.Height))

	got := Mode{
		Width:  int(vc.Get(gocv.VideoCaptureFrameWidth)),
		Height: int(vc.Get(gocv.VideoCaptureFrameHeight)),
	}
	log.WithField("node", path).Infof("Capture mode: %s", got)
	if err := checkMode(want, got); err != nil {
		vc.Close()
		return nil, err
	}

	return &VideoCapture{vc: vc, frame: gocv.NewMat(), mode: got, log: log}, nil
}

func (c *VideoCapture) Read(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.vc == nil {
		return nil, ErrClosed
	}
	if ok := c.vc.Read(&c.frame); !ok || c.frame.Empty() {
		return nil, ErrTransient
	}
	return c.frame.ToBytes(), nil
}

func (c *VideoCapture) Mode() Mode { return c.mode }

// Close releases the device. It is safe to call more than once.
func (c *VideoCapture) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.vc == nil {
		return nil
	}
	err := c.vc.Close()
	c.frame.Close()
	c.vc = nil
	return err
}
