//go:build purego || js

package main

import (
	"bufio"
	"image"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"thermalcam/pkg/session"
)

// headless stands in for a window when built without OpenCV. Frames are only
// counted; commands are read from stdin a line at a time.
type headless struct {
	keys   chan int
	frames int
	log    logrus.FieldLogger
}

func newDisplay(title string, log logrus.FieldLogger) (display, error) {
	log.WithField("title", title).Info("No window support in this build, reading commands from stdin")
	d := &headless{keys: make(chan int, 16), log: log}
	go d.readKeys(os.Stdin)
	return d, nil
}

func (d *headless) readKeys(r io.Reader) {
	br := bufio.NewReader(r)
	for {
		b, err := br.ReadByte()
		if err != nil {
			return
		}
		if b == '\n' || b == '\r' {
			continue
		}
		select {
		case d.keys <- int(b):
		default:
		}
	}
}

func (d *headless) Show(img *image.RGBA) error {
	d.frames++
	d.log.WithField("frame", d.frames).Tracef("Frame %dx%d", img.Bounds().Dx(), img.Bounds().Dy())
	return nil
}

func (d *headless) PollKey() int {
	select {
	case k := <-d.keys:
		return k
	default:
		return session.NoKey
	}
}

func (d *headless) Close() error { return nil }
