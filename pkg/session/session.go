package session

import (
	"context"
	"errors"
	"fmt"
	"image"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"thermalcam/pkg/capture"
	"thermalcam/pkg/thermal"
)

// FrameSource delivers raw captures. capture.Source satisfies it.
type FrameSource interface {
	Read(ctx context.Context) ([]byte, error)
	Close() error
}

// DisplaySink presents a composed frame.
type DisplaySink interface {
	Show(img *image.RGBA) error
}

// KeySource reports the key pressed since the last call, or NoKey. HighGUI
// services its window events inside the same call, so it is polled once per
// displayed frame.
type KeySource interface {
	PollKey() int
}

// SnapshotWriter persists a composed frame under name.
type SnapshotWriter interface {
	Write(name string, img image.Image) (string, error)
}

// Options are the session's starting parameters.
type Options struct {
	Palette  thermal.Palette
	Contrast float64
	// Async moves capture to its own goroutine with a latest-frame-wins
	// handoff. Frames that arrive while one is being processed are dropped.
	Async bool
}

// DefaultOptions starts on the first palette at unit contrast, synchronously.
func DefaultOptions() Options {
	return Options{Palette: thermal.Inferno, Contrast: DefaultContrast}
}

// Stats summarizes a finished session.
type Stats struct {
	Frames    int
	Dropped   int
	Snapshots int

	// Overwritten counts frames replaced in the async handoff before the
	// processing loop took them.
	Overwritten uint64
}

// Session owns the contrast and palette state and runs the per-frame loop.
// The state is only changed between frames.
type Session struct {
	Source    FrameSource
	Display   DisplaySink
	Keys      KeySource
	Snapshots SnapshotWriter
	Pipeline  *thermal.Pipeline
	Log       logrus.FieldLogger
	Now       func() time.Time

	opts     Options
	contrast Contrast
	palette  PaletteSelection

	frames      int
	dropped     atomic.Int64
	snapshots   int
	overwritten uint64
}

// New creates a Session over the given collaborators.
func New(src FrameSource, display DisplaySink, keys KeySource, snaps SnapshotWriter, opts Options, log logrus.FieldLogger) *Session {
	return &Session{
		Source:    src,
		Display:   display,
		Keys:      keys,
		Snapshots: snaps,
		Pipeline:  thermal.NewPipeline(),
		Log:       log,
		Now:       time.Now,
		opts:      opts,
		contrast:  NewContrast(opts.Contrast),
		palette:   NewPaletteSelection(opts.Palette),
	}
}

func (s *Session) Contrast() float64        { return s.contrast.Value() }
func (s *Session) Palette() thermal.Palette { return s.palette.Current() }

// Run processes frames until a quit command, ctx cancellation or loss of the
// capture device. Transient capture and short-frame errors drop the frame and
// carry on. The source is closed before Run returns.
func (s *Session) Run(ctx context.Context) (Stats, error) {
	var err error
	if s.opts.Async {
		err = s.runAsync(ctx)
	} else {
		err = s.runSync(ctx)
	}
	if cerr := s.Source.Close(); cerr != nil {
		s.Log.WithError(cerr).Warn("Closing capture source failed")
	}

	stats := s.stats()
	s.Log.WithFields(logrus.Fields{
		"frames":    stats.Frames,
		"dropped":   stats.Dropped,
		"snapshots": stats.Snapshots,
	}).Info("Session ended")
	if errors.Is(err, context.Canceled) {
		return stats, nil
	}
	return stats, err
}

func (s *Session) stats() Stats {
	return Stats{
		Frames:      s.frames,
		Dropped:     int(s.dropped.Load()),
		Snapshots:   s.snapshots,
		Overwritten: s.overwritten,
	}
}

func (s *Session) runSync(ctx context.Context) error {
	for {
		raw, err := s.Source.Read(ctx)
		if err != nil {
			if stop := s.captureFailed(ctx, err); stop != nil {
				return stop
			}
			continue
		}
		if quit := s.step(raw); quit {
			return nil
		}
	}
}

func (s *Session) runAsync(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	slot := newFrameSlot()
	var (
		wg      sync.WaitGroup
		loopErr error
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer slot.close()
		for {
			raw, err := s.Source.Read(ctx)
			if err != nil {
				if stop := s.captureFailed(ctx, err); stop != nil {
					loopErr = stop
					return
				}
				continue
			}
			slot.publish(raw)
		}
	}()

	for {
		raw, ok := slot.take()
		if !ok {
			break
		}
		if quit := s.step(raw); quit {
			break
		}
	}
	cancel()
	wg.Wait()

	s.overwritten = slot.dropped()
	s.Log.WithField("dropped", s.overwritten).Debug("Async capture stopped")
	return loopErr
}

// captureFailed classifies a read error. It returns nil when the loop should
// retry, or the error that ends the session.
func (s *Session) captureFailed(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if errors.Is(err, capture.ErrClosed) {
		return fmt.Errorf("capture stopped: %w", err)
	}
	s.dropped.Add(1)
	s.Log.WithError(err).Debug("Capture failed, dropping frame")
	return nil
}

// step processes one raw frame, shows it and applies the pending command.
// It reports whether the user asked to quit.
func (s *Session) step(raw []byte) bool {
	_, img, err := s.Pipeline.Process(raw, s.contrast.Value(), s.palette.Current())
	if err != nil {
		s.dropped.Add(1)
		if errors.Is(err, thermal.ErrInsufficientData) {
			s.Log.WithError(err).Debug("Short frame, dropping")
		} else {
			s.Log.WithError(err).Warn("Frame processing failed")
		}
		return false
	}

	if err := s.Display.Show(img); err != nil {
		s.Log.WithError(err).Warn("Display failed")
	}
	s.frames++

	return s.apply(ParseKey(s.Keys.PollKey()), img)
}

// apply executes cmd against the session state and reports whether it was
// a quit.
func (s *Session) apply(cmd Command, img *image.RGBA) bool {
	switch cmd {
	case CommandQuit:
		return true
	case CommandSnapshot:
		path, err := s.Snapshots.Write(SnapshotName(s.Now()), img)
		if err != nil {
			s.Log.WithError(err).Error("Snapshot failed")
			return false
		}
		s.snapshots++
		s.Log.WithField("file", path).Infof("Saved %s", path)
	case CommandCyclePalette:
		p := s.palette.Next()
		s.Log.WithField("palette", p.String()).Infof("Colormap: %s", p)
	case CommandContrastUp:
		c := s.contrast.Increase()
		s.Log.WithField("contrast", c).Infof("Contrast: %.1fx", c)
	case CommandContrastDown:
		c := s.contrast.Decrease()
		s.Log.WithField("contrast", c).Infof("Contrast: %.1fx", c)
	}
	return false
}
