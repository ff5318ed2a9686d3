package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"thermalcam/internal/config"
	"thermalcam/pkg/capture"
	"thermalcam/pkg/session"
	"thermalcam/pkg/thermal"
	"thermalcam/pkg/usbdev"
)

// display is the window the session draws into and reads keys from.
type display interface {
	session.DisplaySink
	session.KeySource
	Close() error
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	flags := flag.NewFlagSet("thermalcam", flag.ContinueOnError)
	configPath := flags.String("config", "", "YAML configuration file (optional)")
	debug := flags.Bool("debug", false, "Enable debug logging")
	replay := flags.String("replay", "", "Read raw frames from this file instead of the camera")
	async := flags.Bool("async", false, "Capture on a separate goroutine, keeping only the newest frame")
	if err := flags.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *debug {
		cfg.Logging.Level = "debug"
	}
	if *replay != "" {
		cfg.Capture.Replay = *replay
	}
	if *async {
		cfg.Capture.Async = true
	}

	log, err := initLogger(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"imaging": thermal.Backend,
		"capture": capture.Backend,
	}).Debug("Backends")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	src, err := openSource(ctx, cfg, log)
	if err != nil {
		log.WithError(err).Error("Startup failed")
		return err
	}

	disp, err := newDisplay(cfg.Display.Title, log)
	if err != nil {
		src.Close()
		return fmt.Errorf("opening display: %w", err)
	}
	defer disp.Close()

	fmt.Println("Controls: Q=quit, S=snapshot, C=colormap, +/-=contrast")

	opts := session.Options{
		Palette:  cfg.Palette(),
		Contrast: cfg.Display.Contrast,
		Async:    cfg.Capture.Async,
	}
	s := session.New(src, disp, disp, session.PNGWriter{Dir: cfg.Snapshot.Dir}, opts, log)
	if _, err := s.Run(ctx); err != nil {
		return err
	}
	return nil
}

// openSource returns the replay file when one is configured, otherwise it
// locates the camera (resetting its port if needed) and opens its node.
func openSource(ctx context.Context, cfg *config.Config, log logrus.FieldLogger) (capture.Source, error) {
	mode := capture.Mode{Width: thermal.SensorWidth, Height: thermal.SensorHeight}

	if cfg.Capture.Replay != "" {
		var interval time.Duration
		if cfg.Capture.ReplayFPS > 0 {
			interval = time.Duration(float64(time.Second) / cfg.Capture.ReplayFPS)
		}
		r, err := capture.OpenReplay(cfg.Capture.Replay, mode, thermal.BytesPerPixel, interval)
		if err != nil {
			return nil, err
		}
		log.WithField("file", cfg.Capture.Replay).Info("Replaying recorded frames")
		return r, nil
	}

	node, err := discover(ctx, cfg.Paths(), log)
	if err != nil {
		return nil, err
	}
	src, err := capture.Open(ctx, node.Path, mode, log)
	if err != nil {
		if errors.Is(err, capture.ErrConfigMismatch) {
			return nil, fmt.Errorf("camera at %s: %w", node.Path, err)
		}
		return nil, fmt.Errorf("opening camera: %w", err)
	}
	return src, nil
}

func discover(ctx context.Context, paths usbdev.Paths, log logrus.FieldLogger) (usbdev.VideoNode, error) {
	fsys := usbdev.OSFileSystem{}
	rec := usbdev.NewRecovery(
		usbdev.HikMicro,
		usbdev.NewScanner(fsys, paths, log),
		usbdev.NewResolver(fsys, paths, log),
		usbdev.USBFSResetter{Root: paths.USBFS},
		log,
	)
	res, err := rec.Run(ctx)
	if err != nil {
		return usbdev.VideoNode{}, err
	}
	log.WithFields(logrus.Fields{
		"node":   res.Node.Path,
		"resets": res.Resets,
		"ticks":  res.Ticks,
	}).Debug("Discovery finished")
	return res.Node, nil
}

func initLogger(level, format string) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}

	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	logger.SetLevel(lvl)

	if format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
		})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   lvl >= logrus.DebugLevel,
		})
	}
	return logger, nil
}
