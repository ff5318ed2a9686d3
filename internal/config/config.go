// Package config loads thermalcam's runtime configuration.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"thermalcam/pkg/session"
	"thermalcam/pkg/thermal"
	"thermalcam/pkg/usbdev"
)

// Config is the root configuration. Values come from defaults, then the
// optional YAML file, then THERMALCAM_* environment variables.
type Config struct {
	Device   DeviceConfig   `yaml:"device"`
	Display  DisplayConfig  `yaml:"display"`
	Snapshot SnapshotConfig `yaml:"snapshot"`
	Capture  CaptureConfig  `yaml:"capture"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// DeviceConfig locates the kernel interfaces used for discovery and reset.
type DeviceConfig struct {
	USBDevices string `yaml:"usb_devices"`
	VideoClass string `yaml:"video_class"`
	DevRoot    string `yaml:"dev_root"`
	USBFS      string `yaml:"usbfs"`
}

// DisplayConfig controls the live view.
type DisplayConfig struct {
	Title    string  `yaml:"title"`
	Palette  string  `yaml:"palette"`
	Contrast float64 `yaml:"contrast"`
}

// SnapshotConfig controls where snapshots are written.
type SnapshotConfig struct {
	Dir string `yaml:"dir"`
}

// CaptureConfig selects how frames are acquired.
type CaptureConfig struct {
	// Async captures on a separate goroutine, keeping only the newest frame.
	Async bool `yaml:"async"`

	// Replay reads raw frames from a file instead of the camera.
	Replay string `yaml:"replay"`

	// ReplayFPS paces replayed frames; 0 serves them as fast as they are read.
	ReplayFPS float64 `yaml:"replay_fps"`
}

// LoggingConfig controls the logger.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load builds the configuration. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	paths := usbdev.DefaultPaths()
	return &Config{
		Device: DeviceConfig{
			USBDevices: paths.USBDevices,
			VideoClass: paths.VideoClass,
			DevRoot:    paths.DevRoot,
			USBFS:      paths.USBFS,
		},
		Display: DisplayConfig{
			Title:    "HikMicro Thermal",
			Palette:  thermal.Inferno.String(),
			Contrast: session.DefaultContrast,
		},
		Snapshot: SnapshotConfig{
			Dir: ".",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// applyEnvOverrides applies THERMALCAM_SECTION_KEY variables.
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("THERMALCAM_DEVICE_USB_DEVICES"); v != "" {
		cfg.Device.USBDevices = v
	}
	if v := os.Getenv("THERMALCAM_DEVICE_VIDEO_CLASS"); v != "" {
		cfg.Device.VideoClass = v
	}
	if v := os.Getenv("THERMALCAM_DEVICE_DEV_ROOT"); v != "" {
		cfg.Device.DevRoot = v
	}
	if v := os.Getenv("THERMALCAM_DEVICE_USBFS"); v != "" {
		cfg.Device.USBFS = v
	}

	if v := os.Getenv("THERMALCAM_DISPLAY_TITLE"); v != "" {
		cfg.Display.Title = v
	}
	if v := os.Getenv("THERMALCAM_DISPLAY_PALETTE"); v != "" {
		cfg.Display.Palette = v
	}
	if v := os.Getenv("THERMALCAM_DISPLAY_CONTRAST"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("THERMALCAM_DISPLAY_CONTRAST: %w", err)
		}
		cfg.Display.Contrast = f
	}

	if v := os.Getenv("THERMALCAM_SNAPSHOT_DIR"); v != "" {
		cfg.Snapshot.Dir = v
	}

	if v := os.Getenv("THERMALCAM_CAPTURE_ASYNC"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("THERMALCAM_CAPTURE_ASYNC: %w", err)
		}
		cfg.Capture.Async = b
	}
	if v := os.Getenv("THERMALCAM_CAPTURE_REPLAY"); v != "" {
		cfg.Capture.Replay = v
	}
	if v := os.Getenv("THERMALCAM_CAPTURE_REPLAY_FPS"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("THERMALCAM_CAPTURE_REPLAY_FPS: %w", err)
		}
		cfg.Capture.ReplayFPS = f
	}

	if v := os.Getenv("THERMALCAM_LOGGING_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("THERMALCAM_LOGGING_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	return nil
}

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	var errs []string

	required := []struct{ name, value string }{
		{"device.usb_devices", c.Device.USBDevices},
		{"device.video_class", c.Device.VideoClass},
		{"device.dev_root", c.Device.DevRoot},
		{"device.usbfs", c.Device.USBFS},
		{"snapshot.dir", c.Snapshot.Dir},
	}
	for _, r := range required {
		if r.value == "" {
			errs = append(errs, r.name+" is required")
		}
	}

	if _, ok := thermal.ParsePalette(c.Display.Palette); !ok {
		errs = append(errs, fmt.Sprintf("display.palette %q is not one of %s", c.Display.Palette, paletteList()))
	}
	if c.Display.Contrast < session.MinContrast || c.Display.Contrast > session.MaxContrast {
		errs = append(errs, fmt.Sprintf("display.contrast must be between %.1f and %.1f", session.MinContrast, session.MaxContrast))
	}

	if c.Capture.ReplayFPS < 0 {
		errs = append(errs, "capture.replay_fps must not be negative")
	}

	if _, err := logrus.ParseLevel(c.Logging.Level); err != nil {
		errs = append(errs, fmt.Sprintf("logging.level %q is invalid", c.Logging.Level))
	}
	if c.Logging.Format != "text" && c.Logging.Format != "json" {
		errs = append(errs, "logging.format must be text or json")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}
	return nil
}

// Paths returns the discovery paths as usbdev expects them.
func (c *Config) Paths() usbdev.Paths {
	return usbdev.Paths{
		USBDevices: c.Device.USBDevices,
		VideoClass: c.Device.VideoClass,
		DevRoot:    c.Device.DevRoot,
		USBFS:      c.Device.USBFS,
	}
}

// Palette returns the configured starting palette. Validate guarantees it parses.
func (c *Config) Palette() thermal.Palette {
	p, _ := thermal.ParsePalette(c.Display.Palette)
	return p
}

func paletteList() string {
	names := make([]string, len(thermal.Palettes))
	for i, p := range thermal.Palettes {
		names[i] = p.String()
	}
	return strings.Join(names, ", ")
}
