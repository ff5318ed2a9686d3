package usbdev

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// Scanner enumerates USB devices under the sysfs device root.
type Scanner struct {
	fs   FileSystem
	root string
	log  logrus.FieldLogger
}

// NewScanner creates a Scanner reading from paths.USBDevices.
func NewScanner(fsys FileSystem, paths Paths, log logrus.FieldLogger) *Scanner {
	return &Scanner{fs: fsys, root: paths.USBDevices, log: log}
}

// Scan returns every device whose descriptor matches id. Devices whose
// descriptor files cannot be read (typically removed mid-scan) are skipped.
// No match is an empty result, not an error.
func (s *Scanner) Scan(id Identity) []BusDevice {
	vendorFiles, err := s.fs.Glob(filepath.Join(s.root, "*", "idVendor"))
	if err != nil {
		s.log.WithError(err).Warn("USB device glob failed")
		return nil
	}

	var matches []BusDevice
	for _, vendorFile := range vendorFiles {
		devDir := filepath.Dir(vendorFile)
		dev, ok, err := s.readDevice(devDir, id)
		if err != nil {
			s.log.WithError(err).WithField("sysfs", devDir).Debug("Skipping unreadable USB device")
			continue
		}
		if ok {
			matches = append(matches, dev)
		}
	}
	return matches
}

func (s *Scanner) readDevice(devDir string, id Identity) (BusDevice, bool, error) {
	vid, err := s.readHex(filepath.Join(devDir, "idVendor"))
	if err != nil {
		return BusDevice{}, false, err
	}
	if vid != id.VendorID {
		return BusDevice{}, false, nil
	}
	pid, err := s.readHex(filepath.Join(devDir, "idProduct"))
	if err != nil {
		return BusDevice{}, false, err
	}
	if pid != id.ProductID {
		return BusDevice{}, false, nil
	}

	busNum, err := s.readDecimal(filepath.Join(devDir, "busnum"))
	if err != nil {
		return BusDevice{}, false, err
	}
	devNum, err := s.readDecimal(filepath.Join(devDir, "devnum"))
	if err != nil {
		return BusDevice{}, false, err
	}
	return BusDevice{SysfsPath: devDir, BusNum: busNum, DevNum: devNum}, true, nil
}

func (s *Scanner) readHex(name string) (uint16, error) {
	raw, err := s.fs.ReadFile(name)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseUint(strings.TrimSpace(string(raw)), 16, 16)
	if err != nil {
		return 0, fmt.Errorf("parsing %s: %w", name, err)
	}
	return uint16(v), nil
}

func (s *Scanner) readDecimal(name string) (int, error) {
	raw, err := s.fs.ReadFile(name)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(strings.TrimSpace(string(raw)))
	if err != nil {
		return 0, fmt.Errorf("parsing %s: %w", name, err)
	}
	return v, nil
}
