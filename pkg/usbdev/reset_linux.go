//go:build linux

package usbdev

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// usbdevfsReset is USBDEVFS_RESET, _IO('U', 20).
const usbdevfsReset = 0x5514

// Reset issues a USB port reset on the device's usbfs control file. The device
// disappears from the bus and re-enumerates, usually with a new device number.
func (r USBFSResetter) Reset(dev BusDevice) error {
	path := dev.USBFSPath(r.Root)
	f, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	if err := unix.IoctlSetInt(int(f.Fd()), usbdevfsReset, 0); err != nil {
		return fmt.Errorf("USBDEVFS_RESET on %s: %w", path, err)
	}
	return nil
}
