//go:build !linux

package usbdev

import "fmt"

// Reset is only implemented on Linux.
func (r USBFSResetter) Reset(dev BusDevice) error {
	return fmt.Errorf("USB port reset of %s not supported on this platform", dev.USBFSPath(r.Root))
}
