// Package usbdev locates the thermal module on the USB bus, maps it to its
// V4L2 capture node and, when the kernel has not bound a capture driver,
// forces re-enumeration with a port reset.
package usbdev

import (
	"fmt"
	"path/filepath"
)

// Identity is the vendor/product signature a bus device must report.
type Identity struct {
	VendorID  uint16
	ProductID uint16
}

// HikMicro is the USB signature of the HikMicro thermal module.
var HikMicro = Identity{VendorID: 0x2bdf, ProductID: 0x0102}

func (id Identity) String() string {
	return fmt.Sprintf("%04x:%04x", id.VendorID, id.ProductID)
}

// BusDevice is one matching USB device as seen during a single scan.
// Bus and device numbers change across a reset, so a BusDevice must not be
// reused after one.
type BusDevice struct {
	SysfsPath string
	BusNum    int
	DevNum    int
}

// USBFSPath returns the usbfs control file for the device, e.g. /dev/bus/usb/001/004.
func (d BusDevice) USBFSPath(root string) string {
	return filepath.Join(root, fmt.Sprintf("%03d", d.BusNum), fmt.Sprintf("%03d", d.DevNum))
}

func (d BusDevice) String() string {
	return fmt.Sprintf("{Sysfs=%s, Bus=%03d, Dev=%03d}", d.SysfsPath, d.BusNum, d.DevNum)
}

// VideoNode is a capture node resolved from a BusDevice.
type VideoNode struct {
	// Path is the device node to open, e.g. /dev/video2.
	Path string
	// ClassPath is the canonical sysfs path of the video4linux class entry.
	ClassPath string
}

// Paths holds the filesystem roots the scanner, resolver and resetter read from.
type Paths struct {
	USBDevices string
	VideoClass string
	DevRoot    string
	USBFS      string
}

// DefaultPaths returns the standard Linux locations.
func DefaultPaths() Paths {
	return Paths{
		USBDevices: "/sys/bus/usb/devices",
		VideoClass: "/sys/class/video4linux",
		DevRoot:    "/dev",
		USBFS:      "/dev/bus/usb",
	}
}
