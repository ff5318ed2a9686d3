package usbdev

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

// fakeSysfs builds a miniature /sys and /dev under a temp dir, with the same
// symlink layout the kernel uses.
type fakeSysfs struct {
	t     *testing.T
	root  string
	paths Paths
}

func newFakeSysfs(t *testing.T) *fakeSysfs {
	t.Helper()
	root := t.TempDir()
	paths := Paths{
		USBDevices: filepath.Join(root, "sys", "bus", "usb", "devices"),
		VideoClass: filepath.Join(root, "sys", "class", "video4linux"),
		DevRoot:    filepath.Join(root, "dev"),
		USBFS:      filepath.Join(root, "dev", "bus", "usb"),
	}
	for _, dir := range []string{paths.USBDevices, paths.VideoClass, paths.DevRoot, paths.USBFS} {
		require.NoError(t, os.MkdirAll(dir, 0o755))
	}
	return &fakeSysfs{t: t, root: root, paths: paths}
}

func (f *fakeSysfs) devicesDir(name string) string {
	return filepath.Join(f.root, "sys", "devices", "pci0000:00", "usb1", name)
}

// addUSBDevice creates a device directory with descriptor files and the
// /sys/bus/usb/devices/<name> link. Returns the link path.
func (f *fakeSysfs) addUSBDevice(name, vid, pid string, bus, dev int) string {
	f.t.Helper()
	dir := f.devicesDir(name)
	require.NoError(f.t, os.MkdirAll(dir, 0o755))
	f.write(filepath.Join(dir, "idVendor"), vid)
	f.write(filepath.Join(dir, "idProduct"), pid)
	f.write(filepath.Join(dir, "busnum"), fmt.Sprintf("%d", bus))
	f.write(filepath.Join(dir, "devnum"), fmt.Sprintf("%d", dev))
	link := filepath.Join(f.paths.USBDevices, name)
	require.NoError(f.t, os.Symlink(dir, link))
	return link
}

// bindVideo creates a video4linux child of the named USB device and its class link.
func (f *fakeSysfs) bindVideo(usbName, node string) {
	f.t.Helper()
	dir := filepath.Join(f.devicesDir(usbName), usbName+":1.0", "video4linux", node)
	require.NoError(f.t, os.MkdirAll(dir, 0o755))
	require.NoError(f.t, os.Symlink(dir, filepath.Join(f.paths.VideoClass, node)))
}

func (f *fakeSysfs) write(name, content string) {
	f.t.Helper()
	require.NoError(f.t, os.WriteFile(name, []byte(content+"\n"), 0o644))
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}
