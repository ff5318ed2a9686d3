package usbdev

import (
	"os"
	"path/filepath"
)

// FileSystem is the read-only view of sysfs the scanner and resolver need.
// Use OSFileSystem in production; tests point it at a temporary tree.
type FileSystem interface {
	// Glob returns the names of all files matching pattern, sorted.
	Glob(pattern string) ([]string, error)

	// ReadFile reads the named file and returns its contents.
	ReadFile(name string) ([]byte, error)

	// EvalSymlinks returns the path after resolving all symbolic links.
	EvalSymlinks(path string) (string, error)
}

// OSFileSystem implements FileSystem using the os package.
type OSFileSystem struct{}

// Glob returns the names of all files matching pattern.
func (OSFileSystem) Glob(pattern string) ([]string, error) {
	return filepath.Glob(pattern)
}

// ReadFile reads the named file.
func (OSFileSystem) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

// EvalSymlinks resolves symbolic links in path.
func (OSFileSystem) EvalSymlinks(path string) (string, error) {
	return filepath.EvalSymlinks(path)
}
