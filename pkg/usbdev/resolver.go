package usbdev

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
)

// Resolver maps a USB device to the video4linux node its capture driver exposes.
type Resolver struct {
	fs         FileSystem
	videoClass string
	devRoot    string
	log        logrus.FieldLogger
}

// NewResolver creates a Resolver over paths.VideoClass and paths.DevRoot.
func NewResolver(fsys FileSystem, paths Paths, log logrus.FieldLogger) *Resolver {
	return &Resolver{fs: fsys, videoClass: paths.VideoClass, devRoot: paths.DevRoot, log: log}
}

// Resolve returns the first capture node, in lexicographic order, whose
// canonical sysfs path lies below dev. It reports false when no driver has
// bound yet, which is normal right after enumeration.
func (r *Resolver) Resolve(dev BusDevice) (VideoNode, bool) {
	nodes, err := r.fs.Glob(filepath.Join(r.videoClass, "video*"))
	if err != nil {
		r.log.WithError(err).Warn("video4linux glob failed")
		return VideoNode{}, false
	}
	sort.Strings(nodes)

	anchor := r.anchor(dev)
	for _, node := range nodes {
		canonical, err := r.fs.EvalSymlinks(node)
		if err != nil {
			r.log.WithError(err).WithField("node", node).Debug("Skipping unresolvable video node")
			continue
		}
		if strings.Contains(canonical+"/", anchor) {
			return VideoNode{
				Path:      filepath.Join(r.devRoot, filepath.Base(node)),
				ClassPath: canonical,
			}, true
		}
	}
	return VideoNode{}, false
}

// anchor is the path fragment a child node's canonical path must contain.
// The canonical device directory is preferred; when it cannot be resolved the
// device's basename is used as a whole path segment, so "1-1" never matches "1-10".
func (r *Resolver) anchor(dev BusDevice) string {
	if canonical, err := r.fs.EvalSymlinks(dev.SysfsPath); err == nil {
		return canonical + "/"
	}
	return "/" + filepath.Base(dev.SysfsPath) + "/"
}
