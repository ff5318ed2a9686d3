//go:build (purego && !linux) || js

package capture

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
)

// Backend names the capture implementation compiled in.
const Backend = "none"

// Open always fails: pure Go capture needs the Linux V4L2 interface.
func Open(ctx context.Context, path string, want Mode, log logrus.FieldLogger) (Source, error) {
	return nil, errors.New("v4l2 capture is only available on linux")
}
