// Package thermal turns raw YUYV captures from the thermal module into an
// enhanced, colorized and annotated display image.
package thermal

import (
	"errors"
	"fmt"
	"image"
)

// Sensor and display geometry.
const (
	SensorWidth   = 256
	SensorHeight  = 192
	BytesPerPixel = 2

	DisplayWidth  = 768
	DisplayHeight = 576
)

// ErrInsufficientData is returned when a capture buffer is shorter than one
// full frame. Short reads are routine on USB; callers drop the frame.
var ErrInsufficientData = errors.New("insufficient frame data")

// Frame is a grid of raw thermal intensities, one value per sensor pixel.
type Frame struct {
	Width  int
	Height int
	Pix    []float32
}

// NewFrame allocates a zeroed frame.
func NewFrame(width, height int) *Frame {
	return &Frame{Width: width, Height: height, Pix: make([]float32, width*height)}
}

// At returns the intensity at (x, y).
func (f *Frame) At(x, y int) float32 {
	return f.Pix[y*f.Width+x]
}

// Extract pulls the luminance bytes out of an interleaved YUYV buffer. Y sits
// at every even byte offset. Bytes past width*height*2 are ignored.
func Extract(raw []byte, width, height int) (*Frame, error) {
	need := width * height * BytesPerPixel
	if len(raw) < need {
		return nil, fmt.Errorf("%w: got %d bytes, need %d for %dx%d", ErrInsufficientData, len(raw), need, width, height)
	}
	f := NewFrame(width, height)
	for i := range f.Pix {
		f.Pix[i] = float32(raw[i*BytesPerPixel])
	}
	return f, nil
}

// MinMaxLoc returns the extreme values and the first position, in row-major
// order, at which each occurs.
func (f *Frame) MinMaxLoc() (minVal, maxVal float32, minLoc, maxLoc image.Point) {
	if len(f.Pix) == 0 {
		return 0, 0, image.Point{}, image.Point{}
	}
	minVal, maxVal = f.Pix[0], f.Pix[0]
	minIdx, maxIdx := 0, 0
	for i, v := range f.Pix {
		if v < minVal {
			minVal, minIdx = v, i
		}
		if v > maxVal {
			maxVal, maxIdx = v, i
		}
	}
	minLoc = image.Pt(minIdx%f.Width, minIdx/f.Width)
	maxLoc = image.Pt(maxIdx%f.Width, maxIdx/f.Width)
	return minVal, maxVal, minLoc, maxLoc
}
