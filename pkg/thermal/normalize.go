package thermal

import (
	"image"
	"math"
)

// Window returns the input interval mapped onto [0, 255] for a frame with the
// given extremes. The interval is centred on the midpoint and its half-width
// shrinks as contrast grows. A flat frame is treated as having range 1.
func Window(minVal, maxVal, contrast float64) (lo, hi float64) {
	mid, half := window(minVal, maxVal, contrast)
	return mid - half, mid + half
}

func window(minVal, maxVal, contrast float64) (mid, half float64) {
	if contrast <= 0 {
		contrast = 1
	}
	span := math.Max(maxVal-minVal, 1)
	return (minVal + maxVal) / 2, (span / 2) / contrast
}

// Normalize maps f onto 8 bits relative to its own min and max. The result
// is not calibrated: equal temperatures in different scenes can map to
// different grey levels.
func Normalize(f *Frame, contrast float64) *image.Gray {
	minVal, maxVal, _, _ := f.MinMaxLoc()
	mid, half := window(float64(minVal), float64(maxVal), contrast)
	width := 2 * half

	out := image.NewGray(image.Rect(0, 0, f.Width, f.Height))
	for i, v := range f.Pix {
		t := 0.5 + (float64(v)-mid)/width
		if t < 0 {
			t = 0
		} else if t > 1 {
			t = 1
		}
		out.Pix[i] = uint8(math.Round(t * 255))
	}
	return out
}
