package thermal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize_ExtremesMapToFullRange(t *testing.T) {
	f := &Frame{Width: 3, Height: 1, Pix: []float32{40, 70, 100}}
	g := Normalize(f, 1.0)
	assert.Equal(t, uint8(0), g.Pix[0])
	assert.InDelta(t, 128, int(g.Pix[1]), 1)
	assert.Equal(t, uint8(255), g.Pix[2])
}

func TestNormalize_FlatFrameIsMidGrey(t *testing.T) {
	f := NewFrame(SensorWidth, SensorHeight)
	for i := range f.Pix {
		f.Pix[i] = 100
	}
	for _, contrast := range []float64{0.4, 1.0, 5.0} {
		g := Normalize(f, contrast)
		for i, v := range g.Pix {
			if v != 128 {
				t.Fatalf("contrast %.1f: pixel %d = %d, want 128", contrast, i, v)
			}
		}
	}
}

func TestNormalize_HighContrastClips(t *testing.T) {
	f := &Frame{Width: 4, Height: 1, Pix: []float32{0, 35, 65, 100}}
	g := Normalize(f, 2.0)
	// Window is [25, 75].
	assert.Equal(t, []uint8{0, 51, 204, 255}, g.Pix)
}

func TestWindow_HalfWidthDecreasesWithContrast(t *testing.T) {
	prevLo, prevHi := Window(10, 90, 0.4)
	for c := 0.6; c <= 5.0+1e-9; c += 0.2 {
		lo, hi := Window(10, 90, c)
		assert.Greater(t, lo, prevLo, "contrast %.1f", c)
		assert.Less(t, hi, prevHi, "contrast %.1f", c)
		assert.InDelta(t, 50, (lo+hi)/2, 1e-9)
		prevLo, prevHi = lo, hi
	}
}

func TestWindow_FlatRangeIsOne(t *testing.T) {
	lo, hi := Window(100, 100, 1.0)
	assert.Equal(t, 99.5, lo)
	assert.Equal(t, 100.5, hi)
}
