//go:build purego || js

package thermal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReflectIndex(t *testing.T) {
	assert.Equal(t, 1, reflectIndex(-1, 5))
	assert.Equal(t, 2, reflectIndex(-2, 5))
	assert.Equal(t, 3, reflectIndex(5, 5))
	assert.Equal(t, 2, reflectIndex(6, 5))
	assert.Equal(t, 0, reflectIndex(7, 1))
}

func TestLanczos4Taps_Normalized(t *testing.T) {
	base, weights := lanczos4Taps(SensorWidth, DisplayWidth)
	require.Len(t, base, DisplayWidth)
	for d, w := range weights {
		var sum float32
		for _, v := range w {
			sum += v
		}
		assert.InDelta(t, 1, sum, 1e-5, "dst %d", d)
	}
	// Destination pixel 1 of a 3x upscale sits exactly on source pixel 0.
	assert.Equal(t, -3, base[1])
	assert.InDelta(t, 1, weights[1][3], 1e-6)
}

func TestGaussianKernel_SumsToOne(t *testing.T) {
	k := getGaussianKernel1D(13, 2)
	var sum float32
	for _, v := range k {
		sum += v
	}
	assert.InDelta(t, 1, sum, 1e-5)
	assert.Equal(t, k[0], k[12])
	assert.Greater(t, k[6], k[5])
}

func TestBilateralFilter_KeepsStepEdge(t *testing.T) {
	src := newMatWithSize(16, 16, 1)
	for y := 0; y < 16; y++ {
		for x := 8; x < 16; x++ {
			src.data[y*16+x] = 200
		}
	}
	dst := NewMat()
	require.NoError(t, bilateralFilter(src, &dst, BilateralDiameter, BilateralSigmaColor, BilateralSigmaSpace))
	assert.Less(t, dst.data[8*16+7], float32(5))
	assert.Greater(t, dst.data[8*16+8], float32(195))
}

func TestEqualizeCLAHE_SpreadsNarrowRange(t *testing.T) {
	src := newMatWithSize(32, 32, 1)
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			src.data[y*32+x] = float32(100 + (x+y)%8)
		}
	}
	dst := NewMat()
	require.NoError(t, equalizeCLAHE(src, &dst, CLAHEClipLimit, CLAHETiles))

	lo, hi := float32(255), float32(0)
	for _, v := range dst.data {
		lo, hi = min(lo, v), max(hi, v)
	}
	assert.Greater(t, hi-lo, float32(7), "equalization should widen an 8-level range")
}

func TestColormapLUT_Endpoints(t *testing.T) {
	lut := colormapLUT(Inferno)
	assert.Equal(t, [3]uint8{0, 0, 4}, lut[0])
	assert.Equal(t, [3]uint8{252, 255, 164}, lut[255])

	hot := colormapLUT(Hot)
	assert.Equal(t, [3]uint8{255, 255, 255}, hot[255])
}

func TestEqualizeCLAHE_EmptyFails(t *testing.T) {
	dst := NewMat()
	assert.ErrorIs(t, equalizeCLAHE(NewMat(), &dst, CLAHEClipLimit, CLAHETiles), errEmptyMat)
}

func TestAddWeighted_SizeMismatch(t *testing.T) {
	dst := NewMat()
	err := addWeighted(newMatWithSize(4, 4, 3), 1.3, newMatWithSize(4, 5, 3), -0.3, &dst)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "size mismatch")
	assert.True(t, dst.Empty())
}

func TestApplyColorMap_RejectsBadInput(t *testing.T) {
	dst := NewMat()
	assert.ErrorIs(t, applyColorMap(NewMat(), &dst, Inferno), errEmptyMat)
	assert.Error(t, applyColorMap(newMatWithSize(2, 2, 3), &dst, Inferno))
	assert.Error(t, applyColorMap(newMatWithSize(2, 2, 1), &dst, Palette(len(Palettes))))
	assert.True(t, dst.Empty())

	require.NoError(t, applyColorMap(newMatWithSize(2, 2, 1), &dst, Hot))
	assert.Equal(t, 3, dst.Channels())
}
