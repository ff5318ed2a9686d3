package thermal

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uniformGray(w, h int, v uint8) *image.Gray {
	g := image.NewGray(image.Rect(0, 0, w, h))
	for i := range g.Pix {
		g.Pix[i] = v
	}
	return g
}

func grayRange(g *image.Gray) (lo, hi uint8) {
	lo, hi = 255, 0
	for _, v := range g.Pix {
		lo, hi = min(lo, v), max(hi, v)
	}
	return lo, hi
}

func luma(c color.RGBA) int {
	return 299*int(c.R) + 587*int(c.G) + 114*int(c.B)
}

func TestEnhance_OutputSizeAndFlatInput(t *testing.T) {
	out, err := Enhance(uniformGray(SensorWidth, SensorHeight, 128), DisplayWidth, DisplayHeight)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, DisplayWidth, DisplayHeight), out.Bounds())

	lo, hi := grayRange(out)
	assert.LessOrEqual(t, int(hi)-int(lo), 1, "flat input must stay flat")
}

func TestEnhance_PreservesOrdering(t *testing.T) {
	g := image.NewGray(image.Rect(0, 0, 64, 48))
	for y := 0; y < 48; y++ {
		for x := 0; x < 64; x++ {
			if x >= 32 {
				g.Pix[y*g.Stride+x] = 200
			} else {
				g.Pix[y*g.Stride+x] = 40
			}
		}
	}
	out, err := Enhance(g, 192, 144)
	require.NoError(t, err)
	assert.Less(t, out.GrayAt(10, 70).Y, out.GrayAt(180, 70).Y)
}

func TestEnhance_SubImage(t *testing.T) {
	parent := uniformGray(40, 40, 90)
	sub := parent.SubImage(image.Rect(5, 5, 37, 29)).(*image.Gray)
	out, err := Enhance(sub, 64, 48)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 64, 48), out.Bounds())
}

func TestColorize_FlatInputIsFlat(t *testing.T) {
	out, err := Colorize(uniformGray(32, 24, 200), Jet)
	require.NoError(t, err)
	want := out.RGBAAt(0, 0)
	for y := 0; y < 24; y++ {
		for x := 0; x < 32; x++ {
			c := out.RGBAAt(x, y)
			assert.InDelta(t, want.R, c.R, 1)
			assert.InDelta(t, want.G, c.G, 1)
			assert.InDelta(t, want.B, c.B, 1)
			assert.Equal(t, uint8(255), c.A)
		}
	}
}

func TestPaletteImage_HotIsBrighterThanCold(t *testing.T) {
	for _, p := range []Palette{Inferno, Hot, Magma, Plasma} {
		cold, err := PaletteImage(uniformGray(2, 2, 0), p)
		require.NoError(t, err)
		hot, err := PaletteImage(uniformGray(2, 2, 255), p)
		require.NoError(t, err)
		assert.Greater(t, luma(hot.RGBAAt(0, 0)), luma(cold.RGBAAt(0, 0)), p.String())
	}
}

func TestPaletteImage_JetRunsBlueToRed(t *testing.T) {
	cold, err := PaletteImage(uniformGray(1, 1, 0), Jet)
	require.NoError(t, err)
	hot, err := PaletteImage(uniformGray(1, 1, 255), Jet)
	require.NoError(t, err)

	c, h := cold.RGBAAt(0, 0), hot.RGBAAt(0, 0)
	assert.Greater(t, c.B, c.R)
	assert.Greater(t, h.R, h.B)
}

func TestEnhance_EmptyInputFails(t *testing.T) {
	out, err := Enhance(image.NewGray(image.Rect(0, 0, 0, 0)), DisplayWidth, DisplayHeight)
	assert.Error(t, err)
	assert.Nil(t, out)
}

func TestColorize_UnknownPaletteFails(t *testing.T) {
	out, err := Colorize(uniformGray(16, 16, 128), Palette(42))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "colorize")
	assert.Nil(t, out)
}

func TestPaletteImage_UnknownPaletteFails(t *testing.T) {
	out, err := PaletteImage(uniformGray(4, 4, 0), Palette(-1))
	assert.Error(t, err)
	assert.Nil(t, out)
}
