package thermal

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func blackRGBA(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 255
	}
	return img
}

func TestScalePoint(t *testing.T) {
	sensor := image.Pt(SensorWidth, SensorHeight)
	display := image.Pt(DisplayWidth, DisplayHeight)
	assert.Equal(t, image.Pt(0, 0), ScalePoint(image.Pt(0, 0), sensor, display))
	assert.Equal(t, image.Pt(30, 60), ScalePoint(image.Pt(10, 20), sensor, display))
	assert.Equal(t, image.Pt(765, 573), ScalePoint(image.Pt(255, 191), sensor, display))
}

func TestAnnotate_HotSpotMarker(t *testing.T) {
	img := blackRGBA(DisplayWidth, DisplayHeight)
	hot := image.Pt(300, 200)
	Annotate(img, hot, image.Pt(600, 400), "Inferno")

	white := color.RGBA{255, 255, 255, 255}
	for _, p := range []image.Point{
		{hot.X - 12, hot.Y}, {hot.X - 4, hot.Y},
		{hot.X + 4, hot.Y}, {hot.X + 12, hot.Y},
		{hot.X, hot.Y - 12}, {hot.X, hot.Y + 12},
		{hot.X + 14, hot.Y}, {hot.X, hot.Y - 14},
	} {
		assert.Equal(t, white, img.RGBAAt(p.X, p.Y), "at %v", p)
	}
	// The centre of the crosshair is left open.
	assert.Equal(t, color.RGBA{0, 0, 0, 255}, img.RGBAAt(hot.X, hot.Y))
	assert.Equal(t, color.RGBA{0, 0, 0, 255}, img.RGBAAt(hot.X+2, hot.Y))
}

func TestAnnotate_ColdSpotAndCentre(t *testing.T) {
	img := blackRGBA(DisplayWidth, DisplayHeight)
	cold := image.Pt(100, 100)
	Annotate(img, image.Pt(600, 400), cold, "Jet")

	assert.Equal(t, coldColor, img.RGBAAt(cold.X, cold.Y+coldSize/2), "triangle apex")
	assert.Equal(t, coldColor, img.RGBAAt(cold.X, cold.Y-coldSize/2), "triangle base")

	cx, cy := DisplayWidth/2, DisplayHeight/2
	assert.Equal(t, centreColor, img.RGBAAt(cx-5, cy))
	assert.Equal(t, centreColor, img.RGBAAt(cx, cy+5))
}

func TestAnnotate_PaletteLabel(t *testing.T) {
	img := blackRGBA(200, 60)
	Annotate(img, image.Pt(150, 40), image.Pt(170, 40), "Plasma")

	found := false
	for y := 10; y < 26 && !found; y++ {
		for x := 8; x < 60; x++ {
			if img.RGBAAt(x, y).R > 0 {
				found = true
				break
			}
		}
	}
	assert.True(t, found, "palette label should be drawn near the top-left corner")
}

func TestAnnotate_MarkersNearEdgeAreClipped(t *testing.T) {
	img := blackRGBA(32, 32)
	assert.NotPanics(t, func() {
		Annotate(img, image.Pt(0, 0), image.Pt(31, 31), "Hot")
	})
}
