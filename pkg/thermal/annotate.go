package thermal

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

var (
	markerWhite  = color.RGBA{255, 255, 255, 255}
	coldColor    = color.RGBA{0, 200, 255, 255}
	centreColor  = color.RGBA{200, 200, 200, 255}
	paletteColor = color.RGBA{150, 150, 150, 255}
)

// Marker geometry in display pixels.
const (
	hotGap       = 4
	hotArm       = 12
	hotRing      = 14
	coldSize     = 8
	centreSize   = 10
	labelOriginX = 8
	labelOriginY = 22
)

// ScalePoint maps a sensor-space position into an image of size dst by
// truncating the scaled coordinates.
func ScalePoint(p image.Point, src, dst image.Point) image.Point {
	return image.Pt(p.X*dst.X/src.X, p.Y*dst.Y/src.Y)
}

// Annotate draws the hot and cold spot markers, the centre reference cross and
// the palette name onto img in place. hot and cold are in img's coordinates.
func Annotate(img *image.RGBA, hot, cold image.Point, paletteName string) {
	drawHotSpot(img, hot)
	drawTriangleDown(img, cold.X, cold.Y, coldSize, coldColor)

	b := img.Bounds()
	drawCross(img, b.Min.X+b.Dx()/2, b.Min.Y+b.Dy()/2, centreSize, centreColor)

	drawText(img, basicfont.Face7x13, paletteName, b.Min.X+labelOriginX, b.Min.Y+labelOriginY, paletteColor)
}

// drawHotSpot draws a crosshair with an open centre and a ring around it.
func drawHotSpot(img *image.RGBA, p image.Point) {
	cx, cy := p.X, p.Y
	drawLine(img, cx-hotArm, cy, cx-hotGap, cy, markerWhite)
	drawLine(img, cx+hotGap, cy, cx+hotArm, cy, markerWhite)
	drawLine(img, cx, cy-hotArm, cx, cy-hotGap, markerWhite)
	drawLine(img, cx, cy+hotGap, cx, cy+hotArm, markerWhite)
	drawCircle(img, cx, cy, hotRing, markerWhite)
}

// drawTriangleDown outlines a triangle pointing down, centred on (cx, cy).
func drawTriangleDown(img *image.RGBA, cx, cy, size int, c color.RGBA) {
	h := size / 2
	drawLine(img, cx+h, cy-h, cx, cy+h, c)
	drawLine(img, cx, cy+h, cx-h, cy-h, c)
	drawLine(img, cx-h, cy-h, cx+h, cy-h, c)
}

func drawCross(img *image.RGBA, cx, cy, size int, c color.RGBA) {
	h := size / 2
	drawLine(img, cx-h, cy, cx+h, cy, c)
	drawLine(img, cx, cy-h, cx, cy+h, c)
}

// drawText draws a string with its baseline starting at (x, y).
func drawText(img *image.RGBA, face font.Face, s string, x, y int, c color.RGBA) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

// drawCircle draws a circle outline using the midpoint algorithm.
func drawCircle(img *image.RGBA, cx, cy, radius int, c color.RGBA) {
	x := radius
	y := 0
	err := 0

	for x >= y {
		img.SetRGBA(cx+x, cy+y, c)
		img.SetRGBA(cx+y, cy+x, c)
		img.SetRGBA(cx-y, cy+x, c)
		img.SetRGBA(cx-x, cy+y, c)
		img.SetRGBA(cx-x, cy-y, c)
		img.SetRGBA(cx-y, cy-x, c)
		img.SetRGBA(cx+y, cy-x, c)
		img.SetRGBA(cx+x, cy-y, c)

		y++
		err += 1 + 2*y
		if 2*(err-x)+1 > 0 {
			x--
			err += 1 - 2*x
		}
	}
}

// drawLine draws a 1px line between two points using Bresenham's algorithm.
// Points outside img are clipped by SetRGBA.
func drawLine(img *image.RGBA, x0, y0, x1, y1 int, c color.RGBA) {
	dx := intAbs(x1 - x0)
	dy := -intAbs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		img.SetRGBA(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func intAbs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
