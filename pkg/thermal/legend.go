package thermal

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/font/basicfont"
)

// Legend panel geometry.
const (
	LegendMargin     = 8
	LegendBarWidth   = 25
	LegendLabelWidth = 45

	// LegendWidth is the total width added to the right of the image.
	LegendWidth = LegendMargin + LegendBarWidth + LegendLabelWidth
)

var (
	legendBorder = color.RGBA{180, 180, 180, 255}
	legendText   = color.RGBA{200, 200, 200, 255}
	legendBlack  = color.RGBA{0, 0, 0, 255}
)

// legendLabels are spread evenly down the bar; empty slots are not drawn.
var legendLabels = []string{"HOT", "", "", "", "", "", "COLD"}

// ScaleBar renders a vertical gradient of the given height through palette p,
// hottest at the top. The scale is relative: it carries no units.
func ScaleBar(height int, p Palette) (*image.RGBA, error) {
	gradient := image.NewGray(image.Rect(0, 0, LegendBarWidth, height))
	for y := 0; y < height; y++ {
		v := gradientLevel(y, height)
		row := gradient.Pix[y*gradient.Stride : y*gradient.Stride+LegendBarWidth]
		for x := range row {
			row[x] = v
		}
	}
	bar, err := PaletteImage(gradient, p)
	if err != nil {
		return nil, err
	}
	drawRect(bar, bar.Bounds(), legendBorder)
	return bar, nil
}

// Compose places img, a black spacer, the palette scale bar and a label column
// side by side.
func Compose(img *image.RGBA, p Palette) (*image.RGBA, error) {
	b := img.Bounds()
	h := b.Dy()
	bar, err := ScaleBar(h, p)
	if err != nil {
		return nil, err
	}

	out := image.NewRGBA(image.Rect(0, 0, b.Dx()+LegendWidth, h))
	draw.Draw(out, out.Bounds(), image.NewUniform(legendBlack), image.Point{}, draw.Src)
	draw.Draw(out, image.Rect(0, 0, b.Dx(), h), img, b.Min, draw.Src)

	barX := b.Dx() + LegendMargin
	draw.Draw(out, image.Rect(barX, 0, barX+LegendBarWidth, h), bar, image.Point{}, draw.Src)

	labelX := barX + LegendBarWidth
	steps := len(legendLabels) - 1
	for i, label := range legendLabels {
		if label == "" {
			continue
		}
		y := min(max(h*i/steps, 12), h-5)
		drawLine(out, labelX-4, y, labelX-1, y, markerWhite)
		drawText(out, basicfont.Face7x13, label, labelX+4, y+4, legendText)
	}
	return out, nil
}

// gradientLevel is the bar intensity of row y, falling linearly from 255 at
// the top to 0 at the bottom and truncated to 8 bits.
func gradientLevel(y, height int) uint8 {
	if height < 2 {
		return 255
	}
	return uint8(255 - 255*float64(y)/float64(height-1))
}

func drawRect(img *image.RGBA, r image.Rectangle, c color.RGBA) {
	x0, y0, x1, y1 := r.Min.X, r.Min.Y, r.Max.X-1, r.Max.Y-1
	drawLine(img, x0, y0, x1, y0, c)
	drawLine(img, x1, y0, x1, y1, c)
	drawLine(img, x1, y1, x0, y1, c)
	drawLine(img, x0, y1, x0, y0, c)
}
