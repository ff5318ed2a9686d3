//go:build !purego && !js

package thermal

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

// Backend names the image-processing implementation compiled in.
const Backend = "opencv"

// Mat wraps an 8-bit gocv.Mat for the native OpenCV backend.
type Mat struct {
	m gocv.Mat
}

func NewMat() Mat             { return Mat{m: gocv.NewMat()} }
func (mat Mat) Rows() int     { return mat.m.Rows() }
func (mat Mat) Cols() int     { return mat.m.Cols() }
func (mat Mat) Channels() int { return mat.m.Channels() }
func (mat Mat) Empty() bool   { return mat.m.Empty() }
func (mat *Mat) Close()       { mat.m.Close() }

// matFromGray copies g into a single-channel CV_8U Mat.
func matFromGray(g *image.Gray) (Mat, error) {
	m, err := gocv.NewMatFromBytes(g.Rect.Dy(), g.Rect.Dx(), gocv.MatTypeCV8UC1, compactGray(g).Pix)
	if err != nil {
		return Mat{}, fmt.Errorf("gray to mat: %w", err)
	}
	return Mat{m: m}, nil
}

func (mat Mat) toGray() *image.Gray {
	g := image.NewGray(image.Rect(0, 0, mat.Cols(), mat.Rows()))
	copy(g.Pix, mat.m.ToBytes())
	return g
}

// toRGBA converts a 3-channel BGR Mat.
func (mat Mat) toRGBA() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, mat.Cols(), mat.Rows()))
	bgr := mat.m.ToBytes()
	for i, j := 0, 0; i+2 < len(bgr); i, j = i+3, j+4 {
		img.Pix[j] = bgr[i+2]
		img.Pix[j+1] = bgr[i+1]
		img.Pix[j+2] = bgr[i]
		img.Pix[j+3] = 0xff
	}
	return img
}

// --- CV operations ---

func equalizeCLAHE(src Mat, dst *Mat, clipLimit float64, tiles int) error {
	clahe := gocv.NewCLAHEWithParams(clipLimit, image.Pt(tiles, tiles))
	defer clahe.Close()
	return clahe.Apply(src.m, &dst.m)
}

func resizeLanczos4(src Mat, dst *Mat, width, height int) error {
	return gocv.Resize(src.m, &dst.m, image.Pt(width, height), 0, 0, gocv.InterpolationLanczos4)
}

func bilateralFilter(src Mat, dst *Mat, d int, sigmaColor, sigmaSpace float64) error {
	return gocv.BilateralFilter(src.m, &dst.m, d, sigmaColor, sigmaSpace)
}

func gaussianBlur(src Mat, dst *Mat, sigma float64) error {
	return gocv.GaussianBlur(src.m, &dst.m, image.Pt(0, 0), sigma, sigma, gocv.BorderDefault)
}

func addWeighted(a Mat, alpha float64, b Mat, beta float64, dst *Mat) error {
	return gocv.AddWeighted(a.m, alpha, b.m, beta, 0, &dst.m)
}

// OpenCV COLORMAP_* codes. gocv names only the maps up to Parula.
const (
	colormapJet     gocv.ColormapTypes = 2
	colormapHot     gocv.ColormapTypes = 11
	colormapMagma   gocv.ColormapTypes = 13
	colormapInferno gocv.ColormapTypes = 14
	colormapPlasma  gocv.ColormapTypes = 15
	colormapTurbo   gocv.ColormapTypes = 20
)

var colormapCodes = [...]gocv.ColormapTypes{
	Inferno: colormapInferno,
	Jet:     colormapJet,
	Hot:     colormapHot,
	Magma:   colormapMagma,
	Turbo:   colormapTurbo,
	Plasma:  colormapPlasma,
}

func applyColorMap(src Mat, dst *Mat, p Palette) error {
	if p < 0 || int(p) >= len(colormapCodes) {
		return fmt.Errorf("apply colormap: unknown palette %d", int(p))
	}
	return gocv.ApplyColorMap(src.m, &dst.m, colormapCodes[p])
}
