package thermal

import (
	"fmt"
	"image"
)

// Enhancement parameters, tuned for the sensor's noise.
const (
	CLAHEClipLimit = 3.0
	CLAHETiles     = 8

	BilateralDiameter   = 7
	BilateralSigmaColor = 50.0
	BilateralSigmaSpace = 50.0

	SharpenSigma      = 2.0
	SharpenWeight     = 1.3
	SharpenBlurWeight = -0.3
)

// compactGray returns g with Stride == width and origin at (0, 0), copying
// only when it has to.
func compactGray(g *image.Gray) *image.Gray {
	b := g.Rect
	if g.Stride == b.Dx() && b.Min == (image.Point{}) {
		return g
	}
	out := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		copy(out.Pix[y*out.Stride:(y+1)*out.Stride], g.Pix[g.PixOffset(b.Min.X, b.Min.Y+y):])
	}
	return out
}

// Enhance equalizes local contrast, upscales to width x height with Lanczos4
// and removes the upscaling's block artifacts with a bilateral filter.
func Enhance(g *image.Gray, width, height int) (*image.Gray, error) {
	src, err := matFromGray(g)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	equalized := NewMat()
	defer equalized.Close()
	if err := equalizeCLAHE(src, &equalized, CLAHEClipLimit, CLAHETiles); err != nil {
		return nil, fmt.Errorf("equalize: %w", err)
	}

	upscaled := NewMat()
	defer upscaled.Close()
	if err := resizeLanczos4(equalized, &upscaled, width, height); err != nil {
		return nil, fmt.Errorf("upscale: %w", err)
	}

	denoised := NewMat()
	defer denoised.Close()
	if err := bilateralFilter(upscaled, &denoised, BilateralDiameter, BilateralSigmaColor, BilateralSigmaSpace); err != nil {
		return nil, fmt.Errorf("denoise: %w", err)
	}
	return denoised.toGray(), nil
}

// Colorize maps g through palette p and sharpens the result with an unsharp
// mask.
func Colorize(g *image.Gray, p Palette) (*image.RGBA, error) {
	src, err := matFromGray(g)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	colored := NewMat()
	defer colored.Close()
	if err := applyColorMap(src, &colored, p); err != nil {
		return nil, fmt.Errorf("colorize: %w", err)
	}

	blurred := NewMat()
	defer blurred.Close()
	if err := gaussianBlur(colored, &blurred, SharpenSigma); err != nil {
		return nil, fmt.Errorf("sharpen: %w", err)
	}

	sharpened := NewMat()
	defer sharpened.Close()
	if err := addWeighted(colored, SharpenWeight, blurred, SharpenBlurWeight, &sharpened); err != nil {
		return nil, fmt.Errorf("sharpen: %w", err)
	}
	return sharpened.toRGBA(), nil
}

// PaletteImage maps g through palette p without further processing.
func PaletteImage(g *image.Gray, p Palette) (*image.RGBA, error) {
	src, err := matFromGray(g)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	colored := NewMat()
	defer colored.Close()
	if err := applyColorMap(src, &colored, p); err != nil {
		return nil, err
	}
	return colored.toRGBA(), nil
}
