package thermal

import (
	"fmt"
	"image"
)

// Analysis is the sensor-resolution half of a processed frame.
type Analysis struct {
	Smoothed   *Frame
	Min, Max   float32
	Hot, Cold  image.Point // sensor coordinates of the extremes
	Normalized *image.Gray
}

// Pipeline holds the frame geometry and smoothing window of one capture
// session. It is not safe for concurrent use.
type Pipeline struct {
	Width, Height               int
	DisplayWidth, DisplayHeight int

	smoother *Smoother
}

// NewPipeline returns a pipeline for the fixed sensor and display geometry.
func NewPipeline() *Pipeline {
	return &Pipeline{
		Width:         SensorWidth,
		Height:        SensorHeight,
		DisplayWidth:  DisplayWidth,
		DisplayHeight: DisplayHeight,
		smoother:      NewSmoother(SmoothWindow),
	}
}

// Analyze extracts, smooths and normalizes one raw capture. The hot and cold
// spots are located on the smoothed frame before normalization.
func (p *Pipeline) Analyze(raw []byte, contrast float64) (*Analysis, error) {
	f, err := Extract(raw, p.Width, p.Height)
	if err != nil {
		return nil, err
	}
	smoothed := p.smoother.Push(f)
	minVal, maxVal, minLoc, maxLoc := smoothed.MinMaxLoc()
	return &Analysis{
		Smoothed:   smoothed,
		Min:        minVal,
		Max:        maxVal,
		Hot:        maxLoc,
		Cold:       minLoc,
		Normalized: Normalize(smoothed, contrast),
	}, nil
}

// Render enhances, colorizes and annotates an analysed frame and attaches the
// scale bar legend.
func (p *Pipeline) Render(a *Analysis, palette Palette) (*image.RGBA, error) {
	enhanced, err := Enhance(a.Normalized, p.DisplayWidth, p.DisplayHeight)
	if err != nil {
		return nil, fmt.Errorf("enhance: %w", err)
	}
	colored, err := Colorize(enhanced, palette)
	if err != nil {
		return nil, fmt.Errorf("colorize: %w", err)
	}

	sensor := image.Pt(p.Width, p.Height)
	display := image.Pt(p.DisplayWidth, p.DisplayHeight)
	Annotate(colored, ScalePoint(a.Hot, sensor, display), ScalePoint(a.Cold, sensor, display), palette.String())

	return Compose(colored, palette)
}

// Process runs the full pipeline on one raw capture.
func (p *Pipeline) Process(raw []byte, contrast float64, palette Palette) (*Analysis, *image.RGBA, error) {
	a, err := p.Analyze(raw, contrast)
	if err != nil {
		return nil, nil, err
	}
	out, err := p.Render(a, palette)
	if err != nil {
		return a, nil, err
	}
	return a, out, nil
}

// Reset clears the smoothing window, for example after the source reopens.
func (p *Pipeline) Reset() {
	p.smoother.Reset()
}
