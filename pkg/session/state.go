// Package session runs the live thermal view: it pulls frames, drives the
// processing pipeline, shows the result and applies keyboard commands.
package session

import (
	"math"

	"thermalcam/pkg/thermal"
)

// Contrast control bounds.
const (
	MinContrast     = 0.4
	MaxContrast     = 5.0
	ContrastStep    = 0.2
	DefaultContrast = 1.0
)

// Contrast is the normalizer's contrast boost, kept within
// [MinContrast, MaxContrast]. The zero value is not usable; see NewContrast.
type Contrast struct {
	value float64
}

// NewContrast returns v clamped to the allowed range.
func NewContrast(v float64) Contrast {
	return Contrast{value: clampContrast(v)}
}

func (c Contrast) Value() float64 { return c.value }

// Increase steps the contrast up and returns the new value.
func (c *Contrast) Increase() float64 {
	c.value = clampContrast(c.value + ContrastStep)
	return c.value
}

// Decrease steps the contrast down and returns the new value.
func (c *Contrast) Decrease() float64 {
	c.value = clampContrast(c.value - ContrastStep)
	return c.value
}

// clampContrast also snaps to one decimal so repeated steps do not drift.
func clampContrast(v float64) float64 {
	v = math.Round(v*10) / 10
	return math.Max(MinContrast, math.Min(MaxContrast, v))
}

// PaletteSelection is the active palette.
type PaletteSelection struct {
	current thermal.Palette
}

func NewPaletteSelection(p thermal.Palette) PaletteSelection {
	return PaletteSelection{current: p}
}

func (s PaletteSelection) Current() thermal.Palette { return s.current }

// Next advances to the following palette, wrapping around, and returns it.
func (s *PaletteSelection) Next() thermal.Palette {
	s.current = s.current.Next()
	return s.current
}
