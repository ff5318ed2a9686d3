package thermal

import "strings"

// Palette selects the color lookup table applied to the enhanced frame.
type Palette int

// Palettes in cycle order.
const (
	Inferno Palette = iota
	Jet
	Hot
	Magma
	Turbo
	Plasma
)

// Palettes lists every palette in the order the session cycles through them.
var Palettes = []Palette{Inferno, Jet, Hot, Magma, Turbo, Plasma}

var paletteNames = [...]string{
	Inferno: "Inferno",
	Jet:     "Jet",
	Hot:     "Hot",
	Magma:   "Magma",
	Turbo:   "Turbo",
	Plasma:  "Plasma",
}

func (p Palette) String() string {
	if p < 0 || int(p) >= len(paletteNames) {
		return "UNKNOWN"
	}
	return paletteNames[p]
}

// Next returns the palette after p, wrapping to the first.
func (p Palette) Next() Palette {
	return Palette((int(p) + 1) % len(Palettes))
}

// ParsePalette looks a palette up by name, ignoring case.
func ParsePalette(name string) (Palette, bool) {
	for _, p := range Palettes {
		if strings.EqualFold(p.String(), name) {
			return p, true
		}
	}
	return 0, false
}
