//go:build purego || js

package thermal

import "sync"

// stop is one control point of a color channel: value v at position at in [0, 1].
type stop struct{ at, v float64 }

// ramp is a piecewise-linear colormap described per channel.
type ramp struct{ r, g, b []stop }

// evenRamp spreads RGB colors uniformly over [0, 1].
func evenRamp(colors ...[3]uint8) ramp {
	var rp ramp
	last := float64(len(colors) - 1)
	for i, c := range colors {
		at := float64(i) / last
		rp.r = append(rp.r, stop{at, float64(c[0]) / 255})
		rp.g = append(rp.g, stop{at, float64(c[1]) / 255})
		rp.b = append(rp.b, stop{at, float64(c[2]) / 255})
	}
	return rp
}

func sampleChannel(stops []stop, t float64) float64 {
	if t <= stops[0].at {
		return stops[0].v
	}
	for i := 1; i < len(stops); i++ {
		if t <= stops[i].at {
			a, b := stops[i-1], stops[i]
			return a.v + (b.v-a.v)*(t-a.at)/(b.at-a.at)
		}
	}
	return stops[len(stops)-1].v
}

func (rp ramp) lut() *[256][3]uint8 {
	var lut [256][3]uint8
	for i := range lut {
		t := float64(i) / 255
		lut[i] = [3]uint8{
			saturate(float32(sampleChannel(rp.r, t) * 255)),
			saturate(float32(sampleChannel(rp.g, t) * 255)),
			saturate(float32(sampleChannel(rp.b, t) * 255)),
		}
	}
	return &lut
}

// Control points follow the matplotlib/OpenCV colormaps closely enough for
// display; they are not bit-exact with OpenCV's tables.
var ramps = [...]ramp{
	Inferno: evenRamp(
		[3]uint8{0, 0, 4}, [3]uint8{31, 12, 72}, [3]uint8{85, 15, 109},
		[3]uint8{136, 34, 106}, [3]uint8{186, 54, 85}, [3]uint8{227, 89, 51},
		[3]uint8{249, 140, 10}, [3]uint8{249, 201, 50}, [3]uint8{252, 255, 164},
	),
	Jet: {
		r: []stop{{0, 0}, {0.35, 0}, {0.66, 1}, {0.89, 1}, {1, 0.5}},
		g: []stop{{0, 0}, {0.125, 0}, {0.375, 1}, {0.64, 1}, {0.91, 0}, {1, 0}},
		b: []stop{{0, 0.5}, {0.11, 1}, {0.34, 1}, {0.65, 0}, {1, 0}},
	},
	Hot: {
		r: []stop{{0, 0.0416}, {0.365079, 1}, {1, 1}},
		g: []stop{{0, 0}, {0.365079, 0}, {0.746032, 1}, {1, 1}},
		b: []stop{{0, 0}, {0.746032, 0}, {1, 1}},
	},
	Magma: evenRamp(
		[3]uint8{0, 0, 4}, [3]uint8{28, 16, 68}, [3]uint8{79, 18, 123},
		[3]uint8{129, 37, 129}, [3]uint8{181, 54, 122}, [3]uint8{229, 80, 100},
		[3]uint8{251, 135, 97}, [3]uint8{254, 194, 135}, [3]uint8{252, 253, 191},
	),
	Turbo: evenRamp(
		[3]uint8{48, 18, 59}, [3]uint8{70, 107, 227}, [3]uint8{40, 187, 236},
		[3]uint8{49, 242, 153}, [3]uint8{162, 252, 60}, [3]uint8{237, 208, 58},
		[3]uint8{251, 128, 34}, [3]uint8{209, 49, 5}, [3]uint8{122, 4, 3},
	),
	Plasma: evenRamp(
		[3]uint8{13, 8, 135}, [3]uint8{65, 4, 157}, [3]uint8{106, 0, 168},
		[3]uint8{143, 13, 164}, [3]uint8{177, 42, 144}, [3]uint8{204, 71, 120},
		[3]uint8{229, 107, 93}, [3]uint8{248, 149, 64}, [3]uint8{240, 249, 33},
	),
}

var (
	lutOnce     sync.Once
	paletteLUTs [len(ramps)]*[256][3]uint8
)

func colormapLUT(p Palette) *[256][3]uint8 {
	lutOnce.Do(func() {
		for i, rp := range ramps {
			paletteLUTs[i] = rp.lut()
		}
	})
	return paletteLUTs[p]
}
