package skyline

import (
	"image/color"
	"sort"

	"github.com/san-kum/skyline/internal/surface"
)

// fogBands are sampled top (0) to ground (1).
var fogBands = [...]struct {
	lo, hi float64
	alpha  uint8
}{
	{0, 0, 0},
	{0.4, 0.6, 0},
	{0.75, 0.9, 30},
	{0.9, 0.97, 72},
	{1, 1, 128},
}

const minStopSpacing = 1e-3

// Fog is a vertical white gradient covering its whole layer.
type Fog struct {
	layer *Layer
	stops []surface.Stop
}

func NewFog(layer *Layer, rng *Rand) *Fog {
	offsets := make([]float64, len(fogBands))
	for i, b := range fogBands {
		offsets[i] = rng.Between(b.lo, b.hi)
	}
	offsets = increasing(offsets)

	stops := make([]surface.Stop, len(fogBands))
	for i, b := range fogBands {
		stops[i] = surface.Stop{
			Offset: offsets[i],
			Color:  color.NRGBA{R: 255, G: 255, B: 255, A: b.alpha},
		}
	}
	return &Fog{layer: layer, stops: stops}
}

// increasing sorts offsets and pushes apart any that touch, keeping the
// last one at 1 and working backwards if the tail runs out of room.
func increasing(offsets []float64) []float64 {
	out := append([]float64(nil), offsets...)
	sort.Float64s(out)
	for i := 1; i < len(out); i++ {
		if out[i] <= out[i-1] {
			out[i] = out[i-1] + minStopSpacing
		}
	}
	last := len(out) - 1
	if last >= 0 && out[last] > 1 {
		out[last] = 1
		for i := last - 1; i >= 0 && out[i] >= out[i+1]; i-- {
			out[i] = out[i+1] - minStopSpacing
		}
	}
	return out
}

func (f *Fog) Layer() *Layer { return f.layer }

func (f *Fog) Stops() []surface.Stop {
	return append([]surface.Stop(nil), f.stops...)
}

// Gradient spans the layer from top to bottom.
func (f *Fog) Gradient() surface.Gradient {
	return surface.NewLinearGradient(0, 0, 0, f.layer.Height(), f.stops...)
}

func (f *Fog) Draw() {
	s := f.layer.Surface()
	s.SetFillGradient(f.Gradient())
	s.FillRect(0, 0, f.layer.Width(), f.layer.Height())
}
