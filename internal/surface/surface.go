package surface

import (
	"image/color"
	"math"
	"sort"
)

// Surface is the drawing capability every layer paints on. Coordinates are
// logical pixels; a backend may rasterize at a different scale.
type Surface interface {
	Resize(w, h int)
	Size() (w, h int)
	Clear()
	SetFillColor(c color.Color)
	SetFillGradient(g Gradient)
	// FillRect accepts negative extents; the rectangle grows from (x, y)
	// in the direction of the sign.
	FillRect(x, y, w, h float64)
	Reposition(x, y float64)
	Position() (x, y float64)
}

// Releaser is implemented by surfaces holding resources beyond memory.
type Releaser interface {
	Release()
}

type Factory interface {
	NewSurface(name string) Surface
}

// FactoryFunc adapts a function to Factory.
type FactoryFunc func(name string) Surface

func (f FactoryFunc) NewSurface(name string) Surface { return f(name) }

// Stop is one colour stop of a linear gradient, Offset in [0, 1].
type Stop struct {
	Offset float64
	Color  color.NRGBA
}

// Gradient is a linear gradient from (X0, Y0) to (X1, Y1).
type Gradient struct {
	X0, Y0, X1, Y1 float64
	Stops          []Stop
}

// NewLinearGradient copies the stops, clamps their offsets into [0, 1] and
// orders them by offset.
func NewLinearGradient(x0, y0, x1, y1 float64, stops ...Stop) Gradient {
	s := make([]Stop, len(stops))
	copy(s, stops)
	for i := range s {
		s[i].Offset = math.Max(0, math.Min(1, s[i].Offset))
	}
	sort.SliceStable(s, func(i, j int) bool { return s[i].Offset < s[j].Offset })
	return Gradient{X0: x0, Y0: y0, X1: x1, Y1: y1, Stops: s}
}

// At samples the gradient at parameter t along its axis.
func (g Gradient) At(t float64) color.NRGBA {
	if len(g.Stops) == 0 {
		return color.NRGBA{}
	}
	if t <= g.Stops[0].Offset {
		return g.Stops[0].Color
	}
	last := g.Stops[len(g.Stops)-1]
	if t >= last.Offset {
		return last.Color
	}
	for i := 1; i < len(g.Stops); i++ {
		a, b := g.Stops[i-1], g.Stops[i]
		if t > b.Offset {
			continue
		}
		span := b.Offset - a.Offset
		if span <= 0 {
			return b.Color
		}
		return lerp(a.Color, b.Color, (t-a.Offset)/span)
	}
	return last.Color
}

// AtPoint projects (x, y) onto the gradient axis and samples it there.
func (g Gradient) AtPoint(x, y float64) color.NRGBA {
	dx, dy := g.X1-g.X0, g.Y1-g.Y0
	d := dx*dx + dy*dy
	if d == 0 {
		return g.At(0)
	}
	return g.At(((x-g.X0)*dx + (y-g.Y0)*dy) / d)
}

func lerp(a, b color.NRGBA, t float64) color.NRGBA {
	mix := func(p, q uint8) uint8 {
		return uint8(math.Round(float64(p) + t*(float64(q)-float64(p))))
	}
	return color.NRGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}

// NormalizeRect turns a rectangle with possibly negative extents into one
// with its origin at the top-left corner.
func NormalizeRect(x, y, w, h float64) (float64, float64, float64, float64) {
	if w < 0 {
		x, w = x+w, -w
	}
	if h < 0 {
		y, h = y+h, -h
	}
	return x, y, w, h
}
