package surface

import (
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg"
)

// Raster is an in-memory RGBA surface backed by a gg context. The backing
// image is Scale times the logical size.
type Raster struct {
	name  string
	scale float64
	w, h  int
	x, y  float64
	dc    *gg.Context
	fill  gg.Pattern
	rev   uint64
}

func NewRaster(name string, scale float64) *Raster {
	if scale <= 0 {
		scale = 1
	}
	return &Raster{
		name:  name,
		scale: scale,
		fill:  gg.NewSolidPattern(color.Black),
	}
}

// RasterFactory builds Raster surfaces at a fixed scale.
type RasterFactory struct {
	Scale float64
}

func (f RasterFactory) NewSurface(name string) Surface { return NewRaster(name, f.Scale) }

func (r *Raster) Name() string { return r.name }

func (r *Raster) Scale() float64 { return r.scale }

// Revision changes whenever the pixels may have changed.
func (r *Raster) Revision() uint64 { return r.rev }

func (r *Raster) Resize(w, h int) {
	r.w, r.h = w, h
	pw := max(1, int(math.Ceil(float64(w)*r.scale)))
	ph := max(1, int(math.Ceil(float64(h)*r.scale)))
	r.dc = gg.NewContext(pw, ph)
	r.dc.Scale(r.scale, r.scale)
	r.rev++
}

func (r *Raster) Size() (int, int) { return r.w, r.h }

func (r *Raster) Clear() {
	if r.dc == nil {
		return
	}
	r.dc.SetColor(color.Transparent)
	r.dc.Clear()
	r.rev++
}

func (r *Raster) SetFillColor(c color.Color) {
	r.fill = gg.NewSolidPattern(c)
}

// gg samples patterns in device space, so the gradient axis is scaled here.
func (r *Raster) SetFillGradient(g Gradient) {
	s := r.scale
	grad := gg.NewLinearGradient(g.X0*s, g.Y0*s, g.X1*s, g.Y1*s)
	for _, stop := range g.Stops {
		grad.AddColorStop(stop.Offset, stop.Color)
	}
	r.fill = grad
}

func (r *Raster) FillRect(x, y, w, h float64) {
	if r.dc == nil {
		return
	}
	x, y, w, h = NormalizeRect(x, y, w, h)
	if w == 0 || h == 0 {
		return
	}
	r.dc.SetFillStyle(r.fill)
	r.dc.DrawRectangle(x, y, w, h)
	r.dc.Fill()
	r.rev++
}

func (r *Raster) Reposition(x, y float64) { r.x, r.y = x, y }

func (r *Raster) Position() (float64, float64) { return r.x, r.y }

// Image exposes the backing image; nil before the first Resize.
func (r *Raster) Image() image.Image {
	if r.dc == nil {
		return nil
	}
	return r.dc.Image()
}

// Release drops the backing image.
func (r *Raster) Release() {
	r.dc = nil
	r.rev++
}
