package surface

import (
	"image/color"
)

type OpKind int

const (
	OpFillRect OpKind = iota
)

// Op is one recorded paint operation. Rectangles are stored normalized.
type Op struct {
	Kind       OpKind
	X, Y, W, H float64
	Color      color.NRGBA
	Gradient   *Gradient
}

// Recorder keeps the ordered paint operations that make up its current
// content. Clear drops them.
type Recorder struct {
	name     string
	w, h     int
	x, y     float64
	color    color.NRGBA
	gradient *Gradient
	ops      []Op
	clears   int
	released bool
}

func NewRecorder(name string) *Recorder {
	return &Recorder{name: name, color: color.NRGBA{A: 255}}
}

// RecorderFactory builds Recorders and remembers every one it made.
type RecorderFactory struct {
	Made []*Recorder
}

func (f *RecorderFactory) NewSurface(name string) Surface {
	r := NewRecorder(name)
	f.Made = append(f.Made, r)
	return r
}

func (r *Recorder) Name() string { return r.name }

func (r *Recorder) Resize(w, h int) {
	r.w, r.h = w, h
	r.ops = r.ops[:0]
}

func (r *Recorder) Size() (int, int) { return r.w, r.h }

func (r *Recorder) Clear() {
	r.ops = r.ops[:0]
	r.clears++
}

func (r *Recorder) SetFillColor(c color.Color) {
	r.color = color.NRGBAModel.Convert(c).(color.NRGBA)
	r.gradient = nil
}

func (r *Recorder) SetFillGradient(g Gradient) {
	g.Stops = append([]Stop(nil), g.Stops...)
	r.gradient = &g
}

func (r *Recorder) FillRect(x, y, w, h float64) {
	x, y, w, h = NormalizeRect(x, y, w, h)
	r.ops = append(r.ops, Op{
		Kind:     OpFillRect,
		X:        x,
		Y:        y,
		W:        w,
		H:        h,
		Color:    r.color,
		Gradient: r.gradient,
	})
}

func (r *Recorder) Reposition(x, y float64) { r.x, r.y = x, y }

func (r *Recorder) Position() (float64, float64) { return r.x, r.y }

// Ops returns a copy of the current content.
func (r *Recorder) Ops() []Op {
	out := make([]Op, len(r.ops))
	copy(out, r.ops)
	return out
}

func (r *Recorder) Clears() int { return r.clears }

func (r *Recorder) Release() {
	r.ops = nil
	r.released = true
}

func (r *Recorder) Released() bool { return r.released }
