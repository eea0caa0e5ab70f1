package surface

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	red         = color.NRGBA{R: 255, A: 255}
	blue        = color.NRGBA{B: 255, A: 255}
	transparent = color.NRGBA{}
)

func TestNormalizeRect(t *testing.T) {
	x, y, w, h := NormalizeRect(10, 100, 20, -30)
	assert.Equal(t, []float64{10, 70, 20, 30}, []float64{x, y, w, h})

	x, y, w, h = NormalizeRect(10, 100, -20, 30)
	assert.Equal(t, []float64{-10, 100, 20, 30}, []float64{x, y, w, h})
}

func TestNewLinearGradient_OrdersAndClamps(t *testing.T) {
	g := NewLinearGradient(0, 0, 0, 100,
		Stop{Offset: 1.2, Color: blue},
		Stop{Offset: -0.5, Color: red},
		Stop{Offset: 0.5, Color: transparent},
	)

	require.Len(t, g.Stops, 3)
	assert.Equal(t, 0.0, g.Stops[0].Offset)
	assert.Equal(t, 0.5, g.Stops[1].Offset)
	assert.Equal(t, 1.0, g.Stops[2].Offset)
	assert.Equal(t, red, g.Stops[0].Color)
}

func TestGradientAt(t *testing.T) {
	g := NewLinearGradient(0, 0, 0, 100,
		Stop{Offset: 0, Color: color.NRGBA{A: 0}},
		Stop{Offset: 1, Color: color.NRGBA{A: 200}},
	)

	assert.Equal(t, uint8(0), g.At(-1).A)
	assert.Equal(t, uint8(100), g.At(0.5).A)
	assert.Equal(t, uint8(200), g.At(2).A)
	assert.Equal(t, uint8(50), g.AtPoint(999, 25).A)
	assert.Equal(t, color.NRGBA{}, Gradient{}.At(0.3))
}

func TestRecorder(t *testing.T) {
	f := &RecorderFactory{}
	s := f.NewSurface("layer0")
	require.Len(t, f.Made, 1)
	rec := f.Made[0]

	s.Resize(300, 200)
	w, h := s.Size()
	assert.Equal(t, 300, w)
	assert.Equal(t, 200, h)

	s.SetFillColor(red)
	s.FillRect(10, 200, 50, -100)
	g := NewLinearGradient(0, 0, 0, 200, Stop{Offset: 0, Color: transparent}, Stop{Offset: 1, Color: blue})
	s.SetFillGradient(g)
	s.FillRect(0, 0, 300, 200)

	ops := rec.Ops()
	require.Len(t, ops, 2)
	assert.Equal(t, Op{Kind: OpFillRect, X: 10, Y: 100, W: 50, H: 100, Color: red}, ops[0])
	require.NotNil(t, ops[1].Gradient)
	assert.Len(t, ops[1].Gradient.Stops, 2)

	s.Reposition(-20, -5)
	x, y := s.Position()
	assert.Equal(t, -20.0, x)
	assert.Equal(t, -5.0, y)
	assert.Len(t, rec.Ops(), 2, "repositioning must not repaint")

	s.Clear()
	assert.Empty(t, rec.Ops())
	assert.Equal(t, 1, rec.Clears())

	rec.Release()
	assert.True(t, rec.Released())
}

func TestRaster_FillAndClear(t *testing.T) {
	r := NewRaster("layer0", 1)
	assert.Nil(t, r.Image())

	r.Resize(40, 40)
	start := r.Revision()
	r.SetFillColor(red)
	r.FillRect(10, 30, 10, -20)
	assert.Greater(t, r.Revision(), start)

	img := r.Image()
	require.NotNil(t, img)
	assert.Equal(t, uint32(0xffff), alpha(img.At(15, 20)))
	assert.Equal(t, uint32(0), alpha(img.At(5, 5)))

	r.Clear()
	assert.Equal(t, uint32(0), alpha(r.Image().At(15, 20)))
}

func TestRaster_Scale(t *testing.T) {
	r := RasterFactory{Scale: 0.5}.NewSurface("small").(*Raster)
	r.Resize(100, 60)

	w, h := r.Size()
	assert.Equal(t, 100, w)
	assert.Equal(t, 60, h)
	b := r.Image().Bounds()
	assert.Equal(t, 50, b.Dx())
	assert.Equal(t, 30, b.Dy())

	r.SetFillColor(blue)
	r.FillRect(0, 0, 100, 60)
	assert.Equal(t, uint32(0xffff), alpha(r.Image().At(49, 29)))
}

func TestRaster_Gradient(t *testing.T) {
	r := NewRaster("fog", 1)
	r.Resize(10, 100)
	r.SetFillGradient(NewLinearGradient(0, 0, 0, 100,
		Stop{Offset: 0, Color: color.NRGBA{R: 255, G: 255, B: 255, A: 0}},
		Stop{Offset: 1, Color: color.NRGBA{R: 255, G: 255, B: 255, A: 255}},
	))
	r.FillRect(0, 0, 10, 100)

	top := alpha(r.Image().At(5, 2))
	bottom := alpha(r.Image().At(5, 97))
	assert.Less(t, top, bottom)
}

func TestComposite(t *testing.T) {
	back := NewRaster("back", 1)
	back.Resize(20, 20)
	back.SetFillColor(red)
	back.FillRect(0, 0, 20, 20)

	front := NewRaster("front", 1)
	front.Resize(20, 20)
	front.SetFillColor(blue)
	front.FillRect(0, 0, 5, 5)
	front.Reposition(-2, -2)

	img := Composite(20, 20, 1, color.Black, []Surface{back, front, NewRecorder("ignored")})
	r, _, b, _ := img.At(1, 1).RGBA()
	assert.Equal(t, uint32(0), r)
	assert.Equal(t, uint32(0xffff), b)

	r, _, b, _ = img.At(10, 10).RGBA()
	assert.Equal(t, uint32(0xffff), r)
	assert.Equal(t, uint32(0), b)
}

func alpha(c color.Color) uint32 {
	_, _, _, a := c.RGBA()
	return a
}

func TestStraightPixels(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.Set(0, 0, color.NRGBA{R: 200, A: 128})
	img.Set(1, 0, blue)

	px := StraightPixels(img)
	require.Len(t, px, 2)
	assert.InDelta(t, 200, int(px[0].R), 2)
	assert.Equal(t, uint8(128), px[0].A)
	assert.Equal(t, color.RGBA(blue), px[1])
}
