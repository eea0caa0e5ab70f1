package surface

import (
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg"
)

// Imager is implemented by surfaces that hold pixels.
type Imager interface {
	Image() image.Image
}

// Composite paints the surfaces back to front over a w×h viewport filled
// with bg. Each surface lands at its position times scale. Surfaces without
// pixels are skipped.
func Composite(w, h int, scale float64, bg color.Color, surfaces []Surface) image.Image {
	dc := gg.NewContext(max(1, w), max(1, h))
	dc.SetColor(bg)
	dc.Clear()
	for _, s := range surfaces {
		im, ok := s.(Imager)
		if !ok || im.Image() == nil {
			continue
		}
		x, y := s.Position()
		dc.DrawImage(im.Image(), int(math.Round(x*scale)), int(math.Round(y*scale)))
	}
	return dc.Image()
}

// StraightPixels returns the pixels of img row by row with straight,
// non-premultiplied alpha, as GPU texture uploads expect.
func StraightPixels(img image.Image) []color.RGBA {
	b := img.Bounds()
	out := make([]color.RGBA, 0, b.Dx()*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			out = append(out, color.RGBA(c))
		}
	}
	return out
}
