package parallax

import (
	"math"

	"github.com/san-kum/skyline/internal/config"
)

type Offset struct {
	X, Y float64
}

// Mapper turns a pointer position into per-layer parallax offsets. Layer i
// of n moves by the full swing divided by (n - i + 1), so front layers move
// the most.
type Mapper struct {
	Width, Height          float64
	AmplitudeX, AmplitudeY float64
}

func NewMapper(cfg *config.Config) Mapper {
	return Mapper{
		Width:      float64(cfg.Viewport.Width),
		Height:     float64(cfg.Viewport.Height),
		AmplitudeX: cfg.AmplitudeX,
		AmplitudeY: cfg.AmplitudeY,
	}
}

func (m Mapper) Center() (float64, float64) {
	return m.Width / 2, m.Height / 2
}

func (m Mapper) Offsets(px, py float64, layers int) []Offset {
	cx, cy := m.Center()
	swingX := ratio(px-cx, cx) * m.AmplitudeX
	swingY := ratio(py-cy, cy) * m.AmplitudeY

	out := make([]Offset, max(0, layers))
	for i := range out {
		div := float64(layers - i + 1)
		out[i] = Offset{
			X: math.Floor(swingX / div),
			Y: math.Floor(swingY / div),
		}
	}
	return out
}

// Position is where a layer sits for a given offset. Layers rest half an
// amplitude left of and above the viewport origin, so any offset within
// half an amplitude keeps the viewport covered.
func (m Mapper) Position(o Offset) (float64, float64) {
	return -m.AmplitudeX/2 - o.X, -m.AmplitudeY/2 - o.Y
}

// ratio is d/half clamped to [-1, 1].
func ratio(d, half float64) float64 {
	if half <= 0 {
		return 0
	}
	return math.Max(-1, math.Min(1, d/half))
}
