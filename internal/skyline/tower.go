package skyline

import (
	"image/color"
	"log/slog"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/skyline/internal/config"
)

const (
	minTowerWidth  = 50.0
	maxTowerWidth  = 200.0
	minHeightRatio = 0.25
	maxHeightRatio = 0.9

	minMarginSide   = 2.0
	maxMarginSide   = 10.0
	minMarginTop    = 2.0
	maxMarginTop    = 50.0
	minMarginBottom = 2.0
	maxMarginBottom = 5.0
	minWindowSize   = 3.0
	maxWindowSize   = 20.0

	minWindowCount = 2
	litChance      = 0.5
)

type TowerOptions struct {
	// Margin lets towers start this far outside the layer on either side.
	Margin float64
	Mode   config.WindowMode
	Logger *slog.Logger
}

// Tower is a bottom-anchored rectangle with a grid of windows. Geometry is
// fixed at construction; only the lit flags change afterwards.
type Tower struct {
	layer *Layer

	X, Y          float64
	Width, Height float64
	Hue           float64
	Fill          color.Color
	WindowFill    color.Color

	MarginLeftRight float64
	MarginTop       float64
	MarginBottom    float64
	WindowWidth     float64
	WindowHeight    float64

	// windows[ix][iy], column-major, iy counted from the ground up.
	windows [][]bool
}

func NewTower(layer *Layer, rng *Rand, opts TowerOptions) *Tower {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	t := &Tower{layer: layer}
	t.Width = rng.Between(minTowerWidth, maxTowerWidth)
	t.Height = rng.Between(layer.Height()*minHeightRatio, layer.Height()*maxHeightRatio)
	t.X = rng.Between(-opts.Margin, layer.Width()+opts.Margin-t.Width)
	t.Y = layer.Height()

	t.Hue = rng.Between(0, 360)
	t.Fill = colorful.Hsl(t.Hue, 0.4, 0.2)
	t.WindowFill = colorful.Hsl(t.Hue, 1.0, 0.8)

	t.MarginLeftRight = rng.Between(minMarginSide, maxMarginSide)
	t.MarginTop = rng.Between(minMarginTop, maxMarginTop)
	t.MarginBottom = rng.Between(minMarginBottom, maxMarginBottom)
	t.WindowWidth = rng.Between(minWindowSize, maxWindowSize)
	t.WindowHeight = rng.Between(minWindowSize, maxWindowSize)

	loX, hiX, err := windowCountRange(t.Width, 2*t.MarginLeftRight, t.WindowWidth)
	if err != nil {
		log.Debug("window columns clamped", "layer", layer.Name(), "width", t.Width, "err", err)
	}
	loY, hiY, err := windowCountRange(t.Height, t.MarginTop+t.MarginBottom, t.WindowHeight)
	if err != nil {
		log.Debug("window rows clamped", "layer", layer.Name(), "height", t.Height, "err", err)
	}
	nx := rng.IntBetween(loX, hiX)
	ny := rng.IntBetween(loY, hiY)

	t.windows = make([][]bool, nx)
	for ix := range t.windows {
		t.windows[ix] = make([]bool, ny)
		for iy := range t.windows[ix] {
			t.windows[ix][iy] = opts.Mode == config.WindowsLit || rng.Chance(litChance)
		}
	}
	return t
}

// windowCountRange bounds the window count along one axis:
// [max(2, n/2), n] with n = floor((extent - margins) / cell).
func windowCountRange(extent, margins, cell float64) (int, int, error) {
	n := 0
	if cell > 0 {
		if v := math.Floor((extent - margins) / cell); v > 0 {
			n = int(v)
		}
	}
	lo := max(minWindowCount, n/2)
	if n < lo {
		return lo, lo, ErrInvalidGridDimension
	}
	return lo, n, nil
}

// windowGap spreads count cells over interior so cells and gaps span it.
func windowGap(interior, cell float64, count int) (float64, error) {
	if count <= 1 {
		return 0, ErrDivisionSingularity
	}
	return (interior - float64(count)*cell) / float64(count-1), nil
}

func (t *Tower) Layer() *Layer { return t.layer }

func (t *Tower) NbWindowsX() int { return len(t.windows) }

func (t *Tower) NbWindowsY() int {
	if len(t.windows) == 0 {
		return 0
	}
	return len(t.windows[0])
}

// Lit reports the state of one cell; out-of-range cells are unlit.
func (t *Tower) Lit(ix, iy int) bool {
	if ix < 0 || ix >= t.NbWindowsX() || iy < 0 || iy >= t.NbWindowsY() {
		return false
	}
	return t.windows[ix][iy]
}

// Toggle flips one cell and returns its new state. Indices are clamped into
// the grid.
func (t *Tower) Toggle(ix, iy int) bool {
	ix, _ = clampIndex(ix, t.NbWindowsX())
	iy, _ = clampIndex(iy, t.NbWindowsY())
	if t.NbWindowsX() == 0 || t.NbWindowsY() == 0 {
		return false
	}
	t.windows[ix][iy] = !t.windows[ix][iy]
	return t.windows[ix][iy]
}

func (t *Tower) LitCount() int {
	n := 0
	for _, col := range t.windows {
		for _, lit := range col {
			if lit {
				n++
			}
		}
	}
	return n
}

// Windows returns a copy of the grid.
func (t *Tower) Windows() [][]bool {
	out := make([][]bool, len(t.windows))
	for ix, col := range t.windows {
		out[ix] = append([]bool(nil), col...)
	}
	return out
}

// Draw paints the body, growing upward from the bottom anchor.
func (t *Tower) Draw() {
	s := t.layer.Surface()
	s.SetFillColor(t.Fill)
	s.FillRect(t.X, t.Y, t.Width, -t.Height)
}

// DrawWindows paints the lit cells over the body.
func (t *Tower) DrawWindows() {
	gapX, gapY := t.gaps()
	s := t.layer.Surface()
	s.SetFillColor(t.WindowFill)
	for ix, col := range t.windows {
		for iy, lit := range col {
			if !lit {
				continue
			}
			x, y := t.windowOrigin(ix, iy, gapX, gapY)
			s.FillRect(x, y, t.WindowWidth, -t.WindowHeight)
		}
	}
}

func (t *Tower) gaps() (float64, float64) {
	gapX, _ := windowGap(t.Width-2*t.MarginLeftRight, t.WindowWidth, t.NbWindowsX())
	gapY, _ := windowGap(t.Height-t.MarginTop-t.MarginBottom, t.WindowHeight, t.NbWindowsY())
	return gapX, gapY
}

// windowOrigin is the bottom-left corner of cell (ix, iy).
func (t *Tower) windowOrigin(ix, iy int, gapX, gapY float64) (float64, float64) {
	x := t.X + t.MarginLeftRight + float64(ix)*(t.WindowWidth+gapX)
	y := t.Y - t.MarginBottom - float64(iy)*(t.WindowHeight+gapY)
	return x, y
}
