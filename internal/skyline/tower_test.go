package skyline

import (
	"testing"

	"github.com/san-kum/skyline/internal/config"
	"github.com/san-kum/skyline/internal/surface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLayer(w, h float64) (*Layer, *surface.RecorderFactory) {
	f := &surface.RecorderFactory{}
	return NewLayer(0, KindTowers, w, h, f), f
}

func TestWindowCountRange(t *testing.T) {
	lo, hi, err := windowCountRange(100, 2*5, 10)
	require.NoError(t, err)
	assert.Equal(t, 4, lo)
	assert.Equal(t, 9, hi)

	lo, hi, err = windowCountRange(20, 2*9, 15)
	assert.ErrorIs(t, err, ErrInvalidGridDimension)
	assert.Equal(t, 2, lo)
	assert.Equal(t, 2, hi)

	lo, hi, err = windowCountRange(10, 50, 5)
	assert.ErrorIs(t, err, ErrInvalidGridDimension)
	assert.Equal(t, 2, lo)
	assert.Equal(t, 2, hi)

	lo, hi, err = windowCountRange(100, 0, 0)
	assert.ErrorIs(t, err, ErrInvalidGridDimension)
	assert.Equal(t, 2, lo)
	assert.Equal(t, 2, hi)
}

func TestWindowGap(t *testing.T) {
	gap, err := windowGap(90, 10, 4)
	require.NoError(t, err)
	assert.InDelta(t, 50.0/3.0, gap, 1e-9)

	gap, err = windowGap(90, 10, 1)
	assert.ErrorIs(t, err, ErrDivisionSingularity)
	assert.Equal(t, 0.0, gap)
}

func TestNewTower_Bounds(t *testing.T) {
	layer, _ := newTestLayer(1480, 760)
	rng := NewRand(42)

	for i := 0; i < 500; i++ {
		tw := NewTower(layer, rng, TowerOptions{Margin: 200, Mode: config.WindowsRandom})

		assert.GreaterOrEqual(t, tw.Width, minTowerWidth)
		assert.LessOrEqual(t, tw.Width, maxTowerWidth)
		assert.GreaterOrEqual(t, tw.Height, 760*minHeightRatio)
		assert.LessOrEqual(t, tw.Height, 760*maxHeightRatio)
		assert.GreaterOrEqual(t, tw.X, -200.0)
		assert.LessOrEqual(t, tw.X, 1480+200-tw.Width)
		assert.Equal(t, 760.0, tw.Y)
		assert.GreaterOrEqual(t, tw.Hue, 0.0)
		assert.Less(t, tw.Hue, 360.0)

		require.GreaterOrEqual(t, tw.NbWindowsX(), 2)
		require.GreaterOrEqual(t, tw.NbWindowsY(), 2)
		assert.Same(t, layer, tw.Layer())
	}
}

func TestNewTower_LitMode(t *testing.T) {
	layer, _ := newTestLayer(800, 600)
	tw := NewTower(layer, NewRand(1), TowerOptions{Mode: config.WindowsLit})

	assert.Equal(t, tw.NbWindowsX()*tw.NbWindowsY(), tw.LitCount())
}

func TestNewTower_RandomModeMixes(t *testing.T) {
	layer, _ := newTestLayer(800, 600)
	rng := NewRand(8)
	lit, total := 0, 0
	for i := 0; i < 50; i++ {
		tw := NewTower(layer, rng, TowerOptions{Mode: config.WindowsRandom})
		lit += tw.LitCount()
		total += tw.NbWindowsX() * tw.NbWindowsY()
	}
	ratio := float64(lit) / float64(total)
	assert.InDelta(t, 0.5, ratio, 0.1)
}

func TestTower_Toggle(t *testing.T) {
	layer, _ := newTestLayer(800, 600)
	tw := NewTower(layer, NewRand(2), TowerOptions{Mode: config.WindowsLit})

	assert.True(t, tw.Lit(1, 1))
	assert.False(t, tw.Toggle(1, 1))
	assert.False(t, tw.Lit(1, 1))
	assert.True(t, tw.Toggle(1, 1))

	before := tw.Windows()
	tw.Toggle(1000, -3)
	after := tw.Windows()
	assert.False(t, after[tw.NbWindowsX()-1][0], "clamped toggle hits the nearest cell")
	assert.True(t, before[tw.NbWindowsX()-1][0])
	assert.False(t, tw.Lit(-1, 0))
}

func TestTower_Draw(t *testing.T) {
	layer, f := newTestLayer(800, 600)
	tw := NewTower(layer, NewRand(3), TowerOptions{Mode: config.WindowsLit})

	tw.Draw()
	tw.DrawWindows()

	require.Len(t, f.Made, 1)
	ops := f.Made[0].Ops()
	require.Len(t, ops, 1+tw.LitCount())

	body := ops[0]
	assert.InDelta(t, tw.X, body.X, 1e-9)
	assert.InDelta(t, tw.Y-tw.Height, body.Y, 1e-9)
	assert.InDelta(t, tw.Height, body.H, 1e-9)

	// The first window column starts at the side margin and the last one
	// ends at the opposite margin.
	first, last := ops[1], ops[len(ops)-1]
	assert.InDelta(t, tw.X+tw.MarginLeftRight, first.X, 1e-6)
	assert.InDelta(t, tw.Y-tw.MarginBottom, first.Y+first.H, 1e-6)
	assert.InDelta(t, tw.X+tw.Width-tw.MarginLeftRight, last.X+last.W, 1e-6)
	assert.InDelta(t, tw.Y-tw.Height+tw.MarginTop, last.Y, 1e-6)
}

func TestTower_DrawIsReadOnly(t *testing.T) {
	layer, _ := newTestLayer(800, 600)
	tw := NewTower(layer, NewRand(4), TowerOptions{Mode: config.WindowsRandom})
	snapshot := *tw
	grid := tw.Windows()

	tw.Draw()
	tw.DrawWindows()
	tw.Draw()
	tw.DrawWindows()

	assert.Equal(t, snapshot.X, tw.X)
	assert.Equal(t, snapshot.Height, tw.Height)
	assert.Equal(t, snapshot.Fill, tw.Fill)
	assert.Equal(t, grid, tw.Windows())
}
