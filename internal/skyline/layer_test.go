package skyline

import (
	"testing"

	"github.com/san-kum/skyline/internal/surface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayer_LazySurface(t *testing.T) {
	f := &surface.RecorderFactory{}
	l := NewLayer(3, KindTowers, 100.5, 50, f)
	assert.Empty(t, f.Made)

	l.Translate(-10, -4)
	require.Len(t, f.Made, 1)
	w, h := f.Made[0].Size()
	assert.Equal(t, 101, w)
	assert.Equal(t, 50, h)
	assert.Equal(t, "layer3", f.Made[0].Name())
	x, y := f.Made[0].Position()
	assert.Equal(t, -10.0, x)
	assert.Equal(t, -4.0, y)

	l.Destroy()
	assert.True(t, f.Made[0].Released())
	l.Clear()
	assert.Len(t, f.Made, 2)
}
