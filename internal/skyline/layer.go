package skyline

import (
	"fmt"
	"math"

	"github.com/san-kum/skyline/internal/surface"
)

type Kind int

const (
	KindTowers Kind = iota
	KindFog
	KindSilhouette
)

func (k Kind) String() string {
	switch k {
	case KindTowers:
		return "towers"
	case KindFog:
		return "fog"
	case KindSilhouette:
		return "silhouette"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Layer owns one drawing surface. It is translated as a whole for parallax;
// its pixels are never redrawn for a move.
type Layer struct {
	id            int
	kind          Kind
	width, height float64
	x, y          float64
	factory       surface.Factory
	surface       surface.Surface
}

func NewLayer(id int, kind Kind, width, height float64, factory surface.Factory) *Layer {
	return &Layer{
		id:      id,
		kind:    kind,
		width:   width,
		height:  height,
		factory: factory,
	}
}

func (l *Layer) ID() int         { return l.id }
func (l *Layer) Name() string    { return fmt.Sprintf("layer%d", l.id) }
func (l *Layer) Kind() Kind      { return l.kind }
func (l *Layer) Width() float64  { return l.width }
func (l *Layer) Height() float64 { return l.height }

// Surface returns the backing surface, creating and sizing it on first use.
func (l *Layer) Surface() surface.Surface {
	if l.surface == nil {
		s := l.factory.NewSurface(l.Name())
		s.Resize(int(math.Ceil(l.width)), int(math.Ceil(l.height)))
		s.Reposition(l.x, l.y)
		l.surface = s
	}
	return l.surface
}

func (l *Layer) Clear() {
	l.Surface().Clear()
}

// Translate moves the layer to (x, y) in viewport coordinates.
func (l *Layer) Translate(x, y float64) {
	l.x, l.y = x, y
	l.Surface().Reposition(x, y)
}

func (l *Layer) Position() (float64, float64) { return l.x, l.y }

// Destroy releases the surface. A later Surface call makes a fresh one.
func (l *Layer) Destroy() {
	if r, ok := l.surface.(surface.Releaser); ok {
		r.Release()
	}
	l.surface = nil
}
