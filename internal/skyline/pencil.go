package skyline

import (
	"fmt"
	"log/slog"

	"github.com/san-kum/skyline/internal/config"
	"github.com/san-kum/skyline/internal/surface"
)

type State int

const (
	StateEmpty State = iota
	StateInitialized
	StateRendered
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateInitialized:
		return "initialized"
	case StateRendered:
		return "rendered"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Pencil builds a scene of layers, towers and fogs and paints it.
// Towers and fogs only live as long as the layers they reference; Init
// tears the whole scene down before building the next one.
type Pencil struct {
	cfg     *config.Config
	factory surface.Factory
	rng     *Rand
	log     *slog.Logger

	layers []*Layer
	towers []*Tower
	fogs   []*Fog
	state  State
}

func NewPencil(cfg *config.Config, factory surface.Factory, rng *Rand, logger *slog.Logger) *Pencil {
	if logger == nil {
		logger = slog.Default()
	}
	if rng == nil {
		rng = NewRand(cfg.Seed)
	}
	return &Pencil{
		cfg:     cfg,
		factory: factory,
		rng:     rng,
		log:     logger,
	}
}

// Init rebuilds the scene with towerCount towers spread over the configured
// number of tower layers. Each tower layer is followed by a fog layer.
func (p *Pencil) Init(towerCount int) {
	p.Destroy()

	towerCount = max(0, towerCount)
	levels := max(1, p.cfg.LayerCount)
	w, h := p.cfg.LayerWidth(), p.cfg.LayerHeight()

	for i := 0; i < 2*levels; i++ {
		kind := KindTowers
		if i%2 == 1 {
			kind = KindFog
		}
		p.addLayer(kind, w, h)
	}
	if p.cfg.Silhouette {
		p.addLayer(KindSilhouette, w, h)
	}

	opts := TowerOptions{Margin: p.cfg.AmplitudeX, Mode: p.cfg.WindowMode, Logger: p.log}
	for _, level := range assignLevels(towerCount, levels) {
		p.towers = append(p.towers, NewTower(p.layers[2*level], p.rng, opts))
	}
	for _, l := range p.layers {
		if l.Kind() == KindFog {
			p.fogs = append(p.fogs, NewFog(l, p.rng))
		}
	}

	p.state = StateInitialized
	p.log.Debug("scene initialized",
		"towers", len(p.towers),
		"layers", len(p.layers),
		"distribution", p.Distribution(),
	)
}

func (p *Pencil) addLayer(kind Kind, w, h float64) {
	l := NewLayer(len(p.layers), kind, w, h, p.factory)
	l.Clear()
	p.layers = append(p.layers, l)
}

// assignLevels buckets towers greedily: the level advances each time the
// running index reaches perLayer*(level+1), and the last level takes the
// remainder.
func assignLevels(towers, levels int) []int {
	perLayer := max(1, towers/levels)
	out := make([]int, towers)
	level := 0
	for i := range out {
		if i >= perLayer*(level+1) && level < levels-1 {
			level++
		}
		out[i] = level
	}
	return out
}

// Destroy releases every surface and empties the scene.
func (p *Pencil) Destroy() {
	for _, l := range p.layers {
		l.Destroy()
	}
	p.layers, p.towers, p.fogs = nil, nil, nil
	p.state = StateEmpty
}

// Draw paints every tower with its windows.
func (p *Pencil) Draw() {
	for _, t := range p.towers {
		t.Draw()
		t.DrawWindows()
	}
	p.markRendered()
}

// DrawLayer clears one layer and repaints only what it holds.
func (p *Pencil) DrawLayer(id int) {
	if id < 0 || id >= len(p.layers) {
		p.log.Debug("draw of unknown layer", "layer", id, "err", ErrIndexOutOfRange)
		return
	}
	p.layers[id].Clear()
	for _, t := range p.towers {
		if t.Layer().ID() == id {
			t.Draw()
			t.DrawWindows()
		}
	}
	for _, f := range p.fogs {
		if f.Layer().ID() == id {
			f.Draw()
		}
	}
	p.markRendered()
}

func (p *Pencil) DrawFog() {
	for _, f := range p.fogs {
		f.Draw()
	}
	p.markRendered()
}

func (p *Pencil) markRendered() {
	if p.state != StateEmpty {
		p.state = StateRendered
	}
}

// RandomTower picks a tower uniformly; nil for an empty scene.
func (p *Pencil) RandomTower() *Tower {
	i, err := p.rng.Index(len(p.towers))
	if err != nil {
		return nil
	}
	return p.towers[i]
}

// RandomLightWindows flips one uniformly chosen cell of t and returns it.
func (p *Pencil) RandomLightWindows(t *Tower) (int, int) {
	ix, errX := p.rng.Index(t.NbWindowsX())
	iy, errY := p.rng.Index(t.NbWindowsY())
	if errX != nil || errY != nil {
		p.log.Debug("tower without windows", "layer", t.Layer().Name(), "err", ErrIndexOutOfRange)
		return ix, iy
	}
	t.Toggle(ix, iy)
	return ix, iy
}

// FlipRandomWindow flips one random window and repaints the layer holding
// it. It returns the tower touched, nil if there is none.
func (p *Pencil) FlipRandomWindow() *Tower {
	t := p.RandomTower()
	if t == nil {
		return nil
	}
	p.RandomLightWindows(t)
	p.DrawLayer(t.Layer().ID())
	return t
}

// Distribution counts towers per tower layer, back to front.
func (p *Pencil) Distribution() []int {
	counts := make([]int, len(p.TowerLayers()))
	for _, t := range p.towers {
		counts[t.Layer().ID()/2]++
	}
	return counts
}

func (p *Pencil) Layers() []*Layer { return p.layers }
func (p *Pencil) Towers() []*Tower { return p.towers }
func (p *Pencil) Fogs() []*Fog     { return p.fogs }
func (p *Pencil) State() State     { return p.state }

// TowerLayers returns the even layers.
func (p *Pencil) TowerLayers() []*Layer {
	var out []*Layer
	for _, l := range p.layers {
		if l.Kind() == KindTowers {
			out = append(out, l)
		}
	}
	return out
}

// Surfaces lists the layer surfaces back to front.
func (p *Pencil) Surfaces() []surface.Surface {
	out := make([]surface.Surface, len(p.layers))
	for i, l := range p.layers {
		out[i] = l.Surface()
	}
	return out
}
