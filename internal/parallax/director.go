package parallax

import (
	"log/slog"
	"time"

	"github.com/san-kum/skyline/internal/config"
	"github.com/san-kum/skyline/internal/skyline"
	"github.com/san-kum/skyline/internal/surface"
)

// Director owns a scene for a front end: it rebuilds it when the config
// changes, maps pointer moves onto layer positions and runs the window flip
// timer. All methods must be called from the front end's event loop.
type Director struct {
	cfg    *config.Config
	sched  Scheduler
	log    *slog.Logger
	pencil *skyline.Pencil
	mapper Mapper
	flip   Handle

	pointerX, pointerY float64
	generation         int
	flips              int
}

func NewDirector(cfg *config.Config, factory surface.Factory, sched Scheduler, logger *slog.Logger) *Director {
	if logger == nil {
		logger = slog.Default()
	}
	return &Director{
		cfg:    cfg,
		sched:  sched,
		log:    logger,
		pencil: skyline.NewPencil(cfg, factory, skyline.NewRand(cfg.Seed), logger),
		mapper: NewMapper(cfg),
	}
}

// Rebuild cancels the running flip timer, regenerates and repaints the
// scene, recentres the layers and restarts the timer when animation is on.
func (d *Director) Rebuild() {
	d.Stop()

	d.mapper = NewMapper(d.cfg)
	d.pencil.Init(d.cfg.TowerCount)
	d.pencil.Draw()
	if d.cfg.Fog {
		d.pencil.DrawFog()
	}
	d.Pointer(d.mapper.Center())

	if d.cfg.Animate && d.sched != nil {
		interval := time.Duration(d.cfg.FlipInterval) * time.Millisecond
		d.flip = d.sched.Every(interval, d.Flip)
	}
	d.generation++

	d.log.Info("scene rebuilt",
		"generation", d.generation,
		"towers", len(d.pencil.Towers()),
		"layers", len(d.pencil.Layers()),
		"animate", d.flip != nil,
	)
}

// Set writes a tunable and rebuilds.
func (d *Director) Set(name string, v float64) (float64, error) {
	v, err := d.cfg.Set(name, v)
	if err != nil {
		return 0, err
	}
	d.Rebuild()
	return v, nil
}

// Nudge moves a tunable by n steps and rebuilds.
func (d *Director) Nudge(name string, n int) (float64, error) {
	v, err := d.cfg.Nudge(name, n)
	if err != nil {
		return 0, err
	}
	d.Rebuild()
	return v, nil
}

func (d *Director) SetFog(on bool) {
	d.cfg.Fog = on
	d.Rebuild()
}

func (d *Director) SetAnimate(on bool) {
	d.cfg.Animate = on
	d.Rebuild()
}

func (d *Director) SetWindowMode(mode config.WindowMode) {
	d.cfg.WindowMode = mode
	d.Rebuild()
}

// Pointer repositions every layer for a pointer at (x, y).
func (d *Director) Pointer(x, y float64) {
	d.pointerX, d.pointerY = x, y
	layers := d.pencil.Layers()
	for i, o := range d.mapper.Offsets(x, y, len(layers)) {
		layers[i].Translate(d.mapper.Position(o))
	}
}

// Flip toggles one random window and repaints its layer.
func (d *Director) Flip() {
	if d.pencil.FlipRandomWindow() != nil {
		d.flips++
	}
}

// Stop cancels the flip timer.
func (d *Director) Stop() {
	if d.flip != nil {
		d.flip.Cancel()
		d.flip = nil
	}
}

func (d *Director) Config() *config.Config        { return d.cfg }
func (d *Director) Pencil() *skyline.Pencil       { return d.pencil }
func (d *Director) Mapper() Mapper                { return d.mapper }
func (d *Director) Generation() int               { return d.generation }
func (d *Director) Flips() int                    { return d.flips }
func (d *Director) Animating() bool               { return d.flip != nil && d.flip.Active() }
func (d *Director) PointerAt() (float64, float64) { return d.pointerX, d.pointerY }
