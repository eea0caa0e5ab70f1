package export

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"os"
	"time"

	"github.com/fogleman/gg"
	"github.com/san-kum/skyline/internal/config"
	"github.com/san-kum/skyline/internal/parallax"
	"github.com/san-kum/skyline/internal/skyline"
	"github.com/san-kum/skyline/internal/surface"
)

// Sky is the backdrop behind the farthest layer.
var Sky = color.NRGBA{R: 12, G: 14, B: 32, A: 255}

type Options struct {
	PNGPath string
	SVGPath string
	// Scale of the PNG relative to the viewport.
	Scale   float64
	// Pointer position; nil leaves the layers centred.
	Pointer *[2]float64
	// Flips applied before the snapshot.
	Flips   int
}

type Result struct {
	Seed         int64
	Distribution []int
	Towers       int
	LitWindows   int
	Files        []string
	// Scene is the last scene staged.
	Scene        *skyline.Pencil
}

// Render builds the scene described by cfg and writes the requested files.
// PNG and SVG come from separate scenes sharing one seed, so they match.
func Render(cfg *config.Config, opts Options, logger *slog.Logger) (*Result, error) {
	if logger == nil {
		logger = slog.Default()
	}
	cfg = cfg.Clone()
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if opts.Scale <= 0 {
		opts.Scale = 1
	}

	res := &Result{Seed: cfg.Seed}

	if opts.PNGPath != "" {
		d := stage(cfg, surface.RasterFactory{Scale: opts.Scale}, opts, logger)
		img := ScenePNG(d.Pencil(), cfg, opts.Scale)
		if err := gg.SavePNG(opts.PNGPath, img); err != nil {
			return nil, fmt.Errorf("write png: %w", err)
		}
		res.Files = append(res.Files, opts.PNGPath)
		res.fill(d.Pencil())
		logger.Info("png written", "path", opts.PNGPath, "scale", opts.Scale)
	}

	if opts.SVGPath != "" {
		d := stage(cfg, &surface.RecorderFactory{}, opts, logger)
		doc, err := SceneToSVG(d.Pencil().Layers(), cfg.Viewport.Width, cfg.Viewport.Height, Sky)
		if err != nil {
			return nil, err
		}
		if err := os.WriteFile(opts.SVGPath, []byte(doc), 0644); err != nil {
			return nil, fmt.Errorf("write svg: %w", err)
		}
		res.Files = append(res.Files, opts.SVGPath)
		res.fill(d.Pencil())
		logger.Info("svg written", "path", opts.SVGPath, "bytes", len(doc))
	}

	return res, nil
}

// ScenePNG composites the layers of a raster-backed scene.
func ScenePNG(p *skyline.Pencil, cfg *config.Config, scale float64) image.Image {
	w := int(float64(cfg.Viewport.Width) * scale)
	h := int(float64(cfg.Viewport.Height) * scale)
	return surface.Composite(w, h, scale, Sky, p.Surfaces())
}

// stage builds a still scene: no timer, flips applied by hand.
func stage(cfg *config.Config, factory surface.Factory, opts Options, logger *slog.Logger) *parallax.Director {
	still := cfg.Clone()
	still.Animate = false
	d := parallax.NewDirector(still, factory, nil, logger)
	d.Rebuild()
	for i := 0; i < opts.Flips; i++ {
		d.Flip()
	}
	if opts.Pointer != nil {
		d.Pointer(opts.Pointer[0], opts.Pointer[1])
	}
	return d
}

func (r *Result) fill(p *skyline.Pencil) {
	r.Scene = p
	r.Distribution = p.Distribution()
	r.Towers = len(p.Towers())
	r.LitWindows = 0
	for _, t := range p.Towers() {
		r.LitWindows += t.LitCount()
	}
}
