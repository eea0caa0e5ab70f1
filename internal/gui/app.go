package gui

import (
	"fmt"
	"log/slog"
	"math"
	"path/filepath"
	"time"

	"github.com/fogleman/gg"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/skyline/internal/config"
	"github.com/san-kum/skyline/internal/export"
	"github.com/san-kum/skyline/internal/parallax"
	"github.com/san-kum/skyline/internal/surface"
)

var (
	ColSky     = rl.NewColor(12, 14, 32, 255)
	ColPanel   = rl.NewColor(0, 0, 0, 160)
	ColSelect  = rl.NewColor(255, 255, 255, 255)
	ColText    = rl.NewColor(170, 170, 180, 255)
	ColTextDim = rl.NewColor(90, 90, 100, 255)
	ColOn      = rl.NewColor(0, 255, 136, 255)
)

type Options struct {
	// SnapshotDir receives PNGs saved with the E key.
	SnapshotDir string
}

type layerTexture struct {
	tex  rl.Texture2D
	rev  uint64
	w, h int
}

type App struct {
	cfg   *config.Config
	opts  Options
	log   *slog.Logger
	sched *parallax.FrameScheduler
	dir   *parallax.Director
	font  rl.Font

	textures   map[*surface.Raster]*layerTexture
	generation int
	cursor     int
	showPanel  bool
	status     string
}

func initWindow(cfg *config.Config) {
	rl.SetConfigFlags(rl.FlagMsaa4xHint)
	rl.InitWindow(int32(cfg.Viewport.Width), int32(cfg.Viewport.Height), "skyline")
	rl.SetTargetFPS(60)
	rl.SetExitKey(0)
}

// loadFont falls back to raylib's built-in font when the system font is missing.
func loadFont() rl.Font {
	font := rl.LoadFontEx("/usr/share/fonts/liberation/LiberationMono-Regular.ttf", 32, nil, 0)
	if font.Texture.ID == 0 {
		return rl.GetFontDefault()
	}
	rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
	return font
}

func NewApp(cfg *config.Config, opts Options, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.Default()
	}
	sched := parallax.NewFrameScheduler()
	a := &App{
		cfg:       cfg,
		opts:      opts,
		log:       logger,
		sched:     sched,
		dir:       parallax.NewDirector(cfg, surface.RasterFactory{Scale: 1}, sched, logger),
		font:      loadFont(),
		textures:  make(map[*surface.Raster]*layerTexture),
		showPanel: true,
	}
	a.dir.Rebuild()
	return a
}

// Run opens the window and blocks until it is closed.
func Run(cfg *config.Config, opts Options, logger *slog.Logger) {
	initWindow(cfg)
	defer rl.CloseWindow()
	app := NewApp(cfg, opts, logger)
	defer app.unloadTextures()
	app.RunLoop()
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		if !a.Update() {
			return
		}
		a.Draw()
	}
}

// Update handles input and advances the flip timer. It reports false once
// the user quits.
func (a *App) Update() bool {
	if rl.IsKeyPressed(rl.KeyQ) || rl.IsKeyPressed(rl.KeyEscape) {
		a.dir.Stop()
		return false
	}

	if d := rl.GetMouseDelta(); d.X != 0 || d.Y != 0 {
		p := rl.GetMousePosition()
		a.dir.Pointer(float64(p.X), float64(p.Y))
	}

	switch {
	case rl.IsKeyPressed(rl.KeyUp) || rl.IsKeyPressed(rl.KeyK):
		a.cursor = max(0, a.cursor-1)
	case rl.IsKeyPressed(rl.KeyDown) || rl.IsKeyPressed(rl.KeyJ):
		a.cursor = min(len(config.Tunables)-1, a.cursor+1)
	case rl.IsKeyPressed(rl.KeyLeft) || rl.IsKeyPressed(rl.KeyH):
		a.nudge(-1)
	case rl.IsKeyPressed(rl.KeyRight) || rl.IsKeyPressed(rl.KeyL):
		a.nudge(1)
	case rl.IsKeyPressed(rl.KeyR):
		a.dir.Rebuild()
	case rl.IsKeyPressed(rl.KeyF):
		a.dir.SetFog(!a.cfg.Fog)
	case rl.IsKeyPressed(rl.KeyA):
		a.dir.SetAnimate(!a.cfg.Animate)
	case rl.IsKeyPressed(rl.KeyW):
		if a.cfg.WindowMode == config.WindowsLit {
			a.dir.SetWindowMode(config.WindowsRandom)
		} else {
			a.dir.SetWindowMode(config.WindowsLit)
		}
	case rl.IsKeyPressed(rl.KeyP):
		a.showPanel = !a.showPanel
	case rl.IsKeyPressed(rl.KeyE):
		a.snapshot()
	}

	dt := time.Duration(float64(rl.GetFrameTime()) * float64(time.Second))
	a.sched.Advance(dt)
	a.syncTextures()
	return true
}

func (a *App) nudge(n int) {
	name := config.Tunables[a.cursor].Name
	if _, err := a.dir.Nudge(name, n); err != nil {
		a.log.Warn("nudge failed", "tunable", name, "err", err)
	}
}

func (a *App) snapshot() {
	path := filepath.Join(a.opts.SnapshotDir, fmt.Sprintf("skyline_%d.png", time.Now().Unix()))
	img := export.ScenePNG(a.dir.Pencil(), a.cfg, 1)
	if err := gg.SavePNG(path, img); err != nil {
		a.status = "snapshot failed"
		a.log.Error("snapshot failed", "path", path, "err", err)
		return
	}
	a.status = "saved " + filepath.Base(path)
	a.log.Info("snapshot saved", "path", path)
}

// syncTextures uploads layer rasters whose pixels changed since the last
// frame. A rebuild releases every raster, so all textures go with it.
func (a *App) syncTextures() {
	if g := a.dir.Generation(); g != a.generation {
		a.unloadTextures()
		a.generation = g
	}

	for _, s := range a.dir.Pencil().Surfaces() {
		r, ok := s.(*surface.Raster)
		if !ok || r.Image() == nil {
			continue
		}
		img := r.Image()
		w, h := img.Bounds().Dx(), img.Bounds().Dy()

		lt, ok := a.textures[r]
		if !ok || lt.w != w || lt.h != h {
			if ok {
				rl.UnloadTexture(lt.tex)
			}
			blank := rl.GenImageColor(w, h, rl.Blank)
			lt = &layerTexture{tex: rl.LoadTextureFromImage(blank), w: w, h: h, rev: math.MaxUint64}
			rl.UnloadImage(blank)
			a.textures[r] = lt
		}
		if lt.rev != r.Revision() {
			rl.UpdateTexture(lt.tex, surface.StraightPixels(img))
			lt.rev = r.Revision()
		}
	}
}

func (a *App) unloadTextures() {
	for r, lt := range a.textures {
		rl.UnloadTexture(lt.tex)
		delete(a.textures, r)
	}
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColSky)

	for _, s := range a.dir.Pencil().Surfaces() {
		r, ok := s.(*surface.Raster)
		if !ok {
			continue
		}
		lt, ok := a.textures[r]
		if !ok {
			continue
		}
		x, y := r.Position()
		rl.DrawTexture(lt.tex, int32(math.Round(x)), int32(math.Round(y)), rl.White)
	}

	if a.showPanel {
		a.drawPanel()
	}
	rl.EndDrawing()
}

func (a *App) drawPanel() {
	rl.DrawRectangle(20, 20, 330, 300, ColPanel)
	a.drawText("skyline", 36, 32, 24, ColSelect)

	y := 72
	for i, t := range config.Tunables {
		line := fmt.Sprintf("%-18s %g", t.Label, t.Value(a.cfg))
		if i == a.cursor {
			a.drawText("> "+line, 36, y, 16, ColSelect)
		} else {
			a.drawText("  "+line, 36, y, 16, ColText)
		}
		y += 22
	}

	y += 10
	a.drawToggle("fog", a.cfg.Fog, y)
	a.drawToggle("animate", a.dir.Animating(), y+22)
	a.drawText(fmt.Sprintf("  %-18s %s", "windows", a.cfg.WindowMode), 36, y+44, 16, ColText)

	a.drawText(fmt.Sprintf("gen %d  flips %d  %d FPS", a.dir.Generation(), a.dir.Flips(), rl.GetFPS()), 36, y+76, 14, ColTextDim)
	if a.status != "" {
		a.drawText(a.status, 36, y+96, 14, ColTextDim)
	}

	h := a.cfg.Viewport.Height
	a.drawText("ARROWS: ADJUST  R: REBUILD  F: FOG  A: ANIMATE  W: WINDOWS  P: PANEL  E: SNAPSHOT  Q: QUIT", 20, h-30, 14, ColTextDim)
}

func (a *App) drawToggle(name string, v bool, y int) {
	state, col := "off", ColTextDim
	if v {
		state, col = "on", ColOn
	}
	a.drawText(fmt.Sprintf("  %-18s", name), 36, y, 16, ColText)
	a.drawText(state, 220, y, 16, col)
}

func (a *App) drawText(text string, x, y int, size int, color rl.Color) {
	rl.DrawTextEx(a.font, text, rl.NewVector2(float32(x), float32(y)), float32(size), 1, color)
}
