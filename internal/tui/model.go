package tui

import (
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/skyline/internal/config"
	"github.com/san-kum/skyline/internal/export"
	"github.com/san-kum/skyline/internal/parallax"
	"github.com/san-kum/skyline/internal/surface"
)

const (
	frameInterval = 33 * time.Millisecond
	panelWidth    = 34
)

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Model is the terminal front end: the scene drawn in half blocks next to
// the control panel. The pointer is the mouse.
type Model struct {
	cfg   *config.Config
	log   *slog.Logger
	sched *parallax.FrameScheduler
	dir   *parallax.Director

	cursor    int
	showPanel bool
	lastTick  time.Time

	width, height int
	scale         float64
}

func New(cfg *config.Config, logger *slog.Logger) Model {
	if logger == nil {
		logger = slog.Default()
	}
	m := Model{
		cfg:       cfg,
		log:       logger,
		sched:     parallax.NewFrameScheduler(),
		showPanel: true,
		width:     80,
		height:    24,
	}
	m.resize()
	return m
}

// Run starts the program on the alternate screen and blocks until quit.
func Run(cfg *config.Config, logger *slog.Logger) error {
	p := tea.NewProgram(New(cfg, logger), tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd { return tick() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil
	case tea.MouseMsg:
		if msg.Action == tea.MouseActionMotion {
			m.dir.Pointer(m.toScene(msg.X, msg.Y))
		}
		return m, nil
	case tickMsg:
		now := time.Time(msg)
		if !m.lastTick.IsZero() {
			m.sched.Advance(now.Sub(m.lastTick))
		}
		m.lastTick = now
		return m, tick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		m.dir.Stop()
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(config.Tunables)-1 {
			m.cursor++
		}
	case "left", "h", "-":
		m.nudge(-1)
	case "right", "l", "+", "=":
		m.nudge(1)
	case "r":
		m.dir.Rebuild()
	case "f":
		m.dir.SetFog(!m.cfg.Fog)
	case "a":
		m.dir.SetAnimate(!m.cfg.Animate)
	case "w":
		mode := config.WindowsLit
		if m.cfg.WindowMode == config.WindowsLit {
			mode = config.WindowsRandom
		}
		m.dir.SetWindowMode(mode)
	case "s":
		m.dir.Flip()
	case "p":
		m.showPanel = !m.showPanel
		m.resize()
	}
	return m, nil
}

func (m *Model) nudge(n int) {
	name := config.Tunables[m.cursor].Name
	if _, err := m.dir.Nudge(name, n); err != nil {
		m.log.Warn("nudge failed", "tunable", name, "err", err)
	}
}

// resize fits the viewport into the free cells and rebuilds the scene with
// rasters at the matching scale.
func (m *Model) resize() {
	cols, rows := m.sceneCells()
	vw, vh := float64(m.cfg.Viewport.Width), float64(m.cfg.Viewport.Height)
	m.scale = math.Min(float64(cols)/vw, float64(2*rows)/vh)
	if m.scale <= 0 || math.IsNaN(m.scale) {
		m.scale = 1 / vw
	}

	if m.dir != nil {
		m.dir.Stop()
	}
	m.dir = parallax.NewDirector(m.cfg, surface.RasterFactory{Scale: m.scale}, m.sched, m.log)
	m.dir.Rebuild()
	m.log.Debug("terminal scene resized", "cols", cols, "rows", rows, "scale", m.scale)
}

func (m Model) sceneCells() (int, int) {
	cols := m.width
	if m.showPanel {
		cols -= panelWidth
	}
	return max(1, cols), max(1, m.height-1)
}

func (m Model) toScene(col, row int) (float64, float64) {
	return float64(col) / m.scale, float64(2*row) / m.scale
}

func (m Model) View() string {
	scene := halfBlocks(export.ScenePNG(m.dir.Pencil(), m.cfg, m.scale))
	help := subtle.Render("↑↓ select  ←→ adjust  r rebuild  f fog  a animate  w windows  p panel  q quit")
	if !m.showPanel {
		return scene + "\n" + help
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, scene, m.viewPanel()) + "\n" + help
}

func (m Model) viewPanel() string {
	var b strings.Builder
	b.WriteString(title.Render("skyline") + "\n\n")

	for i, t := range config.Tunables {
		line := fmt.Sprintf("%-18s %s", t.Label, value.Render(fmt.Sprintf("%g", t.Value(m.cfg))))
		if i == m.cursor {
			b.WriteString(selected.Render("▸ ") + line + "\n")
		} else {
			b.WriteString("  " + label.Render(line) + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %-18s %s\n", "fog", toggle(m.cfg.Fog)))
	b.WriteString(fmt.Sprintf("  %-18s %s\n", "animate", toggle(m.dir.Animating())))
	b.WriteString(fmt.Sprintf("  %-18s %s\n", "windows", value.Render(string(m.cfg.WindowMode))))

	p := m.dir.Pencil()
	lit, total := 0, 0
	for _, t := range p.Towers() {
		lit += t.LitCount()
		total += t.NbWindowsX() * t.NbWindowsY()
	}
	ratio := 0.0
	if total > 0 {
		ratio = float64(lit) / float64(total)
	}

	b.WriteString("\n")
	b.WriteString(label.Render("  layers  ") + sparkline(p.Distribution()) + "\n")
	b.WriteString(label.Render("  lit     ") + bar(ratio, 16) + "\n")
	b.WriteString(label.Render(fmt.Sprintf("  gen %d  flips %d", m.dir.Generation(), m.dir.Flips())))

	return panel.Width(panelWidth - 4).Render(b.String())
}
