package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/skyline/internal/config"
	"github.com/san-kum/skyline/internal/export"
	"github.com/san-kum/skyline/internal/gui"
	"github.com/san-kum/skyline/internal/skyline"
	"github.com/san-kum/skyline/internal/storage"
	"github.com/san-kum/skyline/internal/surface"
	"github.com/san-kum/skyline/internal/tui"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	dataDir    string
	configFile string
	preset     string
	seed       int64
	verbose    bool
	overrides  []string

	pngPath  string
	svgPath  string
	scale    float64
	pointerX float64
	pointerY float64
	flips    int
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "skyline",
		Short:         "procedural city skyline with parallax layers",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runGUI,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".skyline", "data directory")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "start from a preset")
	pf.Int64Var(&seed, "seed", 0, "random seed (0 seeds from the clock)")
	pf.BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	pf.StringArrayVar(&overrides, "set", nil, "set a tunable, e.g. --set towers=40")

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "open the skyline window",
		RunE:  runGUI,
	}

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "draw the skyline in the terminal",
		RunE:  runTUI,
	}

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "export the scene to png and/or svg",
		RunE:  runRender,
	}
	renderCmd.Flags().StringVar(&pngPath, "png", "", "png output path")
	renderCmd.Flags().StringVar(&svgPath, "svg", "", "svg output path")
	renderCmd.Flags().Float64Var(&scale, "scale", 1, "png scale")
	renderCmd.Flags().Float64Var(&pointerX, "pointer-x", 0, "pointer x in viewport pixels")
	renderCmd.Flags().Float64Var(&pointerY, "pointer-y", 0, "pointer y in viewport pixels")
	renderCmd.Flags().IntVar(&flips, "flips", 0, "window flips before the snapshot")

	statsCmd := &cobra.Command{
		Use:   "stats [render_id]",
		Short: "layer distribution and tower plots",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runStats,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list renders",
		RunE:  listRenders,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list presets",
		Run: func(cmd *cobra.Command, args []string) {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tTOWERS\tLAYERS\tWINDOWS\tFOG\tANIMATE\tSILHOUETTE")
			for _, name := range config.ListPresets() {
				p := config.Presets[name]
				fmt.Fprintf(w, "%s\t%d\t%d\t%s\t%t\t%t\t%t\n",
					name, p.TowerCount, p.LayerCount, p.WindowMode, p.Fog, p.Animate, p.Silhouette)
			}
			w.Flush()
		},
	}

	configCmd := &cobra.Command{
		Use:   "config [path]",
		Short: "write the effective config as yaml",
		Args:  cobra.MaximumNArgs(1),
		RunE:  writeConfig,
	}

	rootCmd.AddCommand(guiCmd, tuiCmd, renderCmd, statsCmd, listCmd, presetsCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newLogger(w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// loadConfig layers defaults, preset, config file and flags, in that order.
func loadConfig() (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p, err := config.GetPreset(preset)
		if err != nil {
			return nil, fmt.Errorf("%w (available: %v)", err, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if seed != 0 {
		cfg.Seed = seed
	}

	for _, kv := range overrides {
		name, raw, ok := strings.Cut(kv, "=")
		if !ok {
			return nil, fmt.Errorf("bad --set %q: want name=value", kv)
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("bad --set %q: %w", kv, err)
		}
		if _, err := cfg.Set(name, v); err != nil {
			return nil, err
		}
	}

	return cfg, cfg.Validate()
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return err
	}
	gui.Run(cfg, gui.Options{SnapshotDir: dataDir}, newLogger(os.Stderr))
	return nil
}

// The terminal belongs to the TUI, so logs go to a file under the data
// directory when verbose and nowhere otherwise.
func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if verbose {
		if err := os.MkdirAll(dataDir, 0755); err != nil {
			return err
		}
		f, err := tea.LogToFile(filepath.Join(dataDir, "tui.log"), "skyline")
		if err != nil {
			return err
		}
		defer f.Close()
		logger = newLogger(f)
	}

	return tui.Run(cfg, logger)
}

func runRender(cmd *cobra.Command, args []string) error {
	if pngPath == "" && svgPath == "" {
		return fmt.Errorf("nothing to render: pass --png and/or --svg")
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	opts := export.Options{
		PNGPath: pngPath,
		SVGPath: svgPath,
		Scale:   scale,
		Flips:   flips,
	}
	if cmd.Flags().Changed("pointer-x") || cmd.Flags().Changed("pointer-y") {
		px, py := float64(cfg.Viewport.Width)/2, float64(cfg.Viewport.Height)/2
		if cmd.Flags().Changed("pointer-x") {
			px = pointerX
		}
		if cmd.Flags().Changed("pointer-y") {
			py = pointerY
		}
		opts.Pointer = &[2]float64{px, py}
	}

	res, err := export.Render(cfg, opts, newLogger(os.Stderr))
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	cfg.Seed = res.Seed
	id, err := st.Save(storage.RenderRecord{
		Seed:         res.Seed,
		Config:       *cfg,
		Distribution: res.Distribution,
		Towers:       res.Towers,
		LitWindows:   res.LitWindows,
		Files:        res.Files,
	}, storage.RowsFromTowers(res.Scene.Towers()))
	if err != nil {
		return err
	}

	fmt.Printf("render id: %s\n", id)
	fmt.Printf("seed: %d\n", res.Seed)
	fmt.Printf("towers: %d  lit windows: %d\n", res.Towers, res.LitWindows)
	for _, f := range res.Files {
		fmt.Printf("  wrote %s\n", f)
	}
	return nil
}

func runStats(cmd *cobra.Command, args []string) error {
	var rows []storage.TowerRow
	var layers int
	var source string

	if len(args) == 1 {
		st := storage.New(dataDir)
		rec, err := st.Load(args[0])
		if err != nil {
			return err
		}
		rows, err = st.LoadTowers(args[0])
		if err != nil {
			return err
		}
		layers = len(rec.Distribution)
		source = fmt.Sprintf("render %s (seed %d)", rec.ID, rec.Seed)
	} else {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		p := skyline.NewPencil(cfg, &surface.RecorderFactory{}, nil, newLogger(os.Stderr))
		p.Init(cfg.TowerCount)
		rows = storage.RowsFromTowers(p.Towers())
		layers = len(p.TowerLayers())
		source = fmt.Sprintf("generated scene (%d towers)", len(rows))
	}

	if len(rows) == 0 {
		return fmt.Errorf("no towers")
	}

	fmt.Printf("%s\n\n", source)
	printDistribution(rows, layers)

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Layer < rows[j].Layer })
	heights := make([]float64, len(rows))
	lit := make([]float64, len(rows))
	for i, r := range rows {
		heights[i] = r.H
		if n := r.WindowsX * r.WindowsY; n > 0 {
			lit[i] = float64(r.Lit) / float64(n)
		}
	}

	fmt.Println()
	fmt.Println(asciigraph.Plot(heights,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("tower height, back to front"),
	))
	fmt.Println()
	fmt.Println(asciigraph.Plot(lit,
		asciigraph.Height(6),
		asciigraph.Width(80),
		asciigraph.Precision(2),
		asciigraph.Caption("lit window ratio"),
	))
	return nil
}

func printDistribution(rows []storage.TowerRow, layers int) {
	count := make([]int, layers)
	height := make([]float64, layers)
	lit := make([]int, layers)
	windows := make([]int, layers)
	for _, r := range rows {
		if r.Layer < 0 || r.Layer >= layers {
			continue
		}
		count[r.Layer]++
		height[r.Layer] += r.H
		lit[r.Layer] += r.Lit
		windows[r.Layer] += r.WindowsX * r.WindowsY
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "LAYER\tTOWERS\tAVG HEIGHT\tWINDOWS\tLIT")
	for i := 0; i < layers; i++ {
		avg, ratio := 0.0, 0.0
		if count[i] > 0 {
			avg = height[i] / float64(count[i])
		}
		if windows[i] > 0 {
			ratio = float64(lit[i]) / float64(windows[i])
		}
		fmt.Fprintf(w, "%d\t%d\t%.1f\t%d\t%.0f%%\n", i, count[i], avg, windows[i], ratio*100)
	}
	w.Flush()
}

func listRenders(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	recs, err := st.List()
	if err != nil {
		return err
	}

	if len(recs) == 0 {
		fmt.Println("no renders found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tSEED\tTOWERS\tLAYERS\tLIT\tFILES")
	for _, r := range recs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%v\t%d\t%s\n",
			r.ID,
			r.Timestamp.Format("2006-01-02 15:04:05"),
			r.Seed,
			r.Towers,
			r.Distribution,
			r.LitWindows,
			strings.Join(r.Files, ","),
		)
	}
	return w.Flush()
}

func writeConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if len(args) == 1 {
		if err := config.Save(args[0], cfg); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", args[0])
		return nil
	}
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(out)
	return err
}
