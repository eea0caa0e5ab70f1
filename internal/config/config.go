package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultTowers       = 20
	DefaultLayers       = 4
	DefaultAmplitudeX   = 200.0
	DefaultAmplitudeY   = 40.0
	DefaultFlipInterval = 150
	DefaultWidth        = 1280
	DefaultHeight       = 720
)

var (
	ErrInvalidConfig  = errors.New("config: invalid configuration")
	ErrUnknownTunable = errors.New("config: unknown tunable")
	ErrUnknownPreset  = errors.New("config: unknown preset")
)

// WindowMode selects how window cells are lit when a tower is built.
type WindowMode string

const (
	WindowsLit    WindowMode = "lit"
	WindowsRandom WindowMode = "random"
)

type Config struct {
	TowerCount   int            `yaml:"tower_count"`
	LayerCount   int            `yaml:"layer_count"`
	AmplitudeX   float64        `yaml:"amplitude_x"`
	AmplitudeY   float64        `yaml:"amplitude_y"`
	FlipInterval int            `yaml:"flip_interval_ms"`
	WindowMode   WindowMode     `yaml:"window_mode"`
	Fog          bool           `yaml:"fog"`
	Animate      bool           `yaml:"animate"`
	Silhouette   bool           `yaml:"silhouette_layer"`
	Seed         int64          `yaml:"seed"`
	Viewport     ViewportConfig `yaml:"viewport"`
}

type ViewportConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

func DefaultConfig() *Config {
	return &Config{
		TowerCount:   DefaultTowers,
		LayerCount:   DefaultLayers,
		AmplitudeX:   DefaultAmplitudeX,
		AmplitudeY:   DefaultAmplitudeY,
		FlipInterval: DefaultFlipInterval,
		WindowMode:   WindowsRandom,
		Fog:          true,
		Animate:      true,
		Viewport: ViewportConfig{
			Width:  DefaultWidth,
			Height: DefaultHeight,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Clone returns an independent copy.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

// Validate checks the non-tunable fields and clamps the tunable ones into
// their published bounds.
func (c *Config) Validate() error {
	switch c.WindowMode {
	case WindowsLit, WindowsRandom:
	case "":
		c.WindowMode = WindowsRandom
	default:
		return fmt.Errorf("%w: window_mode %q", ErrInvalidConfig, c.WindowMode)
	}
	if c.Viewport.Width <= 0 || c.Viewport.Height <= 0 {
		return fmt.Errorf("%w: viewport %dx%d", ErrInvalidConfig, c.Viewport.Width, c.Viewport.Height)
	}
	for _, t := range Tunables {
		t.set(c, t.Clamp(t.get(c)))
	}
	return nil
}

// LayerWidth is the backing width of every layer surface.
func (c *Config) LayerWidth() float64 {
	return float64(c.Viewport.Width) + c.AmplitudeX
}

// LayerHeight is the backing height of every layer surface.
func (c *Config) LayerHeight() float64 {
	return float64(c.Viewport.Height) + c.AmplitudeY
}
