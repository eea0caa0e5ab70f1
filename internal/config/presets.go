package config

import (
	"fmt"
	"sort"
)

// Presets reproduce the successive sketches: the first one lit every window
// and had neither fog nor animation, later ones added them.
var Presets = map[string]*Config{
	"classic": {
		TowerCount: 20, LayerCount: 4, AmplitudeX: 200, AmplitudeY: 0, FlipInterval: 1000,
		WindowMode: WindowsLit, Fog: false, Animate: false,
		Viewport: ViewportConfig{Width: DefaultWidth, Height: DefaultHeight},
	},
	"fog": {
		TowerCount: 30, LayerCount: 5, AmplitudeX: 200, AmplitudeY: 0, FlipInterval: 1000,
		WindowMode: WindowsRandom, Fog: true, Animate: false,
		Viewport: ViewportConfig{Width: DefaultWidth, Height: DefaultHeight},
	},
	"animated": {
		TowerCount: 40, LayerCount: 5, AmplitudeX: 250, AmplitudeY: 40, FlipInterval: 100,
		WindowMode: WindowsRandom, Fog: true, Animate: true,
		Viewport: ViewportConfig{Width: DefaultWidth, Height: DefaultHeight},
	},
	"metropolis": {
		TowerCount: 100, LayerCount: 10, AmplitudeX: 500, AmplitudeY: 80, FlipInterval: 20,
		WindowMode: WindowsRandom, Fog: true, Animate: true, Silhouette: true,
		Viewport: ViewportConfig{Width: DefaultWidth, Height: DefaultHeight},
	},
}

// GetPreset returns a copy of the named preset.
func GetPreset(name string) (*Config, error) {
	cfg, ok := Presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPreset, name)
	}
	return cfg.Clone(), nil
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
