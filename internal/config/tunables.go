package config

import (
	"fmt"
	"math"
)

// Tunable describes one live-editable parameter and its bounds.
type Tunable struct {
	Name  string
	Label string
	Min   float64
	Max   float64
	Step  float64

	get func(*Config) float64
	set func(*Config, float64)
}

// Tunables is the control panel, in display order.
var Tunables = []Tunable{
	{
		Name: "towers", Label: "towers", Min: 2, Max: 100, Step: 1,
		get: func(c *Config) float64 { return float64(c.TowerCount) },
		set: func(c *Config, v float64) { c.TowerCount = int(v) },
	},
	{
		Name: "layers", Label: "layers", Min: 2, Max: 10, Step: 1,
		get: func(c *Config) float64 { return float64(c.LayerCount) },
		set: func(c *Config, v float64) { c.LayerCount = int(v) },
	},
	{
		Name: "amplitude_x", Label: "amplitude x", Min: 0, Max: 500, Step: 10,
		get: func(c *Config) float64 { return c.AmplitudeX },
		set: func(c *Config, v float64) { c.AmplitudeX = v },
	},
	{
		Name: "amplitude_y", Label: "amplitude y", Min: 0, Max: 500, Step: 10,
		get: func(c *Config) float64 { return c.AmplitudeY },
		set: func(c *Config, v float64) { c.AmplitudeY = v },
	},
	{
		Name: "flip_interval", Label: "flip interval (ms)", Min: 1, Max: 10000, Step: 1,
		get: func(c *Config) float64 { return float64(c.FlipInterval) },
		set: func(c *Config, v float64) { c.FlipInterval = int(v) },
	},
}

// Clamp bounds v to [Min, Max] and snaps it onto the step grid anchored at Min.
func (t Tunable) Clamp(v float64) float64 {
	if math.IsNaN(v) {
		return t.Min
	}
	if t.Step > 0 {
		v = t.Min + math.Round((v-t.Min)/t.Step)*t.Step
	}
	return math.Max(t.Min, math.Min(t.Max, v))
}

// Value reads the tunable from c.
func (t Tunable) Value(c *Config) float64 { return t.get(c) }

// LookupTunable finds a tunable by name.
func LookupTunable(name string) (Tunable, bool) {
	for _, t := range Tunables {
		if t.Name == name {
			return t, true
		}
	}
	return Tunable{}, false
}

// Set writes a tunable through its bounds and returns the stored value.
func (c *Config) Set(name string, v float64) (float64, error) {
	t, ok := LookupTunable(name)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownTunable, name)
	}
	v = t.Clamp(v)
	t.set(c, v)
	return v, nil
}

// Get reads a tunable by name.
func (c *Config) Get(name string) (float64, error) {
	t, ok := LookupTunable(name)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownTunable, name)
	}
	return t.get(c), nil
}

// Nudge moves a tunable by n steps.
func (c *Config) Nudge(name string, n int) (float64, error) {
	t, ok := LookupTunable(name)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownTunable, name)
	}
	return c.Set(name, t.get(c)+float64(n)*t.Step)
}
