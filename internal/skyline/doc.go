// Package skyline generates and paints a procedural city skyline.
//
// A scene is a stack of [Layer] values, back to front. Even layers carry
// [Tower] silhouettes, odd layers carry a [Fog] gradient, and an optional
// trailing layer is reserved for silhouettes:
//
//   - [Rand]: uniform sampling between two bounds, order independent
//   - [Layer]: one drawing surface, viewport plus parallax margins
//   - [Tower]: a bottom-anchored rectangle with a grid of lit/unlit windows
//   - [Fog]: a vertical white gradient, denser toward the ground
//   - [Pencil]: builds the scene, paints it, flips random windows
//
// # Example
//
//	cfg := config.DefaultConfig()
//	p := skyline.NewPencil(cfg, surface.RasterFactory{Scale: 1}, skyline.NewRand(cfg.Seed), nil)
//	p.Init(cfg.TowerCount)
//	p.Draw()
//	p.DrawFog()
//
// # Thread Safety
//
// Nothing here is safe for concurrent use. Front ends drive a Pencil from a
// single event loop.
package skyline
