// Package gradient renders procedural, animated gradients for backgrounds,
// banners and buttons.
//
// # Overview
//
// A gradient is described by a [GradientConfig]: a mode, a theme-derived
// base colour, three or four foreground colours, an integer weight per
// colour, and a set of shape parameters. The engine turns a config and a
// time into pixels:
//
//	field (per mode) → blend factors (per strategy) → linear-light mix
//	→ sRGB encode → ordered dither → film grain
//
// # Quick Start
//
//	cfg := gradient.DefaultConfig()
//	cfg.Mode = gradient.ModeWater
//	cfg.SetBaseWeight(40)
//
//	r, err := gradient.NewRenderer(1280, 720)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Close()
//
//	if err := r.Render(cfg, 2.5); err != nil {
//	    log.Fatal(err)
//	}
//	img := r.Snapshot()
//
// # Weights
//
// Weights are integer percentages that always sum to 100. The base weight
// w0 never drops below 30, and each foreground colour keeps at least 5
// whenever the remaining share allows it. For monotone modes (plane) the
// fraction of the frame a colour covers equals its weight. See [Allocator].
//
// # Modes
//
// Plane and sphere blend with weighted segments; water, conic, spiral and
// waves use layered masking; mesh composites point lights. See
// [StrategyFor].
//
// # Coordinate System
//
//   - Samples are taken at pixel centres, mapped to the unit square
//   - Origin (0,0) at top-left, Y increases down
//   - Angles in degrees, 0 points right, increases clockwise on screen
//
// # Sub-packages
//
//   - store: configuration snapshots, undo/redo, presets
//   - css: CSS export of the palette
//   - shader: the same engine as a WGSL fragment program
//   - capture: PNG export and frame sequences
//   - integration/gradcanvas: presentation through gogpu textures
package gradient
