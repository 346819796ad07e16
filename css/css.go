// Package css exports gradient palettes as CSS.
//
// Every function is a pure string builder: the same input always yields
// byte-identical output, so exported CSS can be diffed and cached.
package css

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/gogpu/gradient"
)

// Stop is one colour stop. Pos is a percentage in [0, 100].
type Stop struct {
	Color gradient.RGBA
	Pos   float64
}

func (s Stop) String() string {
	return s.Color.Hex() + " " + num(s.Pos) + "%"
}

// Stops maps the weight vector of cfg to colour bands in order base,
// colour1..colour4, each spanning its weight. Blur pulls each band's edges
// toward its centre, so adjacent colours fade into each other; at full blur
// each colour is a single stop. Colours with zero weight are skipped.
func Stops(cfg gradient.GradientConfig) []Stop {
	palette, _ := cfg.Palette()
	w := cfg.Weights.Weights()
	blur := math.Min(math.Max(cfg.Blur, 0), 100) / 100

	stops := make([]Stop, 0, 2*len(w))
	start := 0.0
	for i, weight := range w {
		if weight <= 0 {
			continue
		}
		end := start + float64(weight)
		inset := float64(weight) * blur / 2
		a, b := start+inset, end-inset
		if start == 0 {
			a = 0
		}
		if end == gradient.Total {
			b = gradient.Total
		}
		stops = append(stops, Stop{palette[i], a})
		if b > a {
			stops = append(stops, Stop{palette[i], b})
		}
		start = end
	}
	return stops
}

// LinearGradient returns a linear-gradient() along cfg.Angle. The engine's
// 0° runs left to right, which CSS calls 90deg.
func LinearGradient(cfg gradient.GradientConfig) string {
	return "linear-gradient(" + num(cssAngle(cfg.Angle)) + "deg, " + joinStops(Stops(cfg)) + ")"
}

// RadialGradient returns a circular radial-gradient() centred on the
// config's offset.
func RadialGradient(cfg gradient.GradientConfig) string {
	return "radial-gradient(circle at " + center(cfg) + ", " + joinStops(Stops(cfg)) + ")"
}

// ConicGradient returns a conic-gradient() starting at cfg.StartAngle.
func ConicGradient(cfg gradient.GradientConfig) string {
	return "conic-gradient(from " + num(cssAngle(cfg.StartAngle)) + "deg at " + center(cfg) + ", " +
		joinStops(Stops(cfg)) + ")"
}

// Gradient picks the CSS function closest to the config's mode: conic for
// conic and spiral, radial for sphere and radial plane, linear otherwise.
func Gradient(cfg gradient.GradientConfig) string {
	switch {
	case cfg.Mode == gradient.ModeConic || cfg.Mode == gradient.ModeSpiral:
		return ConicGradient(cfg)
	case cfg.Mode == gradient.ModeSphere || (cfg.Mode == gradient.ModePlane && cfg.Radial):
		return RadialGradient(cfg)
	default:
		return LinearGradient(cfg)
	}
}

func joinStops(stops []Stop) string {
	parts := make([]string, len(stops))
	for i, s := range stops {
		parts[i] = s.String()
	}
	return strings.Join(parts, ", ")
}

func center(cfg gradient.GradientConfig) string {
	return num(50+cfg.Offset.X*100) + "% " + num(50+cfg.Offset.Y*100) + "%"
}

// cssAngle converts an engine angle (0° = rightward) to CSS (0deg = upward).
func cssAngle(deg float64) float64 {
	a := math.Mod(deg+90, 360)
	if a < 0 {
		a += 360
	}
	return a
}

// num formats v with at most two decimals and no trailing zeros.
func num(v float64) string {
	v = math.Round(v*100) / 100
	if v == 0 {
		v = 0 // drop negative zero
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// rgba formats a colour with an explicit alpha.
func rgba(c gradient.RGBA, alpha float64) string {
	n := c.Color()
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", n.R, n.G, n.B, num(alpha))
}
