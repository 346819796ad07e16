package css

import (
	"fmt"
	"strings"

	"github.com/gogpu/gradient"
)

// ColorStop is a button colour and its relative weight.
type ColorStop struct {
	Color  gradient.RGBA `json:"color"`
	Weight int           `json:"weight"`
}

// ButtonGradientConfig describes a gradient button.
type ButtonGradientConfig struct {
	Colors     []ColorStop   `json:"colors"`
	Angle      float64       `json:"angle"` // engine degrees, 0 = left to right
	Radius     int           `json:"radius"`
	PaddingX   int           `json:"paddingX"`
	PaddingY   int           `json:"paddingY"`
	FontWeight int           `json:"fontWeight"`
	TextColor  gradient.RGBA `json:"textColor"`

	// HoverOpacity is the opacity of the white overlay shown on hover.
	HoverOpacity float64 `json:"hoverOpacity"`
	Shadow       bool    `json:"shadow"`
}

// DefaultButton returns a three-colour pill button.
func DefaultButton() ButtonGradientConfig {
	return ButtonGradientConfig{
		Colors: []ColorStop{
			{gradient.MustParseColor("#6366f1"), 40},
			{gradient.MustParseColor("#ec4899"), 35},
			{gradient.MustParseColor("#f59e0b"), 25},
		},
		Radius:       9999,
		PaddingX:     28,
		PaddingY:     14,
		FontWeight:   600,
		TextColor:    gradient.White,
		HoverOpacity: 0.15,
		Shadow:       true,
	}
}

// ButtonStops places each colour at the centre of its weighted segment,
// pinning the first to 0% and the last to 100%.
func ButtonStops(b ButtonGradientConfig) []Stop {
	total := 0
	for _, c := range b.Colors {
		total += max(c.Weight, 0)
	}
	stops := make([]Stop, len(b.Colors))
	acc := 0.0
	for i, c := range b.Colors {
		w := float64(max(c.Weight, 0))
		pos := 0.0
		if total > 0 {
			pos = (acc + w/2) / float64(total) * 100
		} else if len(b.Colors) > 1 {
			pos = float64(i) / float64(len(b.Colors)-1) * 100
		}
		acc += w
		stops[i] = Stop{c.Color, pos}
	}
	if n := len(stops); n > 0 {
		stops[0].Pos = 0
		if n > 1 {
			stops[n-1].Pos = 100
		}
	}
	return stops
}

// ButtonRule returns a complete rule block for selector: the gradient
// button itself, an overlay pseudo-element, and the hover state that fades
// the overlay in.
func ButtonRule(selector string, b ButtonGradientConfig) string {
	var sb strings.Builder
	background := "linear-gradient(" + num(cssAngle(b.Angle)) + "deg, " + joinStops(ButtonStops(b)) + ")"

	fmt.Fprintf(&sb, "%s {\n", selector)
	sb.WriteString("  position: relative;\n")
	sb.WriteString("  display: inline-block;\n")
	sb.WriteString("  overflow: hidden;\n")
	fmt.Fprintf(&sb, "  padding: %dpx %dpx;\n", b.PaddingY, b.PaddingX)
	sb.WriteString("  border: none;\n")
	fmt.Fprintf(&sb, "  border-radius: %dpx;\n", b.Radius)
	fmt.Fprintf(&sb, "  color: %s;\n", b.TextColor.Hex())
	if b.FontWeight > 0 {
		fmt.Fprintf(&sb, "  font-weight: %d;\n", b.FontWeight)
	}
	fmt.Fprintf(&sb, "  background: %s;\n", background)
	if b.Shadow && len(b.Colors) > 0 {
		fmt.Fprintf(&sb, "  box-shadow: 0 4px 14px %s;\n", rgba(b.Colors[0].Color, 0.35))
	}
	sb.WriteString("  cursor: pointer;\n")
	sb.WriteString("  transition: transform 0.15s ease, box-shadow 0.15s ease;\n")
	sb.WriteString("}\n")

	fmt.Fprintf(&sb, "%s::after {\n", selector)
	sb.WriteString("  content: \"\";\n")
	sb.WriteString("  position: absolute;\n")
	sb.WriteString("  inset: 0;\n")
	sb.WriteString("  background: #ffffff;\n")
	sb.WriteString("  opacity: 0;\n")
	sb.WriteString("  transition: opacity 0.15s ease;\n")
	sb.WriteString("  pointer-events: none;\n")
	sb.WriteString("}\n")

	fmt.Fprintf(&sb, "%s:hover::after {\n", selector)
	fmt.Fprintf(&sb, "  opacity: %s;\n", num(b.HoverOpacity))
	sb.WriteString("}\n")
	return sb.String()
}

// BannerConfig describes a banner backed by a gradient.
type BannerConfig struct {
	Gradient gradient.GradientConfig `json:"gradient"`
	Radius   int                     `json:"radius"`
	Padding  int                     `json:"padding"`
}

// BannerRule returns a rule block sizing selector to the gradient's aspect
// ratio and painting it with the CSS equivalent of the gradient.
func BannerRule(selector string, b BannerConfig) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s {\n", selector)
	if ratio := b.Gradient.AspectRatio; ratio != gradient.AspectFree {
		fmt.Fprintf(&sb, "  aspect-ratio: %s;\n", strings.Replace(ratio.String(), ":", " / ", 1))
	}
	fmt.Fprintf(&sb, "  border-radius: %dpx;\n", b.Radius)
	fmt.Fprintf(&sb, "  padding: %dpx;\n", b.Padding)
	fmt.Fprintf(&sb, "  background: %s;\n", Gradient(b.Gradient))
	fmt.Fprintf(&sb, "  color: %s;\n", textColor(b.Gradient.Base()))
	sb.WriteString("}\n")
	return sb.String()
}

// textColor picks black or white text for legibility on base.
func textColor(base gradient.RGBA) string {
	if base.Luminance() > 0.4 {
		return "#000000"
	}
	return "#ffffff"
}
