// Package color provides the transfer functions the gradient engine blends
// through.
//
// Palette colours are authored in sRGB (hex strings from a brand sheet), but
// mixing two sRGB values directly darkens the midpoint and shifts hue. The
// mixer therefore decodes every colour to linear light, blends there, and
// encodes the result back to sRGB before dithering.
package color

// RGB is a colour with float64 components in [0,1].
// The colour space is indicated by context.
type RGB struct {
	R, G, B float64
}

// Lerp interpolates component-wise between a and b.
// t is not clamped.
func Lerp(a, b RGB, t float64) RGB {
	return RGB{
		R: a.R + (b.R-a.R)*t,
		G: a.G + (b.G-a.G)*t,
		B: a.B + (b.B-a.B)*t,
	}
}

// Clamp restricts every component to [0,1].
func (c RGB) Clamp() RGB {
	return RGB{R: clamp01(c.R), G: clamp01(c.G), B: clamp01(c.B)}
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
