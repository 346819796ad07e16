package gradient

import icolor "github.com/gogpu/gradient/internal/color"

// Shade computes the display colour of pixel (x, y) in a w×h frame at time
// t. It evaluates the mode's field at the pixel centre, mixes the palette
// in linear light, encodes to sRGB, then applies ordered dither and film
// grain. Shade is pure: equal inputs give equal output.
func Shade(p Params, x, y, w, h int, t float64) RGBA {
	return fromRGB(shade(p, x, y, w, h, t))
}

func shade(p Params, x, y, w, h int, t float64) icolor.RGB {
	u := (float64(x) + 0.5) / float64(w)
	v := (float64(y) + 0.5) / float64(h)

	var lin linearRGB
	switch StrategyFor(p.Mode) {
	case StrategyMeshLights:
		lin = shadeMesh(p, u, v, t)
	case StrategyWeightedSegments:
		n := Field(p, u, v, t)
		lin = composite(p, maskInactive(WeightedSegments(n, p.Thresholds, p.Blur, p.Spread), p.Weights))
	default:
		n := Field(p, u, v, t)
		lin = composite(p, maskInactive(LayeredMasking(n, p.Thresholds, p.Blur, p.Strength), p.Weights))
	}

	c := icolor.ToSRGB(lin)
	d := ditherOffset(x, y)
	if p.Grain > 0 {
		d += grain(x, y, t, p.Grain)
	}
	c.R += d
	c.G += d
	c.B += d
	return c.Clamp()
}

// shadeRow writes one row of RGBA8 pixels into dst, which must hold 4×w
// bytes.
func shadeRow(p Params, dst []uint8, y, w, h int, t float64) {
	for x := 0; x < w; x++ {
		c := shade(p, x, y, w, h, t)
		i := x * 4
		dst[i+0] = to8(c.R)
		dst[i+1] = to8(c.G)
		dst[i+2] = to8(c.B)
		dst[i+3] = 255
	}
}
