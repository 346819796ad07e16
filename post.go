package gradient

// Bayer returns the 8×8 ordered-dither index at pixel (x, y), in 0..63.
// Every index appears exactly once per 8×8 tile.
func Bayer(x, y int) int {
	x &= 7
	y &= 7
	xy := x ^ y
	v := 0
	for bit := 0; bit < 3; bit++ {
		v = v<<2 | ((xy>>bit)&1)<<1 | (y>>bit)&1
	}
	return v
}

// ditherOffset is the sub-LSB offset added before 8-bit quantisation. Its
// magnitude stays below half a code value, so it breaks up banding without
// visibly shifting colours.
func ditherOffset(x, y int) float64 {
	return ((float64(Bayer(x, y))+0.5)/64 - 0.5) / 255
}

// grain returns the film grain offset at pixel (x, y). Simplex noise
// sampled at near-pixel frequency gives a fine, animated grain; amount in
// [0,1] scales it to at most ±0.08.
func grain(x, y int, t, amount float64) float64 {
	return Noise3(float64(x)*0.9, float64(y)*0.9, t*6) * amount * 0.08
}
