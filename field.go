package gradient

import "math"

const twoPi = 2 * math.Pi

// Field evaluates the scalar gradient field of p.Mode at unit-square
// position (u, v) and time t. The result lies in [0, 1] and feeds the
// segment mixer. Mesh mode has no scalar field; Field treats it as plane.
func Field(p Params, u, v, t float64) float64 {
	switch p.Mode {
	case ModeSphere:
		return sphereField(p, u, v, t)
	case ModeWater:
		return waterField(p, u, v, t)
	case ModeConic:
		return conicField(p, u, v, t)
	case ModeSpiral:
		return spiralField(p, u, v, t)
	case ModeWaves:
		return wavesField(p, u, v, t)
	default:
		return planeField(p, u, v, t)
	}
}

// sphereField blends a smooth radial falloff (70%) with two noise octaves
// (25%) and a vertical light bias that brightens the top.
func sphereField(p Params, u, v, t float64) float64 {
	f := p.Frequency * p.NoiseScale
	r := math.Hypot(u-0.5, v-0.5)
	radial := 1 - smoothstep(0, 1, r*2)

	n := (Noise3(u*2*f, v*2*f, t*0.2) + 0.5*Noise3(u*4*f+7.3, v*4*f+2.1, t*0.2)) / 1.5
	organic := n*0.5 + 0.5

	return clamp01(radial*0.7 + organic*0.25 + (1-v)*0.15)
}

// planeField is a linear ramp along Angle (or a radial distance when
// Radial), optionally warped by noise. Without waves it is monotone along
// the ramp direction, so the area of each colour band equals its weight.
func planeField(p Params, u, v, t float64) float64 {
	px, py := u-0.5-p.Offset.X, v-0.5-p.Offset.Y

	var n float64
	if p.Radial {
		n = math.Hypot(px, py) * 2
	} else {
		a := p.Angle * math.Pi / 180
		dx, dy := math.Cos(a), math.Sin(a)
		extent := (math.Abs(dx) + math.Abs(dy)) * 0.5
		n = (px*dx+py*dy)/extent*0.5 + 0.5
	}
	if p.WaveAmount > 0 {
		s := 3 * p.NoiseScale
		n += Noise3(u*s, v*s, t*0.3) * p.WaveAmount * 0.25
	}
	n += planeDrift(t)
	return clamp01(n)
}

// planeDrift slides the ramp slowly over time. It is zero at t = 0.
func planeDrift(t float64) float64 {
	return math.Sin(t*0.5) * 0.02
}

// waterField sums three noise octaves of falling amplitude and adds a slow
// two-axis sinusoidal swell.
func waterField(p Params, u, v, t float64) float64 {
	f := p.Frequency * p.NoiseScale
	d := 0.5 + 0.5*math.Min(p.Density, 2)

	n := Noise3(u*1.5*f, v*1.5*f, t*0.15)*0.5 +
		Noise3(u*3*f+5.2, v*3*f+1.3, t*0.2)*0.25*d +
		Noise3(u*6*f+9.7, v*6*f+3.1, t*0.25)*0.125*d

	swell := math.Sin(u*twoPi*p.Frequency+t*0.5) * math.Sin(v*twoPi*p.Frequency*0.8+t*0.4) * 0.08
	return clamp01(n*0.6 + 0.5 + swell)
}

// conicField sweeps the normalised angle around the (offset) centre,
// rotating slowly with time. SpiralAmount twists the sweep with radius.
func conicField(p Params, u, v, t float64) float64 {
	cx, cy := u-0.5-p.Offset.X, v-0.5-p.Offset.Y
	a := math.Atan2(cy, cx)/twoPi + 0.5
	a = fract(a + p.StartAngle/360 + t*0.02)
	if p.SpiralAmount != 0 {
		a = fract(a + math.Hypot(cx, cy)*p.SpiralAmount)
	}
	f := p.Frequency * p.NoiseScale
	a += Noise3(u*2*f, v*2*f, t*0.2) * 0.04
	return clamp01(a)
}

// spiralField winds sine bands outward from the centre and adds a centre
// depth term.
func spiralField(p Params, u, v, t float64) float64 {
	cx, cy := u-0.5, v-0.5
	r := math.Hypot(cx, cy)
	a := math.Atan2(cy, cx)

	dir := 1.0
	if p.Clockwise {
		dir = -1
	}
	s := a + dir*r*p.Tightness*twoPi - t*0.5
	base := math.Sin(s)*0.5 + 0.5

	f := p.Frequency * p.NoiseScale
	n := Noise3(u*2*f, v*2*f, t*0.2)*0.12 + Noise3(u*4*f+3.7, v*4*f+1.9, t*0.25)*0.06
	depth := (1 - clamp01(r*2)) * 0.15

	return clamp01(base*0.75 + n + depth + 0.05)
}

// wavesField projects onto WaveAngle and perturbs the along-axis position
// with three stacked sines running across it.
func wavesField(p Params, u, v, t float64) float64 {
	a := p.WaveAngle * math.Pi / 180
	dx, dy := math.Cos(a), math.Sin(a)
	px, py := u-0.5, v-0.5
	along := px*dx + py*dy
	across := -px*dy + py*dx

	k := across * p.WaveCount * twoPi
	amp := p.Amplitude
	w := math.Sin(k+t)*amp +
		math.Sin(k*2.1+t*1.3+1.7)*amp*0.5 +
		math.Sin(k*4.3-t*0.7+3.1)*amp*0.25

	f := p.Frequency * p.NoiseScale
	n := Noise3(u*2*f, v*2*f, t*0.15) * 0.05
	extent := (math.Abs(dx) + math.Abs(dy)) * 0.5

	return clamp01((along+w*0.1)/extent*0.5 + 0.5 + n)
}

// smoothstep is Hermite interpolation between e0 and e1. When the edges
// meet it degenerates to a hard step at e0.
func smoothstep(e0, e1, x float64) float64 {
	if e1 <= e0 {
		return step(e0, x)
	}
	t := clamp01((x - e0) / (e1 - e0))
	return t * t * (3 - 2*t)
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

func fract(x float64) float64 {
	return x - math.Floor(x)
}
