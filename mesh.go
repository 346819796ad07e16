package gradient

import "math"

// maxCoverage scales the remaining share into the ceiling on summed light
// intensity. Above it every light is scaled down together so foreground
// colours cannot swamp the base.
const maxCoverage = 1.5

// organicLights are the resting positions for StyleOrganic.
var organicLights = [4]Vec2{
	{0.22, 0.28},
	{0.76, 0.24},
	{0.28, 0.76},
	{0.74, 0.72},
}

// MeshLightPositions returns the drifting positions of the four mesh lights
// at time t.
func MeshLightPositions(p Params, t float64) [4]Vec2 {
	var pos [4]Vec2
	switch p.Style {
	case StyleFlow:
		a := p.FlowAngle * math.Pi / 180
		dx, dy := math.Cos(a), math.Sin(a)
		for i := range pos {
			along := -0.36 + 0.24*float64(i)
			side := 0.12
			if i%2 == 1 {
				side = -side
			}
			pos[i] = Vec2{
				X: 0.5 + dx*along - dy*side,
				Y: 0.5 + dy*along + dx*side,
			}
		}
	case StyleCenter:
		r := 0.38
		if p.CenterInward {
			r = 0.16
		}
		for i := range pos {
			a := float64(i)*math.Pi/2 + math.Pi/4
			pos[i] = Vec2{X: 0.5 + math.Cos(a)*r, Y: 0.5 + math.Sin(a)*r}
		}
	default:
		pos = organicLights
	}

	for i := range pos {
		fi := float64(i)
		pos[i].X += math.Sin(t*(0.3+0.07*fi)+fi*1.7) * 0.06
		pos[i].Y += math.Cos(t*(0.25+0.05*fi)+fi*2.3) * 0.06
	}
	return pos
}

// MeshLights returns the intensity of lights 1..4 at (u, v). Each light is a
// Gaussian whose width follows blur and noise scale and whose height
// follows the colour's weight relative to the remaining share. Inactive
// lights are zero. When the summed intensity exceeds Remaining×1.5 every
// light is scaled down proportionally.
func MeshLights(p Params, u, v, t float64) [4]float64 {
	return meshLightsAt(p, MeshLightPositions(p, t), u, v, t)
}

func meshLightsAt(p Params, pos [4]Vec2, u, v, t float64) [4]float64 {
	var out [4]float64
	rem := float64(Total - p.Weights[0])
	if rem <= 0 {
		return out
	}

	spread := (0.15 + p.Blur*0.35) / math.Max(0.1, p.NoiseScale)
	spread = math.Min(math.Max(spread, 0.05), 1.5)
	s2 := spread * spread

	active := 3
	if p.HasColor4 {
		active = 4
	}

	total := 0.0
	for i := 0; i < active; i++ {
		dx, dy := u-pos[i].X, v-pos[i].Y
		if p.Stretch {
			s := p.StretchAmount
			dx += math.Sin(v*twoPi+t*0.5+float64(i)) * 0.05 * s
			dy *= 1 - 0.75*s
		}
		if p.Density > 0 {
			dx += Noise3(u*2, v*2, t*0.1+float64(i)*3.1) * 0.04 * math.Min(p.Density, 2)
		}
		share := float64(p.Weights[i+1]) / rem * float64(active)
		out[i] = math.Exp(-(dx*dx+dy*dy)/s2) * share
		total += out[i]
	}

	if ceiling := p.Remaining * maxCoverage; total > ceiling {
		k := ceiling / total
		for i := range out {
			out[i] *= k
		}
	}
	return out
}

// shadeMesh composites the lights over the base colour in linear light, in
// colour order.
func shadeMesh(p Params, u, v, t float64) linearRGB {
	lights := MeshLights(p, u, v, t)
	c := p.linear[0]
	for i, l := range lights {
		if l <= 0 {
			continue
		}
		c = lerpLinear(c, p.linear[i+1], clamp01(l))
	}
	return c
}
