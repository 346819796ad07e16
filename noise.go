package gradient

import "math"

// Noise3 returns 3D simplex gradient noise at (x, y, z).
//
// The output lies roughly in [-1, 1], is continuous, and depends only on its
// inputs. Hashing uses the mod-289 permutation polynomial so no lookup
// table is needed and the GPU program can compute the same values.
func Noise3(x, y, z float64) float64 {
	const (
		g1 = 1.0 / 6.0
		g2 = 1.0 / 3.0
	)

	// Skew into simplex cell space.
	s := (x + y + z) * g2
	ix, iy, iz := math.Floor(x+s), math.Floor(y+s), math.Floor(z+s)
	u := (ix + iy + iz) * g1
	x0, y0, z0 := x-ix+u, y-iy+u, z-iz+u

	// Pick the simplex the point lies in.
	gx, gy, gz := step(y0, x0), step(z0, y0), step(x0, z0)
	lx, ly, lz := 1-gx, 1-gy, 1-gz
	i1x, i1y, i1z := math.Min(gx, lz), math.Min(gy, lx), math.Min(gz, ly)
	i2x, i2y, i2z := math.Max(gx, lz), math.Max(gy, lx), math.Max(gz, ly)

	corners := [4][3]float64{
		{x0, y0, z0},
		{x0 - i1x + g1, y0 - i1y + g1, z0 - i1z + g1},
		{x0 - i2x + g2, y0 - i2y + g2, z0 - i2z + g2},
		{x0 - 0.5, y0 - 0.5, z0 - 0.5},
	}
	offsets := [4][3]float64{
		{0, 0, 0},
		{i1x, i1y, i1z},
		{i2x, i2y, i2z},
		{1, 1, 1},
	}

	ix, iy, iz = mod289(ix), mod289(iy), mod289(iz)

	sum := 0.0
	for k, c := range corners {
		o := offsets[k]
		p := permute(permute(permute(iz+o[2])+iy+o[1]) + ix + o[0])
		nx, ny, nz := simplexGrad(p)

		m := 0.6 - (c[0]*c[0] + c[1]*c[1] + c[2]*c[2])
		if m <= 0 {
			continue
		}
		m *= m
		sum += m * m * (nx*c[0] + ny*c[1] + nz*c[2])
	}
	return 42 * sum
}

// simplexGrad maps a permutation value onto one of 49 gradients spread over
// an octahedron, then normalises it.
func simplexGrad(p float64) (x, y, z float64) {
	// p is integral, so the divisions below are exact.
	j := p - 49*math.Floor(p/49)
	xs := math.Floor(j / 7)
	ys := j - 7*xs

	x = xs*(2.0/7.0) + (0.5/7.0 - 1)
	y = ys*(2.0/7.0) + (0.5/7.0 - 1)
	h := 1 - math.Abs(x) - math.Abs(y)
	if h <= 0 {
		x -= math.Floor(x)*2 + 1
		y -= math.Floor(y)*2 + 1
	}
	norm := taylorInvSqrt(x*x + y*y + h*h)
	return x * norm, y * norm, h * norm
}

func mod289(x float64) float64 {
	return x - math.Floor(x*(1.0/289.0))*289.0
}

func permute(x float64) float64 {
	return mod289((x*34 + 1) * x)
}

// taylorInvSqrt approximates 1/sqrt(r) near r = 0.7.
func taylorInvSqrt(r float64) float64 {
	return 1.79284291400159 - 0.85373472095314*r
}

// step returns 0 when x < edge, else 1.
func step(edge, x float64) float64 {
	if x < edge {
		return 0
	}
	return 1
}
