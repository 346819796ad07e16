package gradient

import (
	"math"

	icolor "github.com/gogpu/gradient/internal/color"
)

// Strategy is how a mode turns its field into per-colour blend factors.
type Strategy uint8

const (
	// StrategyWeightedSegments places one soft edge at each cumulative
	// threshold. Used by the monotone fields, where area follows weight.
	StrategyWeightedSegments Strategy = iota
	// StrategyLayeredMasking shapes each factor by Strength and masks later
	// colours by the earlier ones. Used by the organic fields.
	StrategyLayeredMasking
	// StrategyMeshLights composites point lights and has no scalar field.
	StrategyMeshLights
)

func (s Strategy) String() string {
	switch s {
	case StrategyWeightedSegments:
		return "weighted-segments"
	case StrategyLayeredMasking:
		return "layered-masking"
	case StrategyMeshLights:
		return "mesh-lights"
	}
	return "unknown"
}

// StrategyFor returns the mixing strategy of a mode.
func StrategyFor(m Mode) Strategy {
	switch m {
	case ModeMesh:
		return StrategyMeshLights
	case ModePlane, ModeSphere:
		return StrategyWeightedSegments
	default:
		return StrategyLayeredMasking
	}
}

// Thresholds are the cumulative weight boundaries as fractions:
// T0 = w0, T1 = w0+w1, T2 = w0+w1+w2, T3 = w0+w1+w2+w3.
type Thresholds [4]float64

// ThresholdsOf derives thresholds from a weight vector.
func ThresholdsOf(w Weights) Thresholds {
	var th Thresholds
	acc := 0
	for i := range th {
		acc += w[i]
		th[i] = float64(acc) / Total
	}
	return th
}

// WeightedSegments returns blend factors f1..f4 for field value n; factor k
// switches colour k on at threshold T(k-1). The first edge rises from T0 to
// T0+width so the base keeps all of its share; later edges are centred on
// their threshold. width = blur×max(0.05, spread)×0.25;
// a zero width gives hard steps.
func WeightedSegments(n float64, th Thresholds, blur, spread float64) [4]float64 {
	width := blur * math.Max(0.05, spread) * 0.25
	var f [4]float64
	f[0] = smoothstep(th[0], th[0]+width, n)
	for k := 1; k < 4; k++ {
		f[k] = smoothstep(th[k]-width/2, th[k]+width/2, n)
	}
	return f
}

// LayeredMasking returns blend factors f1..f4 for field value n. Each factor
// is a symmetric soft edge of width blur around its threshold raised to
// 1+strength/2, then masked by the largest factor before it.
func LayeredMasking(n float64, th Thresholds, blur, strength float64) [4]float64 {
	e := 1 + math.Max(0, strength)*0.5
	var f [4]float64
	for k := range f {
		f[k] = math.Pow(smoothstep(th[k]-blur/2, th[k]+blur/2, n), e)
	}
	m := f[0]
	for k := 1; k < 4; k++ {
		f[k] *= m
		m = math.Max(m, f[k])
	}
	return f
}

// maskInactive zeroes the factor of any colour with no weight, so an unused
// colour4 (or a w0 of 100) can never appear at the field extremes.
func maskInactive(f [4]float64, w Weights) [4]float64 {
	for k := range f {
		if w[k+1] == 0 {
			f[k] = 0
		}
	}
	return f
}

// composite mixes base→color1→…→color4 in linear light.
func composite(p Params, f [4]float64) linearRGB {
	c := p.linear[0]
	for k, fk := range f {
		if fk <= 0 {
			continue
		}
		c = lerpLinear(c, p.linear[k+1], fk)
	}
	return c
}

func lerpLinear(a, b linearRGB, t float64) linearRGB {
	return icolor.Lerp(a, b, t)
}
