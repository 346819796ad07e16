package gradient

import (
	"math"
	"testing"
)

func meshConfig() GradientConfig {
	cfg := DefaultConfig()
	cfg.Mode = ModeMesh
	return cfg
}

func TestMeshLightPositions_Styles(t *testing.T) {
	for _, style := range []MeshStyle{StyleOrganic, StyleFlow, StyleCenter} {
		cfg := meshConfig()
		cfg.Style = style
		pos := MeshLightPositions(cfg.Params(), 0)
		for i, p := range pos {
			if p.X < -0.1 || p.X > 1.1 || p.Y < -0.1 || p.Y > 1.1 {
				t.Errorf("%v: light %d at %v, want near the unit square", style, i, p)
			}
		}
	}
}

func TestMeshLightPositions_CenterInward(t *testing.T) {
	cfg := meshConfig()
	cfg.Style = StyleCenter
	out := MeshLightPositions(cfg.Params(), 0)
	cfg.CenterInward = true
	in := MeshLightPositions(cfg.Params(), 0)
	for i := range in {
		dIn := math.Hypot(in[i].X-0.5, in[i].Y-0.5)
		dOut := math.Hypot(out[i].X-0.5, out[i].Y-0.5)
		if dIn >= dOut {
			t.Errorf("light %d: inward distance %v >= outward %v", i, dIn, dOut)
		}
	}
}

func TestMeshLightPositions_Drift(t *testing.T) {
	p := meshConfig().Params()
	a := MeshLightPositions(p, 0)
	b := MeshLightPositions(p, 5)
	if a == b {
		t.Error("lights do not move over time")
	}
	for i := range a {
		if d := math.Hypot(a[i].X-b[i].X, a[i].Y-b[i].Y); d > 0.18 {
			t.Errorf("light %d drifted %v, want a gentle drift", i, d)
		}
	}
}

func TestMeshLights_Coverage(t *testing.T) {
	for _, blur := range []float64{0, 50, 100} {
		cfg := meshConfig()
		cfg.Blur = blur
		cfg.AddFourthColor(MustParseColor("#10b981"))
		p := cfg.Params()
		ceiling := p.Remaining * maxCoverage
		for i := 0; i < 400; i++ {
			u, v := float64(i%20)/19, float64(i/20)/19
			l := MeshLights(p, u, v, 1)
			sum := l[0] + l[1] + l[2] + l[3]
			if sum > ceiling+1e-9 {
				t.Fatalf("blur %v: light sum %v at (%v, %v) exceeds %v", blur, sum, u, v, ceiling)
			}
		}
	}
}

func TestMeshLights_InactiveColour4(t *testing.T) {
	p := meshConfig().Params()
	for i := 0; i < 100; i++ {
		if l := MeshLights(p, float64(i)/99, 0.75, 0); l[3] != 0 {
			t.Fatalf("light 4 = %v without colour4", l[3])
		}
	}
}

func TestMeshLights_FullBase(t *testing.T) {
	cfg := meshConfig()
	cfg.SetBaseWeight(100)
	if l := MeshLights(cfg.Params(), 0.22, 0.28, 0); l != [4]float64{} {
		t.Errorf("MeshLights with w0=100 = %v, want zero", l)
	}
}

func TestMeshLights_WeightRaisesLight(t *testing.T) {
	cfg := meshConfig()
	cfg.Style = StyleOrganic
	cfg.Density = 0
	lo := MeshLights(cfg.Params(), organicLights[0].X, organicLights[0].Y, 0)[0]
	cfg.SetForegroundWeight(1, 45)
	hi := MeshLights(cfg.Params(), organicLights[0].X, organicLights[0].Y, 0)[0]
	if hi <= lo {
		t.Errorf("light 1 with weight 45 = %v, with 28 = %v, want brighter", hi, lo)
	}
}
