package gradient

import (
	"math"
	"math/rand"
	"testing"
)

func TestNoise3_Bounded(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 50000; i++ {
		x, y, z := rng.Float64()*100-50, rng.Float64()*100-50, rng.Float64()*100-50
		if n := Noise3(x, y, z); n < -1 || n > 1 || math.IsNaN(n) {
			t.Fatalf("Noise3(%v, %v, %v) = %v, want in [-1, 1]", x, y, z, n)
		}
	}
}

func TestNoise3_Deterministic(t *testing.T) {
	for _, p := range [][3]float64{{0, 0, 0}, {0.5, 0.25, 0.125}, {-12.3, 45.6, 7.8}} {
		a := Noise3(p[0], p[1], p[2])
		b := Noise3(p[0], p[1], p[2])
		if a != b {
			t.Errorf("Noise3(%v) = %v then %v", p, a, b)
		}
	}
}

func TestNoise3_Continuous(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	const h = 1e-4
	for i := 0; i < 20000; i++ {
		x, y, z := rng.Float64()*40-20, rng.Float64()*40-20, rng.Float64()*40-20
		n := Noise3(x, y, z)
		for _, d := range [][3]float64{{h, 0, 0}, {0, h, 0}, {0, 0, h}} {
			if m := Noise3(x+d[0], y+d[1], z+d[2]); math.Abs(m-n) > 0.01 {
				t.Fatalf("Noise3 jumps by %v between (%v,%v,%v) and %v", m-n, x, y, z, d)
			}
		}
	}
}

func TestNoise3_Varies(t *testing.T) {
	var sum, sumSq float64
	const n = 2000
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < n; i++ {
		v := Noise3(rng.Float64()*100, rng.Float64()*100, 0)
		sum += v
		sumSq += v * v
	}
	mean := sum / n
	std := math.Sqrt(sumSq/n - mean*mean)
	if math.Abs(mean) > 0.05 {
		t.Errorf("mean = %v, want near 0", mean)
	}
	if std < 0.2 {
		t.Errorf("std = %v, want noise with spread", std)
	}
}

func BenchmarkNoise3(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = Noise3(float64(i)*0.013, 0.37, 1.5)
	}
}
