package gradient

import (
	"math"
	"testing"
)

func TestBayer_Permutation(t *testing.T) {
	var seen [64]bool
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			v := Bayer(x, y)
			if v < 0 || v > 63 {
				t.Fatalf("Bayer(%d, %d) = %d, want in [0, 63]", x, y, v)
			}
			if seen[v] {
				t.Errorf("Bayer value %d appears twice", v)
			}
			seen[v] = true
		}
	}
}

func TestBayer_Known(t *testing.T) {
	tests := []struct{ x, y, want int }{
		{0, 0, 0},
		{1, 0, 32},
		{0, 1, 48},
		{1, 1, 16},
		{2, 0, 8},
		{7, 7, 21},
	}
	for _, tt := range tests {
		if got := Bayer(tt.x, tt.y); got != tt.want {
			t.Errorf("Bayer(%d, %d) = %d, want %d", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestBayer_Tiles(t *testing.T) {
	if Bayer(3, 5) != Bayer(11, 13) || Bayer(3, 5) != Bayer(19, 5) {
		t.Error("Bayer does not repeat every 8 pixels")
	}
}

func TestDitherOffset_SubLSB(t *testing.T) {
	sum := 0.0
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			d := ditherOffset(x, y)
			if math.Abs(d) >= 0.5/255 {
				t.Errorf("ditherOffset(%d, %d) = %v, want below half an 8-bit step", x, y, d)
			}
			sum += d
		}
	}
	if math.Abs(sum) > 1e-12 {
		t.Errorf("dither over one tile sums to %v, want 0", sum)
	}
}

func TestGrain_Amplitude(t *testing.T) {
	for i := 0; i < 1000; i++ {
		if g := grain(i%37, i/37, 1.25, 1); math.Abs(g) > 0.08 {
			t.Fatalf("grain = %v, want |g| <= 0.08", g)
		}
	}
	if g := grain(5, 9, 2, 0); g != 0 {
		t.Errorf("grain with zero amount = %v, want 0", g)
	}
}
