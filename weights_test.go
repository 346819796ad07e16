package gradient

import (
	"encoding/json"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// checkInvariants reports every broken weight invariant of a.
func checkInvariants(t *testing.T, a Allocator) {
	t.Helper()
	w := a.Weights()
	if s := w.Sum(); s != Total {
		t.Errorf("sum(%v) = %d, want %d", w, s, Total)
	}
	if w[0] < BaseFloor || w[0] > Total {
		t.Errorf("w0 = %d, want in [%d, %d]", w[0], BaseFloor, Total)
	}
	if !a.HasColor4() && w[4] != 0 {
		t.Errorf("w4 = %d without colour4, want 0", w[4])
	}
	active := 3
	if a.HasColor4() {
		active = 4
	}
	rem := Total - w[0]
	if rem < ForegroundFloor*active {
		return
	}
	for i := 1; i <= active; i++ {
		if w[i] < ForegroundFloor || w[i] > rem {
			t.Errorf("w%d = %d, want in [%d, %d] (weights %v)", i, w[i], ForegroundFloor, rem, w)
		}
	}
}

func TestApportion(t *testing.T) {
	tests := []struct {
		name  string
		src   []float64
		total int
		want  []int
	}{
		{"exact", []float64{28, 28, 14}, 35, []int{14, 14, 7}},
		{"largest remainder", []float64{28, 28, 14}, 56, []int{23, 22, 11}},
		{"ties to lower index", []float64{1, 1, 1}, 100, []int{34, 33, 33}},
		{"zero source splits evenly", []float64{0, 0, 0, 0}, 10, []int{3, 3, 2, 2}},
		{"zero total", []float64{5, 5}, 0, []int{0, 0}},
		{"empty", nil, 10, []int{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := apportion(tt.src, tt.total)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("apportion(%v, %d) mismatch (-want +got):\n%s", tt.src, tt.total, diff)
			}
		})
	}
}

func TestSetBaseWeight(t *testing.T) {
	tests := []struct {
		name string
		w0   int
		want Weights
	}{
		{"text-safe base", 65, Weights{65, 14, 14, 7, 0}},
		{"unchanged", 30, Weights{30, 28, 28, 14, 0}},
		{"below floor clamps", 10, Weights{30, 28, 28, 14, 0}},
		{"above total clamps", 150, Weights{100, 0, 0, 0, 0}},
		{"floors apply", 85, Weights{85, 5, 5, 5, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewAllocator(DefaultWeights(), false)
			a.SetBaseWeight(tt.w0)
			if got := a.Weights(); got != tt.want {
				t.Errorf("SetBaseWeight(%d) = %v, want %v", tt.w0, got, tt.want)
			}
			checkInvariants(t, a)
		})
	}
}

func TestAddFourthColor(t *testing.T) {
	a := NewAllocator(DefaultWeights(), false)
	a.AddFourthColor()

	want := Weights{30, 23, 22, 11, 14}
	if got := a.Weights(); got != want {
		t.Errorf("AddFourthColor() = %v, want %v", got, want)
	}
	if !a.HasColor4() {
		t.Error("HasColor4() = false after AddFourthColor")
	}
	checkInvariants(t, a)

	// Adding twice is a no-op.
	a.AddFourthColor()
	if got := a.Weights(); got != want {
		t.Errorf("second AddFourthColor() = %v, want %v", got, want)
	}
}

func TestRemoveFourthColor(t *testing.T) {
	a := NewAllocator(Weights{30, 20, 20, 15, 15}, true)
	a.RemoveFourthColor()

	if a.HasColor4() {
		t.Error("HasColor4() = true after RemoveFourthColor")
	}
	want := Weights{30, 26, 25, 19, 0}
	if got := a.Weights(); got != want {
		t.Errorf("RemoveFourthColor() = %v, want %v", got, want)
	}
	checkInvariants(t, a)
}

func TestSetForegroundWeight(t *testing.T) {
	tests := []struct {
		name  string
		index int
		value int
		want  Weights
	}{
		{"raise first", 1, 40, Weights{30, 40, 22, 8, 0}},
		{"lower third below floor", 3, 4, Weights{30, 32, 33, 5, 0}},
		{"overshoot taken back from target", 1, 90, Weights{30, 53, 12, 5, 0}},
		{"inactive colour4 ignored", 4, 20, Weights{30, 28, 28, 14, 0}},
		{"base index ignored", 0, 50, Weights{30, 28, 28, 14, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewAllocator(DefaultWeights(), false)
			a.SetForegroundWeight(tt.index, tt.value)
			if got := a.Weights(); got != tt.want {
				t.Errorf("SetForegroundWeight(%d, %d) = %v, want %v", tt.index, tt.value, got, tt.want)
			}
			checkInvariants(t, a)
		})
	}
}

func TestSetForegroundWeight_RoundTrip(t *testing.T) {
	starts := []struct {
		w    Weights
		has4 bool
		max  int // largest value that leaves every other colour above its floor
	}{
		{DefaultWeights(), false, 46},
		{Weights{40, 20, 20, 20, 0}, false, 50},
		{Weights{30, 20, 20, 15, 15}, true, 50},
	}
	for _, s := range starts {
		orig := NewAllocator(s.w, s.has4)
		active := 3
		if s.has4 {
			active = 4
		}
		for index := 1; index <= active; index++ {
			for v := ForegroundFloor; v <= s.max; v++ {
				a := orig
				a.SetForegroundWeight(index, v)
				a.SetForegroundWeight(index, orig.Weights()[index])
				got, want := a.Weights(), orig.Weights()
				for i := range got {
					if d := got[i] - want[i]; d < -1 || d > 1 {
						t.Errorf("%v: set w%d to %d and back = %v, want within 1 of %v", s.w, index, v, got, want)
						break
					}
				}
			}
		}
	}
}

// Once another colour is clamped to its floor, restoring the old value
// cannot bring back the share that colour lost.
func TestSetForegroundWeight_RoundTripAfterClamp(t *testing.T) {
	a := NewAllocator(DefaultWeights(), false)
	a.SetForegroundWeight(1, 60)
	if got, want := a.Weights(), (Weights{30, 53, 12, 5, 0}); got != want {
		t.Fatalf("SetForegroundWeight(1, 60) = %v, want %v", got, want)
	}
	a.SetForegroundWeight(1, 28)
	if got, want := a.Weights(), (Weights{30, 27, 25, 18, 0}); got != want {
		t.Errorf("SetForegroundWeight(1, 28) after clamp = %v, want %v", got, want)
	}
	checkInvariants(t, a)
}

func TestApplyTextSafeMode_RoundTrip(t *testing.T) {
	starts := []struct {
		w    Weights
		has4 bool
	}{
		{DefaultWeights(), false},
		{Weights{30, 20, 20, 15, 15}, true},
		{Weights{72, 10, 9, 9, 0}, false},
		{Weights{100, 0, 0, 0, 0}, false},
	}
	for _, s := range starts {
		a := NewAllocator(s.w, s.has4)
		before := a.Weights()

		a.ApplyTextSafeMode(true)
		if !a.TextSafe() {
			t.Errorf("%v: TextSafe() = false after enabling", s.w)
		}
		if got := a.Weights()[0]; got != TextSafeBase {
			t.Errorf("%v: text-safe w0 = %d, want %d", s.w, got, TextSafeBase)
		}
		checkInvariants(t, a)

		// A second enable must not overwrite the snapshot.
		a.ApplyTextSafeMode(true)
		a.ApplyTextSafeMode(false)
		if got := a.Weights(); got != before {
			t.Errorf("text-safe round trip = %v, want %v", got, before)
		}
		if a.TextSafe() {
			t.Errorf("%v: TextSafe() = true after disabling", s.w)
		}
	}
}

func TestApplyTextSafeMode_DisableWithoutEnable(t *testing.T) {
	a := NewAllocator(DefaultWeights(), false)
	a.ApplyTextSafeMode(false)
	if got := a.Weights(); got != DefaultWeights() {
		t.Errorf("ApplyTextSafeMode(false) = %v, want %v", got, DefaultWeights())
	}
}

func TestAllocator_RandomSequences(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for trial := 0; trial < 500; trial++ {
		a := NewAllocator(DefaultWeights(), false)
		for step := 0; step < 40; step++ {
			switch rng.Intn(5) {
			case 0:
				a.SetBaseWeight(rng.Intn(131) - 10)
			case 1:
				a.SetForegroundWeight(rng.Intn(6), rng.Intn(131)-10)
			case 2:
				a.AddFourthColor()
			case 3:
				a.RemoveFourthColor()
			case 4:
				a.ApplyTextSafeMode(rng.Intn(2) == 0)
			}
			checkInvariants(t, a)
			if t.Failed() {
				t.Fatalf("trial %d step %d: invariants broken", trial, step)
			}
		}
	}
}

func TestNewAllocator_Normalizes(t *testing.T) {
	tests := []struct {
		name string
		w    Weights
		has4 bool
		want Weights
	}{
		{"valid untouched", Weights{30, 20, 20, 15, 15}, true, Weights{30, 20, 20, 15, 15}},
		{"w4 dropped without colour4", Weights{30, 20, 20, 15, 15}, false, Weights{30, 26, 25, 19, 0}},
		{"colour4 floor", Weights{30, 28, 28, 14, 0}, true, Weights{30, 25, 26, 14, 5}},
		{"negative repaired", Weights{-5, -1, 50, 50, 0}, false, Weights{30, 5, 32, 33, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewAllocator(tt.w, tt.has4)
			if got := a.Weights(); got != tt.want {
				t.Errorf("NewAllocator(%v, %v) = %v, want %v", tt.w, tt.has4, got, tt.want)
			}
			checkInvariants(t, a)
		})
	}
}

func TestAllocator_JSON(t *testing.T) {
	a := NewAllocator(Weights{30, 20, 20, 15, 15}, true)
	b, err := json.Marshal(a)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "[30,20,20,15,15]" {
		t.Errorf("Marshal = %s, want [30,20,20,15,15]", b)
	}
	var back Allocator
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatal(err)
	}
	if back.Weights() != a.Weights() || !back.HasColor4() {
		t.Errorf("Unmarshal = %v (colour4 %v), want %v", back.Weights(), back.HasColor4(), a.Weights())
	}
}
