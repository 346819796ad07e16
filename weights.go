package gradient

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
)

// Weight allocation constants. All weights are integer percentages.
const (
	// Total is the sum every weight vector keeps.
	Total = 100

	// BaseFloor is the minimum base weight w0.
	BaseFloor = 30

	// ForegroundFloor is the minimum weight of an active foreground colour
	// whenever the remaining share can honour it.
	ForegroundFloor = 5

	// TextSafeBase is the base weight text-safe mode pins w0 to.
	TextSafeBase = 65

	// fourthColorShare is the fraction of the foreground share a newly
	// added colour4 receives.
	fourthColorShare = 0.2
)

// Weights holds w0..w4: the base colour and up to four foreground colours.
type Weights [5]int

// DefaultWeights returns the starting vector {30, 28, 28, 14, 0}.
func DefaultWeights() Weights {
	return Weights{30, 28, 28, 14, 0}
}

// Sum returns w0+...+w4.
func (w Weights) Sum() int {
	s := 0
	for _, v := range w {
		s += v
	}
	return s
}

// Allocator owns a weight vector and keeps it valid: the weights sum to
// Total, w0 lies in [BaseFloor, Total], every active foreground weight is
// at least ForegroundFloor when Total-w0 allows it, and w4 is zero exactly
// when colour4 is absent.
//
// The zero Allocator is not valid; use NewAllocator or DefaultConfig.
type Allocator struct {
	w    Weights
	has4 bool

	// Text-safe snapshot, taken when text-safe mode is switched on.
	textSafe  bool
	saved     Weights
	savedHas4 bool
}

// NewAllocator returns an allocator seeded with w. Invalid vectors are
// normalised rather than rejected.
func NewAllocator(w Weights, hasColor4 bool) Allocator {
	a := Allocator{w: w, has4: hasColor4}
	a.normalize()
	return a
}

// Weights returns the current vector.
func (a Allocator) Weights() Weights { return a.w }

// HasColor4 reports whether colour4 takes part in the allocation.
func (a Allocator) HasColor4() bool { return a.has4 }

// TextSafe reports whether text-safe mode is on.
func (a Allocator) TextSafe() bool { return a.textSafe }

// active returns the indices of the active foreground colours.
func (a *Allocator) active() []int {
	if a.has4 {
		return []int{1, 2, 3, 4}
	}
	return []int{1, 2, 3}
}

// SetBaseWeight clamps w0 to [BaseFloor, Total] and rescales the active
// foreground weights proportionally onto the remainder.
func (a *Allocator) SetBaseWeight(w0 int) {
	w0 = clampInt(w0, BaseFloor, Total)
	idx := a.active()
	src := make([]float64, len(idx))
	for k, i := range idx {
		src[k] = float64(max(a.w[i], 0))
	}
	shares := apportion(src, Total-w0)
	a.w[0] = w0
	for k, i := range idx {
		a.w[i] = shares[k]
	}
	a.normalize()
}

// SetForegroundWeight sets colour index (1..4) to value and spreads the
// difference evenly across the other active foreground colours. The value is
// clamped so that every other colour keeps ForegroundFloor. An index that is
// not active is ignored.
//
// Setting a value and then restoring the old one returns every weight to
// within 1 of where it was, but only while no other colour was clamped to
// ForegroundFloor along the way. A clamped colour loses its earlier share.
func (a *Allocator) SetForegroundWeight(index, value int) {
	if index < 1 || index > 4 || (index == 4 && !a.has4) {
		return
	}
	idx := a.active()
	n := len(idx)
	rem := Total - a.w[0]

	others := make([]int, 0, n-1)
	for _, i := range idx {
		if i != index {
			others = append(others, i)
		}
	}

	if rem < ForegroundFloor*n {
		// Floors cannot all hold; split what remains proportionally.
		value = clampInt(value, 0, rem)
		src := make([]float64, len(others))
		for k, i := range others {
			src[k] = float64(max(a.w[i], 0))
		}
		shares := apportion(src, rem-value)
		a.w[index] = value
		for k, i := range others {
			a.w[i] = shares[k]
		}
		a.normalize()
		return
	}

	hi := rem - ForegroundFloor*(n-1)
	value = clampInt(value, ForegroundFloor, hi)
	per := float64(value-a.w[index]) / float64(len(others))
	a.w[index] = value
	for _, i := range others {
		a.w[i] = max(ForegroundFloor, int(math.Round(float64(a.w[i])-per)))
	}

	diff := rem
	for _, i := range idx {
		diff -= a.w[i]
	}
	if diff != 0 {
		if v := a.w[index] + diff; v >= ForegroundFloor && v <= hi {
			a.w[index] = v
		} else {
			a.absorb(diff, index, others)
		}
	}
	a.normalize()
}

// absorb moves diff units into (diff > 0) or out of (diff < 0) the
// foreground, one unit at a time, preferring target and then whichever
// other weight can take the change.
func (a *Allocator) absorb(diff, target int, others []int) {
	for diff > 0 {
		i := target
		if a.w[i] >= Total {
			i = others[0]
			for _, j := range others {
				if a.w[j] < a.w[i] {
					i = j
				}
			}
		}
		a.w[i]++
		diff--
	}
	for diff < 0 {
		i := target
		if a.w[i] <= ForegroundFloor {
			i = -1
			for _, j := range others {
				if a.w[j] > ForegroundFloor && (i < 0 || a.w[j] > a.w[i]) {
					i = j
				}
			}
			if i < 0 {
				return
			}
		}
		a.w[i]--
		diff++
	}
}

// AddFourthColor activates colour4 with a fifth of the foreground share and
// rescales colours 1..3 proportionally onto the rest.
func (a *Allocator) AddFourthColor() {
	if a.has4 {
		return
	}
	rem := Total - a.w[0]
	w4 := int(math.Round(fourthColorShare * float64(rem)))
	if w4 < ForegroundFloor && rem >= ForegroundFloor*4 {
		w4 = ForegroundFloor
	}
	src := []float64{float64(max(a.w[1], 0)), float64(max(a.w[2], 0)), float64(max(a.w[3], 0))}
	shares := apportion(src, rem-w4)
	a.w[1], a.w[2], a.w[3], a.w[4] = shares[0], shares[1], shares[2], w4
	a.has4 = true
	a.normalize()
}

// RemoveFourthColor deactivates colour4 and returns its weight to colours
// 1..3 in proportion to their current weights.
func (a *Allocator) RemoveFourthColor() {
	if !a.has4 {
		return
	}
	rem := Total - a.w[0]
	src := []float64{float64(max(a.w[1], 0)), float64(max(a.w[2], 0)), float64(max(a.w[3], 0))}
	shares := apportion(src, rem)
	a.w[1], a.w[2], a.w[3], a.w[4] = shares[0], shares[1], shares[2], 0
	a.has4 = false
	a.normalize()
}

// ApplyTextSafeMode pins w0 to TextSafeBase when enabled, remembering the
// vector it replaced, and restores that vector when disabled. Switching on
// twice keeps the first snapshot.
func (a *Allocator) ApplyTextSafeMode(enabled bool) {
	if enabled {
		if !a.textSafe {
			a.saved, a.savedHas4 = a.w, a.has4
			a.textSafe = true
		}
		a.SetBaseWeight(TextSafeBase)
		return
	}
	if !a.textSafe {
		return
	}
	restored := a.saved
	if a.has4 && !a.savedHas4 {
		// colour4 was added while text-safe was on; let normalize give it
		// its floor.
		restored[4] = 0
	}
	a.w = restored
	a.textSafe = false
	a.saved, a.savedHas4 = Weights{}, false
	a.normalize()
}

// syncColor4 aligns the colour4 flag with the owning config after decoding.
func (a *Allocator) syncColor4(has4 bool) {
	a.has4 = has4
	a.normalize()
}

// normalize repairs any vector into a valid one. A valid vector is left
// untouched.
func (a *Allocator) normalize() {
	if !a.has4 {
		a.w[4] = 0
	}
	for i := range a.w {
		if a.w[i] < 0 {
			a.w[i] = 0
		}
	}
	a.w[0] = clampInt(a.w[0], BaseFloor, Total)
	idx := a.active()
	rem := Total - a.w[0]

	sum := 0
	for _, i := range idx {
		sum += a.w[i]
	}
	if sum != rem {
		src := make([]float64, len(idx))
		for k, i := range idx {
			src[k] = float64(a.w[i])
		}
		shares := apportion(src, rem)
		for k, i := range idx {
			a.w[i] = shares[k]
		}
	}
	if rem < ForegroundFloor*len(idx) {
		return
	}
	for _, i := range idx {
		for a.w[i] < ForegroundFloor {
			donor := -1
			for _, j := range idx {
				if a.w[j] > ForegroundFloor && (donor < 0 || a.w[j] > a.w[donor]) {
					donor = j
				}
			}
			a.w[donor]--
			a.w[i]++
		}
	}
}

// apportion splits total into integer parts proportional to src using the
// largest-remainder method: floor every exact share, hand the missing units
// to the largest fractional parts. Ties go to the lower index. A source that
// sums to zero is split evenly.
func apportion(src []float64, total int) []int {
	n := len(src)
	out := make([]int, n)
	if n == 0 || total <= 0 {
		return out
	}
	sum := 0.0
	for _, v := range src {
		sum += v
	}
	even := sum <= 0
	if even {
		sum = float64(n)
	}

	frac := make([]float64, n)
	assigned := 0
	for k, v := range src {
		if even {
			v = 1
		}
		exact := v / sum * float64(total)
		out[k] = int(math.Floor(exact))
		frac[k] = exact - float64(out[k])
		assigned += out[k]
	}

	order := make([]int, n)
	for k := range order {
		order[k] = k
	}
	sort.SliceStable(order, func(i, j int) bool { return frac[order[i]] > frac[order[j]] })
	for k := 0; assigned < total; k++ {
		out[order[k%n]]++
		assigned++
	}
	// Floating point can overshoot by a unit; take it back from the
	// smallest fractions.
	for k := n - 1; assigned > total; k-- {
		if i := order[(k%n+n)%n]; out[i] > 0 {
			out[i]--
			assigned--
		}
	}
	return out
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// MarshalJSON encodes the allocator as its five-integer weight array.
func (a Allocator) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.w)
}

// UnmarshalJSON decodes a five-integer weight array. colour4 is inferred
// from w4 until the owning config re-derives it.
func (a *Allocator) UnmarshalJSON(b []byte) error {
	var w Weights
	if err := json.Unmarshal(b, &w); err != nil {
		return fmt.Errorf("gradient: decode weights: %w", err)
	}
	*a = NewAllocator(w, w[4] > 0)
	return nil
}
