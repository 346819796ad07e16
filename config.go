package gradient

import (
	"encoding/json"
	"fmt"
	"math"
)

// Mode selects the gradient field the engine evaluates.
type Mode uint8

const (
	// ModeMesh composites up to four drifting point lights over the base colour.
	ModeMesh Mode = iota
	// ModeSphere is a radial falloff blended with organic noise.
	ModeSphere
	// ModePlane is a linear or radial ramp. Monotone, so area follows weight.
	ModePlane
	// ModeWater is layered noise with a gentle two-axis swell.
	ModeWater
	// ModeConic sweeps around an offsettable centre.
	ModeConic
	// ModeSpiral winds bands outward from the centre.
	ModeSpiral
	// ModeWaves perturbs a directional ramp with stacked sine waves.
	ModeWaves
)

var modeNames = [...]string{"mesh", "sphere", "plane", "water", "conic", "spiral", "waves"}

// Modes returns every mode in declaration order.
func Modes() []Mode {
	return []Mode{ModeMesh, ModeSphere, ModePlane, ModeWater, ModeConic, ModeSpiral, ModeWaves}
}

func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return fmt.Sprintf("Mode(%d)", m)
}

// ParseMode returns the mode with the given name.
func ParseMode(s string) (Mode, error) {
	for i, name := range modeNames {
		if name == s {
			return Mode(i), nil
		}
	}
	return 0, fmt.Errorf("gradient: unknown mode %q", s)
}

func (m Mode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

func (m *Mode) UnmarshalText(b []byte) error {
	parsed, err := ParseMode(string(b))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// MeshStyle arranges the mesh lights.
type MeshStyle uint8

const (
	// StyleOrganic places lights at fixed, well-spread positions.
	StyleOrganic MeshStyle = iota
	// StyleFlow strings lights along FlowAngle.
	StyleFlow
	// StyleCenter clusters lights toward (or away from) the centre.
	StyleCenter
)

var styleNames = [...]string{"organic", "flow", "center"}

func (s MeshStyle) String() string {
	if int(s) < len(styleNames) {
		return styleNames[s]
	}
	return fmt.Sprintf("MeshStyle(%d)", s)
}

func (s MeshStyle) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *MeshStyle) UnmarshalText(b []byte) error {
	for i, name := range styleNames {
		if name == string(b) {
			*s = MeshStyle(i)
			return nil
		}
	}
	return fmt.Errorf("gradient: unknown mesh style %q", b)
}

// Theme picks the base colour. The base is derived, never edited directly.
type Theme uint8

const (
	ThemeDark Theme = iota
	ThemeLight
)

// Base returns the theme's base colour: black for dark, white for light.
func (t Theme) Base() RGBA {
	if t == ThemeLight {
		return White
	}
	return Black
}

func (t Theme) String() string {
	if t == ThemeLight {
		return "light"
	}
	return "dark"
}

func (t Theme) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

func (t *Theme) UnmarshalText(b []byte) error {
	switch string(b) {
	case "dark":
		*t = ThemeDark
	case "light":
		*t = ThemeLight
	default:
		return fmt.Errorf("gradient: unknown theme %q", b)
	}
	return nil
}

// AspectRatio tags the output framing. It only affects export sizing.
type AspectRatio uint8

const (
	AspectFree AspectRatio = iota
	Aspect16x9
	Aspect4x3
	Aspect1x1
	Aspect9x16
	Aspect3x1
)

var aspects = [...]struct {
	name string
	w, h int
}{
	{"free", 0, 0},
	{"16:9", 16, 9},
	{"4:3", 4, 3},
	{"1:1", 1, 1},
	{"9:16", 9, 16},
	{"3:1", 3, 1},
}

func (a AspectRatio) String() string {
	if int(a) < len(aspects) {
		return aspects[a].name
	}
	return fmt.Sprintf("AspectRatio(%d)", a)
}

// Height returns the height matching width. For AspectFree it returns
// fallback unchanged.
func (a AspectRatio) Height(width, fallback int) int {
	if int(a) >= len(aspects) || aspects[a].w == 0 {
		return fallback
	}
	return int(math.Round(float64(width) * float64(aspects[a].h) / float64(aspects[a].w)))
}

func (a AspectRatio) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

func (a *AspectRatio) UnmarshalText(b []byte) error {
	for i, r := range aspects {
		if r.name == string(b) {
			*a = AspectRatio(i)
			return nil
		}
	}
	return fmt.Errorf("gradient: unknown aspect ratio %q", b)
}

// Vec2 is a 2D offset in unit-square coordinates.
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// OptionalTime is a frame time that may be absent. The zero value is absent.
type OptionalTime struct {
	t     float64
	valid bool
}

// Running is the absent OptionalTime: the clock governs time.
var Running = OptionalTime{}

// FrozenAt pins time to t seconds.
func FrozenAt(t float64) OptionalTime {
	return OptionalTime{t: t, valid: true}
}

// Get returns the frozen time and whether time is frozen.
func (o OptionalTime) Get() (float64, bool) {
	return o.t, o.valid
}

// Animation decides which source governs the time uniform: a frozen time
// when Frozen is set, otherwise the clock scaled by Speed when Animate is
// true, otherwise zero.
type Animation struct {
	Animate bool    `json:"animate"`
	Speed   float64 `json:"speed"`

	// Frozen is ephemeral editor state and is never written to presets.
	Frozen OptionalTime `json:"-"`
}

// GradientConfig drives the engine for one frame.
//
// It is a plain value: no slices, maps or pointers. Copying it yields an
// isolated snapshot, which is what lets a render loop take one snapshot per
// frame while an editor keeps mutating the original.
type GradientConfig struct {
	Mode   Mode    `json:"mode"`
	Theme  Theme   `json:"theme"`
	Colors [3]RGBA `json:"colors"`

	// Color4 is the optional fifth colour (color4).
	Color4 OptionalColor `json:"color4"`

	// Weights owns w0..w4. Mutate through the config methods so the
	// colour4 option and w4 stay in step.
	Weights Allocator `json:"weights"`

	NoiseScale float64 `json:"noiseScale"`
	Blur       float64 `json:"blur"` // 0..100
	Strength   float64 `json:"strength"`
	Density    float64 `json:"density"`
	Frequency  float64 `json:"frequency"`

	// Plane and conic.
	Angle      float64 `json:"angle"` // degrees, 0 = left to right
	Radial     bool    `json:"radial"`
	WaveAmount float64 `json:"waveAmount"`
	Spread     float64 `json:"spread"`
	Offset     Vec2    `json:"offset"`

	// Mesh.
	Style         MeshStyle `json:"style"`
	FlowAngle     float64   `json:"flowAngle"`
	CenterInward  bool      `json:"centerInward"`
	Stretch       bool      `json:"stretch"`
	StretchAmount float64   `json:"stretchAmount"`

	// Conic.
	StartAngle   float64 `json:"startAngle"`
	SpiralAmount float64 `json:"spiralAmount"`

	// Spiral.
	Tightness float64 `json:"tightness"`
	Clockwise bool    `json:"clockwise"`

	// Waves.
	WaveCount float64 `json:"waveCount"`
	Amplitude float64 `json:"amplitude"`
	WaveAngle float64 `json:"waveAngle"`

	Animation      Animation   `json:"animation"`
	Grain          bool        `json:"grain"`
	GrainIntensity float64     `json:"grainIntensity"` // 0..100
	AspectRatio    AspectRatio `json:"aspectRatio"`
}

// DefaultConfig returns the configuration a new document starts from.
func DefaultConfig() GradientConfig {
	return GradientConfig{
		Mode:  ModePlane,
		Theme: ThemeDark,
		Colors: [3]RGBA{
			MustParseColor("#6366f1"),
			MustParseColor("#ec4899"),
			MustParseColor("#f59e0b"),
		},
		Weights:        NewAllocator(DefaultWeights(), false),
		NoiseScale:     1,
		Blur:           50,
		Strength:       1,
		Density:        1,
		Frequency:      1,
		Spread:         0.5,
		Style:          StyleOrganic,
		FlowAngle:      45,
		StretchAmount:  0.5,
		Tightness:      1.5,
		WaveCount:      3,
		Amplitude:      0.5,
		Animation:      Animation{Animate: true, Speed: 1},
		GrainIntensity: 20,
	}
}

// Base returns color0, derived from the theme.
func (c GradientConfig) Base() RGBA {
	return c.Theme.Base()
}

// Palette returns color0..color4. Slot 4 is meaningful only when ok is true.
func (c GradientConfig) Palette() (p [5]RGBA, ok bool) {
	p[0] = c.Base()
	copy(p[1:4], c.Colors[:])
	p[4], ok = c.Color4.Get()
	return p, ok
}

// AddFourthColor sets color4 and gives it a share of the foreground weight.
// If color4 is already present only the colour changes.
func (c *GradientConfig) AddFourthColor(col RGBA) {
	had := c.Color4.IsSet()
	c.Color4 = SomeColor(col)
	if !had {
		c.Weights.AddFourthColor()
	}
}

// RemoveFourthColor retires color4 and returns its weight to colours 1..3.
func (c *GradientConfig) RemoveFourthColor() {
	c.Color4 = NoColor
	c.Weights.RemoveFourthColor()
}

// SetBaseWeight delegates to Allocator.SetBaseWeight.
func (c *GradientConfig) SetBaseWeight(w0 int) {
	c.Weights.SetBaseWeight(w0)
}

// SetForegroundWeight delegates to Allocator.SetForegroundWeight.
func (c *GradientConfig) SetForegroundWeight(index, value int) {
	c.Weights.SetForegroundWeight(index, value)
}

// SetTextSafe delegates to Allocator.ApplyTextSafeMode.
func (c *GradientConfig) SetTextSafe(enabled bool) {
	c.Weights.ApplyTextSafeMode(enabled)
}

// UnmarshalJSON decodes a config and re-derives the allocator's colour4
// flag from the decoded colour4 option.
func (c *GradientConfig) UnmarshalJSON(b []byte) error {
	type plain GradientConfig
	decoded := plain(DefaultConfig())
	if err := json.Unmarshal(b, &decoded); err != nil {
		return err
	}
	*c = GradientConfig(decoded)
	c.Weights.syncColor4(c.Color4.IsSet())
	return nil
}

// Params is the clamped, normalised view of a GradientConfig the evaluator
// and mixer read. Build it once per frame with GradientConfig.Params.
type Params struct {
	Mode      Mode
	Colors    [5]RGBA
	HasColor4 bool
	Weights   Weights

	// Thresholds are the cumulative weight boundaries T0..T3 as fractions.
	Thresholds Thresholds

	// Remaining is (100-w0)/100, the share left for foreground colours.
	Remaining float64

	NoiseScale float64 // >= 0.1
	Blur       float64 // [0,1]
	Strength   float64 // >= 0
	Density    float64 // >= 0
	Frequency  float64 // >= 0.1

	Angle      float64
	Radial     bool
	WaveAmount float64 // >= 0
	Spread     float64 // [0,1]
	Offset     Vec2

	Style         MeshStyle
	FlowAngle     float64
	CenterInward  bool
	Stretch       bool
	StretchAmount float64 // [0,1]

	StartAngle   float64
	SpiralAmount float64

	Tightness float64 // >= 0
	Clockwise bool

	WaveCount float64 // >= 1
	Amplitude float64 // >= 0
	WaveAngle float64

	// Grain is the film grain amount in [0,1]; 0 disables grain.
	Grain float64

	linear [5]linearRGB
}

// Params clamps every numeric input into its valid domain. Negative or NaN
// inputs become defaults instead of propagating into the shading math.
func (c GradientConfig) Params() Params {
	palette, has4 := c.Palette()
	w := c.Weights.Weights()

	p := Params{
		Mode:       c.Mode,
		Colors:     palette,
		HasColor4:  has4,
		Weights:    w,
		Thresholds: ThresholdsOf(w),
		Remaining:  float64(Total-w[0]) / Total,

		NoiseScale: atLeast(c.NoiseScale, 0.1),
		Blur:       clamp01(finite(c.Blur) / 100),
		Strength:   atLeast(c.Strength, 0),
		Density:    atLeast(c.Density, 0),
		Frequency:  atLeast(c.Frequency, 0.1),

		Angle:      finite(c.Angle),
		Radial:     c.Radial,
		WaveAmount: atLeast(c.WaveAmount, 0),
		Spread:     clamp01(finite(c.Spread)),
		Offset:     Vec2{X: finite(c.Offset.X), Y: finite(c.Offset.Y)},

		Style:         c.Style,
		FlowAngle:     finite(c.FlowAngle),
		CenterInward:  c.CenterInward,
		Stretch:       c.Stretch,
		StretchAmount: clamp01(finite(c.StretchAmount)),

		StartAngle:   finite(c.StartAngle),
		SpiralAmount: finite(c.SpiralAmount),

		Tightness: atLeast(c.Tightness, 0),
		Clockwise: c.Clockwise,

		WaveCount: atLeast(c.WaveCount, 1),
		Amplitude: atLeast(c.Amplitude, 0),
		WaveAngle: finite(c.WaveAngle),
	}
	if c.Grain {
		p.Grain = clamp01(finite(c.GrainIntensity) / 100)
	}
	if p.Style > StyleCenter {
		p.Style = StyleOrganic
	}
	for i, col := range palette {
		p.linear[i] = toLinear(col)
	}
	return p
}

// finite maps NaN and ±Inf to 0.
func finite(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}
	return x
}

// atLeast returns max(lo, x), treating non-finite x as lo.
func atLeast(x, lo float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) || x < lo {
		return lo
	}
	return x
}
