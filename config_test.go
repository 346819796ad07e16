package gradient

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Mode != ModePlane {
		t.Errorf("Mode = %v, want plane", cfg.Mode)
	}
	if got := cfg.Weights.Weights(); got != (Weights{30, 28, 28, 14, 0}) {
		t.Errorf("Weights = %v, want {30 28 28 14 0}", got)
	}
	if cfg.Color4.IsSet() {
		t.Error("Color4 set by default")
	}
	if cfg.Base() != Black {
		t.Errorf("Base() = %v, want black", cfg.Base())
	}
}

func TestMode_Text(t *testing.T) {
	for _, m := range Modes() {
		parsed, err := ParseMode(m.String())
		if err != nil || parsed != m {
			t.Errorf("ParseMode(%q) = %v, %v", m.String(), parsed, err)
		}
	}
	if _, err := ParseMode("plaid"); err == nil {
		t.Error("ParseMode(plaid) succeeded")
	}
	if got := Mode(42).String(); got != "Mode(42)" {
		t.Errorf("Mode(42).String() = %q", got)
	}
}

func TestAspectRatio_Height(t *testing.T) {
	tests := []struct {
		a    AspectRatio
		w    int
		want int
	}{
		{AspectFree, 1000, 321},
		{Aspect16x9, 1280, 720},
		{Aspect4x3, 800, 600},
		{Aspect1x1, 512, 512},
		{Aspect9x16, 900, 1600},
		{Aspect3x1, 1500, 500},
	}
	for _, tt := range tests {
		if got := tt.a.Height(tt.w, 321); got != tt.want {
			t.Errorf("%v.Height(%d) = %d, want %d", tt.a, tt.w, got, tt.want)
		}
	}
}

func TestConfig_FourthColorLockstep(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AddFourthColor(MustParseColor("#10b981"))
	if !cfg.Color4.IsSet() || !cfg.Weights.HasColor4() {
		t.Fatal("AddFourthColor left option and allocator out of step")
	}
	if w := cfg.Weights.Weights(); w[4] != 14 {
		t.Errorf("w4 = %d, want 14", w[4])
	}

	// Changing an existing colour4 does not move weights.
	before := cfg.Weights.Weights()
	cfg.AddFourthColor(MustParseColor("#0ea5e9"))
	if cfg.Weights.Weights() != before {
		t.Errorf("recolouring colour4 changed weights to %v", cfg.Weights.Weights())
	}

	cfg.RemoveFourthColor()
	if cfg.Color4.IsSet() || cfg.Weights.HasColor4() || cfg.Weights.Weights()[4] != 0 {
		t.Errorf("RemoveFourthColor left colour4 behind: %v", cfg.Weights.Weights())
	}
}

func TestConfig_SnapshotIsolation(t *testing.T) {
	cfg := DefaultConfig()
	snap := cfg
	cfg.SetBaseWeight(65)
	cfg.Colors[0] = White
	cfg.AddFourthColor(White)
	if snap.Weights.Weights() != DefaultWeights() || snap.Colors[0] == White || snap.Color4.IsSet() {
		t.Error("mutating a config changed an earlier copy")
	}
}

func TestConfig_JSON(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Mode = ModeSpiral
	cfg.Theme = ThemeLight
	cfg.AddFourthColor(MustParseColor("#10b981"))
	cfg.SetBaseWeight(40)
	cfg.Animation.Frozen = FrozenAt(3)

	b, err := json.Marshal(cfg)
	if err != nil {
		t.Fatal(err)
	}
	var back GradientConfig
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatal(err)
	}

	want := cfg
	want.Animation.Frozen = Running
	opts := cmp.AllowUnexported(GradientConfig{}, Allocator{}, OptionalColor{}, OptionalTime{})
	if diff := cmp.Diff(want, back, opts); diff != "" {
		t.Errorf("JSON round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestConfig_UnmarshalRepairsWeights(t *testing.T) {
	var cfg GradientConfig
	in := `{"mode":"water","colors":["#ff0000","#00ff00","#0000ff"],"color4":"#ffffff","weights":[30,35,35,0,0]}`
	if err := json.Unmarshal([]byte(in), &cfg); err != nil {
		t.Fatal(err)
	}
	w := cfg.Weights.Weights()
	if !cfg.Weights.HasColor4() || w[4] < ForegroundFloor || w.Sum() != Total {
		t.Errorf("decoded weights = %v (colour4 %v), want colour4 with a floor share", w, cfg.Weights.HasColor4())
	}
	if cfg.NoiseScale != 1 {
		t.Errorf("missing fields not defaulted: NoiseScale = %v", cfg.NoiseScale)
	}
}

func TestParams_Clamps(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Frequency = 0
	cfg.Density = -2
	cfg.Strength = -1
	cfg.Blur = 250
	cfg.Spread = 3
	cfg.WaveCount = 0
	cfg.GrainIntensity = 40
	cfg.Grain = true

	p := cfg.Params()
	checks := []struct {
		name      string
		got, want float64
	}{
		{"Frequency", p.Frequency, 0.1},
		{"Density", p.Density, 0},
		{"Strength", p.Strength, 0},
		{"Blur", p.Blur, 1},
		{"Spread", p.Spread, 1},
		{"WaveCount", p.WaveCount, 1},
		{"Grain", p.Grain, 0.4},
		{"Remaining", p.Remaining, 0.7},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("Params().%s = %v, want %v", c.name, c.got, c.want)
		}
	}
}
