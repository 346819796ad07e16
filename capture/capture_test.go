package capture

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"path/filepath"
	"testing"

	"github.com/gogpu/gradient"
)

func newRenderer(t *testing.T, w, h int) *gradient.Renderer {
	t.Helper()
	r, err := gradient.NewRenderer(w, h, gradient.WithWorkers(2))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { r.Close() })
	return r
}

func TestFrame_NativeSize(t *testing.T) {
	r := newRenderer(t, 16, 9)
	if err := r.Render(gradient.DefaultConfig(), 0); err != nil {
		t.Fatal(err)
	}
	img, err := Frame(r, 16, 9)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(img.Pix, r.Snapshot().Pix) {
		t.Error("Frame at native size differs from Snapshot")
	}
}

func TestFrame_Scaled(t *testing.T) {
	r := newRenderer(t, 32, 18)
	cfg := gradient.DefaultConfig()
	cfg.SetBaseWeight(100)
	if err := r.Render(cfg, 0); err != nil {
		t.Fatal(err)
	}
	img, err := Frame(r, 64, 36)
	if err != nil {
		t.Fatal(err)
	}
	if got := img.Bounds(); got != image.Rect(0, 0, 64, 36) {
		t.Errorf("Bounds() = %v, want 64x36", got)
	}

	// A flat base-only frame stays flat (within dither) after resampling.
	want := cfg.Base().Color()
	c := img.RGBAAt(32, 18)
	for _, d := range []int{int(c.R) - int(want.R), int(c.G) - int(want.G), int(c.B) - int(want.B)} {
		if d < -1 || d > 1 {
			t.Errorf("scaled pixel = %v, want within 1 of %v", c, want)
			break
		}
	}
}

func TestFrame_InvalidSize(t *testing.T) {
	r := newRenderer(t, 4, 4)
	if _, err := Frame(r, 0, 4); !errors.Is(err, gradient.ErrInvalidDimensions) {
		t.Errorf("Frame(0, 4) error = %v, want ErrInvalidDimensions", err)
	}
}

func TestWritePNG(t *testing.T) {
	r := newRenderer(t, 8, 8)
	if err := r.Render(gradient.DefaultConfig(), 0); err != nil {
		t.Fatal(err)
	}
	src := r.Snapshot()

	var buf bytes.Buffer
	if err := WritePNG(&buf, src); err != nil {
		t.Fatal(err)
	}
	decoded, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			gr, gg, gb, ga := decoded.At(x, y).RGBA()
			wr, wg, wb, wa := src.At(x, y).RGBA()
			if gr != wr || gg != wg || gb != wb || ga != wa {
				t.Fatalf("pixel (%d,%d) changed through PNG", x, y)
			}
		}
	}
}

func TestSavePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.png")
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	if err := SavePNG(path, img); err != nil {
		t.Fatalf("SavePNG() error = %v", err)
	}
	if err := SavePNG(filepath.Join(t.TempDir(), "missing", "x.png"), img); err == nil {
		t.Error("SavePNG() into a missing directory succeeded")
	}
}

func TestSequence_FrameAccurate(t *testing.T) {
	r := newRenderer(t, 12, 8)
	cfg := gradient.DefaultConfig()
	cfg.Mode = gradient.ModeWater

	var frames []*image.RGBA
	err := Sequence(context.Background(), r, cfg, 30, 4, func(i int, img *image.RGBA) error {
		if i != len(frames) {
			t.Errorf("frame index = %d, want %d", i, len(frames))
		}
		frames = append(frames, img)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(frames) != 4 {
		t.Fatalf("got %d frames, want 4", len(frames))
	}

	// Frame 3 equals a direct render at t = 3/30.
	ref := newRenderer(t, 12, 8)
	if err := ref.Render(cfg, 3.0/30); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(frames[3].Pix, ref.Snapshot().Pix) {
		t.Error("frame 3 differs from a render at t=0.1")
	}
	if r.FrameTime() != 3.0/30 {
		t.Errorf("FrameTime() = %v, want %v", r.FrameTime(), 3.0/30)
	}
}

func TestSequence_Errors(t *testing.T) {
	r := newRenderer(t, 4, 4)
	cfg := gradient.DefaultConfig()
	noop := func(int, *image.RGBA) error { return nil }

	if err := Sequence(context.Background(), r, cfg, 0, 1, noop); !errors.Is(err, ErrInvalidRate) {
		t.Errorf("fps 0 error = %v, want ErrInvalidRate", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := Sequence(ctx, r, cfg, 24, 3, noop); !errors.Is(err, context.Canceled) {
		t.Errorf("cancelled error = %v, want context.Canceled", err)
	}

	stop := errors.New("stop")
	calls := 0
	err := Sequence(context.Background(), r, cfg, 24, 5, func(i int, _ *image.RGBA) error {
		calls++
		if i == 1 {
			return stop
		}
		return nil
	})
	if !errors.Is(err, stop) || calls != 2 {
		t.Errorf("Sequence() = %v after %d calls, want stop after 2", err, calls)
	}

	r.Close()
	if err := Sequence(context.Background(), r, cfg, 24, 1, noop); !errors.Is(err, gradient.ErrRendererClosed) {
		t.Errorf("closed renderer error = %v, want ErrRendererClosed", err)
	}
}
