// Command gradientdemo renders gradient frames to PNG files.
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gogpu/gradient"
	"github.com/gogpu/gradient/capture"
	"github.com/gogpu/gradient/css"
	"github.com/gogpu/gradient/store"
)

func main() {
	var (
		mode    = flag.String("mode", "", "gradient mode (mesh, sphere, plane, water, conic, spiral, waves); overrides the preset")
		width   = flag.Int("width", 1280, "image width")
		height  = flag.Int("height", 0, "image height (0 derives it from the preset's aspect ratio, else 720)")
		scale   = flag.Float64("scale", 1, "render at width×scale and resample to the output size")
		t       = flag.Float64("time", 0, "frame time in seconds")
		preset  = flag.String("preset", "", "preset JSON file written by gradterm or store.MarshalPreset")
		output  = flag.String("out", "gradient.png", "output file; with -frames, a directory")
		frames  = flag.Int("frames", 0, "render a sequence of this many frames instead of one")
		fps     = flag.Float64("fps", 30, "sequence frame rate")
		showCSS = flag.Bool("css", false, "print the CSS background for the configuration")
		verbose = flag.Bool("v", false, "verbose logging")
	)
	flag.Parse()

	if *verbose {
		gradient.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	cfg, err := loadConfig(*preset, *mode)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	h := *height
	if h <= 0 {
		h = cfg.AspectRatio.Height(*width, 720)
	}

	rw, rh := *width, h
	if *scale > 0 && *scale != 1 {
		rw, rh = int(float64(*width)**scale), int(float64(h)**scale)
	}
	r, err := gradient.NewRenderer(rw, rh)
	if err != nil {
		log.Fatalf("Failed to create renderer: %v", err)
	}
	defer r.Close()

	if *showCSS {
		fmt.Println("background: " + css.Gradient(cfg) + ";")
	}

	if *frames > 0 {
		if err := writeSequence(r, cfg, *frames, *fps, *width, h, *output); err != nil {
			log.Fatalf("Failed to write sequence: %v", err)
		}
		log.Printf("Sequence of %d frames saved to %s (%dx%d @ %g fps)\n", *frames, *output, *width, h, *fps)
		return
	}

	if err := r.Render(cfg, *t); err != nil {
		log.Fatalf("Failed to render: %v", err)
	}
	img, err := capture.Frame(r, *width, h)
	if err != nil {
		log.Fatalf("Failed to capture: %v", err)
	}
	if err := capture.SavePNG(*output, img); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}

	log.Printf("Gradient saved to %s (%dx%d, %s, t=%g)\n", *output, *width, h, cfg.Mode, *t)
}

// loadConfig reads a preset (or starts from the defaults) and applies the
// mode override.
func loadConfig(path, mode string) (gradient.GradientConfig, error) {
	cfg := gradient.DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
		if _, cfg, err = store.UnmarshalPreset(data); err != nil {
			return cfg, err
		}
	}
	if mode != "" {
		m, err := gradient.ParseMode(strings.ToLower(mode))
		if err != nil {
			return cfg, err
		}
		cfg.Mode = m
	}
	return cfg, nil
}

func writeSequence(r *gradient.Renderer, cfg gradient.GradientConfig, n int, fps float64, w, h int, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	return capture.Sequence(context.Background(), r, cfg, fps, n, func(i int, img *image.RGBA) error {
		out := image.Image(img)
		if b := img.Bounds(); b.Dx() != w || b.Dy() != h {
			out = capture.Scale(img, w, h)
		}
		return capture.SavePNG(filepath.Join(dir, fmt.Sprintf("frame_%05d.png", i)), out)
	})
}
