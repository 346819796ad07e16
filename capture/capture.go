// Package capture exports rendered gradient frames: single images at any
// resolution, PNG files, and frame-accurate sequences for video encoders.
package capture

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"

	"golang.org/x/image/draw"

	"github.com/gogpu/gradient"
)

// ErrInvalidRate is returned by Sequence for a non-positive frame rate.
var ErrInvalidRate = errors.New("capture: frame rate must be positive")

// FrameSource hands out copies of the most recently completed frame.
// gradient.Renderer implements it.
type FrameSource interface {
	Snapshot() *image.RGBA
}

// FrameRenderer renders a frame at an explicit time and exposes it.
type FrameRenderer interface {
	FrameSource
	Render(cfg gradient.GradientConfig, t float64) error
}

// Frame reads the latest completed frame from src and composites it at
// width×height. The read is a single snapshot, so it never mixes two
// frames. A frame already at the requested size is returned as is;
// otherwise it is resampled with Catmull-Rom.
func Frame(src FrameSource, width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", gradient.ErrInvalidDimensions, width, height)
	}
	img := src.Snapshot()
	if b := img.Bounds(); b.Dx() == width && b.Dy() == height {
		return img, nil
	}
	return Scale(img, width, height), nil
}

// Scale resamples img to width×height with Catmull-Rom.
func Scale(img image.Image, width, height int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}

// WritePNG encodes img as PNG.
func WritePNG(w io.Writer, img image.Image) error {
	enc := png.Encoder{CompressionLevel: png.BestSpeed}
	if err := enc.Encode(w, img); err != nil {
		return fmt.Errorf("capture: encode png: %w", err)
	}
	return nil
}

// SavePNG writes img to a PNG file at path.
func SavePNG(path string, img image.Image) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("capture: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("capture: %w", cerr)
		}
	}()
	return WritePNG(f, img)
}

// Sequence renders n frames of cfg at fps and passes each to fn in order.
// Frame i is rendered with time frozen at i/fps whatever the animation
// settings, so the output is frame-accurate and repeatable. Sequence stops
// at the first error from the renderer or fn, or when ctx is done.
func Sequence(ctx context.Context, r FrameRenderer, cfg gradient.GradientConfig, fps float64, n int,
	fn func(i int, img *image.RGBA) error) error {
	if fps <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidRate, fps)
	}
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		t := float64(i) / fps
		frame := cfg
		frame.Animation.Frozen = gradient.FrozenAt(t)
		if err := r.Render(frame, t); err != nil {
			return fmt.Errorf("capture: frame %d: %w", i, err)
		}
		if err := fn(i, r.Snapshot()); err != nil {
			return fmt.Errorf("capture: frame %d: %w", i, err)
		}
	}
	gradient.Logger().Debug("sequence captured", "frames", n, "fps", fps)
	return nil
}
