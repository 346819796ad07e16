// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gradcanvas

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/gradient"
)

// Common errors returned by Canvas operations.
var (
	// ErrCanvasClosed is returned when operations are attempted on a closed canvas.
	ErrCanvasClosed = errors.New("gradcanvas: canvas is closed")

	// ErrNilSource is returned when a nil FrameSource is passed.
	ErrNilSource = errors.New("gradcanvas: nil frame source")
)

// textureDestroyer is the interface for destroying textures.
// This matches the gogpu.Texture.Destroy signature.
type textureDestroyer interface {
	Destroy()
}

// surfaceFormatter is implemented by providers that expose their swapchain
// format.
type surfaceFormatter interface {
	SurfaceFormat() gputypes.TextureFormat
}

// FrameSource is where a Canvas reads completed frames from.
// gradient.Renderer implements it.
type FrameSource interface {
	Size() (width, height int)
	Frames() uint64
	ReadPixels(dst []uint8) (int, error)
}

// Canvas uploads completed gradient frames to a GPU texture and draws it.
type Canvas struct {
	mu sync.Mutex

	provider gpucontext.DeviceProvider
	source   FrameSource

	pixels     []byte // RGBA8 copy of the last read frame
	width      int
	height     int
	frames     uint64 // source frame counter at the last read
	read       bool
	dirty      bool // pixels newer than the texture
	texture    any
	oldTexture any // previous texture awaiting deferred destruction

	degraded bool
	closed   bool
}

// New creates a Canvas that presents frames from source. The provider
// should come from gogpu.App.GPUContextProvider(); a nil provider is
// accepted and selects degraded presentation.
func New(provider gpucontext.DeviceProvider, source FrameSource) (*Canvas, error) {
	if source == nil {
		return nil, ErrNilSource
	}
	c := &Canvas{provider: provider, source: source}
	if provider == nil {
		c.degrade("no device provider", nil)
	}
	return c, nil
}

// Size returns the dimensions of the last frame read.
func (c *Canvas) Size() (width, height int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.width, c.height
}

// Degraded reports whether the canvas has fallen back to CPU presentation.
func (c *Canvas) Degraded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.degraded
}

// Format is the pixel format CopyFrame writes: the provider's surface
// format when it is BGRA8, otherwise RGBA8.
func (c *Canvas) Format() gputypes.TextureFormat {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.format()
}

func (c *Canvas) format() gputypes.TextureFormat {
	if c.provider != nil && surfaceFormatOf(c.provider) == gputypes.TextureFormatBGRA8Unorm {
		return gputypes.TextureFormatBGRA8Unorm
	}
	return gputypes.TextureFormatRGBA8Unorm
}

// Sync reads the source's latest completed frame into the CPU copy if it
// changed since the last read. It reports whether a new frame was read.
func (c *Canvas) Sync() (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false, ErrCanvasClosed
	}
	return c.sync()
}

// sync is Sync with mu held.
func (c *Canvas) sync() (bool, error) {
	w, h := c.source.Size()
	frames := c.source.Frames()
	if c.read && frames == c.frames && w == c.width && h == c.height {
		return false, nil
	}

	n := w * h * 4
	if cap(c.pixels) < n {
		c.pixels = make([]byte, n)
	}
	c.pixels = c.pixels[:n]
	if _, err := c.source.ReadPixels(c.pixels); err != nil {
		if !errors.Is(err, gradient.ErrShortBuffer) {
			return false, fmt.Errorf("gradcanvas: read frame: %w", err)
		}
		// Resized between Size and ReadPixels; pick it up next time.
		return false, nil
	}

	if w != c.width || h != c.height {
		c.retireTexture()
	}
	c.width, c.height = w, h
	c.frames = frames
	c.read = true
	c.dirty = true
	return true, nil
}

// CopyFrame copies the CPU frame into dst in Format order and returns the
// number of bytes written.
func (c *Canvas) CopyFrame(dst []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return 0, ErrCanvasClosed
	}
	if len(dst) < len(c.pixels) {
		return 0, fmt.Errorf("%w: need %d bytes, have %d", gradient.ErrShortBuffer, len(c.pixels), len(dst))
	}
	n := copy(dst, c.pixels)
	if c.format() == gputypes.TextureFormatBGRA8Unorm {
		swizzleRB(dst[:n])
	}
	return n, nil
}

// Close releases the texture. Close is idempotent.
func (c *Canvas) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true

	destroyTexture(c.oldTexture)
	c.oldTexture = nil
	destroyTexture(c.texture)
	c.texture = nil

	c.provider = nil
	c.pixels = nil
	return nil
}

// retireTexture defers destruction of the current texture. It may still
// be referenced by in-flight command buffers, so it is destroyed only after
// the next texture upload has waited for the GPU. Caller holds mu.
func (c *Canvas) retireTexture() {
	if c.texture == nil {
		return
	}
	destroyTexture(c.oldTexture)
	c.oldTexture = c.texture
	c.texture = nil
}

// degrade switches to CPU presentation, logging only on the transition.
// Caller holds mu (or owns c exclusively).
func (c *Canvas) degrade(reason string, err error) {
	if c.degraded {
		return
	}
	c.degraded = true
	if err != nil {
		gradient.Logger().Warn("gradient presentation degraded to CPU copy", "reason", reason, "err", err)
		return
	}
	gradient.Logger().Warn("gradient presentation degraded to CPU copy", "reason", reason)
}

func destroyTexture(tex any) {
	if d, ok := tex.(textureDestroyer); ok {
		d.Destroy()
	}
}

func surfaceFormatOf(p any) gputypes.TextureFormat {
	if sf, ok := p.(surfaceFormatter); ok {
		return sf.SurfaceFormat()
	}
	return gputypes.TextureFormatRGBA8Unorm
}

// swizzleRB swaps the R and B channel of every RGBA8 pixel in place.
func swizzleRB(px []byte) {
	for i := 0; i+3 < len(px); i += 4 {
		px[i], px[i+2] = px[i+2], px[i]
	}
}
