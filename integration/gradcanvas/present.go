// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gradcanvas

import (
	"fmt"

	"github.com/gogpu/gpucontext"
)

// Present draws the latest completed frame at (0, 0).
//
// The dc parameter should be obtained from gogpu.Context.AsTextureDrawer().
// GPU failures never surface as errors: the canvas degrades to its CPU copy
// and Present returns nil. Only a closed canvas or an unreadable source is
// reported.
func (c *Canvas) Present(dc gpucontext.TextureDrawer) error {
	return c.PresentAt(dc, 0, 0)
}

// PresentAt is Present at position (x, y).
func (c *Canvas) PresentAt(dc gpucontext.TextureDrawer, x, y float32) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrCanvasClosed
	}
	if _, err := c.sync(); err != nil {
		return err
	}
	if !c.read {
		return nil
	}

	if c.provider == nil {
		return nil
	}
	if dc == nil {
		c.degrade("no draw context", nil)
		return nil
	}

	tex, err := c.upload(dc)
	if err != nil {
		c.degrade("texture upload failed", err)
		return nil
	}
	gpuTex, ok := tex.(gpucontext.Texture)
	if !ok {
		c.degrade("texture does not implement gpucontext.Texture", nil)
		return nil
	}
	if err := dc.DrawTexture(gpuTex, x, y); err != nil {
		c.degrade("draw failed", err)
		return nil
	}
	c.degraded = false
	return nil
}

// upload makes the texture hold the CPU frame, creating it lazily. Caller
// holds mu.
func (c *Canvas) upload(dc gpucontext.TextureDrawer) (any, error) {
	if c.texture != nil && !c.dirty {
		return c.texture, nil
	}

	if c.texture == nil {
		creator := dc.TextureCreator()
		if creator == nil {
			return nil, fmt.Errorf("gradcanvas: draw context has no texture creator")
		}
		// NewTextureFromRGBA waits for the GPU, so the retired texture is
		// no longer referenced once it returns.
		tex, err := creator.NewTextureFromRGBA(c.width, c.height, c.pixels)
		if err != nil {
			return nil, fmt.Errorf("gradcanvas: NewTextureFromRGBA failed: %w", err)
		}
		c.texture = tex
		destroyTexture(c.oldTexture)
		c.oldTexture = nil
		c.dirty = false
		return c.texture, nil
	}

	if updater, ok := c.texture.(gpucontext.TextureUpdater); ok {
		if err := updater.UpdateData(c.pixels); err != nil {
			return nil, fmt.Errorf("gradcanvas: texture update failed: %w", err)
		}
	}
	c.dirty = false
	return c.texture, nil
}
