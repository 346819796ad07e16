// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package gradcanvas presents gradient frames in gogpu GPU-accelerated
// windows.
//
// The data flow is:
//
//	gradient.Renderer (CPU frame) -> RGBA8 staging copy -> GPU Texture -> Window
//
// # Usage
//
//	r, _ := gradient.NewRenderer(1280, 720)
//	canvas, _ := gradcanvas.New(app.GPUContextProvider(), r)
//	defer canvas.Close()
//
//	app.OnDraw(func(dc *gogpu.Context) {
//	    r.Tick(store)
//	    canvas.Present(dc.AsTextureDrawer())
//	})
//
// # Degraded Presentation
//
// Without a GPU context (nil provider, nil draw context, no texture
// creator, or a failing upload) the canvas keeps presenting to its CPU
// copy of the last completed frame instead. The failure is logged once at
// warn level and Present still returns nil; read the copy with CopyFrame.
//
// # Thread Safety
//
// All Canvas methods are safe for concurrent use.
//
// # Integration Without Circular Imports
//
// This package depends only on gpucontext interfaces, never on gogpu
// itself.
package gradcanvas
