// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package viewport maps a pixel-art raster onto a drawing surface.
//
// A Transform (zoom and pan) defines a single affine Matrix from raster
// cells to surface pixels. The Renderer draws through that matrix and
// CellAt hit-tests through its inverse, so the two can never disagree.
//
// The Renderer owns every surface-level resource of a view: the surface
// itself, the GPU texture used by Present and the input subscriptions made
// by Attach. Destroy releases all of them; no callback fires afterwards.
//
// Typical use with a gogpu window:
//
//	r, _ := viewport.NewRenderer(surface.NewImageSurface(w, h), pal,
//	    viewport.WithWindow(window))
//	defer r.Destroy()
//
//	r.Attach(pointerSource, scrollSource, viewport.Handlers{...})
//	app.OnDraw(func(dc *gogpu.Context) {
//	    r.Render(frame)
//	    r.Present(dc.AsTextureDrawer())
//	})
package viewport
