// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package surface provides the 2D drawing target the viewport renders into.
//
// A Surface is a fixed-size pixel buffer that supports clearing, filling
// axis-aligned rectangles with source-over blending and reading its
// contents back. Pixel-art rendering only ever needs whole-cell rectangles,
// so there is no path or stroke model.
//
//   - ImageSurface: CPU rendering into an *image.RGBA
//   - Third-party backends via the registry
//
// # Registry
//
// Backends register a factory under a name and a priority:
//
//	surface.Register("image", 10, func(opts surface.Options) (surface.Surface, error) {
//	    return surface.NewImageSurface(opts.Width, opts.Height), nil
//	}, nil)
//
//	s, err := surface.NewSurface(800, 600)            // best available
//	s, err = surface.NewSurfaceByName("image", 64, 64) // specific backend
//
// # Usage
//
//	s := surface.NewImageSurface(320, 240)
//	defer s.Close()
//
//	s.Clear(color.White)
//	s.FillRect(image.Rect(10, 10, 20, 20), color.NRGBA{R: 255, A: 128})
//	img := s.Snapshot()
package surface
