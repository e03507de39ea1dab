// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"image"
	"image/color"
)

// Surface is the rendering target abstraction.
//
// Surfaces are NOT thread-safe. Each surface should be used from a single
// goroutine, or external synchronization must be used.
type Surface interface {
	// Width returns the surface width in pixels.
	Width() int

	// Height returns the surface height in pixels.
	Height() int

	// Clear replaces every pixel with c.
	Clear(c color.Color)

	// FillRect blends c over the pixels of r (source-over).
	// r is clipped to the surface bounds.
	FillRect(r image.Rectangle, c color.Color)

	// Snapshot returns the current contents as an RGBA image.
	// The returned image is a copy; modifications to it do not affect the surface.
	Snapshot() *image.RGBA

	// Close releases all resources associated with the surface.
	// After Close, the surface must not be used.
	// Close is idempotent; multiple calls are safe.
	Close() error
}

// ResizableSurface is an optional interface for surfaces that support resizing.
type ResizableSurface interface {
	Surface

	// Resize changes the surface dimensions. Existing content is discarded.
	Resize(width, height int) error
}

// PixelSource is an optional interface for surfaces that expose their
// backing buffer without copying.
type PixelSource interface {
	Surface

	// Image returns the backing image. It is only valid until the next
	// Resize or Close.
	Image() *image.RGBA
}
