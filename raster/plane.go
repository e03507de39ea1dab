// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package raster

// Plane is a detached grid of palette indices, such as a flattened canvas.
// It shares no memory with any Canvas.
type Plane struct {
	Width  int
	Height int
	Pixels []int // row-major
}

// NewPlane returns an all-transparent plane.
func NewPlane(width, height int) *Plane {
	return &Plane{Width: width, Height: height, Pixels: make([]int, width*height)}
}

// Size returns the plane dimensions.
func (p *Plane) Size() (width, height int) { return p.Width, p.Height }

// At returns the index at (x, y), or 0 outside the plane.
func (p *Plane) At(x, y int) int {
	if x < 0 || x >= p.Width || y < 0 || y >= p.Height {
		return 0
	}
	return p.Pixels[y*p.Width+x]
}
