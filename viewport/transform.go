// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package viewport

import "math"

// Default zoom bounds.
const (
	DefaultMinZoom = 0.1
	DefaultMaxZoom = 10
)

// ZoomRange bounds the zoom factor.
type ZoomRange struct {
	Min, Max float64
}

// DefaultZoomRange returns [DefaultMinZoom, DefaultMaxZoom].
func DefaultZoomRange() ZoomRange {
	return ZoomRange{Min: DefaultMinZoom, Max: DefaultMaxZoom}
}

// Valid reports whether the range is positive and ordered.
func (r ZoomRange) Valid() bool {
	return r.Min > 0 && r.Max >= r.Min && !math.IsInf(r.Max, 0)
}

// Clamp limits z to the range. NaN maps to Min.
func (r ZoomRange) Clamp(z float64) float64 {
	if math.IsNaN(z) {
		return r.Min
	}
	return min(max(z, r.Min), r.Max)
}

// Transform is the viewport state: raster cell (x, y) covers the surface
// square starting at (PanX + x*s, PanY + y*s) with edge s = Zoom*CellSize.
//
// Rendering and hit testing both go through Matrix, so a cell drawn at a
// surface position is the cell found there.
type Transform struct {
	Zoom float64
	PanX float64
	PanY float64

	// CellSize is the edge of one cell in surface pixels at zoom 1.
	// Zero means 1.
	CellSize float64
}

// DefaultTransform returns zoom 1 with no pan.
func DefaultTransform() Transform {
	return Transform{Zoom: 1}
}

// Scale returns the edge length of one cell in surface pixels.
func (t Transform) Scale() float64 {
	cs := t.CellSize
	if cs <= 0 {
		cs = 1
	}
	return t.Zoom * cs
}

// Matrix returns Translate(PanX, PanY) × Scale(s, s), mapping raster space
// to surface space.
func (t Transform) Matrix() Matrix {
	s := t.Scale()
	return Translate(t.PanX, t.PanY).Multiply(Scale(s, s))
}

// ToSurface maps a raster point to surface space.
func (t Transform) ToSurface(p Point) Point {
	return t.Matrix().TransformPoint(p)
}

// ToRaster maps a surface point to raster space. A singular transform
// (zero zoom) leaves p unchanged.
func (t Transform) ToRaster(p Point) Point {
	inv, ok := t.Matrix().Inverse()
	if !ok {
		return p
	}
	return inv.TransformPoint(p)
}

// ZoomAt returns t zoomed to newZoom (clamped to r) such that the raster
// point under surface point (sx, sy) stays under it.
func ZoomAt(t Transform, sx, sy, newZoom float64, r ZoomRange) Transform {
	anchor := t.ToRaster(Pt(sx, sy))

	out := t
	out.Zoom = r.Clamp(newZoom)
	s := out.Scale()
	out.PanX = sx - anchor.X*s
	out.PanY = sy - anchor.Y*s
	return out
}

// Rect is the on-screen box of a surface (in client coordinates, e.g.
// logical window points) together with the size of its backing buffer in
// surface pixels. The two differ on HiDPI displays or when the surface is
// stretched.
type Rect struct {
	Left, Top     float64
	Width, Height float64

	BackingWidth, BackingHeight int
}

// ToBacking maps a client point into backing pixels. A rect without a
// usable size maps 1:1 relative to its origin.
func (r Rect) ToBacking(cx, cy float64) Point {
	x, y := cx-r.Left, cy-r.Top
	if r.Width > 0 && r.BackingWidth > 0 {
		x *= float64(r.BackingWidth) / r.Width
	}
	if r.Height > 0 && r.BackingHeight > 0 {
		y *= float64(r.BackingHeight) / r.Height
	}
	return Pt(x, y)
}

// CellAt maps client point (cx, cy) to the raster cell of a width×height
// raster under t. ok is false when the point falls outside the raster.
func CellAt(cx, cy float64, rect Rect, t Transform, width, height int) (x, y int, ok bool) {
	inv, ok := t.Matrix().Inverse()
	if !ok {
		return 0, 0, false
	}
	p := inv.TransformPoint(rect.ToBacking(cx, cy))
	if math.IsNaN(p.X) || math.IsNaN(p.Y) {
		return 0, 0, false
	}
	fx, fy := math.Floor(p.X), math.Floor(p.Y)
	if fx < 0 || fy < 0 || fx >= float64(width) || fy >= float64(height) {
		return 0, 0, false
	}
	return int(fx), int(fy), true
}
