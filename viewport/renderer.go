// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package viewport

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"math"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/pixel/surface"
)

// Renderer errors.
var (
	// ErrDestroyed is returned when a Renderer is used after Destroy.
	ErrDestroyed = errors.New("viewport: renderer destroyed")

	// ErrNilSurface is returned when a Renderer has no surface.
	ErrNilSurface = errors.New("viewport: nil surface")

	// ErrNilPalette is returned by NewRenderer without a palette.
	ErrNilPalette = errors.New("viewport: nil palette")

	// ErrNotResizable is returned by Resize when the surface cannot resize.
	ErrNotResizable = errors.New("viewport: surface is not resizable")
)

// Palette resolves palette indices to colors. Color reports false for the
// transparent entry and for unknown indices; such cells are not drawn.
type Palette interface {
	Color(index int) (color.NRGBA, bool)
}

// Layer is the read-only view of a layer the renderer needs.
type Layer interface {
	Visible() bool
	Opacity() float64
	At(x, y int) int
}

// Frame is everything one Render call draws.
type Frame struct {
	Width, Height int

	// Layers are composited bottom to top.
	Layers []Layer

	Transform Transform
}

// Renderer draws frames onto a surface and presents the surface on a GPU
// texture.
//
// Renderer is NOT safe for concurrent use. Input callbacks registered by
// Attach are expected to run on the same goroutine as Render.
type Renderer struct {
	surf surface.Surface
	pal  Palette
	cfg  config

	redrawPending bool

	// attachGen invalidates callbacks from earlier Attach calls.
	attachGen uint64
	handlers  Handlers

	texture    gpucontext.Texture
	oldTexture gpucontext.Texture // replaced on resize, destroyed after the next upload
	texW, texH int
	dirty      bool

	destroyed bool
}

// NewRenderer creates a Renderer drawing into s with colors from pal.
// The Renderer takes ownership of s and closes it in Destroy.
func NewRenderer(s surface.Surface, pal Palette, opts ...Option) (*Renderer, error) {
	if s == nil {
		return nil, ErrNilSurface
	}
	if pal == nil {
		return nil, ErrNilPalette
	}
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Renderer{
		surf:  s,
		pal:   pal,
		cfg:   cfg,
		dirty: true,
	}, nil
}

// Surface returns the drawing surface, or nil after Destroy.
func (r *Renderer) Surface() surface.Surface {
	return r.surf
}

// Size returns the surface size in pixels.
func (r *Renderer) Size() (width, height int) {
	if r.surf == nil {
		return 0, 0
	}
	return r.surf.Width(), r.surf.Height()
}

// Destroyed reports whether Destroy has been called.
func (r *Renderer) Destroyed() bool {
	return r.destroyed
}

// Resize changes the surface size. The contents are lost until the next
// Render.
func (r *Renderer) Resize(width, height int) error {
	if r.destroyed {
		return ErrDestroyed
	}
	rs, ok := r.surf.(surface.ResizableSurface)
	if !ok {
		return ErrNotResizable
	}
	if err := rs.Resize(width, height); err != nil {
		return fmt.Errorf("viewport: resize surface: %w", err)
	}
	r.dirty = true
	return nil
}

// FitWindow resizes the surface to the physical size of the attached
// window. It does nothing without a window.
func (r *Renderer) FitWindow() error {
	if r.cfg.window == nil {
		return nil
	}
	w, h := r.cfg.window.Size()
	sf := r.cfg.window.ScaleFactor()
	return r.Resize(int(math.Round(float64(w)*sf)), int(math.Round(float64(h)*sf)))
}

// ClientRect describes the surface for CellAt: its on-screen size comes
// from the window in logical points when one is attached, otherwise it
// equals the backing size.
func (r *Renderer) ClientRect() Rect {
	bw, bh := r.Size()
	rect := Rect{
		Width:         float64(bw),
		Height:        float64(bh),
		BackingWidth:  bw,
		BackingHeight: bh,
	}
	if r.cfg.window != nil {
		if w, h := r.cfg.window.Size(); w > 0 && h > 0 {
			rect.Width, rect.Height = float64(w), float64(h)
		}
	}
	return rect
}

// RequestRedraw asks the window for a new frame. Requests made before
// the next Render are coalesced into one.
func (r *Renderer) RequestRedraw() {
	if r.destroyed || r.redrawPending {
		return
	}
	r.redrawPending = true
	if r.cfg.window != nil {
		r.cfg.window.RequestRedraw()
	}
}

// RedrawPending reports whether a redraw was requested since the last
// Render.
func (r *Renderer) RedrawPending() bool {
	return r.redrawPending
}

// Render redraws the whole surface from f. It keeps no state between calls
// apart from marking the surface for the next Present.
func (r *Renderer) Render(f Frame) error {
	if r.destroyed {
		return ErrDestroyed
	}
	if r.surf == nil {
		return ErrNilSurface
	}
	r.redrawPending = false
	r.dirty = true

	s := r.surf
	s.Clear(r.cfg.background)
	if f.Width <= 0 || f.Height <= 0 {
		return nil
	}

	m := f.Transform.Matrix()
	inv, ok := m.Inverse()
	if !ok {
		return nil
	}
	sw, sh := s.Width(), s.Height()
	cells, ok := visibleCells(inv, f.Width, f.Height, sw, sh)
	if !ok {
		return nil
	}

	area := cellRect(m, cells.Min.X, cells.Min.Y).Union(cellRect(m, cells.Max.X-1, cells.Max.Y-1))
	area = area.Intersect(image.Rect(0, 0, sw, sh))
	r.drawCheckerboard(area, roundPoint(m.TransformPoint(Point{})))

	for _, l := range f.Layers {
		r.drawLayer(l, m, cells)
	}
	if r.cfg.grid && f.Transform.Zoom >= r.cfg.gridMinZoom {
		r.drawGrid(m, cells, f.Width, f.Height)
	}
	if r.cfg.borders {
		r.drawBorders(f.Layers, m, cells)
	}
	return nil
}

// visibleCells returns the cell range that intersects the surface. inv
// maps surface space to raster space.
func visibleCells(inv Matrix, w, h, sw, sh int) (image.Rectangle, bool) {
	p0 := inv.TransformPoint(Pt(0, 0))
	p1 := inv.TransformPoint(Pt(float64(sw), float64(sh)))

	x0 := max(0, int(math.Floor(min(p0.X, p1.X))))
	y0 := max(0, int(math.Floor(min(p0.Y, p1.Y))))
	x1 := min(w, int(math.Ceil(max(p0.X, p1.X))))
	y1 := min(h, int(math.Ceil(max(p0.Y, p1.Y))))
	if x0 >= x1 || y0 >= y1 {
		return image.Rectangle{}, false
	}
	return image.Rect(x0, y0, x1, y1), true
}

// cellRect returns the surface pixels covered by cell (x, y). Edges are
// rounded, so neighboring cells tile without gaps or overlap.
func cellRect(m Matrix, x, y int) image.Rectangle {
	a := roundPoint(m.TransformPoint(Pt(float64(x), float64(y))))
	b := roundPoint(m.TransformPoint(Pt(float64(x+1), float64(y+1))))
	return image.Rectangle{Min: a, Max: b}.Canon()
}

func roundPoint(p Point) image.Point {
	return image.Pt(int(math.Round(p.X)), int(math.Round(p.Y)))
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// drawCheckerboard fills area with squares anchored at the raster origin,
// so the pattern moves with the raster when panning.
func (r *Renderer) drawCheckerboard(area image.Rectangle, origin image.Point) {
	if area.Empty() {
		return
	}
	size := r.cfg.checkerSize
	j0 := floorDiv(area.Min.Y-origin.Y, size)
	i0 := floorDiv(area.Min.X-origin.X, size)
	for j := j0; origin.Y+j*size < area.Max.Y; j++ {
		for i := i0; origin.X+i*size < area.Max.X; i++ {
			sq := image.Rect(origin.X+i*size, origin.Y+j*size, origin.X+(i+1)*size, origin.Y+(j+1)*size)
			c := r.cfg.checkerLight
			if (i+j)&1 != 0 {
				c = r.cfg.checkerDark
			}
			r.surf.FillRect(sq.Intersect(area), c)
		}
	}
}

// opacityAlpha converts a layer opacity to an 8-bit alpha.
func opacityAlpha(opacity float64) uint8 {
	if !(opacity > 0) {
		return 0
	}
	if opacity >= 1 {
		return 0xff
	}
	return uint8(opacity*255 + 0.5)
}

func (r *Renderer) drawLayer(l Layer, m Matrix, cells image.Rectangle) {
	if l == nil || !l.Visible() {
		return
	}
	alpha := opacityAlpha(l.Opacity())
	if alpha == 0 {
		return
	}
	for y := cells.Min.Y; y < cells.Max.Y; y++ {
		for x := cells.Min.X; x < cells.Max.X; x++ {
			index := l.At(x, y)
			if index == 0 {
				continue
			}
			c, ok := r.pal.Color(index)
			if !ok {
				continue
			}
			if alpha != 0xff {
				c.A = uint8((uint32(c.A)*uint32(alpha) + 127) / 255)
			}
			r.surf.FillRect(cellRect(m, x, y), c)
		}
	}
}

// drawGrid draws 1-pixel lines on the cell boundaries within cells. The
// raster's right and bottom edges are drawn just inside the raster.
func (r *Renderer) drawGrid(m Matrix, cells image.Rectangle, w, h int) {
	top := roundPoint(m.TransformPoint(Pt(0, float64(cells.Min.Y)))).Y
	bottom := roundPoint(m.TransformPoint(Pt(0, float64(cells.Max.Y)))).Y
	left := roundPoint(m.TransformPoint(Pt(float64(cells.Min.X), 0))).X
	right := roundPoint(m.TransformPoint(Pt(float64(cells.Max.X), 0))).X

	for x := cells.Min.X; x <= cells.Max.X; x++ {
		sx := roundPoint(m.TransformPoint(Pt(float64(x), 0))).X
		if x == w {
			sx--
		}
		r.surf.FillRect(image.Rect(sx, top, sx+1, bottom), r.cfg.gridColor)
	}
	for y := cells.Min.Y; y <= cells.Max.Y; y++ {
		sy := roundPoint(m.TransformPoint(Pt(0, float64(y)))).Y
		if y == h {
			sy--
		}
		r.surf.FillRect(image.Rect(left, sy, right, sy+1), r.cfg.gridColor)
	}
}

// drawBorders outlines every cell that some visible layer paints.
func (r *Renderer) drawBorders(layers []Layer, m Matrix, cells image.Rectangle) {
	for y := cells.Min.Y; y < cells.Max.Y; y++ {
		for x := cells.Min.X; x < cells.Max.X; x++ {
			if !r.painted(layers, x, y) {
				continue
			}
			rc := cellRect(m, x, y)
			if rc.Dx() < 2 || rc.Dy() < 2 {
				continue
			}
			c := r.cfg.borderColor
			r.surf.FillRect(image.Rect(rc.Min.X, rc.Min.Y, rc.Max.X, rc.Min.Y+1), c)
			r.surf.FillRect(image.Rect(rc.Min.X, rc.Max.Y-1, rc.Max.X, rc.Max.Y), c)
			r.surf.FillRect(image.Rect(rc.Min.X, rc.Min.Y+1, rc.Min.X+1, rc.Max.Y-1), c)
			r.surf.FillRect(image.Rect(rc.Max.X-1, rc.Min.Y+1, rc.Max.X, rc.Max.Y-1), c)
		}
	}
}

func (r *Renderer) painted(layers []Layer, x, y int) bool {
	for _, l := range layers {
		if l == nil || !l.Visible() || opacityAlpha(l.Opacity()) == 0 {
			continue
		}
		if _, ok := r.pal.Color(l.At(x, y)); ok {
			return true
		}
	}
	return false
}

// Destroy releases the surface, the GPU textures and the input
// subscriptions. It is idempotent and safe on a zero Renderer.
func (r *Renderer) Destroy() {
	if r == nil || r.destroyed {
		return
	}
	r.destroyed = true
	r.attachGen++
	r.handlers = Handlers{}
	r.redrawPending = false

	r.releaseTexture(r.oldTexture)
	r.releaseTexture(r.texture)
	r.oldTexture, r.texture = nil, nil

	if r.surf != nil {
		if err := r.surf.Close(); err != nil {
			r.logger().Warn("viewport: surface close failed", "err", err)
		}
		r.surf = nil
	}
}

func (r *Renderer) logger() *slog.Logger {
	if r.cfg.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return r.cfg.logger
}
