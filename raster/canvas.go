// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package raster

import (
	"errors"
	"fmt"
	"log/slog"
)

// ErrInvalidDimensions is returned when a width or height is not positive
// or the canvas would exceed MaxCells.
var ErrInvalidDimensions = errors.New("raster: invalid dimensions")

// MaxCells bounds width*height of a canvas.
const MaxCells = 1 << 24

func checkDimensions(width, height int) error {
	if width <= 0 || height <= 0 || width > MaxCells/height {
		return fmt.Errorf("%w: width=%d, height=%d", ErrInvalidDimensions, width, height)
	}
	return nil
}

// Direction moves a layer within the stack.
type Direction int

const (
	// Up moves a layer one step toward the top of the stack.
	Up Direction = iota
	// Down moves a layer one step toward the bottom of the stack.
	Down
)

// Option configures a Canvas.
type Option func(*Canvas)

// WithLogger sets the logger used for diagnostics. Nil keeps the default
// silent logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Canvas) {
		if l != nil {
			c.log = l
		}
	}
}

// WithLayerName sets the name of the initial layer.
func WithLayerName(name string) Option {
	return func(c *Canvas) {
		c.layers[0].name = normalizeName(name)
	}
}

// Canvas is the raster model: fixed-size grids of palette indices stacked as
// layers, plus the active-layer cursor and selection.
//
// A Canvas always owns at least one layer, the active ID always resolves, and
// every layer grid has exactly the canvas dimensions.
//
// Canvas is NOT safe for concurrent use.
type Canvas struct {
	width  int
	height int

	layers    []*Layer // bottom to top
	active    LayerID
	selection Selection

	// nameSeq numbers default layer names; it only grows.
	nameSeq int

	log *slog.Logger
}

// New creates a canvas with one empty layer.
func New(width, height int, opts ...Option) (*Canvas, error) {
	if err := checkDimensions(width, height); err != nil {
		return nil, err
	}

	c := &Canvas{
		width:  width,
		height: height,
		log:    slog.New(slog.DiscardHandler),
	}
	first := newLayer(c.nextName(), width, height)
	c.layers = []*Layer{first}
	c.active = first.id

	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Width returns the canvas width in cells.
func (c *Canvas) Width() int { return c.width }

// Height returns the canvas height in cells.
func (c *Canvas) Height() int { return c.height }

// Size returns width and height.
func (c *Canvas) Size() (width, height int) { return c.width, c.height }

// Layers returns the layer stack, bottom first. The slice is a copy; the
// layers are live and must only be changed through Canvas methods.
func (c *Canvas) Layers() []*Layer {
	out := make([]*Layer, len(c.layers))
	copy(out, c.layers)
	return out
}

// LayerCount returns the number of layers.
func (c *Canvas) LayerCount() int { return len(c.layers) }

// Layer returns the layer with the given ID.
func (c *Canvas) Layer(id LayerID) (*Layer, bool) {
	i := c.indexOf(id)
	if i < 0 {
		return nil, false
	}
	return c.layers[i], true
}

// ActiveLayer returns the active layer. It never returns nil.
func (c *Canvas) ActiveLayer() *Layer {
	return c.layers[c.indexOf(c.active)]
}

// ActiveLayerID returns the ID of the active layer.
func (c *Canvas) ActiveLayerID() LayerID { return c.active }

// SetActiveLayer makes id the active layer. It reports false when id does
// not resolve.
func (c *Canvas) SetActiveLayer(id LayerID) bool {
	if c.indexOf(id) < 0 {
		return false
	}
	c.active = id
	return true
}

// SetPixel writes index at (x, y) of the given layer. It is a no-op that
// reports false when the cell is outside the canvas, the layer is locked or
// unknown, or index is negative. It also reports false when the cell already
// holds index.
func (c *Canvas) SetPixel(id LayerID, x, y, index int) bool {
	if index < 0 {
		return false
	}
	l, ok := c.Layer(id)
	if !ok || l.locked {
		return false
	}
	return l.set(x, y, index)
}

// GetPixel returns the index at (x, y) of the given layer, or 0 when the
// cell is outside the canvas or the layer is unknown.
func (c *Canvas) GetPixel(id LayerID, x, y int) int {
	l, ok := c.Layer(id)
	if !ok {
		return 0
	}
	return l.At(x, y)
}

// ClearLayer sets every cell of the layer to 0. Locked layers are left as is.
func (c *Canvas) ClearLayer(id LayerID) bool {
	l, ok := c.Layer(id)
	if !ok || l.locked || l.IsEmpty() {
		return false
	}
	clear(l.pixels)
	return true
}

// Resize changes the canvas dimensions. Cells inside both the old and new
// bounds keep their value; new cells are 0. Either every layer is resized or,
// on error, none is.
func (c *Canvas) Resize(width, height int) error {
	if err := checkDimensions(width, height); err != nil {
		return err
	}
	if width == c.width && height == c.height {
		return nil
	}

	grids := make([][]int, len(c.layers))
	for i, l := range c.layers {
		grids[i] = l.resized(width, height)
	}
	for i, l := range c.layers {
		l.pixels = grids[i]
		l.width = width
		l.height = height
	}

	c.log.Debug("raster: resized",
		"from", fmt.Sprintf("%dx%d", c.width, c.height),
		"to", fmt.Sprintf("%dx%d", width, height),
		"layers", len(c.layers))

	c.width = width
	c.height = height
	if c.selection.Active {
		c.selection = c.selection.normalized(width, height)
	}
	return nil
}

// AddLayer appends an empty layer on top of the stack and makes it active.
// An empty name gets a generated "Layer N" name.
func (c *Canvas) AddLayer(name string) *Layer {
	name = normalizeName(name)
	if name == "" {
		name = c.nextName()
	}
	l := newLayer(name, c.width, c.height)
	c.layers = append(c.layers, l)
	c.active = l.id
	return l
}

// RemoveLayer deletes a layer. Removing the last remaining layer is rejected
// and reports false. When the active layer is removed, the topmost remaining
// layer becomes active.
func (c *Canvas) RemoveLayer(id LayerID) bool {
	if len(c.layers) <= 1 {
		return false
	}
	i := c.indexOf(id)
	if i < 0 {
		return false
	}
	c.layers = append(c.layers[:i], c.layers[i+1:]...)
	if c.active == id {
		c.active = c.layers[len(c.layers)-1].id
	}
	return true
}

// DuplicateLayer copies a layer, pixels included, and inserts the copy
// directly above the source. The copy gets a fresh ID and becomes active.
func (c *Canvas) DuplicateLayer(id LayerID) (*Layer, bool) {
	i := c.indexOf(id)
	if i < 0 {
		return nil, false
	}
	dup := c.layers[i].clone()
	dup.id = newLayerID()
	dup.name = c.layers[i].name + " copy"

	c.layers = append(c.layers, nil)
	copy(c.layers[i+2:], c.layers[i+1:])
	c.layers[i+1] = dup
	c.active = dup.id
	return dup, true
}

// Reorder swaps a layer with its neighbor in the given direction. It is a
// no-op at the top or bottom of the stack.
func (c *Canvas) Reorder(id LayerID, dir Direction) bool {
	i := c.indexOf(id)
	if i < 0 {
		return false
	}
	j := i + 1
	if dir == Down {
		j = i - 1
	}
	if j < 0 || j >= len(c.layers) {
		return false
	}
	c.layers[i], c.layers[j] = c.layers[j], c.layers[i]
	return true
}

// ToggleVisibility flips the visible flag.
func (c *Canvas) ToggleVisibility(id LayerID) bool {
	l, ok := c.Layer(id)
	if !ok {
		return false
	}
	l.visible = !l.visible
	return true
}

// ToggleLock flips the locked flag.
func (c *Canvas) ToggleLock(id LayerID) bool {
	l, ok := c.Layer(id)
	if !ok {
		return false
	}
	l.locked = !l.locked
	return true
}

// SetOpacity sets the layer opacity, clamped to [0, 1].
func (c *Canvas) SetOpacity(id LayerID, opacity float64) bool {
	l, ok := c.Layer(id)
	if !ok {
		return false
	}
	l.opacity = clampOpacity(opacity)
	return true
}

// Rename changes the display name. Names are trimmed; an empty result is
// rejected.
func (c *Canvas) Rename(id LayerID, name string) bool {
	l, ok := c.Layer(id)
	if !ok {
		return false
	}
	name = normalizeName(name)
	if name == "" {
		return false
	}
	l.name = name
	return true
}

// Selection returns the current selection.
func (c *Canvas) Selection() Selection { return c.selection }

// SetSelection selects the rectangle spanned by two corner cells. Corners
// may be given in any order and are clipped to the canvas; a rectangle
// entirely off the canvas clears the selection.
func (c *Canvas) SetSelection(x1, y1, x2, y2 int) Selection {
	c.selection = Selection{X1: x1, Y1: y1, X2: x2, Y2: y2}.normalized(c.width, c.height)
	return c.selection
}

// ClearSelection deactivates the selection and resets its bounds.
func (c *Canvas) ClearSelection() {
	c.selection = Selection{}
}

// Flatten merges visible layers into a single plane of indices. At each cell
// the topmost visible layer with a non-zero index wins; opacity is not
// considered.
func (c *Canvas) Flatten() *Plane {
	p := NewPlane(c.width, c.height)
	for _, l := range c.layers {
		if !l.visible {
			continue
		}
		for i, v := range l.pixels {
			if v != 0 {
				p.Pixels[i] = v
			}
		}
	}
	return p
}

func (c *Canvas) indexOf(id LayerID) int {
	for i, l := range c.layers {
		if l.id == id {
			return i
		}
	}
	return -1
}

func (c *Canvas) nextName() string {
	c.nameSeq++
	return fmt.Sprintf("Layer %d", c.nameSeq)
}
