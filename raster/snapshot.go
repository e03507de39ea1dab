// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package raster

import "slices"

// Snapshot is a complete, immutable capture of a canvas: dimensions, every
// layer with its ID, name, flags, opacity and pixels, the active layer and
// the selection. It shares no memory with the canvas it came from.
type Snapshot struct {
	width     int
	height    int
	layers    []*Layer
	active    LayerID
	selection Selection
	nameSeq   int
}

// Snapshot captures the current state by value.
func (c *Canvas) Snapshot() *Snapshot {
	s := &Snapshot{
		width:     c.width,
		height:    c.height,
		layers:    make([]*Layer, len(c.layers)),
		active:    c.active,
		selection: c.selection,
		nameSeq:   c.nameSeq,
	}
	for i, l := range c.layers {
		s.layers[i] = l.clone()
	}
	return s
}

// Restore replaces the canvas state with s. The snapshot is copied, so it
// stays valid and unchanged afterwards. A nil snapshot is ignored.
func (c *Canvas) Restore(s *Snapshot) {
	if s == nil || len(s.layers) == 0 {
		return
	}
	layers := make([]*Layer, len(s.layers))
	for i, l := range s.layers {
		layers[i] = l.clone()
	}
	c.width = s.width
	c.height = s.height
	c.layers = layers
	c.active = s.active
	c.selection = s.selection
	c.nameSeq = max(c.nameSeq, s.nameSeq)
}

// Size returns the captured canvas dimensions.
func (s *Snapshot) Size() (width, height int) { return s.width, s.height }

// LayerCount returns the number of captured layers.
func (s *Snapshot) LayerCount() int { return len(s.layers) }

// ActiveLayerID returns the captured active layer.
func (s *Snapshot) ActiveLayerID() LayerID { return s.active }

// Equal reports whether two snapshots capture the same raster state.
func (s *Snapshot) Equal(o *Snapshot) bool {
	if s == nil || o == nil {
		return s == o
	}
	return sameState(s.width, s.height, s.active, s.selection, s.layers,
		o.width, o.height, o.active, o.selection, o.layers)
}

// Matches reports whether the canvas currently holds the state captured in
// s, without copying the canvas.
func (c *Canvas) Matches(s *Snapshot) bool {
	if s == nil {
		return false
	}
	return sameState(c.width, c.height, c.active, c.selection, c.layers,
		s.width, s.height, s.active, s.selection, s.layers)
}

func sameState(w1, h1 int, a1 LayerID, s1 Selection, l1 []*Layer,
	w2, h2 int, a2 LayerID, s2 Selection, l2 []*Layer) bool {
	if w1 != w2 || h1 != h2 || a1 != a2 || s1 != s2 || len(l1) != len(l2) {
		return false
	}
	for i, a := range l1 {
		b := l2[i]
		if a.id != b.id || a.name != b.name || a.visible != b.visible ||
			a.locked != b.locked || a.opacity != b.opacity {
			return false
		}
		if !slices.Equal(a.pixels, b.pixels) {
			return false
		}
	}
	return true
}
