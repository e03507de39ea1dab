// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package raster

import (
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"
)

// LayerID identifies a layer for its whole lifetime. IDs are random and are
// never handed out twice, so a stale ID can't resolve to a newer layer.
type LayerID uuid.UUID

// NilLayerID is the zero ID; it never resolves.
var NilLayerID LayerID

func newLayerID() LayerID {
	return LayerID(uuid.New())
}

// ParseLayerID parses the textual form produced by LayerID.String.
func ParseLayerID(s string) (LayerID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return NilLayerID, err
	}
	return LayerID(u), nil
}

// String returns the canonical textual form of the ID.
func (id LayerID) String() string {
	return uuid.UUID(id).String()
}

// Layer is one paintable plane of palette indices.
//
// Layers are owned by a Canvas and mutated only through Canvas methods;
// the accessors here are read-only.
type Layer struct {
	id      LayerID
	name    string
	visible bool
	locked  bool
	opacity float64

	width  int
	height int
	pixels []int // row-major, len == width*height
}

func newLayer(name string, width, height int) *Layer {
	return &Layer{
		id:      newLayerID(),
		name:    name,
		visible: true,
		opacity: 1,
		width:   width,
		height:  height,
		pixels:  make([]int, width*height),
	}
}

// ID returns the layer identifier.
func (l *Layer) ID() LayerID { return l.id }

// Name returns the display name.
func (l *Layer) Name() string { return l.name }

// Visible reports whether the layer takes part in composition.
func (l *Layer) Visible() bool { return l.visible }

// Locked reports whether pixel writes are rejected.
func (l *Layer) Locked() bool { return l.locked }

// Opacity returns the composition opacity in [0, 1].
func (l *Layer) Opacity() float64 { return l.opacity }

// Size returns the grid dimensions.
func (l *Layer) Size() (width, height int) { return l.width, l.height }

// At returns the palette index at (x, y), or 0 outside the grid.
func (l *Layer) At(x, y int) int {
	if x < 0 || x >= l.width || y < 0 || y >= l.height {
		return 0
	}
	return l.pixels[y*l.width+x]
}

// Pixels returns a copy of the grid in row-major order.
func (l *Layer) Pixels() []int {
	out := make([]int, len(l.pixels))
	copy(out, l.pixels)
	return out
}

// IsEmpty reports whether every cell is transparent.
func (l *Layer) IsEmpty() bool {
	for _, v := range l.pixels {
		if v != 0 {
			return false
		}
	}
	return true
}

func (l *Layer) set(x, y, index int) bool {
	if x < 0 || x >= l.width || y < 0 || y >= l.height {
		return false
	}
	i := y*l.width + x
	if l.pixels[i] == index {
		return false
	}
	l.pixels[i] = index
	return true
}

// clone deep-copies the layer. The copy keeps the same ID.
func (l *Layer) clone() *Layer {
	c := *l
	c.pixels = make([]int, len(l.pixels))
	copy(c.pixels, l.pixels)
	return &c
}

// resized returns a grid of the new size holding the overlap of the old one.
func (l *Layer) resized(width, height int) []int {
	pixels := make([]int, width*height)
	w := min(width, l.width)
	h := min(height, l.height)
	for y := 0; y < h; y++ {
		copy(pixels[y*width:y*width+w], l.pixels[y*l.width:y*l.width+w])
	}
	return pixels
}

// normalizeName trims and NFC-normalizes a display name.
func normalizeName(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}

func clampOpacity(v float64) float64 {
	if v != v || v < 0 { // NaN counts as fully transparent
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
