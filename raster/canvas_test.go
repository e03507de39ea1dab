// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package raster

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func mustCanvas(t *testing.T, w, h int) *Canvas {
	t.Helper()
	c, err := New(w, h)
	if err != nil {
		t.Fatalf("New(%d, %d) error = %v", w, h, err)
	}
	return c
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		w, h    int
		wantErr bool
	}{
		{"valid", 16, 16, false},
		{"non-square", 3, 7, false},
		{"zero width", 0, 4, true},
		{"negative height", 4, -1, true},
		{"too many cells", MaxCells, 2, true},
		{"huge", 1 << 30, 1 << 30, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(tt.w, tt.h)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidDimensions) {
					t.Errorf("New() error = %v, want ErrInvalidDimensions", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			if c.LayerCount() != 1 {
				t.Errorf("LayerCount() = %d, want 1", c.LayerCount())
			}
			if c.ActiveLayer().ID() != c.ActiveLayerID() {
				t.Error("active layer does not resolve")
			}
			if w, h := c.ActiveLayer().Size(); w != tt.w || h != tt.h {
				t.Errorf("layer size = %dx%d, want %dx%d", w, h, tt.w, tt.h)
			}
		})
	}
}

func TestWithLayerName(t *testing.T) {
	c, err := New(2, 2, WithLayerName("  Background "))
	if err != nil {
		t.Fatal(err)
	}
	if got := c.ActiveLayer().Name(); got != "Background" {
		t.Errorf("Name() = %q, want Background", got)
	}
}

func TestSetGetPixel(t *testing.T) {
	c := mustCanvas(t, 4, 3)
	id := c.ActiveLayerID()

	if !c.SetPixel(id, 1, 2, 5) {
		t.Fatal("SetPixel in bounds reported false")
	}
	if got := c.GetPixel(id, 1, 2); got != 5 {
		t.Errorf("GetPixel(1,2) = %d, want 5", got)
	}
	if c.SetPixel(id, 1, 2, 5) {
		t.Error("rewriting the same index should report false")
	}
	if c.SetPixel(id, 0, 0, -1) {
		t.Error("negative index should be rejected")
	}
	if c.SetPixel(NilLayerID, 0, 0, 1) {
		t.Error("unknown layer should be rejected")
	}
	if got := c.GetPixel(NilLayerID, 1, 2); got != 0 {
		t.Errorf("GetPixel on unknown layer = %d, want 0", got)
	}
}

func TestPixelOutOfBounds(t *testing.T) {
	c := mustCanvas(t, 4, 4)
	id := c.ActiveLayerID()
	c.SetPixel(id, 2, 2, 9)
	before := c.ActiveLayer().Pixels()

	oob := []struct{ x, y int }{
		{-1, 0}, {0, -1}, {4, 0}, {0, 4}, {-100, -100}, {100, 100},
	}
	for _, p := range oob {
		if c.SetPixel(id, p.x, p.y, 7) {
			t.Errorf("SetPixel(%d,%d) reported true", p.x, p.y)
		}
		if got := c.GetPixel(id, p.x, p.y); got != 0 {
			t.Errorf("GetPixel(%d,%d) = %d, want 0", p.x, p.y, got)
		}
	}

	if diff := cmp.Diff(before, c.ActiveLayer().Pixels()); diff != "" {
		t.Errorf("out-of-bounds writes changed the grid (-want +got):\n%s", diff)
	}
}

func TestLockedLayerRejectsWrites(t *testing.T) {
	c := mustCanvas(t, 2, 2)
	id := c.ActiveLayerID()
	c.SetPixel(id, 0, 0, 3)
	c.ToggleLock(id)

	if c.SetPixel(id, 0, 0, 4) {
		t.Error("SetPixel on locked layer reported true")
	}
	if c.ClearLayer(id) {
		t.Error("ClearLayer on locked layer reported true")
	}
	if got := c.GetPixel(id, 0, 0); got != 3 {
		t.Errorf("locked cell = %d, want 3", got)
	}

	c.ToggleLock(id)
	if !c.ClearLayer(id) || !c.ActiveLayer().IsEmpty() {
		t.Error("ClearLayer after unlock did not clear")
	}
}

func TestResize(t *testing.T) {
	c := mustCanvas(t, 3, 2)
	id := c.ActiveLayerID()
	// 1 2 3
	// 4 5 6
	for i, v := range []int{1, 2, 3, 4, 5, 6} {
		c.SetPixel(id, i%3, i/3, v)
	}
	top := c.AddLayer("top")
	c.SetPixel(top.ID(), 2, 1, 9)

	if err := c.Resize(2, 3); err != nil {
		t.Fatalf("Resize() error = %v", err)
	}
	if c.Width() != 2 || c.Height() != 3 {
		t.Fatalf("size = %dx%d, want 2x3", c.Width(), c.Height())
	}
	want := []int{
		1, 2,
		4, 5,
		0, 0,
	}
	if diff := cmp.Diff(want, c.Layers()[0].Pixels()); diff != "" {
		t.Errorf("bottom layer after resize (-want +got):\n%s", diff)
	}
	for _, l := range c.Layers() {
		if w, h := l.Size(); w != 2 || h != 3 {
			t.Errorf("layer %q size = %dx%d, want 2x3", l.Name(), w, h)
		}
	}
	if !top.IsEmpty() {
		t.Error("top layer cell outside the overlap survived")
	}
}

func TestResizeRoundTrip(t *testing.T) {
	c := mustCanvas(t, 4, 4)
	id := c.ActiveLayerID()
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			c.SetPixel(id, x, y, 1+x+y*4)
		}
	}

	if err := c.Resize(2, 6); err != nil {
		t.Fatal(err)
	}
	if err := c.Resize(4, 4); err != nil {
		t.Fatal(err)
	}

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			want := 0
			if x < 2 { // inside both overlaps
				want = 1 + x + y*4
			}
			if got := c.GetPixel(id, x, y); got != want {
				t.Errorf("cell (%d,%d) = %d, want %d", x, y, got, want)
			}
		}
	}
}

func TestResizeInvalidLeavesState(t *testing.T) {
	c := mustCanvas(t, 3, 3)
	c.SetPixel(c.ActiveLayerID(), 1, 1, 2)
	before := c.Snapshot()

	for _, d := range [][2]int{{0, 3}, {3, 0}, {-1, -1}, {1 << 30, 1 << 30}, {MaxCells, 2}} {
		if err := c.Resize(d[0], d[1]); !errors.Is(err, ErrInvalidDimensions) {
			t.Errorf("Resize(%d,%d) error = %v, want ErrInvalidDimensions", d[0], d[1], err)
		}
	}
	if !before.Equal(c.Snapshot()) {
		t.Error("failed resize changed canvas state")
	}
}

func TestAddLayer(t *testing.T) {
	c := mustCanvas(t, 2, 2)
	l := c.AddLayer("")
	if c.ActiveLayerID() != l.ID() {
		t.Error("new layer should become active")
	}
	if c.Layers()[1] != l {
		t.Error("new layer should be on top")
	}
	if l.Name() != "Layer 2" {
		t.Errorf("default name = %q, want Layer 2", l.Name())
	}
	if !l.IsEmpty() || !l.Visible() || l.Locked() || l.Opacity() != 1 {
		t.Errorf("new layer has unexpected state: %+v", l)
	}
	if l.ID() == c.Layers()[0].ID() {
		t.Error("layer IDs must be unique")
	}
}

func TestRemoveLayer(t *testing.T) {
	c := mustCanvas(t, 2, 2)
	only := c.ActiveLayerID()

	if c.RemoveLayer(only) {
		t.Fatal("removing the last layer should fail")
	}
	if c.LayerCount() != 1 || c.ActiveLayerID() != only {
		t.Fatal("failed remove changed state")
	}

	mid := c.AddLayer("mid")
	top := c.AddLayer("top")
	c.SetActiveLayer(mid.ID())

	if !c.RemoveLayer(mid.ID()) {
		t.Fatal("RemoveLayer(mid) = false")
	}
	if c.ActiveLayerID() != top.ID() {
		t.Error("topmost remaining layer should become active")
	}
	if _, ok := c.Layer(mid.ID()); ok {
		t.Error("removed layer still resolves")
	}
	if c.RemoveLayer(mid.ID()) {
		t.Error("removing twice should fail")
	}

	c.SetActiveLayer(only)
	if !c.RemoveLayer(top.ID()) || c.ActiveLayerID() != only {
		t.Error("removing an inactive layer should keep the active one")
	}
}

func TestDuplicateLayer(t *testing.T) {
	c := mustCanvas(t, 2, 2)
	base := c.ActiveLayer()
	c.SetPixel(base.ID(), 1, 1, 8)
	c.SetOpacity(base.ID(), 0.25)
	above := c.AddLayer("above")

	dup, ok := c.DuplicateLayer(base.ID())
	if !ok {
		t.Fatal("DuplicateLayer() = false")
	}
	layers := c.Layers()
	if len(layers) != 3 || layers[0] != base || layers[1] != dup || layers[2] != above {
		t.Fatalf("duplicate not inserted directly above source: %v", layerNames(layers))
	}
	if dup.ID() == base.ID() {
		t.Error("duplicate shares the source ID")
	}
	if dup.At(1, 1) != 8 || dup.Opacity() != 0.25 {
		t.Error("duplicate lost pixels or opacity")
	}

	c.SetPixel(dup.ID(), 1, 1, 2)
	if base.At(1, 1) != 8 {
		t.Error("duplicate shares pixel memory with the source")
	}
	if _, ok := c.DuplicateLayer(NilLayerID); ok {
		t.Error("duplicating an unknown layer should fail")
	}
}

func TestReorder(t *testing.T) {
	c := mustCanvas(t, 1, 1)
	a := c.ActiveLayer()
	b := c.AddLayer("b")
	d := c.AddLayer("d")

	if c.Reorder(d.ID(), Up) {
		t.Error("moving the top layer up should be a no-op")
	}
	if c.Reorder(a.ID(), Down) {
		t.Error("moving the bottom layer down should be a no-op")
	}
	if !c.Reorder(a.ID(), Up) {
		t.Fatal("Reorder(a, Up) = false")
	}
	if got := layerNames(c.Layers()); !cmp.Equal(got, []string{"b", a.Name(), "d"}) {
		t.Errorf("order = %v", got)
	}
	if !c.Reorder(d.ID(), Down) {
		t.Fatal("Reorder(d, Down) = false")
	}
	if got := layerNames(c.Layers()); !cmp.Equal(got, []string{b.Name(), "d", a.Name()}) {
		t.Errorf("order = %v", got)
	}
}

func TestLayerFields(t *testing.T) {
	c := mustCanvas(t, 1, 1)
	id := c.ActiveLayerID()
	l := c.ActiveLayer()

	c.ToggleVisibility(id)
	if l.Visible() {
		t.Error("ToggleVisibility did not hide")
	}

	for _, tt := range []struct{ in, want float64 }{
		{0.5, 0.5}, {-1, 0}, {2, 1}, {1, 1}, {0, 0},
	} {
		c.SetOpacity(id, tt.in)
		if l.Opacity() != tt.want {
			t.Errorf("SetOpacity(%v) -> %v, want %v", tt.in, l.Opacity(), tt.want)
		}
	}

	if !c.Rename(id, "  Cafe\u0301 ") {
		t.Fatal("Rename() = false")
	}
	if l.Name() != "Caf\u00e9" {
		t.Errorf("Name() = %q, want NFC-composed %q", l.Name(), "Caf\u00e9")
	}
	if c.Rename(id, "   ") {
		t.Error("blank rename should be rejected")
	}

	for _, fn := range []func(LayerID) bool{c.ToggleVisibility, c.ToggleLock} {
		if fn(NilLayerID) {
			t.Error("toggle on unknown layer reported true")
		}
	}
}

func TestSelection(t *testing.T) {
	c := mustCanvas(t, 8, 8)

	s := c.SetSelection(5, 6, 1, 2)
	if !s.Active || s.X1 != 1 || s.Y1 != 2 || s.X2 != 5 || s.Y2 != 6 {
		t.Errorf("SetSelection normalized to %+v", s)
	}
	if !s.Contains(3, 3) || s.Contains(0, 0) {
		t.Error("Contains() mismatch")
	}
	if r := s.Rect(); r.Dx() != 5 || r.Dy() != 5 {
		t.Errorf("Rect() = %v", r)
	}

	s = c.SetSelection(-3, -3, 20, 2)
	if s.X1 != 0 || s.Y1 != 0 || s.X2 != 7 || s.Y2 != 2 {
		t.Errorf("clipped selection = %+v", s)
	}

	if s = c.SetSelection(10, 10, 12, 12); s.Active {
		t.Errorf("off-canvas selection should be inactive, got %+v", s)
	}

	c.SetSelection(0, 0, 7, 7)
	if err := c.Resize(4, 4); err != nil {
		t.Fatal(err)
	}
	if s = c.Selection(); s.X2 != 3 || s.Y2 != 3 {
		t.Errorf("selection after shrink = %+v", s)
	}

	c.ClearSelection()
	if c.Selection() != (Selection{}) {
		t.Errorf("cleared selection = %+v", c.Selection())
	}
}

func TestFlatten(t *testing.T) {
	c := mustCanvas(t, 2, 1)
	bottom := c.ActiveLayerID()
	c.SetPixel(bottom, 0, 0, 2)
	c.SetPixel(bottom, 1, 0, 3)
	top := c.AddLayer("top")
	c.SetPixel(top.ID(), 0, 0, 7)
	hidden := c.AddLayer("hidden")
	c.SetPixel(hidden.ID(), 1, 0, 9)
	c.ToggleVisibility(hidden.ID())

	p := c.Flatten()
	if diff := cmp.Diff([]int{7, 3}, p.Pixels); diff != "" {
		t.Errorf("Flatten() (-want +got):\n%s", diff)
	}
	if p.At(5, 5) != 0 {
		t.Error("Plane.At out of bounds should be 0")
	}
}

func TestLayerIDString(t *testing.T) {
	c := mustCanvas(t, 1, 1)
	id := c.ActiveLayerID()
	parsed, err := ParseLayerID(id.String())
	if err != nil || parsed != id {
		t.Errorf("ParseLayerID(%q) = %v, %v", id.String(), parsed, err)
	}
	if _, err := ParseLayerID("not-a-uuid"); err == nil {
		t.Error("ParseLayerID accepted garbage")
	}
}

func layerNames(layers []*Layer) []string {
	names := make([]string, len(layers))
	for i, l := range layers {
		names[i] = l.Name()
	}
	return names
}
