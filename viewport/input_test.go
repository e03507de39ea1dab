// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package viewport

import (
	"errors"
	"testing"

	"github.com/gogpu/gpucontext"
)

type mockPointerSource struct {
	fn func(gpucontext.PointerEvent)
}

func (m *mockPointerSource) OnPointer(fn func(gpucontext.PointerEvent)) { m.fn = fn }

func (m *mockPointerSource) emit(ev gpucontext.PointerEvent) {
	if m.fn != nil {
		m.fn(ev)
	}
}

type mockScrollSource struct {
	fn func(gpucontext.ScrollEvent)
}

func (m *mockScrollSource) OnScrollEvent(fn func(gpucontext.ScrollEvent)) { m.fn = fn }

func (m *mockScrollSource) emit(ev gpucontext.ScrollEvent) {
	if m.fn != nil {
		m.fn(ev)
	}
}

type mockWindow struct {
	gpucontext.NullWindowProvider
	redraws int
}

func (m *mockWindow) RequestRedraw() { m.redraws++ }

func TestAttachForwardsAndDetaches(t *testing.T) {
	r, _ := newTestRenderer(t, 4, 4)
	ps := &mockPointerSource{}
	ss := &mockScrollSource{}

	var pointers, scrolls int
	h := Handlers{
		Pointer: func(gpucontext.PointerEvent) { pointers++ },
		Scroll:  func(gpucontext.ScrollEvent) { scrolls++ },
	}
	if err := r.Attach(ps, ss, h); err != nil {
		t.Fatal(err)
	}
	ps.emit(gpucontext.PointerEvent{Type: gpucontext.PointerDown})
	ss.emit(gpucontext.ScrollEvent{DeltaY: 1})
	if pointers != 1 || scrolls != 1 {
		t.Fatalf("pointers=%d scrolls=%d, want 1 and 1", pointers, scrolls)
	}

	r.Detach()
	ps.emit(gpucontext.PointerEvent{})
	ss.emit(gpucontext.ScrollEvent{})
	if pointers != 1 || scrolls != 1 {
		t.Error("callbacks fired after Detach")
	}

	// Re-attaching silences nothing new but stale closures stay dead.
	stale := ps.fn
	if err := r.Attach(ps, nil, h); err != nil {
		t.Fatal(err)
	}
	stale(gpucontext.PointerEvent{})
	if pointers != 1 {
		t.Error("stale closure fired")
	}
	ps.emit(gpucontext.PointerEvent{})
	if pointers != 2 {
		t.Errorf("pointers = %d after re-attach, want 2", pointers)
	}

	r.Destroy()
	ps.emit(gpucontext.PointerEvent{})
	if pointers != 2 {
		t.Error("callback fired after Destroy")
	}
	if err := r.Attach(ps, ss, h); !errors.Is(err, ErrDestroyed) {
		t.Errorf("Attach after Destroy error = %v", err)
	}
}

func TestRequestRedrawCoalesces(t *testing.T) {
	w := &mockWindow{}
	r, _ := newTestRenderer(t, 4, 4, WithWindow(w))

	r.RequestRedraw()
	r.RequestRedraw()
	r.RequestRedraw()
	if w.redraws != 1 || !r.RedrawPending() {
		t.Fatalf("redraws = %d, want 1", w.redraws)
	}

	if err := r.Render(Frame{}); err != nil {
		t.Fatal(err)
	}
	if r.RedrawPending() {
		t.Error("Render did not clear the pending redraw")
	}
	r.RequestRedraw()
	if w.redraws != 2 {
		t.Errorf("redraws = %d, want 2", w.redraws)
	}

	r.Destroy()
	r.RequestRedraw()
	if w.redraws != 2 {
		t.Error("redraw forwarded after Destroy")
	}
}

func TestFitWindowAndClientRect(t *testing.T) {
	w := &mockWindow{NullWindowProvider: gpucontext.NullWindowProvider{W: 10, H: 5, SF: 2}}
	r, _ := newTestRenderer(t, 1, 1, WithWindow(w))

	if err := r.FitWindow(); err != nil {
		t.Fatal(err)
	}
	if bw, bh := r.Size(); bw != 20 || bh != 10 {
		t.Errorf("Size() = %dx%d, want 20x10", bw, bh)
	}
	rect := r.ClientRect()
	if rect.Width != 10 || rect.Height != 5 || rect.BackingWidth != 20 || rect.BackingHeight != 10 {
		t.Errorf("ClientRect() = %+v", rect)
	}

	// A click at logical (7.5, 2.5) is backing (15, 5).
	x, y, ok := CellAt(7.5, 2.5, rect, Transform{Zoom: 1, CellSize: 5}, 4, 2)
	if !ok || x != 3 || y != 1 {
		t.Errorf("CellAt = (%d,%d,%v), want (3,1,true)", x, y, ok)
	}
}

func TestDestroyZeroValue(t *testing.T) {
	var r Renderer
	r.Destroy()
	r.Destroy()
	if !r.Destroyed() {
		t.Error("zero Renderer not marked destroyed")
	}

	var nilRenderer *Renderer
	nilRenderer.Destroy()
}
