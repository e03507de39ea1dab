// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package viewport

import (
	"errors"
	"testing"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/pixel/surface"
)

// mockTexture implements gpucontext.Texture, TextureUpdater and Destroy.
type mockTexture struct {
	width, height int
	data          []byte
	updates       int
	destroyed     bool
	premultiplied bool
}

func (m *mockTexture) Width() int  { return m.width }
func (m *mockTexture) Height() int { return m.height }
func (m *mockTexture) UpdateData(data []byte) error {
	if m.destroyed {
		return errors.New("texture destroyed")
	}
	m.updates++
	m.data = data
	return nil
}
func (m *mockTexture) Destroy()                  { m.destroyed = true }
func (m *mockTexture) SetPremultiplied(on bool) { m.premultiplied = on }

type mockCreator struct {
	created []*mockTexture
	err     error
}

func (m *mockCreator) NewTextureFromRGBA(w, h int, data []byte) (gpucontext.Texture, error) {
	if m.err != nil {
		return nil, m.err
	}
	if len(data) != w*h*4 {
		return nil, errors.New("bad data size")
	}
	tex := &mockTexture{width: w, height: h, data: data}
	m.created = append(m.created, tex)
	return tex, nil
}

type mockDrawer struct {
	creator gpucontext.TextureCreator
	draws   int
	last    gpucontext.Texture
}

func (m *mockDrawer) DrawTexture(tex gpucontext.Texture, x, y float32) error {
	m.draws++
	m.last = tex
	return nil
}

func (m *mockDrawer) TextureCreator() gpucontext.TextureCreator { return m.creator }

func TestPresentLifecycle(t *testing.T) {
	r, _ := newTestRenderer(t, 4, 4)
	creator := &mockCreator{}
	dc := &mockDrawer{creator: creator}

	if err := r.Present(dc); err != nil {
		t.Fatal(err)
	}
	if len(creator.created) != 1 || dc.draws != 1 {
		t.Fatalf("created %d textures, drew %d times", len(creator.created), dc.draws)
	}
	first := creator.created[0]
	if !first.premultiplied {
		t.Error("texture not marked premultiplied")
	}
	if r.Texture() != first {
		t.Error("Texture() does not return the created texture")
	}

	// Nothing rendered since: no upload.
	if err := r.Present(dc); err != nil {
		t.Fatal(err)
	}
	if first.updates != 0 {
		t.Errorf("clean surface uploaded %d times", first.updates)
	}

	if err := r.Render(Frame{Width: 1, Height: 1, Transform: DefaultTransform()}); err != nil {
		t.Fatal(err)
	}
	if err := r.Present(dc); err != nil {
		t.Fatal(err)
	}
	if first.updates != 1 {
		t.Errorf("updates after Render = %d, want 1", first.updates)
	}

	// Resizing recreates the texture and releases the old one only after
	// the new upload.
	if err := r.Resize(8, 2); err != nil {
		t.Fatal(err)
	}
	if err := r.Present(dc); err != nil {
		t.Fatal(err)
	}
	if len(creator.created) != 2 {
		t.Fatalf("created %d textures after resize, want 2", len(creator.created))
	}
	second := creator.created[1]
	if second.width != 8 || second.height != 2 {
		t.Errorf("new texture is %dx%d", second.width, second.height)
	}
	if !first.destroyed {
		t.Error("old texture not destroyed after the new upload")
	}
	if dc.last != second {
		t.Error("drew the old texture")
	}

	r.Destroy()
	if !second.destroyed {
		t.Error("Destroy did not release the texture")
	}
	if err := r.Present(dc); !errors.Is(err, ErrDestroyed) {
		t.Errorf("Present after Destroy error = %v", err)
	}
}

func TestPresentErrors(t *testing.T) {
	r, _ := newTestRenderer(t, 2, 2)

	if err := r.Present(nil); !errors.Is(err, ErrNilDrawer) {
		t.Errorf("nil drawer error = %v", err)
	}
	if err := r.Present(&mockDrawer{}); !errors.Is(err, ErrNoTextureCreator) {
		t.Errorf("no creator error = %v", err)
	}
	boom := errors.New("out of memory")
	if err := r.Present(&mockDrawer{creator: &mockCreator{err: boom}}); !errors.Is(err, boom) {
		t.Errorf("creator error = %v, want wrapped %v", err, boom)
	}
}

// plainTexture has no UpdateData, forcing a recreate on every change.
type plainTexture struct {
	w, h      int
	destroyed bool
}

func (p *plainTexture) Width() int  { return p.w }
func (p *plainTexture) Height() int { return p.h }
func (p *plainTexture) Destroy()    { p.destroyed = true }

type plainCreator struct{ created []*plainTexture }

func (c *plainCreator) NewTextureFromRGBA(w, h int, _ []byte) (gpucontext.Texture, error) {
	tex := &plainTexture{w: w, h: h}
	c.created = append(c.created, tex)
	return tex, nil
}

func TestPresentWithoutUpdater(t *testing.T) {
	r, _ := newTestRenderer(t, 2, 2)
	creator := &plainCreator{}
	dc := &mockDrawer{creator: creator}

	if err := r.Present(dc); err != nil {
		t.Fatal(err)
	}
	if err := r.Render(Frame{Width: 1, Height: 1, Transform: DefaultTransform()}); err != nil {
		t.Fatal(err)
	}
	if err := r.Present(dc); err != nil {
		t.Fatal(err)
	}
	if len(creator.created) != 2 || !creator.created[0].destroyed {
		t.Errorf("expected the texture to be recreated, got %d", len(creator.created))
	}
}

func TestResizeNotSupported(t *testing.T) {
	r, err := NewRenderer(fixedSurface{surface.NewImageSurface(2, 2)}, testPalette{})
	if err != nil {
		t.Fatal(err)
	}
	defer r.Destroy()
	if err := r.Resize(4, 4); !errors.Is(err, ErrNotResizable) {
		t.Errorf("Resize error = %v", err)
	}
}

// fixedSurface hides the optional surface interfaces.
type fixedSurface struct {
	surface.Surface
}
