// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package viewport

import (
	"errors"
	"fmt"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/pixel/surface"
)

// Presentation errors.
var (
	// ErrNilDrawer is returned when Present gets a nil TextureDrawer.
	ErrNilDrawer = errors.New("viewport: nil texture drawer")

	// ErrNoTextureCreator is returned when the drawer cannot create textures.
	ErrNoTextureCreator = errors.New("viewport: drawer has no texture creator")
)

// textureDestroyer matches gogpu.Texture.Destroy.
type textureDestroyer interface {
	Destroy()
}

// textureReleaser is implemented by textures whose release can fail.
type textureReleaser interface {
	Release() error
}

// Present uploads the surface to a GPU texture and draws it at (0, 0).
func (r *Renderer) Present(dc gpucontext.TextureDrawer) error {
	return r.PresentAt(dc, 0, 0)
}

// PresentAt is Present at a position in window pixels.
//
// The texture is created lazily on the first call and updated in place
// afterwards. When the surface size changes a new texture is created; the
// old one stays alive until the new upload has finished, because in-flight
// GPU commands may still sample it.
func (r *Renderer) PresentAt(dc gpucontext.TextureDrawer, x, y float32) error {
	if r.destroyed {
		return ErrDestroyed
	}
	if r.surf == nil {
		return ErrNilSurface
	}
	if dc == nil {
		return ErrNilDrawer
	}

	w, h := r.surf.Width(), r.surf.Height()
	if r.texture != nil && (w != r.texW || h != r.texH) {
		r.retireTexture()
	}

	if r.texture != nil && r.dirty {
		updater, ok := r.texture.(gpucontext.TextureUpdater)
		if !ok {
			r.retireTexture()
		} else {
			if err := updater.UpdateData(r.pixels()); err != nil {
				return fmt.Errorf("viewport: texture update failed: %w", err)
			}
			r.dirty = false
		}
	}

	if r.texture == nil {
		creator := dc.TextureCreator()
		if creator == nil {
			return ErrNoTextureCreator
		}
		tex, err := creator.NewTextureFromRGBA(w, h, r.pixels())
		if err != nil {
			return fmt.Errorf("viewport: NewTextureFromRGBA failed: %w", err)
		}
		// Surface pixels are premultiplied.
		if pt, ok := tex.(interface{ SetPremultiplied(bool) }); ok {
			pt.SetPremultiplied(true)
		}
		r.texture, r.texW, r.texH = tex, w, h
		r.dirty = false

		r.releaseTexture(r.oldTexture)
		r.oldTexture = nil
	}

	return dc.DrawTexture(r.texture, x, y)
}

// Texture returns the current GPU texture, or nil before the first Present.
func (r *Renderer) Texture() gpucontext.Texture {
	return r.texture
}

// retireTexture moves the current texture to the deferred slot.
func (r *Renderer) retireTexture() {
	r.releaseTexture(r.oldTexture)
	r.oldTexture = r.texture
	r.texture = nil
}

func (r *Renderer) releaseTexture(tex gpucontext.Texture) {
	switch t := tex.(type) {
	case nil:
	case textureDestroyer:
		t.Destroy()
	case textureReleaser:
		if err := t.Release(); err != nil {
			r.logger().Warn("viewport: texture release failed", "err", err)
		}
	}
}

// pixels returns tightly packed RGBA rows of the surface, without copying
// when the surface exposes a packed buffer.
func (r *Renderer) pixels() []byte {
	w, h := r.surf.Width(), r.surf.Height()
	if ps, ok := r.surf.(surface.PixelSource); ok {
		if img := ps.Image(); img != nil && img.Stride == 4*w && img.Rect.Min.X == 0 && img.Rect.Min.Y == 0 {
			return img.Pix[:4*w*h]
		}
	}
	if snap := r.surf.Snapshot(); snap != nil {
		return snap.Pix
	}
	return nil
}
