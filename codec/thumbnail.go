// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package codec

import (
	"image"

	"github.com/gogpu/pixel/cache"
)

// DefaultThumbnailCacheSize is the number of thumbnails kept by
// NewThumbnailer when no size is given.
const DefaultThumbnailCacheSize = 32

type thumbKey struct {
	encoded string
	opts    RenderOptions
}

// Thumbnailer renders encoded strings to images and keeps recent results.
// It is safe for concurrent use.
type Thumbnailer struct {
	pal   Palette
	cache *cache.LRU[thumbKey, *image.NRGBA]
}

// NewThumbnailer creates a Thumbnailer for pal holding up to size images.
// If size <= 0, DefaultThumbnailCacheSize is used.
func NewThumbnailer(pal Palette, size int) *Thumbnailer {
	if size <= 0 {
		size = DefaultThumbnailCacheSize
	}
	return &Thumbnailer{
		pal:   pal,
		cache: cache.New[thumbKey, *image.NRGBA](size),
	}
}

// Render returns the image for encoded. The result is a private copy and
// may be modified by the caller.
func (t *Thumbnailer) Render(encoded string, opts RenderOptions) (*image.NRGBA, error) {
	key := thumbKey{encoded: encoded, opts: opts.normalized()}
	img, err := t.cache.GetOrCreate(key, func() (*image.NRGBA, error) {
		return RenderImage(encoded, t.pal, opts)
	})
	if err != nil {
		return nil, err
	}
	return cloneNRGBA(img), nil
}

// Stats reports cache usage.
func (t *Thumbnailer) Stats() cache.Stats {
	return t.cache.Stats()
}

// Reset drops every cached image.
func (t *Thumbnailer) Reset() {
	t.cache.Clear()
}

func cloneNRGBA(src *image.NRGBA) *image.NRGBA {
	dst := &image.NRGBA{
		Pix:    make([]uint8, len(src.Pix)),
		Stride: src.Stride,
		Rect:   src.Rect,
	}
	copy(dst.Pix, src.Pix)
	return dst
}
