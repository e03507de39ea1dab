// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package codec

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// Palette resolves palette indices to display colors. Color reports false
// for the transparent entry and for unknown indices.
type Palette interface {
	Color(index int) (color.NRGBA, bool)
}

// ErrNilPalette is returned when RenderImage is called without a palette.
var ErrNilPalette = errors.New("codec: nil palette")

// maxImagePixels bounds the rendered image size.
const maxImagePixels = 1 << 26

// RenderOptions controls RenderImage.
type RenderOptions struct {
	// Scale is the edge length in image pixels of one cell. Values below 1
	// are treated as 1.
	Scale int

	// Checkerboard draws a two-tone pattern under transparent cells.
	Checkerboard bool

	// Grid draws 1-pixel lines on every cell boundary.
	Grid bool

	// CheckerLight and CheckerDark are the checkerboard tones. Zero values
	// use DefaultCheckerLight and DefaultCheckerDark.
	CheckerLight color.NRGBA
	CheckerDark  color.NRGBA

	// GridColor is the line color. The zero value uses DefaultGridColor.
	GridColor color.NRGBA
}

// Default render colors.
var (
	DefaultCheckerLight = color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}
	DefaultCheckerDark  = color.NRGBA{R: 0x40, G: 0x40, B: 0x40, A: 0xff}
	DefaultGridColor    = color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 0x40}
)

// DefaultRenderOptions returns options for a 1:1 image with a checkerboard.
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{
		Scale:        1,
		Checkerboard: true,
	}
}

func (o RenderOptions) normalized() RenderOptions {
	if o.Scale < 1 {
		o.Scale = 1
	}
	if o.CheckerLight == (color.NRGBA{}) {
		o.CheckerLight = DefaultCheckerLight
	}
	if o.CheckerDark == (color.NRGBA{}) {
		o.CheckerDark = DefaultCheckerDark
	}
	if o.GridColor == (color.NRGBA{}) {
		o.GridColor = DefaultGridColor
	}
	return o
}

// RenderImage decodes an encoded string and rasterizes it: every cell
// becomes a Scale×Scale block of its palette color. Transparent cells stay
// transparent, or show the checkerboard when enabled.
func RenderImage(encoded string, pal Palette, opts RenderOptions) (*image.NRGBA, error) {
	r, err := Decode(encoded)
	if err != nil {
		return nil, err
	}
	return RenderPlane(r, pal, opts)
}

// RenderPlane is RenderImage for an already decoded plane.
func RenderPlane(p Plane, pal Palette, opts RenderOptions) (*image.NRGBA, error) {
	if pal == nil {
		return nil, ErrNilPalette
	}
	opts = opts.normalized()
	w, h := p.Size()
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrMalformed, w, h)
	}
	if opts.Scale > maxImagePixels || w > maxImagePixels/opts.Scale ||
		h > maxImagePixels/opts.Scale || w*opts.Scale > maxImagePixels/(h*opts.Scale) {
		return nil, fmt.Errorf("codec: %dx%d at scale %d is too large", w, h, opts.Scale)
	}

	// One image pixel per cell first, then scale up in a single pass.
	cells := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if c, ok := pal.Color(p.At(x, y)); ok {
				cells.SetNRGBA(x, y, c)
			}
		}
	}

	dst := image.NewNRGBA(image.Rect(0, 0, w*opts.Scale, h*opts.Scale))
	if opts.Checkerboard {
		drawCheckerboard(dst, checkerSize(opts.Scale), opts.CheckerLight, opts.CheckerDark)
	}
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), cells, cells.Bounds(), draw.Over, nil)
	if opts.Grid {
		drawGrid(dst, opts.Scale, opts.GridColor)
	}
	return dst, nil
}

// checkerSize returns the checker square edge: half a cell, at least 1.
func checkerSize(scale int) int {
	return max(scale/2, 1)
}

func drawCheckerboard(dst *image.NRGBA, size int, light, dark color.NRGBA) {
	b := dst.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if ((x/size)+(y/size))%2 == 0 {
				dst.SetNRGBA(x, y, light)
			} else {
				dst.SetNRGBA(x, y, dark)
			}
		}
	}
}

// drawGrid blends 1-pixel lines along the left and top edge of every cell
// and along the right and bottom edge of the image.
func drawGrid(dst *image.NRGBA, scale int, c color.NRGBA) {
	b := dst.Bounds()
	src := image.NewUniform(c)
	for x := b.Min.X; x < b.Max.X; x += scale {
		draw.Draw(dst, image.Rect(x, b.Min.Y, x+1, b.Max.Y), src, image.Point{}, draw.Over)
	}
	for y := b.Min.Y; y < b.Max.Y; y += scale {
		draw.Draw(dst, image.Rect(b.Min.X, y, b.Max.X, y+1), src, image.Point{}, draw.Over)
	}
	draw.Draw(dst, image.Rect(b.Max.X-1, b.Min.Y, b.Max.X, b.Max.Y), src, image.Point{}, draw.Over)
	draw.Draw(dst, image.Rect(b.Min.X, b.Max.Y-1, b.Max.X, b.Max.Y), src, image.Point{}, draw.Over)
}
