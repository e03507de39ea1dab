// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package codec converts index planes to and from the compact encoded string
//
//	"{width}x{height}:{data}"
//
// where data holds one symbol of [Alphabet] per cell in row-major order.
// The symbol at position i of the alphabet stands for palette index i.
package codec

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/gogpu/pixel/raster"
)

// Alphabet maps palette indices 0..63 to symbols.
const Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz+/"

// Radix is the number of encodable indices.
const Radix = len(Alphabet)

// Errors returned by Decode.
var (
	// ErrMalformed is returned when the input does not match "WxH:DATA".
	ErrMalformed = errors.New("codec: malformed encoded string")

	// ErrLengthMismatch is returned when len(DATA) != W*H.
	ErrLengthMismatch = errors.New("codec: data length does not match dimensions")
)

// maxCells bounds W*H so that a hostile header can't force a huge allocation.
// It matches the largest canvas the raster model accepts.
const maxCells = raster.MaxCells

var pattern = regexp.MustCompile(`(?s)^(\d+)x(\d+):(.*)$`)

// symbolIndex maps a symbol byte back to its index; unknown bytes map to 0.
var symbolIndex = func() [256]int {
	var t [256]int
	for i := 0; i < Radix; i++ {
		t[Alphabet[i]] = i
	}
	return t
}()

// Plane is a read-only grid of palette indices.
type Plane interface {
	Size() (width, height int)
	At(x, y int) int
}

// Target is a grid that Decode can populate.
type Target interface {
	Resize(width, height int) error
	Set(x, y, index int)
}

// Raster is a decoded plane.
type Raster struct {
	Width  int
	Height int
	Pixels []int // row-major
}

// Size returns the raster dimensions.
func (r *Raster) Size() (width, height int) { return r.Width, r.Height }

// At returns the index at (x, y), or 0 outside the raster.
func (r *Raster) At(x, y int) int {
	if x < 0 || x >= r.Width || y < 0 || y >= r.Height {
		return 0
	}
	return r.Pixels[y*r.Width+x]
}

// Resize implements Target. Contents are discarded.
func (r *Raster) Resize(width, height int) error {
	r.Width = width
	r.Height = height
	r.Pixels = make([]int, width*height)
	return nil
}

// Set implements Target.
func (r *Raster) Set(x, y, index int) {
	if x < 0 || x >= r.Width || y < 0 || y >= r.Height {
		return
	}
	r.Pixels[y*r.Width+x] = index
}

// Symbol returns the alphabet symbol for index. Indices outside the
// alphabet encode as the symbol for 0.
func Symbol(index int) byte {
	if index < 0 || index >= Radix {
		return Alphabet[0]
	}
	return Alphabet[index]
}

// Encode serializes p row by row.
func Encode(p Plane) string {
	w, h := p.Size()

	var sb strings.Builder
	sb.Grow(len(strconv.Itoa(w)) + len(strconv.Itoa(h)) + 2 + w*h)
	sb.WriteString(strconv.Itoa(w))
	sb.WriteByte('x')
	sb.WriteString(strconv.Itoa(h))
	sb.WriteByte(':')
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			sb.WriteByte(Symbol(p.At(x, y)))
		}
	}
	return sb.String()
}

// Header splits an encoded string into its dimensions and data, checking
// the grammar and the data length without decoding any symbol. Data must
// be ASCII, one byte per cell; other bytes are ErrMalformed. ASCII bytes
// outside the alphabet decode to 0.
func Header(s string) (width, height int, data string, err error) {
	m := pattern.FindStringSubmatch(s)
	if m == nil {
		return 0, 0, "", ErrMalformed
	}
	width, err = strconv.Atoi(m[1])
	if err != nil || width <= 0 {
		return 0, 0, "", fmt.Errorf("%w: width %q", ErrMalformed, m[1])
	}
	height, err = strconv.Atoi(m[2])
	if err != nil || height <= 0 {
		return 0, 0, "", fmt.Errorf("%w: height %q", ErrMalformed, m[2])
	}
	if width > maxCells/height {
		return 0, 0, "", fmt.Errorf("%w: %dx%d exceeds %d cells", ErrMalformed, width, height, maxCells)
	}
	data = m[3]
	for i := 0; i < len(data); i++ {
		if data[i] >= utf8.RuneSelf {
			return 0, 0, "", fmt.Errorf("%w: non-ASCII data at byte %d", ErrMalformed, i)
		}
	}
	if len(data) != width*height {
		return 0, 0, "", fmt.Errorf("%w: %dx%d needs %d symbols, got %d",
			ErrLengthMismatch, width, height, width*height, len(data))
	}
	return width, height, data, nil
}

// Decode parses an encoded string into a new Raster. Symbols outside the
// alphabet decode to 0.
func Decode(s string) (*Raster, error) {
	r := &Raster{}
	if err := DecodeInto(s, r); err != nil {
		return nil, err
	}
	return r, nil
}

// DecodeInto parses s and writes it into dst. dst is resized to the decoded
// dimensions before any cell is written. On error dst is left untouched.
func DecodeInto(s string, dst Target) error {
	w, h, data, err := Header(s)
	if err != nil {
		return err
	}
	if err := dst.Resize(w, h); err != nil {
		return fmt.Errorf("codec: resize target: %w", err)
	}
	for i := 0; i < len(data); i++ {
		dst.Set(i%w, i/w, symbolIndex[data[i]])
	}
	return nil
}
