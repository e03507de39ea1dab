// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package palette provides the fixed 64-entry color table that maps palette
// indices to display colors.
//
// Index 0 is reserved for transparency. Its Value is the sentinel string
// [Transparent]; renderers must draw it as a checkerboard (or not at all),
// never as an opaque fill.
package palette

import (
	"errors"
	"fmt"
	"image/color"
	"sort"
	"strings"

	"golang.org/x/text/cases"
)

// Size is the number of entries in every palette.
const Size = 64

// Transparent is the Value sentinel for the transparent entry.
const Transparent = "transparent"

// ErrInvalidPalette is returned by New when the entry table is unusable.
var ErrInvalidPalette = errors.New("palette: invalid palette")

// Entry is one row of the color table.
type Entry struct {
	Index int
	Name  string
	Group string
	// Value is "#rrggbb" or Transparent.
	Value string
}

// Palette is an immutable 64-entry color table.
type Palette struct {
	entries [Size]Entry
	colors  [Size]color.NRGBA
	opaque  [Size]bool
}

var defaultPalette = mustNew(defaultEntries[:])

// Default returns the built-in palette.
func Default() *Palette {
	return defaultPalette
}

// New builds a palette from exactly Size entries in index order.
// Entry 0 must be Transparent; every other Value must be a hex color.
func New(entries []Entry) (*Palette, error) {
	if len(entries) != Size {
		return nil, fmt.Errorf("%w: want %d entries, got %d", ErrInvalidPalette, Size, len(entries))
	}

	p := &Palette{}
	for i, e := range entries {
		if e.Index != i {
			return nil, fmt.Errorf("%w: entry %d has index %d", ErrInvalidPalette, i, e.Index)
		}
		p.entries[i] = e
		if e.Value == Transparent {
			continue
		}
		if i == 0 {
			return nil, fmt.Errorf("%w: entry 0 must be %q", ErrInvalidPalette, Transparent)
		}
		c, err := ParseHex(e.Value)
		if err != nil {
			return nil, fmt.Errorf("%w: entry %d: %w", ErrInvalidPalette, i, err)
		}
		p.colors[i] = c
		p.opaque[i] = true
	}
	return p, nil
}

func mustNew(entries []Entry) *Palette {
	p, err := New(entries)
	if err != nil {
		panic(err)
	}
	return p
}

// Entry returns the entry at index i.
func (p *Palette) Entry(i int) (Entry, bool) {
	if i < 0 || i >= Size {
		return Entry{}, false
	}
	return p.entries[i], true
}

// Entries returns a copy of all entries in index order.
func (p *Palette) Entries() []Entry {
	out := make([]Entry, Size)
	copy(out, p.entries[:])
	return out
}

// Color returns the display color for index i. It reports false for
// transparent entries and for indices outside the table.
func (p *Palette) Color(i int) (color.NRGBA, bool) {
	if i < 0 || i >= Size || !p.opaque[i] {
		return color.NRGBA{}, false
	}
	return p.colors[i], true
}

// IsTransparent reports whether index i renders as transparent.
// Indices outside the table are treated as transparent.
func (p *Palette) IsTransparent(i int) bool {
	return i < 0 || i >= Size || !p.opaque[i]
}

// fold returns s case-folded. A Caser is stateful, so one is made per call.
func fold(s string) string {
	return cases.Fold().String(s)
}

// Search returns the entries whose name, group or value contains query,
// ignoring case. An empty query matches every entry.
func (p *Palette) Search(query string) []Entry {
	q := fold(strings.TrimSpace(query))
	var out []Entry
	for _, e := range p.entries {
		if q == "" ||
			strings.Contains(fold(e.Name), q) ||
			strings.Contains(fold(e.Group), q) ||
			strings.Contains(fold(e.Value), q) {
			out = append(out, e)
		}
	}
	return out
}

// Groups returns the entries keyed by group. Entries keep index order
// within a group.
func (p *Palette) Groups() map[string][]Entry {
	out := make(map[string][]Entry)
	for _, e := range p.entries {
		out[e.Group] = append(out[e.Group], e)
	}
	return out
}

// GroupNames returns the distinct group names sorted alphabetically.
func (p *Palette) GroupNames() []string {
	groups := p.Groups()
	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
