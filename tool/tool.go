// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package tool defines the closed set of editor tools and their options.
//
// Each Kind has a Schema listing the options it accepts. Option values are
// checked against the field type and a constraint expression written in the
// expr language (github.com/expr-lang/expr), for example
//
//	value >= 0 && value < 64
//
// where value is the option being checked and every other option of the
// same tool is available by its key.
package tool

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
)

// Errors returned by Configure.
var (
	ErrUnknownKind   = errors.New("tool: unknown kind")
	ErrInvalidOption = errors.New("tool: invalid option")
)

// Kind identifies a tool.
type Kind uint8

// Tool kinds.
const (
	Pencil Kind = iota
	Eraser
	Picker
	Pan

	numKinds
)

// Category groups tools for display.
type Category string

// Tool categories.
const (
	CategoryDraw     Category = "draw"
	CategorySample   Category = "sample"
	CategoryNavigate Category = "navigate"
)

// Option keys.
const (
	KeyColor          = "color"
	KeyReturnToPencil = "return_to_pencil"
	KeySpeed          = "speed"
)

// Descriptor describes a tool kind.
type Descriptor struct {
	Kind        Kind
	Name        string
	Category    Category
	Description string
	Shortcut    string
	Schema      Schema
}

var descriptors = [numKinds]Descriptor{
	Pencil: {
		Kind:        Pencil,
		Name:        "Pencil",
		Category:    CategoryDraw,
		Description: "Set single pixels to the current color",
		Shortcut:    "B",
		Schema: Schema{
			{Key: KeyColor, Type: TypeInt, Default: 1, Constraint: "value >= 0 && value < 64"},
		},
	},
	Eraser: {
		Kind:        Eraser,
		Name:        "Eraser",
		Category:    CategoryDraw,
		Description: "Clear pixels to transparent",
		Shortcut:    "E",
	},
	Picker: {
		Kind:        Picker,
		Name:        "Color Picker",
		Category:    CategorySample,
		Description: "Pick the topmost visible color under the cursor",
		Shortcut:    "I",
		Schema: Schema{
			{Key: KeyReturnToPencil, Type: TypeBool, Default: true},
		},
	},
	Pan: {
		Kind:        Pan,
		Name:        "Hand",
		Category:    CategoryNavigate,
		Description: "Drag to move the view",
		Shortcut:    "H",
		Schema: Schema{
			{Key: KeySpeed, Type: TypeFloat, Default: 1.0, Constraint: "value > 0 && value <= 4"},
		},
	},
}

// String returns the tool name.
func (k Kind) String() string {
	if k >= numKinds {
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
	return descriptors[k].Name
}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool { return k < numKinds }

// Describe returns the descriptor for k.
func Describe(k Kind) (Descriptor, bool) {
	if !k.Valid() {
		return Descriptor{}, false
	}
	return descriptors[k], true
}

// Kinds returns every tool kind in declaration order.
func Kinds() []Kind {
	kinds := make([]Kind, numKinds)
	for i := range kinds {
		kinds[i] = Kind(i)
	}
	return kinds
}

// ParseKind resolves a tool name case-insensitively.
func ParseKind(name string) (Kind, error) {
	f := fold(strings.TrimSpace(name))
	for _, d := range descriptors {
		if fold(d.Name) == f {
			return d.Kind, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

// fold returns s case-folded. A Caser keeps state, so each call gets its own.
func fold(s string) string {
	return cases.Fold().String(s)
}

// Search returns the descriptors whose name, category, description or
// shortcut contains query, ignoring case. An empty query returns all.
func Search(query string) []Descriptor {
	q := fold(strings.TrimSpace(query))
	var out []Descriptor
	for _, d := range descriptors {
		if q == "" ||
			strings.Contains(fold(d.Name), q) ||
			strings.Contains(fold(string(d.Category)), q) ||
			strings.Contains(fold(d.Description), q) ||
			fold(d.Shortcut) == q {
			out = append(out, d)
		}
	}
	return out
}

// ByCategory groups the descriptors by category, each group in kind order.
func ByCategory() map[Category][]Descriptor {
	groups := make(map[Category][]Descriptor)
	for _, d := range descriptors {
		groups[d.Category] = append(groups[d.Category], d)
	}
	return groups
}

// Categories returns the category names in sorted order.
func Categories() []Category {
	groups := ByCategory()
	names := make([]Category, 0, len(groups))
	for c := range groups {
		names = append(names, c)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}
