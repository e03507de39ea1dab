// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package tool

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDefaults(t *testing.T) {
	tests := []struct {
		kind Kind
		want map[string]any
	}{
		{Pencil, map[string]any{KeyColor: 1}},
		{Eraser, map[string]any{}},
		{Picker, map[string]any{KeyReturnToPencil: true}},
		{Pan, map[string]any{KeySpeed: 1.0}},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			cfg, err := Default(tt.kind)
			if err != nil {
				t.Fatal(err)
			}
			if cfg.Kind() != tt.kind {
				t.Errorf("Kind() = %v", cfg.Kind())
			}
			if diff := cmp.Diff(tt.want, cfg.Values()); diff != "" {
				t.Errorf("values mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestConfigure(t *testing.T) {
	tests := []struct {
		name    string
		kind    Kind
		values  map[string]any
		wantErr error
	}{
		{"pencil color", Pencil, map[string]any{KeyColor: 63}, nil},
		{"pencil whole float", Pencil, map[string]any{KeyColor: 12.0}, nil},
		{"pencil color too high", Pencil, map[string]any{KeyColor: 64}, ErrInvalidOption},
		{"pencil negative color", Pencil, map[string]any{KeyColor: -1}, ErrInvalidOption},
		{"pencil fractional", Pencil, map[string]any{KeyColor: 1.5}, ErrInvalidOption},
		{"pencil wrong type", Pencil, map[string]any{KeyColor: "red"}, ErrInvalidOption},
		{"unknown key", Eraser, map[string]any{"size": 3}, ErrInvalidOption},
		{"pan int speed", Pan, map[string]any{KeySpeed: 2}, nil},
		{"pan zero speed", Pan, map[string]any{KeySpeed: 0.0}, ErrInvalidOption},
		{"picker bool", Picker, map[string]any{KeyReturnToPencil: false}, nil},
		{"picker not bool", Picker, map[string]any{KeyReturnToPencil: 1}, ErrInvalidOption},
		{"unknown kind", Kind(99), nil, ErrUnknownKind},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Configure(tt.kind, tt.values)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Configure() error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Configure() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfigGetters(t *testing.T) {
	cfg, err := Configure(Pencil, map[string]any{KeyColor: 12.0})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Int(KeyColor) != 12 {
		t.Errorf("Int(color) = %d", cfg.Int(KeyColor))
	}
	if cfg.Float(KeyColor) != 0 || cfg.Bool("missing") {
		t.Error("mismatched getters should return zero values")
	}

	pan, _ := Configure(Pan, map[string]any{KeySpeed: 2})
	if pan.Float(KeySpeed) != 2 {
		t.Errorf("Float(speed) = %v", pan.Float(KeySpeed))
	}
	if diff := cmp.Diff([]string{KeySpeed}, pan.Keys()); diff != "" {
		t.Errorf("Keys() mismatch (-want +got):\n%s", diff)
	}
}

func TestConfigWith(t *testing.T) {
	cfg, _ := Default(Pencil)
	next, err := cfg.With(KeyColor, 9)
	if err != nil {
		t.Fatal(err)
	}
	if next.Int(KeyColor) != 9 || cfg.Int(KeyColor) != 1 {
		t.Error("With must return a modified copy")
	}
	if _, err := cfg.With(KeyColor, 100); !errors.Is(err, ErrInvalidOption) {
		t.Errorf("With(100) error = %v", err)
	}

	// Values is a copy.
	cfg.Values()[KeyColor] = 40
	if cfg.Int(KeyColor) != 1 {
		t.Error("Values() leaked the internal map")
	}
}

func TestParseKind(t *testing.T) {
	for _, k := range Kinds() {
		got, err := ParseKind(" " + k.String() + " ")
		if err != nil || got != k {
			t.Errorf("ParseKind(%q) = %v, %v", k.String(), got, err)
		}
	}
	if k, err := ParseKind("PENCIL"); err != nil || k != Pencil {
		t.Errorf("ParseKind(PENCIL) = %v, %v", k, err)
	}
	if _, err := ParseKind("lasso"); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("ParseKind(lasso) error = %v", err)
	}
	if Kind(42).Valid() || Kind(42).String() != "Kind(42)" {
		t.Error("invalid kind handling")
	}
}

func TestSearch(t *testing.T) {
	tests := []struct {
		query string
		want  []Kind
	}{
		{"", []Kind{Pencil, Eraser, Picker, Pan}},
		{"PICK", []Kind{Picker}},
		{"draw", []Kind{Pencil, Eraser}},
		{"transparent", []Kind{Eraser}},
		{"navigate", []Kind{Pan}},
		{"nothing", nil},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			var got []Kind
			for _, d := range Search(tt.query) {
				got = append(got, d.Kind)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Search(%q) mismatch (-want +got):\n%s", tt.query, diff)
			}
		})
	}
}

func TestByCategory(t *testing.T) {
	groups := ByCategory()
	if len(groups[CategoryDraw]) != 2 || groups[CategoryDraw][0].Kind != Pencil {
		t.Errorf("draw group = %v", groups[CategoryDraw])
	}
	want := []Category{CategoryDraw, CategoryNavigate, CategorySample}
	if diff := cmp.Diff(want, Categories()); diff != "" {
		t.Errorf("Categories() mismatch (-want +got):\n%s", diff)
	}
}
