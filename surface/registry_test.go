// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"errors"
	"slices"
	"testing"
)

func TestRegistryPriority(t *testing.T) {
	r := NewRegistry()
	var built []string
	factory := func(name string, fail bool) Factory {
		return func(opts Options) (Surface, error) {
			built = append(built, name)
			if fail {
				return nil, errors.New(name + " failed")
			}
			return NewImageSurface(opts.Width, opts.Height), nil
		}
	}
	r.Register("slow", 10, factory("slow", false), nil)
	r.Register("fast", 100, factory("fast", true), nil)
	r.Register("off", 200, factory("off", false), func() bool { return false })

	if got := r.List(); !slices.Equal(got, []string{"off", "fast", "slow"}) {
		t.Errorf("List() = %v", got)
	}

	s, err := r.NewSurface(Options{Width: 3, Height: 2})
	if err != nil {
		t.Fatal(err)
	}
	if s.Width() != 3 || s.Height() != 2 {
		t.Errorf("size = %dx%d", s.Width(), s.Height())
	}
	if !slices.Equal(built, []string{"fast", "slow"}) {
		t.Errorf("factories tried = %v", built)
	}
}

func TestRegistryErrors(t *testing.T) {
	r := NewRegistry()
	if _, err := r.NewSurface(Options{Width: 1, Height: 1}); !errors.Is(err, ErrNoBackendAvailable) {
		t.Errorf("empty registry error = %v", err)
	}
	if _, err := r.NewSurfaceByName("nope", Options{}); !errors.Is(err, ErrBackendNotFound) {
		t.Errorf("unknown name error = %v", err)
	}
	r.Register("off", 1, nil, func() bool { return false })
	if _, err := r.NewSurfaceByName("off", Options{}); !errors.Is(err, ErrBackendUnavailable) {
		t.Errorf("unavailable error = %v", err)
	}
	r.Unregister("off")
	if len(r.List()) != 0 {
		t.Error("Unregister left an entry")
	}
}

func TestGlobalImageBackend(t *testing.T) {
	s, err := NewSurfaceByName("image", 4, 4)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	if _, ok := s.(*ImageSurface); !ok {
		t.Errorf("image backend returned %T", s)
	}
	if !slices.Contains(List(), "image") {
		t.Error("image backend not listed")
	}
}
