// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package raster

import "image"

// Selection is an axis-aligned rectangle over raster cells. Both corners are
// inclusive. A cleared selection is inactive with all bounds zero.
type Selection struct {
	X1, Y1 int
	X2, Y2 int
	Active bool
}

// Rect returns the selection as a half-open image.Rectangle, or the empty
// rectangle when inactive.
func (s Selection) Rect() image.Rectangle {
	if !s.Active {
		return image.Rectangle{}
	}
	return image.Rect(s.X1, s.Y1, s.X2+1, s.Y2+1)
}

// Contains reports whether cell (x, y) is inside an active selection.
func (s Selection) Contains(x, y int) bool {
	return s.Active && x >= s.X1 && x <= s.X2 && y >= s.Y1 && y <= s.Y2
}

// normalized orders the corners and clips them to a w×h canvas. The result
// is inactive when nothing of it lies on the canvas.
func (s Selection) normalized(w, h int) Selection {
	if s.X1 > s.X2 {
		s.X1, s.X2 = s.X2, s.X1
	}
	if s.Y1 > s.Y2 {
		s.Y1, s.Y2 = s.Y2, s.Y1
	}
	if s.X2 < 0 || s.Y2 < 0 || s.X1 >= w || s.Y1 >= h {
		return Selection{}
	}
	s.X1 = max(s.X1, 0)
	s.Y1 = max(s.Y1, 0)
	s.X2 = min(s.X2, w-1)
	s.Y2 = min(s.Y2, h-1)
	s.Active = true
	return s
}
