// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package viewport

import (
	"image/color"
	"log/slog"

	"github.com/gogpu/gpucontext"
)

// Option configures a Renderer.
type Option func(*config)

type config struct {
	logger *slog.Logger
	window gpucontext.WindowProvider

	background   color.Color
	checkerLight color.NRGBA
	checkerDark  color.NRGBA
	checkerSize  int

	grid        bool
	gridMinZoom float64
	gridColor   color.NRGBA

	borders     bool
	borderColor color.NRGBA
}

func defaultConfig() config {
	return config{
		logger:       slog.New(slog.DiscardHandler),
		background:   color.NRGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xff},
		checkerLight: color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff},
		checkerDark:  color.NRGBA{R: 0x40, G: 0x40, B: 0x40, A: 0xff},
		checkerSize:  8,
		gridMinZoom:  1,
		gridColor:    color.NRGBA{A: 0x40},
		borderColor:  color.NRGBA{A: 0x80},
	}
}

// WithLogger sets the logger for texture and surface release messages.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithWindow sets the window that RequestRedraw forwards to.
func WithWindow(w gpucontext.WindowProvider) Option {
	return func(c *config) {
		c.window = w
	}
}

// WithBackground sets the color outside the raster.
func WithBackground(bg color.Color) Option {
	return func(c *config) {
		if bg != nil {
			c.background = bg
		}
	}
}

// WithCheckerboard sets the transparency pattern colors and square size
// in surface pixels. A size below 1 keeps the current size.
func WithCheckerboard(light, dark color.NRGBA, size int) Option {
	return func(c *config) {
		c.checkerLight = light
		c.checkerDark = dark
		if size >= 1 {
			c.checkerSize = size
		}
	}
}

// WithGrid enables grid lines on cell boundaries, drawn only while the
// zoom is at least minZoom.
func WithGrid(minZoom float64) Option {
	return func(c *config) {
		c.grid = true
		c.gridMinZoom = minZoom
	}
}

// WithGridColor sets the grid line color.
func WithGridColor(col color.NRGBA) Option {
	return func(c *config) {
		c.gridColor = col
	}
}

// WithCellBorders outlines every painted cell.
func WithCellBorders(col color.NRGBA) Option {
	return func(c *config) {
		c.borders = true
		c.borderColor = col
	}
}
