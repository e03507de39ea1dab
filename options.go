package pixel

import (
	"log/slog"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/pixel/codec"
	"github.com/gogpu/pixel/history"
	"github.com/gogpu/pixel/palette"
	"github.com/gogpu/pixel/surface"
	"github.com/gogpu/pixel/viewport"
)

// DefaultCellSize is the edge of one cell in surface pixels at zoom 1.
const DefaultCellSize = 16

// Option configures an Engine during creation.
//
// Example:
//
//	e, err := pixel.New(32, 32,
//	    pixel.WithZoomRange(0.5, 8),
//	    pixel.WithHistoryCapacity(100),
//	)
type Option func(*options)

// options holds optional configuration for Engine creation.
type options struct {
	zoomRange       viewport.ZoomRange
	historyCapacity int
	palette         *palette.Palette
	surface         surface.Surface
	window          gpucontext.WindowProvider
	renderOpts      codec.RenderOptions
	viewportOpts    []viewport.Option
	thumbCacheSize  int
	cellSize        float64
	layerName       string
	logger          *slog.Logger
}

// defaultOptions returns the default engine options.
func defaultOptions() options {
	return options{
		zoomRange:       viewport.DefaultZoomRange(),
		historyCapacity: history.DefaultCapacity,
		palette:         palette.Default(),
		renderOpts:      codec.DefaultRenderOptions(),
		thumbCacheSize:  codec.DefaultThumbnailCacheSize,
		cellSize:        DefaultCellSize,
	}
}

// WithZoomRange sets the bounds SetZoom and ZoomAt clamp to. An invalid
// range (non-positive or unordered) is ignored.
func WithZoomRange(minZoom, maxZoom float64) Option {
	return func(o *options) {
		if r := (viewport.ZoomRange{Min: minZoom, Max: maxZoom}); r.Valid() {
			o.zoomRange = r
		}
	}
}

// WithHistoryCapacity sets how many undo states are kept. Values below 1
// are ignored.
func WithHistoryCapacity(n int) Option {
	return func(o *options) {
		if n >= 1 {
			o.historyCapacity = n
		}
	}
}

// WithPalette sets the color table. Nil keeps palette.Default.
func WithPalette(p *palette.Palette) Option {
	return func(o *options) {
		if p != nil {
			o.palette = p
		}
	}
}

// WithSurface sets the surface the viewport draws into. The engine takes
// ownership and closes it in Destroy. Without it, a surface is created
// through surface.NewSurface, sized to show the whole canvas at zoom 1.
func WithSurface(s surface.Surface) Option {
	return func(o *options) {
		o.surface = s
	}
}

// WithWindow sets the window used for redraw requests, HiDPI hit testing
// and FitWindow.
func WithWindow(w gpucontext.WindowProvider) Option {
	return func(o *options) {
		o.window = w
	}
}

// WithRenderOptions sets the options Thumbnail renders with.
func WithRenderOptions(ro codec.RenderOptions) Option {
	return func(o *options) {
		o.renderOpts = ro
	}
}

// WithViewportOptions appends options for the viewport renderer, such as
// viewport.WithGrid or viewport.WithCellBorders.
func WithViewportOptions(opts ...viewport.Option) Option {
	return func(o *options) {
		o.viewportOpts = append(o.viewportOpts, opts...)
	}
}

// WithThumbnailCacheSize sets how many rendered thumbnails are kept.
func WithThumbnailCacheSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.thumbCacheSize = n
		}
	}
}

// WithCellSize sets the edge of one cell in surface pixels at zoom 1.
func WithCellSize(px float64) Option {
	return func(o *options) {
		if px > 0 {
			o.cellSize = px
		}
	}
}

// WithLayerName sets the name of the initial layer.
func WithLayerName(name string) Option {
	return func(o *options) {
		o.layerName = name
	}
}

// WithLogger sets the engine logger. It is passed down to the canvas,
// history and viewport. Without it, the package Logger is used.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}
