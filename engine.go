package pixel

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"math"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/pixel/codec"
	"github.com/gogpu/pixel/history"
	"github.com/gogpu/pixel/palette"
	"github.com/gogpu/pixel/raster"
	"github.com/gogpu/pixel/surface"
	"github.com/gogpu/pixel/tool"
	"github.com/gogpu/pixel/viewport"
)

// ErrLayerLocked is returned by Import when the active layer is locked.
var ErrLayerLocked = errors.New("pixel: layer is locked")

// Engine is a pixel-art document together with its view: the layered
// raster, the zoom/pan transform, the undo history, the tool settings and
// the renderer that draws it all onto a surface.
//
// Every state-changing command either succeeds and, when state actually
// changed, becomes one undoable step, or reports false and leaves the
// document untouched. Pixel edits made between BeginAction and
// CommitAction form a single step.
//
// Engine is NOT safe for concurrent use.
type Engine struct {
	canvas    *raster.Canvas
	transform viewport.Transform
	zoomRange viewport.ZoomRange
	history   *history.Manager[*raster.Snapshot]
	pending   *raster.Snapshot

	pal        *palette.Palette
	renderer   *viewport.Renderer
	thumbs     *codec.Thumbnailer
	renderOpts codec.RenderOptions

	tools      map[tool.Kind]tool.Config
	activeTool tool.Kind
	gesture    gesture

	log       *slog.Logger
	destroyed bool
}

// New creates an engine with a single empty width×height layer.
func New(width, height int, opts ...Option) (*Engine, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	log := o.logger
	if log == nil {
		log = Logger()
	}

	canvasOpts := []raster.Option{raster.WithLogger(log)}
	if o.layerName != "" {
		canvasOpts = append(canvasOpts, raster.WithLayerName(o.layerName))
	}
	c, err := raster.New(width, height, canvasOpts...)
	if err != nil {
		return nil, err
	}

	tools := make(map[tool.Kind]tool.Config, len(tool.Kinds()))
	for _, k := range tool.Kinds() {
		cfg, err := tool.Default(k)
		if err != nil {
			return nil, err
		}
		tools[k] = cfg
	}

	surf := o.surface
	if surf == nil {
		surf, err = surface.NewSurface(
			int(math.Ceil(float64(width)*o.cellSize)),
			int(math.Ceil(float64(height)*o.cellSize)))
		if err != nil {
			return nil, fmt.Errorf("pixel: create surface: %w", err)
		}
	}

	vopts := append([]viewport.Option{
		viewport.WithLogger(log),
		viewport.WithWindow(o.window),
	}, o.viewportOpts...)
	r, err := viewport.NewRenderer(surf, o.palette, vopts...)
	if err != nil {
		surf.Close()
		return nil, err
	}

	return &Engine{
		canvas: c,
		transform: viewport.Transform{
			Zoom:     o.zoomRange.Clamp(1),
			CellSize: o.cellSize,
		},
		zoomRange: o.zoomRange,
		history: history.New[*raster.Snapshot](
			history.WithCapacity(o.historyCapacity),
			history.WithLogger(log),
		),
		pal:        o.palette,
		renderer:   r,
		thumbs:     codec.NewThumbnailer(o.palette, o.thumbCacheSize),
		renderOpts: o.renderOpts,
		tools:      tools,
		activeTool: tool.Pencil,
		log:        log,
	}, nil
}

// Size returns the canvas dimensions.
func (e *Engine) Size() (width, height int) { return e.canvas.Size() }

// Palette returns the color table.
func (e *Engine) Palette() *palette.Palette { return e.pal }

// Layers returns the layers from bottom to top. The layers are live views:
// read them, but change them only through Engine commands.
func (e *Engine) Layers() []*raster.Layer { return e.canvas.Layers() }

// Layer looks up a layer by ID.
func (e *Engine) Layer(id raster.LayerID) (*raster.Layer, bool) { return e.canvas.Layer(id) }

// ActiveLayerID returns the ID of the layer tools draw on.
func (e *Engine) ActiveLayerID() raster.LayerID { return e.canvas.ActiveLayerID() }

// Selection returns the current selection.
func (e *Engine) Selection() raster.Selection { return e.canvas.Selection() }

// Transform returns the current viewport transform.
func (e *Engine) Transform() viewport.Transform { return e.transform }

// ZoomRange returns the bounds zoom is clamped to.
func (e *Engine) ZoomRange() viewport.ZoomRange { return e.zoomRange }

// Surface returns the surface the engine renders into, or nil after
// Destroy.
func (e *Engine) Surface() surface.Surface { return e.renderer.Surface() }

// record runs fn as one undoable step. The pre-step snapshot is pushed only
// when fn succeeds and the document really changed. Inside a pending
// action, fn simply joins it.
func (e *Engine) record(fn func() bool) bool {
	if e.pending != nil {
		ok := fn()
		if ok {
			e.renderer.RequestRedraw()
		}
		return ok
	}
	before := e.canvas.Snapshot()
	if !fn() {
		return false
	}
	if !e.canvas.Matches(before) {
		e.history.Push(before)
		e.renderer.RequestRedraw()
	}
	return true
}

// BeginAction opens an undo step that collects every following pixel edit
// until CommitAction. Calling it while an action is open does nothing.
func (e *Engine) BeginAction() {
	if e.pending == nil {
		e.pending = e.canvas.Snapshot()
	}
}

// CommitAction closes the open action. It reports whether the action
// changed the document and was therefore added to the history.
func (e *Engine) CommitAction() bool {
	before := e.pending
	if before == nil {
		return false
	}
	e.pending = nil
	if e.canvas.Matches(before) {
		return false
	}
	e.history.Push(before)
	return true
}

// ActionPending reports whether BeginAction has been called without a
// matching CommitAction.
func (e *Engine) ActionPending() bool { return e.pending != nil }

// SetPixel writes a palette index to one cell of a layer. It reports false
// when the cell is outside the canvas, the layer is unknown or locked, the
// index is not a palette index, or the cell already holds it.
func (e *Engine) SetPixel(id raster.LayerID, x, y, index int) bool {
	if index < 0 || index >= palette.Size {
		return false
	}
	if e.canvas.GetPixel(id, x, y) == index {
		return false
	}
	return e.record(func() bool { return e.canvas.SetPixel(id, x, y, index) })
}

// GetPixel returns the index at (x, y) of a layer, or 0 when the cell or
// the layer does not exist.
func (e *Engine) GetPixel(id raster.LayerID, x, y int) int {
	return e.canvas.GetPixel(id, x, y)
}

// Resize changes the canvas dimensions, keeping the overlapping cells.
func (e *Engine) Resize(width, height int) error {
	var err error
	e.record(func() bool {
		err = e.canvas.Resize(width, height)
		return err == nil
	})
	return err
}

// AddLayer adds an empty layer on top and makes it active.
func (e *Engine) AddLayer(name string) *raster.Layer {
	var l *raster.Layer
	e.record(func() bool {
		l = e.canvas.AddLayer(name)
		return true
	})
	return l
}

// RemoveLayer deletes a layer. Removing the only layer is rejected.
func (e *Engine) RemoveLayer(id raster.LayerID) bool {
	return e.record(func() bool { return e.canvas.RemoveLayer(id) })
}

// DuplicateLayer copies a layer above itself and activates the copy.
func (e *Engine) DuplicateLayer(id raster.LayerID) (*raster.Layer, bool) {
	var (
		l  *raster.Layer
		ok bool
	)
	e.record(func() bool {
		l, ok = e.canvas.DuplicateLayer(id)
		return ok
	})
	return l, ok
}

// Reorder moves a layer one step up or down the stack.
func (e *Engine) Reorder(id raster.LayerID, dir raster.Direction) bool {
	return e.record(func() bool { return e.canvas.Reorder(id, dir) })
}

// ToggleVisibility shows or hides a layer.
func (e *Engine) ToggleVisibility(id raster.LayerID) bool {
	return e.record(func() bool { return e.canvas.ToggleVisibility(id) })
}

// ToggleLock locks or unlocks a layer.
func (e *Engine) ToggleLock(id raster.LayerID) bool {
	return e.record(func() bool { return e.canvas.ToggleLock(id) })
}

// SetOpacity sets a layer's opacity, clamped to [0, 1].
func (e *Engine) SetOpacity(id raster.LayerID, opacity float64) bool {
	return e.record(func() bool { return e.canvas.SetOpacity(id, opacity) })
}

// Rename changes a layer's display name. Blank names are rejected.
func (e *Engine) Rename(id raster.LayerID, name string) bool {
	return e.record(func() bool { return e.canvas.Rename(id, name) })
}

// SetActiveLayer selects the layer tools draw on. It is not an undo step.
func (e *Engine) SetActiveLayer(id raster.LayerID) bool {
	if !e.canvas.SetActiveLayer(id) {
		return false
	}
	e.renderer.RequestRedraw()
	return true
}

// SetSelection selects the rectangle spanned by two corner cells. Drawing
// tools only touch cells inside an active selection. Selection changes are
// not undo steps.
func (e *Engine) SetSelection(x1, y1, x2, y2 int) raster.Selection {
	s := e.canvas.SetSelection(x1, y1, x2, y2)
	e.renderer.RequestRedraw()
	return s
}

// ClearSelection removes the selection.
func (e *Engine) ClearSelection() {
	e.canvas.ClearSelection()
	e.renderer.RequestRedraw()
}

// SetZoom sets the zoom factor, clamped to the zoom range, and returns the
// value stored. The pan is left alone; use ZoomAt to keep a point fixed.
func (e *Engine) SetZoom(zoom float64) float64 {
	e.transform.Zoom = e.zoomRange.Clamp(zoom)
	e.renderer.RequestRedraw()
	return e.transform.Zoom
}

// SetPan sets the surface offset of raster cell (0, 0).
func (e *Engine) SetPan(x, y float64) {
	if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0) {
		return
	}
	e.transform.PanX, e.transform.PanY = x, y
	e.renderer.RequestRedraw()
}

// ZoomAt changes the zoom so that the raster point under surface point
// (sx, sy) stays there. It returns the zoom stored.
func (e *Engine) ZoomAt(sx, sy, zoom float64) float64 {
	e.transform = viewport.ZoomAt(e.transform, sx, sy, zoom, e.zoomRange)
	e.renderer.RequestRedraw()
	return e.transform.Zoom
}

// CellAt maps a point in client coordinates (window points when a window
// is attached, surface pixels otherwise) to the raster cell under it.
func (e *Engine) CellAt(cx, cy float64) (x, y int, ok bool) {
	w, h := e.canvas.Size()
	return viewport.CellAt(cx, cy, e.renderer.ClientRect(), e.transform, w, h)
}

// Undo restores the state before the most recent step. It reports false
// when there is nothing to undo. A stroke in progress ends and an open
// action is committed first.
func (e *Engine) Undo() bool {
	e.endGesture()
	e.CommitAction()
	prev, ok := e.history.Undo(e.canvas.Snapshot())
	if !ok {
		return false
	}
	e.canvas.Restore(prev)
	e.renderer.RequestRedraw()
	return true
}

// Redo reapplies the most recently undone step. Like Undo, it ends a
// stroke in progress first.
func (e *Engine) Redo() bool {
	e.endGesture()
	e.CommitAction()
	next, ok := e.history.Redo(e.canvas.Snapshot())
	if !ok {
		return false
	}
	e.canvas.Restore(next)
	e.renderer.RequestRedraw()
	return true
}

// CanUndo reports whether Undo would do something.
func (e *Engine) CanUndo() bool { return e.history.CanUndo() || e.pendingChanged() }

// CanRedo reports whether Redo would do something.
func (e *Engine) CanRedo() bool { return e.history.CanRedo() }

// HistoryTruncated reports whether old steps were dropped to respect the
// history capacity, so the document can no longer be undone to its start.
func (e *Engine) HistoryTruncated() bool { return e.history.Truncated() }

func (e *Engine) pendingChanged() bool {
	return e.pending != nil && !e.canvas.Matches(e.pending)
}

// Export encodes the visible composite of all layers.
func (e *Engine) Export() string {
	return codec.Encode(e.canvas.Flatten())
}

// ExportLayer encodes a single layer.
func (e *Engine) ExportLayer(id raster.LayerID) (string, bool) {
	l, ok := e.canvas.Layer(id)
	if !ok {
		return "", false
	}
	return codec.Encode(l), true
}

// Import decodes an encoded string into the active layer, replacing its
// contents. The canvas takes the decoded dimensions, so other layers are
// resized too. The import is one undo step.
func (e *Engine) Import(encoded string) error {
	if l := e.canvas.ActiveLayer(); l.Locked() {
		return fmt.Errorf("%w: %s", ErrLayerLocked, l.Name())
	}
	var err error
	e.record(func() bool {
		err = codec.DecodeInto(encoded, importTarget{c: e.canvas, id: e.canvas.ActiveLayerID()})
		return err == nil
	})
	if err != nil {
		e.log.Debug("pixel: import rejected", "err", err)
		return err
	}
	w, h := e.canvas.Size()
	e.log.Info("pixel: imported", "width", w, "height", h)
	return nil
}

// importTarget writes decoded cells into one layer of a canvas.
type importTarget struct {
	c  *raster.Canvas
	id raster.LayerID
}

func (t importTarget) Resize(width, height int) error {
	if err := t.c.Resize(width, height); err != nil {
		return err
	}
	t.c.ClearLayer(t.id)
	return nil
}

func (t importTarget) Set(x, y, index int) {
	t.c.SetPixel(t.id, x, y, index)
}

// Load replaces the document with a single layer decoded from encoded and
// clears the history. A stroke in progress is dropped. On error the current
// document is kept.
func (e *Engine) Load(encoded string) error {
	r, err := codec.Decode(encoded)
	if err != nil {
		e.log.Debug("pixel: load rejected", "err", err)
		return err
	}
	c, err := raster.New(r.Width, r.Height, raster.WithLogger(e.log))
	if err != nil {
		return err
	}
	id := c.ActiveLayerID()
	for y := 0; y < r.Height; y++ {
		for x := 0; x < r.Width; x++ {
			c.SetPixel(id, x, y, r.At(x, y))
		}
	}
	e.canvas = c
	e.pending = nil
	e.gesture = gesture{}
	e.history.Clear()
	e.renderer.RequestRedraw()
	e.log.Info("pixel: loaded", "width", r.Width, "height", r.Height)
	return nil
}

// Thumbnail renders the visible composite with the engine's render
// options. Recent thumbnails are cached by content.
func (e *Engine) Thumbnail() (*image.NRGBA, error) {
	return e.thumbs.Render(e.Export(), e.renderOpts)
}

// Render redraws the surface from the current document and transform.
func (e *Engine) Render() error {
	w, h := e.canvas.Size()
	layers := e.canvas.Layers()
	frame := viewport.Frame{
		Width:     w,
		Height:    h,
		Layers:    make([]viewport.Layer, len(layers)),
		Transform: e.transform,
	}
	for i, l := range layers {
		frame.Layers[i] = l
	}
	return e.renderer.Render(frame)
}

// RedrawPending reports whether the view changed since the last Render.
func (e *Engine) RedrawPending() bool { return e.renderer.RedrawPending() }

// Present uploads the last rendered frame to a GPU texture and draws it
// at the origin of dc.
func (e *Engine) Present(dc gpucontext.TextureDrawer) error {
	return e.renderer.Present(dc)
}

// FitWindow resizes the surface to the attached window.
func (e *Engine) FitWindow() error {
	return e.renderer.FitWindow()
}

// Destroy releases the surface, textures and input subscriptions. An open
// action is discarded. Destroy is idempotent and safe on a nil Engine.
func (e *Engine) Destroy() {
	if e == nil || e.destroyed {
		return
	}
	e.destroyed = true
	e.pending = nil
	e.gesture = gesture{}
	e.renderer.Destroy()
}

// Destroyed reports whether Destroy has been called.
func (e *Engine) Destroyed() bool { return e.destroyed }
