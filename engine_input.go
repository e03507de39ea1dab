package pixel

import (
	"fmt"
	"math"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/pixel/tool"
	"github.com/gogpu/pixel/viewport"
)

// Scroll zoom tuning.
const (
	// ZoomStep is the zoom factor applied per scroll line.
	ZoomStep = 1.1

	// pixelsPerLine converts pixel scroll deltas to lines.
	pixelsPerLine = 40
)

// gesture tracks one pointer press from down to up.
type gesture struct {
	drawing bool
	panning bool
	pointer int
	last    viewport.Point // backing pixels
}

// Tool returns the active tool.
func (e *Engine) Tool() tool.Kind { return e.activeTool }

// SetTool makes k the active tool. A gesture in progress is ended first.
func (e *Engine) SetTool(k tool.Kind) error {
	if !k.Valid() {
		return fmt.Errorf("%w: %d", tool.ErrUnknownKind, uint8(k))
	}
	e.endGesture()
	e.activeTool = k
	return nil
}

// ToolConfig returns the settings of k.
func (e *Engine) ToolConfig(k tool.Kind) (tool.Config, bool) {
	cfg, ok := e.tools[k]
	return cfg, ok
}

// ConfigureTool validates values against the option schema of k and
// stores the result. Options not given take their default.
func (e *Engine) ConfigureTool(k tool.Kind, values map[string]any) error {
	cfg, err := tool.Configure(k, values)
	if err != nil {
		return err
	}
	e.tools[k] = cfg
	return nil
}

// Color returns the pencil color.
func (e *Engine) Color() int {
	return e.tools[tool.Pencil].Int(tool.KeyColor)
}

// SetColor sets the pencil color.
func (e *Engine) SetColor(index int) error {
	cfg, err := e.tools[tool.Pencil].With(tool.KeyColor, index)
	if err != nil {
		return err
	}
	e.tools[tool.Pencil] = cfg
	return nil
}

// Attach routes pointer and scroll input to the engine: pressing and
// dragging applies the active tool, the middle button always pans and the
// wheel zooms about the cursor. Either source may be nil. A later Attach
// or Destroy detaches the previous sources.
func (e *Engine) Attach(pointer gpucontext.PointerEventSource, scroll gpucontext.ScrollEventSource) error {
	e.endGesture()
	return e.renderer.Attach(pointer, scroll, viewport.Handlers{
		Pointer: e.HandlePointer,
		Scroll:  e.HandleScroll,
	})
}

// HandlePointer applies one pointer event. Attach calls it for every event;
// hosts with their own event loop may call it directly.
func (e *Engine) HandlePointer(ev gpucontext.PointerEvent) {
	if e.destroyed {
		return
	}
	switch ev.Type {
	case gpucontext.PointerDown:
		e.pointerDown(ev)
	case gpucontext.PointerMove:
		e.pointerMove(ev)
	case gpucontext.PointerUp, gpucontext.PointerCancel:
		if ev.PointerID == e.gesture.pointer {
			e.endGesture()
		}
	}
}

func (e *Engine) pointerDown(ev gpucontext.PointerEvent) {
	if e.gesture.drawing || e.gesture.panning {
		return
	}
	if ev.Button == gpucontext.ButtonMiddle || (ev.Button == gpucontext.ButtonLeft && e.activeTool == tool.Pan) {
		e.gesture = gesture{
			panning: true,
			pointer: ev.PointerID,
			last:    e.renderer.ClientRect().ToBacking(ev.X, ev.Y),
		}
		return
	}
	if ev.Button != gpucontext.ButtonLeft {
		return
	}

	x, y, ok := e.CellAt(ev.X, ev.Y)
	switch e.activeTool {
	case tool.Picker:
		if ok {
			e.pick(x, y)
		}
	case tool.Pencil, tool.Eraser:
		e.BeginAction()
		e.gesture = gesture{drawing: true, pointer: ev.PointerID}
		if ok {
			e.apply(x, y)
		}
	}
}

func (e *Engine) pointerMove(ev gpucontext.PointerEvent) {
	if ev.PointerID != e.gesture.pointer {
		return
	}
	switch {
	case e.gesture.panning:
		p := e.renderer.ClientRect().ToBacking(ev.X, ev.Y)
		speed := e.tools[tool.Pan].Float(tool.KeySpeed)
		e.SetPan(
			e.transform.PanX+(p.X-e.gesture.last.X)*speed,
			e.transform.PanY+(p.Y-e.gesture.last.Y)*speed)
		e.gesture.last = p
	case e.gesture.drawing:
		if x, y, ok := e.CellAt(ev.X, ev.Y); ok {
			e.apply(x, y)
		}
	}
}

// endGesture finishes the current press. A drawing stroke becomes one undo
// step.
func (e *Engine) endGesture() {
	if e.gesture.drawing {
		e.CommitAction()
	}
	e.gesture = gesture{}
}

// apply runs the active drawing tool on cell (x, y) of the active layer.
// Cells outside an active selection are left alone.
func (e *Engine) apply(x, y int) {
	if sel := e.canvas.Selection(); sel.Active && !sel.Contains(x, y) {
		return
	}
	index := 0
	if e.activeTool == tool.Pencil {
		index = e.Color()
	}
	e.SetPixel(e.canvas.ActiveLayerID(), x, y, index)
}

// pick copies the topmost visible non-transparent index at (x, y) into the
// pencil color.
func (e *Engine) pick(x, y int) {
	index := 0
	layers := e.canvas.Layers()
	for i := len(layers) - 1; i >= 0; i-- {
		if l := layers[i]; l.Visible() && l.At(x, y) != 0 {
			index = l.At(x, y)
			break
		}
	}
	if err := e.SetColor(index); err != nil {
		e.log.Debug("pixel: pick rejected", "index", index, "err", err)
		return
	}
	if e.tools[tool.Picker].Bool(tool.KeyReturnToPencil) {
		e.activeTool = tool.Pencil
	}
}

// HandleScroll zooms about the cursor. Scrolling up zooms in by ZoomStep
// per line.
func (e *Engine) HandleScroll(ev gpucontext.ScrollEvent) {
	if e.destroyed || ev.DeltaY == 0 {
		return
	}
	lines := ev.DeltaY
	if ev.DeltaMode == gpucontext.ScrollDeltaPixel {
		lines /= pixelsPerLine
	}
	p := e.renderer.ClientRect().ToBacking(ev.X, ev.Y)
	e.ZoomAt(p.X, p.Y, e.transform.Zoom*math.Pow(ZoomStep, -lines))
}
