// Package pixel is an indexed-color pixel-art engine.
//
// # Overview
//
// A document is a stack of layers, each a grid of palette indices (0..63,
// where 0 is transparent). The [Engine] owns the document together with
// everything needed to edit and show it: the zoom/pan viewport, snapshot
// based undo/redo, the tool settings and a renderer that draws onto a
// [surface.Surface] and can present the result as a GPU texture.
//
// # Quick Start
//
//	import "github.com/gogpu/pixel"
//
//	e, err := pixel.New(16, 16)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer e.Destroy()
//
//	e.SetPixel(e.ActiveLayerID(), 0, 0, 5)
//	fmt.Println(e.Export()) // 16x16:5000…
//
// # Commands and History
//
// Every command that changes the document is one undo step, pushed only
// when the document really changed. Expected boundary conditions (a cell
// outside the canvas, removing the last layer, undo with nothing to undo)
// report false and leave the state alone; only malformed input returns an
// error. Pixel edits between [Engine.BeginAction] and [Engine.CommitAction]
// form a single step; pointer strokes do this automatically.
//
// # Encoded Strings
//
// [Engine.Export], [Engine.Import] and [Engine.Load] use the compact
// "{width}x{height}:{data}" format of package codec, one symbol per cell.
//
// # Input
//
// [Engine.Attach] subscribes to gpucontext pointer and scroll sources.
// Dragging applies the active tool, the middle button pans and the wheel
// zooms about the cursor. Destroy detaches every callback.
//
// # Sub-packages
//
//   - raster: layers, selection and snapshots
//   - codec: encoded strings and image export
//   - viewport: transform, hit testing, rendering and presentation
//   - history: bounded undo/redo stacks
//   - tool: tool kinds and validated tool options
//   - palette: the 64-entry color table
//   - surface: CPU drawing surfaces
//   - cache: the LRU cache behind thumbnails
//
// # Logging
//
// pixel is silent by default. Use [SetLogger] or [WithLogger] to enable
// structured logging through log/slog.
package pixel
