// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package viewport

import "github.com/gogpu/gpucontext"

// Handlers receive input forwarded by Attach. Nil fields are skipped.
type Handlers struct {
	Pointer func(gpucontext.PointerEvent)
	Scroll  func(gpucontext.ScrollEvent)
}

// Attach subscribes h to the given event sources; either source may be nil.
// A later Attach, Detach or Destroy silences the callbacks registered here,
// since gpucontext sources offer no way to unsubscribe.
func (r *Renderer) Attach(pointer gpucontext.PointerEventSource, scroll gpucontext.ScrollEventSource, h Handlers) error {
	if r.destroyed {
		return ErrDestroyed
	}
	r.attachGen++
	gen := r.attachGen
	r.handlers = h

	if pointer != nil && h.Pointer != nil {
		pointer.OnPointer(func(ev gpucontext.PointerEvent) {
			if fn := r.live(gen).Pointer; fn != nil {
				fn(ev)
			}
		})
	}
	if scroll != nil && h.Scroll != nil {
		scroll.OnScrollEvent(func(ev gpucontext.ScrollEvent) {
			if fn := r.live(gen).Scroll; fn != nil {
				fn(ev)
			}
		})
	}
	return nil
}

// Detach silences every callback registered by Attach.
func (r *Renderer) Detach() {
	r.attachGen++
	r.handlers = Handlers{}
}

// live returns the current handlers if gen is still the active attachment.
func (r *Renderer) live(gen uint64) Handlers {
	if r.destroyed || gen != r.attachGen {
		return Handlers{}
	}
	return r.handlers
}
