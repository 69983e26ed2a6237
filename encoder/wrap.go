package encoder

import (
	"robodrive/core"
	"robodrive/x/mathx"
)

// CountSource is a free-running signed 32-bit quadrature count, such as a
// PIO state machine or a GPIO-interrupt decoder.
type CountSource interface {
	Count() int32
	Reset()
}

// WrapTimer presents a CountSource as a core.QuadratureTimer that wraps at
// modulus. Wrap crossings are dispatched from Poll, which the caller runs
// periodically, and from every Counter read, so a reader never sees the raw
// count wrap before the handler has accounted for it.
//
// Poll and Counter must be called from the same context.
type WrapTimer struct {
	src     CountSource
	modulus int64

	last    int32
	pos     int64 // counts since reset
	wraps   int64 // mathx.FloorDiv(pos, modulus) already dispatched
	handler core.UpdateHandler
	irq     bool
	started bool
	pending bool
}

func NewWrapTimer(src CountSource, modulus uint32) *WrapTimer {
	return &WrapTimer{src: src, modulus: int64(modulus)}
}

func (w *WrapTimer) ClearUpdateFlag() {
	w.pending = false
}

func (w *WrapTimer) EnableUpdateInterrupt(h core.UpdateHandler) error {
	w.handler = h
	w.irq = h != nil
	return nil
}

func (w *WrapTimer) ResetCounter() {
	w.src.Reset()
	w.last = w.src.Count()
	w.pos = 0
	w.wraps = 0
}

func (w *WrapTimer) StartEncoder() error {
	w.last = w.src.Count()
	w.started = true
	return nil
}

// Poll folds new source counts in and dispatches any wrap crossings.
func (w *WrapTimer) Poll() {
	if !w.started || w.modulus == 0 {
		return
	}
	cur := w.src.Count()
	w.pos += int64(cur - w.last) // wrap-safe while polled within 2^31 counts
	w.last = cur

	wraps := mathx.FloorDiv(w.pos, w.modulus)
	for w.wraps < wraps {
		w.wraps++
		w.dispatch(core.CountUp)
	}
	for w.wraps > wraps {
		w.wraps--
		w.dispatch(core.CountDown)
	}
}

func (w *WrapTimer) dispatch(dir core.CountDirection) {
	if w.irq {
		w.handler(dir)
		return
	}
	w.pending = true
}

func (w *WrapTimer) Counter() uint32 {
	w.Poll()
	return uint32(mathx.FloorMod(w.pos, w.modulus))
}

// Pending reports an update event raised while the interrupt was disabled.
func (w *WrapTimer) Pending() bool {
	return w.pending
}
