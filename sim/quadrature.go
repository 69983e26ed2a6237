package sim

import (
	"sync"

	"robodrive/core"
)

// QuadTimer is a simulated up/down counter in encoder mode. Moving it across
// the modulus boundary raises an update event, delivered synchronously to
// the registered handler when the interrupt is enabled and latched as a
// pending flag otherwise.
type QuadTimer struct {
	rec     *Recorder
	unit    int
	modulus uint32

	mu      sync.Mutex
	raw     uint32
	handler core.UpdateHandler
	irq     bool
	started bool
	pending bool

	// BeforeRead, when set, runs at the start of every Counter call. Tests
	// use it to land an update event inside a reader's critical window.
	BeforeRead func(t *QuadTimer)
	// AfterEnable, when set, runs once the update interrupt is live.
	AfterEnable func(t *QuadTimer)
}

func NewQuadTimer(rec *Recorder, unit int, modulus uint32) *QuadTimer {
	return &QuadTimer{rec: rec, unit: unit, modulus: modulus}
}

func (q *QuadTimer) ClearUpdateFlag() {
	q.mu.Lock()
	q.pending = false
	q.mu.Unlock()
	q.rec.record(Call{Op: OpClearFlag, Unit: q.unit})
}

func (q *QuadTimer) EnableUpdateInterrupt(h core.UpdateHandler) error {
	q.mu.Lock()
	q.handler = h
	q.irq = true
	q.mu.Unlock()
	q.rec.record(Call{Op: OpEnableIRQ, Unit: q.unit})
	if hook := q.AfterEnable; hook != nil {
		hook(q)
	}
	return nil
}

func (q *QuadTimer) ResetCounter() {
	q.mu.Lock()
	q.raw = 0
	q.mu.Unlock()
	q.rec.record(Call{Op: OpResetCounter, Unit: q.unit})
}

func (q *QuadTimer) StartEncoder() error {
	q.mu.Lock()
	q.started = true
	q.mu.Unlock()
	q.rec.record(Call{Op: OpStartEncoder, Unit: q.unit})
	return nil
}

func (q *QuadTimer) Counter() uint32 {
	if hook := q.BeforeRead; hook != nil {
		hook(q)
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.raw
}

// SetRaw loads the counter without raising an event.
func (q *QuadTimer) SetRaw(v uint32) {
	q.mu.Lock()
	if q.modulus != 0 {
		v %= q.modulus
	}
	q.raw = v
	q.mu.Unlock()
}

// Fire raises one update event in direction dir.
func (q *QuadTimer) Fire(dir core.CountDirection) {
	q.mu.Lock()
	h, irq := q.handler, q.irq
	if !irq || h == nil {
		q.pending = true
	}
	q.mu.Unlock()
	if irq && h != nil {
		h(dir)
	}
}

// Step moves the counter by delta counts, raising one event per boundary
// crossed. A stopped counter ignores its inputs.
func (q *QuadTimer) Step(delta int64) {
	q.mu.Lock()
	if !q.started || q.modulus == 0 {
		q.mu.Unlock()
		return
	}
	pos := int64(q.raw) + delta
	m := int64(q.modulus)
	wraps := pos / m
	if pos < 0 && pos%m != 0 {
		wraps--
	}
	q.raw = uint32(pos - wraps*m)
	q.mu.Unlock()

	dir := core.CountUp
	if wraps < 0 {
		dir = core.CountDown
		wraps = -wraps
	}
	for ; wraps > 0; wraps-- {
		q.Fire(dir)
	}
}

// Pending reports a latched update event.
func (q *QuadTimer) Pending() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.pending
}

// Started reports whether StartEncoder was called.
func (q *QuadTimer) Started() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.started
}

// Unit is the timer id this counter was created with.
func (q *QuadTimer) Unit() int {
	return q.unit
}
