// Package encoder accumulates quadrature counter wraps into an absolute
// position. The overflow counter of each slot is written only by the
// update handler and may be read from any context.
package encoder

import (
	"sync/atomic"

	"robodrive/config"
	"robodrive/core"
)

// readRetries bounds the lock-free attempts of Position before it falls back
// to masking interrupts.
const readRetries = 3

type slot struct {
	timer    core.QuadratureTimer
	overflow atomic.Int32
	ready    bool
}

// Encoder owns the overflow counters of every configured encoder. Indices
// are 1-based.
type Encoder struct {
	count   int
	modulus uint32
	timers  int
	slots   [config.MaxEncoders]slot
}

// New binds timers[i] to encoder i+1. Nothing is started until Init.
func New(cfg config.Config, timers []core.QuadratureTimer) *Encoder {
	e := &Encoder{
		count:   cfg.EncoderCount,
		modulus: cfg.EncoderModulus,
		timers:  len(timers),
	}
	for i := 0; i < len(timers) && i < config.MaxEncoders; i++ {
		e.slots[i].timer = timers[i]
	}
	return e
}

// Count is the number of configured encoders.
func (e *Encoder) Count() int {
	return e.count
}

// Modulus is the number of raw counts per counter wrap.
func (e *Encoder) Modulus() uint32 {
	return e.modulus
}

// Init starts every configured counter, highest index first.
func (e *Encoder) Init() error {
	for i := range e.slots {
		e.slots[i].ready = false
	}
	if e.count < 1 || e.count > config.MaxEncoders || e.timers < e.count || e.modulus == 0 {
		core.RecordEvent(core.EvtInitAbort, 0, uint32(e.count), uint32(e.timers))
		return core.ErrInvalidConfig
	}
	for i := e.count; i >= 1; i-- {
		s := &e.slots[i-1]
		if s.timer == nil {
			return core.ErrNoDriver
		}
		s.timer.ClearUpdateFlag()
		if err := s.timer.EnableUpdateInterrupt(e.handler(i)); err != nil {
			return err
		}
		// A wrap between enable and reset must not survive into the zeroed count.
		state := core.DisableInterrupts()
		s.timer.ResetCounter()
		s.overflow.Store(0)
		core.RestoreInterrupts(state)
		if err := s.timer.StartEncoder(); err != nil {
			return err
		}
		s.ready = true
		core.RecordEvent(core.EvtEncoderInit, uint8(i), e.modulus, 0)
	}
	core.DebugPrintln("[ENC] started " + core.KV("count", int64(e.count)))
	return nil
}

func (e *Encoder) handler(enc int) core.UpdateHandler {
	return func(dir core.CountDirection) {
		e.HandleUpdate(enc, dir)
	}
}

// HandleUpdate accounts one counter wrap. It runs in interrupt context.
func (e *Encoder) HandleUpdate(enc int, dir core.CountDirection) {
	if enc < 1 || enc > e.count || enc > config.MaxEncoders {
		return
	}
	s := &e.slots[enc-1]
	var ov int32
	switch dir {
	case core.CountUp:
		ov = s.overflow.Add(1)
	case core.CountDown:
		ov = s.overflow.Add(-1)
	default:
		return
	}
	core.RecordEvent(core.EvtWrap, uint8(enc), uint32(ov), uint32(uint8(dir)))
}

func (e *Encoder) slot(enc int) (*slot, error) {
	if enc < 1 || enc > e.count || enc > config.MaxEncoders {
		return nil, core.ErrIndexOutOfRange
	}
	s := &e.slots[enc-1]
	if !s.ready {
		return nil, core.ErrNotInitialized
	}
	return s, nil
}

// Raw returns the hardware counter, in [0, Modulus).
func (e *Encoder) Raw(enc int) (uint32, error) {
	s, err := e.slot(enc)
	if err != nil {
		return 0, err
	}
	return s.timer.Counter(), nil
}

// Overflows returns the net number of wraps seen since Init.
func (e *Encoder) Overflows(enc int) (int32, error) {
	s, err := e.slot(enc)
	if err != nil {
		return 0, err
	}
	return s.overflow.Load(), nil
}

// Position returns overflows*modulus + raw. The overflow counter is read on
// both sides of the raw read; a mismatch means a wrap landed in between and
// the pair is read again.
func (e *Encoder) Position(enc int) (int64, error) {
	s, err := e.slot(enc)
	if err != nil {
		return 0, err
	}
	for i := 0; i < readRetries; i++ {
		ov := s.overflow.Load()
		raw := s.timer.Counter()
		if s.overflow.Load() == ov {
			return e.compose(ov, raw), nil
		}
	}

	state := core.DisableInterrupts()
	ov := s.overflow.Load()
	raw := s.timer.Counter()
	core.RestoreInterrupts(state)
	return e.compose(ov, raw), nil
}

func (e *Encoder) compose(ov int32, raw uint32) int64 {
	return int64(ov)*int64(e.modulus) + int64(raw)
}
