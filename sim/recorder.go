// Package sim provides recording stand-ins for every hardware capability
// the driver layer consumes. Unit tests and the host bench both build on it.
package sim

import (
	"sync"

	"robodrive/core"
)

// Op names a recorded capability call.
type Op string

const (
	OpConfigureOutput Op = "configure_output"
	OpConfigureInput  Op = "configure_input"
	OpSetPin          Op = "set_pin"
	OpStartChannel    Op = "start_channel"
	OpSetDuty         Op = "set_duty"
	OpDelayMs         Op = "delay_ms"
	OpDelayUs         Op = "delay_us"
	OpStartADC        Op = "start_adc"
	OpClearFlag       Op = "clear_update_flag"
	OpEnableIRQ       Op = "enable_update_irq"
	OpResetCounter    Op = "reset_counter"
	OpStartEncoder    Op = "start_encoder"
)

// Call is one recorded capability call.
type Call struct {
	Op      Op
	Pin     core.GPIOPin
	Channel core.PWMChannel
	Value   uint32
	Level   bool
	Unit    int // encoder timer id for quadrature calls
}

// Recorder keeps calls in the order they were made across all fakes that
// share it, so tests can assert sequencing between pins, PWM and delays.
type Recorder struct {
	mu    sync.Mutex
	calls []Call
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) record(c Call) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.calls = append(r.calls, c)
	r.mu.Unlock()
}

// Calls returns a copy of everything recorded so far.
func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Call, len(r.calls))
	copy(out, r.calls)
	return out
}

// Filter returns the recorded calls with the given op.
func (r *Recorder) Filter(op Op) []Call {
	var out []Call
	for _, c := range r.Calls() {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

// Count is len(Filter(op)).
func (r *Recorder) Count(op Op) int {
	return len(r.Filter(op))
}

// Len is the total number of recorded calls.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

// Reset forgets all recorded calls.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.calls = nil
	r.mu.Unlock()
}
