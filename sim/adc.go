package sim

import (
	"sync"

	"robodrive/core"
)

// ADC is a simulated scan-sequence converter. Channels are numbered from 1
// in the order StartConversion visits them.
type ADC struct {
	rec   *Recorder
	clock *Clock

	mu       sync.Mutex
	samples  []core.ADCValue
	timeouts []bool
	next     int
	current  int
	last     core.ADCValue
}

// NewADC returns a converter with the given scan length. clock may be nil;
// when set, a timed-out poll advances it by the full timeout.
func NewADC(rec *Recorder, clock *Clock, conversions int) *ADC {
	return &ADC{
		rec:      rec,
		clock:    clock,
		samples:  make([]core.ADCValue, conversions),
		timeouts: make([]bool, conversions),
	}
}

// SetSample sets the code channel ch converts to.
func (a *ADC) SetSample(ch int, code core.ADCValue) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if ch >= 1 && ch <= len(a.samples) {
		a.samples[ch-1] = code
	}
}

// SetTimeout makes every conversion of channel ch time out.
func (a *ADC) SetTimeout(ch int, timeout bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if ch >= 1 && ch <= len(a.timeouts) {
		a.timeouts[ch-1] = timeout
	}
}

func (a *ADC) StartConversion() error {
	a.mu.Lock()
	if len(a.samples) == 0 {
		a.mu.Unlock()
		return core.ErrInvalidConfig
	}
	a.current = a.next
	a.next = (a.next + 1) % len(a.samples)
	ch := a.current + 1
	a.mu.Unlock()
	a.rec.record(Call{Op: OpStartADC, Value: uint32(ch)})
	return nil
}

func (a *ADC) PollForConversion(timeoutMs uint32) bool {
	a.mu.Lock()
	if len(a.samples) == 0 {
		a.mu.Unlock()
		return false
	}
	timedOut := a.timeouts[a.current]
	if !timedOut {
		a.last = a.samples[a.current]
	}
	a.mu.Unlock()
	if timedOut {
		if a.clock != nil {
			a.clock.Advance(uint64(timeoutMs) * 1000)
		}
		return false
	}
	return true
}

func (a *ADC) Value() core.ADCValue {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.last
}

func (a *ADC) Conversions() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.samples)
}
