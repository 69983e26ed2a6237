package sim

import (
	"sync"

	"robodrive/core"
)

// PWM is a simulated PWM timer holding one compare register per channel.
type PWM struct {
	rec     *Recorder
	mu      sync.Mutex
	duty    map[core.PWMChannel]core.PWMValue
	started map[core.PWMChannel]bool
}

func NewPWM(rec *Recorder) *PWM {
	return &PWM{
		rec:     rec,
		duty:    make(map[core.PWMChannel]core.PWMValue),
		started: make(map[core.PWMChannel]bool),
	}
}

func (p *PWM) StartChannel(ch core.PWMChannel) error {
	p.mu.Lock()
	p.started[ch] = true
	p.mu.Unlock()
	p.rec.record(Call{Op: OpStartChannel, Channel: ch})
	return nil
}

func (p *PWM) SetDuty(ch core.PWMChannel, value core.PWMValue) error {
	p.mu.Lock()
	p.duty[ch] = value
	p.mu.Unlock()
	p.rec.record(Call{Op: OpSetDuty, Channel: ch, Value: uint32(value)})
	return nil
}

// Duty returns the compare register of ch.
func (p *PWM) Duty(ch core.PWMChannel) core.PWMValue {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.duty[ch]
}

// Started reports whether StartChannel was called for ch.
func (p *PWM) Started(ch core.PWMChannel) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.started[ch]
}
