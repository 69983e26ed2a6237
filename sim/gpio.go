package sim

import (
	"sync"

	"robodrive/core"
)

// PinMode is the last configuration applied to a simulated pin.
type PinMode uint8

const (
	PinUnconfigured PinMode = iota
	PinOutput
	PinInputPullUp
	PinInputPullDown
)

// GPIO is a simulated digital I/O port. Outputs keep the last driven level;
// inputs read whatever SetInput placed on them, or their pull level.
type GPIO struct {
	rec    *Recorder
	mu     sync.Mutex
	levels map[core.GPIOPin]bool
	modes  map[core.GPIOPin]PinMode
}

func NewGPIO(rec *Recorder) *GPIO {
	return &GPIO{
		rec:    rec,
		levels: make(map[core.GPIOPin]bool),
		modes:  make(map[core.GPIOPin]PinMode),
	}
}

func (g *GPIO) ConfigureOutput(pin core.GPIOPin) error {
	g.configure(pin, PinOutput, OpConfigureOutput)
	return nil
}

func (g *GPIO) ConfigureInputPullUp(pin core.GPIOPin) error {
	g.configure(pin, PinInputPullUp, OpConfigureInput)
	return nil
}

func (g *GPIO) ConfigureInputPullDown(pin core.GPIOPin) error {
	g.configure(pin, PinInputPullDown, OpConfigureInput)
	return nil
}

func (g *GPIO) configure(pin core.GPIOPin, mode PinMode, op Op) {
	g.mu.Lock()
	if _, driven := g.levels[pin]; !driven && mode != PinOutput {
		g.levels[pin] = mode == PinInputPullUp
	}
	g.modes[pin] = mode
	g.mu.Unlock()
	g.rec.record(Call{Op: op, Pin: pin, Level: mode == PinInputPullUp})
}

func (g *GPIO) SetPin(pin core.GPIOPin, value bool) error {
	g.mu.Lock()
	g.levels[pin] = value
	g.mu.Unlock()
	g.rec.record(Call{Op: OpSetPin, Pin: pin, Level: value})
	return nil
}

func (g *GPIO) GetPin(pin core.GPIOPin) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.levels[pin], nil
}

func (g *GPIO) ReadPin(pin core.GPIOPin) bool {
	v, _ := g.GetPin(pin)
	return v
}

// SetInput drives an external level onto pin without recording a call, the
// way a peripheral chip would pull its status line.
func (g *GPIO) SetInput(pin core.GPIOPin, level bool) {
	g.mu.Lock()
	g.levels[pin] = level
	g.mu.Unlock()
}

// Level returns the current level of pin.
func (g *GPIO) Level(pin core.GPIOPin) bool {
	return g.ReadPin(pin)
}

// Mode returns the last configuration applied to pin.
func (g *GPIO) Mode(pin core.GPIOPin) PinMode {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.modes[pin]
}
