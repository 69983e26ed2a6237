//go:build rp2040

package pio

import (
	"errors"
	"machine"

	rp2pio "github.com/tinygo-org/pio/rp2-pio"
)

var errStateMachineBusy = errors.New("pio state machine already claimed")

// loaded records which PIO blocks already hold the quadrature program.
var loaded [2]bool

// QuadratureCounter counts A/B edges of one encoder on a PIO state machine.
// It satisfies encoder.CountSource.
type QuadratureCounter struct {
	pio  *rp2pio.PIO
	sm   rp2pio.StateMachine
	pinA machine.Pin
	num  uint8
	last int32
}

// NewQuadratureCounter binds to state machine smNum of PIO block pioNum.
func NewQuadratureCounter(pioNum, smNum uint8) *QuadratureCounter {
	pioHW := rp2pio.PIO0
	if pioNum != 0 {
		pioHW = rp2pio.PIO1
		pioNum = 1
	}
	return &QuadratureCounter{
		pio: pioHW,
		sm:  pioHW.StateMachine(smNum),
		num: pioNum,
	}
}

// Init starts counting. B must be the pin after A.
func (q *QuadratureCounter) Init(pinA machine.Pin) error {
	if !q.sm.TryClaim() {
		return errStateMachineBusy
	}
	q.pinA = pinA

	if !loaded[q.num] {
		if _, err := q.pio.AddProgram(buildQuadratureProgram(), quadratureOrigin); err != nil {
			return err
		}
		loaded[q.num] = true
	}

	// The state machine reads the pads directly; only the pulls matter.
	pinA.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	(pinA + 1).Configure(machine.PinConfig{Mode: machine.PinInputPullup})

	cfg := rp2pio.DefaultStateMachineConfig()
	cfg.SetInPins(pinA)
	// IN shifts left so the new AB lands in the low bits next to the old one.
	cfg.SetInShift(false, false, 32)
	cfg.SetOutShift(true, false, 32)
	cfg.SetWrap(addrUpdate, addrIncCont)
	cfg.SetClkDivIntFrac(1, 0)

	q.sm.Init(quadratureOrigin, cfg)
	q.sm.SetPindirsConsecutive(pinA, 2, false)
	q.sm.SetEnabled(true)
	return nil
}

// Count returns the signed edge count. The FIFO is refilled on every program
// loop, so draining level+1 entries yields a fresh value.
func (q *QuadratureCounter) Count() int32 {
	n := q.sm.RxFIFOLevel() + 1
	for ; n > 0; n-- {
		for q.sm.IsRxFIFOEmpty() {
		}
		q.last = int32(q.sm.RxGet())
	}
	return q.last
}

// Reset zeroes the count.
func (q *QuadratureCounter) Reset() {
	q.sm.SetEnabled(false)
	q.sm.SetY(0)
	q.sm.ClearFIFOs()
	q.sm.Jmp(quadratureOrigin, rp2pio.JmpAlways)
	q.sm.SetEnabled(true)
	q.last = 0
}
