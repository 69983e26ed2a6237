//go:build tinygo

package core

import "runtime/interrupt"

// State is the saved interrupt mask.
type State = interrupt.State

// DisableInterrupts masks interrupts and returns the previous mask.
func DisableInterrupts() State {
	return interrupt.Disable()
}

// RestoreInterrupts restores a mask returned by DisableInterrupts.
func RestoreInterrupts(state State) {
	interrupt.Restore(state)
}
