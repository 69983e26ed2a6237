//go:build !tinygo

package core

// State is the saved interrupt mask. Host builds have no interrupts.
type State uintptr

// DisableInterrupts is a no-op on regular Go.
func DisableInterrupts() State {
	return 0
}

// RestoreInterrupts is a no-op on regular Go.
func RestoreInterrupts(state State) {}
