package core

// GPIOPin is a board-level GPIO number as used in the wiring tables.
type GPIOPin uint32

// GPIODriver is the digital I/O capability consumed by the motor driver.
// Targets provide the implementation; host builds use the sim package.
type GPIODriver interface {
	// ConfigureOutput switches pin to push-pull output.
	ConfigureOutput(pin GPIOPin) error

	// ConfigureInputPullUp switches pin to input with the pull-up enabled.
	// Used for open-drain status lines such as nFAULT.
	ConfigureInputPullUp(pin GPIOPin) error

	// ConfigureInputPullDown switches pin to input with the pull-down enabled.
	ConfigureInputPullDown(pin GPIOPin) error

	// SetPin drives an output high (true) or low (false).
	SetPin(pin GPIOPin, value bool) error

	// GetPin samples the current level of pin.
	GetPin(pin GPIOPin) (bool, error)

	// ReadPin is GetPin without the error, for status polling.
	ReadPin(pin GPIOPin) bool
}

var gpioDriver GPIODriver

// SetGPIODriver registers the target's GPIO implementation.
func SetGPIODriver(d GPIODriver) {
	gpioDriver = d
}

// MustGPIO returns the registered driver or panics if none was registered.
func MustGPIO() GPIODriver {
	if gpioDriver == nil {
		panic("GPIO driver not configured")
	}
	return gpioDriver
}
