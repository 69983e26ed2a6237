package core

// PWMChannel is a logical output-compare channel of the motor PWM timer.
// On the original board these are TIM1 CH1..CH4; targets map them to pins.
type PWMChannel uint8

// PWMValue is a duty value in driver units, 0 to the configured duty limit.
type PWMValue uint32

// PWMDriver is the PWM timer capability. A duty write has the semantics of a
// capture/compare register store: it takes effect on the next period and
// never blocks.
type PWMDriver interface {
	// StartChannel enables waveform generation on ch.
	StartChannel(ch PWMChannel) error

	// SetDuty stores value into the compare register of ch.
	SetDuty(ch PWMChannel, value PWMValue) error
}

var pwmDriver PWMDriver

// SetPWMDriver registers the target's PWM implementation.
func SetPWMDriver(d PWMDriver) {
	pwmDriver = d
}

// MustPWM returns the registered driver or panics if none was registered.
func MustPWM() PWMDriver {
	if pwmDriver == nil {
		panic("PWM driver not configured")
	}
	return pwmDriver
}
