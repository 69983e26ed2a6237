package core

// HAL bundles the capabilities one driver component consumes. ADC is
// optional and may be nil when current sensing is not built in.
type HAL struct {
	GPIO  GPIODriver
	PWM   PWMDriver
	ADC   ADCDriver
	Delay Delay
}

// RegisteredHAL collects whatever the target registered through the
// SetXDriver functions.
func RegisteredHAL() HAL {
	return HAL{
		GPIO:  gpioDriver,
		PWM:   pwmDriver,
		ADC:   adcDriver,
		Delay: delayDriver,
	}
}

// CheckMotor reports ErrNoDriver when a capability the motor driver needs is
// missing.
func (h HAL) CheckMotor() error {
	if h.GPIO == nil || h.PWM == nil || h.Delay == nil {
		return ErrNoDriver
	}
	return nil
}
