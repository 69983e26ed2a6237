package core

// ADCValue is a raw conversion result. The motor board uses a 12-bit
// converter so values are 0..4095.
type ADCValue uint16

// ADCDriver is the converter capability used for current sensing. It models a
// scan sequence: every StartConversion converts the next configured channel,
// wrapping after Conversions() channels.
type ADCDriver interface {
	// StartConversion triggers one conversion.
	StartConversion() error

	// PollForConversion busy-waits until the conversion completes or
	// timeoutMs elapses. It reports false on timeout.
	PollForConversion(timeoutMs uint32) bool

	// Value returns the last conversion result.
	Value() ADCValue

	// Conversions is the number of channels in the scan sequence.
	Conversions() int
}

var adcDriver ADCDriver

// SetADCDriver registers the target's ADC implementation.
func SetADCDriver(d ADCDriver) {
	adcDriver = d
}

// MustADC returns the registered driver or panics if none was registered.
func MustADC() ADCDriver {
	if adcDriver == nil {
		panic("ADC driver not configured")
	}
	return adcDriver
}

// ADCRegistered reports whether a converter was registered. Current sensing
// is optional so callers check before MustADC.
func ADCRegistered() bool {
	return adcDriver != nil
}
