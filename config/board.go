package config

import "robodrive/core"

// Compile-time board parameters. Targets may override the wiring tables but
// the limits below are fixed at build time.
const (
	MaxMotors   = 4
	MaxEncoders = 4
	// MaxCurrentChannels is the width of the conversion-timeout mask.
	MaxCurrentChannels = 32

	MotorCount   = 4
	EncoderCount = 4

	// DutyLimit is the PWM timer period; duty 0..DutyLimit maps to 0..100 %.
	DutyLimit core.PWMValue = 1000

	// EncoderModulus is the number of counts per counter wrap (ARR+1).
	EncoderModulus uint32 = 65536

	// Current sensing. Milliamps = code * ADCRefMilliVolts * SenseGain /
	// ADCResolution / 1000.
	CurrentDetection    = CurrentFull
	FullChannelCount    = 4
	ADCRefMilliVolts    = 3300
	SenseGain           = 3075
	ADCResolution       = 4096
	ConversionTimeoutMs = 2

	// DRV8243 wake handshake.
	WakeSettleMs  = 1
	WakePulseUs   = 31
	StartSettleMs = 1
)

// PortPin encodes an STM32-style port letter and pin number into a GPIOPin
// (port A = 0, 16 pins per port).
func PortPin(port byte, pin uint8) core.GPIOPin {
	return core.GPIOPin(uint32(port-'A')*16 + uint32(pin))
}

// referenceMotors is the wiring of the reference controller board. The PWM
// channel order is the board's TIM1 routing: M1=CH4, M2=CH1, M3=CH3, M4=CH2.
var referenceMotors = []MotorWiring{
	{Sleep: PortPin('E', 0), Off: PortPin('E', 1), Forward: PortPin('E', 2), Fault: PortPin('D', 14), Channel: 4},
	{Sleep: PortPin('E', 3), Off: PortPin('E', 4), Forward: PortPin('E', 5), Fault: PortPin('D', 10), Channel: 1},
	{Sleep: PortPin('E', 6), Off: PortPin('E', 7), Forward: PortPin('E', 8), Fault: PortPin('C', 8), Channel: 3},
	{Sleep: PortPin('E', 10), Off: PortPin('E', 12), Forward: PortPin('E', 15), Fault: PortPin('D', 8), Channel: 2},
}

// referenceEncoders maps encoder index to counter timer: E1=TIM2, E2=TIM4,
// E3=TIM3, E4=TIM5.
var referenceEncoders = []EncoderWiring{
	{Timer: 2},
	{Timer: 4},
	{Timer: 3},
	{Timer: 5},
}

// Default returns the compile-time configuration.
func Default() Config {
	cfg := Config{
		MotorCount:     MotorCount,
		EncoderCount:   EncoderCount,
		DutyLimit:      DutyLimit,
		EncoderModulus: EncoderModulus,
		Current: CurrentConfig{
			Mode:             CurrentDetection,
			FullChannelCount: FullChannelCount,
			RefMilliVolts:    ADCRefMilliVolts,
			SenseGain:        SenseGain,
			Resolution:       ADCResolution,
			TimeoutMs:        ConversionTimeoutMs,
		},
		Timing: Timing{
			WakeSettleMs:  WakeSettleMs,
			WakePulseUs:   WakePulseUs,
			StartSettleMs: StartSettleMs,
		},
	}
	cfg.Motors = append(cfg.Motors, referenceMotors...)
	cfg.Encoders = append(cfg.Encoders, referenceEncoders...)
	return cfg
}
