//go:build rp2040

package main

import (
	"machine"

	"robodrive/config"
	"robodrive/core"
)

// The RP2040 carrier has 30 GPIOs: four motors take 16 control lines and
// four PWM outputs, which leaves room for three encoders and the four ADC
// inputs.
const (
	boardEncoders = 3

	pwmFrequencyHz = 20000
)

// pwmPins maps the logical PWM channel (1-based) to its output pin.
var pwmPins = map[core.PWMChannel]machine.Pin{
	1: machine.GPIO16,
	2: machine.GPIO17,
	3: machine.GPIO18,
	4: machine.GPIO19,
}

// adcPins lists the current-sense inputs in scan order.
var adcPins = []machine.Pin{machine.ADC0, machine.ADC1, machine.ADC2, machine.ADC3}

// encoderPins is the A pin of each encoder; B is the next GPIO.
var encoderPins = []machine.Pin{machine.GPIO20, machine.GPIO22, machine.GPIO24}

func boardConfig() config.Config {
	cfg := config.Default()
	cfg.EncoderCount = boardEncoders
	cfg.Current.Mode = config.CurrentPerMotor

	cfg.Motors = cfg.Motors[:0]
	for i := 0; i < config.MotorCount; i++ {
		base := core.GPIOPin(4 * i)
		cfg.Motors = append(cfg.Motors, config.MotorWiring{
			Sleep:   base,
			Off:     base + 1,
			Forward: base + 2,
			Fault:   base + 3,
			Channel: core.PWMChannel(i + 1),
		})
	}

	cfg.Encoders = cfg.Encoders[:0]
	for _, a := range encoderPins {
		cfg.Encoders = append(cfg.Encoders, config.EncoderWiring{
			A: core.GPIOPin(a),
			B: core.GPIOPin(a + 1),
		})
	}
	return cfg
}
