//go:build rp2040

package main

import (
	"errors"
	"machine"

	"robodrive/core"
)

var errNoPWMPin = errors.New("pwm channel has no pin")

// pwmPeripheral abstracts over TinyGo's unexported *pwmGroup type
type pwmPeripheral interface {
	Configure(config machine.PWMConfig) error
	Channel(pin machine.Pin) (uint8, error)
	Top() uint32
	Set(channel uint8, value uint32)
}

type pwmOutput struct {
	slice   pwmPeripheral
	channel uint8
}

// RP2040PWMDriver implements core.PWMDriver on the RP2040's 8 PWM slices.
// Duty 0..max maps linearly onto 0..Top() of the slice.
type RP2040PWMDriver struct {
	pins      map[core.PWMChannel]machine.Pin
	max       core.PWMValue
	periodNs  uint64
	outputs   map[core.PWMChannel]pwmOutput
	slicesCfg map[uint8]bool
}

func NewRP2040PWMDriver(pins map[core.PWMChannel]machine.Pin, max core.PWMValue, freqHz uint32) *RP2040PWMDriver {
	return &RP2040PWMDriver{
		pins:      pins,
		max:       max,
		periodNs:  1000000000 / uint64(freqHz),
		outputs:   make(map[core.PWMChannel]pwmOutput),
		slicesCfg: make(map[uint8]bool),
	}
}

// StartChannel configures the slice behind ch (once per slice) and starts
// its output at zero duty.
func (d *RP2040PWMDriver) StartChannel(ch core.PWMChannel) error {
	pin, ok := d.pins[ch]
	if !ok {
		return errNoPWMPin
	}
	// GPIO N drives slice (N>>1)&7, channel A for even pins, B for odd.
	sliceNum := uint8((uint32(pin) >> 1) & 0x7)
	slice := getPWMPeripheral(sliceNum)
	if !d.slicesCfg[sliceNum] {
		if err := slice.Configure(machine.PWMConfig{Period: d.periodNs}); err != nil {
			return err
		}
		d.slicesCfg[sliceNum] = true
	}
	channel, err := slice.Channel(pin)
	if err != nil {
		return err
	}
	slice.Set(channel, 0)
	d.outputs[ch] = pwmOutput{slice: slice, channel: channel}
	return nil
}

func (d *RP2040PWMDriver) SetDuty(ch core.PWMChannel, value core.PWMValue) error {
	out, ok := d.outputs[ch]
	if !ok {
		if err := d.StartChannel(ch); err != nil {
			return err
		}
		out = d.outputs[ch]
	}
	if value > d.max {
		value = d.max
	}
	top := out.slice.Top()
	out.slice.Set(out.channel, uint32(uint64(value)*uint64(top)/uint64(d.max)))
	return nil
}

func getPWMPeripheral(sliceNum uint8) pwmPeripheral {
	switch sliceNum {
	case 0:
		return machine.PWM0
	case 1:
		return machine.PWM1
	case 2:
		return machine.PWM2
	case 3:
		return machine.PWM3
	case 4:
		return machine.PWM4
	case 5:
		return machine.PWM5
	case 6:
		return machine.PWM6
	default:
		return machine.PWM7
	}
}
