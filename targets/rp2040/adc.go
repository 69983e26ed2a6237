//go:build rp2040

package main

import (
	"device/rp"
	"machine"

	"robodrive/core"
)

// RpAdcDriver implements core.ADCDriver as a round-robin scan over the
// configured inputs, driving the converter registers directly so a
// conversion can be started and polled separately.
type RpAdcDriver struct {
	inputs []uint32 // AINSEL per scan slot
	next   int
}

// NewRPAdcDriver configures pins (ADC0..ADC3) in scan order.
func NewRPAdcDriver(pins []machine.Pin) *RpAdcDriver {
	machine.InitADC()
	d := &RpAdcDriver{}
	for _, p := range pins {
		adc := machine.ADC{Pin: p}
		adc.Configure(machine.ADCConfig{})
		d.inputs = append(d.inputs, uint32(p-machine.ADC0))
	}
	return d
}

func (d *RpAdcDriver) StartConversion() error {
	if len(d.inputs) == 0 {
		return core.ErrInvalidConfig
	}
	ch := d.inputs[d.next]
	d.next = (d.next + 1) % len(d.inputs)

	rp.ADC.CS.ReplaceBits(ch<<rp.ADC_CS_AINSEL_Pos, rp.ADC_CS_AINSEL_Msk, 0)
	rp.ADC.CS.SetBits(rp.ADC_CS_START_ONCE)
	return nil
}

// PollForConversion spins on READY against the hardware microsecond timer.
func (d *RpAdcDriver) PollForConversion(timeoutMs uint32) bool {
	start := GetHardwareTime()
	limit := core.TimerFromMS(timeoutMs)
	for !rp.ADC.CS.HasBits(rp.ADC_CS_READY) {
		if GetHardwareTime()-start >= limit {
			return false
		}
	}
	return true
}

func (d *RpAdcDriver) Value() core.ADCValue {
	return core.ADCValue(rp.ADC.RESULT.Get() & 0xfff)
}

func (d *RpAdcDriver) Conversions() int {
	return len(d.inputs)
}
