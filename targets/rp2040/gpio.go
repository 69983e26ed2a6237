//go:build rp2040

package main

import (
	"machine"

	"robodrive/core"
)

// RPGPIODriver implements core.GPIODriver on machine.Pin.
type RPGPIODriver struct {
	// Track configured pins to prevent conflicts
	configuredPins map[core.GPIOPin]machine.Pin
}

func NewRPGPIODriver() *RPGPIODriver {
	return &RPGPIODriver{
		configuredPins: make(map[core.GPIOPin]machine.Pin),
	}
}

func (d *RPGPIODriver) configure(pin core.GPIOPin, mode machine.PinMode) error {
	if _, exists := d.configuredPins[pin]; exists {
		return nil
	}
	if pin > core.GPIOPin(machine.GPIO29) {
		return core.ErrInvalidConfig
	}
	mp := machine.Pin(pin)
	mp.Configure(machine.PinConfig{Mode: mode})
	d.configuredPins[pin] = mp
	return nil
}

func (d *RPGPIODriver) ConfigureOutput(pin core.GPIOPin) error {
	return d.configure(pin, machine.PinOutput)
}

func (d *RPGPIODriver) ConfigureInputPullUp(pin core.GPIOPin) error {
	return d.configure(pin, machine.PinInputPullup)
}

func (d *RPGPIODriver) ConfigureInputPullDown(pin core.GPIOPin) error {
	return d.configure(pin, machine.PinInputPulldown)
}

// SetPin configures the pin as an output on first use.
func (d *RPGPIODriver) SetPin(pin core.GPIOPin, value bool) error {
	mp, exists := d.configuredPins[pin]
	if !exists {
		if err := d.ConfigureOutput(pin); err != nil {
			return err
		}
		mp = d.configuredPins[pin]
	}
	mp.Set(value)
	return nil
}

// GetPin reads false for pins that were never configured.
func (d *RPGPIODriver) GetPin(pin core.GPIOPin) (bool, error) {
	mp, exists := d.configuredPins[pin]
	if !exists {
		return false, nil
	}
	return mp.Get(), nil
}

func (d *RPGPIODriver) ReadPin(pin core.GPIOPin) bool {
	value, _ := d.GetPin(pin)
	return value
}
