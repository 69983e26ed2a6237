//go:build rp2040 && softquad

package main

import (
	"tinygo.org/x/drivers/encoders"

	"robodrive/encoder"
)

const quadratureBackend = "irq"

// irqCounter decodes A/B edges in GPIO interrupts. It frees the PIO blocks
// at the cost of one interrupt per edge.
type irqCounter struct {
	dev *encoders.QuadratureDevice
}

func (c *irqCounter) Count() int32 {
	return int32(c.dev.Position())
}

func (c *irqCounter) Reset() {
	c.dev.SetPosition(0)
}

func newCountSources() ([]encoder.CountSource, error) {
	var out []encoder.CountSource
	for _, a := range encoderPins {
		dev := encoders.NewQuadratureViaInterrupt(a, a+1)
		// Precision 1 counts every edge, matching a timer in x4 encoder mode.
		if err := dev.Configure(encoders.QuadratureConfig{Precision: 1}); err != nil {
			return nil, err
		}
		out = append(out, &irqCounter{dev: dev})
	}
	return out, nil
}
