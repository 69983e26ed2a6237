//go:build rp2040 && !softquad

package main

import (
	"robodrive/encoder"
	"robodrive/targets/pio"
)

const quadratureBackend = "pio"

// newCountSources runs one PIO0 state machine per encoder.
func newCountSources() ([]encoder.CountSource, error) {
	var out []encoder.CountSource
	for i, a := range encoderPins {
		q := pio.NewQuadratureCounter(0, uint8(i))
		if err := q.Init(a); err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, nil
}
