package sim

import (
	"robodrive/config"
	"robodrive/core"
)

// Board is a complete simulated controller board: one recorder shared by
// every peripheral so call order is observable across them.
type Board struct {
	Rec    *Recorder
	Clock  *Clock
	GPIO   *GPIO
	PWM    *PWM
	ADC    *ADC
	Timers []*QuadTimer
}

// NewBoard builds peripherals sized for cfg. The ADC scan length follows
// the configured current mode, so a per-motor board gets one conversion per
// motor. Status inputs idle high, as a pulled-up nFAULT line would.
func NewBoard(cfg config.Config) *Board {
	rec := NewRecorder()
	clock := NewClock(rec)
	b := &Board{
		Rec:   rec,
		Clock: clock,
		GPIO:  NewGPIO(rec),
		PWM:   NewPWM(rec),
		ADC:   NewADC(rec, clock, cfg.CurrentChannels()),
	}
	for i := 0; i < len(cfg.Encoders); i++ {
		b.Timers = append(b.Timers, NewQuadTimer(rec, int(cfg.Encoders[i].Timer), cfg.EncoderModulus))
	}
	for _, m := range cfg.Motors {
		b.GPIO.SetInput(m.Fault, true)
	}
	return b
}

// HAL returns the capability bundle for the motor driver and current sensor.
func (b *Board) HAL() core.HAL {
	return core.HAL{GPIO: b.GPIO, PWM: b.PWM, ADC: b.ADC, Delay: b.Clock}
}

// QuadratureTimers returns the counters as the capability slice the encoder
// consumes.
func (b *Board) QuadratureTimers() []core.QuadratureTimer {
	out := make([]core.QuadratureTimer, len(b.Timers))
	for i, t := range b.Timers {
		out[i] = t
	}
	return out
}
