//go:build rp2040

package main

import (
	"machine"
	"time"

	"robodrive/config"
	"robodrive/core"
	"robodrive/current"
	"robodrive/encoder"
	"robodrive/motor"
)

const (
	wrapPollMs   = 1
	telemetryMs  = 100
	debugEnabled = false
)

var (
	motors   *motor.Driver
	encs     *encoder.Encoder
	sensor   *current.Sensor
	timers   []*encoder.WrapTimer
	currents [config.MaxMotors]uint32

	loopPanics uint32
)

func main() {
	// Disable watchdog on boot to clear any previous state
	err := machine.Watchdog.Configure(machine.WatchdogConfig{TimeoutMillis: 0})
	if err != nil {
		return
	}

	machine.Serial.Configure(machine.UARTConfig{})
	core.SetDebugWriter(func(msg string) {
		machine.Serial.Write([]byte(msg))
		machine.Serial.Write([]byte("\r\n"))
	})
	core.SetDebugEnabled(debugEnabled)
	core.InitAsyncDebug()

	cfg := boardConfig()

	core.SetGPIODriver(NewRPGPIODriver())
	core.SetPWMDriver(NewRP2040PWMDriver(pwmPins, cfg.DutyLimit, pwmFrequencyHz))
	core.SetADCDriver(NewRPAdcDriver(adcPins[:cfg.CurrentChannels()]))

	motors = motor.New(cfg, core.RegisteredHAL())
	if err := motors.Init(); err != nil {
		fail("motor init: " + err.Error())
	}

	sources, err := newCountSources()
	if err != nil {
		fail("quadrature " + quadratureBackend + ": " + err.Error())
	}
	qt := make([]core.QuadratureTimer, len(sources))
	for i, src := range sources {
		w := encoder.NewWrapTimer(src, cfg.EncoderModulus)
		timers = append(timers, w)
		qt[i] = w
	}
	encs = encoder.New(cfg, qt)
	if err := encs.Init(); err != nil {
		fail("encoder init: " + err.Error())
	}

	sensor = current.New(cfg, core.MustADC())

	UpdateSystemTime()
	now := core.GetTime()
	core.Every(now, core.TimerFromMS(wrapPollMs), pollEncoders)
	core.Every(now, core.TimerFromMS(telemetryMs), telemetry)

	core.DebugAsync("[MAIN] up, quadrature=" + quadratureBackend)

	for {
		// Recover from panics in the main loop to keep the bridges parked
		func() {
			defer func() {
				if r := recover(); r != nil {
					loopPanics++
					motors.StopAll()
					core.DumpEventRing()
				}
			}()

			UpdateSystemTime()
			core.ProcessTimers()
		}()

		// Yield to other goroutines
		time.Sleep(10 * time.Microsecond)
	}
}

func pollEncoders() {
	for _, w := range timers {
		w.Poll()
	}
}

func telemetry() {
	if _, err := sensor.Read(currents[:sensor.Channels()]); err != nil {
		core.DebugAsync("[CUR] " + err.Error())
	}
	if !core.IsDebugEnabled() {
		return
	}
	for i := 1; i <= encs.Count(); i++ {
		pos, _ := encs.Position(i)
		core.DebugAsync("[ENC] " + core.KV("enc", int64(i)) + " " + core.KV("pos", pos))
	}
}

// fail coasts every motor, dumps the trace and halts.
func fail(msg string) {
	if motors != nil {
		motors.OffAll()
	}
	core.SetDebugEnabled(true)
	core.DebugPrintln("[MAIN] " + msg)
	core.DumpEventRing()
	for {
		time.Sleep(time.Second)
	}
}
