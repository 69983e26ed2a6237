// Package motor sequences DRV8243-class H-bridge drivers: the nSLEEP wake
// handshake, PWM duty, brake and coast.
package motor

import (
	"robodrive/config"
	"robodrive/core"
	"robodrive/x/mathx"
)

type slot struct {
	wiring  config.MotorWiring
	state   State
	duty    core.PWMValue
	forward bool // IN1 driven high
	enabled bool // OFF driven low
}

// Driver owns the logical state of every motor slot. Indices are 1-based.
// It is not safe for concurrent use; the firmware calls it from the main
// loop only.
type Driver struct {
	cfg    config.Config
	hal    core.HAL
	slots  [config.MaxMotors]slot
	active int
}

// New binds a configuration to the capabilities it drives. Nothing touches
// hardware until Init.
func New(cfg config.Config, hal core.HAL) *Driver {
	d := &Driver{cfg: cfg, hal: hal}
	n := len(cfg.Motors)
	if n > config.MaxMotors {
		n = config.MaxMotors
	}
	for i := 0; i < n; i++ {
		d.slots[i].wiring = cfg.Motors[i]
	}
	return d
}

// Count is the number of motors the driver was configured with.
func (d *Driver) Count() int {
	return d.cfg.MotorCount
}

// Init wakes every configured motor in ascending order, leaving each one
// Stopped at half duty. A bad configuration is rejected before any pin or
// timer is touched.
func (d *Driver) Init() error {
	d.active = 0
	if err := d.hal.CheckMotor(); err != nil {
		return err
	}
	if !d.cfg.ValidMotorCount() {
		core.RecordEvent(core.EvtInitAbort, 0, uint32(d.cfg.MotorCount), 0)
		core.DebugPrintln("[MOTOR] init rejected " + core.KV("count", int64(d.cfg.MotorCount)))
		return core.ErrInvalidConfig
	}
	if d.cfg.Current.Mode == config.CurrentPerMotor {
		if d.hal.ADC == nil || d.hal.ADC.Conversions() != d.cfg.MotorCount {
			conv := 0
			if d.hal.ADC != nil {
				conv = d.hal.ADC.Conversions()
			}
			core.RecordEvent(core.EvtInitAbort, 0, uint32(d.cfg.MotorCount), uint32(conv))
			core.DebugPrintln("[MOTOR] init rejected " + core.KV("adc_conversions", int64(conv)))
			return core.ErrInvalidConfig
		}
	}

	for i := 1; i <= d.cfg.MotorCount; i++ {
		if err := d.wake(i); err != nil {
			return err
		}
		d.active = i
	}
	return nil
}

// wake runs the full sequence for one slot.
func (d *Driver) wake(motor int) error {
	s := &d.slots[motor-1]
	w := s.wiring
	gpio, t := d.hal.GPIO, d.cfg.Timing

	for _, pin := range []core.GPIOPin{w.Sleep, w.Off, w.Forward} {
		if err := gpio.ConfigureOutput(pin); err != nil {
			return err
		}
	}
	if err := gpio.ConfigureInputPullUp(w.Fault); err != nil {
		return err
	}

	s.state = Sleeping
	if err := gpio.SetPin(w.Sleep, true); err != nil {
		return err
	}
	s.state = Waking
	d.hal.Delay.DelayMs(t.WakeSettleMs)

	// The chip only leaves sleep after it sees the nSLEEP confirmation pulse.
	if err := gpio.SetPin(w.Sleep, false); err != nil {
		return err
	}
	d.hal.Delay.DelayUs(t.WakePulseUs)
	if err := gpio.SetPin(w.Sleep, true); err != nil {
		return err
	}
	s.state = Standby
	core.RecordEvent(core.EvtWake, uint8(motor), uint32(w.Channel), 0)

	if err := d.hal.PWM.StartChannel(w.Channel); err != nil {
		return err
	}
	if err := gpio.SetPin(w.Off, false); err != nil {
		return err
	}
	s.enabled = true
	core.DebugPrintln("[MOTOR] awake " + core.KV("motor", int64(motor)))
	return d.stop(motor, d.cfg.DutyLimit/2)
}

func (d *Driver) slot(motor int) (*slot, error) {
	if motor < 1 || motor > d.cfg.MotorCount || motor > config.MaxMotors {
		return nil, core.ErrIndexOutOfRange
	}
	if motor > d.active {
		return nil, core.ErrNotInitialized
	}
	return &d.slots[motor-1], nil
}

func (d *Driver) clamp(duty core.PWMValue) core.PWMValue {
	return mathx.Clamp(duty, 0, d.cfg.DutyLimit)
}

// Start drives the motor forward at duty, clamped to the duty limit.
func (d *Driver) Start(motor int, duty core.PWMValue) error {
	s, err := d.slot(motor)
	if err != nil {
		return err
	}
	duty = d.clamp(duty)
	if err := d.hal.PWM.SetDuty(s.wiring.Channel, duty); err != nil {
		return err
	}
	s.duty = duty
	d.hal.Delay.DelayMs(d.cfg.Timing.StartSettleMs)
	if err := d.hal.GPIO.SetPin(s.wiring.Off, false); err != nil {
		return err
	}
	if err := d.hal.GPIO.SetPin(s.wiring.Forward, true); err != nil {
		return err
	}
	s.forward = true
	s.enabled = true
	s.state = Running
	core.RecordEvent(core.EvtStart, uint8(motor), uint32(duty), 0)
	return nil
}

// SetPWMDuty writes the clamped duty and nothing else.
func (d *Driver) SetPWMDuty(motor int, duty core.PWMValue) error {
	s, err := d.slot(motor)
	if err != nil {
		return err
	}
	duty = d.clamp(duty)
	if err := d.hal.PWM.SetDuty(s.wiring.Channel, duty); err != nil {
		return err
	}
	s.duty = duty
	core.RecordEvent(core.EvtDuty, uint8(motor), uint32(duty), 0)
	return nil
}

// Stop brakes the motor: IN1 low, bridge driven at duty. A motor that is
// Off stays Off; the brake takes effect on the next On.
func (d *Driver) Stop(motor int, duty core.PWMValue) error {
	if _, err := d.slot(motor); err != nil {
		return err
	}
	return d.stop(motor, duty)
}

func (d *Driver) stop(motor int, duty core.PWMValue) error {
	s := &d.slots[motor-1]
	if err := d.hal.GPIO.SetPin(s.wiring.Forward, false); err != nil {
		return err
	}
	s.forward = false
	duty = d.clamp(duty)
	if err := d.hal.PWM.SetDuty(s.wiring.Channel, duty); err != nil {
		return err
	}
	s.duty = duty
	if s.enabled {
		s.state = Stopped
	}
	core.RecordEvent(core.EvtStop, uint8(motor), uint32(duty), 0)
	return nil
}

// Off puts the bridge in high-Z so the motor coasts. Duty and IN1 are kept.
func (d *Driver) Off(motor int) error {
	s, err := d.slot(motor)
	if err != nil {
		return err
	}
	if err := d.hal.GPIO.SetPin(s.wiring.Off, true); err != nil {
		return err
	}
	s.enabled = false
	s.state = Off
	core.RecordEvent(core.EvtOff, uint8(motor), 0, 0)
	return nil
}

// On re-enables the bridge after Off.
func (d *Driver) On(motor int) error {
	s, err := d.slot(motor)
	if err != nil {
		return err
	}
	if err := d.hal.GPIO.SetPin(s.wiring.Off, false); err != nil {
		return err
	}
	s.enabled = true
	if s.forward {
		s.state = Running
	} else {
		s.state = Stopped
	}
	core.RecordEvent(core.EvtOn, uint8(motor), uint32(s.state), 0)
	return nil
}

// MotorState returns the raw level of the motor's status input.
func (d *Driver) MotorState(motor int) (bool, error) {
	s, err := d.slot(motor)
	if err != nil {
		return false, err
	}
	return d.hal.GPIO.GetPin(s.wiring.Fault)
}

// State returns the lifecycle state of the slot.
func (d *Driver) State(motor int) (State, error) {
	if motor < 1 || motor > d.cfg.MotorCount || motor > config.MaxMotors {
		return Uninitialized, core.ErrIndexOutOfRange
	}
	return d.slots[motor-1].state, nil
}

// Duty returns the last duty written to the slot.
func (d *Driver) Duty(motor int) (core.PWMValue, error) {
	s, err := d.slot(motor)
	if err != nil {
		return 0, err
	}
	return s.duty, nil
}

// StopAll brakes every initialized motor at zero duty. The first error is
// returned but every motor is still attempted.
func (d *Driver) StopAll() error {
	var first error
	for i := 1; i <= d.active; i++ {
		if err := d.stop(i, 0); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// OffAll lets every initialized motor coast.
func (d *Driver) OffAll() error {
	var first error
	for i := 1; i <= d.active; i++ {
		if err := d.Off(i); err != nil && first == nil {
			first = err
		}
	}
	return first
}
