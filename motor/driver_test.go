package motor

import (
	"errors"
	"testing"

	"robodrive/config"
	"robodrive/core"
	"robodrive/sim"
)

func twoMotorConfig() config.Config {
	cfg := config.Default()
	cfg.MotorCount = 2
	return cfg
}

func newTestDriver(t *testing.T, cfg config.Config) (*Driver, *sim.Board) {
	t.Helper()
	b := sim.NewBoard(cfg)
	d := New(cfg, b.HAL())
	if err := d.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	return d, b
}

func TestInitWakeSequence(t *testing.T) {
	cfg := twoMotorConfig()
	b := sim.NewBoard(cfg)
	d := New(cfg, b.HAL())
	if err := d.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	m1 := cfg.Motors[0]
	type step struct {
		op    sim.Op
		pin   core.GPIOPin
		level bool
		value uint32
	}
	want := []step{
		{op: sim.OpSetPin, pin: m1.Sleep, level: true},
		{op: sim.OpDelayMs, value: 1},
		{op: sim.OpSetPin, pin: m1.Sleep, level: false},
		{op: sim.OpDelayUs, value: 31},
		{op: sim.OpSetPin, pin: m1.Sleep, level: true},
		{op: sim.OpStartChannel, value: uint32(m1.Channel)},
		{op: sim.OpSetPin, pin: m1.Off, level: false},
		{op: sim.OpSetPin, pin: m1.Forward, level: false},
		{op: sim.OpSetDuty, value: 500},
	}

	var got []sim.Call
	for _, c := range b.Rec.Calls() {
		if c.Op == sim.OpConfigureOutput || c.Op == sim.OpConfigureInput {
			continue
		}
		got = append(got, c)
	}
	if len(got) != 2*len(want) {
		t.Fatalf("Expected %d calls for two motors, got %d", 2*len(want), len(got))
	}
	for i, w := range want {
		c := got[i]
		if c.Op != w.op {
			t.Fatalf("Step %d: expected %s, got %s", i, w.op, c.Op)
		}
		switch w.op {
		case sim.OpSetPin:
			if c.Pin != w.pin || c.Level != w.level {
				t.Errorf("Step %d: expected pin %d=%v, got %d=%v", i, w.pin, w.level, c.Pin, c.Level)
			}
		case sim.OpStartChannel:
			if uint32(c.Channel) != w.value {
				t.Errorf("Step %d: expected channel %d, got %d", i, w.value, c.Channel)
			}
		default:
			if c.Value != w.value {
				t.Errorf("Step %d: expected value %d, got %d", i, w.value, c.Value)
			}
		}
	}
	// Motor 2's sequence starts only after motor 1 has been parked.
	if got[len(want)].Pin != cfg.Motors[1].Sleep {
		t.Errorf("Motor 2 sequence should follow motor 1, got pin %d", got[len(want)].Pin)
	}

	for i := 1; i <= 2; i++ {
		st, _ := d.State(i)
		duty, _ := d.Duty(i)
		if st != Stopped || duty != 500 {
			t.Errorf("Motor %d: expected stopped at 500, got %s at %d", i, st, duty)
		}
	}
	if b.PWM.Duty(cfg.Motors[1].Channel) != 500 {
		t.Errorf("Motor 2 channel should hold 500, got %d", b.PWM.Duty(cfg.Motors[1].Channel))
	}
}

func TestInitRejectsBadCount(t *testing.T) {
	for _, n := range []int{0, 5, -1} {
		cfg := config.Default()
		cfg.MotorCount = n
		b := sim.NewBoard(cfg)
		d := New(cfg, b.HAL())
		if err := d.Init(); !errors.Is(err, core.ErrInvalidConfig) {
			t.Errorf("Count %d: expected ErrInvalidConfig, got %v", n, err)
		}
		if b.Rec.Len() != 0 {
			t.Errorf("Count %d: expected no hardware calls, got %d", n, b.Rec.Len())
		}
	}
}

func TestInitRejectsShortWiring(t *testing.T) {
	cfg := config.Default()
	cfg.Motors = cfg.Motors[:2]
	b := sim.NewBoard(cfg)
	if err := New(cfg, b.HAL()).Init(); !errors.Is(err, core.ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
	if b.Rec.Len() != 0 {
		t.Errorf("Expected no hardware calls, got %d", b.Rec.Len())
	}
}

func TestInitRejectsADCMismatch(t *testing.T) {
	cfg := twoMotorConfig()
	cfg.Current.Mode = config.CurrentPerMotor
	b := sim.NewBoard(cfg)
	b.ADC = sim.NewADC(b.Rec, b.Clock, 3)

	d := New(cfg, b.HAL())
	if err := d.Init(); !errors.Is(err, core.ErrInvalidConfig) {
		t.Fatalf("Expected ErrInvalidConfig, got %v", err)
	}
	if b.Rec.Len() != 0 {
		t.Errorf("Expected no hardware calls, got %d", b.Rec.Len())
	}
	for i := 1; i <= 2; i++ {
		if st, _ := d.State(i); st != Uninitialized {
			t.Errorf("Motor %d left in %s", i, st)
		}
	}
}

func TestInitPerMotorMatches(t *testing.T) {
	cfg := twoMotorConfig()
	cfg.Current.Mode = config.CurrentPerMotor
	b := sim.NewBoard(cfg)
	if err := New(cfg, b.HAL()).Init(); err != nil {
		t.Errorf("Matching scan length should pass, got %v", err)
	}
}

func TestInitWithoutDrivers(t *testing.T) {
	d := New(config.Default(), core.HAL{})
	if err := d.Init(); !errors.Is(err, core.ErrNoDriver) {
		t.Errorf("Expected ErrNoDriver, got %v", err)
	}
}

func TestStartClampsDuty(t *testing.T) {
	cfg := twoMotorConfig()
	d, b := newTestDriver(t, cfg)
	b.Rec.Reset()

	if err := d.Start(1, 9999); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	m1 := cfg.Motors[0]
	if b.PWM.Duty(m1.Channel) != 1000 {
		t.Errorf("Expected duty clamped to 1000, got %d", b.PWM.Duty(m1.Channel))
	}
	if !b.GPIO.Level(m1.Forward) || b.GPIO.Level(m1.Off) {
		t.Error("Expected IN1 high and OFF low")
	}
	if st, _ := d.State(1); st != Running {
		t.Errorf("Expected running, got %s", st)
	}

	calls := b.Rec.Calls()
	order := []sim.Op{sim.OpSetDuty, sim.OpDelayMs, sim.OpSetPin, sim.OpSetPin}
	if len(calls) != len(order) {
		t.Fatalf("Expected %d calls, got %d", len(order), len(calls))
	}
	for i, op := range order {
		if calls[i].Op != op {
			t.Errorf("Call %d: expected %s, got %s", i, op, calls[i].Op)
		}
	}
	if calls[3].Pin != m1.Forward {
		t.Errorf("IN1 should be set last, got pin %d", calls[3].Pin)
	}

	// Motor 2 keeps its parked duty.
	if b.PWM.Duty(cfg.Motors[1].Channel) != 500 {
		t.Errorf("Motor 2 duty changed to %d", b.PWM.Duty(cfg.Motors[1].Channel))
	}
}

func TestStopAfterStart(t *testing.T) {
	cfg := twoMotorConfig()
	d, b := newTestDriver(t, cfg)
	m2 := cfg.Motors[1]

	d.Start(2, 500)
	if err := d.Stop(2, 300); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
	if b.GPIO.Level(m2.Forward) {
		t.Error("IN1 should be low after Stop")
	}
	if b.PWM.Duty(m2.Channel) != 300 {
		t.Errorf("Expected duty 300, got %d", b.PWM.Duty(m2.Channel))
	}
	if st, _ := d.State(2); st != Stopped {
		t.Errorf("Expected stopped, got %s", st)
	}
}

func TestSetPWMDutyOnlyWritesDuty(t *testing.T) {
	cfg := twoMotorConfig()
	d, b := newTestDriver(t, cfg)
	d.Start(1, 200)
	b.Rec.Reset()

	if err := d.SetPWMDuty(1, 1500); err != nil {
		t.Fatalf("SetPWMDuty failed: %v", err)
	}
	calls := b.Rec.Calls()
	if len(calls) != 1 || calls[0].Op != sim.OpSetDuty || calls[0].Value != 1000 {
		t.Errorf("Expected a single clamped duty write, got %+v", calls)
	}
	if st, _ := d.State(1); st != Running {
		t.Errorf("State changed to %s", st)
	}
}

func TestOffOnKeepsDuty(t *testing.T) {
	cfg := twoMotorConfig()
	d, b := newTestDriver(t, cfg)
	m1 := cfg.Motors[0]

	tests := []struct {
		name  string
		setup func()
		after State
	}{
		{"running", func() { d.Start(1, 700) }, Running},
		{"stopped", func() { d.Stop(1, 100) }, Stopped},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			duty := b.PWM.Duty(m1.Channel)
			in1 := b.GPIO.Level(m1.Forward)

			if err := d.Off(1); err != nil {
				t.Fatalf("Off failed: %v", err)
			}
			if !b.GPIO.Level(m1.Off) {
				t.Error("OFF pin should be high")
			}
			if st, _ := d.State(1); st != Off {
				t.Errorf("Expected off, got %s", st)
			}

			if err := d.On(1); err != nil {
				t.Fatalf("On failed: %v", err)
			}
			if b.GPIO.Level(m1.Off) {
				t.Error("OFF pin should be low")
			}
			if st, _ := d.State(1); st != tt.after {
				t.Errorf("Expected %s, got %s", tt.after, st)
			}
			if b.PWM.Duty(m1.Channel) != duty || b.GPIO.Level(m1.Forward) != in1 {
				t.Error("Off/On must not touch duty or IN1")
			}

			// Braking while off keeps the bridge in high-Z.
			d.Off(1)
			if err := d.Stop(1, 200); err != nil {
				t.Fatalf("Stop failed: %v", err)
			}
			if st, _ := d.State(1); st != Off {
				t.Errorf("Stop while off: expected off, got %s", st)
			}
			if !b.GPIO.Level(m1.Off) {
				t.Error("Stop must not touch the OFF pin")
			}
			d.On(1)
			if st, _ := d.State(1); st != Stopped {
				t.Errorf("On after stop: expected stopped, got %s", st)
			}
		})
	}
}

func TestMotorStateReadsStatusPin(t *testing.T) {
	cfg := twoMotorConfig()
	d, b := newTestDriver(t, cfg)

	if v, err := d.MotorState(1); err != nil || !v {
		t.Errorf("Expected idle-high status, got %v err=%v", v, err)
	}
	b.GPIO.SetInput(cfg.Motors[0].Fault, false)
	if v, _ := d.MotorState(1); v {
		t.Error("Expected status low after fault")
	}
}

func TestOutOfRangeIsNoOp(t *testing.T) {
	cfg := twoMotorConfig()
	d, b := newTestDriver(t, cfg)
	b.Rec.Reset()

	for _, idx := range []int{0, 3, 5, -1} {
		if err := d.Start(idx, 100); !errors.Is(err, core.ErrIndexOutOfRange) {
			t.Errorf("Start(%d): expected ErrIndexOutOfRange, got %v", idx, err)
		}
		if err := d.Stop(idx, 100); !errors.Is(err, core.ErrIndexOutOfRange) {
			t.Errorf("Stop(%d): got %v", idx, err)
		}
		if err := d.SetPWMDuty(idx, 100); !errors.Is(err, core.ErrIndexOutOfRange) {
			t.Errorf("SetPWMDuty(%d): got %v", idx, err)
		}
		if err := d.Off(idx); !errors.Is(err, core.ErrIndexOutOfRange) {
			t.Errorf("Off(%d): got %v", idx, err)
		}
		if err := d.On(idx); !errors.Is(err, core.ErrIndexOutOfRange) {
			t.Errorf("On(%d): got %v", idx, err)
		}
		if v, err := d.MotorState(idx); v || !errors.Is(err, core.ErrIndexOutOfRange) {
			t.Errorf("MotorState(%d): got %v, %v", idx, v, err)
		}
	}
	if b.Rec.Len() != 0 {
		t.Errorf("Out-of-range calls touched hardware %d times", b.Rec.Len())
	}
}

func TestBeforeInit(t *testing.T) {
	cfg := twoMotorConfig()
	b := sim.NewBoard(cfg)
	d := New(cfg, b.HAL())

	if err := d.Start(1, 100); !errors.Is(err, core.ErrNotInitialized) {
		t.Errorf("Expected ErrNotInitialized, got %v", err)
	}
	if st, err := d.State(1); err != nil || st != Uninitialized {
		t.Errorf("Expected uninitialized, got %s err=%v", st, err)
	}
	if b.Rec.Len() != 0 {
		t.Errorf("Expected no hardware calls, got %d", b.Rec.Len())
	}
}

func TestStopAllOffAll(t *testing.T) {
	cfg := twoMotorConfig()
	d, b := newTestDriver(t, cfg)
	d.Start(1, 800)
	d.Start(2, 600)

	if err := d.StopAll(); err != nil {
		t.Fatalf("StopAll failed: %v", err)
	}
	for i, m := range cfg.Motors[:2] {
		if b.PWM.Duty(m.Channel) != 0 || b.GPIO.Level(m.Forward) {
			t.Errorf("Motor %d not braked", i+1)
		}
	}

	if err := d.OffAll(); err != nil {
		t.Fatalf("OffAll failed: %v", err)
	}
	for i := 1; i <= 2; i++ {
		if st, _ := d.State(i); st != Off {
			t.Errorf("Motor %d: expected off, got %s", i, st)
		}
	}
}

func TestEventsRecorded(t *testing.T) {
	core.ClearEventRing()
	defer core.ClearEventRing()

	d, _ := newTestDriver(t, twoMotorConfig())
	d.Start(1, 250)

	evts := core.Events()
	last := evts[len(evts)-1]
	if last.Kind != core.EvtStart || last.Index != 1 || last.Value1 != 250 {
		t.Errorf("Unexpected last event %s", core.FormatEvent(last))
	}
	wakes := 0
	for _, e := range evts {
		if e.Kind == core.EvtWake {
			wakes++
		}
	}
	if wakes != 2 {
		t.Errorf("Expected 2 wake events, got %d", wakes)
	}
}

type failingGPIO struct {
	core.GPIODriver
	fail core.GPIOPin
	on   bool
}

func (g *failingGPIO) ConfigureOutput(pin core.GPIOPin) error {
	if g.on && pin == g.fail {
		return core.ErrInvalidConfig
	}
	return g.GPIODriver.ConfigureOutput(pin)
}

func TestFailedReinitClearsActive(t *testing.T) {
	cfg := twoMotorConfig()
	b := sim.NewBoard(cfg)
	gpio := &failingGPIO{GPIODriver: b.GPIO, fail: cfg.Motors[0].Sleep}
	hal := b.HAL()
	hal.GPIO = gpio
	d := New(cfg, hal)
	if err := d.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	gpio.on = true
	if err := d.Init(); err == nil {
		t.Fatal("Expected re-init to fail")
	}
	for _, idx := range []int{1, 2} {
		if err := d.Start(idx, 100); !errors.Is(err, core.ErrNotInitialized) {
			t.Errorf("Start(%d): expected ErrNotInitialized, got %v", idx, err)
		}
	}
}
