package sim

import (
	"testing"

	"robodrive/config"
	"robodrive/core"
)

func TestRecorderKeepsOrderAcrossPeripherals(t *testing.T) {
	rec := NewRecorder()
	g := NewGPIO(rec)
	p := NewPWM(rec)
	c := NewClock(rec)

	g.SetPin(7, true)
	c.DelayUs(31)
	p.SetDuty(2, 500)

	calls := rec.Calls()
	want := []Op{OpSetPin, OpDelayUs, OpSetDuty}
	if len(calls) != len(want) {
		t.Fatalf("Expected %d calls, got %d", len(want), len(calls))
	}
	for i, op := range want {
		if calls[i].Op != op {
			t.Errorf("Call %d: expected %s, got %s", i, op, calls[i].Op)
		}
	}
	if c.NowUs() != 31 {
		t.Errorf("Expected clock at 31us, got %d", c.NowUs())
	}
}

func TestGPIOInputPulls(t *testing.T) {
	g := NewGPIO(nil)
	g.ConfigureInputPullUp(3)
	g.ConfigureInputPullDown(4)
	if !g.ReadPin(3) {
		t.Error("Pull-up input should read high")
	}
	if g.ReadPin(4) {
		t.Error("Pull-down input should read low")
	}

	g.SetInput(3, false)
	if v, err := g.GetPin(3); err != nil || v {
		t.Errorf("Expected driven low, got %v err=%v", v, err)
	}
	if g.Mode(3) != PinInputPullUp {
		t.Errorf("Unexpected mode %d", g.Mode(3))
	}
}

func TestADCScanSequence(t *testing.T) {
	clock := NewClock(nil)
	a := NewADC(nil, clock, 3)
	a.SetSample(1, 10)
	a.SetSample(2, 20)
	a.SetSample(3, 30)
	a.SetTimeout(2, true)

	var got []core.ADCValue
	var ok []bool
	for i := 0; i < 4; i++ {
		a.StartConversion()
		r := a.PollForConversion(2)
		ok = append(ok, r)
		got = append(got, a.Value())
	}
	if !ok[0] || ok[1] || !ok[2] || !ok[3] {
		t.Errorf("Unexpected poll results %v", ok)
	}
	if got[0] != 10 || got[2] != 30 || got[3] != 10 {
		t.Errorf("Unexpected values %v", got)
	}
	if clock.NowUs() != 2000 {
		t.Errorf("Timeout should advance clock by 2ms, got %dus", clock.NowUs())
	}
}

func TestQuadTimerStep(t *testing.T) {
	q := NewQuadTimer(nil, 2, 100)
	var events []core.CountDirection
	q.EnableUpdateInterrupt(func(dir core.CountDirection) { events = append(events, dir) })

	q.Step(50)
	if q.Counter() != 0 {
		t.Errorf("Stopped counter moved to %d", q.Counter())
	}

	q.StartEncoder()
	q.Step(250)
	if q.Counter() != 50 {
		t.Errorf("Expected raw 50, got %d", q.Counter())
	}
	if len(events) != 2 || events[0] != core.CountUp {
		t.Errorf("Expected 2 overflows, got %v", events)
	}

	events = nil
	q.Step(-51)
	if q.Counter() != 99 {
		t.Errorf("Expected raw 99, got %d", q.Counter())
	}
	if len(events) != 1 || events[0] != core.CountDown {
		t.Errorf("Expected 1 underflow, got %v", events)
	}
}

func TestQuadTimerLatchesWithoutInterrupt(t *testing.T) {
	q := NewQuadTimer(nil, 3, 100)
	q.Fire(core.CountUp)
	if !q.Pending() {
		t.Fatal("Event without handler should latch")
	}
	q.ClearUpdateFlag()
	if q.Pending() {
		t.Error("ClearUpdateFlag should drop the latched event")
	}
}

func TestNewBoardSizing(t *testing.T) {
	cfg := config.Default()
	cfg.Current.Mode = config.CurrentPerMotor
	cfg.MotorCount = 2

	b := NewBoard(cfg)
	if b.ADC.Conversions() != 2 {
		t.Errorf("Per-motor board should scan 2 channels, got %d", b.ADC.Conversions())
	}
	if len(b.QuadratureTimers()) != len(cfg.Encoders) {
		t.Errorf("Expected %d timers, got %d", len(cfg.Encoders), len(b.Timers))
	}
	if b.Timers[1].Unit() != 4 {
		t.Errorf("Encoder 2 should use timer 4, got %d", b.Timers[1].Unit())
	}
	if !b.GPIO.ReadPin(cfg.Motors[0].Fault) {
		t.Error("Status input should idle high")
	}
	if err := b.HAL().CheckMotor(); err != nil {
		t.Errorf("Board HAL incomplete: %v", err)
	}
}
