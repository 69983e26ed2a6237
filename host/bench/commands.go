package bench

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"robodrive/core"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrUsage          = errors.New("usage")
)

// Command is one bench verb.
type Command struct {
	Name string
	Help string
	Run  func(b *Bench, args []int64) (string, error)
	// Args is the number of integer arguments the command takes.
	Args int
}

// Commands lists every bench verb in display order.
func Commands() []Command {
	return commands
}

var commands = []Command{
	{Name: "init", Help: "init: wake motors and start encoders", Run: (*Bench).cmdInit},
	{Name: "start", Help: "start <motor> <duty>", Args: 2, Run: func(b *Bench, a []int64) (string, error) {
		return "", b.Motors.Start(int(a[0]), duty(a[1]))
	}},
	{Name: "duty", Help: "duty <motor> <duty>", Args: 2, Run: func(b *Bench, a []int64) (string, error) {
		return "", b.Motors.SetPWMDuty(int(a[0]), duty(a[1]))
	}},
	{Name: "stop", Help: "stop <motor> <duty>", Args: 2, Run: func(b *Bench, a []int64) (string, error) {
		return "", b.Motors.Stop(int(a[0]), duty(a[1]))
	}},
	{Name: "off", Help: "off <motor>: coast", Args: 1, Run: func(b *Bench, a []int64) (string, error) {
		return "", b.Motors.Off(int(a[0]))
	}},
	{Name: "on", Help: "on <motor>: leave coast", Args: 1, Run: func(b *Bench, a []int64) (string, error) {
		return "", b.Motors.On(int(a[0]))
	}},
	{Name: "state", Help: "state <motor>", Args: 1, Run: (*Bench).cmdState},
	{Name: "fault", Help: "fault <motor> <0|1>: drive the status input", Args: 2, Run: (*Bench).cmdFault},
	{Name: "enc", Help: "enc <encoder>: raw count and position", Args: 1, Run: (*Bench).cmdEnc},
	{Name: "move", Help: "move <encoder> <counts>: turn the shaft", Args: 2, Run: func(b *Bench, a []int64) (string, error) {
		if err := b.checkEncoder(int(a[0])); err != nil {
			return "", err
		}
		b.Board.Timers[a[0]-1].Step(a[1])
		return "", nil
	}},
	{Name: "adc", Help: "adc <channel> <code>: set a converter input", Args: 2, Run: func(b *Bench, a []int64) (string, error) {
		b.Board.ADC.SetSample(int(a[0]), core.ADCValue(a[1]))
		return "", nil
	}},
	{Name: "adctimeout", Help: "adctimeout <channel> <0|1>", Args: 2, Run: func(b *Bench, a []int64) (string, error) {
		b.Board.ADC.SetTimeout(int(a[0]), a[1] != 0)
		return "", nil
	}},
	{Name: "current", Help: "current: sample every channel", Run: (*Bench).cmdCurrent},
	{Name: "tick", Help: "tick <ms>: advance virtual time", Args: 1, Run: func(b *Bench, a []int64) (string, error) {
		if a[0] < 0 {
			return "", ErrUsage
		}
		b.Tick(uint32(a[0]))
		return "", nil
	}},
	{Name: "events", Help: "events: dump the event ring", Run: (*Bench).cmdEvents},
}

// Exec runs one command by name.
func (b *Bench) Exec(name string, args ...string) (string, error) {
	for _, c := range commands {
		if c.Name != name {
			continue
		}
		if len(args) != c.Args {
			return "", fmt.Errorf("%w: %s", ErrUsage, c.Help)
		}
		vals := make([]int64, len(args))
		for i, s := range args {
			v, err := strconv.ParseInt(s, 10, 64)
			if err != nil {
				return "", fmt.Errorf("%w: %s", ErrUsage, c.Help)
			}
			vals[i] = v
		}
		return c.Run(b, vals)
	}
	return "", fmt.Errorf("%w %q", ErrUnknownCommand, name)
}

func duty(v int64) core.PWMValue {
	if v < 0 {
		return 0
	}
	if v > int64(^uint32(0)) {
		return core.PWMValue(^uint32(0))
	}
	return core.PWMValue(v)
}

func (b *Bench) checkEncoder(enc int) error {
	if enc < 1 || enc > b.Encoders.Count() || enc > len(b.Board.Timers) {
		return core.ErrIndexOutOfRange
	}
	return nil
}

func (b *Bench) cmdInit(_ []int64) (string, error) {
	if err := b.Init(); err != nil {
		return "", err
	}
	return fmt.Sprintf("%d motors, %d encoders up", b.Motors.Count(), b.Encoders.Count()), nil
}

func (b *Bench) cmdState(a []int64) (string, error) {
	m := int(a[0])
	st, err := b.Motors.State(m)
	if err != nil {
		return "", err
	}
	d, err := b.Motors.Duty(m)
	if err != nil {
		return fmt.Sprintf("motor %d %s", m, st), nil
	}
	status, err := b.Motors.MotorState(m)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("motor %d %s duty=%d status=%v", m, st, d, status), nil
}

func (b *Bench) cmdFault(a []int64) (string, error) {
	m := int(a[0])
	if m < 1 || m > len(b.Config.Motors) {
		return "", core.ErrIndexOutOfRange
	}
	b.Board.GPIO.SetInput(b.Config.Motors[m-1].Fault, a[1] != 0)
	return "", nil
}

func (b *Bench) cmdEnc(a []int64) (string, error) {
	e := int(a[0])
	raw, err := b.Encoders.Raw(e)
	if err != nil {
		return "", err
	}
	pos, err := b.Encoders.Position(e)
	if err != nil {
		return "", err
	}
	ov, _ := b.Encoders.Overflows(e)
	return fmt.Sprintf("enc %d raw=%d overflows=%d position=%d", e, raw, ov, pos), nil
}

func (b *Bench) cmdCurrent(_ []int64) (string, error) {
	dst := make([]uint32, b.Current.Channels())
	n, err := b.Current.Read(dst)
	if n == 0 && err != nil {
		return "", err
	}
	parts := make([]string, n)
	for i := 0; i < n; i++ {
		parts[i] = strconv.FormatUint(uint64(dst[i]), 10)
	}
	out := "current mA: " + strings.Join(parts, " ")
	if err != nil {
		out += " (" + err.Error() + ")"
	}
	return out, nil
}

func (b *Bench) cmdEvents(_ []int64) (string, error) {
	evts := core.Events()
	lines := make([]string, len(evts))
	for i, e := range evts {
		lines[i] = core.FormatEvent(e)
	}
	return strings.Join(lines, "\n"), nil
}
