// Package bench runs the full driver stack against the simulated board so it
// can be exercised from tests and the development shell without hardware.
package bench

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"robodrive/config"
	"robodrive/core"
	"robodrive/current"
	"robodrive/encoder"
	"robodrive/motor"
	"robodrive/sim"
)

// TelemetryPeriodMs is how often the bench samples current in the
// background, matching the firmware's housekeeping period.
const TelemetryPeriodMs = 100

// Bench is one simulated controller board with its drivers.
type Bench struct {
	Config   config.Config
	Board    *sim.Board
	Motors   *motor.Driver
	Encoders *encoder.Encoder
	Current  *current.Sensor

	log       *slog.Logger
	telemetry *core.Timer
	samples   []uint32
	sampled   int
}

// New assembles the stack on a fresh simulated board. Core debug output is
// routed into log at debug level.
func New(cfg config.Config, log *slog.Logger) *Bench {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	board := sim.NewBoard(cfg)
	b := &Bench{
		Config:   cfg,
		Board:    board,
		Motors:   motor.New(cfg, board.HAL()),
		Encoders: encoder.New(cfg, board.QuadratureTimers()),
		Current:  current.New(cfg, board.ADC),
		log:      log,
		samples:  make([]uint32, cfg.CurrentChannels()),
	}
	core.SetDebugWriter(func(msg string) {
		log.Debug(msg, "src", "core")
	})
	return b
}

// Init brings up motors then encoders and starts background telemetry.
func (b *Bench) Init() error {
	core.ClearEventRing()
	if err := b.Motors.Init(); err != nil {
		b.log.Error("motor init failed", "err", err)
		return fmt.Errorf("motor init: %w", err)
	}
	if err := b.Encoders.Init(); err != nil {
		b.log.Error("encoder init failed", "err", err)
		return fmt.Errorf("encoder init: %w", err)
	}
	if b.telemetry == nil && b.Current.Channels() > 0 {
		b.telemetry = core.Every(core.GetTime(), core.TimerFromMS(TelemetryPeriodMs), b.sample)
	}
	b.log.Info("board up", "motors", b.Motors.Count(), "encoders", b.Encoders.Count(),
		"current", b.Config.Current.Mode.String())
	return nil
}

func (b *Bench) sample() {
	n, err := b.Current.Read(b.samples)
	if err != nil {
		b.log.Warn("current sample", "err", err)
	}
	b.sampled += n
	b.log.Debug("current", "ma", b.samples)
}

// Tick advances virtual time by ms and runs whatever housekeeping is due.
func (b *Bench) Tick(ms uint32) {
	for i := uint32(0); i < ms; i++ {
		b.Board.Clock.Advance(1000)
		core.ProcessTimers()
	}
}

// LastCurrent returns the most recent background current sample.
func (b *Bench) LastCurrent() []uint32 {
	out := make([]uint32, len(b.samples))
	copy(out, b.samples)
	return out
}

// Close stops background telemetry and detaches the debug writer.
func (b *Bench) Close() {
	core.ClearTimers()
	b.telemetry = nil
	core.SetDebugWriter(func(string) {})
}

// Run executes a script, one command per line. Blank lines and lines
// starting with # are skipped. Output goes to w; the first failing command
// stops the script.
func (b *Bench) Run(script io.Reader, w io.Writer) error {
	sc := bufio.NewScanner(script)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)
		out, err := b.Exec(fields[0], fields[1:]...)
		if err != nil {
			return fmt.Errorf("line %d: %s: %w", line, text, err)
		}
		if out != "" {
			fmt.Fprintln(w, out)
		}
	}
	return sc.Err()
}
