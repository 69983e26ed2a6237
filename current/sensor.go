// Package current samples the H-bridge current-sense outputs through the ADC
// and scales them to milliamps.
package current

import (
	"robodrive/config"
	"robodrive/core"
)

// Sensor reads one scan of current channels. It is not safe for concurrent
// use.
type Sensor struct {
	cfg config.CurrentConfig
	k   int
	adc core.ADCDriver
}

// New returns a sensor sampling cfg.CurrentChannels() channels from adc,
// at most config.MaxCurrentChannels. adc may be nil when current sensing is off.
func New(cfg config.Config, adc core.ADCDriver) *Sensor {
	k := cfg.CurrentChannels()
	if k > config.MaxCurrentChannels {
		k = config.MaxCurrentChannels
	}
	return &Sensor{cfg: cfg.Current, k: k, adc: adc}
}

// Channels is the number of samples a Read produces.
func (s *Sensor) Channels() int {
	return s.k
}

// Scale converts a raw code to milliamps.
func (s *Sensor) Scale(code core.ADCValue) uint32 {
	if s.cfg.Resolution == 0 {
		return 0
	}
	return uint32(uint64(code) * uint64(s.cfg.RefMilliVolts) * uint64(s.cfg.SenseGain) /
		uint64(s.cfg.Resolution) / 1000)
}

// Read samples every channel into dst[0:Channels()]. A channel that times
// out stores 0 and the scan continues; the returned *TimeoutError lists
// which ones failed.
func (s *Sensor) Read(dst []uint32) (int, error) {
	if s.cfg.Mode == config.CurrentOff || s.k == 0 {
		return 0, core.ErrCurrentDisabled
	}
	if s.adc == nil {
		return 0, core.ErrNoDriver
	}
	if len(dst) < s.k {
		return 0, core.ErrShortBuffer
	}

	var failed uint32
	for ch := 1; ch <= s.k; ch++ {
		if err := s.adc.StartConversion(); err != nil {
			return ch - 1, err
		}
		if !s.adc.PollForConversion(s.cfg.TimeoutMs) {
			dst[ch-1] = 0
			failed |= 1 << (ch - 1)
			core.RecordEvent(core.EvtADCTimeout, uint8(ch), s.cfg.TimeoutMs, 0)
			continue
		}
		dst[ch-1] = s.Scale(s.adc.Value())
	}
	if failed != 0 {
		core.DebugPrintln("[CUR] conversion timeout " + core.KV("mask", int64(failed)))
		return s.k, &TimeoutError{Mask: failed}
	}
	return s.k, nil
}
