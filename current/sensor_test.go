package current

import (
	"errors"
	"testing"

	"robodrive/config"
	"robodrive/core"
	"robodrive/sim"
)

func TestScale(t *testing.T) {
	s := New(config.Default(), nil)
	tests := []struct {
		code core.ADCValue
		want uint32
	}{
		{0, 0},
		{1, 2},
		{1000, 2477},
		{2048, 5073},
		{4095, 10145},
	}
	for _, tt := range tests {
		if got := s.Scale(tt.code); got != tt.want {
			t.Errorf("Scale(%d) = %d, want %d", tt.code, got, tt.want)
		}
	}
}

func TestReadFullWithTimeout(t *testing.T) {
	cfg := config.Default()
	b := sim.NewBoard(cfg)
	for ch := 1; ch <= 4; ch++ {
		b.ADC.SetSample(ch, core.ADCValue(1000*ch))
	}
	b.ADC.SetTimeout(3, true)

	s := New(cfg, b.ADC)
	dst := []uint32{7, 7, 7, 7}
	n, err := s.Read(dst)
	if n != 4 {
		t.Errorf("Expected 4 channels, got %d", n)
	}
	if !errors.Is(err, core.ErrConversionTimeout) {
		t.Fatalf("Expected timeout error, got %v", err)
	}
	var te *TimeoutError
	if !errors.As(err, &te) || te.Mask != 1<<2 {
		t.Errorf("Expected mask for channel 3, got %v", err)
	}
	if dst[2] != 0 {
		t.Errorf("Timed-out channel should store 0, got %d", dst[2])
	}
	for _, ch := range []int{1, 2, 4} {
		want := s.Scale(core.ADCValue(1000 * ch))
		if dst[ch-1] != want {
			t.Errorf("Channel %d: expected %d, got %d", ch, want, dst[ch-1])
		}
	}
	if b.Rec.Count(sim.OpStartADC) != 4 {
		t.Errorf("Expected 4 conversions, got %d", b.Rec.Count(sim.OpStartADC))
	}
	if s.GetCurrent(dst) {
		t.Error("GetCurrent should report the timeout")
	}
}

func TestReadCapsChannelsToMaskWidth(t *testing.T) {
	cfg := config.Default()
	cfg.Current.FullChannelCount = config.MaxCurrentChannels + 1
	b := sim.NewBoard(cfg)
	b.ADC.SetTimeout(config.MaxCurrentChannels, true)

	s := New(cfg, b.ADC)
	if s.Channels() != config.MaxCurrentChannels {
		t.Fatalf("Expected %d channels, got %d", config.MaxCurrentChannels, s.Channels())
	}
	dst := make([]uint32, config.MaxCurrentChannels+1)
	n, err := s.Read(dst)
	if n != config.MaxCurrentChannels {
		t.Errorf("Expected %d samples, got %d", config.MaxCurrentChannels, n)
	}
	var te *TimeoutError
	if !errors.As(err, &te) || te.Mask != 1<<(config.MaxCurrentChannels-1) {
		t.Errorf("Expected timeout on the last channel, got %v", err)
	}
	if s.GetCurrent(dst) {
		t.Error("GetCurrent should report the timeout")
	}
}

func TestReadPerMotor(t *testing.T) {
	cfg := config.Default()
	cfg.MotorCount = 2
	cfg.Current.Mode = config.CurrentPerMotor
	b := sim.NewBoard(cfg)
	b.ADC.SetSample(1, 100)
	b.ADC.SetSample(2, 200)

	s := New(cfg, b.ADC)
	dst := make([]uint32, 2)
	n, err := s.Read(dst)
	if err != nil || n != 2 {
		t.Fatalf("Read: n=%d err=%v", n, err)
	}
	if dst[0] != s.Scale(100) || dst[1] != s.Scale(200) {
		t.Errorf("Unexpected samples %v", dst)
	}
	if !s.GetCurrent(dst) {
		t.Error("GetCurrent should succeed")
	}
}

func TestReadDisabled(t *testing.T) {
	cfg := config.Default()
	cfg.Current.Mode = config.CurrentOff
	b := sim.NewBoard(cfg)
	s := New(cfg, b.ADC)

	if n, err := s.Read(make([]uint32, 4)); n != 0 || !errors.Is(err, core.ErrCurrentDisabled) {
		t.Errorf("Expected ErrCurrentDisabled, got %d %v", n, err)
	}
	if b.Rec.Len() != 0 {
		t.Error("Disabled read touched the ADC")
	}
}

func TestReadShortBuffer(t *testing.T) {
	cfg := config.Default()
	b := sim.NewBoard(cfg)
	s := New(cfg, b.ADC)

	if _, err := s.Read(make([]uint32, 3)); !errors.Is(err, core.ErrShortBuffer) {
		t.Errorf("Expected ErrShortBuffer, got %v", err)
	}
	if b.Rec.Len() != 0 {
		t.Error("Short buffer read touched the ADC")
	}
}

func TestTimeoutErrorMessage(t *testing.T) {
	err := &TimeoutError{Mask: 0b1010}
	if err.Error() != "conversion_timeout: channels 2 4" {
		t.Errorf("Unexpected message %q", err.Error())
	}
}
