package config

import (
	"errors"

	"robodrive/core"
	"robodrive/x/mathx"
)

// CurrentMode selects how many ADC channels current sensing samples.
type CurrentMode uint8

const (
	// CurrentOff builds without current sensing; reads always fail.
	CurrentOff CurrentMode = iota
	// CurrentPerMotor samples one channel per configured motor. The ADC scan
	// sequence must then have exactly MotorCount conversions.
	CurrentPerMotor
	// CurrentFull samples FullChannelCount channels regardless of motor count.
	CurrentFull
)

func (m CurrentMode) String() string {
	switch m {
	case CurrentOff:
		return "off"
	case CurrentPerMotor:
		return "per_motor"
	case CurrentFull:
		return "full"
	default:
		return "unknown"
	}
}

// ParseCurrentMode is the inverse of CurrentMode.String.
func ParseCurrentMode(s string) (CurrentMode, error) {
	switch s {
	case "off", "":
		return CurrentOff, nil
	case "per_motor":
		return CurrentPerMotor, nil
	case "full":
		return CurrentFull, nil
	}
	return CurrentOff, errors.New("unknown current mode " + s)
}

// MotorWiring is one row of the motor lookup table.
type MotorWiring struct {
	Sleep   core.GPIOPin    `yaml:"sleep"`   // nSLEEP, active high wakes the chip
	Off     core.GPIOPin    `yaml:"off"`     // OFF, high puts the bridge in high-Z
	Forward core.GPIOPin    `yaml:"forward"` // IN1
	Fault   core.GPIOPin    `yaml:"fault"`   // nFAULT / status input
	Channel core.PWMChannel `yaml:"channel"`
}

// EncoderWiring is one row of the encoder lookup table. Targets use A/B or
// Timer depending on how they count.
type EncoderWiring struct {
	A     core.GPIOPin `yaml:"a"`
	B     core.GPIOPin `yaml:"b"`
	Timer uint8        `yaml:"timer"`
}

type CurrentConfig struct {
	Mode             CurrentMode `yaml:"mode"`
	FullChannelCount int         `yaml:"full_channel_count"`
	RefMilliVolts    uint32      `yaml:"ref_millivolts"`
	SenseGain        uint32      `yaml:"sense_gain"`
	Resolution       uint32      `yaml:"resolution"`
	TimeoutMs        uint32      `yaml:"timeout_ms"`
}

// Timing holds the fixed waits of the wake handshake and Start.
type Timing struct {
	WakeSettleMs  uint32 `yaml:"wake_settle_ms"`
	WakePulseUs   uint32 `yaml:"wake_pulse_us"`
	StartSettleMs uint32 `yaml:"start_settle_ms"`
}

// Config is the full driver-layer configuration.
type Config struct {
	MotorCount     int             `yaml:"motor_count"`
	EncoderCount   int             `yaml:"encoder_count"`
	DutyLimit      core.PWMValue   `yaml:"duty_limit"`
	EncoderModulus uint32          `yaml:"encoder_modulus"`
	Motors         []MotorWiring   `yaml:"motors"`
	Encoders       []EncoderWiring `yaml:"encoders"`
	Current        CurrentConfig   `yaml:"current"`
	Timing         Timing          `yaml:"timing"`
}

// CurrentChannels is the number of channels a current read samples.
func (c *Config) CurrentChannels() int {
	switch c.Current.Mode {
	case CurrentFull:
		return c.Current.FullChannelCount
	case CurrentPerMotor:
		return c.MotorCount
	default:
		return 0
	}
}

// ValidMotorCount reports whether the motor count is in [1, MaxMotors] and
// the wiring table covers it.
func (c *Config) ValidMotorCount() bool {
	return mathx.Between(c.MotorCount, 1, MaxMotors) && len(c.Motors) >= c.MotorCount
}

// ValidEncoderCount reports whether the encoder count is in [1, MaxEncoders].
func (c *Config) ValidEncoderCount() bool {
	return mathx.Between(c.EncoderCount, 1, MaxEncoders)
}

// Validate checks everything Init would reject plus values that would make
// the arithmetic meaningless. Errors wrap core.ErrInvalidConfig.
func (c *Config) Validate() error {
	var errs []error
	if !mathx.Between(c.MotorCount, 1, MaxMotors) {
		errs = append(errs, errors.New("motor_count must be 1.."+core.Itoa(MaxMotors)))
	} else if len(c.Motors) < c.MotorCount {
		errs = append(errs, errors.New("motors table shorter than motor_count"))
	}
	if !c.ValidEncoderCount() {
		errs = append(errs, errors.New("encoder_count must be 1.."+core.Itoa(MaxEncoders)))
	}
	if c.DutyLimit == 0 {
		errs = append(errs, errors.New("duty_limit must be positive"))
	}
	if c.EncoderModulus == 0 {
		errs = append(errs, errors.New("encoder_modulus must be positive"))
	}
	if c.Current.Mode != CurrentOff {
		if c.Current.Resolution == 0 {
			errs = append(errs, errors.New("current.resolution must be positive"))
		}
		if c.Current.Mode == CurrentFull && !mathx.Between(c.Current.FullChannelCount, 1, MaxCurrentChannels) {
			errs = append(errs, errors.New("current.full_channel_count must be 1.."+core.Itoa(MaxCurrentChannels)))
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errors.Join(append([]error{core.ErrInvalidConfig}, errs...)...)
}
