//go:build !tinygo

package config

import (
	"errors"
	"testing"

	"robodrive/core"
)

const twoMotorBoard = `
motor_count: 2
encoder_count: 2
duty_limit: 500
motors:
  - {sleep: 10, off: 11, forward: 12, fault: 13, channel: 1}
  - {sleep: 20, off: 21, forward: 22, fault: 23, channel: 2}
current:
  mode: per_motor
`

func TestLoadYAML(t *testing.T) {
	cfg, err := LoadYAML([]byte(twoMotorBoard))
	if err != nil {
		t.Fatalf("LoadYAML failed: %v", err)
	}
	if cfg.MotorCount != 2 || cfg.DutyLimit != 500 {
		t.Errorf("Unexpected counts %+v", cfg)
	}
	if cfg.Motors[1].Forward != 22 || cfg.Motors[1].Channel != 2 {
		t.Errorf("Unexpected wiring %+v", cfg.Motors[1])
	}
	if cfg.Current.Mode != CurrentPerMotor {
		t.Errorf("Expected per_motor mode, got %v", cfg.Current.Mode)
	}
	// untouched keys keep compile-time values
	if cfg.EncoderModulus != EncoderModulus || cfg.Current.TimeoutMs != ConversionTimeoutMs {
		t.Errorf("Defaults not kept: %+v", cfg)
	}
}

func TestLoadYAMLInvalid(t *testing.T) {
	_, err := LoadYAML([]byte("motor_count: 7\n"))
	if !errors.Is(err, core.ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}

	_, err = LoadYAML([]byte("current: {mode: sometimes}\n"))
	if err == nil {
		t.Error("Expected error for unknown current mode")
	}
}
