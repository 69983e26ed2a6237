//go:build !tinygo

package config

import (
	"os"

	"gopkg.in/yaml.v2"
)

// LoadYAML parses a board file on top of Default and validates the result.
// Keys missing from the file keep their compile-time value; a motors or
// encoders list replaces the reference table entirely.
func LoadYAML(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadFile reads and parses a board file.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	return LoadYAML(data)
}

// applyDefaults fills values a board file zeroed out explicitly.
func applyDefaults(cfg *Config) {
	if cfg.DutyLimit == 0 {
		cfg.DutyLimit = DutyLimit
	}
	if cfg.EncoderModulus == 0 {
		cfg.EncoderModulus = EncoderModulus
	}
	if cfg.Current.TimeoutMs == 0 {
		cfg.Current.TimeoutMs = ConversionTimeoutMs
	}
	if cfg.Current.Resolution == 0 {
		cfg.Current.Resolution = ADCResolution
	}
}

// UnmarshalYAML accepts the names produced by CurrentMode.String.
func (m *CurrentMode) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	mode, err := ParseCurrentMode(s)
	if err != nil {
		return err
	}
	*m = mode
	return nil
}

// MarshalYAML writes the mode by name.
func (m CurrentMode) MarshalYAML() (interface{}, error) {
	return m.String(), nil
}
