package core

import "errors"

var (
	// Configuration
	ErrInvalidConfig = errors.New("invalid_config")
	ErrNoDriver      = errors.New("no_driver")

	// Addressing
	ErrIndexOutOfRange = errors.New("index_out_of_range")
	ErrNotInitialized  = errors.New("not_initialized")

	// Sampling
	ErrConversionTimeout = errors.New("conversion_timeout")
	ErrCurrentDisabled   = errors.New("current_disabled")
	ErrShortBuffer       = errors.New("short_buffer")
)
