package core

import "errors"

var (
	// ErrNoDriver is returned when a required peripheral was not supplied.
	ErrNoDriver = errors.New("peripheral driver not configured")

	// ErrUnknownChannel is returned for an ADC selector the target cannot route.
	ErrUnknownChannel = errors.New("unsupported ADC channel")

	// ErrBadConfig is returned by Config.Validate and by setup code that
	// receives out-of-range parameters.
	ErrBadConfig = errors.New("invalid configuration")
)
