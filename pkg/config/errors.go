package config

import "errors"

var (
	// ErrNilPointer indicates Load was called with a nil target.
	ErrNilPointer = errors.New("config target must be a non-nil pointer")

	// ErrParsingConfig indicates the environment could not be parsed into
	// the target struct.
	ErrParsingConfig = errors.New("failed to parse config from environment")
)
