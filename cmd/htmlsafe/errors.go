package main

import "errors"

var (
	// ErrParsingConfig is returned when environment variables cannot be parsed into the config struct
	ErrParsingConfig = errors.New("failed to parse environment variables into config")

	// ErrEmptyInput is returned when there is no HTML to work on
	ErrEmptyInput = errors.New("input is empty")

	// ErrInvalidFormat is returned for an unknown output or log format
	ErrInvalidFormat = errors.New("invalid format")

	// ErrInvalidLogLevel is returned when the log level cannot be parsed
	ErrInvalidLogLevel = errors.New("invalid log level")

	// ErrUnsafeInput is returned by clean --check when sanitizing would change the input
	ErrUnsafeInput = errors.New("input contains markup the safelist removes")
)
