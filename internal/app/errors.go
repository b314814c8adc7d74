package app

import "errors"

var (
	ErrMissingDependencies = errors.New("missing dependencies")
	ErrAttemptsExhausted   = errors.New("all attempts failed")
)
