package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Construction errors
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrInvalidAlphabet  = fmt.Errorf("%w: alphabet size", ErrInvalidParameter)
	ErrMissingRNG       = fmt.Errorf("%w: random stream", ErrInvalidParameter)

	// Measurement errors
	ErrInvalidRun = errors.New("invalid measurement run")

	// Search outcomes
	ErrNoQualifyingCandidate = errors.New("no candidate reached the entropy floor")

	// Lookup errors
	ErrUnknownKind = errors.New("unknown source kind")
)

// NewParameterError reports a construction parameter outside its domain
func NewParameterError(name string, value interface{}, want string) error {
	return fmt.Errorf("%w: %s=%v, want %s", ErrInvalidParameter, name, value, want)
}

// NewRunError reports steps/trials outside their domain
func NewRunError(name string, value int) error {
	return fmt.Errorf("%w: %s=%d, want >= 1", ErrInvalidRun, name, value)
}

// IsParameterError reports whether err is a construction parameter error
func IsParameterError(err error) bool {
	return errors.Is(err, ErrInvalidParameter)
}
