package odometry

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidParameter is returned when a parameter makes the computation
	// undefined.
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrInsufficientInput is returned when there are too few readings to
	// integrate.
	ErrInsufficientInput = errors.New("insufficient input")
)

// ParameterError describes which parameter was rejected and why.
type ParameterError struct {
	Name   string
	Value  float64
	Reason string
}

func (e *ParameterError) Error() string {
	return fmt.Sprintf("%s: %s %s, got %g", ErrInvalidParameter, e.Name, e.Reason, e.Value)
}

func (e *ParameterError) Unwrap() error { return ErrInvalidParameter }

// InputError reports how many readings were supplied and how many are needed.
type InputError struct {
	Got  int
	Need int
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%s: need at least %d successive encoder readings to integrate, got %d",
		ErrInsufficientInput, e.Need, e.Got)
}

func (e *InputError) Unwrap() error { return ErrInsufficientInput }
