// Package errors provides custom error types for domain-specific errors.
package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors
var (
	ErrInvalidParameter     = errors.New("invalid parameter")
	ErrNumericalInstability = errors.New("numerical instability")
	ErrNoClosedForm         = errors.New("no closed-form solution")
	ErrNotSimulatable       = errors.New("contract has no simulation payoff")
	ErrNoConvergence        = errors.New("iteration did not converge")
	ErrConfigInvalid        = errors.New("invalid configuration")
)

// ValidationError reports a rejected input parameter. It matches
// ErrInvalidParameter under errors.Is.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s (%v): %s", e.Field, e.Value, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidParameter
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// NumericalError reports a computation that produced a non-finite or
// otherwise unusable result. It matches ErrNumericalInstability under
// errors.Is.
type NumericalError struct {
	Op      string
	Message string
}

func (e *NumericalError) Error() string {
	return fmt.Sprintf("numerical error [%s]: %s", e.Op, e.Message)
}

func (e *NumericalError) Unwrap() error {
	return ErrNumericalInstability
}

// NewNumericalError creates a new NumericalError.
func NewNumericalError(op, message string) *NumericalError {
	return &NumericalError{
		Op:      op,
		Message: message,
	}
}

// ConvergenceError reports an iterative solver that ran out of iterations.
// It matches ErrNoConvergence under errors.Is.
type ConvergenceError struct {
	Op         string
	Iterations int
	Residual   float64
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("convergence error [%s]: no convergence after %d iterations (residual %.6g)", e.Op, e.Iterations, e.Residual)
}

func (e *ConvergenceError) Unwrap() error {
	return ErrNoConvergence
}

// NewConvergenceError creates a new ConvergenceError.
func NewConvergenceError(op string, iterations int, residual float64) *ConvergenceError {
	return &ConvergenceError{
		Op:         op,
		Iterations: iterations,
		Residual:   residual,
	}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
