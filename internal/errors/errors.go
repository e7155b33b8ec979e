// Package errors provides custom error types for domain-specific errors.
package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors
var (
	ErrInvalidRange     = errors.New("invalid price range")
	ErrUnknownStrategy  = errors.New("unknown strategy type")
	ErrStrategyNotFound = errors.New("strategy not found")
	ErrConfigInvalid    = errors.New("invalid configuration")
)

// ParameterError reports a required strategy parameter that is missing or
// not parseable as a finite number. It is raised at the calculation
// boundary, before any curve point is produced.
type ParameterError struct {
	Name  string
	Value string
	Err   error
}

func (e *ParameterError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("parameter %q: missing", e.Name)
	}
	if e.Err != nil {
		return fmt.Sprintf("parameter %q: invalid value %q: %v", e.Name, e.Value, e.Err)
	}
	return fmt.Sprintf("parameter %q: invalid value %q", e.Name, e.Value)
}

func (e *ParameterError) Unwrap() error {
	return e.Err
}

// NewParameterError creates a new ParameterError.
func NewParameterError(name, value string, err error) *ParameterError {
	return &ParameterError{Name: name, Value: value, Err: err}
}

// LegError reports an invalid custom strategy leg.
type LegError struct {
	Index   int
	Field   string
	Message string
}

func (e *LegError) Error() string {
	return fmt.Sprintf("leg %d: %s: %s", e.Index, e.Field, e.Message)
}

// NewLegError creates a new LegError.
func NewLegError(index int, field, message string) *LegError {
	return &LegError{Index: index, Field: field, Message: message}
}

// StoreError represents an error from the persistence layer.
type StoreError struct {
	Operation string
	Message   string
	Err       error
}

func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("store error [%s]: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("store error [%s]: %s", e.Operation, e.Message)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError.
func NewStoreError(operation, message string, err error) *StoreError {
	return &StoreError{Operation: operation, Message: message, Err: err}
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
