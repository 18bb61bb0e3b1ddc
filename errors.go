// Package matbench structured error types for better error handling
package matbench

import (
	"fmt"
)

// ErrorType represents categories of errors
type ErrorType int

const (
	// Configuration errors (bad dimensions, bad flags)
	ErrTypeConfig ErrorType = iota
	// Device memory errors
	ErrTypeDevice
	// Execution errors (a backend invocation failed)
	ErrTypeExecution
	// External profiler errors (subprocess, report parsing)
	ErrTypeProfiler
)

// BenchError represents a structured error with context
type BenchError struct {
	Type    ErrorType
	Op      string // Operation that failed
	Message string // Human-readable message
	Err     error  // Underlying error if any
}

// Error implements the error interface
func (e *BenchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("matbench %s error in %s: %s (caused by: %v)",
			e.Type.String(), e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("matbench %s error in %s: %s",
		e.Type.String(), e.Op, e.Message)
}

// Unwrap allows error chain inspection
func (e *BenchError) Unwrap() error {
	return e.Err
}

// String returns the error type as a string
func (t ErrorType) String() string {
	switch t {
	case ErrTypeConfig:
		return "Config"
	case ErrTypeDevice:
		return "Device"
	case ErrTypeExecution:
		return "Execution"
	case ErrTypeProfiler:
		return "Profiler"
	default:
		return "Unknown"
	}
}

// Common error constructors

// NewConfigError creates a configuration error
func NewConfigError(op string, message string) error {
	return &BenchError{
		Type:    ErrTypeConfig,
		Op:      op,
		Message: message,
	}
}

// NewDeviceError creates a device memory error
func NewDeviceError(op string, message string, err error) error {
	return &BenchError{
		Type:    ErrTypeDevice,
		Op:      op,
		Message: message,
		Err:     err,
	}
}

// NewExecutionError creates an execution error
func NewExecutionError(op string, message string, err error) error {
	return &BenchError{
		Type:    ErrTypeExecution,
		Op:      op,
		Message: message,
		Err:     err,
	}
}

// NewProfilerError creates an external profiler error
func NewProfilerError(op string, message string, err error) error {
	return &BenchError{
		Type:    ErrTypeProfiler,
		Op:      op,
		Message: message,
		Err:     err,
	}
}

// Common pre-defined errors

var (
	// ErrInvalidSize indicates a non-positive allocation size
	ErrInvalidSize = NewConfigError("Malloc", "size must be positive")

	// ErrDoubleFree indicates a double free attempt
	ErrDoubleFree = NewDeviceError("Free", "double free detected", nil)
)

// IsDeviceError checks if an error is a device memory error
func IsDeviceError(err error) bool {
	if e, ok := err.(*BenchError); ok {
		return e.Type == ErrTypeDevice
	}
	return false
}

// IsProfilerError checks if an error is an external profiler error
func IsProfilerError(err error) bool {
	if e, ok := err.(*BenchError); ok {
		return e.Type == ErrTypeProfiler
	}
	return false
}
