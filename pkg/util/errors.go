// Package util provides logging helpers and common error types.
package util

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors classifying validation-run failures
var (
	ErrConfig       = errors.New("configuration error")
	ErrConnect      = errors.New("device connection failed")
	ErrParse        = errors.New("command output parse failed")
	ErrNotSupported = errors.New("operation not supported on this platform")
)

// ConfigError represents a bad testbed or expected-state file with context
type ConfigError struct {
	File    string
	Subject string
	Details string
}

func (e *ConfigError) Error() string {
	msg := fmt.Sprintf("configuration error in %s: %s", e.File, e.Subject)
	if e.Details != "" {
		msg += " (" + e.Details + ")"
	}
	return msg
}

func (e *ConfigError) Unwrap() error {
	return ErrConfig
}

// NewConfigError creates a new configuration error
func NewConfigError(file, subject, details string) *ConfigError {
	return &ConfigError{File: file, Subject: subject, Details: details}
}

// ConnectError represents a failed device connection
type ConnectError struct {
	Device string
	Addr   string
	Err    error
}

func (e *ConnectError) Error() string {
	return fmt.Sprintf("connecting to %s (%s): %v", e.Device, e.Addr, e.Err)
}

func (e *ConnectError) Unwrap() error {
	return ErrConnect
}

// ParseError represents unparseable command output
type ParseError struct {
	Device  string
	Command string
	Details string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing %q on %s: %s", e.Command, e.Device, e.Details)
}

func (e *ParseError) Unwrap() error {
	return ErrParse
}

// ValidationError represents one or more validation failures
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return "validation failed: " + e.Errors[0]
	}
	return fmt.Sprintf("validation failed:\n  - %s", strings.Join(e.Errors, "\n  - "))
}

func (e *ValidationError) Unwrap() error {
	return ErrConfig
}

// ValidationBuilder helps accumulate validation errors
type ValidationBuilder struct {
	errors []string
}

// Add adds an error message if condition is false
func (v *ValidationBuilder) Add(condition bool, message string) *ValidationBuilder {
	if !condition {
		v.errors = append(v.errors, message)
	}
	return v
}

// AddError adds an error message unconditionally
func (v *ValidationBuilder) AddError(message string) *ValidationBuilder {
	v.errors = append(v.errors, message)
	return v
}

// AddErrorf adds a formatted error message
func (v *ValidationBuilder) AddErrorf(format string, args ...interface{}) *ValidationBuilder {
	v.errors = append(v.errors, fmt.Sprintf(format, args...))
	return v
}

// HasErrors returns true if there are validation errors
func (v *ValidationBuilder) HasErrors() bool {
	return len(v.errors) > 0
}

// Build returns the validation error or nil if no errors
func (v *ValidationBuilder) Build() error {
	if len(v.errors) == 0 {
		return nil
	}
	return &ValidationError{Errors: v.errors}
}
