// Package errors defines the failure classes regdiff reports.
//
// Callers branch on class rather than message: a missing registry, bad
// input, a failed write, a request with nothing to do and a backup that
// failed without stopping the write are all rendered differently by the CLI.
package errors

import (
	"errors"
	"fmt"
)

// Re-exports so that code importing this package as errors keeps the
// standard helpers.
var (
	New = errors.New
	Is  = errors.Is
	As  = errors.As
)

// Class sentinels. Every typed error below matches exactly one of them
// through errors.Is.
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrNoOp         = errors.New("nothing to do")
	ErrWarning      = errors.New("warning")
	ErrCanceled     = errors.New("operation canceled")
)

// NotFoundError names an input that could not be located, for example
// the registry file passed with --registry.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// NewNotFoundError reports that resource id is missing.
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// ValidationError rejects a setting or argument. Field is empty when the
// problem is not tied to a single field.
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation failed: " + e.Message
	}
	return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

// NewValidationError rejects value for field.
func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// ConfigError is returned while loading settings from files, the
// environment or flags. Component is the layer that failed (viper, dotenv).
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

func (e *ConfigError) Error() string {
	if e.Component == "" {
		return "configuration error: " + e.Message
	}
	return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// NewConfigError wraps err as a failure of component.
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{Component: component, Message: message, Err: err}
}

// IOError records a filesystem step that failed. Operation is one of
// open, read, create, write, sync, close or commit.
type IOError struct {
	Operation string
	Path      string
	Message   string
	Err       error
}

func (e *IOError) Error() string {
	where := e.Operation
	if e.Path != "" {
		where += " of " + e.Path
	}
	return fmt.Sprintf("IO error during %s: %s", where, e.Message)
}

func (e *IOError) Unwrap() error { return e.Err }

// NewIOError builds an IOError whose message is taken from err.
func NewIOError(operation, path string, err error) *IOError {
	e := &IOError{Operation: operation, Path: path, Err: err}
	if err != nil {
		e.Message = err.Error()
	}
	return e
}

// Warning is a failure that is surfaced without aborting the surrounding
// operation. A registry backup that cannot be written is the usual case.
type Warning struct {
	Operation string
	Err       error
}

func (e *Warning) Error() string {
	return fmt.Sprintf("warning during %s: %v", e.Operation, e.Err)
}

func (e *Warning) Unwrap() error { return e.Err }

func (e *Warning) Is(target error) bool { return target == ErrWarning }

// NewWarning marks err as non-fatal for operation.
func NewWarning(operation string, err error) *Warning {
	return &Warning{Operation: operation, Err: err}
}

// NoOpError explains why apply or export had nothing to write. It is
// informational.
type NoOpError struct {
	Operation string
	Reason    string
}

func (e *NoOpError) Error() string { return e.Operation + ": " + e.Reason }

func (e *NoOpError) Is(target error) bool { return target == ErrNoOp }

// NewNoOpError reports that operation was skipped for reason.
func NewNoOpError(operation, reason string) *NoOpError {
	return &NoOpError{Operation: operation, Reason: reason}
}

func IsNotFound(err error) bool        { return errors.Is(err, ErrNotFound) }
func IsValidationError(err error) bool { return errors.Is(err, ErrInvalidInput) }
func IsNoOp(err error) bool            { return errors.Is(err, ErrNoOp) }
func IsWarning(err error) bool         { return errors.Is(err, ErrWarning) }
func IsCanceled(err error) bool        { return errors.Is(err, ErrCanceled) }

// IsIOError reports whether err is or wraps an *IOError.
func IsIOError(err error) bool {
	var ioErr *IOError
	return errors.As(err, &ioErr)
}

// WrapValidation turns err into a ValidationError for field. A nil err
// stays nil.
func WrapValidation(field string, err error) error {
	if err == nil {
		return nil
	}
	return &ValidationError{Field: field, Message: err.Error()}
}

// WrapIO turns err into an IOError. A nil err stays nil.
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}
