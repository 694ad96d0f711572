// Package alerts prints short notices about what a command did or could
// not do. Reports go to standard output; alerts go to standard error.
package alerts

import (
	"fmt"
	"strings"

	"github.com/agentstation/regdiff/pkg/errors"
)

// Alert is one notice shown to the user.
type Alert struct {
	Level   Level
	Message string
	Details []string
	Err     error
}

// New creates an alert.
func New(level Level, message string) *Alert {
	return &Alert{Level: level, Message: message}
}

// NewError creates an error alert.
func NewError(message string) *Alert { return New(LevelError, message) }

// NewWarning creates a warning alert.
func NewWarning(message string) *Alert { return New(LevelWarning, message) }

// NewInfo creates an info alert.
func NewInfo(message string) *Alert { return New(LevelInfo, message) }

// NewSuccess creates a success alert.
func NewSuccess(message string) *Alert { return New(LevelSuccess, message) }

// FromError turns a session error into an alert. A no-op becomes an info
// notice, a warning keeps its cause, and an I/O failure names the file.
// Other errors become error alerts.
func FromError(err error) *Alert {
	var noop *errors.NoOpError
	if errors.As(err, &noop) {
		return NewInfo(sentence(noop.Reason))
	}

	var warning *errors.Warning
	if errors.As(err, &warning) {
		alert := NewWarning(sentence(warning.Operation) + " failed").WithError(warning.Err)
		var ioErr *errors.IOError
		if errors.As(warning.Err, &ioErr) && ioErr.Path != "" {
			alert.Err = ioErr.Err
			alert.WithDetails("File: " + ioErr.Path)
		}
		return alert
	}

	return NewError("Command failed").WithError(err)
}

// WithError attaches the underlying error.
func (a *Alert) WithError(err error) *Alert {
	a.Err = err
	return a
}

// WithDetails appends detail lines.
func (a *Alert) WithDetails(details ...string) *Alert {
	a.Details = append(a.Details, details...)
	return a
}

// String renders the icon, message and error on one line.
func (a *Alert) String() string {
	message := fmt.Sprintf("%s %s", a.Level.Icon(), a.Message)
	if a.Err != nil {
		message += fmt.Sprintf(": %v", a.Err)
	}
	return message
}

// Writer outputs alerts.
type Writer interface {
	WriteAlert(alert *Alert) error
}

func sentence(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
