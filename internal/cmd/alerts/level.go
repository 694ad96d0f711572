package alerts

import (
	"fmt"

	"github.com/fatih/color"
)

// Level represents the severity of an alert.
type Level int

const (
	// LevelError indicates a failure or error condition.
	LevelError Level = iota
	// LevelWarning indicates a problem that did not stop the operation.
	LevelWarning
	// LevelInfo indicates general informational messages.
	LevelInfo
	// LevelSuccess indicates successful completion of an operation.
	LevelSuccess
)

// String returns the string representation of the alert level.
func (l Level) String() string {
	switch l {
	case LevelError:
		return "error"
	case LevelWarning:
		return "warning"
	case LevelInfo:
		return "info"
	case LevelSuccess:
		return "success"
	default:
		return fmt.Sprintf("unknown(%d)", l)
	}
}

// Icon returns the symbol printed in front of the alert message.
func (l Level) Icon() string {
	switch l {
	case LevelError:
		return "✗"
	case LevelWarning:
		return "!"
	case LevelInfo:
		return "i"
	case LevelSuccess:
		return "✓"
	default:
		return "?"
	}
}

// Color returns the terminal color for the level.
func (l Level) Color() *color.Color {
	switch l {
	case LevelError:
		return color.New(color.FgRed)
	case LevelWarning:
		return color.New(color.FgYellow)
	case LevelInfo:
		return color.New(color.FgCyan)
	case LevelSuccess:
		return color.New(color.FgGreen)
	default:
		return color.New(color.Reset)
	}
}
