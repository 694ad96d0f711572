package application

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/regdiff"
)

// Mock provides a mock implementation of Application for testing.
// Each method can be customized by setting the corresponding function field.
// If a function field is nil, the method returns a default value; Client
// then builds a real session from Settings.
type Mock struct {
	SettingsFunc     func() regdiff.Config
	ClientFunc       func(opts ...regdiff.Option) (regdiff.Client, error)
	LoggerFunc       func() *zerolog.Logger
	OutputFormatFunc func() string
	NoColorFunc      func() bool
	VersionFunc      func() string
	CommitFunc       func() string
	DateFunc         func() string
	BuiltByFunc      func() string
}

// Settings returns settings using the mock function or the defaults.
func (m *Mock) Settings() regdiff.Config {
	if m.SettingsFunc != nil {
		return m.SettingsFunc()
	}
	return regdiff.DefaultConfig()
}

// Client returns a client using the mock function or a new real client.
func (m *Mock) Client(opts ...regdiff.Option) (regdiff.Client, error) {
	if m.ClientFunc != nil {
		return m.ClientFunc(opts...)
	}
	base := []regdiff.Option{
		regdiff.WithConfig(m.Settings()),
		regdiff.WithLogger(m.Logger()),
	}
	return regdiff.New(append(base, opts...)...)
}

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat returns output format using the mock function or "table".
func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return "table"
}

// NoColor returns the color setting using the mock function or true.
func (m *Mock) NoColor() bool {
	if m.NoColorFunc != nil {
		return m.NoColorFunc()
	}
	return true
}

// Version returns version using the mock function or "dev".
func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "dev"
}

// Commit returns commit using the mock function or "unknown".
func (m *Mock) Commit() string {
	if m.CommitFunc != nil {
		return m.CommitFunc()
	}
	return "unknown"
}

// Date returns date using the mock function or "unknown".
func (m *Mock) Date() string {
	if m.DateFunc != nil {
		return m.DateFunc()
	}
	return "unknown"
}

// BuiltBy returns builtBy using the mock function or "test".
func (m *Mock) BuiltBy() string {
	if m.BuiltByFunc != nil {
		return m.BuiltByFunc()
	}
	return "test"
}

// Ensure Mock implements Application at compile time.
var _ Application = (*Mock)(nil)
