package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"

	"github.com/agentstation/regdiff/pkg/constants"
)

// Config holds logger configuration options
type Config struct {
	// Level is the minimum log level to output
	Level string

	// Format is the output format (json, console, auto)
	Format string

	// Output is where to write logs (stderr, stdout, discard or a file path)
	Output string

	// NoColor disables color output in console mode
	NoColor bool

	// AddCaller includes file:line in log output
	AddCaller bool
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Level:   "info",
		Format:  "auto",
		Output:  "stderr",
		NoColor: os.Getenv("NO_COLOR") != "",
	}
}

// FromEnv returns DefaultConfig overridden by REGDIFF_LOG_* and LOG_*
// variables, the prefixed form winning.
func FromEnv() *Config {
	cfg := DefaultConfig()
	if v := getenv("LOG_LEVEL"); v != "" {
		cfg.Level = v
	} else if os.Getenv("DEBUG") != "" {
		cfg.Level = "debug"
	}
	if v := getenv("LOG_FORMAT"); v != "" {
		cfg.Format = v
	}
	if v := getenv("LOG_OUTPUT"); v != "" {
		cfg.Output = v
	}
	return cfg
}

func getenv(name string) string {
	if v := os.Getenv(constants.EnvPrefix + "_" + name); v != "" {
		return v
	}
	return os.Getenv(name)
}

// NewLoggerFromConfig creates a new logger from configuration
func NewLoggerFromConfig(cfg *Config) zerolog.Logger {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	level := parseLevel(cfg.Level)
	zerolog.SetGlobalLevel(level)

	logger := zerolog.New(getWriter(cfg)).
		Level(level).
		With().
		Timestamp().
		Logger()

	if cfg.AddCaller || level <= zerolog.DebugLevel {
		logger = logger.With().Caller().Logger()
	}

	return logger
}

// getWriter creates the appropriate writer based on configuration
func getWriter(cfg *Config) io.Writer {
	var output io.Writer
	switch strings.ToLower(cfg.Output) {
	case "", "stderr":
		output = os.Stderr
	case "stdout":
		output = os.Stdout
	case "discard", "none":
		output = io.Discard
	default:
		file, err := os.OpenFile(cfg.Output, os.O_CREATE|os.O_APPEND|os.O_WRONLY, constants.FilePermissions)
		if err != nil {
			output = os.Stderr
		} else {
			output = file
		}
	}

	format := strings.ToLower(cfg.Format)
	if format == "" || format == "auto" {
		format = "json"
		if f, ok := output.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
			format = "console"
		}
	}

	switch format {
	case "console", "pretty":
		return zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: time.Kitchen,
			NoColor:    cfg.NoColor,
		}
	default:
		return output
	}
}

// parseLevel parses a log level string
func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "warning":
		return zerolog.WarnLevel
	case "none", "off":
		return zerolog.Disabled
	}
	if l, err := zerolog.ParseLevel(strings.ToLower(level)); err == nil && level != "" {
		return l
	}
	return zerolog.InfoLevel
}
