package alerts

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/regdiff/internal/cmd/output"
)

// FormatWriter writes alerts in the command's output format, so scripts
// reading json or yaml get structured notices too.
type FormatWriter struct {
	w      io.Writer
	format output.Format
	config WriterConfig
}

// WriterConfig controls plain-text alerts.
type WriterConfig struct {
	ShowDetails bool
	UseColor    bool
}

// NewFormatWriter creates a FormatWriter. Plain alerts are colored when w
// is a terminal.
func NewFormatWriter(w io.Writer, format output.Format) *FormatWriter {
	return &FormatWriter{
		w:      w,
		format: format,
		config: WriterConfig{ShowDetails: true, UseColor: output.IsTerminal(w)},
	}
}

// WithConfig replaces the plain-text settings.
func (fw *FormatWriter) WithConfig(config WriterConfig) *FormatWriter {
	fw.config = config
	return fw
}

// NoColor turns color off when disabled is true.
func (fw *FormatWriter) NoColor(disabled bool) *FormatWriter {
	if disabled {
		fw.config.UseColor = false
	}
	return fw
}

// WriteAlert implements Writer.
func (fw *FormatWriter) WriteAlert(alert *Alert) error {
	switch fw.format {
	case output.FormatJSON:
		enc := json.NewEncoder(fw.w)
		enc.SetIndent("", "  ")
		return enc.Encode(newRecord(alert))
	case output.FormatYAML:
		data, err := yaml.Marshal(newRecord(alert))
		if err != nil {
			return fmt.Errorf("encoding alert: %w", err)
		}
		_, err = fw.w.Write(data)
		return err
	default:
		return fw.writePlain(alert)
	}
}

// WriteError writes the alert FromError derives from err.
func (fw *FormatWriter) WriteError(err error) error {
	return fw.WriteAlert(FromError(err))
}

// record is the structured form of an alert.
type record struct {
	Level   string   `json:"level" yaml:"level"`
	Message string   `json:"message" yaml:"message"`
	Details []string `json:"details,omitempty" yaml:"details,omitempty"`
	Error   string   `json:"error,omitempty" yaml:"error,omitempty"`
}

func newRecord(alert *Alert) record {
	r := record{
		Level:   alert.Level.String(),
		Message: alert.Message,
		Details: alert.Details,
	}
	if alert.Err != nil {
		r.Error = alert.Err.Error()
	}
	return r
}

func (fw *FormatWriter) writePlain(alert *Alert) error {
	line := alert.String()
	if fw.config.UseColor {
		c := alert.Level.Color()
		c.EnableColor()
		line = c.Sprint(line)
	}
	if _, err := fmt.Fprintln(fw.w, line); err != nil {
		return err
	}

	if !fw.config.ShowDetails {
		return nil
	}
	for _, detail := range alert.Details {
		if _, err := fmt.Fprintf(fw.w, "   %s\n", detail); err != nil {
			return err
		}
	}
	return nil
}
