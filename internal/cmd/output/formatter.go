// Package output renders command results as tables, JSON, YAML or markdown.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/mattn/go-isatty"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Format names an output format.
type Format string

// Supported formats.
const (
	FormatTable    Format = "table"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatMarkdown Format = "markdown"
)

// Formatter writes data in one format.
type Formatter interface {
	Format(w io.Writer, data any) error
}

// NewFormatter returns the Formatter for format. Unknown formats get a table.
func NewFormatter(format Format) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{Indent: "  "}
	case FormatYAML:
		return &YAMLFormatter{}
	case FormatMarkdown:
		return &MarkdownFormatter{}
	default:
		return &TableFormatter{}
	}
}

// JSONFormatter writes indented JSON.
type JSONFormatter struct {
	Indent string
}

// Format implements Formatter.
func (f *JSONFormatter) Format(w io.Writer, data any) error {
	enc := json.NewEncoder(w)
	if f.Indent != "" {
		enc.SetIndent("", f.Indent)
	}
	return enc.Encode(structured(data))
}

// YAMLFormatter writes YAML with two-space indentation.
type YAMLFormatter struct{}

// Format implements Formatter.
func (f *YAMLFormatter) Format(w io.Writer, data any) error {
	out, err := yaml.MarshalWithOptions(structured(data), yaml.Indent(2), yaml.IndentSequence(false))
	if err != nil {
		return fmt.Errorf("encoding yaml: %w", err)
	}
	_, err = w.Write(out)
	return err
}

// structured returns what JSON and YAML encode: a report's source value
// instead of its rendered tables.
func structured(data any) any {
	if r, ok := data.(*Report); ok && r.Source != nil {
		return r.Source
	}
	return data
}

// DetectFormat returns the explicit format, or table on a terminal and
// JSON when stdout is piped.
func DetectFormat(explicit string) Format {
	if explicit != "" {
		return Format(strings.ToLower(explicit))
	}
	if IsTerminal(os.Stdout) {
		return FormatTable
	}
	return FormatJSON
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// ParseFormat validates a user supplied format name. The empty name means
// auto-detect.
func ParseFormat(s string) (Format, error) {
	switch format := Format(strings.ToLower(s)); format {
	case FormatTable, FormatJSON, FormatYAML, FormatMarkdown, "":
		return format, nil
	}
	return "", fmt.Errorf("invalid format %q: must be one of: table, json, yaml, markdown", s)
}

// Title turns a snake_case label such as "to_add" into "To Add".
func Title(label string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(label, "_", " "))
}
