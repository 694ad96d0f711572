package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

// TestLogger is a JSON logger whose output is captured for assertions.
type TestLogger struct {
	*zerolog.Logger
	Buffer *bytes.Buffer
}

// NewTestLogger creates a logger that captures every level.
func NewTestLogger(t testing.TB) *TestLogger {
	t.Helper()

	buf := &bytes.Buffer{}
	oldLevel := zerolog.GlobalLevel()
	zerolog.SetGlobalLevel(zerolog.TraceLevel)
	t.Cleanup(func() {
		zerolog.SetGlobalLevel(oldLevel)
	})

	logger := zerolog.New(buf).Level(zerolog.TraceLevel)
	return &TestLogger{Logger: &logger, Buffer: buf}
}

// Output returns the captured log output as a string
func (tl *TestLogger) Output() string {
	return tl.Buffer.String()
}

// Lines returns the captured log output as individual lines
func (tl *TestLogger) Lines() []string {
	output := strings.TrimSpace(tl.Output())
	if output == "" {
		return []string{}
	}
	return strings.Split(output, "\n")
}

// Entries decodes the captured lines. Lines that are not JSON are skipped.
func (tl *TestLogger) Entries() []map[string]any {
	var entries []map[string]any
	for _, line := range tl.Lines() {
		var entry map[string]any
		if err := json.Unmarshal([]byte(line), &entry); err == nil {
			entries = append(entries, entry)
		}
	}
	return entries
}

// Find returns the first entry logged with message msg, or nil.
func (tl *TestLogger) Find(msg string) map[string]any {
	for _, entry := range tl.Entries() {
		if entry[zerolog.MessageFieldName] == msg {
			return entry
		}
	}
	return nil
}

// Contains checks if the log output contains the given string
func (tl *TestLogger) Contains(substr string) bool {
	return strings.Contains(tl.Output(), substr)
}

// Count returns the number of log entries
func (tl *TestLogger) Count() int {
	return len(tl.Lines())
}

// AssertContains asserts that the log contains the given string
func (tl *TestLogger) AssertContains(t testing.TB, substr string) {
	t.Helper()
	if !tl.Contains(substr) {
		t.Errorf("Log output does not contain %q\nOutput:\n%s", substr, tl.Output())
	}
}
