package alerts

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/regdiff/internal/cmd/output"
	pkgerrors "github.com/agentstation/regdiff/pkg/errors"
)

func TestAlertString(t *testing.T) {
	assert.Equal(t, "i Nothing to apply", NewInfo("Nothing to apply").String())
	assert.Equal(t, "! Backup failed: disk full",
		NewWarning("Backup failed").WithError(errors.New("disk full")).String())
}

func TestLevelString(t *testing.T) {
	tests := []struct {
		level Level
		want  string
	}{
		{LevelError, "error"},
		{LevelWarning, "warning"},
		{LevelInfo, "info"},
		{LevelSuccess, "success"},
		{Level(42), "unknown(42)"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.level.String())
		})
	}
}

func TestFormatWriter(t *testing.T) {
	alert := NewSuccess("Registry updated").WithDetails("Added: 2", "Updated total: 5")

	t.Run("plain", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewFormatWriter(&buf, output.FormatTable).WriteAlert(alert))
		assert.Equal(t, "✓ Registry updated\n   Added: 2\n   Updated total: 5\n", buf.String())
	})

	t.Run("plain without details", func(t *testing.T) {
		var buf bytes.Buffer
		fw := NewFormatWriter(&buf, output.FormatTable).WithConfig(WriterConfig{})
		require.NoError(t, fw.WriteAlert(alert))
		assert.Equal(t, "✓ Registry updated\n", buf.String())
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewFormatWriter(&buf, output.FormatJSON).WriteAlert(alert))

		var decoded record
		require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
		assert.Equal(t, "success", decoded.Level)
		assert.Equal(t, []string{"Added: 2", "Updated total: 5"}, decoded.Details)
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewFormatWriter(&buf, output.FormatYAML).WriteAlert(NewInfo("Nothing to export")))
		assert.Contains(t, buf.String(), "level: info")
		assert.Contains(t, buf.String(), "message: Nothing to export")
	})
}

func TestFromError(t *testing.T) {
	t.Run("no-op is informational", func(t *testing.T) {
		alert := FromError(pkgerrors.NewNoOpError("apply", "nothing to apply"))
		assert.Equal(t, LevelInfo, alert.Level)
		assert.Equal(t, "i Nothing to apply", alert.String())
	})

	t.Run("backup warning names the file", func(t *testing.T) {
		cause := errors.New("read-only file system")
		err := pkgerrors.NewWarning("backup", pkgerrors.NewIOError("commit", "registry.txt.bak", cause))

		alert := FromError(err)
		assert.Equal(t, LevelWarning, alert.Level)
		assert.Equal(t, "! Backup failed: read-only file system", alert.String())
		assert.Equal(t, []string{"File: registry.txt.bak"}, alert.Details)
	})

	t.Run("anything else is an error", func(t *testing.T) {
		alert := FromError(errors.New("boom"))
		assert.Equal(t, LevelError, alert.Level)
		assert.Equal(t, "✗ Command failed: boom", alert.String())
	})
}

func TestNoColor(t *testing.T) {
	var buf bytes.Buffer
	fw := NewFormatWriter(&buf, output.FormatTable).WithConfig(WriterConfig{UseColor: true}).NoColor(true)
	require.NoError(t, fw.WriteError(pkgerrors.NewNoOpError("export", "nothing to export")))
	assert.Equal(t, "i Nothing to export\n", buf.String())
}
