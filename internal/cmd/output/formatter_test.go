package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/regdiff"
	"github.com/agentstation/regdiff/pkg/reconcile"
)

func samplePreview() *regdiff.Preview {
	summary := &reconcile.Summary{
		ToAdd:      []string{"alpha1", "gamma"},
		Duplicates: []string{"beta"},
		Similar:    map[string][]string{"alpha1": {"alpha"}},
		InputDups:  map[string]int{"gamma": 2},
	}
	registry := []string{"alpha", "beta"}
	return &regdiff.Preview{
		Summary:   summary,
		Stats:     reconcile.NewStats(registry, []string{"alpha1", "gamma", "gamma", "beta"}, summary),
		Diff:      "--- registry.txt\n+++ registry(updated).txt\n@@ -1,2 +1,4 @@\n alpha\n+alpha1\n beta\n+gamma\n",
		FromLabel: "registry.txt",
		ToLabel:   "registry(updated).txt",
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"table", FormatTable, false},
		{"JSON", FormatJSON, false},
		{"yaml", FormatYAML, false},
		{"markdown", FormatMarkdown, false},
		{"", "", false},
		{"wide", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetectFormat(t *testing.T) {
	assert.Equal(t, FormatYAML, DetectFormat("YAML"))
	assert.False(t, IsTerminal(&bytes.Buffer{}))
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "To Add", Title("to_add"))
	assert.Equal(t, "Input Duplicates", Title("input_duplicates"))
}

func TestNewFormatter(t *testing.T) {
	assert.IsType(t, &JSONFormatter{}, NewFormatter(FormatJSON))
	assert.IsType(t, &YAMLFormatter{}, NewFormatter(FormatYAML))
	assert.IsType(t, &MarkdownFormatter{}, NewFormatter(FormatMarkdown))
	assert.IsType(t, &TableFormatter{}, NewFormatter(FormatTable))
	assert.IsType(t, &TableFormatter{}, NewFormatter("unknown"))
}

func TestPreviewReportJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatJSON).Format(&buf, PreviewReport(samplePreview(), false)))

	var decoded struct {
		Summary reconcile.Summary `json:"summary"`
		Stats   reconcile.Stats   `json:"stats"`
		Diff    string            `json:"diff"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, []string{"alpha1", "gamma"}, decoded.Summary.ToAdd)
	assert.Equal(t, []string{"beta"}, decoded.Summary.Duplicates)
	assert.Equal(t, 4, decoded.Stats.UpdatedTotal)
	assert.Contains(t, decoded.Diff, "+gamma")
}

func TestPreviewReportYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatYAML).Format(&buf, PreviewReport(samplePreview(), false)))

	out := buf.String()
	assert.Contains(t, out, "to_add:")
	assert.Contains(t, out, "- alpha1")
	assert.Contains(t, out, "input_dups:")
}

func TestPreviewReportTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatTable).Format(&buf, PreviewReport(samplePreview(), true)))

	out := buf.String()
	assert.Contains(t, out, "Statistics:")
	assert.Contains(t, out, "To Add:")
	assert.Contains(t, out, "Similar:")
	assert.Contains(t, out, "Input Duplicates:")
	assert.Contains(t, out, "Registry names")
	assert.Contains(t, out, "gamma")
	assert.Contains(t, out, "alpha1")
	assert.Contains(t, out, "Diff:\n--- registry.txt\n")
}

func TestPreviewReportTableEmptySections(t *testing.T) {
	summary := &reconcile.Summary{ToAdd: []string{}, Duplicates: []string{}, Similar: map[string][]string{}}
	p := &regdiff.Preview{Summary: summary, Stats: reconcile.NewStats(nil, nil, summary)}

	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatTable).Format(&buf, PreviewReport(p, false)))
	assert.Contains(t, buf.String(), "(none)")
	assert.NotContains(t, buf.String(), "Input Duplicates:")
}

func TestPreviewReportMarkdown(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatMarkdown).Format(&buf, PreviewReport(samplePreview(), true)))

	out := buf.String()
	assert.Contains(t, out, "# Registry preview")
	assert.Contains(t, out, "## To Add")
	assert.Contains(t, out, "## Similar")
	assert.Contains(t, out, "alpha1")
	assert.Contains(t, out, "```diff")
	assert.Contains(t, out, "+gamma")
}

func TestApplyReport(t *testing.T) {
	res := &regdiff.ApplyResult{
		Path:              "/tmp/registry.txt",
		BackupPath:        "/tmp/registry.txt.bak",
		Original:          2,
		Added:             1,
		DuplicatesIgnored: 1,
		UpdatedTotal:      3,
		Sorted:            true,
	}

	t.Run("table", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewFormatter(FormatTable).Format(&buf, ApplyReport(res)))
		assert.Contains(t, buf.String(), "/tmp/registry.txt.bak")
		assert.Contains(t, buf.String(), "Updated total")
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewFormatter(FormatJSON).Format(&buf, ApplyReport(res)))

		var decoded map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
		assert.Equal(t, "/tmp/registry.txt", decoded["path"])
		assert.EqualValues(t, 3, decoded["updated_total"])
		assert.NotContains(t, decoded, "warning")
	})
}

func TestTableFormatterStructFallback(t *testing.T) {
	type row struct {
		Name   string `json:"name"`
		Count  int    `json:"count,omitempty"`
		hidden string
	}

	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatTable).Format(&buf, []row{{Name: "alpha", Count: 2, hidden: "x"}}))
	assert.Contains(t, buf.String(), "alpha")

	buf.Reset()
	require.NoError(t, NewFormatter(FormatMarkdown).Format(&buf, row{Name: "beta", Count: 1}))
	assert.Contains(t, buf.String(), "beta")
}
