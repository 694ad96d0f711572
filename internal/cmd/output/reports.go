package output

import (
	"sort"
	"strconv"
	"strings"

	"github.com/agentstation/regdiff"
	"github.com/agentstation/regdiff/pkg/reconcile"
)

// PreviewReport renders a preview. The diff section is only included
// when withDiff is set.
func PreviewReport(p *regdiff.Preview, withDiff bool) *Report {
	report := &Report{Title: "Registry preview", Source: p}

	report.AddTable("statistics", StatsData(p.Stats))
	report.AddTable("to_add", namesData(p.Summary.ToAdd))
	report.AddTable("duplicates", namesData(p.Summary.Duplicates))
	report.AddTable("similar", similarData(p.Summary))
	if p.Summary.InputDups != nil {
		report.AddTable("input_duplicates", inputDupsData(p.Summary.InputDups))
	}
	if withDiff {
		report.AddText("diff", p.Diff, "diff")
	}
	return report
}

// ApplyReport renders the result of an apply.
func ApplyReport(r *regdiff.ApplyResult) *Report {
	rows := [][]string{
		{"Path", r.Path},
		{"Original", strconv.Itoa(r.Original)},
		{"Added", strconv.Itoa(r.Added)},
		{"Duplicates ignored", strconv.Itoa(r.DuplicatesIgnored)},
		{"Updated total", strconv.Itoa(r.UpdatedTotal)},
		{"Sorted", strconv.FormatBool(r.Sorted)},
	}
	if r.BackupPath != "" {
		rows = append(rows, []string{"Backup", r.BackupPath})
	}
	if r.Warning != "" {
		rows = append(rows, []string{"Warning", r.Warning})
	}

	report := &Report{Title: "Registry updated", Source: r}
	report.AddTable("result", Data{
		Headers:         []string{"Property", "Value"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignLeft},
	})
	return report
}

// StatsData renders reconciliation statistics as label/value rows.
func StatsData(s reconcile.Stats) Data {
	rows := make([][]string, 0, 7)
	for _, line := range s.Lines() {
		label, value, _ := strings.Cut(line, ": ")
		rows = append(rows, []string{label, value})
	}
	return Data{
		Headers:         []string{"Metric", "Count"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignRight},
	}
}

func namesData(list []string) Data {
	rows := make([][]string, 0, len(list))
	for _, name := range list {
		rows = append(rows, []string{name})
	}
	return Data{Headers: []string{"Name"}, Rows: rows}
}

func similarData(s *reconcile.Summary) Data {
	keys := s.SimilarKeys()
	rows := make([][]string, 0, len(keys))
	for _, name := range keys {
		rows = append(rows, []string{name, strings.Join(s.Similar[name], ", ")})
	}
	return Data{Headers: []string{"Name", "Similar To"}, Rows: rows}
}

func inputDupsData(dups map[string]int) Data {
	keys := make([]string, 0, len(dups))
	for name := range dups {
		keys = append(keys, name)
	}
	sort.Strings(keys)

	rows := make([][]string, 0, len(keys))
	for _, name := range keys {
		rows = append(rows, []string{name, strconv.Itoa(dups[name])})
	}
	return Data{
		Headers:         []string{"Name", "Count"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignRight},
	}
}
