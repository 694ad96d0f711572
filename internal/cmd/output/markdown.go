package output

import (
	"io"
	"strings"

	md "github.com/nao1215/markdown"
)

// MarkdownFormatter outputs a markdown document.
type MarkdownFormatter struct{}

// Format implements the Formatter interface for markdown output.
func (f *MarkdownFormatter) Format(w io.Writer, data any) error {
	report, ok := data.(*Report)
	if !ok {
		report = f.toReport(data)
	}

	doc := md.NewMarkdown(w)
	if report.Title != "" {
		doc.H1(report.Title)
	}

	for _, s := range report.Sections {
		if s.Title != "" {
			doc.H2(Title(s.Title))
		}
		switch {
		case s.Data != nil && len(s.Data.Rows) > 0:
			doc.Table(md.TableSet{
				Header: s.Data.Headers,
				Rows:   escapeRows(s.Data.Rows),
			}).LF()
		case s.Text != "":
			doc.CodeBlocks(md.SyntaxHighlight(s.Lang), strings.TrimSuffix(s.Text, "\n"))
		default:
			doc.PlainText(md.Italic("None"))
		}
	}

	return doc.Build()
}

// toReport wraps plain data in a single-section report.
func (f *MarkdownFormatter) toReport(data any) *Report {
	report := &Report{}
	switch v := data.(type) {
	case Data:
		report.AddTable("", v)
	default:
		if d := reflectData(data); d != nil {
			report.AddTable("", *d)
		}
	}
	return report
}

// escapeRows escapes pipe characters that would split markdown cells.
func escapeRows(rows [][]string) [][]string {
	out := make([][]string, len(rows))
	for i, row := range rows {
		out[i] = make([]string, len(row))
		for j, cell := range row {
			out[i][j] = strings.ReplaceAll(cell, "|", `\|`)
		}
	}
	return out
}
