package output

import (
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// Align is a column alignment.
type Align int

// Column alignments. AlignDefault leaves the table's own choice.
const (
	AlignDefault Align = iota
	AlignLeft
	AlignCenter
	AlignRight
)

var twAligns = map[Align]tw.Align{
	AlignDefault: tw.Skip,
	AlignLeft:    tw.AlignLeft,
	AlignCenter:  tw.AlignCenter,
	AlignRight:   tw.AlignRight,
}

// Data is a table: headers, string cells and optional per-column alignment.
type Data struct {
	Headers         []string
	Rows            [][]string
	ColumnAlignment []Align
}

// TableFormatter renders reports section by section and anything else as
// a single table.
type TableFormatter struct{}

// Format implements Formatter. Values that are neither a *Report, Data nor
// a struct (slice) are written as JSON.
func (f *TableFormatter) Format(w io.Writer, data any) error {
	switch v := data.(type) {
	case *Report:
		return f.formatReport(w, v)
	case Data:
		return renderTable(w, v)
	}
	if d := reflectData(data); d != nil {
		return renderTable(w, *d)
	}
	return (&JSONFormatter{Indent: "  "}).Format(w, data)
}

func (f *TableFormatter) formatReport(w io.Writer, r *Report) error {
	for i, s := range r.Sections {
		var head string
		if i > 0 {
			head = "\n"
		}
		if _, err := fmt.Fprintf(w, "%s%s:\n", head, Title(s.Title)); err != nil {
			return err
		}

		var err error
		switch {
		case s.Data != nil && len(s.Data.Rows) > 0:
			err = renderTable(w, *s.Data)
		case s.Text != "":
			_, err = io.WriteString(w, s.Text)
		default:
			_, err = io.WriteString(w, "  (none)\n")
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func renderTable(w io.Writer, data Data) error {
	var config tablewriter.Config
	if n := len(data.ColumnAlignment); n > 0 {
		per := make([]tw.Align, n)
		for i, a := range data.ColumnAlignment {
			per[i] = twAligns[a]
		}
		config.Header.Alignment = tw.CellAlignment{PerColumn: per}
		config.Row.Alignment = tw.CellAlignment{PerColumn: per}
	}

	table := tablewriter.NewTable(w, tablewriter.WithConfig(config))
	if len(data.Headers) > 0 {
		table.Header(cells(data.Headers)...)
	}
	for _, row := range data.Rows {
		if err := table.Append(cells(row)...); err != nil {
			return err
		}
	}
	return table.Render()
}

func cells(row []string) []any {
	out := make([]any, len(row))
	for i, c := range row {
		out[i] = c
	}
	return out
}

// reflectData tabulates a struct as property/value rows and a non-empty
// slice of structs as one row per element. It returns nil for anything else.
func reflectData(data any) *Data {
	v := reflect.ValueOf(data)
	if v.Kind() == reflect.Pointer && !v.IsNil() {
		v = v.Elem()
	}

	switch {
	case v.Kind() == reflect.Struct:
		d := &Data{Headers: []string{"Property", "Value"}}
		for _, col := range columns(v.Type()) {
			d.Rows = append(d.Rows, []string{col.label, fmt.Sprint(v.Field(col.index).Interface())})
		}
		return d

	case v.Kind() == reflect.Slice && v.Len() > 0 && v.Index(0).Kind() == reflect.Struct:
		cols := columns(v.Index(0).Type())
		d := &Data{}
		for _, col := range cols {
			d.Headers = append(d.Headers, col.label)
		}
		for i := 0; i < v.Len(); i++ {
			row := make([]string, len(cols))
			for j, col := range cols {
				row[j] = fmt.Sprint(v.Index(i).Field(col.index).Interface())
			}
			d.Rows = append(d.Rows, row)
		}
		return d
	}
	return nil
}

type column struct {
	label string
	index int
}

// columns lists the exported fields of t not tagged json:"-", labelled by
// their title-cased json name or else their Go name.
func columns(t reflect.Type) []column {
	var cols []column
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if !field.IsExported() || name == "-" {
			continue
		}
		label := field.Name
		if name != "" {
			label = Title(name)
		}
		cols = append(cols, column{label: label, index: i})
	}
	return cols
}
