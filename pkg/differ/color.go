package differ

import (
	"bufio"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Colorize writes a unified diff to w, coloring file headers, hunk headers,
// additions and removals. With enabled false the text is written unchanged.
func Colorize(w io.Writer, diff string, enabled bool) error {
	header := newColor(enabled, color.FgWhite, color.Bold)
	hunk := newColor(enabled, color.FgCyan)
	added := newColor(enabled, color.FgGreen)
	removed := newColor(enabled, color.FgRed)

	scanner := bufio.NewScanner(strings.NewReader(diff))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		var err error
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			_, err = header.Fprintln(w, line)
		case strings.HasPrefix(line, "@@"):
			_, err = hunk.Fprintln(w, line)
		case strings.HasPrefix(line, "+"):
			_, err = added.Fprintln(w, line)
		case strings.HasPrefix(line, "-"):
			_, err = removed.Fprintln(w, line)
		default:
			_, err = io.WriteString(w, line+"\n")
		}
		if err != nil {
			return err
		}
	}
	return scanner.Err()
}

func newColor(enabled bool, attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if enabled {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}
