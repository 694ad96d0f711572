// Package names turns raw text into registry names and collapses repeats.
//
// A name is a non-empty line with surrounding whitespace removed. Equality
// is exact string comparison: no case or Unicode folding is applied.
package names

import "strings"

// lineBreaks converts CRLF and lone CR line endings to LF.
var lineBreaks = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// Normalize splits text into lines, trims each one and drops the lines
// that are empty after trimming. Order is preserved.
func Normalize(text string) []string {
	out := []string{}
	if text == "" {
		return out
	}
	for _, line := range strings.Split(lineBreaks.Replace(text), "\n") {
		if name := strings.TrimSpace(line); name != "" {
			out = append(out, name)
		}
	}
	return out
}

// Deduplicate returns the unique names in first-occurrence order and the
// occurrence count of every name seen more than once.
func Deduplicate(in []string) ([]string, map[string]int) {
	seen := make(map[string]struct{}, len(in))
	unique := make([]string, 0, len(in))
	dups := make(map[string]int)
	for _, name := range in {
		if _, ok := seen[name]; !ok {
			seen[name] = struct{}{}
			unique = append(unique, name)
			continue
		}
		if dups[name] == 0 {
			dups[name] = 1
		}
		dups[name]++
	}
	return unique, dups
}

// Unique returns the names in first-occurrence order with repeats removed.
func Unique(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, name := range in {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}

// Set builds a membership set from names.
func Set(in []string) map[string]struct{} {
	set := make(map[string]struct{}, len(in))
	for _, name := range in {
		set[name] = struct{}{}
	}
	return set
}

// Join renders names one per line with a single trailing newline.
// An empty list renders as the empty string.
func Join(in []string) string {
	if len(in) == 0 {
		return ""
	}
	return strings.Join(in, "\n") + "\n"
}
