// Package differ renders line-level changes between two name lists as a
// unified diff.
//
// The diff follows the standard format understood by patch and other diff
// tooling: a "---"/"+++" header pair, "@@ -l,s +l,s @@" hunk headers and
// context (" "), removed ("-") and added ("+") lines. Hunks are computed
// with the longest-matching-block sequence matcher, so output is identical
// to other implementations of that algorithm given the same inputs.
package differ

import (
	"github.com/pmezard/go-difflib/difflib"

	"github.com/agentstation/regdiff/pkg/constants"
)

// Differ produces unified diffs with a fixed configuration.
type Differ interface {
	// Diff returns the unified diff from before to after, or the empty
	// string when they are equal.
	Diff(before, after []string) (string, error)
}

// differ is the default implementation of Differ.
type differ struct {
	fromLabel string
	toLabel   string
	context   int
}

// New creates a Differ with the default labels and context size.
func New(opts ...Option) Differ {
	d := &differ{
		fromLabel: constants.DefaultRegistryLabel,
		toLabel:   constants.UpdatedRegistryLabel,
		context:   constants.DefaultContextLines,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Diff implements Differ.
func (d *differ) Diff(before, after []string) (string, error) {
	return Unified(before, after, d.fromLabel, d.toLabel, d.context)
}

// Unified returns the unified diff turning before into after. fromLabel and
// toLabel name the two sides in the header; context is the number of
// unchanged lines shown around each change (negative means 0). Every
// output line, headers included, ends with a newline.
func Unified(before, after []string, fromLabel, toLabel string, context int) (string, error) {
	if context < 0 {
		context = 0
	}
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        terminate(before),
		B:        terminate(after),
		FromFile: fromLabel,
		ToFile:   toLabel,
		Context:  context,
		Eol:      "\n",
	})
}

// terminate appends a newline to every line so each diff line is complete.
func terminate(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = line + "\n"
	}
	return out
}
