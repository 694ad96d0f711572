package similarity

import (
	"strings"

	"github.com/agext/levenshtein"
	"github.com/pmezard/go-difflib/difflib"

	"github.com/agentstation/regdiff/pkg/errors"
)

// Metric selects the string similarity score used by a Matcher.
type Metric string

// Supported metrics.
const (
	// MetricRatio is the sequence-matcher ratio 2*M/T, where M counts the
	// characters in matching blocks and T is the combined length.
	MetricRatio Metric = "ratio"

	// MetricLevenshtein is 1 - editDistance/maxLength.
	MetricLevenshtein Metric = "levenshtein"
)

// Metrics lists the supported metrics in display order.
var Metrics = []Metric{MetricRatio, MetricLevenshtein}

// String returns the metric name.
func (m Metric) String() string {
	return string(m)
}

// Validate reports whether m names a supported metric.
func (m Metric) Validate() error {
	switch m {
	case MetricRatio, MetricLevenshtein:
		return nil
	}
	return errors.NewValidationError("similarity_metric", string(m), "unknown metric, expected ratio or levenshtein")
}

// ParseMetric converts a case-insensitive name to a Metric. An empty name
// selects MetricRatio.
func ParseMetric(s string) (Metric, error) {
	if s == "" {
		return MetricRatio, nil
	}
	m := Metric(strings.ToLower(strings.TrimSpace(s)))
	if err := m.Validate(); err != nil {
		return "", err
	}
	return m, nil
}

// Score returns the similarity of a and b under metric m, in [0,1].
// Identical strings score 1.
func Score(m Metric, a, b string) float64 {
	if m == MetricLevenshtein {
		return levenshtein.Similarity(a, b, nil)
	}
	return Ratio(a, b)
}

// Ratio returns the sequence-matcher ratio of a and b computed over runes.
func Ratio(a, b string) float64 {
	return difflib.NewMatcher(runes(a), runes(b)).Ratio()
}

// runes splits s into one element per code point.
func runes(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}
