// Package similarity finds registry names that are textually close to a
// candidate name.
//
// The default metric is the sequence-matcher ratio used by common
// "close matches" helpers: two strings score 2*M/T, where M is the number of
// characters in matching blocks and T the total number of characters. An
// edit-distance metric is available as an alternative. Both give 1.0 for
// identical strings and approach 0 for disjoint ones.
package similarity

import (
	"sort"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/agentstation/regdiff/pkg/constants"
)

// Match is one reference name scored against a candidate.
type Match struct {
	Name  string  `json:"name" yaml:"name"`
	Score float64 `json:"score" yaml:"score"`
}

// Matcher returns the reference names most similar to a candidate.
// A Matcher is immutable and safe for concurrent use.
type Matcher struct {
	threshold float64
	limit     int
	metric    Metric
}

// Option configures a Matcher.
type Option func(*Matcher)

// WithThreshold sets the minimum score a reference name needs to be
// returned. Values outside [0,1] are clamped.
func WithThreshold(threshold float64) Option {
	return func(m *Matcher) {
		switch {
		case threshold < 0:
			threshold = 0
		case threshold > 1:
			threshold = 1
		}
		m.threshold = threshold
	}
}

// WithLimit bounds the number of matches returned. Non-positive values keep
// the default.
func WithLimit(limit int) Option {
	return func(m *Matcher) {
		if limit > 0 {
			m.limit = limit
		}
	}
}

// WithMetric selects the similarity metric. Unknown metrics fall back to
// MetricRatio; validate user input with ParseMetric first.
func WithMetric(metric Metric) Option {
	return func(m *Matcher) {
		if metric.Validate() == nil {
			m.metric = metric
		}
	}
}

// New creates a Matcher with the default threshold, limit and metric.
func New(opts ...Option) *Matcher {
	m := &Matcher{
		threshold: constants.DefaultSimilarityThreshold,
		limit:     constants.MaxSimilarMatches,
		metric:    MetricRatio,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Threshold returns the configured minimum score.
func (m *Matcher) Threshold() float64 { return m.threshold }

// Limit returns the configured maximum number of matches.
func (m *Matcher) Limit() int { return m.limit }

// Metric returns the configured metric.
func (m *Matcher) Metric() Metric { return m.metric }

// Find scores name against every distinct reference name and returns up to
// Limit matches at or above Threshold, best first. The candidate itself is
// never returned. Equal scores are ordered by descending name.
func (m *Matcher) Find(name string, reference []string) []Match {
	if len(reference) == 0 {
		return nil
	}

	var matches []Match
	if m.metric == MetricRatio {
		matches = m.findRatio(name, reference)
	} else {
		matches = m.findScored(name, reference)
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].Name > matches[j].Name
	})
	if len(matches) > m.limit {
		matches = matches[:m.limit]
	}
	return matches
}

// Names is Find without the scores.
func (m *Matcher) Names(name string, reference []string) []string {
	matches := m.Find(name, reference)
	if len(matches) == 0 {
		return nil
	}
	out := make([]string, len(matches))
	for i, match := range matches {
		out[i] = match.Name
	}
	return out
}

// findRatio reuses one sequence matcher with the candidate as the second
// sequence, so its index is built once, and skips references whose cheap
// upper bounds already fall below the threshold.
func (m *Matcher) findRatio(name string, reference []string) []Match {
	sm := difflib.NewMatcher(nil, nil)
	sm.SetSeq2(runes(name))

	var matches []Match
	seen := make(map[string]struct{}, len(reference))
	for _, ref := range reference {
		if ref == name {
			continue
		}
		if _, ok := seen[ref]; ok {
			continue
		}
		seen[ref] = struct{}{}

		sm.SetSeq1(runes(ref))
		if sm.RealQuickRatio() < m.threshold || sm.QuickRatio() < m.threshold {
			continue
		}
		if score := sm.Ratio(); score >= m.threshold {
			matches = append(matches, Match{Name: ref, Score: score})
		}
	}
	return matches
}

func (m *Matcher) findScored(name string, reference []string) []Match {
	var matches []Match
	seen := make(map[string]struct{}, len(reference))
	for _, ref := range reference {
		if ref == name {
			continue
		}
		if _, ok := seen[ref]; ok {
			continue
		}
		seen[ref] = struct{}{}

		if score := Score(m.metric, name, ref); score >= m.threshold {
			matches = append(matches, Match{Name: ref, Score: score})
		}
	}
	return matches
}
