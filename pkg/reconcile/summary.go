package reconcile

import "sort"

// Summary is the result of reconciling candidates against a registry.
type Summary struct {
	// ToAdd holds the sorted candidates absent from the registry.
	ToAdd []string `json:"to_add" yaml:"to_add"`

	// Duplicates holds the sorted candidates already in the registry.
	Duplicates []string `json:"duplicates" yaml:"duplicates"`

	// Similar maps a ToAdd name to the registry names closest to it, best
	// first. Names without suggestions are absent.
	Similar map[string][]string `json:"similar" yaml:"similar"`

	// InputDups maps each candidate repeated in the raw input to its count.
	// It is nil unless input deduplication was enabled.
	InputDups map[string]int `json:"input_dups,omitempty" yaml:"input_dups,omitempty"`
}

// IsEmpty reports whether the summary has nothing to add and nothing to ignore.
func (s *Summary) IsEmpty() bool {
	return len(s.ToAdd) == 0 && len(s.Duplicates) == 0
}

// SimilarKeys returns the keys of Similar in sorted order.
func (s *Summary) SimilarKeys() []string {
	keys := make([]string, 0, len(s.Similar))
	for k := range s.Similar {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// InputDupsRemoved counts the candidate lines dropped by input deduplication.
func (s *Summary) InputDupsRemoved() int {
	removed := 0
	for _, n := range s.InputDups {
		removed += n - 1
	}
	return removed
}
