package reconcile

import "fmt"

// Stats counts what a reconciliation would change.
type Stats struct {
	RegistryNames     int `json:"registry_names" yaml:"registry_names"`
	CandidateNames    int `json:"candidate_names" yaml:"candidate_names"`
	InputDupsRemoved  int `json:"input_duplicates_removed" yaml:"input_duplicates_removed"`
	ToAdd             int `json:"to_add" yaml:"to_add"`
	DuplicatesIgnored int `json:"duplicates_ignored" yaml:"duplicates_ignored"`
	SimilarityHints   int `json:"similarity_hints" yaml:"similarity_hints"`
	UpdatedTotal      int `json:"updated_total" yaml:"updated_total"`
}

// NewStats derives statistics from the inputs of a reconciliation and its summary.
func NewStats(registry, candidates []string, summary *Summary) Stats {
	return Stats{
		RegistryNames:     len(registry),
		CandidateNames:    len(candidates),
		InputDupsRemoved:  summary.InputDupsRemoved(),
		ToAdd:             len(summary.ToAdd),
		DuplicatesIgnored: len(summary.Duplicates),
		SimilarityHints:   len(summary.Similar),
		UpdatedTotal:      len(PreviewTarget(registry, summary.ToAdd)),
	}
}

// Lines renders the statistics as label/value lines.
func (s Stats) Lines() []string {
	return []string{
		fmt.Sprintf("Registry names: %d", s.RegistryNames),
		fmt.Sprintf("New names (raw): %d", s.CandidateNames),
		fmt.Sprintf("Input duplicates removed: %d", s.InputDupsRemoved),
		fmt.Sprintf("To add: %d", s.ToAdd),
		fmt.Sprintf("Duplicates ignored: %d", s.DuplicatesIgnored),
		fmt.Sprintf("Similarity hints: %d", s.SimilarityHints),
		fmt.Sprintf("Updated total (sorted unique): %d", s.UpdatedTotal),
	}
}
