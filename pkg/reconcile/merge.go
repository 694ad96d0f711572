package reconcile

import (
	"sort"

	"github.com/agentstation/regdiff/pkg/names"
)

// Merge returns the updated registry: registry plus toAdd, without repeats.
// With sortOutput the result is sorted; otherwise registry order is kept
// and new names follow in their given order.
func Merge(registry, toAdd []string, sortOutput bool) []string {
	combined := make([]string, 0, len(registry)+len(toAdd))
	combined = append(combined, registry...)
	combined = append(combined, toAdd...)

	updated := names.Unique(combined)
	if sortOutput {
		sort.Strings(updated)
	}
	return updated
}

// PreviewTarget returns the sorted, repeat-free union of registry and toAdd.
// Previews diff the registry against this projection whatever the save
// ordering will be.
func PreviewTarget(registry, toAdd []string) []string {
	return Merge(registry, toAdd, true)
}
