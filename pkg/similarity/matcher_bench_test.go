package similarity_test

import (
	"fmt"
	"testing"

	"github.com/agentstation/regdiff/pkg/similarity"
)

func benchmarkReference(n int) []string {
	reference := make([]string, n)
	for i := range reference {
		reference[i] = fmt.Sprintf("registry-entry-%05d", i)
	}
	return reference
}

func BenchmarkFindRatio(b *testing.B) {
	reference := benchmarkReference(1000)
	m := similarity.New()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = m.Find("registry-entry-0042x", reference)
	}
}

func BenchmarkFindLevenshtein(b *testing.B) {
	reference := benchmarkReference(1000)
	m := similarity.New(similarity.WithMetric(similarity.MetricLevenshtein))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = m.Find("registry-entry-0042x", reference)
	}
}
