package brand

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/400brands/brand-doctor/internal/domain/brand"
)

func TestHeuristicScore_RangeAndStable(t *testing.T) {
	names := []string{"Acme", "Jumia", "Kilimanjaro Foods", "zz", "Ọja Oko", "400Brands"}
	for _, n := range names {
		s := HeuristicScore(n)
		assert.GreaterOrEqual(t, s, 30, n)
		assert.LessOrEqual(t, s, 79, n)
		assert.Equal(t, s, HeuristicScore("  "+n+"  "))
	}
}

func TestHeuristic(t *testing.T) {
	req := testRequest()

	a := Heuristic(req, domain.Options{})

	assert.Equal(t, domain.SourceHeuristic, a.Source)
	assert.Equal(t, HeuristicScore("Acme"), a.Score)
	assert.Equal(t, domain.MedalFor(a.Score), a.Medal)
	require.Len(t, a.FreeMetrics, 6)
	require.Len(t, a.PaidMetrics, 4)
	for _, pm := range a.PaidMetrics {
		assert.True(t, pm.Locked)
	}
	for _, fm := range a.FreeMetrics {
		assert.Len(t, fm.Items, 3)
		assert.GreaterOrEqual(t, fm.Score, 0)
		assert.LessOrEqual(t, fm.Score, 100)
	}
	assert.NotEmpty(t, a.Recommendations)
	assert.Contains(t, a.Summary, "Kenya")
	assert.Equal(t, a, Heuristic(req, domain.Options{}))
}
