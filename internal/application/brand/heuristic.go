package brand

import (
	"fmt"
	"hash/fnv"
	"strings"

	domain "github.com/400brands/brand-doctor/internal/domain/brand"
)

const (
	heuristicMin  = 30
	heuristicSpan = 50
)

// HeuristicScore derives a stable score in [30, 79] from the brand name.
func HeuristicScore(brandName string) int {
	return heuristicMin + int(hashOf(strings.ToLower(strings.TrimSpace(brandName)))%heuristicSpan)
}

// Heuristic builds an offline analysis from the static metric catalogue.
// The same request always yields the same result.
func Heuristic(req domain.AnalysisRequest, opts domain.Options) *domain.Analysis {
	score := HeuristicScore(req.BrandName)
	medal := domain.MedalFor(score)
	seed := hashOf(strings.ToLower(req.BrandName) + "|" + strings.ToLower(req.Industry))

	var free, paid []domain.BenchmarkCategory
	for i, m := range domain.Metrics() {
		items := make([]domain.BenchmarkItem, 0, len(m.Checklist))
		for j, text := range m.Checklist {
			bit := uint(i*len(m.Checklist)+j) % 32
			// higher scores keep more items present
			present := seed>>bit&1 == 1 || int((seed>>bit)%100) < score-20
			items = append(items, domain.BenchmarkItem{Text: text, Present: present})
		}

		cat := domain.BenchmarkCategory{
			Title:     m.Title,
			Score:     clampScore(float64((score + itemScore(items)) / 2)),
			Items:     items,
			MoneyLeak: m.MoneyLeak,
			Icon:      m.Icon,
			Paid:      m.Paid,
		}
		if m.Paid {
			if !opts.PaidMetricsVisible {
				cat = lock(cat)
			}
			paid = append(paid, cat)
		} else {
			free = append(free, cat)
		}
	}

	return &domain.Analysis{
		BrandName:       req.BrandName,
		Industry:        req.Industry,
		Location:        req.Location,
		Score:           score,
		Medal:           medal,
		Headline:        domain.Headline(medal),
		Summary:         heuristicSummary(req, score, medal),
		FreeMetrics:     free,
		PaidMetrics:     paid,
		Competitors:     []domain.CompetitorProfile{},
		Recommendations: FallbackRecommendations(score),
		Source:          domain.SourceHeuristic,
	}
}

func heuristicSummary(req domain.AnalysisRequest, score int, medal domain.Medal) string {
	where := req.Location.CountryName
	if where == "" {
		where = domain.DefaultLocation.CountryName
	}
	return fmt.Sprintf("%s scored %d/100 (%s) against %s benchmarks for businesses in %s. %s.",
		req.BrandName, score, medal, strings.ToLower(req.Industry), where, domain.Headline(medal))
}

func hashOf(s string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(s))
	return h.Sum32()
}
