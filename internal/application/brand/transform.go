package brand

import (
	"math"
	"sort"
	"strings"

	domain "github.com/400brands/brand-doctor/internal/domain/brand"
)

// Bullets appended after the service line on every recommendation card.
var standardBullets = []string{"Free technical consultation", "Ongoing support for 30 days"}

// Transform turns a parsed model reply into the results view-model.
func Transform(raw *RawAnalysis, req domain.AnalysisRequest, opts domain.Options) *domain.Analysis {
	score := clampScore(derefOr(raw.Score, 0))
	medal := domain.MedalFor(score)

	a := &domain.Analysis{
		BrandName:   req.BrandName,
		Industry:    req.Industry,
		Location:    req.Location,
		Score:       score,
		Medal:       medal,
		Headline:    domain.Headline(medal),
		Summary:     strings.TrimSpace(raw.Summary),
		FreeMetrics: transformMetrics(raw.FreeMetrics, false, true),
		PaidMetrics: transformMetrics(raw.PaidMetrics, true, opts.PaidMetricsVisible),
		Competitors: transformCompetitors(raw.Competitors, req.Industry),
		Source:      domain.SourceAI,
	}

	if len(raw.Recommendations) == 0 {
		a.Recommendations = FallbackRecommendations(score)
	} else {
		a.Recommendations = transformRecommendations(raw.Recommendations)
	}
	return a
}

func transformMetrics(in []RawMetric, paid, visible bool) []domain.BenchmarkCategory {
	out := make([]domain.BenchmarkCategory, 0, len(in))
	for _, m := range in {
		items := make([]domain.BenchmarkItem, 0, len(m.Items))
		for _, it := range m.Items {
			items = append(items, domain.BenchmarkItem{
				Text:    strings.TrimSpace(it.Text),
				Present: it.Present,
				Impact:  strings.TrimSpace(it.Impact),
			})
		}

		var score int
		if m.Score != nil {
			score = clampScore(*m.Score)
		} else {
			score = itemScore(items)
		}

		leak := strings.TrimSpace(m.MoneyLeak)
		if leak == "" {
			leak = domain.MetricLeak(m.Title)
		}

		cat := domain.BenchmarkCategory{
			Title:     strings.TrimSpace(m.Title),
			Score:     score,
			Items:     items,
			MoneyLeak: leak,
			Icon:      domain.MetricIcon(m.Title),
			Paid:      paid,
		}
		if !visible {
			cat = lock(cat)
		}
		out = append(out, cat)
	}
	return out
}

// lock hides the checklist and leak copy of a premium metric.
func lock(c domain.BenchmarkCategory) domain.BenchmarkCategory {
	c.Items = []domain.BenchmarkItem{}
	c.MoneyLeak = ""
	c.Locked = true
	return c
}

// itemScore is the share of present items, as a percentage.
func itemScore(items []domain.BenchmarkItem) int {
	if len(items) == 0 {
		return 0
	}
	present := 0
	for _, it := range items {
		if it.Present {
			present++
		}
	}
	return int(math.Round(float64(present) * 100 / float64(len(items))))
}

func transformCompetitors(in []RawCompetitor, industry string) []domain.CompetitorProfile {
	out := make([]domain.CompetitorProfile, 0, len(in))
	for _, c := range in {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			continue
		}
		ind := strings.TrimSpace(c.Industry)
		if ind == "" {
			ind = industry
		}
		reviews := c.Reviews
		if reviews < 0 {
			reviews = 0
		}
		strengths := c.Strengths
		if strengths == nil {
			strengths = []string{}
		}
		out = append(out, domain.CompetitorProfile{
			Name:        name,
			Industry:    ind,
			Score:       clampScore(derefOr(c.Score, 0)),
			Rating:      clampRating(c.Rating),
			ReviewCount: reviews,
			Description: strings.TrimSpace(c.Description),
			Strengths:   strengths,
			Verified:    c.Verified,
		})
	}
	return out
}

func transformRecommendations(in []RawRecommendation) []domain.ServiceRecommendation {
	out := make([]domain.ServiceRecommendation, 0, len(in))
	for i, r := range in {
		title := strings.TrimSpace(r.Title)
		tier := ClassifyTier(title, r.Description, r.Service)

		rec := domain.ServiceRecommendation{
			Title:              title,
			Description:        strings.TrimSpace(r.Description),
			Service:            strings.TrimSpace(r.Service),
			PlanName:           strings.TrimSpace(r.PlanName),
			Price:              strings.TrimSpace(r.Price),
			Tier:               tier.Name,
			Icon:               strings.TrimSpace(r.Icon),
			Priority:           r.Priority,
			RelevantBenchmarks: r.RelevantBenchmarks,
		}
		if rec.Price == "" {
			rec.Price = tier.Price()
		}
		if rec.Icon == "" {
			rec.Icon = ClassifyIcon(rec.Title, rec.Description)
		}
		if rec.Priority <= 0 {
			rec.Priority = i + 1
		}
		if rec.PlanName == "" {
			rec.PlanName = "🔹 " + rec.Title
		}
		rec.ServiceBullets = serviceBullets(rec.Service)
		out = append(out, rec)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Priority < out[j].Priority })
	return out
}

func serviceBullets(service string) []string {
	bullets := make([]string, 0, len(standardBullets)+1)
	if service != "" {
		bullets = append(bullets, service)
	}
	return append(bullets, standardBullets...)
}

type fallbackRec struct {
	minScore int
	recs     []domain.ServiceRecommendation
}

// Highest band first.
var fallbackTable = []fallbackRec{
	{minScore: 75, recs: []domain.ServiceRecommendation{{
		Title:       "Brand Authority Accelerator",
		Description: "Your foundation is solid. Lock in market leadership with advanced search positioning, thought-leadership content and reputation management.",
		Service:     "Advanced SEO, content and reputation management",
		Tier:        TierPremium.Name,
		Price:       TierPremium.Price(),
	}}},
	{minScore: 60, recs: []domain.ServiceRecommendation{{
		Title:       "Conversion Growth Bundle",
		Description: "Turn existing attention into sales with a conversion-focused landing page, lead capture and follow-up campaigns.",
		Service:     "Landing page, lead capture and email funnel",
		Tier:        TierGrowth.Name,
		Price:       TierGrowth.Price(),
	}}},
	{minScore: 0, recs: []domain.ServiceRecommendation{{
		Title:       "Starter Launch Package",
		Description: "Get found and look credible with a professional one-page site, a claimed Google listing and consistent branding.",
		Service:     "One-page website and Google Business Profile",
		Tier:        TierStarter.Name,
		Price:       TierStarter.Price(),
	}}},
}

var consultationRec = domain.ServiceRecommendation{
	Title:       "Brand Strategy Consultation",
	Description: "A one-hour session with a strategist to walk through this report and plan your next 90 days.",
	Service:     "One-hour strategy call",
	Tier:        TierConsultation.Name,
	Price:       TierConsultation.Price(),
}

// FallbackRecommendations is used when the model returns no recommendations.
func FallbackRecommendations(score int) []domain.ServiceRecommendation {
	var picked []domain.ServiceRecommendation
	for _, band := range fallbackTable {
		if score >= band.minScore {
			picked = append(picked, band.recs...)
			break
		}
	}
	picked = append(picked, consultationRec)

	out := make([]domain.ServiceRecommendation, 0, len(picked))
	for i, r := range picked {
		r.Priority = i + 1
		r.PlanName = "🔹 " + r.Title
		r.Icon = ClassifyIcon(r.Title, r.Description)
		r.ServiceBullets = serviceBullets(r.Service)
		out = append(out, r)
	}
	return out
}

func clampScore(v float64) int {
	if math.IsNaN(v) {
		return 0
	}
	r := int(math.Round(v))
	switch {
	case r < 0:
		return 0
	case r > 100:
		return 100
	default:
		return r
	}
}

func clampRating(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 5:
		return 5
	default:
		return math.Round(v*10) / 10
	}
}

func derefOr(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}
