package brand

import "time"

// AnalysisID identifier type
type AnalysisID string

// Source tells where an analysis came from.
type Source string

const (
	SourceAI        Source = "ai"
	SourceHeuristic Source = "heuristic"
)

// Location value object
type Location struct {
	CountryName string `json:"country_name"`
	CountryCode string `json:"country_code"`
	City        string `json:"city"`
	Region      string `json:"region"`
	Fallback    bool   `json:"fallback"`
}

// DefaultLocation is used whenever geolocation fails.
var DefaultLocation = Location{
	CountryName: "Nigeria",
	CountryCode: "NG",
	City:        "Lagos",
	Region:      "Lagos",
}

type BenchmarkItem struct {
	Text    string `json:"text"`
	Present bool   `json:"present"`
	Impact  string `json:"impact,omitempty"`
}

// BenchmarkCategory is one scored dimension of brand health.
type BenchmarkCategory struct {
	Title     string          `json:"title"`
	Score     int             `json:"score"`
	Items     []BenchmarkItem `json:"items"`
	MoneyLeak string          `json:"moneyLeak"`
	Icon      string          `json:"icon"`
	Paid      bool            `json:"isPaid"`
	Locked    bool            `json:"locked,omitempty"`
}

// HasLeak reports whether any checklist item is missing.
func (b BenchmarkCategory) HasLeak() bool {
	for _, it := range b.Items {
		if !it.Present {
			return true
		}
	}
	return false
}

type CompetitorProfile struct {
	Name        string   `json:"name"`
	Industry    string   `json:"industry"`
	Score       int      `json:"score"`
	Rating      float64  `json:"rating"`
	ReviewCount int      `json:"reviews"`
	Description string   `json:"description"`
	Strengths   []string `json:"strengths"`
	Verified    bool     `json:"verified"`
}

type ServiceRecommendation struct {
	Title              string   `json:"title"`
	Description        string   `json:"description"`
	Service            string   `json:"service"`
	ServiceBullets     []string `json:"serviceBullets"`
	PlanName           string   `json:"planName"`
	Price              string   `json:"price"`
	Tier               string   `json:"tier"`
	Icon               string   `json:"icon"`
	Priority           int      `json:"priority"`
	RelevantBenchmarks []string `json:"relevantBenchmarks,omitempty"`
}

// Analysis is the view-model returned to the results page.
type Analysis struct {
	ID              AnalysisID              `json:"id"`
	BrandName       string                  `json:"brandName"`
	Industry        string                  `json:"industry"`
	Location        Location                `json:"location"`
	Score           int                     `json:"score"`
	Medal           Medal                   `json:"medal"`
	Headline        string                  `json:"headline"`
	Summary         string                  `json:"summary"`
	FreeMetrics     []BenchmarkCategory     `json:"freeMetrics"`
	PaidMetrics     []BenchmarkCategory     `json:"paidMetrics"`
	Competitors     []CompetitorProfile     `json:"competitors"`
	Recommendations []ServiceRecommendation `json:"recommendations"`
	Source          Source                  `json:"source"`
	Cached          bool                    `json:"cached"`
	CreatedAt       time.Time               `json:"createdAt"`
}
