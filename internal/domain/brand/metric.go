package brand

import "strings"

// MetricSpec describes one known benchmark category.
type MetricSpec struct {
	Title     string
	Icon      string
	MoneyLeak string
	Checklist []string
	Paid      bool
}

// DefaultMetricIcon is used for titles the catalogue does not know.
const DefaultMetricIcon = "trending-up"

// DefaultMoneyLeak is shown when neither the model nor the catalogue has copy.
const DefaultMoneyLeak = "Gaps in this area are sending ready-to-buy customers to competitors who look more established online."

var metrics = []MetricSpec{
	{
		Title:     "Search Visibility Score",
		Icon:      "search",
		MoneyLeak: "Customers searching for what you sell are finding competitors first, so you lose sales before they ever see your name.",
		Checklist: []string{"Appears on page one for brand name search", "Google Business Profile claimed", "Ranks for at least one service keyword"},
	},
	{
		Title:     "Website Conversion Readiness",
		Icon:      "mouse-pointer",
		MoneyLeak: "Visitors who reach your site leave without a clear way to buy, book or contact you.",
		Checklist: []string{"Working website on a custom domain", "Clear call to action above the fold", "Mobile friendly layout"},
	},
	{
		Title:     "Digital Presence Score",
		Icon:      "globe",
		MoneyLeak: "Missing or inactive profiles make the business look closed or unreliable to first-time buyers.",
		Checklist: []string{"Active Instagram or Facebook page", "Consistent name and logo across platforms", "Listed in at least one local directory"},
	},
	{
		Title:     "Trust & Credibility Signals",
		Icon:      "shield-check",
		MoneyLeak: "Without visible proof of legitimacy, cautious customers choose a brand they can verify.",
		Checklist: []string{"Registered business name", "Physical address or map listing", "Secure checkout or payment badges"},
	},
	{
		Title:     "Content Authority Index",
		Icon:      "file-text",
		MoneyLeak: "Competitors who publish helpful content win the trust and the search traffic you are missing.",
		Checklist: []string{"Blog or resource section", "Posted new content in the last 30 days", "Content answers common customer questions"},
	},
	{
		Title:     "Social Proof & Mentions",
		Icon:      "message-square",
		MoneyLeak: "Few reviews and mentions means new customers have no reason to pick you over an established name.",
		Checklist: []string{"At least 10 public reviews", "Average rating of 4 stars or more", "Mentioned by press or partners"},
	},
	{
		Title:     "Top 3 Competitor Advantage Analysis",
		Icon:      "target",
		MoneyLeak: "Your closest competitors are out-positioning you on the channels your customers use most.",
		Checklist: []string{"Matches competitors on price visibility", "Offers something competitors do not", "Comparable review volume"},
		Paid:      true,
	},
	{
		Title:     "Marketing Funnel Strength Assessment",
		Icon:      "bar-chart-3",
		MoneyLeak: "Interested prospects drop out because there is no follow-up path from first visit to purchase.",
		Checklist: []string{"Lead capture form or newsletter", "Retargeting or follow-up campaigns", "Tracked conversion goals"},
		Paid:      true,
	},
	{
		Title:     "Engagement-to-Conversion Ratio",
		Icon:      "heart",
		MoneyLeak: "Likes and followers are not turning into paying customers, so marketing spend is leaking.",
		Checklist: []string{"Direct messages answered within a day", "Shoppable posts or booking links", "Promotions tied to measurable offers"},
		Paid:      true,
	},
	{
		Title:     "Perceived Brand Authority Score",
		Icon:      "crown",
		MoneyLeak: "The brand is not seen as the go-to choice, which forces you to compete on price.",
		Checklist: []string{"Professional visual identity", "Founder or team visible online", "Featured as an expert in the industry"},
		Paid:      true,
	},
}

var metricKeywordIcons = []struct {
	keyword string
	icon    string
}{
	{"search", "search"},
	{"seo", "search"},
	{"website", "mouse-pointer"},
	{"conversion", "mouse-pointer"},
	{"social", "message-square"},
	{"review", "message-square"},
	{"trust", "shield-check"},
	{"content", "file-text"},
	{"competitor", "target"},
	{"funnel", "bar-chart-3"},
	{"engagement", "heart"},
	{"authority", "crown"},
	{"presence", "globe"},
	{"digital", "globe"},
}

// Metrics returns the catalogue in display order. The first six are free.
func Metrics() []MetricSpec {
	out := make([]MetricSpec, len(metrics))
	copy(out, metrics)
	return out
}

// LookupMetric finds the catalogue entry for an exact (case-insensitive) title.
func LookupMetric(title string) (MetricSpec, bool) {
	t := strings.TrimSpace(title)
	for _, m := range metrics {
		if strings.EqualFold(m.Title, t) {
			return m, true
		}
	}
	return MetricSpec{}, false
}

// MetricIcon resolves an icon by exact title first, then by keyword.
func MetricIcon(title string) string {
	if m, ok := LookupMetric(title); ok {
		return m.Icon
	}
	lower := strings.ToLower(title)
	for _, k := range metricKeywordIcons {
		if strings.Contains(lower, k.keyword) {
			return k.icon
		}
	}
	return DefaultMetricIcon
}

// MetricLeak returns the canned revenue-leak copy for a title.
func MetricLeak(title string) string {
	if m, ok := LookupMetric(title); ok {
		return m.MoneyLeak
	}
	return DefaultMoneyLeak
}
