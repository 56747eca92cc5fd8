package prompt

import (
	"fmt"
	"strings"

	"github.com/400brands/brand-doctor/internal/domain/ai"
	"github.com/400brands/brand-doctor/internal/domain/brand"
)

// GetSystemPrompt provides strict directions and schema for JSON output.
func GetSystemPrompt() string {
	return `You are a senior brand strategist at a digital growth agency. You audit how healthy a business looks online and where it is losing revenue. You must produce one valid JSON object only (no markdown, no commentary) that follows the schema below. Do not include code fences.

Requirements:
- Output must be a single JSON object.
- Every score is an integer from 0 to 100. Ratings are numbers from 0 to 5.
- Each metric has 3 to 5 items. "present" is true only when you have evidence the signal exists.
- "moneyLeak" explains in one or two sentences how the missing items cost the business money.
- Name up to 3 real competitors operating in the same city or country. Set "verified" to false unless a search result confirms the competitor exists.
- Give 2 to 4 recommendations for services the agency sells (websites, SEO, ads, social media, consultation, brand strategy). "priority" starts at 1 for the most urgent.
- When a web_search tool is available, use it to confirm the brand's website, listings and competitors before scoring.
- If you cannot find the brand online, score conservatively and say so in the summary.

Schema (shape with empty values):
{
  "score": 0,
  "summary": "<string>",
  "freeMetrics": [
    {
      "title": "<string>",
      "score": 0,
      "items": [{"text": "<string>", "present": false, "impact": "<string>"}],
      "moneyLeak": "<string>"
    }
  ],
  "paidMetrics": [ same shape as freeMetrics ],
  "competitors": [
    {
      "name": "<string>",
      "score": 0,
      "industry": "<string>",
      "rating": 0,
      "reviews": 0,
      "description": "<string>",
      "strengths": ["<string>"],
      "verified": false
    }
  ],
  "recommendations": [
    {
      "title": "<string>",
      "description": "<string>",
      "service": "<string>",
      "planName": "<string>",
      "priority": 1,
      "relevantBenchmarks": ["<metric title>"]
    }
  ]
}`
}

// GetUserPrompt interpolates the request into the audit instructions.
func GetUserPrompt(req brand.AnalysisRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Analyze the online brand health of %q, a business in the %s industry", req.BrandName, req.Industry)
	if loc := locationPhrase(req.Location); loc != "" {
		fmt.Fprintf(&b, " based in %s", loc)
	}
	b.WriteString(".\n\n")

	var free, paid []string
	for _, m := range brand.Metrics() {
		if m.Paid {
			paid = append(paid, m.Title)
		} else {
			free = append(free, m.Title)
		}
	}
	writeTitles(&b, "freeMetrics", free)
	b.WriteString("\n")
	writeTitles(&b, "paidMetrics", paid)
	fmt.Fprintf(&b, "\nCompare against competitors that customers in %s would realistically choose instead. Respond with the JSON per schema.",
		orDefault(req.Location.CountryName, brand.DefaultLocation.CountryName))
	return b.String()
}

// SearchHint is the query used to ground the model when the provider cannot call tools.
func SearchHint(req brand.AnalysisRequest) string {
	parts := []string{fmt.Sprintf("%q", req.BrandName)}
	if req.Industry != "" && req.Industry != brand.DefaultIndustry {
		parts = append(parts, req.Industry)
	}
	if req.Location.City != "" {
		parts = append(parts, req.Location.City)
	}
	if req.Location.CountryName != "" {
		parts = append(parts, req.Location.CountryName)
	}
	return strings.Join(parts, " ")
}

// Build assembles the full prompt for a request.
func Build(req brand.AnalysisRequest) ai.Prompt {
	return ai.Prompt{
		System:     GetSystemPrompt(),
		User:       GetUserPrompt(req),
		SearchHint: SearchHint(req),
	}
}

func writeTitles(b *strings.Builder, field string, titles []string) {
	fmt.Fprintf(b, "%s must contain exactly these titles in order:\n", field)
	for _, t := range titles {
		fmt.Fprintf(b, "- %s\n", t)
	}
}

func locationPhrase(l brand.Location) string {
	switch {
	case l.City != "" && l.CountryName != "":
		return l.City + ", " + l.CountryName
	case l.CountryName != "":
		return l.CountryName
	default:
		return l.City
	}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
