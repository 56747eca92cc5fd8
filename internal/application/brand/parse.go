package brand

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/400brands/brand-doctor/internal/domain/ai"
)

// RawAnalysis mirrors the JSON document the model is asked to produce.
// Numeric fields are pointers so "missing" and "zero" stay distinguishable.
type RawAnalysis struct {
	Score           *float64            `json:"score"`
	Summary         string              `json:"summary"`
	FreeMetrics     []RawMetric         `json:"freeMetrics"`
	PaidMetrics     []RawMetric         `json:"paidMetrics"`
	Competitors     []RawCompetitor     `json:"competitors"`
	Recommendations []RawRecommendation `json:"recommendations"`
}

type RawMetric struct {
	Title     string    `json:"title"`
	Score     *float64  `json:"score"`
	Items     []RawItem `json:"items"`
	MoneyLeak string    `json:"moneyLeak"`
}

type RawItem struct {
	Text    string `json:"text"`
	Present bool   `json:"present"`
	Impact  string `json:"impact"`
}

type RawCompetitor struct {
	Name        string   `json:"name"`
	Score       *float64 `json:"score"`
	Industry    string   `json:"industry"`
	Rating      float64  `json:"rating"`
	Reviews     int      `json:"reviews"`
	Description string   `json:"description"`
	Strengths   []string `json:"strengths"`
	Verified    bool     `json:"verified"`
}

type RawRecommendation struct {
	Title              string   `json:"title"`
	Description        string   `json:"description"`
	Service            string   `json:"service"`
	PlanName           string   `json:"planName"`
	Price              string   `json:"price"`
	Icon               string   `json:"icon"`
	Priority           int      `json:"priority"`
	RelevantBenchmarks []string `json:"relevantBenchmarks"`
}

var metricSchema = map[string]any{
	"type":     "object",
	"required": []any{"title"},
	"properties": map[string]any{
		"title":     map[string]any{"type": "string"},
		"score":     map[string]any{"type": "number"},
		"moneyLeak": map[string]any{"type": "string"},
		"items": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":     "object",
				"required": []any{"text"},
				"properties": map[string]any{
					"text":    map[string]any{"type": "string"},
					"present": map[string]any{"type": "boolean"},
					"impact":  map[string]any{"type": "string"},
				},
			},
		},
	},
}

var analysisSchema = map[string]any{
	"type":     "object",
	"required": []any{"score"},
	"properties": map[string]any{
		"score":       map[string]any{"type": "number"},
		"summary":     map[string]any{"type": "string"},
		"freeMetrics": map[string]any{"type": "array", "items": metricSchema},
		"paidMetrics": map[string]any{"type": "array", "items": metricSchema},
		"competitors": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":     "object",
				"required": []any{"name"},
				"properties": map[string]any{
					"name":      map[string]any{"type": "string"},
					"score":     map[string]any{"type": "number"},
					"rating":    map[string]any{"type": "number"},
					"reviews":   map[string]any{"type": "integer"},
					"strengths": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
					"verified":  map[string]any{"type": "boolean"},
				},
			},
		},
		"recommendations": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":     "object",
				"required": []any{"title"},
				"properties": map[string]any{
					"title":              map[string]any{"type": "string"},
					"description":        map[string]any{"type": "string"},
					"service":            map[string]any{"type": "string"},
					"priority":           map[string]any{"type": "integer"},
					"relevantBenchmarks": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
				},
			},
		},
	},
}

// ParseAnalysis extracts the first JSON object from a model reply, checks it
// against the analysis schema and decodes it.
func ParseAnalysis(raw string) (*RawAnalysis, error) {
	doc, ok := ExtractJSONObject(raw)
	if !ok {
		return nil, ai.ErrInvalidResponseFormat
	}

	var generic any
	if err := json.Unmarshal([]byte(doc), &generic); err != nil {
		return nil, fmt.Errorf("%w: %v", ai.ErrInvalidResponseFormat, err)
	}

	res, err := gojsonschema.Validate(gojsonschema.NewGoLoader(analysisSchema), gojsonschema.NewGoLoader(generic))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ai.ErrInvalidResponseFormat, err)
	}
	if !res.Valid() {
		msgs := make([]string, 0, len(res.Errors()))
		for _, e := range res.Errors() {
			msgs = append(msgs, e.String())
		}
		return nil, fmt.Errorf("%w: %s", ai.ErrInvalidResponseFormat, strings.Join(msgs, "; "))
	}

	var out RawAnalysis
	if err := json.Unmarshal([]byte(doc), &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ai.ErrInvalidResponseFormat, err)
	}
	return &out, nil
}

// ExtractJSONObject returns the first brace-balanced span of s that is valid
// JSON. Braces inside JSON strings are ignored, and balanced prose such as
// "{brand}" is skipped. An object still open at the end of s is rejected.
func ExtractJSONObject(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	for start >= 0 {
		if end, ok := matchBrace(s, start); ok && json.Valid([]byte(s[start:end+1])) {
			return s[start : end+1], true
		}
		next := strings.IndexByte(s[start+1:], '{')
		if next < 0 {
			break
		}
		start += next + 1
	}
	return "", false
}

func matchBrace(s string, start int) (int, bool) {
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return 0, false
}
