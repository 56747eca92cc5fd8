package brand

import (
	"strings"
	"time"
	"unicode/utf8"
)

// Options are the capability flags that gate optional behavior.
type Options struct {
	UseAI              bool
	RequireIndustry    bool
	CacheTTL           time.Duration
	PaidMetricsVisible bool
}

type AnalysisRequest struct {
	BrandName string
	Industry  string
	Location  Location
	ClientIP  string
}

const minBrandNameLen = 2

// NewAnalysisRequest trims and validates form input. Location is filled in later.
func NewAnalysisRequest(brandName, industry string, opts Options) (AnalysisRequest, error) {
	name := strings.TrimSpace(brandName)
	if name == "" {
		return AnalysisRequest{}, &ValidationError{Field: "brandName", Message: "Please enter your brand name"}
	}
	if utf8.RuneCountInString(name) < minBrandNameLen {
		return AnalysisRequest{}, &ValidationError{Field: "brandName", Message: "Brand name must be at least 2 characters"}
	}

	ind := ResolveIndustry(industry)
	if ind == "" {
		if opts.RequireIndustry {
			return AnalysisRequest{}, &ValidationError{Field: "industry", Message: "Please select your industry"}
		}
		ind = DefaultIndustry
	}

	return AnalysisRequest{BrandName: name, Industry: ind}, nil
}

// CacheKey normalizes the fields that determine an analysis.
func (r AnalysisRequest) CacheKey() string {
	return strings.ToLower(r.BrandName) + "|" + strings.ToLower(r.Industry) + "|" + strings.ToUpper(r.Location.CountryCode)
}
