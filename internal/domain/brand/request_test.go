package brand

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAnalysisRequest(t *testing.T) {
	tests := []struct {
		name     string
		brand    string
		industry string
		opts     Options
		want     AnalysisRequest
		errMsg   string
	}{
		{name: "empty brand", brand: "   ", industry: "technology", errMsg: "Please enter your brand name"},
		{name: "one char brand", brand: "A", industry: "technology", errMsg: "Brand name must be at least 2 characters"},
		{name: "missing industry when required", brand: "Acme", opts: Options{RequireIndustry: true}, errMsg: "Please select your industry"},
		{name: "missing industry defaults", brand: "Acme", want: AnalysisRequest{BrandName: "Acme", Industry: "online"}},
		{name: "key resolves to label", brand: " Acme ", industry: "beauty", want: AnalysisRequest{BrandName: "Acme", Industry: "Beauty & Cosmetics"}},
		{name: "free text kept", brand: "Ọja", industry: "Drones", want: AnalysisRequest{BrandName: "Ọja", Industry: "Drones"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewAnalysisRequest(tt.brand, tt.industry, tt.opts)
			if tt.errMsg != "" {
				require.Error(t, err)
				assert.Equal(t, tt.errMsg, err.Error())
				assert.True(t, errors.Is(err, ErrValidation))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMedalFor(t *testing.T) {
	assert.Equal(t, MedalGold, MedalFor(82))
	assert.Equal(t, MedalGold, MedalFor(80))
	assert.Equal(t, MedalSilver, MedalFor(79))
	assert.Equal(t, MedalSilver, MedalFor(65))
	assert.Equal(t, MedalBronze, MedalFor(50))
	assert.Equal(t, MedalStarter, MedalFor(49))
	assert.Equal(t, MedalStarter, MedalFor(0))
}

func TestIndustries(t *testing.T) {
	list := Industries()
	assert.Len(t, list, 41)
	list[0].Label = "changed"
	assert.Equal(t, "Technology & Software", Industries()[0].Label)
	assert.Equal(t, "Real Estate", ResolveIndustry("REALESTATE"))
}

func TestCacheKey(t *testing.T) {
	r := AnalysisRequest{BrandName: "Acme", Industry: "Real Estate", Location: Location{CountryCode: "ng"}}
	assert.Equal(t, "acme|real estate|NG", r.CacheKey())
}
