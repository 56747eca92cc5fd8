package brand

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyTier(t *testing.T) {
	tests := []struct {
		title, desc, service string
		want                 Tier
	}{
		{"Enterprise Brand Overhaul", "", "", TierEnterprise},
		{"Starter", "", "", TierStarter},
		{"Custom SEO Platform", "", "", TierEnterprise},
		{"Advanced SEO", "", "", TierPremium},
		{"Google Ads Setup", "", "", TierMarketing},
		{"Loads of leads", "", "", TierStarter},
		{"Website", "", "sales funnel build", TierGrowth},
		{"Social Media Kickoff", "", "", TierDigital},
		{"Brand Audit", "", "", TierConsultation},
		{"Logo refresh", "A new logo", "Design", TierStarter},
	}
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyTier(tt.title, tt.desc, tt.service))
		})
	}
	assert.Equal(t, "$999", TierEnterprise.Price())
}

func TestClassifyIcon(t *testing.T) {
	assert.Equal(t, iconWebsite, ClassifyIcon("Website Redesign", ""))
	assert.Equal(t, iconConsultation, ClassifyIcon("Free Consultation", "book a call"))
	assert.Equal(t, iconWebsite, ClassifyIcon("Consultation", "about your website"))
	assert.Equal(t, iconAI, ClassifyIcon("AI Chatbot", ""))
	assert.Equal(t, DefaultServiceIcon, ClassifyIcon("Email campaigns", "Maintain your brand"))
	assert.Equal(t, iconGrowth, ClassifyIcon("Marketing Sprint", ""))
	assert.Equal(t, iconAnalysis, ClassifyIcon("Competitor analysis", ""))
	assert.Equal(t, iconBlockchain, ClassifyIcon("Blockchain loyalty", ""))
}
