package brand

import (
	"fmt"
	"regexp"
	"strings"
)

// Tier is one price bucket of the agency's service menu.
type Tier struct {
	Name string
	USD  int
}

func (t Tier) Price() string { return fmt.Sprintf("$%d", t.USD) }

var (
	TierEnterprise   = Tier{Name: "enterprise", USD: 999}
	TierPremium      = Tier{Name: "premium", USD: 599}
	TierMarketing    = Tier{Name: "marketing", USD: 399}
	TierGrowth       = Tier{Name: "growth", USD: 299}
	TierDigital      = Tier{Name: "digital", USD: 159}
	TierConsultation = Tier{Name: "consultation", USD: 129}
	TierStarter      = Tier{Name: "starter", USD: 99}
)

// keyword matches a substring, or a whole word when word is set.
type keyword struct {
	text string
	word *regexp.Regexp
}

func sub(s string) keyword { return keyword{text: s} }

func word(s string) keyword {
	return keyword{text: s, word: regexp.MustCompile(`\b` + regexp.QuoteMeta(s) + `\b`)}
}

func (k keyword) in(content string) bool {
	if k.word != nil {
		return k.word.MatchString(content)
	}
	return strings.Contains(content, k.text)
}

func anyIn(content string, kws []keyword) bool {
	for _, k := range kws {
		if k.in(content) {
			return true
		}
	}
	return false
}

// Order matters: first match wins.
var tierRules = []struct {
	tier     Tier
	keywords []keyword
}{
	{TierEnterprise, []keyword{sub("enterprise"), sub("custom"), sub("blockchain")}},
	{TierPremium, []keyword{sub("premium"), sub("master"), sub("advanced")}},
	{TierMarketing, []keyword{sub("marketing"), sub("seo"), word("ads")}},
	{TierGrowth, []keyword{sub("growth"), sub("bundle"), sub("funnel")}},
	{TierDigital, []keyword{sub("digital"), sub("social"), sub("presence")}},
	{TierConsultation, []keyword{sub("consultation"), sub("audit"), sub("strategy")}},
}

// ClassifyTier picks the price tier from a recommendation's text.
func ClassifyTier(title, description, service string) Tier {
	content := strings.ToLower(title + " " + description + " " + service)
	for _, r := range tierRules {
		if anyIn(content, r.keywords) {
			return r.tier
		}
	}
	return TierStarter
}

const (
	iconWebsite      = "https://res.cloudinary.com/dgbreoalg/image/upload/v1746565485/responsive-design_wobrfb.png"
	iconConsultation = "https://res.cloudinary.com/dgbreoalg/image/upload/v1746696017/consultant_bgaqe2.png"
	iconGrowth       = "https://res.cloudinary.com/dgbreoalg/image/upload/v1746566762/growth_ggcqxd.png"
	iconAI           = "https://res.cloudinary.com/dgbreoalg/image/upload/v1746566344/ai_nuhrup.png"
	iconAnalysis     = "https://res.cloudinary.com/dgbreoalg/image/upload/v1746723859/analysis_nnspfu.png"
	iconBlockchain   = "https://res.cloudinary.com/dgbreoalg/image/upload/v1746696632/blockchain-security_lhojoj.png"
	// DefaultServiceIcon is used when no keyword matches.
	DefaultServiceIcon = iconWebsite
)

var iconRules = []struct {
	icon string
	kw   keyword
}{
	{iconWebsite, sub("website")},
	{iconConsultation, sub("consultation")},
	{iconAI, word("ai")},
	{iconGrowth, sub("marketing")},
	{iconGrowth, sub("growth")},
	{iconAnalysis, sub("analysis")},
	{iconBlockchain, sub("blockchain")},
}

// ClassifyIcon picks a service illustration from title and description.
func ClassifyIcon(title, description string) string {
	content := strings.ToLower(title + " " + description)
	for _, r := range iconRules {
		if r.kw.in(content) {
			return r.icon
		}
	}
	return DefaultServiceIcon
}
