package brand

import "strings"

type Industry struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// DefaultIndustry is used when the form does not require an industry.
const DefaultIndustry = "online"

var industries = []Industry{
	{Key: "technology", Label: "Technology & Software"},
	{Key: "ecommerce", Label: "E-commerce & Retail"},
	{Key: "healthcare", Label: "Healthcare & Medical"},
	{Key: "finance", Label: "Finance & Banking"},
	{Key: "education", Label: "Education & Training"},
	{Key: "food", Label: "Food & Beverage"},
	{Key: "fashion", Label: "Fashion & Apparel"},
	{Key: "beauty", Label: "Beauty & Cosmetics"},
	{Key: "realestate", Label: "Real Estate"},
	{Key: "automotive", Label: "Automotive"},
	{Key: "entertainment", Label: "Entertainment & Media"},
	{Key: "travel", Label: "Travel & Tourism"},
	{Key: "sports", Label: "Sports & Fitness"},
	{Key: "nonprofit", Label: "Non-profit & NGO"},
	{Key: "manufacturing", Label: "Manufacturing"},
	{Key: "professional", Label: "Professional Services"},
	{Key: "consulting", Label: "Consulting Services"},
	{Key: "marketing", Label: "Marketing & Advertising"},
	{Key: "construction", Label: "Construction & Architecture"},
	{Key: "energy", Label: "Energy & Utilities"},
	{Key: "agriculture", Label: "Agriculture & Farming"},
	{Key: "logistics", Label: "Logistics & Transportation"},
	{Key: "telecommunications", Label: "Telecommunications"},
	{Key: "insurance", Label: "Insurance"},
	{Key: "legal", Label: "Legal Services"},
	{Key: "hospitality", Label: "Hospitality & Hotels"},
	{Key: "retail", Label: "Retail & Consumer Goods"},
	{Key: "pharmacy", Label: "Pharmacy & Pharmaceuticals"},
	{Key: "security", Label: "Security Services"},
	{Key: "government", Label: "Government & Public Sector"},
	{Key: "gaming", Label: "Gaming & Esports"},
	{Key: "photography", Label: "Photography & Creative Services"},
	{Key: "environmental", Label: "Environmental Services"},
	{Key: "petcare", Label: "Pet Care & Veterinary"},
	{Key: "childcare", Label: "Childcare & Family Services"},
	{Key: "eldercare", Label: "Elder Care & Senior Services"},
	{Key: "arts", Label: "Arts & Culture"},
	{Key: "jewelry", Label: "Jewelry & Accessories"},
	{Key: "home", Label: "Home & Garden"},
	{Key: "cleaning", Label: "Cleaning Services"},
	{Key: "other", Label: "Other"},
}

// Industries returns a copy of the catalogue in display order.
func Industries() []Industry {
	out := make([]Industry, len(industries))
	copy(out, industries)
	return out
}

// ResolveIndustry maps a catalogue key or label to its label.
// Unknown free text is returned trimmed and unchanged.
func ResolveIndustry(v string) string {
	v = strings.TrimSpace(v)
	for _, ind := range industries {
		if strings.EqualFold(ind.Key, v) || strings.EqualFold(ind.Label, v) {
			return ind.Label
		}
	}
	return v
}
