package brand

// Medal is the coarse tier label derived from the score.
type Medal string

const (
	MedalGold    Medal = "Gold"
	MedalSilver  Medal = "Silver"
	MedalBronze  Medal = "Bronze"
	MedalStarter Medal = "Starter"
)

// Medal thresholds. One table only: 80 / 65 / 50.
const (
	GoldThreshold   = 80
	SilverThreshold = 65
	BronzeThreshold = 50
)

func MedalFor(score int) Medal {
	switch {
	case score >= GoldThreshold:
		return MedalGold
	case score >= SilverThreshold:
		return MedalSilver
	case score >= BronzeThreshold:
		return MedalBronze
	default:
		return MedalStarter
	}
}

// Headline returns the banner copy shown above the summary.
func Headline(m Medal) string {
	switch m {
	case MedalGold:
		return "Strong Foundation, Minor Leaks"
	case MedalSilver:
		return "Good Potential, Revenue Opportunities"
	case MedalBronze:
		return "Significant Revenue Leaks Detected"
	default:
		return "Critical Revenue Bleeding"
	}
}
