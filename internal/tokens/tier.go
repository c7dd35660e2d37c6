package tokens

// Tier is the performance level shown at the end of a game.
type Tier struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	MinPercent int    `json:"minPercent"`
}

// tiers are ordered best first. The thresholds are the historic 100/80/60/40
// token marks on a 125 token scale, expressed as percentages.
var tiers = []Tier{
	{ID: "legend", Name: "Leyenda Emprendedora", MinPercent: 80},
	{ID: "magnate", Name: "Magnate de Negocios", MinPercent: 64},
	{ID: "rising-star", Name: "Estrella en Ascenso", MinPercent: 48},
	{ID: "promising", Name: "Emprendedor Prometedor", MinPercent: 32},
	{ID: "future-potential", Name: "Potencial Futuro", MinPercent: 0},
}

// Percent returns tokens as a share of maxTokens, clamped to 0..100.
func Percent(tokens, maxTokens int) int {
	if maxTokens <= 0 || tokens <= 0 {
		return 0
	}
	return min(tokens*100/maxTokens, 100)
}

func TierFor(tokens, maxTokens int) Tier {
	p := Percent(tokens, maxTokens)
	for _, t := range tiers {
		if p >= t.MinPercent {
			return t
		}
	}
	return tiers[len(tiers)-1]
}

func Tiers() []Tier {
	out := make([]Tier, len(tiers))
	copy(out, tiers)
	return out
}
