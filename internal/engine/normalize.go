package engine

import "github.com/randomtoy/arcana-go/internal/domain"

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// normalize folds each card's accumulated deltas onto its baselines and
// clamps once, after all contributions are summed, so an early saturation
// cannot mask later negative deltas.
func normalize(st *state) []domain.InfluencedCard {
	out := make([]domain.InfluencedCard, len(st.cards))
	for i, cs := range st.cards {
		card := cs.pc.Card

		polarityDelta := cs.posSum + cs.negSum
		if cs.dampened {
			polarityDelta *= st.cfg.Conflict.Dampening
		}

		themes := make(map[string]float64, len(card.Themes)+len(cs.themeDeltas))
		for theme, base := range card.Themes {
			themes[theme] = base
		}
		for theme, delta := range cs.themeDeltas {
			themes[theme] += delta
		}
		for theme, v := range themes {
			themes[theme] = clamp(v, 0.0, 1.0)
		}

		out[i] = domain.InfluencedCard{
			Position:       cs.pc.Position.ID,
			CardID:         card.ID,
			CardName:       card.Name,
			Orientation:    cs.pc.Orientation,
			BaseText:       card.Meaning(cs.pc.Orientation),
			PolarityScore:  clamp(card.Polarity+polarityDelta, -2.0, 2.0),
			IntensityScore: clamp(card.Intensity+cs.intensityDelta, 0.0, 1.0),
			Themes:         themes,
			Factors:        cs.factors,
		}
	}
	return out
}

// aggregateThemes applies the shared-narrative bonus: any theme held above
// zero by two or more cards is boosted on each such card, then re-clamped.
// Runs once, after per-card normalization; polarity and intensity are never
// touched here.
func aggregateThemes(cfg Config, cards []domain.InfluencedCard) {
	shared := make(map[string]int)
	for _, c := range cards {
		for theme, weight := range c.Themes {
			if weight > 0 {
				shared[theme]++
			}
		}
	}
	for _, c := range cards {
		for theme, weight := range c.Themes {
			if weight > 0 && shared[theme] >= 2 {
				c.Themes[theme] = clamp(weight*cfg.Normalization.SharedThemeMultiplier, 0.0, 1.0)
			}
		}
	}
}
