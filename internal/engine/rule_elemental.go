package engine

import (
	"fmt"
	"sort"

	"github.com/randomtoy/arcana-go/internal/domain"
)

// Traditional elemental dignities: fire/earth and water/air support each
// other, fire/water and earth/air undermine each other.
var complementaryElements = map[[2]domain.Element]bool{
	{domain.ElementFire, domain.ElementEarth}: true,
	{domain.ElementEarth, domain.ElementFire}: true,
	{domain.ElementWater, domain.ElementAir}:  true,
	{domain.ElementAir, domain.ElementWater}:  true,
}

var opposingElements = map[[2]domain.Element]bool{
	{domain.ElementFire, domain.ElementWater}: true,
	{domain.ElementWater, domain.ElementFire}: true,
	{domain.ElementEarth, domain.ElementAir}:  true,
	{domain.ElementAir, domain.ElementEarth}:  true,
}

// elementalRule compares every ordered pair's elements and shifts the theme
// weights the pair shares: reinforcement for same element, a smaller boost
// for complementary pairs, a reduction for opposing pairs.
type elementalRule struct{}

func (elementalRule) name() string { return "elemental_dignities" }
func (elementalRule) enabled(cfg Config) bool { return cfg.Elemental.Enabled }

func (elementalRule) apply(st *state) {
	for ti, target := range st.cards {
		for si, source := range st.cards {
			if si == ti {
				continue
			}
			te, se := target.pc.Card.Element, source.pc.Card.Element

			var effect float64
			var relation string
			var confidence domain.Confidence
			switch {
			case te == se:
				effect = st.cfg.Elemental.SameElementBoost
				relation = fmt.Sprintf("%s and %s share the %s element, reinforcing themes",
					target.pc.Card.Name, source.pc.Card.Name, te)
				confidence = domain.ConfidenceHigh
			case complementaryElements[[2]domain.Element{te, se}]:
				effect = st.cfg.Elemental.ComplementaryBoost
				relation = fmt.Sprintf("%s and %s are complementary elements", te, se)
				confidence = domain.ConfidenceMedium
			case opposingElements[[2]domain.Element{te, se}]:
				effect = -st.cfg.Elemental.OpposingReduction
				relation = fmt.Sprintf("%s and %s are opposing elements, creating tension", te, se)
				confidence = domain.ConfidenceMedium
			default:
				continue
			}

			shared := sharedThemes(target.pc.Card, source.pc.Card)
			if len(shared) == 0 {
				continue
			}
			target.addThemeFactor(st.cfg, domain.InfluenceFactor{
				SourcePosition: source.pc.Position.ID,
				SourceCardID:   source.pc.Card.ID,
				Effect:         effect,
				Explain:        relation,
				Confidence:     confidence,
			}, shared...)
		}
	}
}

// sharedThemes returns the theme names both cards carry, sorted for
// deterministic factor application.
func sharedThemes(a, b domain.Card) []string {
	var shared []string
	for theme := range a.Themes {
		if _, ok := b.Themes[theme]; ok {
			shared = append(shared, theme)
		}
	}
	sort.Strings(shared)
	return shared
}
