package engine

import (
	"fmt"
	"sort"

	"github.com/randomtoy/arcana-go/internal/domain"
)

// suitThemes maps each suit to its associated interpretive themes.
var suitThemes = map[domain.Suit][]string{
	domain.SuitWands:     {"passion", "creativity", "action"},
	domain.SuitCups:      {"emotion", "intuition", "relationships"},
	domain.SuitSwords:    {"intellect", "conflict", "clarity"},
	domain.SuitPentacles: {"stability", "resources", "work"},
}

// opposingSuit pairs suits whose elements oppose (fire/water, earth/air).
// A dominant suit suppresses the opposing suit's themes on outsider cards.
var opposingSuit = map[domain.Suit]domain.Suit{
	domain.SuitWands:     domain.SuitCups,
	domain.SuitCups:      domain.SuitWands,
	domain.SuitSwords:    domain.SuitPentacles,
	domain.SuitPentacles: domain.SuitSwords,
}

// suitRule counts suit occurrences across the reading and boosts the themes
// of any predominant suit on its members, reducing conflicting themes on
// everything else. A pair gets a small boost with no penalty elsewhere.
type suitRule struct{}

func (suitRule) name() string { return "suit_predominance" }
func (suitRule) enabled(cfg Config) bool { return cfg.Suits.Enabled }

func (suitRule) apply(st *state) {
	counts := make(map[domain.Suit]int)
	for _, cs := range st.cards {
		if cs.pc.Card.Suit != "" {
			counts[cs.pc.Card.Suit]++
		}
	}

	suits := make([]domain.Suit, 0, len(counts))
	for suit := range counts {
		suits = append(suits, suit)
	}
	sort.Slice(suits, func(i, j int) bool { return suits[i] < suits[j] })

	for _, suit := range suits {
		count := counts[suit]
		if count < 2 {
			continue
		}

		// First member of the suit other than the target serves as the
		// factor's source, keeping sources resolvable and never the target
		// itself.
		sourceFor := func(targetIdx int) domain.PositionedCard {
			for i, cs := range st.cards {
				if i != targetIdx && cs.pc.Card.Suit == suit {
					return cs.pc
				}
			}
			return domain.PositionedCard{}
		}

		switch {
		case count == 2:
			for i, cs := range st.cards {
				if cs.pc.Card.Suit != suit {
					continue
				}
				source := sourceFor(i)
				cs.addThemeFactor(st.cfg, domain.InfluenceFactor{
					SourcePosition: source.Position.ID,
					SourceCardID:   source.Card.ID,
					Effect:         st.cfg.Suits.PairBoost,
					Explain:        fmt.Sprintf("Suit pair: 2 %s cards", suit),
					Confidence:     domain.ConfidenceMedium,
				}, suitThemes[suit]...)
			}
		default: // count >= 3
			boost := st.cfg.Suits.ThreeCardBoost
			if count >= 4 {
				boost = st.cfg.Suits.FourCardBoost
			}
			for i, cs := range st.cards {
				source := sourceFor(i)
				if cs.pc.Card.Suit == suit {
					cs.addThemeFactor(st.cfg, domain.InfluenceFactor{
						SourcePosition: source.Position.ID,
						SourceCardID:   source.Card.ID,
						Effect:         boost,
						Explain:        fmt.Sprintf("Suit predominance: %d %s cards", count, suit),
						Confidence:     domain.ConfidenceHigh,
					}, suitThemes[suit]...)
				} else {
					cs.addThemeFactor(st.cfg, domain.InfluenceFactor{
						SourcePosition: source.Position.ID,
						SourceCardID:   source.Card.ID,
						Effect:         -st.cfg.Suits.OpposingReduction,
						Explain: fmt.Sprintf("Suit predominance: %d %s cards overshadow %s themes",
							count, suit, opposingSuit[suit]),
						Confidence: domain.ConfidenceMedium,
					}, suitThemes[opposingSuit[suit]]...)
				}
			}
		}
	}
}
