package engine

import (
	"fmt"

	"github.com/randomtoy/arcana-go/internal/domain"
)

const themeStability = "stability"

// reversalRule propagates each reversed card's instability to every other
// card, weighted by adjacency. Reversed Major cards propagate harder.
type reversalRule struct{}

func (reversalRule) name() string { return "reversal_propagation" }
func (reversalRule) enabled(cfg Config) bool { return cfg.Reversal.Enabled }

func (reversalRule) apply(st *state) {
	for si, source := range st.cards {
		if source.pc.Orientation != domain.Reversed {
			continue
		}
		reduction := st.cfg.Reversal.StabilityReduction
		if source.pc.Card.IsMajor() {
			reduction *= st.cfg.Reversal.MajorMultiplier
		}
		for ti, target := range st.cards {
			if ti == si {
				continue
			}
			effect := -reduction * st.weights[ti][si]
			target.addThemeFactor(st.cfg, domain.InfluenceFactor{
				SourcePosition: source.pc.Position.ID,
				SourceCardID:   source.pc.Card.ID,
				Effect:         effect,
				Explain:        fmt.Sprintf("Reversed %s unsettles stability themes nearby", source.pc.Card.Name),
				Confidence:     domain.ConfidenceHigh,
			}, themeStability)
		}
	}
}
