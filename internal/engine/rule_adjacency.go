package engine

import (
	"fmt"

	"github.com/randomtoy/arcana-go/internal/domain"
)

// adjacencyRule accumulates the distance-weighted polarity of every other
// card onto each target, scaled by the source's dominance multiplier.
type adjacencyRule struct{}

func (adjacencyRule) name() string { return "adjacency" }
func (adjacencyRule) enabled(cfg Config) bool { return cfg.Adjacency.Enabled }

func (adjacencyRule) apply(st *state) {
	for ti, target := range st.cards {
		for si, source := range st.cards {
			if si == ti {
				continue
			}
			weight := st.weights[ti][si]
			effect := weight * source.pc.Card.Polarity * st.dominance[si]
			target.addPolarityFactor(st.cfg, domain.InfluenceFactor{
				SourcePosition: source.pc.Position.ID,
				SourceCardID:   source.pc.Card.ID,
				Effect:         effect,
				Explain: fmt.Sprintf("%s influences %s through adjacency (weight %.2f)",
					source.pc.Card.Name, target.pc.Card.Name, weight),
				Confidence: st.cfg.Adjacency.Confidence(weight),
			})
		}
	}
}
