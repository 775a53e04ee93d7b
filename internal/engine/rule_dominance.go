package engine

// majorDominanceRule raises the outgoing multiplier of every Major Arcana
// card. It records no factors itself: the adjacency and reversal rules scale
// each source's contribution by its multiplier, so several Major cards
// influencing the same neighbor compound per source rather than through a
// single combined multiplier.
type majorDominanceRule struct{}

func (majorDominanceRule) name() string { return "major_dominance" }
func (majorDominanceRule) enabled(cfg Config) bool { return cfg.MajorDominance.Enabled }

func (majorDominanceRule) apply(st *state) {
	for i, cs := range st.cards {
		if cs.pc.Card.IsMajor() {
			st.dominance[i] = st.cfg.MajorDominance.Multiplier
		}
	}
}
