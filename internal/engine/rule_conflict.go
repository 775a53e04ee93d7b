package engine

// conflictRule flags cards whose positive and negative polarity
// contributions both exceed the threshold. Normalization dampens the summed
// polarity delta of flagged cards; no new factor is recorded since this is
// an aggregate adjustment, not a per-source contribution.
type conflictRule struct{}

func (conflictRule) name() string { return "conflict_resolution" }
func (conflictRule) enabled(cfg Config) bool { return cfg.Conflict.Enabled }

func (conflictRule) apply(st *state) {
	for _, cs := range st.cards {
		if cs.posSum > st.cfg.Conflict.Threshold && -cs.negSum > st.cfg.Conflict.Threshold {
			cs.dampened = true
		}
	}
}
