package engine

// rule is one stage of the influence pipeline. Rules run in the fixed order
// returned by pipeline(); later rules read state written by earlier ones, so
// the order is a correctness requirement, not a convenience.
type rule interface {
	name() string
	enabled(cfg Config) bool
	apply(st *state)
}

func pipeline() []rule {
	return []rule{
		majorDominanceRule{},
		adjacencyRule{},
		elementalRule{},
		sequenceRule{},
		suitRule{},
		reversalRule{},
		conflictRule{},
	}
}
