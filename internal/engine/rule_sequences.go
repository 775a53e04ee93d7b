package engine

import (
	"fmt"
	"sort"
	"strings"

	"github.com/randomtoy/arcana-go/internal/domain"
)

// Themes written by the sequence rule.
const (
	themeContinuity = "continuity"
	themeCompletion = "completion"
	themeEmphasis   = "emphasis"
)

// sequenceRule scans the numbered (non-court, non-Major) cards of the
// reading and detects maximal runs of strictly ascending or descending
// ranks, repeated ranks, and broken neighbors.
//
// Scan order is position x ascending, ties broken by y and then input
// order. Spreads without an inherent left-to-right reading order have no
// canonical scan order; this is a documented assumption.
type sequenceRule struct{}

func (sequenceRule) name() string { return "numerical_sequences" }
func (sequenceRule) enabled(cfg Config) bool { return cfg.Sequences.Enabled }

func (sequenceRule) apply(st *state) {
	type entry struct {
		idx  int // index into st.cards
		rank int
	}
	var scan []entry
	for i, cs := range st.cards {
		if cs.pc.Card.IsNumbered() {
			scan = append(scan, entry{idx: i, rank: cs.pc.Card.Number})
		}
	}
	sort.SliceStable(scan, func(a, b int) bool {
		pa, pb := st.cards[scan[a].idx].pc.Position, st.cards[scan[b].idx].pc.Position
		if pa.X != pb.X {
			return pa.X < pb.X
		}
		return pa.Y < pb.Y
	})

	// Maximal runs and broken neighbors over adjacent scanned pairs.
	for k := 0; k < len(scan)-1; {
		step := scan[k+1].rank - scan[k].rank
		if step == 1 || step == -1 {
			start := k
			for k < len(scan)-1 && scan[k+1].rank-scan[k].rank == step {
				k++
			}
			end := k
			runDesc := describeRun(scan[start:end+1], func(e entry) int { return e.rank })
			theme, boost, direction := themeContinuity, st.cfg.Sequences.AscendingBoost, "ascending"
			if step == -1 {
				theme, boost, direction = themeCompletion, st.cfg.Sequences.DescendingBoost, "descending"
			}
			for m := start; m <= end; m++ {
				src := m + 1
				if m == end {
					src = m - 1
				}
				source := st.cards[scan[src].idx].pc
				st.cards[scan[m].idx].addThemeFactor(st.cfg, domain.InfluenceFactor{
					SourcePosition: source.Position.ID,
					SourceCardID:   source.Card.ID,
					Effect:         boost,
					Explain:        fmt.Sprintf("Part of %s run %s", direction, runDesc),
					Confidence:     domain.ConfidenceMedium,
				}, theme)
			}
			continue
		}
		if step != 0 {
			// Broken pair: neither sequential nor repeated.
			for _, pair := range [2][2]int{{k, k + 1}, {k + 1, k}} {
				target, src := scan[pair[0]], scan[pair[1]]
				source := st.cards[src.idx].pc
				st.cards[target.idx].addThemeFactor(st.cfg, domain.InfluenceFactor{
					SourcePosition: source.Position.ID,
					SourceCardID:   source.Card.ID,
					Effect:         -st.cfg.Sequences.BrokenPenalty,
					Explain:        fmt.Sprintf("Broken sequence: rank %d does not continue from %d", target.rank, src.rank),
					Confidence:     domain.ConfidenceMedium,
				}, themeContinuity)
			}
		}
		k++
	}

	// Repeated ranks across positions emphasize the shared number.
	rankCount := make(map[int]int, len(scan))
	for _, e := range scan {
		rankCount[e.rank]++
	}
	for _, e := range scan {
		if rankCount[e.rank] < 2 {
			continue
		}
		var source domain.PositionedCard
		for _, other := range scan {
			if other.idx != e.idx && other.rank == e.rank {
				source = st.cards[other.idx].pc
				break
			}
		}
		st.cards[e.idx].addThemeFactor(st.cfg, domain.InfluenceFactor{
			SourcePosition: source.Position.ID,
			SourceCardID:   source.Card.ID,
			Effect:         st.cfg.Sequences.EmphasisBoost,
			Explain:        fmt.Sprintf("Rank %d repeats across %d positions", e.rank, rankCount[e.rank]),
			Confidence:     domain.ConfidenceMedium,
		}, themeEmphasis)
	}
}

func describeRun[T any](run []T, rank func(T) int) string {
	parts := make([]string, len(run))
	for i, e := range run {
		parts[i] = fmt.Sprintf("%d", rank(e))
	}
	return strings.Join(parts, "→")
}
