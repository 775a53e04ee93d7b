package engine

import (
	"math"

	"github.com/randomtoy/arcana-go/internal/domain"
)

// cardState accumulates the influence a single target card receives while
// the pipeline runs. Polarity contributions are tracked separately by sign
// so the conflict rule can detect genuinely mixed signals.
type cardState struct {
	pc             domain.PositionedCard
	factors        []domain.InfluenceFactor
	posSum, negSum float64
	themeDeltas    map[string]float64
	intensityDelta float64
	dampened       bool
}

// state is the shared working set of one pipeline run. The adjacency matrix
// is computed once up front; dominance holds each source's outgoing
// multiplier (1.0 until the major-dominance rule raises it).
type state struct {
	cfg       Config
	cards     []*cardState
	weights   [][]float64
	dominance []float64
}

func newState(cfg Config, reading domain.Reading) *state {
	n := len(reading.Cards)
	st := &state{
		cfg:       cfg,
		cards:     make([]*cardState, n),
		weights:   make([][]float64, n),
		dominance: make([]float64, n),
	}
	for i, pc := range reading.Cards {
		st.cards[i] = &cardState{
			pc:          pc,
			themeDeltas: make(map[string]float64),
		}
		st.dominance[i] = 1.0
	}
	for i := range reading.Cards {
		st.weights[i] = make([]float64, n)
		for j := range reading.Cards {
			if i == j {
				continue
			}
			st.weights[i][j] = cfg.Adjacency.Weight(reading.Cards[i].Position, reading.Cards[j].Position)
		}
	}
	return st
}

// addPolarityFactor records a factor whose effect feeds the target's final
// polarity score.
func (cs *cardState) addPolarityFactor(cfg Config, f domain.InfluenceFactor) {
	cs.factors = append(cs.factors, f)
	if f.Effect >= 0 {
		cs.posSum += f.Effect
	} else {
		cs.negSum += f.Effect
	}
	cs.intensityDelta += math.Abs(f.Effect) * cfg.Normalization.IntensityGain
}

// addThemeFactor records a factor whose effect is applied to the named
// themes of the target rather than to its polarity.
func (cs *cardState) addThemeFactor(cfg Config, f domain.InfluenceFactor, themes ...string) {
	cs.factors = append(cs.factors, f)
	for _, theme := range themes {
		cs.themeDeltas[theme] += f.Effect
	}
	cs.intensityDelta += math.Abs(f.Effect) * cfg.Normalization.IntensityGain
}
