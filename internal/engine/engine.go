// Package engine implements the card influence engine: a deterministic,
// rule-based pipeline that computes how the cards of a spread modify each
// other's polarity, intensity and theme weights, producing explainable
// per-card influence factors.
//
// The engine is pure compute. Each invocation takes an immutable snapshot
// of the reading plus a validated configuration and returns a freshly
// constructed result; there is no process-wide state, so concurrent calls
// need no locking.
package engine

import (
	"log/slog"

	"github.com/randomtoy/arcana-go/internal/domain"
	"github.com/randomtoy/arcana-go/internal/render"
)

// Engine runs the influence pipeline with a fixed base configuration.
type Engine struct {
	cfg    Config
	logger *slog.Logger
}

// New validates cfg and returns an Engine. Configuration errors surface
// here, before any reading is processed.
func New(cfg Config, logger *slog.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{cfg: cfg, logger: logger}, nil
}

// Config returns the engine's base configuration.
func (e *Engine) Config() Config { return e.cfg }

// Compute runs the full pipeline over the reading with the base
// configuration.
func (e *Engine) Compute(reading domain.Reading) (domain.InfluenceResult, error) {
	return e.compute(reading, e.cfg)
}

// ComputeWithOverrides layers per-reading numeric overrides onto the base
// configuration before computing. Invalid overrides fail fast.
func (e *Engine) ComputeWithOverrides(reading domain.Reading, overrides map[string]float64) (domain.InfluenceResult, error) {
	cfg := e.cfg
	if len(overrides) > 0 {
		var err error
		cfg, err = e.cfg.WithOverrides(overrides)
		if err != nil {
			return domain.InfluenceResult{}, err
		}
	}
	return e.compute(reading, cfg)
}

func (e *Engine) compute(reading domain.Reading, cfg Config) (domain.InfluenceResult, error) {
	if err := reading.Validate(); err != nil {
		return domain.InfluenceResult{}, err
	}

	st := newState(cfg, reading)
	for _, r := range pipeline() {
		if r.enabled(cfg) {
			r.apply(st)
		}
	}

	cards := normalize(st)
	aggregateThemes(cfg, cards)

	names := make(map[string]string, len(reading.Cards))
	for _, pc := range reading.Cards {
		names[pc.Card.ID] = pc.Card.Name
	}
	totalFactors := 0
	for i := range cards {
		cards[i].InfluencedText = render.InfluencedText(cards[i].BaseText, cards[i].Factors, names)
		cards[i].JournalPrompt = render.JournalPrompt(reading.Cards[i].Card, len(cards[i].Factors) > 0)
		totalFactors += len(cards[i].Factors)
	}

	e.logger.Debug("computed influences",
		"reading_id", reading.ID,
		"spread_type", reading.SpreadType,
		"cards", len(cards),
		"factors", totalFactors,
	)

	return domain.InfluenceResult{
		ReadingID:         reading.ID,
		Summary:           render.Summary(cards),
		Cards:             cards,
		Advice:            render.Advice(cards),
		FollowUpQuestions: render.FollowUps(cards),
	}, nil
}
