package engine

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/randomtoy/arcana-go/internal/domain"
)

// Config carries every tunable parameter of the influence pipeline. It is
// immutable from the engine's point of view: each computation receives its
// own copy, so concurrent callers can use different configurations.
type Config struct {
	MajorDominance MajorDominanceConfig `yaml:"major_dominance"`
	Adjacency      AdjacencyConfig      `yaml:"adjacency"`
	Elemental      ElementalConfig      `yaml:"elemental_dignities"`
	Sequences      SequencesConfig      `yaml:"numerical_sequences"`
	Suits          SuitsConfig          `yaml:"suit_predominance"`
	Reversal       ReversalConfig       `yaml:"reversal_propagation"`
	Conflict       ConflictConfig       `yaml:"conflict_resolution"`
	Normalization  NormalizationConfig  `yaml:"normalization"`
}

type MajorDominanceConfig struct {
	Enabled    bool    `yaml:"enabled"`
	Multiplier float64 `yaml:"multiplier"`
}

// AdjacencyConfig holds the distance bands of the adjacency calculator and
// the confidence thresholds applied to the resulting weights.
type AdjacencyConfig struct {
	Enabled          bool    `yaml:"enabled"`
	DirectLimit      float64 `yaml:"direct_limit"`
	DiagonalLimit    float64 `yaml:"diagonal_limit"`
	RowLimit         float64 `yaml:"row_limit"`
	NearLimit        float64 `yaml:"near_limit"`
	DirectWeight     float64 `yaml:"direct_weight"`
	DiagonalWeight   float64 `yaml:"diagonal_weight"`
	RowWeight        float64 `yaml:"row_weight"`
	NearWeight       float64 `yaml:"near_weight"`
	DistantWeight    float64 `yaml:"distant_weight"`
	HighConfidence   float64 `yaml:"high_confidence"`
	MediumConfidence float64 `yaml:"medium_confidence"`
}

type ElementalConfig struct {
	Enabled            bool    `yaml:"enabled"`
	SameElementBoost   float64 `yaml:"same_element_boost"`
	ComplementaryBoost float64 `yaml:"complementary_boost"`
	OpposingReduction  float64 `yaml:"opposing_reduction"`
}

type SequencesConfig struct {
	Enabled         bool    `yaml:"enabled"`
	AscendingBoost  float64 `yaml:"ascending_boost"`
	DescendingBoost float64 `yaml:"descending_boost"`
	EmphasisBoost   float64 `yaml:"emphasis_boost"`
	BrokenPenalty   float64 `yaml:"broken_penalty"`
}

type SuitsConfig struct {
	Enabled           bool    `yaml:"enabled"`
	PairBoost         float64 `yaml:"pair_boost"`
	ThreeCardBoost    float64 `yaml:"three_card_boost"`
	FourCardBoost     float64 `yaml:"four_card_boost"`
	OpposingReduction float64 `yaml:"opposing_reduction"`
}

type ReversalConfig struct {
	Enabled            bool    `yaml:"enabled"`
	StabilityReduction float64 `yaml:"stability_reduction"`
	MajorMultiplier    float64 `yaml:"major_multiplier"`
}

type ConflictConfig struct {
	Enabled   bool    `yaml:"enabled"`
	Threshold float64 `yaml:"threshold"`
	Dampening float64 `yaml:"dampening"`
}

type NormalizationConfig struct {
	IntensityGain         float64 `yaml:"intensity_gain"`
	SharedThemeMultiplier float64 `yaml:"shared_theme_multiplier"`
}

// DefaultConfig returns the canonical rule parameters.
func DefaultConfig() Config {
	return Config{
		MajorDominance: MajorDominanceConfig{Enabled: true, Multiplier: 1.5},
		Adjacency: AdjacencyConfig{
			Enabled:          true,
			DirectLimit:      1.0,
			DiagonalLimit:    1.5,
			RowLimit:         2.5,
			NearLimit:        4.0,
			DirectWeight:     1.0,
			DiagonalWeight:   0.7,
			RowWeight:        0.5,
			NearWeight:       0.3,
			DistantWeight:    0.1,
			HighConfidence:   0.7,
			MediumConfidence: 0.3,
		},
		Elemental: ElementalConfig{
			Enabled:            true,
			SameElementBoost:   0.20,
			ComplementaryBoost: 0.10,
			OpposingReduction:  0.15,
		},
		Sequences: SequencesConfig{
			Enabled:         true,
			AscendingBoost:  0.15,
			DescendingBoost: 0.15,
			EmphasisBoost:   0.20,
			BrokenPenalty:   0.10,
		},
		Suits: SuitsConfig{
			Enabled:           true,
			PairBoost:         0.10,
			ThreeCardBoost:    0.25,
			FourCardBoost:     0.35,
			OpposingReduction: 0.15,
		},
		Reversal: ReversalConfig{
			Enabled:            true,
			StabilityReduction: 0.30,
			MajorMultiplier:    1.5,
		},
		Conflict: ConflictConfig{Enabled: true, Threshold: 0.5, Dampening: 0.7},
		Normalization: NormalizationConfig{
			IntensityGain:         0.1,
			SharedThemeMultiplier: 1.2,
		},
	}
}

// LoadConfigFile reads a YAML rule-configuration file layered over the
// defaults and validates the result.
func LoadConfigFile(path string) (Config, error) {
	cfg := DefaultConfig()
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read rule config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse rule config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// WithOverrides returns a copy of c with the dotted-key numeric overrides
// applied and validated, e.g. {"major_dominance.multiplier": 2.0}.
func (c Config) WithOverrides(overrides map[string]float64) (Config, error) {
	out := c
	for key, value := range overrides {
		if err := out.set(key, value); err != nil {
			return Config{}, err
		}
	}
	if err := out.Validate(); err != nil {
		return Config{}, err
	}
	return out, nil
}

func (c *Config) set(key string, v float64) error {
	targets := map[string]*float64{
		"major_dominance.multiplier":             &c.MajorDominance.Multiplier,
		"adjacency.direct_limit":                 &c.Adjacency.DirectLimit,
		"adjacency.diagonal_limit":               &c.Adjacency.DiagonalLimit,
		"adjacency.row_limit":                    &c.Adjacency.RowLimit,
		"adjacency.near_limit":                   &c.Adjacency.NearLimit,
		"adjacency.direct_weight":                &c.Adjacency.DirectWeight,
		"adjacency.diagonal_weight":              &c.Adjacency.DiagonalWeight,
		"adjacency.row_weight":                   &c.Adjacency.RowWeight,
		"adjacency.near_weight":                  &c.Adjacency.NearWeight,
		"adjacency.distant_weight":               &c.Adjacency.DistantWeight,
		"adjacency.high_confidence":              &c.Adjacency.HighConfidence,
		"adjacency.medium_confidence":            &c.Adjacency.MediumConfidence,
		"elemental_dignities.same_element_boost": &c.Elemental.SameElementBoost,
		"elemental_dignities.complementary_boost": &c.Elemental.ComplementaryBoost,
		"elemental_dignities.opposing_reduction":  &c.Elemental.OpposingReduction,
		"numerical_sequences.ascending_boost":     &c.Sequences.AscendingBoost,
		"numerical_sequences.descending_boost":    &c.Sequences.DescendingBoost,
		"numerical_sequences.emphasis_boost":      &c.Sequences.EmphasisBoost,
		"numerical_sequences.broken_penalty":      &c.Sequences.BrokenPenalty,
		"suit_predominance.pair_boost":            &c.Suits.PairBoost,
		"suit_predominance.three_card_boost":      &c.Suits.ThreeCardBoost,
		"suit_predominance.four_card_boost":       &c.Suits.FourCardBoost,
		"suit_predominance.opposing_reduction":    &c.Suits.OpposingReduction,
		"reversal_propagation.stability_reduction": &c.Reversal.StabilityReduction,
		"reversal_propagation.major_multiplier":    &c.Reversal.MajorMultiplier,
		"conflict_resolution.threshold":            &c.Conflict.Threshold,
		"conflict_resolution.dampening":            &c.Conflict.Dampening,
		"normalization.intensity_gain":             &c.Normalization.IntensityGain,
		"normalization.shared_theme_multiplier":    &c.Normalization.SharedThemeMultiplier,
	}
	target, ok := targets[key]
	if !ok {
		return &domain.ConfigError{Param: key, Reason: "unknown parameter"}
	}
	*target = v
	return nil
}

// Validate checks every parameter against its documented range. It fails
// fast with the first offending parameter.
func (c Config) Validate() error {
	positive := map[string]float64{
		"major_dominance.multiplier":            c.MajorDominance.Multiplier,
		"reversal_propagation.major_multiplier": c.Reversal.MajorMultiplier,
		"conflict_resolution.threshold":         c.Conflict.Threshold,
		"normalization.shared_theme_multiplier": c.Normalization.SharedThemeMultiplier,
	}
	for param, v := range positive {
		if v <= 0 {
			return &domain.ConfigError{Param: param, Reason: fmt.Sprintf("must be > 0, got %v", v)}
		}
	}

	nonNegative := map[string]float64{
		"elemental_dignities.same_element_boost":   c.Elemental.SameElementBoost,
		"elemental_dignities.complementary_boost":  c.Elemental.ComplementaryBoost,
		"elemental_dignities.opposing_reduction":   c.Elemental.OpposingReduction,
		"numerical_sequences.ascending_boost":      c.Sequences.AscendingBoost,
		"numerical_sequences.descending_boost":     c.Sequences.DescendingBoost,
		"numerical_sequences.emphasis_boost":       c.Sequences.EmphasisBoost,
		"numerical_sequences.broken_penalty":       c.Sequences.BrokenPenalty,
		"suit_predominance.pair_boost":             c.Suits.PairBoost,
		"suit_predominance.three_card_boost":       c.Suits.ThreeCardBoost,
		"suit_predominance.four_card_boost":        c.Suits.FourCardBoost,
		"suit_predominance.opposing_reduction":     c.Suits.OpposingReduction,
		"reversal_propagation.stability_reduction": c.Reversal.StabilityReduction,
		"normalization.intensity_gain":             c.Normalization.IntensityGain,
	}
	for param, v := range nonNegative {
		if v < 0 {
			return &domain.ConfigError{Param: param, Reason: fmt.Sprintf("must be >= 0, got %v", v)}
		}
	}

	unitInterval := map[string]float64{
		"adjacency.direct_weight":     c.Adjacency.DirectWeight,
		"adjacency.diagonal_weight":   c.Adjacency.DiagonalWeight,
		"adjacency.row_weight":        c.Adjacency.RowWeight,
		"adjacency.near_weight":       c.Adjacency.NearWeight,
		"adjacency.distant_weight":    c.Adjacency.DistantWeight,
		"adjacency.high_confidence":   c.Adjacency.HighConfidence,
		"adjacency.medium_confidence": c.Adjacency.MediumConfidence,
		"conflict_resolution.dampening": c.Conflict.Dampening,
	}
	for param, v := range unitInterval {
		if v <= 0 || v > 1 {
			return &domain.ConfigError{Param: param, Reason: fmt.Sprintf("must be in (0, 1], got %v", v)}
		}
	}

	a := c.Adjacency
	if a.DirectLimit <= 0 {
		return &domain.ConfigError{Param: "adjacency.direct_limit", Reason: fmt.Sprintf("must be > 0, got %v", a.DirectLimit)}
	}
	if !(a.DirectLimit < a.DiagonalLimit && a.DiagonalLimit < a.RowLimit && a.RowLimit < a.NearLimit) {
		return &domain.ConfigError{Param: "adjacency", Reason: "distance limits must be strictly ascending"}
	}
	if a.MediumConfidence > a.HighConfidence {
		return &domain.ConfigError{Param: "adjacency.medium_confidence", Reason: "must not exceed high_confidence"}
	}
	return nil
}
