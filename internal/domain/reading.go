package domain

import (
	"fmt"
	"math"
)

// Position is one slot in a spread layout, placed on a 2D grid.
type Position struct {
	ID       string  `json:"id" yaml:"id"`
	Label    string  `json:"label" yaml:"label"`
	X        float64 `json:"x" yaml:"x"`
	Y        float64 `json:"y" yaml:"y"`
	Optional bool    `json:"optional,omitempty" yaml:"optional,omitempty"`
}

// PositionedCard is a card placed on a position with an orientation.
type PositionedCard struct {
	Position    Position    `json:"position"`
	Card        Card        `json:"card"`
	Orientation Orientation `json:"orientation"`
}

// Reading is an ordered collection of positioned cards, unique by position ID.
type Reading struct {
	ID         string           `json:"reading_id"`
	SpreadType string           `json:"spread_type"`
	Cards      []PositionedCard `json:"cards"`
}

// Validate checks the structural invariants of a reading: non-blank unique
// position IDs, resolved cards, finite coordinates and known orientations.
// An empty reading is valid.
func (r Reading) Validate() error {
	seen := make(map[string]bool, len(r.Cards))
	for i, pc := range r.Cards {
		field := fmt.Sprintf("positions[%d]", i)
		if pc.Position.ID == "" {
			return &ValidationError{Field: field + ".position_id", Reason: "must not be empty"}
		}
		if seen[pc.Position.ID] {
			return &ValidationError{Field: field + ".position_id", Reason: fmt.Sprintf("duplicate position %q", pc.Position.ID)}
		}
		seen[pc.Position.ID] = true
		if pc.Card.ID == "" {
			return &ValidationError{Field: field + ".card_id", Reason: "must not be empty"}
		}
		if !isFinite(pc.Position.X) || !isFinite(pc.Position.Y) {
			return &ValidationError{Field: field + ".coordinates", Reason: "must be finite"}
		}
		if !pc.Orientation.Valid() {
			return &ValidationError{Field: field + ".orientation", Reason: fmt.Sprintf("unknown orientation %q", pc.Orientation)}
		}
	}
	return nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
