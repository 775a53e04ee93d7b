package domain

import "fmt"

// RNG abstracts random number generation for deterministic testing.
type RNG interface {
	// Intn returns a non-negative random int in [0, n).
	Intn(n int) int
}

// SpreadLayout defines the named positions of a spread and their geometry.
type SpreadLayout struct {
	Type        string     `json:"spread_type" yaml:"spread_type"`
	Name        string     `json:"name" yaml:"name"`
	Description string     `json:"description" yaml:"description"`
	Positions   []Position `json:"positions" yaml:"positions"`
}

// Validate checks that the layout has at least one position and that
// position IDs are unique and non-blank.
func (l SpreadLayout) Validate() error {
	if len(l.Positions) == 0 {
		return &ValidationError{Field: "positions", Reason: "layout must have at least one position"}
	}
	seen := make(map[string]bool, len(l.Positions))
	for i, p := range l.Positions {
		if p.ID == "" {
			return &ValidationError{Field: fmt.Sprintf("positions[%d].id", i), Reason: "must not be empty"}
		}
		if seen[p.ID] {
			return &ValidationError{Field: fmt.Sprintf("positions[%d].id", i), Reason: fmt.Sprintf("duplicate position %q", p.ID)}
		}
		seen[p.ID] = true
	}
	return nil
}

// Required returns the non-optional positions of the layout.
func (l SpreadLayout) Required() []Position {
	var out []Position
	for _, p := range l.Positions {
		if !p.Optional {
			out = append(out, p)
		}
	}
	return out
}

// DealReading draws unique cards from deck onto the layout's positions using
// the provided RNG. Orientation is 50/50 upright/reversed. Optional positions
// are filled along with the required ones, in layout order.
func DealReading(readingID string, layout SpreadLayout, deck []Card, rng RNG) (Reading, error) {
	if err := layout.Validate(); err != nil {
		return Reading{}, err
	}
	n := len(layout.Positions)
	if n > len(deck) {
		return Reading{}, ErrNExceedsDeck
	}

	// Fisher-Yates partial shuffle: only need first n elements.
	indices := make([]int, len(deck))
	for i := range indices {
		indices[i] = i
	}
	for i := len(indices) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		indices[i], indices[j] = indices[j], indices[i]
	}

	cards := make([]PositionedCard, n)
	for i := 0; i < n; i++ {
		orientation := Upright
		if rng.Intn(2) == 1 {
			orientation = Reversed
		}
		cards[i] = PositionedCard{
			Position:    layout.Positions[i],
			Card:        deck[indices[i]],
			Orientation: orientation,
		}
	}

	return Reading{
		ID:         readingID,
		SpreadType: layout.Type,
		Cards:      cards,
	}, nil
}
