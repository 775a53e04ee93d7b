package domain_test

import (
	"errors"
	"testing"

	"github.com/randomtoy/arcana-go/internal/domain"
)

// scriptedRNG replays a fixed sequence, wrapping around, so deals are
// reproducible in tests.
type scriptedRNG struct {
	seq []int
	i   int
}

func (r *scriptedRNG) Intn(n int) int {
	v := r.seq[r.i%len(r.seq)] % n
	r.i++
	return v
}

func testDeck(n int) []domain.Card {
	deck := make([]domain.Card, n)
	for i := range deck {
		deck[i] = domain.Card{
			ID:   string(rune('a' + i)),
			Name: "Card " + string(rune('A'+i)),
		}
	}
	return deck
}

func testLayout() domain.SpreadLayout {
	return domain.SpreadLayout{
		Type: "three_card",
		Name: "Three Card",
		Positions: []domain.Position{
			{ID: "past", Label: "Past", X: 0, Y: 0},
			{ID: "present", Label: "Present", X: 1, Y: 0},
			{ID: "future", Label: "Future", X: 2, Y: 0},
		},
	}
}

func TestDealReading(t *testing.T) {
	rng := &scriptedRNG{seq: []int{3, 1, 4, 1, 5, 9, 2, 6}}

	reading, err := domain.DealReading("r1", testLayout(), testDeck(10), rng)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if reading.ID != "r1" {
		t.Errorf("reading ID = %q, want r1", reading.ID)
	}
	if reading.SpreadType != "three_card" {
		t.Errorf("spread type = %q, want three_card", reading.SpreadType)
	}
	if len(reading.Cards) != 3 {
		t.Fatalf("expected 3 cards, got %d", len(reading.Cards))
	}

	seen := make(map[string]bool)
	for i, pc := range reading.Cards {
		if pc.Position.ID != testLayout().Positions[i].ID {
			t.Errorf("card %d: position %q out of layout order", i, pc.Position.ID)
		}
		if seen[pc.Card.ID] {
			t.Errorf("card %q dealt twice", pc.Card.ID)
		}
		seen[pc.Card.ID] = true
		if !pc.Orientation.Valid() {
			t.Errorf("card %d: invalid orientation %q", i, pc.Orientation)
		}
	}

	if err := reading.Validate(); err != nil {
		t.Errorf("dealt reading must validate, got %v", err)
	}
}

func TestDealReading_Deterministic(t *testing.T) {
	seq := []int{7, 2, 9, 0, 3, 3, 1, 8}

	first, err := domain.DealReading("r1", testLayout(), testDeck(10), &scriptedRNG{seq: seq})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := domain.DealReading("r1", testLayout(), testDeck(10), &scriptedRNG{seq: seq})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := range first.Cards {
		if first.Cards[i].Card.ID != second.Cards[i].Card.ID ||
			first.Cards[i].Orientation != second.Cards[i].Orientation {
			t.Errorf("card %d differs between identical RNG sequences", i)
		}
	}
}

func TestDealReading_DeckTooSmall(t *testing.T) {
	_, err := domain.DealReading("r1", testLayout(), testDeck(2), &scriptedRNG{seq: []int{0}})
	if !errors.Is(err, domain.ErrNExceedsDeck) {
		t.Errorf("expected ErrNExceedsDeck, got %v", err)
	}
}

func TestDealReading_InvalidLayout(t *testing.T) {
	layout := testLayout()
	layout.Positions[2].ID = "past" // duplicate

	_, err := domain.DealReading("r1", layout, testDeck(10), &scriptedRNG{seq: []int{0}})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestSpreadLayout_Required(t *testing.T) {
	layout := domain.SpreadLayout{
		Type: "celtic_cross",
		Positions: []domain.Position{
			{ID: "significator"},
			{ID: "crossing"},
			{ID: "outcome", Optional: true},
		},
	}
	required := layout.Required()
	if len(required) != 2 {
		t.Fatalf("expected 2 required positions, got %d", len(required))
	}
	for _, p := range required {
		if p.Optional {
			t.Errorf("position %q is optional", p.ID)
		}
	}
}
