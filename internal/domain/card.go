package domain

// Arcana distinguishes the 22 Major cards from the 56 suited Minor cards.
type Arcana string

const (
	ArcanaMajor Arcana = "major"
	ArcanaMinor Arcana = "minor"
)

// Suit is a Minor Arcana suit. Major cards carry no suit.
type Suit string

const (
	SuitWands     Suit = "wands"
	SuitCups      Suit = "cups"
	SuitSwords    Suit = "swords"
	SuitPentacles Suit = "pentacles"
)

// Element is a card's elemental association.
type Element string

const (
	ElementFire  Element = "fire"
	ElementWater Element = "water"
	ElementAir   Element = "air"
	ElementEarth Element = "earth"
)

// Orientation represents the orientation of a drawn tarot card.
type Orientation string

const (
	Upright  Orientation = "upright"
	Reversed Orientation = "reversed"
)

// Valid reports whether o is one of the two known orientations.
func (o Orientation) Valid() bool {
	return o == Upright || o == Reversed
}

// Card is the immutable catalog record for a single tarot card.
// Number is 1..10 for numbered Minor cards and 0 otherwise; court cards
// carry a Rank instead.
type Card struct {
	ID           string             `json:"id"`
	Name         string             `json:"name"`
	Arcana       Arcana             `json:"arcana"`
	Suit         Suit               `json:"suit,omitempty"`
	Number       int                `json:"number,omitempty"`
	Rank         string             `json:"rank,omitempty"`
	Element      Element            `json:"element"`
	Polarity     float64            `json:"polarity_baseline"`
	Intensity    float64            `json:"intensity_baseline"`
	Keywords     []string           `json:"keywords"`
	Themes       map[string]float64 `json:"themes"`
	UprightText  string             `json:"upright_text"`
	ReversedText string             `json:"reversed_text"`
}

// IsMajor reports whether the card belongs to the Major Arcana.
func (c Card) IsMajor() bool { return c.Arcana == ArcanaMajor }

// IsNumbered reports whether the card is a numbered (non-court) Minor card.
func (c Card) IsNumbered() bool { return c.Arcana == ArcanaMinor && c.Number > 0 }

// Meaning returns the base description text for the given orientation.
func (c Card) Meaning(o Orientation) string {
	if o == Reversed {
		return c.ReversedText
	}
	return c.UprightText
}
