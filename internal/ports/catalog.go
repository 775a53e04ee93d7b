package ports

import (
	"context"

	"github.com/randomtoy/arcana-go/internal/domain"
)

// CardCatalog resolves card identifiers against a read-only card store.
type CardCatalog interface {
	// GetCard returns the catalog record for cardID, or
	// domain.ErrCardNotFound.
	GetCard(ctx context.Context, cardID string) (domain.Card, error)
	// GetDeck returns all cards of the named deck, or domain.ErrDeckNotFound.
	GetDeck(ctx context.Context, deckID string) ([]domain.Card, error)
}

// SpreadStore provides the spread layouts a reading can be dealt onto.
type SpreadStore interface {
	// GetLayout returns the layout for spreadType, or domain.ErrSpreadNotFound.
	GetLayout(spreadType string) (domain.SpreadLayout, error)
	// ListLayouts returns every known layout, sorted by type.
	ListLayouts() []domain.SpreadLayout
}
