package ports

import (
	"context"
	"time"

	"github.com/randomtoy/arcana-go/internal/domain"
)

// ReadingRecord is one persisted reading.
type ReadingRecord struct {
	ID         string                 `json:"id"`
	SpreadType string                 `json:"spread_type"`
	Result     domain.InfluenceResult `json:"result"`
	CreatedAt  time.Time              `json:"created_at"`
}

// ReadingStore persists computed readings. The engine itself never touches
// persistence; only the service layer records results here.
type ReadingStore interface {
	Save(ctx context.Context, rec ReadingRecord) error
	// Get returns the record for id, or domain.ErrReadingNotFound.
	Get(ctx context.Context, id string) (ReadingRecord, error)
	// List returns up to limit records, newest first.
	List(ctx context.Context, limit int) ([]ReadingRecord, error)
	// Delete removes the record for id, or returns domain.ErrReadingNotFound.
	Delete(ctx context.Context, id string) error
}
