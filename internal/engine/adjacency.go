package engine

import (
	"math"

	"github.com/randomtoy/arcana-go/internal/domain"
)

// Weight maps the Euclidean distance between two positions onto a banded
// adjacency weight in (0, 1]. Total over all finite coordinate pairs; the
// distant band never reaches zero, so every card retains some influence on
// every other card.
func (c AdjacencyConfig) Weight(a, b domain.Position) float64 {
	d := math.Hypot(a.X-b.X, a.Y-b.Y)
	switch {
	case d <= c.DirectLimit:
		return c.DirectWeight
	case d <= c.DiagonalLimit:
		return c.DiagonalWeight
	case d <= c.RowLimit:
		return c.RowWeight
	case d <= c.NearLimit:
		return c.NearWeight
	default:
		return c.DistantWeight
	}
}

// Confidence grades an adjacency weight against the configured thresholds.
func (c AdjacencyConfig) Confidence(weight float64) domain.Confidence {
	switch {
	case weight >= c.HighConfidence:
		return domain.ConfidenceHigh
	case weight >= c.MediumConfidence:
		return domain.ConfidenceMedium
	default:
		return domain.ConfidenceLow
	}
}
