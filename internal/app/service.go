package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/randomtoy/arcana-go/internal/domain"
	"github.com/randomtoy/arcana-go/internal/engine"
	"github.com/randomtoy/arcana-go/internal/ports"
)

// PositionInput is one positioned card of a compute request, with the card
// still unresolved.
type PositionInput struct {
	PositionID  string
	CardID      string
	Orientation string
	X, Y        float64
}

// ComputeRequest asks for influences over caller-supplied positioned cards.
type ComputeRequest struct {
	ReadingID     string
	SpreadType    string
	Positions     []PositionInput
	RuleOverrides map[string]float64
	Save          bool
}

// DrawRequest asks the service to deal a fresh reading onto a spread layout
// and compute its influences.
type DrawRequest struct {
	SpreadType    string
	DeckID        string
	RuleOverrides map[string]float64
	Save          bool
}

// ReadingService orchestrates catalog resolution, the influence engine,
// text rendering and optional history persistence. The renderer and history
// store may be nil: without a renderer the deterministic template text
// stands, without a history store nothing is persisted.
type ReadingService struct {
	catalog  ports.CardCatalog
	spreads  ports.SpreadStore
	engine   *engine.Engine
	renderer ports.Renderer
	history  ports.ReadingStore
	rng      domain.RNG
	logger   *slog.Logger
}

func NewReadingService(
	catalog ports.CardCatalog,
	spreads ports.SpreadStore,
	eng *engine.Engine,
	renderer ports.Renderer,
	history ports.ReadingStore,
	rng domain.RNG,
	logger *slog.Logger,
) *ReadingService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReadingService{
		catalog:  catalog,
		spreads:  spreads,
		engine:   eng,
		renderer: renderer,
		history:  history,
		rng:      rng,
		logger:   logger,
	}
}

// Compute resolves the request's card IDs against the catalog, runs the
// influence engine and renders the result.
func (s *ReadingService) Compute(ctx context.Context, req ComputeRequest) (domain.InfluenceResult, error) {
	readingID := req.ReadingID
	if readingID == "" {
		readingID = uuid.NewString()
	}

	cards := make([]domain.PositionedCard, len(req.Positions))
	for i, p := range req.Positions {
		card, err := s.catalog.GetCard(ctx, p.CardID)
		if err != nil {
			// Only an unknown card is the caller's fault; catalog faults
			// surface as internal errors.
			if errors.Is(err, domain.ErrCardNotFound) {
				return domain.InfluenceResult{}, &domain.ValidationError{
					Field:  fmt.Sprintf("positions[%d].card_id", i),
					Reason: err.Error(),
				}
			}
			return domain.InfluenceResult{}, fmt.Errorf("resolve card %s: %w", p.CardID, err)
		}
		cards[i] = domain.PositionedCard{
			Position:    domain.Position{ID: p.PositionID, X: p.X, Y: p.Y},
			Card:        card,
			Orientation: domain.Orientation(p.Orientation),
		}
	}

	reading := domain.Reading{ID: readingID, SpreadType: req.SpreadType, Cards: cards}
	return s.finish(ctx, reading, req.RuleOverrides, req.Save)
}

// Draw deals a fresh reading onto the named spread layout and computes its
// influences.
func (s *ReadingService) Draw(ctx context.Context, req DrawRequest) (domain.InfluenceResult, error) {
	layout, err := s.spreads.GetLayout(req.SpreadType)
	if err != nil {
		return domain.InfluenceResult{}, err
	}
	deck, err := s.catalog.GetDeck(ctx, req.DeckID)
	if err != nil {
		return domain.InfluenceResult{}, err
	}
	reading, err := domain.DealReading(uuid.NewString(), layout, deck, s.rng)
	if err != nil {
		return domain.InfluenceResult{}, fmt.Errorf("deal reading: %w", err)
	}
	return s.finish(ctx, reading, req.RuleOverrides, req.Save)
}

func (s *ReadingService) finish(ctx context.Context, reading domain.Reading, overrides map[string]float64, save bool) (domain.InfluenceResult, error) {
	result, err := s.engine.ComputeWithOverrides(reading, overrides)
	if err != nil {
		return domain.InfluenceResult{}, err
	}

	s.applyRenderer(ctx, &result, reading.SpreadType)

	if save && s.history != nil {
		rec := ports.ReadingRecord{
			ID:         result.ReadingID,
			SpreadType: reading.SpreadType,
			Result:     result,
			CreatedAt:  time.Now().UTC(),
		}
		if err := s.history.Save(ctx, rec); err != nil {
			return domain.InfluenceResult{}, fmt.Errorf("save reading: %w", err)
		}
	}
	return result, nil
}

// applyRenderer swaps the deterministic text for generative prose when a
// renderer is configured and succeeds. Renderer failure is always recovered
// locally: the structured result stands and the template text remains.
func (s *ReadingService) applyRenderer(ctx context.Context, result *domain.InfluenceResult, spreadType string) {
	if s.renderer == nil || len(result.Cards) == 0 {
		return
	}
	start := time.Now()
	out, err := s.renderer.Render(ctx, ports.RenderInput{
		ReadingID:  result.ReadingID,
		SpreadType: spreadType,
		Cards:      result.Cards,
	})
	if err != nil {
		s.logger.WarnContext(ctx, "generative renderer unavailable, using template output",
			"reading_id", result.ReadingID, "error", err)
		return
	}
	result.Summary = out.Summary
	if len(out.Advice) > 0 {
		result.Advice = out.Advice
	}
	if len(out.FollowUpQuestions) > 0 {
		result.FollowUpQuestions = out.FollowUpQuestions
	}
	for i := range result.Cards {
		if text := out.CardTexts[result.Cards[i].Position]; text != "" {
			result.Cards[i].InfluencedText = text
		}
	}
	s.logger.DebugContext(ctx, "generative render applied",
		"reading_id", result.ReadingID, "model", out.Model,
		"latency_ms", time.Since(start).Milliseconds())
}

// Spreads lists the available spread layouts.
func (s *ReadingService) Spreads() []domain.SpreadLayout {
	return s.spreads.ListLayouts()
}

// GetReading fetches a persisted reading by ID.
func (s *ReadingService) GetReading(ctx context.Context, id string) (ports.ReadingRecord, error) {
	if s.history == nil {
		return ports.ReadingRecord{}, domain.ErrReadingNotFound
	}
	return s.history.Get(ctx, id)
}

// ListReadings returns recent persisted readings, newest first.
func (s *ReadingService) ListReadings(ctx context.Context, limit int) ([]ports.ReadingRecord, error) {
	if s.history == nil {
		return nil, nil
	}
	return s.history.List(ctx, limit)
}

// DeleteReading removes a persisted reading.
func (s *ReadingService) DeleteReading(ctx context.Context, id string) error {
	if s.history == nil {
		return domain.ErrReadingNotFound
	}
	return s.history.Delete(ctx, id)
}
