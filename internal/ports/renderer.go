package ports

import (
	"context"

	"github.com/randomtoy/arcana-go/internal/domain"
)

// RenderInput is the structured reading handed to a generative renderer.
// It carries the already-computed scores and factors; a renderer only
// produces prose, never new numbers.
type RenderInput struct {
	ReadingID  string
	SpreadType string
	Cards      []domain.InfluencedCard
}

// RenderOutput is the prose a renderer returns. CardTexts is keyed by
// position ID and must cover every card of the input.
type RenderOutput struct {
	Summary           string            `json:"summary"`
	CardTexts         map[string]string `json:"card_texts"`
	Advice            []string          `json:"advice"`
	FollowUpQuestions []string          `json:"follow_up_questions"`
	Model             string            `json:"-"`
}

// Renderer converts computed influence results into prose. The generative
// (LLM-backed) implementation is interchangeable with the deterministic
// template renderer; callers fall back to the template output whenever a
// Renderer fails or returns an incomplete structure.
type Renderer interface {
	Render(ctx context.Context, in RenderInput) (RenderOutput, error)
}
