// Package openrouter implements the generative renderer against the
// OpenRouter API. Failures here are always recoverable: the service falls
// back to the deterministic template output.
package openrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/randomtoy/arcana-go/internal/domain"
	"github.com/randomtoy/arcana-go/internal/ports"
)

// Client implements ports.Renderer via the OpenRouter API.
type Client struct {
	httpClient     *http.Client
	apiKey         string
	baseURL        string
	model          string
	fallbackModels []string
	logger         *slog.Logger
}

func NewClient(httpClient *http.Client, apiKey, baseURL, model string, fallbackModels []string, logger *slog.Logger) *Client {
	return &Client{
		httpClient:     httpClient,
		apiKey:         apiKey,
		baseURL:        strings.TrimRight(baseURL, "/"),
		model:          model,
		fallbackModels: fallbackModels,
		logger:         logger,
	}
}

// chatRequest / chatResponse mirror the OpenAI-compatible API shapes.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (c *Client) Render(ctx context.Context, in ports.RenderInput) (ports.RenderOutput, error) {
	models := make([]string, 0, 1+len(c.fallbackModels))
	models = append(models, c.model)
	models = append(models, c.fallbackModels...)

	var lastErr error
	for _, model := range models {
		out, err := c.renderWithModel(ctx, in, model)
		if err == nil {
			return out, nil
		}
		lastErr = err
		if len(models) > 1 {
			c.logger.WarnContext(ctx, "model failed, trying next", "model", model, "error", err)
		}
	}

	return ports.RenderOutput{}, lastErr
}

func (c *Client) renderWithModel(ctx context.Context, in ports.RenderInput, model string) (ports.RenderOutput, error) {
	userPrompt := buildUserPrompt(in)

	content, err := c.callLLM(ctx, model, systemPrompt, userPrompt)
	if err != nil {
		return ports.RenderOutput{}, fmt.Errorf("%w: %w", domain.ErrUpstreamLLM, err)
	}

	var out ports.RenderOutput
	if err := json.Unmarshal([]byte(content), &out); err != nil {
		c.logger.WarnContext(ctx, "LLM returned invalid JSON, retrying", "model", model, "error", err)
		content, err = c.callLLM(ctx, model, systemPrompt, retryPrompt(content))
		if err != nil {
			return ports.RenderOutput{}, fmt.Errorf("%w: %w", domain.ErrUpstreamLLM, err)
		}
		if err := json.Unmarshal([]byte(content), &out); err != nil {
			return ports.RenderOutput{}, fmt.Errorf("%w: %w", domain.ErrInvalidLLMJSON, err)
		}
	}

	if err := validateOutput(in, out); err != nil {
		return ports.RenderOutput{}, err
	}
	out.Model = model
	return out, nil
}

// validateOutput enforces the renderer contract: a summary and one text per
// position. Anything less degrades to the template renderer.
func validateOutput(in ports.RenderInput, out ports.RenderOutput) error {
	if strings.TrimSpace(out.Summary) == "" {
		return fmt.Errorf("%w: empty summary", domain.ErrInvalidLLMJSON)
	}
	for _, card := range in.Cards {
		if strings.TrimSpace(out.CardTexts[card.Position]) == "" {
			return fmt.Errorf("%w: missing card text for position %q", domain.ErrInvalidLLMJSON, card.Position)
		}
	}
	return nil
}

func (c *Client) callLLM(ctx context.Context, model, system, user string) (string, error) {
	reqBody := chatRequest{
		Model: model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := c.baseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("http call: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("upstream status %d: %s", resp.StatusCode, string(respBody))
	}

	var chatResp chatResponse
	if err := json.Unmarshal(respBody, &chatResp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}

	return strings.TrimSpace(chatResp.Choices[0].Message.Content), nil
}

const systemPrompt = `You are a tarot reader turning pre-computed card influence data into neutral, reflective prose.

Rules:
- The numeric scores and influence factors are authoritative; describe them, never contradict them.
- Be maximally neutral and balanced.
- Never provide medical, legal, or financial advice.
- Never predict specific outcomes or disasters.
- Offer balanced possibilities and reflective questions.

Respond with ONLY a JSON object (no markdown, no code fences, no extra text) matching this exact schema:
{
  "summary": "<one-paragraph reading summary>",
  "card_texts": { "<position_id>": "<influenced interpretation for that card>" },
  "advice": ["<up to three pieces of practical advice>"],
  "follow_up_questions": ["<up to three reflective questions>"]
}`

func buildUserPrompt(in ports.RenderInput) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Spread: %s\n\nCards with computed influences:\n", in.SpreadType)

	for _, card := range in.Cards {
		fmt.Fprintf(&b, "  Position %s: %s (%s)\n", card.Position, card.CardName, card.Orientation)
		fmt.Fprintf(&b, "    Base meaning: %s\n", card.BaseText)
		fmt.Fprintf(&b, "    Polarity %.2f, intensity %.2f\n", card.PolarityScore, card.IntensityScore)
		for _, f := range card.Factors {
			fmt.Fprintf(&b, "    Influence: %s (effect %+.2f, %s confidence)\n", f.Explain, f.Effect, f.Confidence)
		}
	}

	b.WriteString("\nWrite the JSON object covering every position listed above.")
	return b.String()
}

func retryPrompt(badJSON string) string {
	return fmt.Sprintf(`Your previous response was not valid JSON. Here is what you returned:
%s

Return ONLY the corrected JSON object matching this schema (no markdown, no code fences):
{
  "summary": "...",
  "card_texts": { "<position_id>": "..." },
  "advice": ["..."],
  "follow_up_questions": ["..."]
}`, badJSON)
}
