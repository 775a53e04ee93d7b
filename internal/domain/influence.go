package domain

// Confidence grades how strongly an influence factor is supported.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// InfluenceFactor is one explainable contribution from a source card to a
// target card's final scores. Immutable once recorded; per-target order is
// rule application order.
type InfluenceFactor struct {
	SourcePosition string     `json:"source_position"`
	SourceCardID   string     `json:"source_card_id"`
	Effect         float64    `json:"effect"`
	Explain        string     `json:"explain"`
	Confidence     Confidence `json:"confidence"`
}

// InfluencedCard is a positioned card with all influences applied.
type InfluencedCard struct {
	Position       string             `json:"position"`
	CardID         string             `json:"card_id"`
	CardName       string             `json:"card_name"`
	Orientation    Orientation        `json:"orientation"`
	BaseText       string             `json:"base_text"`
	InfluencedText string             `json:"influenced_text"`
	PolarityScore  float64            `json:"polarity_score"`
	IntensityScore float64            `json:"intensity_score"`
	Themes         map[string]float64 `json:"themes"`
	Factors        []InfluenceFactor  `json:"influence_factors"`
	JournalPrompt  string             `json:"journal_prompt"`
}

// InfluenceResult is the whole-reading output, cards in input order.
type InfluenceResult struct {
	ReadingID         string           `json:"reading_id"`
	Summary           string           `json:"summary"`
	Cards             []InfluencedCard `json:"cards"`
	Advice            []string         `json:"advice"`
	FollowUpQuestions []string         `json:"follow_up_questions"`
}
