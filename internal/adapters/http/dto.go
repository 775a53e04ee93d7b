package http

// InfluenceRequest is the JSON body of POST /v1/readings/influence,
// matching the engine's external input schema.
type InfluenceRequest struct {
	ReadingID     string             `json:"reading_id"`
	SpreadType    string             `json:"spread_type"`
	Positions     []PositionRequest  `json:"positions"`
	RuleOverrides map[string]float64 `json:"rule_overrides,omitempty"`
	Save          bool               `json:"save,omitempty"`
}

type PositionRequest struct {
	PositionID  string  `json:"position_id"`
	CardID      string  `json:"card_id"`
	Orientation string  `json:"orientation"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
}

// DrawRequest is the JSON body of POST /v1/readings/draw.
type DrawRequest struct {
	SpreadType    string             `json:"spread_type"`
	Deck          string             `json:"deck,omitempty"`
	RuleOverrides map[string]float64 `json:"rule_overrides,omitempty"`
	Save          bool               `json:"save,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
