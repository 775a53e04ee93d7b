package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/randomtoy/arcana-go/internal/adapters/catalog"
	"github.com/randomtoy/arcana-go/internal/app"
	"github.com/randomtoy/arcana-go/internal/domain"
	"github.com/randomtoy/arcana-go/internal/ports"
)

type Handler struct {
	svc         *app.ReadingService
	defaultDeck string
}

func NewHandler(svc *app.ReadingService, defaultDeck string) *Handler {
	if defaultDeck == "" {
		defaultDeck = catalog.DefaultDeckID
	}
	return &Handler{svc: svc, defaultDeck: defaultDeck}
}

func (h *Handler) Register(e *echo.Echo) {
	e.GET("/healthz", h.Healthz)
	e.GET("/v1/spreads", h.ListSpreads)
	e.POST("/v1/readings/influence", h.ComputeInfluence)
	e.POST("/v1/readings/draw", h.DrawReading)
	e.GET("/v1/readings", h.ListReadings)
	e.GET("/v1/readings/:id", h.GetReading)
	e.DELETE("/v1/readings/:id", h.DeleteReading)
}

func (h *Handler) Healthz(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

func (h *Handler) ListSpreads(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.Spreads())
}

func (h *Handler) ComputeInfluence(c echo.Context) error {
	var req InfluenceRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "malformed JSON body"})
	}

	positions := make([]app.PositionInput, len(req.Positions))
	for i, p := range req.Positions {
		positions[i] = app.PositionInput{
			PositionID:  p.PositionID,
			CardID:      p.CardID,
			Orientation: p.Orientation,
			X:           p.X,
			Y:           p.Y,
		}
	}

	result, err := h.svc.Compute(c.Request().Context(), app.ComputeRequest{
		ReadingID:     req.ReadingID,
		SpreadType:    req.SpreadType,
		Positions:     positions,
		RuleOverrides: req.RuleOverrides,
		Save:          req.Save,
	})
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

func (h *Handler) DrawReading(c echo.Context) error {
	var req DrawRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "malformed JSON body"})
	}
	if req.SpreadType == "" {
		req.SpreadType = "three_card"
	}
	if req.Deck == "" {
		req.Deck = h.defaultDeck
	}

	result, err := h.svc.Draw(c.Request().Context(), app.DrawRequest{
		SpreadType:    req.SpreadType,
		DeckID:        req.Deck,
		RuleOverrides: req.RuleOverrides,
		Save:          req.Save,
	})
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

func (h *Handler) ListReadings(c echo.Context) error {
	limit := 50
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 500 {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "limit must be an integer between 1 and 500"})
		}
		limit = parsed
	}
	records, err := h.svc.ListReadings(c.Request().Context(), limit)
	if err != nil {
		return mapError(c, err)
	}
	if records == nil {
		records = []ports.ReadingRecord{}
	}
	return c.JSON(http.StatusOK, records)
}

func (h *Handler) GetReading(c echo.Context) error {
	rec, err := h.svc.GetReading(c.Request().Context(), c.Param("id"))
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(http.StatusOK, rec)
}

func (h *Handler) DeleteReading(c echo.Context) error {
	if err := h.svc.DeleteReading(c.Request().Context(), c.Param("id")); err != nil {
		return mapError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func mapError(c echo.Context, err error) error {
	requestID, _ := c.Get("request_id").(string)

	switch {
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrInvalidConfig):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrCardNotFound),
		errors.Is(err, domain.ErrDeckNotFound),
		errors.Is(err, domain.ErrSpreadNotFound),
		errors.Is(err, domain.ErrReadingNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	default:
		slog.Error("internal error", "request_id", requestID, "error", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}
