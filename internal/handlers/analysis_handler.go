package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "optionlab/internal/errors"
	"optionlab/internal/payoff"
)

const defaultPresetBase = 100

// AnalysisHandler serves payoff analysis of ad-hoc legs and preset strategies.
type AnalysisHandler struct{}

// NewAnalysisHandler creates a new AnalysisHandler.
func NewAnalysisHandler() *AnalysisHandler {
	return &AnalysisHandler{}
}

// AnalysisLegRequest is one leg to analyse.
type AnalysisLegRequest struct {
	Type     string           `json:"type" binding:"required,option_type"`
	Position string           `json:"position" binding:"required,position_type"`
	Strike   *decimal.Decimal `json:"strike" binding:"required,dec_gte0" swaggertype:"number"`
	Premium  *decimal.Decimal `json:"premium" binding:"required,dec_gte0" swaggertype:"number"`
	Quantity int              `json:"quantity" binding:"required,min=1"`
}

// AnalyzeRequest represents the request payload for an ad-hoc analysis.
type AnalyzeRequest struct {
	Legs     []AnalysisLegRequest `json:"legs" binding:"required,min=1,dive"`
	MinPrice *decimal.Decimal     `json:"min_price" swaggertype:"number"`
	MaxPrice *decimal.Decimal     `json:"max_price" swaggertype:"number"`
	Points   int                  `json:"points" binding:"omitempty,min=2,max=500"`
}

// PresetsResponse lists the preset strategies for a base price.
type PresetsResponse struct {
	BasePrice decimal.Decimal `json:"base_price" swaggertype:"number"`
	Presets   []payoff.Preset `json:"presets"`
}

// Analyze computes the payoff profile of the given legs.
// @Summary     Analyse legs
// @Description Payoff curve, breakevens and profit/loss extremes at expiry
// @Tags        analysis
// @Accept      json
// @Produce     json
// @Param       request body AnalyzeRequest true "Legs and chart range"
// @Success     200 {object} payoff.Analysis "Analysis"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /analysis [post]
func (h *AnalysisHandler) Analyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	legs := make([]payoff.Leg, len(req.Legs))
	for i, l := range req.Legs {
		legs[i] = payoff.Leg{
			Type:     l.Type,
			Position: l.Position,
			Strike:   *l.Strike,
			Premium:  *l.Premium,
			Quantity: l.Quantity,
		}
	}

	analysis, err := payoff.Analyze(legs, payoff.Options{
		MinPrice: req.MinPrice,
		MaxPrice: req.MaxPrice,
		Points:   req.Points,
	})
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	c.JSON(http.StatusOK, analysis)
}

// Presets returns the preset strategies built around base_price.
// @Summary     Preset strategies
// @Description Common option strategies with strikes around a base price
// @Tags        analysis
// @Produce     json
// @Param       base_price query number false "Underlying price (default 100)"
// @Success     200 {object} PresetsResponse "Presets"
// @Failure     400 {object} ErrorResponse "Invalid base price"
// @Router      /presets [get]
func (h *AnalysisHandler) Presets(c *gin.Context) {
	base := decimal.NewFromInt(defaultPresetBase)
	parsed, err := parseDecimalQuery(c, "base_price")
	if err != nil {
		respondWithError(c, err)
		return
	}
	if parsed != nil {
		if !parsed.IsPositive() {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "base_price must be positive"))
			return
		}
		base = *parsed
	}

	c.JSON(http.StatusOK, PresetsResponse{BasePrice: base, Presets: payoff.Presets(base)})
}
