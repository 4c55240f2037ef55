package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "optionlab/internal/errors"
	"optionlab/internal/models"
	"optionlab/internal/services"
)

// StrategyHandler handles strategy-related requests.
type StrategyHandler struct {
	strategyService services.StrategyServicer
	auditService    services.AuditServicer
}

// NewStrategyHandler creates a new StrategyHandler.
func NewStrategyHandler(strategyService services.StrategyServicer, auditService services.AuditServicer) *StrategyHandler {
	return &StrategyHandler{strategyService: strategyService, auditService: auditService}
}

// LegRequest represents one option leg in a create request. Type and position
// are stored as given; strike and premium must be present, zero allowed.
type LegRequest struct {
	Type     string           `json:"type" binding:"required,max=20"`
	Position string           `json:"position" binding:"required,max=20"`
	Strike   *decimal.Decimal `json:"strike" binding:"required,dec_gte0" swaggertype:"number"`
	Premium  *decimal.Decimal `json:"premium" binding:"required,dec_gte0" swaggertype:"number"`
	Quantity int              `json:"quantity" binding:"required,min=1"`
}

// CreateStrategyRequest represents the request payload for creating a strategy.
type CreateStrategyRequest struct {
	Name   string       `json:"name" binding:"required,min=1,max=100"`
	Symbol string       `json:"symbol" binding:"omitempty,ticker"`
	Legs   []LegRequest `json:"legs" binding:"required,min=1,dive"`
}

func (r CreateStrategyRequest) legInputs() []services.LegInput {
	legs := make([]services.LegInput, len(r.Legs))
	for i, l := range r.Legs {
		legs[i] = services.LegInput{
			Type:     l.Type,
			Position: l.Position,
			Strike:   *l.Strike,
			Premium:  *l.Premium,
			Quantity: l.Quantity,
		}
	}
	return legs
}

// CreateStrategy handles the creation of a new strategy with its legs.
// @Summary     Create a strategy
// @Description Create a strategy with one or more option legs for the signed-in user
// @Tags        strategies
// @Accept      json
// @Produce     json
// @Security    SessionCookie
// @Param       request body CreateStrategyRequest true "Strategy details"
// @Success     201 {object} models.Strategy "Strategy created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /strategies [post]
func (h *StrategyHandler) CreateStrategy(c *gin.Context) {
	email, err := getEmail(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateStrategyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	strategy, err := h.strategyService.CreateStrategy(email, req.Name, req.Symbol, req.legInputs())
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(strategy.UserID, services.AuditActionCreateStrategy, "strategy", strategy.ID, c.ClientIP(),
		map[string]interface{}{"name": strategy.Name, "legs": len(strategy.Legs)})

	c.JSON(http.StatusCreated, strategy)
}

// ListStrategies returns the signed-in user's strategies, oldest first.
// @Summary     List strategies
// @Description List all strategies owned by the signed-in user with their legs
// @Tags        strategies
// @Produce     json
// @Security    SessionCookie
// @Success     200 {array}  models.Strategy "Strategies"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /strategies [get]
func (h *StrategyHandler) ListStrategies(c *gin.Context) {
	email, err := getEmail(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	strategies, err := h.strategyService.ListStrategies(email)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if strategies == nil {
		strategies = []models.Strategy{}
	}

	c.JSON(http.StatusOK, strategies)
}

// GetStrategy returns one strategy.
// @Summary     Get a strategy
// @Description Get a strategy owned by the signed-in user
// @Tags        strategies
// @Produce     json
// @Security    SessionCookie
// @Param       id path string true "Strategy ID"
// @Success     200 {object} models.Strategy "Strategy"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Owned by another user"
// @Failure     404 {object} ErrorResponse "Strategy not found"
// @Router      /strategies/{id} [get]
func (h *StrategyHandler) GetStrategy(c *gin.Context) {
	email, err := getEmail(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parseStrategyID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	strategy, err := h.strategyService.GetStrategy(email, id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, strategy)
}

// DeleteStrategy deletes a strategy and its legs.
// @Summary     Delete a strategy
// @Description Delete a strategy owned by the signed-in user together with its legs
// @Tags        strategies
// @Security    SessionCookie
// @Param       id path string true "Strategy ID"
// @Success     204 "Strategy deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Owned by another user"
// @Failure     404 {object} ErrorResponse "Strategy not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /strategies/{id} [delete]
func (h *StrategyHandler) DeleteStrategy(c *gin.Context) {
	email, err := getEmail(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parseStrategyID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	strategy, err := h.strategyService.DeleteStrategy(email, id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(strategy.UserID, services.AuditActionDeleteStrategy, "strategy", strategy.ID, c.ClientIP(),
		map[string]interface{}{"name": strategy.Name})

	c.Status(http.StatusNoContent)
}

// AnalyzeStrategy returns the expiry payoff profile of a stored strategy.
// @Summary     Analyse a strategy
// @Description Payoff curve, breakevens and profit/loss extremes of a stored strategy
// @Tags        strategies
// @Produce     json
// @Security    SessionCookie
// @Param       id        path  string true  "Strategy ID"
// @Param       min_price query number false "Lowest chart price"
// @Param       max_price query number false "Highest chart price"
// @Param       points    query int    false "Number of curve points (2-500)"
// @Success     200 {object} payoff.Analysis "Analysis"
// @Failure     400 {object} ErrorResponse "Legs cannot be priced"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Owned by another user"
// @Failure     404 {object} ErrorResponse "Strategy not found"
// @Router      /strategies/{id}/analysis [get]
func (h *StrategyHandler) AnalyzeStrategy(c *gin.Context) {
	email, err := getEmail(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parseStrategyID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	opts, err := parseCurveOptions(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	analysis, err := h.strategyService.AnalyzeStrategy(email, id, opts)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, analysis)
}
