package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "optionlab/internal/errors"
	"optionlab/internal/services"
)

// AlertHandler accepts price alert requests.
type AlertHandler struct {
	alertService services.AlertServicer
}

// NewAlertHandler creates a new AlertHandler.
func NewAlertHandler(alertService services.AlertServicer) *AlertHandler {
	return &AlertHandler{alertService: alertService}
}

// CreateAlertRequest represents the request payload for a price alert.
type CreateAlertRequest struct {
	Symbol      string          `json:"symbol" binding:"required,ticker"`
	TargetPrice decimal.Decimal `json:"target_price" binding:"dec_gt0" swaggertype:"number"`
}

// CreateAlert acknowledges a price alert. Alerts are not persisted.
// @Summary     Create a price alert
// @Description Validate and acknowledge a price alert
// @Tags        alerts
// @Accept      json
// @Produce     json
// @Security    SessionCookie
// @Param       request body CreateAlertRequest true "Alert details"
// @Success     202 {object} services.Alert "Alert accepted"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /alerts [post]
func (h *AlertHandler) CreateAlert(c *gin.Context) {
	email, err := getEmail(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateAlertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	alert, err := h.alertService.CreateAlert(email, req.Symbol, req.TargetPrice)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, alert)
}
