package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "optionlab/internal/errors"
	"optionlab/internal/services"
)

// QuoteHandler serves stock quotes from the market data provider.
type QuoteHandler struct {
	quoteService services.QuoteServicer
}

// NewQuoteHandler creates a new QuoteHandler.
func NewQuoteHandler(quoteService services.QuoteServicer) *QuoteHandler {
	return &QuoteHandler{quoteService: quoteService}
}

// GetPrice returns the latest quote for a symbol.
// @Summary     Get a stock price
// @Description Latest quote for a ticker symbol from the market data provider
// @Tags        quotes
// @Produce     json
// @Param       stock query string true "Ticker symbol"
// @Success     200 {object} quote.Quote "Quote"
// @Failure     400 {object} ErrorResponse "Missing or invalid symbol"
// @Failure     404 {object} ErrorResponse "Symbol not found"
// @Failure     429 {object} ErrorResponse "Rate limited"
// @Failure     502 {object} ErrorResponse "Upstream failure"
// @Failure     504 {object} ErrorResponse "Upstream timeout"
// @Router      /get-price [get]
func (h *QuoteHandler) GetPrice(c *gin.Context) {
	symbol := strings.TrimSpace(c.Query("stock"))
	if symbol == "" {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "stock query parameter is required"))
		return
	}

	q, err := h.quoteService.GetQuote(c.Request.Context(), symbol)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, q)
}
