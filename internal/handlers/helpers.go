package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "optionlab/internal/errors"
	"optionlab/internal/logger"
	"optionlab/internal/middleware"
	"optionlab/internal/payoff"
	"optionlab/internal/uuid"
)

// getEmail extracts the authenticated user's email from the Gin context.
// Returns ErrUnauthorized if not present.
func getEmail(c *gin.Context) (string, error) {
	email := middleware.GetEmail(c)
	if email == "" {
		return "", apperrors.ErrUnauthorized
	}
	return email, nil
}

// parseStrategyID reads the :id path parameter. Strategy ids are UUIDs, so a
// malformed id is reported as a missing strategy.
func parseStrategyID(c *gin.Context) (string, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return "", apperrors.WithMessage(apperrors.ErrStrategyNotFound, "Invalid strategy id")
	}
	return id, nil
}

// parseDecimalQuery parses an optional decimal query parameter. A missing
// parameter yields nil.
func parseDecimalQuery(c *gin.Context, param string) (*decimal.Decimal, error) {
	raw, ok := c.GetQuery(param)
	if !ok || raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid "+param)
	}
	return &d, nil
}

// parseCurveOptions reads min_price, max_price and points from the query string.
func parseCurveOptions(c *gin.Context) (payoff.Options, error) {
	var opts payoff.Options
	var err error

	if opts.MinPrice, err = parseDecimalQuery(c, "min_price"); err != nil {
		return opts, err
	}
	if opts.MaxPrice, err = parseDecimalQuery(c, "max_price"); err != nil {
		return opts, err
	}

	var q struct {
		Points int `form:"points" binding:"omitempty,min=2,max=500"`
	}
	if err := c.ShouldBindQuery(&q); err != nil {
		return opts, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid points")
	}
	opts.Points = q.Points
	return opts, nil
}

// respondWithError writes a consistent JSON error response. If the error is an
// *AppError it uses the error's status code, code, and message. Otherwise it
// logs the unexpected error and returns a generic internal server error.
func respondWithError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Internal != nil {
			logger.Get().Errorw("app error",
				"code", appErr.Code,
				"internal", appErr.Internal.Error(),
				"path", c.Request.URL.Path,
				"request_id", middleware.GetRequestID(c),
			)
		}
		c.JSON(appErr.StatusCode, ErrorResponse{Error: ErrorDetail{Code: appErr.Code, Message: appErr.Message}})
		return
	}

	logger.Get().Errorw("unexpected error",
		"error", err.Error(),
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
		"request_id", middleware.GetRequestID(c),
	)
	c.JSON(apperrors.ErrInternalServer.StatusCode, ErrorResponse{Error: ErrorDetail{
		Code:    apperrors.ErrInternalServer.Code,
		Message: apperrors.ErrInternalServer.Message,
	}})
}

// ErrorDetail represents the inner error object in an error response.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}
