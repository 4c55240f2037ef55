package services

import (
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	apperrors "optionlab/internal/errors"
	"optionlab/internal/logger"
	"optionlab/internal/validator"
)

// AlertStatusAccepted is the status of an acknowledged alert.
const AlertStatusAccepted = "accepted"

// alertService acknowledges price alerts. Alerts are logged, not stored or
// evaluated.
type alertService struct {
	logger *zap.SugaredLogger
}

// NewAlertService creates a new AlertServicer.
func NewAlertService() AlertServicer {
	return &alertService{logger: logger.Named("alerts")}
}

// CreateAlert validates and acknowledges an alert request.
func (s *alertService) CreateAlert(ownerEmail, symbol string, targetPrice decimal.Decimal) (*Alert, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" || !validator.IsTicker(symbol) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "a valid symbol is required")
	}
	if !targetPrice.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "target_price must be positive")
	}

	s.logger.Infow("price alert requested", "email", ownerEmail, "symbol", symbol, "target_price", targetPrice.String())

	return &Alert{
		Status:      AlertStatusAccepted,
		Symbol:      symbol,
		TargetPrice: targetPrice,
	}, nil
}
