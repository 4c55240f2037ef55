package services

import (
	"context"

	"github.com/shopspring/decimal"

	"optionlab/internal/models"
	"optionlab/internal/pagination"
	"optionlab/internal/payoff"
	"optionlab/internal/quote"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	FindOrCreateUser(email, givenName, familyName, displayName string) (user *models.User, created bool, err error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
}

// LegInput is one option leg of a strategy being created.
type LegInput struct {
	Type     string
	Position string
	Strike   decimal.Decimal
	Premium  decimal.Decimal
	Quantity int
}

// StrategyServicer defines the contract for strategy-related business logic.
// Every operation is scoped to the owner identified by email.
type StrategyServicer interface {
	CreateStrategy(ownerEmail, name, symbol string, legs []LegInput) (*models.Strategy, error)
	ListStrategies(ownerEmail string) ([]models.Strategy, error)
	GetStrategy(ownerEmail, strategyID string) (*models.Strategy, error)
	DeleteStrategy(ownerEmail, strategyID string) (*models.Strategy, error)
	AnalyzeStrategy(ownerEmail, strategyID string, opts payoff.Options) (*payoff.Analysis, error)
}

// QuoteServicer defines the contract for market quotes.
type QuoteServicer interface {
	GetQuote(ctx context.Context, symbol string) (*quote.Quote, error)
}

// Alert is the acknowledgement returned for an accepted price alert.
type Alert struct {
	Status      string          `json:"status"`
	Symbol      string          `json:"symbol"`
	TargetPrice decimal.Decimal `json:"target_price"`
}

// AlertServicer defines the contract for price alerts.
type AlertServicer interface {
	CreateAlert(ownerEmail, symbol string, targetPrice decimal.Decimal) (*Alert, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]interface{})
	ListForUser(userID string, page pagination.PageRequest) ([]models.AuditLog, int64, error)
}
