package services

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"

	apperrors "optionlab/internal/errors"
	"optionlab/internal/logger"
	"optionlab/internal/models"
	"optionlab/internal/payoff"
	"optionlab/internal/uuid"
)

// maxStrategyNameLength bounds the strategy name in characters.
const maxStrategyNameLength = 100

// strategyService handles strategy-related business logic.
type strategyService struct {
	db          *gorm.DB
	userService UserServicer
}

// NewStrategyService creates a new StrategyServicer.
func NewStrategyService(db *gorm.DB, userService UserServicer) StrategyServicer {
	return &strategyService{db: db, userService: userService}
}

func validateStrategyInput(name string, legs []LegInput) error {
	if strings.TrimSpace(name) == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "strategy name is required")
	}
	if utf8.RuneCountInString(name) > maxStrategyNameLength {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, fmt.Sprintf("strategy name must be at most %d characters", maxStrategyNameLength))
	}
	if len(legs) == 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "at least one leg is required")
	}
	for i, leg := range legs {
		if strings.TrimSpace(leg.Type) == "" || strings.TrimSpace(leg.Position) == "" {
			return apperrors.WithMessage(apperrors.ErrInvalidInput, fmt.Sprintf("leg %d: type and position are required", i+1))
		}
		if leg.Quantity < 1 {
			return apperrors.WithMessage(apperrors.ErrInvalidInput, fmt.Sprintf("leg %d: quantity must be at least 1", i+1))
		}
		if leg.Strike.IsNegative() || leg.Premium.IsNegative() {
			return apperrors.WithMessage(apperrors.ErrInvalidInput, fmt.Sprintf("leg %d: strike and premium must not be negative", i+1))
		}
	}
	return nil
}

// resolveOwner maps the session email to a user. A session for a user that
// does not exist is a server defect and is logged as such.
func (s *strategyService) resolveOwner(email string) (*models.User, error) {
	user, err := s.userService.GetUserByEmail(email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			logger.Get().Errorw("session references unknown user", "email", email)
		}
		return nil, err
	}
	return user, nil
}

// CreateStrategy stores a strategy and its legs in a single transaction.
func (s *strategyService) CreateStrategy(ownerEmail, name, symbol string, legs []LegInput) (*models.Strategy, error) {
	if err := validateStrategyInput(name, legs); err != nil {
		return nil, err
	}

	owner, err := s.resolveOwner(ownerEmail)
	if err != nil {
		return nil, err
	}

	strategy := &models.Strategy{
		UserID: owner.ID,
		Name:   strings.TrimSpace(name),
		Symbol: strings.ToUpper(strings.TrimSpace(symbol)),
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Legs").Create(strategy).Error; err != nil {
			return err
		}

		strategy.Legs = make([]models.OptionLeg, 0, len(legs))
		for _, in := range legs {
			leg := models.OptionLeg{
				StrategyID: strategy.ID,
				Type:       strings.TrimSpace(in.Type),
				Position:   strings.TrimSpace(in.Position),
				Strike:     in.Strike,
				Premium:    in.Premium,
				Quantity:   in.Quantity,
			}
			if err := tx.Create(&leg).Error; err != nil {
				return err
			}
			strategy.Legs = append(strategy.Legs, leg)
		}
		return nil
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return strategy, nil
}

// ListStrategies returns the owner's strategies with their legs, oldest first.
func (s *strategyService) ListStrategies(ownerEmail string) ([]models.Strategy, error) {
	owner, err := s.resolveOwner(ownerEmail)
	if err != nil {
		return nil, err
	}

	strategies := []models.Strategy{}
	if err := s.db.
		Preload("Legs", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC, id ASC") }).
		Where("user_id = ?", owner.ID).
		Order("created_at ASC, id ASC").
		Find(&strategies).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return strategies, nil
}

// loadOwned fetches a strategy and checks that owner holds it.
func loadOwned(db *gorm.DB, ownerID, strategyID string) (*models.Strategy, error) {
	// Postgres rejects malformed uuid literals with a query error.
	if !uuid.IsValid(strategyID) {
		return nil, apperrors.ErrStrategyNotFound
	}

	var strategy models.Strategy
	if err := db.
		Preload("Legs", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC, id ASC") }).
		Where("id = ?", strategyID).
		First(&strategy).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrStrategyNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if strategy.UserID != ownerID {
		return nil, apperrors.ErrForbidden
	}
	return &strategy, nil
}

// GetStrategy returns one strategy owned by the caller.
func (s *strategyService) GetStrategy(ownerEmail, strategyID string) (*models.Strategy, error) {
	owner, err := s.resolveOwner(ownerEmail)
	if err != nil {
		return nil, err
	}
	return loadOwned(s.db, owner.ID, strategyID)
}

// DeleteStrategy removes a strategy and its legs in one transaction and
// returns what was deleted.
func (s *strategyService) DeleteStrategy(ownerEmail, strategyID string) (*models.Strategy, error) {
	owner, err := s.resolveOwner(ownerEmail)
	if err != nil {
		return nil, err
	}

	var deleted *models.Strategy
	err = s.db.Transaction(func(tx *gorm.DB) error {
		strategy, err := loadOwned(tx, owner.ID, strategyID)
		if err != nil {
			return err
		}

		if err := tx.Where("strategy_id = ?", strategy.ID).Delete(&models.OptionLeg{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Delete(&models.Strategy{}, "id = ?", strategy.ID).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		deleted = strategy
		return nil
	})
	if err != nil {
		var appErr *apperrors.AppError
		if !errors.As(err, &appErr) {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil, err
	}

	return deleted, nil
}

// AnalyzeStrategy computes the payoff profile of a stored strategy.
func (s *strategyService) AnalyzeStrategy(ownerEmail, strategyID string, opts payoff.Options) (*payoff.Analysis, error) {
	strategy, err := s.GetStrategy(ownerEmail, strategyID)
	if err != nil {
		return nil, err
	}

	analysis, err := payoff.Analyze(LegsToPayoff(strategy.Legs), opts)
	if err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
	}
	return analysis, nil
}

// LegsToPayoff converts stored legs into payoff engine legs.
func LegsToPayoff(legs []models.OptionLeg) []payoff.Leg {
	out := make([]payoff.Leg, len(legs))
	for i, l := range legs {
		out[i] = payoff.Leg{
			Type:     l.Type,
			Position: l.Position,
			Strike:   l.Strike,
			Premium:  l.Premium,
			Quantity: l.Quantity,
		}
	}
	return out
}
