package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"optionlab/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	user := &models.User{
		Username:  "Test User",
		Email:     email,
		FirstName: "Test",
		LastName:  "User",
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// TestLeg returns an unsaved long call leg.
func TestLeg(strike, premium int64) models.OptionLeg {
	return models.OptionLeg{
		Type:     models.OptionTypeCall,
		Position: models.PositionLong,
		Strike:   decimal.NewFromInt(strike),
		Premium:  decimal.NewFromInt(premium),
		Quantity: 1,
	}
}

// CreateTestStrategy creates a strategy with the given legs for a user. With
// no legs, a single long call is added.
func CreateTestStrategy(t *testing.T, db *gorm.DB, userID string, legs ...models.OptionLeg) *models.Strategy {
	t.Helper()

	if len(legs) == 0 {
		legs = []models.OptionLeg{TestLeg(100, 5)}
	}

	strategy := &models.Strategy{
		UserID: userID,
		Name:   fmt.Sprintf("Test Strategy %d", nextID()),
		Symbol: "AAPL",
		Legs:   legs,
	}
	if err := db.Create(strategy).Error; err != nil {
		t.Fatalf("failed to create test strategy: %v", err)
	}
	return strategy
}

// CountLegs returns the number of option legs stored for a strategy.
func CountLegs(t *testing.T, db *gorm.DB, strategyID string) int64 {
	t.Helper()

	var count int64
	if err := db.Model(&models.OptionLeg{}).Where("strategy_id = ?", strategyID).Count(&count).Error; err != nil {
		t.Fatalf("failed to count legs: %v", err)
	}
	return count
}
