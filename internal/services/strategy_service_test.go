package services

import (
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"optionlab/internal/models"
	"optionlab/internal/payoff"
	"optionlab/internal/testutil"
)

func callLeg(strike, premium int64) LegInput {
	return LegInput{
		Type:     "call",
		Position: "long",
		Strike:   decimal.NewFromInt(strike),
		Premium:  decimal.NewFromInt(premium),
		Quantity: 1,
	}
}

func newStrategyService(t *testing.T) (StrategyServicer, *gorm.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.TeardownTestDB(t, db) })
	return NewStrategyService(db, NewUserService(db)), db
}

func TestCreateStrategy(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		svc, db := newStrategyService(t)
		user := testutil.CreateTestUserWithEmail(t, db, "a@x.com")

		strategy, err := svc.CreateStrategy("a@x.com", "Iron Condor", " spy ", []LegInput{callLeg(100, 5)})
		testutil.AssertNoError(t, err)

		if strategy.ID == "" {
			t.Fatal("expected strategy ID")
		}
		if strategy.UserID != user.ID {
			t.Errorf("expected owner %s, got %s", user.ID, strategy.UserID)
		}
		if strategy.Symbol != "SPY" {
			t.Errorf("expected normalized symbol SPY, got %q", strategy.Symbol)
		}
		if len(strategy.Legs) != 1 {
			t.Fatalf("expected 1 leg, got %d", len(strategy.Legs))
		}
		leg := strategy.Legs[0]
		if leg.ID == "" || leg.StrategyID != strategy.ID {
			t.Errorf("leg not linked to strategy: %+v", leg)
		}
		if !leg.Strike.Equal(decimal.NewFromInt(100)) {
			t.Errorf("expected strike 100, got %s", leg.Strike)
		}
	})

	t.Run("free_form_leg_type", func(t *testing.T) {
		svc, db := newStrategyService(t)
		testutil.CreateTestUserWithEmail(t, db, "a@x.com")

		leg := callLeg(100, 5)
		leg.Type = "butterfly-wing"
		_, err := svc.CreateStrategy("a@x.com", "Custom", "", []LegInput{leg})
		testutil.AssertNoError(t, err)
	})

	t.Run("fractional_prices", func(t *testing.T) {
		svc, db := newStrategyService(t)
		testutil.CreateTestUserWithEmail(t, db, "a@x.com")

		leg := callLeg(0, 0)
		leg.Strike = decimal.RequireFromString("102.5")
		leg.Premium = decimal.RequireFromString("1.35")
		created, err := svc.CreateStrategy("a@x.com", "Fractional", "", []LegInput{leg})
		testutil.AssertNoError(t, err)

		var stored models.OptionLeg
		if err := db.Where("strategy_id = ?", created.ID).First(&stored).Error; err != nil {
			t.Fatalf("failed to load leg: %v", err)
		}
		if !stored.Premium.Equal(decimal.RequireFromString("1.35")) {
			t.Errorf("expected premium 1.35, got %s", stored.Premium)
		}
	})

	validation := []struct {
		name    string
		stratNm string
		legs    []LegInput
	}{
		{"empty_name", "  ", []LegInput{callLeg(100, 5)}},
		{"long_name", string(make([]byte, 101)), []LegInput{callLeg(100, 5)}},
		{"no_legs", "Empty", nil},
		{"missing_type", "Bad", []LegInput{{Position: "long", Quantity: 1}}},
		{"missing_position", "Bad", []LegInput{{Type: "call", Quantity: 1}}},
		{"zero_quantity", "Bad", []LegInput{{Type: "call", Position: "long"}}},
		{"negative_strike", "Bad", []LegInput{{Type: "call", Position: "long", Quantity: 1, Strike: decimal.NewFromInt(-1)}}},
	}
	for _, tt := range validation {
		t.Run(tt.name, func(t *testing.T) {
			svc, db := newStrategyService(t)
			testutil.CreateTestUserWithEmail(t, db, "a@x.com")

			_, err := svc.CreateStrategy("a@x.com", tt.stratNm, "", tt.legs)
			testutil.AssertAppError(t, err, "INVALID_INPUT")

			var count int64
			db.Model(&models.Strategy{}).Count(&count)
			if count != 0 {
				t.Errorf("expected no strategies after validation failure, got %d", count)
			}
		})
	}

	t.Run("unknown_owner", func(t *testing.T) {
		svc, _ := newStrategyService(t)

		_, err := svc.CreateStrategy("ghost@x.com", "Orphan", "", []LegInput{callLeg(100, 5)})
		testutil.AssertAppError(t, err, "USER_NOT_FOUND")
	})
}

// stubUsers resolves every email to a fixed user without touching the DB.
type stubUsers struct {
	user *models.User
}

func (s stubUsers) FindOrCreateUser(string, string, string, string) (*models.User, bool, error) {
	return s.user, false, nil
}
func (s stubUsers) GetUserByEmail(string) (*models.User, error) { return s.user, nil }
func (s stubUsers) GetUserByID(string) (*models.User, error)    { return s.user, nil }

func TestCreateStrategy_RollsBackOnLegFailure(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer sqlDB.Close()

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open gorm: %v", err)
	}

	owner := &models.User{Email: "a@x.com"}
	owner.ID = "0190b7a0-0000-7000-8000-000000000001"
	svc := NewStrategyService(db, stubUsers{user: owner})

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "strategies"`)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "option_legs"`)).
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	_, err = svc.CreateStrategy("a@x.com", "Iron Condor", "", []LegInput{callLeg(100, 5)})
	testutil.AssertAppError(t, err, "INTERNAL_ERROR")

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestGetStrategy_MalformedIDSkipsQuery(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer sqlDB.Close()

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open gorm: %v", err)
	}

	owner := &models.User{Email: "a@x.com"}
	owner.ID = "0190b7a0-0000-7000-8000-000000000001"
	svc := NewStrategyService(db, stubUsers{user: owner})

	// No expectations: any SQL against the uuid column would fail the test.
	_, err = svc.GetStrategy("a@x.com", "not-a-uuid")
	testutil.AssertAppError(t, err, "STRATEGY_NOT_FOUND")

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestListStrategies(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		svc, db := newStrategyService(t)
		testutil.CreateTestUserWithEmail(t, db, "a@x.com")

		strategies, err := svc.ListStrategies("a@x.com")
		testutil.AssertNoError(t, err)

		if strategies == nil || len(strategies) != 0 {
			t.Errorf("expected empty non-nil slice, got %#v", strategies)
		}
	})

	t.Run("owner_scoped_and_ordered", func(t *testing.T) {
		svc, db := newStrategyService(t)
		testutil.CreateTestUserWithEmail(t, db, "a@x.com")
		testutil.CreateTestUserWithEmail(t, db, "b@x.com")

		first, err := svc.CreateStrategy("a@x.com", "First", "", []LegInput{callLeg(100, 5), callLeg(110, 2)})
		testutil.AssertNoError(t, err)
		second, err := svc.CreateStrategy("a@x.com", "Second", "", []LegInput{callLeg(90, 1)})
		testutil.AssertNoError(t, err)
		_, err = svc.CreateStrategy("b@x.com", "Other", "", []LegInput{callLeg(90, 1)})
		testutil.AssertNoError(t, err)

		strategies, err := svc.ListStrategies("a@x.com")
		testutil.AssertNoError(t, err)

		if len(strategies) != 2 {
			t.Fatalf("expected 2 strategies, got %d", len(strategies))
		}
		if strategies[0].ID != first.ID || strategies[1].ID != second.ID {
			t.Errorf("expected creation order, got %s then %s", strategies[0].Name, strategies[1].Name)
		}
		if len(strategies[0].Legs) != 2 {
			t.Errorf("expected legs preloaded, got %d", len(strategies[0].Legs))
		}
	})
}

func TestGetStrategy(t *testing.T) {
	svc, db := newStrategyService(t)
	testutil.CreateTestUserWithEmail(t, db, "a@x.com")
	testutil.CreateTestUserWithEmail(t, db, "b@x.com")

	created, err := svc.CreateStrategy("a@x.com", "Mine", "", []LegInput{callLeg(100, 5)})
	testutil.AssertNoError(t, err)

	t.Run("owner", func(t *testing.T) {
		got, err := svc.GetStrategy("a@x.com", created.ID)
		testutil.AssertNoError(t, err)
		if got.Name != "Mine" || len(got.Legs) != 1 {
			t.Errorf("unexpected strategy: %+v", got)
		}
	})

	t.Run("other_user", func(t *testing.T) {
		_, err := svc.GetStrategy("b@x.com", created.ID)
		testutil.AssertAppError(t, err, "FORBIDDEN")
	})

	t.Run("missing", func(t *testing.T) {
		_, err := svc.GetStrategy("a@x.com", "0190b7a0-0000-7000-8000-00000000ffff")
		testutil.AssertAppError(t, err, "STRATEGY_NOT_FOUND")
	})
}

func TestDeleteStrategy(t *testing.T) {
	t.Run("removes_strategy_and_legs", func(t *testing.T) {
		svc, db := newStrategyService(t)
		testutil.CreateTestUserWithEmail(t, db, "a@x.com")

		created, err := svc.CreateStrategy("a@x.com", "Doomed", "", []LegInput{callLeg(100, 5), callLeg(110, 2)})
		testutil.AssertNoError(t, err)

		deleted, err := svc.DeleteStrategy("a@x.com", created.ID)
		testutil.AssertNoError(t, err)
		if deleted.ID != created.ID {
			t.Errorf("expected deleted strategy %s, got %s", created.ID, deleted.ID)
		}

		if n := testutil.CountLegs(t, db, created.ID); n != 0 {
			t.Errorf("expected legs to be deleted, %d remain", n)
		}
		_, err = svc.GetStrategy("a@x.com", created.ID)
		testutil.AssertAppError(t, err, "STRATEGY_NOT_FOUND")
	})

	t.Run("nonexistent", func(t *testing.T) {
		svc, db := newStrategyService(t)
		testutil.CreateTestUserWithEmail(t, db, "a@x.com")

		_, err := svc.DeleteStrategy("a@x.com", "0190b7a0-0000-7000-8000-00000000ffff")
		testutil.AssertAppError(t, err, "STRATEGY_NOT_FOUND")
	})

	t.Run("malformed_id", func(t *testing.T) {
		svc, db := newStrategyService(t)
		testutil.CreateTestUserWithEmail(t, db, "a@x.com")

		_, err := svc.DeleteStrategy("a@x.com", "abc")
		testutil.AssertAppError(t, err, "STRATEGY_NOT_FOUND")
	})

	t.Run("not_owner", func(t *testing.T) {
		svc, db := newStrategyService(t)
		testutil.CreateTestUserWithEmail(t, db, "a@x.com")
		testutil.CreateTestUserWithEmail(t, db, "b@x.com")

		created, err := svc.CreateStrategy("a@x.com", "Mine", "", []LegInput{callLeg(100, 5)})
		testutil.AssertNoError(t, err)

		_, err = svc.DeleteStrategy("b@x.com", created.ID)
		testutil.AssertAppError(t, err, "FORBIDDEN")

		if n := testutil.CountLegs(t, db, created.ID); n != 1 {
			t.Errorf("expected leg to survive, got %d", n)
		}
	})
}

func TestAnalyzeStrategy(t *testing.T) {
	svc, db := newStrategyService(t)
	testutil.CreateTestUserWithEmail(t, db, "a@x.com")

	created, err := svc.CreateStrategy("a@x.com", "Long Call", "", []LegInput{callLeg(100, 5)})
	testutil.AssertNoError(t, err)

	analysis, err := svc.AnalyzeStrategy("a@x.com", created.ID, payoff.Options{Points: 10})
	testutil.AssertNoError(t, err)

	if !analysis.MaxProfit.Unlimited {
		t.Error("expected unlimited max profit for a long call")
	}
	if len(analysis.Curve) != 11 {
		t.Errorf("expected 11 curve points, got %d", len(analysis.Curve))
	}

	t.Run("unpriceable_leg", func(t *testing.T) {
		leg := callLeg(100, 5)
		leg.Type = "future"
		custom, err := svc.CreateStrategy("a@x.com", "Custom", "", []LegInput{leg})
		testutil.AssertNoError(t, err)

		_, err = svc.AnalyzeStrategy("a@x.com", custom.ID, payoff.Options{})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}
