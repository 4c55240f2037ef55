package services

import (
	"testing"

	"github.com/shopspring/decimal"

	"optionlab/internal/testutil"
)

func TestCreateAlert(t *testing.T) {
	svc := NewAlertService()

	t.Run("accepted", func(t *testing.T) {
		alert, err := svc.CreateAlert("a@x.com", "tsla", decimal.RequireFromString("250.5"))
		testutil.AssertNoError(t, err)

		if alert.Status != "accepted" || alert.Symbol != "TSLA" {
			t.Errorf("unexpected alert: %+v", alert)
		}
		if !alert.TargetPrice.Equal(decimal.RequireFromString("250.5")) {
			t.Errorf("unexpected target price %s", alert.TargetPrice)
		}
	})

	t.Run("missing_symbol", func(t *testing.T) {
		_, err := svc.CreateAlert("a@x.com", "", decimal.NewFromInt(10))
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("non_positive_target", func(t *testing.T) {
		_, err := svc.CreateAlert("a@x.com", "TSLA", decimal.Zero)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}
