package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"optionlab/internal/services"
)

type mockAlertService struct {
	createAlertFn func(ownerEmail, symbol string, targetPrice decimal.Decimal) (*services.Alert, error)
}

func (m *mockAlertService) CreateAlert(ownerEmail, symbol string, targetPrice decimal.Decimal) (*services.Alert, error) {
	if m.createAlertFn != nil {
		return m.createAlertFn(ownerEmail, symbol, targetPrice)
	}
	return &services.Alert{Status: services.AlertStatusAccepted, Symbol: symbol, TargetPrice: targetPrice}, nil
}

func setupAlertRouter(handler *AlertHandler) *gin.Engine {
	r := gin.New()
	r.POST("/api/alerts", injectSession("a@x.com"), handler.CreateAlert)
	return r
}

func TestAlertHandler_CreateAlert(t *testing.T) {
	t.Run("returns 202", func(t *testing.T) {
		r := setupAlertRouter(NewAlertHandler(services.NewAlertService()))

		rec := doRequest(r, http.MethodPost, "/api/alerts", `{"symbol":"aapl","target_price":"150.5"}`)

		if rec.Code != http.StatusAccepted {
			t.Fatalf("expected 202, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["status"] != "accepted" || result["symbol"] != "AAPL" || result["target_price"] != 150.5 {
			t.Errorf("unexpected body %v", result)
		}
	})

	tests := []struct {
		name string
		body string
	}{
		{"missing symbol", `{"target_price":100}`},
		{"missing target price", `{"symbol":"AAPL"}`},
		{"zero target price", `{"symbol":"AAPL","target_price":0}`},
		{"invalid symbol", `{"symbol":"$$$","target_price":100}`},
	}

	for _, tt := range tests {
		t.Run("returns 400 on "+tt.name, func(t *testing.T) {
			called := false
			svc := &mockAlertService{
				createAlertFn: func(string, string, decimal.Decimal) (*services.Alert, error) {
					called = true
					return &services.Alert{}, nil
				},
			}
			r := setupAlertRouter(NewAlertHandler(svc))

			rec := doRequest(r, http.MethodPost, "/api/alerts", tt.body)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}
			assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
			if called {
				t.Error("service must not be called for invalid input")
			}
		})
	}
}
