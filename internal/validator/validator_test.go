package validator

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

type legRequest struct {
	Type     string          `binding:"required,option_type"`
	Position string          `binding:"required,position_type"`
	Strike   decimal.Decimal `binding:"dec_gte0"`
	Premium  decimal.Decimal `binding:"dec_gte0"`
}

type quoteRequest struct {
	Symbol string `binding:"required,ticker"`
}

func TestRegister_Validations(t *testing.T) {
	Register()
	if _, ok := binding.Validator.Engine().(*validator.Validate); !ok {
		t.Fatal("expected go-playground validator engine")
	}

	tests := []struct {
		name    string
		req     any
		wantErr bool
	}{
		{"valid call", legRequest{Type: "call", Position: "long", Strike: decimal.NewFromInt(100), Premium: decimal.NewFromInt(5)}, false},
		{"uppercase put", legRequest{Type: "PUT", Position: "Short", Strike: decimal.NewFromInt(90)}, false},
		{"unknown type", legRequest{Type: "future", Position: "long"}, true},
		{"unknown position", legRequest{Type: "call", Position: "flat"}, true},
		{"negative premium", legRequest{Type: "call", Position: "long", Premium: decimal.NewFromInt(-1)}, true},
		{"valid ticker", quoteRequest{Symbol: "BRK.B"}, false},
		{"ticker with space", quoteRequest{Symbol: "AA PL"}, true},
		{"ticker too long", quoteRequest{Symbol: "ABCDEFGHIJKLMNOP"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := binding.Validator.ValidateStruct(tt.req)
			if tt.wantErr && err == nil {
				t.Error("expected validation error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected validation error: %v", err)
			}
		})
	}
}

func TestIsTicker(t *testing.T) {
	for _, s := range []string{"AAPL", "msft", "BRK-B", "SPY"} {
		if !IsTicker(s) {
			t.Errorf("expected %q to be a ticker", s)
		}
	}
	for _, s := range []string{"", "AAPL;", "<script>"} {
		if IsTicker(s) {
			t.Errorf("expected %q to be rejected", s)
		}
	}
}
