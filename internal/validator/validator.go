// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var tickerRegex = regexp.MustCompile(`^[A-Za-z0-9.\-]{1,15}$`)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("ticker", validateTicker)
		_ = v.RegisterValidation("option_type", validateOptionType)
		_ = v.RegisterValidation("position_type", validatePositionType)
		_ = v.RegisterValidation("dec_gte0", validateDecimalNonNegative)
		_ = v.RegisterValidation("dec_gt0", validateDecimalPositive)
	}
}

// IsTicker reports whether s looks like an exchange ticker symbol.
func IsTicker(s string) bool {
	return tickerRegex.MatchString(s)
}

func validateTicker(fl validator.FieldLevel) bool {
	return IsTicker(fl.Field().String())
}

func validateOptionType(fl validator.FieldLevel) bool {
	switch strings.ToLower(fl.Field().String()) {
	case "call", "put", "stock":
		return true
	}
	return false
}

func validatePositionType(fl validator.FieldLevel) bool {
	switch strings.ToLower(fl.Field().String()) {
	case "long", "short":
		return true
	}
	return false
}

func decimalField(fl validator.FieldLevel) (decimal.Decimal, bool) {
	switch v := fl.Field().Interface().(type) {
	case decimal.Decimal:
		return v, true
	case *decimal.Decimal:
		if v == nil {
			return decimal.Zero, false
		}
		return *v, true
	}
	return decimal.Zero, false
}

func validateDecimalNonNegative(fl validator.FieldLevel) bool {
	d, ok := decimalField(fl)
	return ok && !d.IsNegative()
}

func validateDecimalPositive(fl validator.FieldLevel) bool {
	d, ok := decimalField(fl)
	return ok && d.IsPositive()
}
