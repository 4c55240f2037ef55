package models

import "github.com/shopspring/decimal"

func init() {
	// Strikes and premiums go over the wire as JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// Leg types and sides understood by the payoff engine. The stored columns
// are free-form; these are the values the frontend sends.
const (
	OptionTypeCall  = "call"
	OptionTypePut   = "put"
	OptionTypeStock = "stock"

	PositionLong  = "long"
	PositionShort = "short"
)

// Strategy is a named set of option legs owned by one user.
type Strategy struct {
	Base
	UserID string      `gorm:"type:uuid;not null;index" json:"user_id"`
	Name   string      `gorm:"not null" json:"name"`
	Symbol string      `gorm:"column:stock_symbol" json:"symbol"`
	Legs   []OptionLeg `gorm:"foreignKey:StrategyID;constraint:OnDelete:CASCADE" json:"legs"`
}

// OptionLeg is one position inside a strategy. For stock legs, Strike is the
// purchase price and Premium is zero.
type OptionLeg struct {
	Base
	StrategyID string          `gorm:"type:uuid;not null;index" json:"strategy_id"`
	Type       string          `gorm:"column:option_type;not null" json:"type"`
	Position   string          `gorm:"column:position_type;not null" json:"position"`
	Strike     decimal.Decimal `gorm:"type:numeric(18,4);not null" json:"strike"`
	Premium    decimal.Decimal `gorm:"type:numeric(18,4);not null" json:"premium"`
	Quantity   int             `gorm:"not null" json:"quantity"`
}

// IsLong reports whether the leg is a long position.
func (l OptionLeg) IsLong() bool {
	return l.Position == PositionLong
}
