package payoff

import "github.com/shopspring/decimal"

// Preset is a named template strategy built around a base price.
type Preset struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Legs        []Leg  `json:"legs"`
}

func leg(typ, position string, strike, premium decimal.Decimal) Leg {
	return Leg{Type: typ, Position: position, Strike: strike, Premium: premium, Quantity: 1}
}

// Presets returns the standard strategy templates with strikes placed
// around base. Strikes below zero are clamped to zero.
func Presets(base decimal.Decimal) []Preset {
	at := func(offset int64) decimal.Decimal {
		return decimal.Max(decimal.Zero, base.Add(decimal.NewFromInt(offset)))
	}
	p := func(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

	return []Preset{
		{
			Name:        "Long Call",
			Description: "Bullish, unlimited upside",
			Legs:        []Leg{leg(TypeCall, PositionLong, base, p(5))},
		},
		{
			Name:        "Long Put",
			Description: "Bearish, profit on decline",
			Legs:        []Leg{leg(TypePut, PositionLong, base, p(5))},
		},
		{
			Name:        "Covered Call",
			Description: "Income on existing stock",
			Legs: []Leg{
				leg(TypeStock, PositionLong, base, decimal.Zero),
				leg(TypeCall, PositionShort, at(10), p(3)),
			},
		},
		{
			Name:        "Long Straddle",
			Description: "Profit from volatility",
			Legs: []Leg{
				leg(TypeCall, PositionLong, base, p(5)),
				leg(TypePut, PositionLong, base, p(5)),
			},
		},
		{
			Name:        "Short Straddle",
			Description: "Profit from stability",
			Legs: []Leg{
				leg(TypeCall, PositionShort, base, p(5)),
				leg(TypePut, PositionShort, base, p(5)),
			},
		},
		{
			Name:        "Long Strangle",
			Description: "Cheaper volatility bet",
			Legs: []Leg{
				leg(TypePut, PositionLong, at(-10), p(3)),
				leg(TypeCall, PositionLong, at(10), p(3)),
			},
		},
		{
			Name:        "Bull Call Spread",
			Description: "Limited risk bullish",
			Legs: []Leg{
				leg(TypeCall, PositionLong, base, p(5)),
				leg(TypeCall, PositionShort, at(10), p(2)),
			},
		},
		{
			Name:        "Bear Put Spread",
			Description: "Limited risk bearish",
			Legs: []Leg{
				leg(TypePut, PositionLong, base, p(5)),
				leg(TypePut, PositionShort, at(-10), p(2)),
			},
		},
		{
			Name:        "Iron Condor",
			Description: "Range-bound profit",
			Legs: []Leg{
				leg(TypePut, PositionLong, at(-20), p(1)),
				leg(TypePut, PositionShort, at(-10), p(2.5)),
				leg(TypeCall, PositionShort, at(10), p(2.5)),
				leg(TypeCall, PositionLong, at(20), p(1)),
			},
		},
		{
			Name:        "Iron Butterfly",
			Description: "Pinpoint stability bet",
			Legs: []Leg{
				leg(TypePut, PositionLong, at(-10), p(2)),
				leg(TypePut, PositionShort, base, p(5)),
				leg(TypeCall, PositionShort, base, p(5)),
				leg(TypeCall, PositionLong, at(10), p(2)),
			},
		},
	}
}
