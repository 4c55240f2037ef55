// Package payoff computes expiry payoff profiles for option strategies.
//
// A strategy's payoff at expiry is piecewise linear in the underlying price,
// with kinks only at option strikes. Extremes and breakevens are therefore
// computed exactly from the value at S = 0, at every strike and from the slope
// past the highest strike, rather than by sampling the chart curve.
package payoff

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// ContractMultiplier is the number of shares one option contract controls.
const ContractMultiplier = 100

// Curve sizing.
const (
	DefaultPoints = 100
	MaxPoints     = 500
)

// Leg types and sides.
const (
	TypeCall  = "call"
	TypePut   = "put"
	TypeStock = "stock"

	PositionLong  = "long"
	PositionShort = "short"
)

var (
	// ErrUnsupportedLeg is returned for legs the engine cannot price.
	ErrUnsupportedLeg = errors.New("unsupported leg")
	// ErrInvalidRange is returned when the requested chart range is empty.
	ErrInvalidRange = errors.New("invalid price range")
)

var (
	multiplier = decimal.NewFromInt(ContractMultiplier)
	minRange   = decimal.NewFromInt(50)
	half       = decimal.NewFromFloat(0.5)
)

// Leg is one position in a strategy. For stock legs Strike is the purchase
// price and Premium is ignored.
type Leg struct {
	Type     string          `json:"type"`
	Position string          `json:"position"`
	Strike   decimal.Decimal `json:"strike"`
	Premium  decimal.Decimal `json:"premium"`
	Quantity int             `json:"quantity"`
}

// Point is a sample of the payoff curve.
type Point struct {
	Price  decimal.Decimal `json:"price"`
	Payoff decimal.Decimal `json:"payoff"`
}

// Bound is a profit or loss extreme that may be unbounded.
type Bound struct {
	Value     decimal.Decimal
	Unlimited bool
}

// MarshalJSON renders an unbounded extreme as the string "unlimited" and a
// bounded one as a plain number.
func (b Bound) MarshalJSON() ([]byte, error) {
	if b.Unlimited {
		return []byte(`"unlimited"`), nil
	}
	return []byte(b.Value.String()), nil
}

// Analysis summarises a strategy's payoff at expiry.
type Analysis struct {
	Breakevens []decimal.Decimal `json:"breakevens"`
	MaxProfit  Bound             `json:"max_profit"`
	MaxLoss    Bound             `json:"max_loss"`
	NetPremium decimal.Decimal   `json:"net_premium"`
	Curve      []Point           `json:"payoff_data"`
}

// Options controls the sampled payoff curve. Zero values select defaults.
type Options struct {
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	Points   int
}

func (l Leg) direction() decimal.Decimal {
	if strings.EqualFold(l.Position, PositionShort) {
		return decimal.NewFromInt(-1)
	}
	return decimal.NewFromInt(1)
}

func (l Leg) kind() string {
	return strings.ToLower(l.Type)
}

func (l Leg) scale() decimal.Decimal {
	return decimal.NewFromInt(int64(l.Quantity)).Mul(multiplier)
}

// Validate checks that every leg can be priced.
func Validate(legs []Leg) error {
	for i, l := range legs {
		switch l.kind() {
		case TypeCall, TypePut, TypeStock:
		default:
			return fmt.Errorf("%w: leg %d has type %q", ErrUnsupportedLeg, i, l.Type)
		}
		switch strings.ToLower(l.Position) {
		case PositionLong, PositionShort:
		default:
			return fmt.Errorf("%w: leg %d has position %q", ErrUnsupportedLeg, i, l.Position)
		}
		if l.Quantity < 1 {
			return fmt.Errorf("%w: leg %d has quantity %d", ErrUnsupportedLeg, i, l.Quantity)
		}
		if l.Strike.IsNegative() || l.Premium.IsNegative() {
			return fmt.Errorf("%w: leg %d has a negative price", ErrUnsupportedLeg, i)
		}
	}
	return nil
}

// LegPayoff returns the profit or loss of a single leg at the given
// underlying price at expiry.
func LegPayoff(l Leg, price decimal.Decimal) decimal.Decimal {
	dir := l.direction()
	switch l.kind() {
	case TypeStock:
		return price.Sub(l.Strike).Mul(dir).Mul(l.scale())
	case TypeCall:
		intrinsic := decimal.Max(decimal.Zero, price.Sub(l.Strike))
		return intrinsic.Sub(l.Premium).Mul(dir).Mul(l.scale())
	case TypePut:
		intrinsic := decimal.Max(decimal.Zero, l.Strike.Sub(price))
		return intrinsic.Sub(l.Premium).Mul(dir).Mul(l.scale())
	}
	return decimal.Zero
}

// StrategyPayoff sums LegPayoff over all legs.
func StrategyPayoff(legs []Leg, price decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, l := range legs {
		total = total.Add(LegPayoff(l, price))
	}
	return total
}

// NetPremium is the premium received (positive) or paid (negative) to open
// the strategy. Stock legs carry no premium.
func NetPremium(legs []Leg) decimal.Decimal {
	total := decimal.Zero
	for _, l := range legs {
		if l.kind() == TypeStock {
			continue
		}
		total = total.Sub(l.Premium.Mul(l.direction()).Mul(l.scale()))
	}
	return total
}

// terminalSlope is the payoff change per unit of underlying price above the
// highest strike, where every call is in the money and every put is out.
func terminalSlope(legs []Leg) decimal.Decimal {
	slope := decimal.Zero
	for _, l := range legs {
		switch l.kind() {
		case TypeCall, TypeStock:
			slope = slope.Add(l.direction().Mul(l.scale()))
		}
	}
	return slope
}

// knots returns 0 and every distinct positive strike, ascending.
func knots(legs []Leg) []decimal.Decimal {
	out := []decimal.Decimal{decimal.Zero}
	for _, l := range legs {
		if l.Strike.IsPositive() {
			out = append(out, l.Strike)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LessThan(out[j]) })

	uniq := out[:1]
	for _, k := range out[1:] {
		if !k.Equal(uniq[len(uniq)-1]) {
			uniq = append(uniq, k)
		}
	}
	return uniq
}

// Breakevens returns the underlying prices at which the strategy's payoff is
// zero, rounded to cents.
func Breakevens(legs []Leg) []decimal.Decimal {
	result := []decimal.Decimal{}
	if len(legs) == 0 {
		return result
	}

	add := func(p decimal.Decimal) {
		p = p.Round(2)
		if n := len(result); n > 0 && result[n-1].Equal(p) {
			return
		}
		result = append(result, p)
	}

	ks := knots(legs)
	values := make([]decimal.Decimal, len(ks))
	for i, k := range ks {
		values[i] = StrategyPayoff(legs, k)
	}

	for i := range ks {
		if values[i].IsZero() {
			add(ks[i])
		}
		if i == len(ks)-1 {
			break
		}
		a, b := values[i], values[i+1]
		if a.Sign()*b.Sign() < 0 {
			// a + (b-a) * t = 0 on [ks[i], ks[i+1]]
			t := a.Neg().Div(b.Sub(a))
			add(ks[i].Add(ks[i+1].Sub(ks[i]).Mul(t)))
		}
	}

	last := values[len(values)-1]
	slope := terminalSlope(legs)
	if !slope.IsZero() && last.Sign()*slope.Sign() < 0 {
		add(ks[len(ks)-1].Sub(last.Div(slope)))
	}
	return result
}

// Extremes returns the maximum profit and maximum loss at expiry. The loss
// is reported as a magnitude.
func Extremes(legs []Leg) (maxProfit, maxLoss Bound) {
	if len(legs) == 0 {
		return Bound{}, Bound{}
	}

	hi, lo := decimal.Decimal{}, decimal.Decimal{}
	for i, k := range knots(legs) {
		v := StrategyPayoff(legs, k)
		if i == 0 || v.GreaterThan(hi) {
			hi = v
		}
		if i == 0 || v.LessThan(lo) {
			lo = v
		}
	}

	slope := terminalSlope(legs)
	maxProfit = Bound{Value: hi.Round(2), Unlimited: slope.IsPositive()}
	maxLoss = Bound{Value: lo.Abs().Round(2), Unlimited: slope.IsNegative()}
	if maxProfit.Unlimited {
		maxProfit.Value = decimal.Zero
	}
	if maxLoss.Unlimited {
		maxLoss.Value = decimal.Zero
	}
	return maxProfit, maxLoss
}

// Curve samples the payoff between the chart bounds. Without explicit bounds
// the range is centred on the average strike.
func Curve(legs []Leg, opts Options) ([]Point, error) {
	if len(legs) == 0 {
		return []Point{}, nil
	}

	sum := decimal.Zero
	for _, l := range legs {
		sum = sum.Add(l.Strike)
	}
	avg := sum.Div(decimal.NewFromInt(int64(len(legs))))
	width := decimal.Max(avg.Mul(half), minRange)

	lower := decimal.Max(decimal.Zero, avg.Sub(width))
	upper := avg.Add(width)
	if opts.MinPrice != nil {
		lower = *opts.MinPrice
	}
	if opts.MaxPrice != nil {
		upper = *opts.MaxPrice
	}
	if lower.IsNegative() || !upper.GreaterThan(lower) {
		return nil, fmt.Errorf("%w: [%s, %s]", ErrInvalidRange, lower, upper)
	}

	points := opts.Points
	if points <= 0 {
		points = DefaultPoints
	}
	if points > MaxPoints {
		points = MaxPoints
	}

	step := upper.Sub(lower).Div(decimal.NewFromInt(int64(points)))
	curve := make([]Point, 0, points+1)
	for i := 0; i <= points; i++ {
		price := lower.Add(step.Mul(decimal.NewFromInt(int64(i))))
		curve = append(curve, Point{
			Price:  price.Round(2),
			Payoff: StrategyPayoff(legs, price).Round(2),
		})
	}
	return curve, nil
}

// Analyze validates the legs and computes the full analysis.
func Analyze(legs []Leg, opts Options) (*Analysis, error) {
	if err := Validate(legs); err != nil {
		return nil, err
	}

	curve, err := Curve(legs, opts)
	if err != nil {
		return nil, err
	}

	maxProfit, maxLoss := Extremes(legs)
	return &Analysis{
		Breakevens: Breakevens(legs),
		MaxProfit:  maxProfit,
		MaxLoss:    maxLoss,
		NetPremium: NetPremium(legs).Round(2),
		Curve:      curve,
	}, nil
}
