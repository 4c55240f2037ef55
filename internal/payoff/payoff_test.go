package payoff

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.Truef(t, d(want).Equal(got), "expected %s, got %s", want, got)
}

func TestLegPayoff(t *testing.T) {
	tests := []struct {
		name  string
		leg   Leg
		price string
		want  string
	}{
		{"long call in the money", Leg{Type: "call", Position: "long", Strike: d("100"), Premium: d("5"), Quantity: 1}, "120", "1500"},
		{"long call expires worthless", Leg{Type: "call", Position: "long", Strike: d("100"), Premium: d("5"), Quantity: 1}, "90", "-500"},
		{"short put assigned", Leg{Type: "put", Position: "short", Strike: d("100"), Premium: d("5"), Quantity: 2}, "80", "-3000"},
		{"long stock", Leg{Type: "stock", Position: "long", Strike: d("50"), Quantity: 1}, "55", "500"},
		{"short stock", Leg{Type: "STOCK", Position: "SHORT", Strike: d("50"), Quantity: 1}, "55", "-500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertDecimal(t, tt.want, LegPayoff(tt.leg, d(tt.price)))
		})
	}
}

func TestNetPremium(t *testing.T) {
	legs := []Leg{
		{Type: "stock", Position: "long", Strike: d("100"), Premium: d("99"), Quantity: 1},
		{Type: "call", Position: "short", Strike: d("110"), Premium: d("3"), Quantity: 1},
		{Type: "put", Position: "long", Strike: d("90"), Premium: d("1.25"), Quantity: 2},
	}
	// +300 credit for the call, -250 debit for the puts, stock ignored.
	assertDecimal(t, "50", NetPremium(legs))
}

func TestAnalyze_LongCall(t *testing.T) {
	legs := []Leg{{Type: "call", Position: "long", Strike: d("100"), Premium: d("5"), Quantity: 1}}

	a, err := Analyze(legs, Options{})
	require.NoError(t, err)

	assert.True(t, a.MaxProfit.Unlimited)
	assert.False(t, a.MaxLoss.Unlimited)
	assertDecimal(t, "500", a.MaxLoss.Value)
	require.Len(t, a.Breakevens, 1)
	assertDecimal(t, "105", a.Breakevens[0])
	assertDecimal(t, "-500", a.NetPremium)

	require.Len(t, a.Curve, DefaultPoints+1)
	assertDecimal(t, "50", a.Curve[0].Price)
	assertDecimal(t, "150", a.Curve[DefaultPoints].Price)
	assertDecimal(t, "4500", a.Curve[DefaultPoints].Payoff)
}

func TestAnalyze_ShortCallUnlimitedLoss(t *testing.T) {
	legs := []Leg{{Type: "call", Position: "short", Strike: d("100"), Premium: d("5"), Quantity: 1}}

	a, err := Analyze(legs, Options{})
	require.NoError(t, err)

	assert.True(t, a.MaxLoss.Unlimited)
	assert.False(t, a.MaxProfit.Unlimited)
	assertDecimal(t, "500", a.MaxProfit.Value)
}

func TestAnalyze_IronCondor(t *testing.T) {
	var condor Preset
	for _, p := range Presets(d("100")) {
		if p.Name == "Iron Condor" {
			condor = p
		}
	}
	require.Len(t, condor.Legs, 4)

	a, err := Analyze(condor.Legs, Options{})
	require.NoError(t, err)

	// Credit of 3.00 per share, wings 10 wide.
	assertDecimal(t, "300", a.NetPremium)
	assertDecimal(t, "300", a.MaxProfit.Value)
	assertDecimal(t, "700", a.MaxLoss.Value)
	assert.False(t, a.MaxProfit.Unlimited)
	assert.False(t, a.MaxLoss.Unlimited)
	require.Len(t, a.Breakevens, 2)
	assertDecimal(t, "87", a.Breakevens[0])
	assertDecimal(t, "113", a.Breakevens[1])
}

func TestAnalyze_LongStraddleBreakevens(t *testing.T) {
	legs := []Leg{
		{Type: "call", Position: "long", Strike: d("100"), Premium: d("5"), Quantity: 1},
		{Type: "put", Position: "long", Strike: d("100"), Premium: d("5"), Quantity: 1},
	}

	a, err := Analyze(legs, Options{})
	require.NoError(t, err)

	require.Len(t, a.Breakevens, 2)
	assertDecimal(t, "90", a.Breakevens[0])
	assertDecimal(t, "110", a.Breakevens[1])
	assertDecimal(t, "1000", a.MaxLoss.Value)
	assert.True(t, a.MaxProfit.Unlimited)
}

func TestAnalyze_CustomRange(t *testing.T) {
	legs := []Leg{{Type: "put", Position: "long", Strike: d("100"), Premium: d("5"), Quantity: 1}}
	lo, hi := d("80"), d("120")

	a, err := Analyze(legs, Options{MinPrice: &lo, MaxPrice: &hi, Points: 4})
	require.NoError(t, err)

	require.Len(t, a.Curve, 5)
	assertDecimal(t, "80", a.Curve[0].Price)
	assertDecimal(t, "1500", a.Curve[0].Payoff)
	assertDecimal(t, "90", a.Curve[1].Price)
	assertDecimal(t, "120", a.Curve[4].Price)
	assertDecimal(t, "-500", a.Curve[4].Payoff)
}

func TestAnalyze_Errors(t *testing.T) {
	t.Run("unknown type", func(t *testing.T) {
		_, err := Analyze([]Leg{{Type: "future", Position: "long", Quantity: 1}}, Options{})
		assert.ErrorIs(t, err, ErrUnsupportedLeg)
	})

	t.Run("zero quantity", func(t *testing.T) {
		_, err := Analyze([]Leg{{Type: "call", Position: "long", Quantity: 0}}, Options{})
		assert.ErrorIs(t, err, ErrUnsupportedLeg)
	})

	t.Run("inverted range", func(t *testing.T) {
		lo, hi := d("120"), d("80")
		_, err := Analyze([]Leg{{Type: "call", Position: "long", Strike: d("100"), Quantity: 1}}, Options{MinPrice: &lo, MaxPrice: &hi})
		assert.ErrorIs(t, err, ErrInvalidRange)
	})
}

func TestAnalyze_NoLegs(t *testing.T) {
	a, err := Analyze(nil, Options{})
	require.NoError(t, err)

	assert.Empty(t, a.Breakevens)
	assert.Empty(t, a.Curve)
	assert.True(t, a.NetPremium.IsZero())
}

func TestBound_MarshalJSON(t *testing.T) {
	out, err := json.Marshal(map[string]Bound{
		"a": {Unlimited: true},
		"b": {Value: d("12.5")},
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":"unlimited","b":12.5}`, string(out))
}

func TestPresets(t *testing.T) {
	presets := Presets(d("100"))
	require.Len(t, presets, 10)

	for _, p := range presets {
		t.Run(p.Name, func(t *testing.T) {
			assert.NotEmpty(t, p.Description)
			assert.NoError(t, Validate(p.Legs))
		})
	}

	covered := presets[2]
	assert.Equal(t, "Covered Call", covered.Name)
	assert.Equal(t, TypeStock, covered.Legs[0].Type)
	assertDecimal(t, "110", covered.Legs[1].Strike)
}

func TestPresets_LowBasePrice(t *testing.T) {
	for _, base := range []string{"0.5", "5", "15"} {
		t.Run(base, func(t *testing.T) {
			for _, p := range Presets(d(base)) {
				require.NoError(t, Validate(p.Legs), p.Name)
				for _, l := range p.Legs {
					assert.False(t, l.Strike.IsNegative(), "%s strike %s", p.Name, l.Strike)
				}
				_, err := Analyze(p.Legs, Options{})
				assert.NoError(t, err, p.Name)
			}
		})
	}

	condor := Presets(d("5"))[8]
	assert.Equal(t, "Iron Condor", condor.Name)
	assertDecimal(t, "0", condor.Legs[0].Strike)
	assertDecimal(t, "15", condor.Legs[3].Strike)
}
