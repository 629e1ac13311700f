package numeric

import (
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractDecimal(t *testing.T) {
	cases := []struct {
		raw  string
		want float64
		ok   bool
	}{
		{"12.3.4", 12.34, true},
		{"abc5", 5, true},
		{"$1,234.56", 1234.56, true},
		{"-5", 5, true},
		{"0", 0, true},
		{".", 0, false},
		{"", 0, false},
		{"   ", 0, false},
		{"no digits here", 0, false},
	}
	for _, tc := range cases {
		got, ok := ExtractDecimal(tc.raw)
		require.Equal(t, tc.ok, ok, "raw=%q", tc.raw)
		require.Equal(t, tc.want, got, "raw=%q", tc.raw)
	}
}

func TestExtractInt(t *testing.T) {
	cases := []struct {
		raw  string
		want float64
		ok   bool
	}{
		{"42", 42, true},
		{"3.7", 37, true},
		{"qty: 12 pcs", 12, true},
		{"", 0, false},
		{"-", 0, false},
	}
	for _, tc := range cases {
		got, ok := ExtractInt(tc.raw)
		require.Equal(t, tc.ok, ok, "raw=%q", tc.raw)
		require.Equal(t, tc.want, got, "raw=%q", tc.raw)
	}
}

func TestClampMoneyScenario(t *testing.T) {
	got := ClampMoney("12.3.4", MoneyRule{Min: 0, Max: MoneyMax})
	require.Equal(t, 12.34, got)
}

func TestClampIntRange(t *testing.T) {
	rule := IntRule{Min: 1, Max: IntMax, Fallback: 1}
	require.Equal(t, int64(1), ClampInt("0", rule))
	require.Equal(t, int64(1), ClampInt("garbage", rule))
	require.Equal(t, IntMax, ClampInt("99999999999999999999", rule))
	require.Equal(t, int64(7), ClampInt("7", rule))
}

func TestClampMoneyRangeInvariant(t *testing.T) {
	rule := MoneyRule{Min: 0, Max: 100}
	for _, raw := range []string{"0", "0.00005", "99.99995", "100", "250", "17.123456", "1e309"} {
		got := ClampMoney(raw, rule)
		require.GreaterOrEqual(t, got, rule.Min, "raw=%q", raw)
		require.LessOrEqual(t, got, rule.Max, "raw=%q", raw)
		require.Equal(t, RoundTo(got, 4), got, "raw=%q has more than 4 decimals", raw)
	}
}

func TestClampMoneyFallback(t *testing.T) {
	rule := MoneyRule{Min: 0, Max: MoneyMax, Fallback: math.NaN()}
	require.True(t, math.IsNaN(ClampMoney("n/a", rule)))
	require.Equal(t, 3.5, ClampMoney("3.5", rule))
}

func TestNormalizeIdempotent(t *testing.T) {
	rule := MoneyRule{Min: 0, Max: MoneyMax}
	for _, raw := range []string{"12.3.4", "abc5", "0.12345", "1000000", ""} {
		once := ClampMoney(raw, rule)
		twice := ClampMoney(strconv.FormatFloat(once, 'f', -1, 64), rule)
		require.Equal(t, once, twice, "raw=%q", raw)
	}

	intRule := IntRule{Min: 0, Max: IntMax, Fallback: 0}
	for _, raw := range []string{"17", "abc5", "", "99999999999999999999"} {
		once := ClampInt(raw, intRule)
		twice := ClampInt(strconv.FormatInt(once, 10), intRule)
		require.Equal(t, once, twice, "raw=%q", raw)
	}
}

func TestRoundTo(t *testing.T) {
	require.Equal(t, 33.0, RoundTo(32.99999999999999, 4))
	require.Equal(t, 0.1235, RoundTo(0.12345, 4))
	require.Equal(t, 0.0, RoundTo(math.NaN(), 4))
	require.Equal(t, 0.0, RoundTo(math.Inf(1), 4))
}

func TestClampText(t *testing.T) {
	require.Equal(t, "abc", ClampText("abc", 10))
	require.Equal(t, "ab", ClampText("abcdef", 2))
	require.Equal(t, "", ClampText("abc", 0))
}
