// Package numeric centralises the input clamping and rounding policy shared
// by every purchase-order field. All call sites go through these helpers so
// the parsing, clamp and rounding rules cannot drift apart.
package numeric

import (
	"math"
	"strconv"
	"strings"
)

const (
	// IntMax mirrors the storage column limit for integer quantities.
	IntMax = int64(2147483647)
	// MoneyMax mirrors the largest finite REAL magnitude the storage layer accepts.
	MoneyMax = 3.402823466e38
	// MoneyPlaces is the fractional precision kept for money and percent fields.
	MoneyPlaces = 4
)

// IntRule bounds an integer field. Fallback is returned when the raw input
// does not contain a parsable number.
type IntRule struct {
	Min      int64
	Max      int64
	Fallback int64
}

// MoneyRule bounds a decimal field. A zero Places means MoneyPlaces.
type MoneyRule struct {
	Min      float64
	Max      float64
	Fallback float64
	Places   int
}

// RoundTo rounds half away from zero to the given number of decimal places.
// Non-finite input rounds to 0.
func RoundTo(v float64, places int) float64 {
	if !isFinite(v) {
		return 0
	}
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// Round4 rounds to the shared money precision.
func Round4(v float64) float64 {
	return RoundTo(v, MoneyPlaces)
}

// ExtractInt strips everything but digits from raw and parses the remainder.
// "abc5" parses to 5, "3.7" to 37, and a digit-free string reports !ok.
func ExtractInt(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return parse(b.String())
}

// ExtractDecimal keeps digits and the first decimal point, discarding any
// later points, so "12.3.4" parses to 12.34.
func ExtractDecimal(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	var b strings.Builder
	seenDot := false
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' && !seenDot:
			seenDot = true
			b.WriteRune(r)
		}
	}
	return parse(b.String())
}

// ClampInt extracts an integer from raw and clamps it into the rule's range.
// The order is extract, then clamp; fallback is returned verbatim (it is not
// itself clamped) when extraction fails.
func ClampInt(raw string, rule IntRule) int64 {
	n, ok := ExtractInt(raw)
	if !ok {
		return rule.Fallback
	}
	return clampToInt(n, rule)
}

// ClampMoney extracts a decimal from raw, clamps it into the rule's range and
// rounds the clamped value. Clamp-before-round is deliberate and must match
// ClampMoneyValue.
func ClampMoney(raw string, rule MoneyRule) float64 {
	n, ok := ExtractDecimal(raw)
	if !ok {
		return rule.Fallback
	}
	return roundClamped(n, rule)
}

// ClampIntValue applies the same policy as ClampInt to an already-numeric
// value, used when re-normalizing persisted snapshots.
func ClampIntValue(v float64, rule IntRule) int64 {
	if !isFinite(v) {
		return rule.Fallback
	}
	return clampToInt(v, rule)
}

// ClampMoneyValue applies the same policy as ClampMoney to an already-numeric
// value.
func ClampMoneyValue(v float64, rule MoneyRule) float64 {
	if !isFinite(v) {
		return rule.Fallback
	}
	return roundClamped(v, rule)
}

// ClampText truncates on the right to at most maxLen characters. No rounding
// semantics apply to text.
func ClampText(v string, maxLen int) string {
	if maxLen < 0 {
		return v
	}
	runes := []rune(v)
	if len(runes) <= maxLen {
		return v
	}
	return string(runes[:maxLen])
}

func parse(cleaned string) (float64, bool) {
	if cleaned == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || !isFinite(n) {
		return 0, false
	}
	return n, true
}

func clampToInt(n float64, rule IntRule) int64 {
	if n < float64(rule.Min) {
		return rule.Min
	}
	if n > float64(rule.Max) {
		return rule.Max
	}
	return int64(n)
}

func roundClamped(n float64, rule MoneyRule) float64 {
	if n < rule.Min {
		n = rule.Min
	}
	if n > rule.Max {
		n = rule.Max
	}
	places := rule.Places
	if places == 0 {
		places = MoneyPlaces
	}
	return RoundTo(n, places)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
