package purchase

import (
	"github.com/RealRussianBoi/Shopify-Integrated-PDF-Generator/internal/purchase/numeric"
)

// DiscountMode selects which representation the header discount uses.
type DiscountMode string

const (
	DiscountModePercent DiscountMode = "percent"
	DiscountModeAmount  DiscountMode = "amount"
)

// Discount keeps the percent and amount representations mutually exclusive.
// It is a plain value: every transition returns a new Discount, so callers
// own the state and the engine stays stateless.
//
// Value mirrors whichever representation is active and is what an editing
// surface would display in the single discount input.
type Discount struct {
	Mode    DiscountMode `json:"mode"`
	Percent float64      `json:"percent"`
	Amount  float64      `json:"amount"`
	Value   float64      `json:"value"`
}

// DiscountFromHeader rebuilds discount state from a persisted snapshot.
// Old data may carry both fields non-zero; the amount wins for display.
// That is a data-repair policy, not a validation failure.
func DiscountFromHeader(h OrderHeader) Discount {
	pct := numeric.ClampMoneyValue(h.DiscountPercent, percentRule)
	amt := numeric.ClampMoneyValue(h.DiscountAmount, headerMoneyRule)
	if amt > 0 {
		return Discount{Mode: DiscountModeAmount, Percent: pct, Amount: amt, Value: amt}
	}
	return Discount{Mode: DiscountModePercent, Percent: pct, Amount: amt, Value: pct}
}

// SetMode switches the discount representation. Switching always zeroes both
// underlying fields and the display value: the two magnitudes are not
// comparable without fixing a subtotal, so no conversion is attempted.
func (d Discount) SetMode(next DiscountMode) Discount {
	return Discount{Mode: next}
}

// CommitValue parses raw and stores it into exactly one representation.
// Percent input is clamped to [0, 100]; amount input is clamped to
// [0, subtotal]. Unparsable input commits zero.
func (d Discount) CommitValue(raw string, subtotal float64) Discount {
	next := Discount{Mode: d.Mode}
	switch d.Mode {
	case DiscountModeAmount:
		rule := headerMoneyRule
		if subtotal >= 0 && subtotal < rule.Max {
			rule.Max = subtotal
		}
		amt := numeric.ClampMoney(raw, rule)
		next.Amount = amt
		next.Value = amt
	default:
		pct := numeric.ClampMoney(raw, percentRule)
		next.Percent = pct
		next.Value = pct
	}
	return next
}

// Apply writes the reconciled fields back onto a header copy.
func (d Discount) Apply(h OrderHeader) OrderHeader {
	h.DiscountPercent = d.Percent
	h.DiscountAmount = d.Amount
	return h
}

// Exclusive reports the engine invariant: at most one representation is
// non-zero at any time.
func (d Discount) Exclusive() bool {
	return d.Percent == 0 || d.Amount == 0
}
