package purchase

import (
	"math"

	"github.com/RealRussianBoi/Shopify-Integrated-PDF-Generator/internal/purchase/numeric"
)

// ExtendedCost derives the per-line extended cost. Tax applies to the
// quantity-extended cost, not to the unit cost alone, and the result is
// rounded once at the end.
func ExtendedCost(unitCost float64, qtyOrdered int64, taxPercent float64) float64 {
	base := unitCost * float64(qtyOrdered)
	taxed := base * (1 + taxPercent/100)
	return numeric.Round4(taxed)
}

// Recompute derives the order summary from the current line set and header
// adjustments. It is pure and idempotent: no state is kept between calls and
// identical inputs always produce identical outputs. Callers re-run it after
// every line or header-adjustment edit.
//
// Only visible lines contribute to the subtotal: soft-removed lines without
// receipts are excluded, soft-removed lines with receipts stay in.
func Recompute(lines []OrderLine, header OrderHeader) Summary {
	var sum float64
	for _, l := range lines {
		if !l.Visible() {
			continue
		}
		sum += ExtendedCost(l.UnitCost, l.QtyOrdered, l.TaxPercent)
	}
	subtotal := numeric.Round4(sum)

	discountPercent := money(header.DiscountPercent)
	discountAmount := money(header.DiscountAmount)
	freight := money(header.Freight)
	fee := money(header.Fee)
	tax := money(header.Tax)

	percentDiscountValue := numeric.Round4(subtotal * (discountPercent / 100))

	// Discounts reduce the total, the rest increases it.
	netAdditional := numeric.Round4(-percentDiscountValue - discountAmount + freight + fee + tax)
	total := numeric.Round4(subtotal + netAdditional)

	return Summary{
		Subtotal:             subtotal,
		DiscountPercent:      discountPercent,
		DiscountAmount:       discountAmount,
		PercentDiscountValue: percentDiscountValue,
		Freight:              freight,
		Fee:                  fee,
		Tax:                  tax,
		NetAdditional:        netAdditional,
		Total:                total,
	}
}

// ApplySummary copies the derived figures onto a header copy.
func ApplySummary(h OrderHeader, s Summary) OrderHeader {
	h.Subtotal = s.Subtotal
	h.Total = s.Total
	return h
}

func money(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
