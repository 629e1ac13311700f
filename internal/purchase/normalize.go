package purchase

import (
	"strings"

	"github.com/RealRussianBoi/Shopify-Integrated-PDF-Generator/internal/purchase/numeric"
)

// Shared clamp rules. Line costs are bounded by the REAL column limit;
// header adjustment fields are bounded by the integer column limit.
var (
	qtyOrderedRule   = numeric.IntRule{Min: 1, Max: numeric.IntMax, Fallback: 1}
	qtyExtraRule     = numeric.IntRule{Min: 0, Max: numeric.IntMax, Fallback: 1}
	qtyReceivedRule  = numeric.IntRule{Min: 0, Max: numeric.IntMax, Fallback: 0}
	lineCostRule     = numeric.MoneyRule{Min: 0, Max: numeric.MoneyMax, Fallback: 0}
	percentRule      = numeric.MoneyRule{Min: 0, Max: 100, Fallback: 0}
	headerMoneyRule  = numeric.MoneyRule{Min: 0, Max: float64(numeric.IntMax), Fallback: 0}
)

func orderedRule(isExtra bool) numeric.IntRule {
	if isExtra {
		return qtyExtraRule
	}
	return qtyOrderedRule
}

// NormalizeLine re-applies the clamp/round policy to every numeric field and
// refreshes the derived extended cost. Running it on already-normalized data
// is a no-op.
func NormalizeLine(l OrderLine) OrderLine {
	l.QtyOrdered = numeric.ClampIntValue(float64(l.QtyOrdered), orderedRule(l.IsExtra))
	l.QtyReceived = numeric.ClampIntValue(float64(l.QtyReceived), qtyReceivedRule)
	l.UnitCost = numeric.ClampMoneyValue(l.UnitCost, lineCostRule)
	l.TaxPercent = numeric.ClampMoneyValue(l.TaxPercent, percentRule)
	l.ExtendedCost = ExtendedCost(l.UnitCost, l.QtyOrdered, l.TaxPercent)
	return l
}

// NormalizeLines normalizes every line, preserving order.
func NormalizeLines(lines []OrderLine) []OrderLine {
	if len(lines) == 0 {
		return nil
	}
	out := make([]OrderLine, len(lines))
	for i, l := range lines {
		out[i] = NormalizeLine(l)
	}
	return out
}

// NormalizeHeader truncates text fields to their column limits and clamps
// the money adjustment fields. Subtotal and Total are left alone; they are
// owned by Recompute.
func NormalizeHeader(h OrderHeader) OrderHeader {
	h.PONumber = strings.TrimSpace(h.PONumber)
	h.ShippingCarrier = numeric.ClampText(h.ShippingCarrier, MaxShippingCarrier)
	h.TrackingNumber = numeric.ClampText(h.TrackingNumber, MaxTracking)
	h.ReferenceNumber = numeric.ClampText(h.ReferenceNumber, MaxReference)
	h.NoteToVendor = numeric.ClampText(h.NoteToVendor, MaxVendorNote)
	h.PaymentTerms = numeric.ClampText(h.PaymentTerms, MaxPaymentTerms)
	h.Currency = numeric.ClampText(h.Currency, MaxCurrency)
	h.Status = Status(numeric.ClampText(string(h.Status), MaxStatus))
	h.DiscountPercent = numeric.ClampMoneyValue(h.DiscountPercent, percentRule)
	h.DiscountAmount = numeric.ClampMoneyValue(h.DiscountAmount, headerMoneyRule)
	h.Freight = numeric.ClampMoneyValue(h.Freight, headerMoneyRule)
	h.Fee = numeric.ClampMoneyValue(h.Fee, headerMoneyRule)
	h.Tax = numeric.ClampMoneyValue(h.Tax, headerMoneyRule)
	return h
}

// Line field names accepted by ApplyLineEdit.
const (
	FieldPurchaseDescription = "purchaseDescription"
	FieldQtyOrdered          = "qtyOrdered"
	FieldUnitCost            = "unitCost"
	FieldTaxPercent          = "taxPercent"
)

// Header field names accepted by ApplyHeaderEdit.
const (
	FieldFreight = "freight"
	FieldFee     = "fee"
	FieldTax     = "tax"
)

// ApplyLineEdit applies one raw field edit to a line, clamping the value on
// the way in and refreshing the extended cost. Edits against a locked line
// (any received quantity) or an unknown field are refused: the line comes
// back unchanged and ok is false.
func ApplyLineEdit(l OrderLine, field, raw string) (OrderLine, bool) {
	if l.Locked() {
		return l, false
	}
	switch field {
	case FieldPurchaseDescription:
		l.PurchaseDescription = raw
	case FieldQtyOrdered:
		l.QtyOrdered = numeric.ClampInt(raw, orderedRule(l.IsExtra))
	case FieldUnitCost:
		l.UnitCost = numeric.ClampMoney(raw, lineCostRule)
	case FieldTaxPercent:
		l.TaxPercent = numeric.ClampMoney(raw, percentRule)
	default:
		return l, false
	}
	l.ExtendedCost = ExtendedCost(l.UnitCost, l.QtyOrdered, l.TaxPercent)
	return l, true
}

// ApplyHeaderEdit applies one raw adjustment edit to a header copy. Discount
// edits go through Discount instead; a read-only header refuses all edits.
func ApplyHeaderEdit(h OrderHeader, field, raw string) (OrderHeader, bool) {
	if h.ReadOnly() {
		return h, false
	}
	switch field {
	case FieldFreight:
		h.Freight = numeric.ClampMoney(raw, headerMoneyRule)
	case FieldFee:
		h.Fee = numeric.ClampMoney(raw, headerMoneyRule)
	case FieldTax:
		h.Tax = numeric.ClampMoney(raw, headerMoneyRule)
	default:
		return h, false
	}
	return h, true
}
