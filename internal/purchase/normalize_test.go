package purchase

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeLineIdempotent(t *testing.T) {
	line := OrderLine{QtyOrdered: 3, QtyReceived: 0, UnitCost: 10.123456, TaxPercent: 8.2599999}
	once := NormalizeLine(line)
	twice := NormalizeLine(once)
	require.Equal(t, once, twice)
	require.Equal(t, 10.1235, once.UnitCost)
	require.Equal(t, 8.26, once.TaxPercent)
}

func TestNormalizeLineExtraAllowsZeroQty(t *testing.T) {
	regular := NormalizeLine(OrderLine{QtyOrdered: 0})
	require.Equal(t, int64(1), regular.QtyOrdered)

	extra := NormalizeLine(OrderLine{QtyOrdered: 0, IsExtra: true})
	require.Equal(t, int64(0), extra.QtyOrdered)
}

func TestNormalizeHeaderTruncatesText(t *testing.T) {
	h := NormalizeHeader(OrderHeader{
		PONumber:     "  PO-1001  ",
		PaymentTerms: strings.Repeat("x", 50),
		Currency:     "USDX",
		NoteToVendor: strings.Repeat("n", MaxVendorNote+10),
	})
	require.Equal(t, "PO-1001", h.PONumber)
	require.Len(t, h.PaymentTerms, MaxPaymentTerms)
	require.Equal(t, "USD", h.Currency)
	require.Len(t, h.NoteToVendor, MaxVendorNote)
}

func TestApplyLineEditClampsRawInput(t *testing.T) {
	line := OrderLine{QtyOrdered: 1, UnitCost: 10}

	line, ok := ApplyLineEdit(line, FieldQtyOrdered, "abc5")
	require.True(t, ok)
	require.Equal(t, int64(5), line.QtyOrdered)

	line, ok = ApplyLineEdit(line, FieldUnitCost, "12.3.4")
	require.True(t, ok)
	require.Equal(t, 12.34, line.UnitCost)

	line, ok = ApplyLineEdit(line, FieldTaxPercent, "10")
	require.True(t, ok)
	require.Equal(t, 67.87, line.ExtendedCost)
}

func TestApplyLineEditRefusesLockedLine(t *testing.T) {
	line := OrderLine{QtyOrdered: 5, QtyReceived: 5, UnitCost: 3}

	got, ok := ApplyLineEdit(line, FieldQtyOrdered, "3")
	require.False(t, ok)
	require.Equal(t, line, got)

	got, ok = ApplyLineEdit(line, FieldPurchaseDescription, "changed")
	require.False(t, ok)
	require.Equal(t, line, got)
}

func TestApplyLineEditUnknownField(t *testing.T) {
	line := OrderLine{QtyOrdered: 1}
	got, ok := ApplyLineEdit(line, "sku", "X")
	require.False(t, ok)
	require.Equal(t, line, got)
}

func TestApplyHeaderEdit(t *testing.T) {
	h := OrderHeader{Status: StatusDraft}

	h, ok := ApplyHeaderEdit(h, FieldFreight, "$14.95")
	require.True(t, ok)
	require.Equal(t, 14.95, h.Freight)

	h, ok = ApplyHeaderEdit(h, FieldFee, "")
	require.True(t, ok)
	require.Zero(t, h.Fee)

	closed := OrderHeader{Status: StatusClosed, Freight: 1}
	got, ok := ApplyHeaderEdit(closed, FieldFreight, "99")
	require.False(t, ok)
	require.Equal(t, closed, got)
}
