package purchase

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/RealRussianBoi/Shopify-Integrated-PDF-Generator/internal/purchase/numeric"
)

func TestExtendedCostAppliesTaxToQtyExtendedCost(t *testing.T) {
	require.Equal(t, 33.0, ExtendedCost(10, 3, 10))
	require.Equal(t, 0.0, ExtendedCost(0, 5, 20))
	require.Equal(t, 25.0, ExtendedCost(12.5, 2, 0))
}

func TestRecomputePercentDiscount(t *testing.T) {
	lines := []OrderLine{
		{QtyOrdered: 10, UnitCost: 10},
	}
	header := OrderHeader{DiscountPercent: 10}

	s := Recompute(lines, header)
	require.Equal(t, 100.0, s.Subtotal)
	require.Equal(t, 10.0, s.PercentDiscountValue)
	require.Equal(t, -10.0, s.NetAdditional)
	require.Equal(t, 90.0, s.Total)
}

func TestRecomputeAllAdjustments(t *testing.T) {
	lines := []OrderLine{
		{QtyOrdered: 3, UnitCost: 10, TaxPercent: 10},
		{QtyOrdered: 1, UnitCost: 7.5},
	}
	header := OrderHeader{DiscountAmount: 5, Freight: 12.25, Fee: 1.75, Tax: 3}

	s := Recompute(lines, header)
	require.Equal(t, 40.5, s.Subtotal)
	require.Equal(t, 0.0, s.PercentDiscountValue)
	require.Equal(t, 12.0, s.NetAdditional)
	require.Equal(t, 52.5, s.Total)
}

func TestRecomputeSummaryConsistency(t *testing.T) {
	lines := []OrderLine{
		{QtyOrdered: 7, UnitCost: 3.3333, TaxPercent: 7.25},
		{QtyOrdered: 2, UnitCost: 199.99, TaxPercent: 0.5},
		{QtyOrdered: 1, UnitCost: 0.0001},
	}
	header := OrderHeader{DiscountPercent: 12.5, Freight: 4.99, Fee: 0.01, Tax: 2.5}

	s := Recompute(lines, header)
	require.Equal(t, s.Total, numeric.Round4(s.Subtotal+s.NetAdditional))
}

func TestRecomputeIdempotent(t *testing.T) {
	lines := []OrderLine{
		{QtyOrdered: 4, UnitCost: 2.5, TaxPercent: 6},
		{QtyOrdered: 1, UnitCost: 99.9999, TaxPercent: 0},
	}
	header := OrderHeader{DiscountPercent: 5, Freight: 10}

	first := Recompute(lines, header)
	second := Recompute(lines, header)
	require.Equal(t, first, second)
}

func TestRecomputeSkipsRemovedLinesWithoutReceipts(t *testing.T) {
	lines := []OrderLine{
		{QtyOrdered: 1, UnitCost: 100},
		{QtyOrdered: 1, UnitCost: 40, IsRemoved: true},
		{QtyOrdered: 1, UnitCost: 25, IsRemoved: true, QtyReceived: 1},
	}

	s := Recompute(lines, OrderHeader{})
	require.Equal(t, 125.0, s.Subtotal)
	require.Equal(t, 125.0, s.Total)
}
