package purchase

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestValidateDraftAllowsEmptyOrder(t *testing.T) {
	res := ValidateDraft(OrderHeader{}, nil)
	require.True(t, res.OK)
	require.Empty(t, res.HeaderIssues)
	require.Empty(t, res.RowIssues)
}

func TestValidateDraftFlagsNegativeValues(t *testing.T) {
	res := ValidateDraft(OrderHeader{}, []OrderLine{
		{Position: 1, QtyOrdered: -1, UnitCost: -3},
	})
	require.False(t, res.OK)
	require.Len(t, res.RowIssues, 2)
}

func TestValidateFinalizeRequiredHeaderFields(t *testing.T) {
	res := ValidateFinalize(OrderHeader{}, nil, time.Now(), FinalizeOptions{})
	require.False(t, res.OK)
	require.Len(t, res.HeaderIssues, 3)
	require.Contains(t, res.HeaderIssues, "Vendor is required.")
	require.Contains(t, res.HeaderIssues, "Destination is required.")
	require.Contains(t, res.HeaderIssues, "PO Number is required.")
}

func TestValidateFinalizeDateRules(t *testing.T) {
	yesterday := time.Now().AddDate(0, 0, -1)
	h := OrderHeader{
		VendorID:      1,
		DestinationID: 1,
		PONumber:      "PO-1",
		DueDate:       &yesterday,
	}

	res := ValidateFinalize(h, nil, time.Now(), FinalizeOptions{RequireFutureDates: true})
	require.False(t, res.OK)
	require.Contains(t, res.HeaderIssues, "Due Date must be today or later.")

	// Editing an existing order keeps historical dates valid.
	res = ValidateFinalize(h, nil, time.Now(), FinalizeOptions{})
	require.True(t, res.OK)
}

func TestValidateFinalizeTodayIsNotPast(t *testing.T) {
	now := time.Now()
	earlier := time.Date(now.Year(), now.Month(), now.Day(), 0, 1, 0, 0, now.Location())
	h := OrderHeader{
		VendorID:      1,
		DestinationID: 1,
		PONumber:      "PO-1",
		ShipDate:      &earlier,
	}
	res := ValidateFinalize(h, nil, now, FinalizeOptions{RequireFutureDates: true})
	require.True(t, res.OK)
}

func TestValidateFinalizeRowRules(t *testing.T) {
	h := OrderHeader{VendorID: 1, DestinationID: 1, PONumber: "PO-1"}
	lines := []OrderLine{
		{Position: 1, ProductID: 1, VariantID: 1, PurchaseDescription: "Widget", QtyOrdered: 2},
		{Position: 2, ProductID: 1, VariantID: 2, QtyOrdered: 0},
		{Position: 3, ProductID: 1, VariantID: 3, PurchaseDescription: "Gadget", QtyOrdered: 1, QtyReceived: 4},
		{Position: 4, VariantID: 4, PurchaseDescription: "Gizmo", QtyOrdered: 1, UnitCost: -2},
	}

	res := ValidateFinalize(h, lines, time.Now(), FinalizeOptions{})
	require.False(t, res.OK)
	require.Empty(t, res.HeaderIssues)
	require.Contains(t, res.RowIssues, "Row 2: Purchase Description is required.")
	require.Contains(t, res.RowIssues, "Row 2: Qty Ordered must be at least 1.")
	require.Contains(t, res.RowIssues, "Row 3: Qty Ordered cannot be less than Qty Received.")
	require.Contains(t, res.RowIssues, "Row 4: Cost must be 0 or greater.")
	require.Contains(t, res.RowIssues, "Row 4: product reference is required.")
}

func TestValidateFinalizeExtraLineAllowsZeroQty(t *testing.T) {
	h := OrderHeader{VendorID: 1, DestinationID: 1, PONumber: "PO-1"}
	lines := []OrderLine{
		{Position: 1, ProductID: 1, VariantID: 1, PurchaseDescription: "Backorder fill", QtyOrdered: 0, IsExtra: true},
	}
	res := ValidateFinalize(h, lines, time.Now(), FinalizeOptions{})
	require.True(t, res.OK)
}

func TestValidateFinalizeDedupesRepeatedIssues(t *testing.T) {
	h := OrderHeader{VendorID: 1, DestinationID: 1, PONumber: "PO-1"}
	// Same position repeated, as happens mid-edit before renumbering.
	lines := []OrderLine{
		{Position: 1, ProductID: 1, VariantID: 1, QtyOrdered: 1},
		{Position: 1, ProductID: 1, VariantID: 1, QtyOrdered: 1},
	}
	res := ValidateFinalize(h, lines, time.Now(), FinalizeOptions{})
	require.Equal(t, []string{"Row 1: Purchase Description is required."}, res.RowIssues)
}

func TestDisplayRowIssuesCapped(t *testing.T) {
	var res ValidationResult
	for i := 0; i < RowIssueDisplayLimit+3; i++ {
		res.RowIssues = append(res.RowIssues, fmt.Sprintf("Row %d: Purchase Description is required.", i+1))
	}

	display := res.DisplayRowIssues()
	require.Len(t, display, RowIssueDisplayLimit+1)
	require.Equal(t, "(+3 more)", display[len(display)-1])

	short := ValidationResult{RowIssues: res.RowIssues[:2]}
	require.Len(t, short.DisplayRowIssues(), 2)
}

func TestIssuesCombinesHeaderAndRows(t *testing.T) {
	res := ValidationResult{
		HeaderIssues: []string{"Vendor is required."},
		RowIssues:    []string{"Row 1: Purchase Description is required."},
	}
	require.Equal(t, []string{
		"Vendor is required.",
		"Row 1: Purchase Description is required.",
	}, res.Issues())
}
