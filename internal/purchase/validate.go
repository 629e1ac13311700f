package purchase

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// RowIssueDisplayLimit caps how many row issues are rendered for display.
// The full issue list always stays available on the ValidationResult.
const RowIssueDisplayLimit = 8

// FinalizeOptions tunes the strict validation pass.
type FinalizeOptions struct {
	// RequireFutureDates enforces the date-not-in-past rules. It applies to
	// the first finalize of a draft; editing an already-open order skips it
	// because historical dates are legitimate there.
	RequireFutureDates bool
}

// ValidateDraft is the lenient pass used for save-as-draft. Nothing is
// required; only structural sanity is checked, and an empty order passes.
func ValidateDraft(h OrderHeader, lines []OrderLine) ValidationResult {
	var rowIssues []string
	for i, l := range lines {
		pos := rowLabel(l, i)
		if l.QtyOrdered < 0 {
			rowIssues = append(rowIssues, fmt.Sprintf("Row %s: Qty Ordered must be 0 or greater.", pos))
		}
		if l.QtyReceived < 0 {
			rowIssues = append(rowIssues, fmt.Sprintf("Row %s: Qty Received must be 0 or greater.", pos))
		}
		if !finite(l.UnitCost) || l.UnitCost < 0 {
			rowIssues = append(rowIssues, fmt.Sprintf("Row %s: Cost must be 0 or greater.", pos))
		}
	}
	rowIssues = dedupe(rowIssues)
	return ValidationResult{
		OK:           len(rowIssues) == 0,
		HeaderIssues: []string{},
		RowIssues:    rowIssues,
	}
}

// ValidateFinalize is the strict pass run before a draft becomes an active
// order. It never mutates the order and never fails with an error; the
// caller decides whether the issues block the transition.
func ValidateFinalize(h OrderHeader, lines []OrderLine, today time.Time, opts FinalizeOptions) ValidationResult {
	var headerIssues, rowIssues []string

	if h.VendorID <= 0 {
		headerIssues = append(headerIssues, "Vendor is required.")
	}
	if h.DestinationID <= 0 {
		headerIssues = append(headerIssues, "Destination is required.")
	}
	if strings.TrimSpace(h.PONumber) == "" {
		headerIssues = append(headerIssues, "PO Number is required.")
	}

	if opts.RequireFutureDates {
		floor := dateOnly(today)
		if pastDate(h.DueDate, floor) {
			headerIssues = append(headerIssues, "Due Date must be today or later.")
		}
		if pastDate(h.ShipDate, floor) {
			headerIssues = append(headerIssues, "Date To Ship must be today or later.")
		}
		if pastDate(h.VoidDate, floor) {
			headerIssues = append(headerIssues, "Date Void must be today or later.")
		}
	}

	// Rows are optional: an empty order may still be finalized.
	for i, l := range lines {
		pos := rowLabel(l, i)

		if strings.TrimSpace(l.PurchaseDescription) == "" {
			rowIssues = append(rowIssues, fmt.Sprintf("Row %s: Purchase Description is required.", pos))
		}
		minQty := int64(1)
		if l.IsExtra {
			minQty = 0
		}
		if l.QtyOrdered < minQty {
			rowIssues = append(rowIssues, fmt.Sprintf("Row %s: Qty Ordered must be at least %d.", pos, minQty))
		}
		if l.QtyReceived > 0 && l.QtyOrdered < l.QtyReceived {
			rowIssues = append(rowIssues, fmt.Sprintf("Row %s: Qty Ordered cannot be less than Qty Received.", pos))
		}
		if !finite(l.UnitCost) || l.UnitCost < 0 {
			rowIssues = append(rowIssues, fmt.Sprintf("Row %s: Cost must be 0 or greater.", pos))
		}
		if l.VariantID <= 0 {
			rowIssues = append(rowIssues, fmt.Sprintf("Row %s: variant reference is required.", pos))
		}
		if l.ProductID <= 0 {
			rowIssues = append(rowIssues, fmt.Sprintf("Row %s: product reference is required.", pos))
		}
	}

	rowIssues = dedupe(rowIssues)

	return ValidationResult{
		OK:           len(headerIssues) == 0 && len(rowIssues) == 0,
		HeaderIssues: emptyIfNil(headerIssues),
		RowIssues:    rowIssues,
	}
}

// DisplayRowIssues returns the first RowIssueDisplayLimit row issues with a
// "+K more" marker when the list was truncated.
func (r ValidationResult) DisplayRowIssues() []string {
	if len(r.RowIssues) <= RowIssueDisplayLimit {
		return r.RowIssues
	}
	out := make([]string, 0, RowIssueDisplayLimit+1)
	out = append(out, r.RowIssues[:RowIssueDisplayLimit]...)
	out = append(out, fmt.Sprintf("(+%d more)", len(r.RowIssues)-RowIssueDisplayLimit))
	return out
}

// Issues flattens header and display-capped row issues for messages.
func (r ValidationResult) Issues() []string {
	out := make([]string, 0, len(r.HeaderIssues)+RowIssueDisplayLimit+1)
	out = append(out, r.HeaderIssues...)
	out = append(out, r.DisplayRowIssues()...)
	return out
}

func rowLabel(l OrderLine, index int) string {
	if l.Position > 0 {
		return fmt.Sprintf("%d", l.Position)
	}
	return fmt.Sprintf("%d", index+1)
}

func dedupe(issues []string) []string {
	if len(issues) == 0 {
		return []string{}
	}
	seen := make(map[string]struct{}, len(issues))
	out := make([]string, 0, len(issues))
	for _, msg := range issues {
		if _, ok := seen[msg]; ok {
			continue
		}
		seen[msg] = struct{}{}
		out = append(out, msg)
	}
	return out
}

func emptyIfNil(issues []string) []string {
	if issues == nil {
		return []string{}
	}
	return issues
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func pastDate(d *time.Time, floor time.Time) bool {
	if d == nil || d.IsZero() {
		return false
	}
	return dateOnly(d.In(floor.Location())).Before(floor)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
