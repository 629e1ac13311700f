package purchase

import (
	"errors"
	"time"
)

// Status is the purchase order lifecycle state.
type Status string

const (
	StatusDraft    Status = "Draft"
	StatusOpen     Status = "Open"
	StatusOnHold   Status = "On Hold"
	StatusClosed   Status = "Closed"
	StatusComplete Status = "Complete"
)

// Valid reports whether s is a known lifecycle state.
func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusOpen, StatusOnHold, StatusClosed, StatusComplete:
		return true
	}
	return false
}

// Terminal reports whether the order can no longer be edited.
func (s Status) Terminal() bool {
	return s == StatusClosed || s == StatusComplete
}

// Column limits carried over from the storage schema.
const (
	MaxVendorNote      = 5000
	MaxShippingCarrier = 500
	MaxTracking        = 255
	MaxReference       = 255
	MaxPaymentTerms    = 20
	MaxCurrency        = 3
	MaxStatus          = 10
)

// CustomNumberPrefix marks user-supplied PO numbers in storage.
const CustomNumberPrefix = "CUST-"

// OrderHeader carries the adjustments and metadata shared by the whole order.
// Subtotal and Total are derived; they are recomputed from the line set and
// never edited directly.
type OrderHeader struct {
	ID              int64      `json:"id"`
	PONumber        string     `json:"po_number"`
	CustomPONumber  bool       `json:"custom_po_number"`
	VendorID        int64      `json:"vendor_id"`
	VendorName      string     `json:"vendor_name,omitempty"`
	DestinationID   int64      `json:"destination_id"`
	DestinationName string     `json:"destination_name,omitempty"`
	Status          Status     `json:"status"`
	OrderDate       time.Time  `json:"order_date"`
	DueDate         *time.Time `json:"due_date,omitempty"`
	ShipDate        *time.Time `json:"ship_date,omitempty"`
	VoidDate        *time.Time `json:"void_date,omitempty"`
	ShippingCarrier string     `json:"shipping_carrier,omitempty"`
	TrackingNumber  string     `json:"tracking_number,omitempty"`
	ReferenceNumber string     `json:"reference_number,omitempty"`
	NoteToVendor    string     `json:"note_to_vendor,omitempty"`
	PaymentTerms    string     `json:"payment_terms,omitempty"`
	Currency        string     `json:"currency,omitempty"`
	DiscountPercent float64    `json:"discount_percent"`
	DiscountAmount  float64    `json:"discount_amount"`
	Freight         float64    `json:"freight"`
	Fee             float64    `json:"fee"`
	Tax             float64    `json:"tax"`
	Subtotal        float64    `json:"subtotal"`
	Total           float64    `json:"total"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// ReadOnly reports whether the whole order rejects edits.
func (h OrderHeader) ReadOnly() bool {
	return h.Status.Terminal()
}

// OrderLine is one product/variant entry on the order.
type OrderLine struct {
	ID                  int64   `json:"id"`
	OrderID             int64   `json:"order_id"`
	Position            int     `json:"position"`
	ProductID           int64   `json:"product_id"`
	VariantID           int64   `json:"variant_id"`
	ProductTitle        string  `json:"product_title,omitempty"`
	VariantTitle        string  `json:"variant_title,omitempty"`
	SKU                 string  `json:"sku,omitempty"`
	PurchaseDescription string  `json:"purchase_description"`
	QtyOrdered          int64   `json:"qty_ordered"`
	QtyReceived         int64   `json:"qty_received"`
	QtyOnHand           int64   `json:"qty_on_hand"`
	QtyOnOrder          int64   `json:"qty_on_order"`
	UnitCost            float64 `json:"unit_cost"`
	TaxPercent          float64 `json:"tax_percent"`
	ExtendedCost        float64 `json:"extended_cost"`
	IsExtra             bool    `json:"is_extra"`
	IsRemoved           bool    `json:"is_removed"`
}

// Locked reports whether the line rejects further quantity, cost, tax or
// description changes. Receiving stock against a line freezes it.
func (l OrderLine) Locked() bool {
	return l.QtyReceived > 0
}

// Visible reports whether the line belongs in the main grid and the subtotal.
// Soft-removed lines with receipts represent real historical cost and stay.
func (l OrderLine) Visible() bool {
	return !l.IsRemoved || l.QtyReceived > 0
}

// Summary holds the derived order totals.
type Summary struct {
	Subtotal             float64 `json:"subtotal"`
	DiscountPercent      float64 `json:"discount_percent"`
	DiscountAmount       float64 `json:"discount_amount"`
	PercentDiscountValue float64 `json:"percent_discount_value"`
	Freight              float64 `json:"freight"`
	Fee                  float64 `json:"fee"`
	Tax                  float64 `json:"tax"`
	NetAdditional        float64 `json:"net_additional"`
	Total                float64 `json:"total"`
}

// ValidationResult is the structured outcome of a validation pass. It is
// never an error: callers decide whether issues block the operation.
type ValidationResult struct {
	OK           bool     `json:"ok"`
	HeaderIssues []string `json:"header_issues"`
	RowIssues    []string `json:"row_issues"`
}

var (
	// ErrNotFound indicates the purchase order does not exist.
	ErrNotFound = errors.New("purchase: not found")
	// ErrInvalidState occurs when an action violates the status workflow.
	ErrInvalidState = errors.New("purchase: invalid state transition")
	// ErrLocked indicates an edit against a read-only order or line.
	ErrLocked = errors.New("purchase: order is read-only")
	// ErrValidation indicates invalid input from the transport layer.
	ErrValidation = errors.New("purchase: invalid input")
	// ErrDuplicate indicates a PO number collision.
	ErrDuplicate = errors.New("purchase: po number already exists")
)
