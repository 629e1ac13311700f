package purchase

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/RealRussianBoi/Shopify-Integrated-PDF-Generator/internal/purchase/numeric"
)

var validate = validator.New()

// LineRequest carries one line as entered. Quantity, cost and tax arrive as
// raw strings so pasted junk like "abc5" or "12.3.4" goes through the clamp
// path instead of failing JSON decoding.
type LineRequest struct {
	ID                  int64  `json:"id" validate:"gte=0"`
	ProductID           int64  `json:"product_id" validate:"gte=0"`
	VariantID           int64  `json:"variant_id" validate:"gte=0"`
	ProductTitle        string `json:"product_title" validate:"max=255"`
	VariantTitle        string `json:"variant_title" validate:"max=255"`
	SKU                 string `json:"sku" validate:"max=255"`
	PurchaseDescription string `json:"purchase_description" validate:"max=255"`
	QtyOrdered          string `json:"qty_ordered"`
	UnitCost            string `json:"unit_cost"`
	TaxPercent          string `json:"tax_percent"`
	IsRemoved           bool   `json:"is_removed"`
}

// SaveOrderRequest is the create/update payload.
type SaveOrderRequest struct {
	PONumber        string        `json:"po_number" validate:"max=255"`
	VendorID        int64         `json:"vendor_id" validate:"gte=0"`
	DestinationID   int64         `json:"destination_id" validate:"gte=0"`
	DueDate         *string       `json:"due_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	ShipDate        *string       `json:"ship_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	VoidDate        *string       `json:"void_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	ShippingCarrier string        `json:"shipping_carrier" validate:"max=500"`
	TrackingNumber  string        `json:"tracking_number" validate:"max=255"`
	ReferenceNumber string        `json:"reference_number" validate:"max=255"`
	NoteToVendor    string        `json:"note_to_vendor" validate:"max=5000"`
	PaymentTerms    string        `json:"payment_terms" validate:"max=20"`
	Currency        string        `json:"currency" validate:"omitempty,len=3"`
	DiscountMode    string        `json:"discount_mode" validate:"omitempty,oneof=percent amount"`
	DiscountValue   string        `json:"discount_value"`
	Freight         string        `json:"freight"`
	Fee             string        `json:"fee"`
	Tax             string        `json:"tax"`
	Lines           []LineRequest `json:"lines" validate:"dive"`
}

// Validate runs the structural checks. Value-range problems are not errors;
// they are clamped during conversion.
func (req SaveOrderRequest) Validate() error {
	return validate.Struct(req)
}

// ToSaveInput converts the request into typed engine state. The discount is
// committed against the subtotal of the incoming lines so the amount cap
// applies immediately.
func (req SaveOrderRequest) ToSaveInput() SaveInput {
	lines := make([]OrderLine, 0, len(req.Lines))
	for _, lr := range req.Lines {
		lines = append(lines, OrderLine{
			ID:                  lr.ID,
			ProductID:           lr.ProductID,
			VariantID:           lr.VariantID,
			ProductTitle:        lr.ProductTitle,
			VariantTitle:        lr.VariantTitle,
			SKU:                 lr.SKU,
			PurchaseDescription: lr.PurchaseDescription,
			QtyOrdered:          numeric.ClampInt(lr.QtyOrdered, orderedRule(false)),
			UnitCost:            numeric.ClampMoney(lr.UnitCost, lineCostRule),
			TaxPercent:          numeric.ClampMoney(lr.TaxPercent, percentRule),
			IsRemoved:           lr.IsRemoved,
		})
	}

	header := OrderHeader{
		PONumber:        req.PONumber,
		VendorID:        req.VendorID,
		DestinationID:   req.DestinationID,
		DueDate:         parseDate(req.DueDate),
		ShipDate:        parseDate(req.ShipDate),
		VoidDate:        parseDate(req.VoidDate),
		ShippingCarrier: req.ShippingCarrier,
		TrackingNumber:  req.TrackingNumber,
		ReferenceNumber: req.ReferenceNumber,
		NoteToVendor:    req.NoteToVendor,
		PaymentTerms:    req.PaymentTerms,
		Currency:        req.Currency,
		Freight:         numeric.ClampMoney(req.Freight, headerMoneyRule),
		Fee:             numeric.ClampMoney(req.Fee, headerMoneyRule),
		Tax:             numeric.ClampMoney(req.Tax, headerMoneyRule),
	}

	mode := DiscountMode(req.DiscountMode)
	if mode != DiscountModeAmount {
		mode = DiscountModePercent
	}
	subtotal := Recompute(NormalizeLines(lines), header).Subtotal
	header = Discount{Mode: mode}.CommitValue(req.DiscountValue, subtotal).Apply(header)

	return SaveInput{Header: header, Lines: lines}
}

// ReceiveRequest records received quantities.
type ReceiveRequest struct {
	Receipts []ReceiptRequest `json:"receipts" validate:"required,min=1,dive"`
}

// ReceiptRequest is one line receipt.
type ReceiptRequest struct {
	LineID int64 `json:"line_id" validate:"required,gt=0"`
	Qty    int64 `json:"qty" validate:"required,gt=0"`
}

// Validate runs the structural checks.
func (req ReceiveRequest) Validate() error {
	return validate.Struct(req)
}

// ToReceipts converts the request into service input.
func (req ReceiveRequest) ToReceipts() []ReceiptInput {
	receipts := make([]ReceiptInput, 0, len(req.Receipts))
	for _, r := range req.Receipts {
		receipts = append(receipts, ReceiptInput{LineID: r.LineID, Qty: r.Qty})
	}
	return receipts
}

// StatusRequest asks for a workflow transition.
type StatusRequest struct {
	Status string `json:"status" validate:"required,oneof=Open 'On Hold' Closed Complete"`
}

// Validate runs the structural checks.
func (req StatusRequest) Validate() error {
	return validate.Struct(req)
}

func parseDate(s *string) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", *s)
	if err != nil {
		return nil
	}
	return &t
}
