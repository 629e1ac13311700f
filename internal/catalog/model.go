// Package catalog serves the product data needed when lines are added to a
// purchase order. It is a read-only lookup: the pricing engine consumes the
// returned fields and never writes back.
package catalog

import "errors"

// Item is the per-variant data consumed by order lines.
type Item struct {
	ProductID    int64   `json:"product_id"`
	VariantID    int64   `json:"variant_id"`
	ProductTitle string  `json:"product_title"`
	VariantTitle string  `json:"variant_title"`
	SKU          string  `json:"sku"`
	UnitCost     float64 `json:"unit_cost"`
	QtyOnHand    int64   `json:"qty_on_hand"`
	QtyOnOrder   int64   `json:"qty_on_order"`
}

// ErrNotFound indicates an unknown variant.
var ErrNotFound = errors.New("catalog: variant not found")
