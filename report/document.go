package report

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"github.com/RealRussianBoi/Shopify-Integrated-PDF-Generator/internal/purchase"
)

// Renderer builds the purchase order document and sends it through the
// Gotenberg client. It reads the order and its summary; it never feeds
// anything back into pricing.
type Renderer struct {
	client *Client
}

// NewRenderer constructs a renderer.
func NewRenderer(client *Client) *Renderer {
	return &Renderer{client: client}
}

// RenderOrder produces the PDF for one order.
func (r *Renderer) RenderOrder(ctx context.Context, order purchase.Order) ([]byte, error) {
	html, err := OrderHTML(order)
	if err != nil {
		return nil, fmt.Errorf("report: build document: %w", err)
	}
	return r.client.RenderHTML(ctx, html)
}

var orderTemplate = template.Must(template.New("order").Funcs(template.FuncMap{
	"money": func(v float64) string { return fmt.Sprintf("%.2f", v) },
	"date": func(t *time.Time) string {
		if t == nil || t.IsZero() {
			return ""
		}
		return t.Format("2006-01-02")
	},
}).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
  body { font-family: Helvetica, Arial, sans-serif; font-size: 12px; color: #222; }
  h1 { font-size: 20px; margin-bottom: 0; }
  .meta { color: #666; margin-bottom: 24px; }
  .blocks { display: flex; gap: 48px; margin-bottom: 24px; }
  table { width: 100%; border-collapse: collapse; }
  th, td { text-align: left; padding: 6px 8px; border-bottom: 1px solid #ddd; }
  td.num, th.num { text-align: right; }
  .summary { margin-top: 16px; margin-left: auto; width: 280px; }
  .summary td { border: none; padding: 3px 8px; }
  .summary tr.total td { border-top: 2px solid #222; font-weight: bold; }
  .note { margin-top: 24px; white-space: pre-wrap; }
</style>
</head>
<body>
<h1>Purchase Order {{.Header.PONumber}}</h1>
<div class="meta">
  Status: {{.Header.Status}} &middot; Order date: {{.Header.OrderDate.Format "2006-01-02"}}
  {{- with .Header.DueDate}} &middot; Due: {{date .}}{{end}}
</div>

<div class="blocks">
  <div>
    <strong>Vendor</strong><br>
    {{if .Header.VendorName}}{{.Header.VendorName}}{{else}}&mdash;{{end}}
    {{- with .Header.PaymentTerms}}<br>Terms: {{.}}{{end}}
    {{- with .Header.Currency}}<br>Currency: {{.}}{{end}}
  </div>
  <div>
    <strong>Ship to</strong><br>
    {{if .Header.DestinationName}}{{.Header.DestinationName}}{{else}}&mdash;{{end}}
    {{- with .Header.ShippingCarrier}}<br>Carrier: {{.}}{{end}}
    {{- with .Header.TrackingNumber}}<br>Tracking: {{.}}{{end}}
  </div>
  {{- with .Header.ReferenceNumber}}
  <div><strong>Reference</strong><br>{{.}}</div>
  {{- end}}
</div>

<table>
  <thead>
    <tr>
      <th>#</th><th>SKU</th><th>Description</th>
      <th class="num">Qty</th><th class="num">Received</th>
      <th class="num">Cost</th><th class="num">Tax %</th><th class="num">Extended</th>
    </tr>
  </thead>
  <tbody>
  {{- range .Lines}}
    <tr>
      <td>{{.Position}}</td>
      <td>{{.SKU}}</td>
      <td>{{.PurchaseDescription}}{{if .IsExtra}} (extra){{end}}</td>
      <td class="num">{{.QtyOrdered}}</td>
      <td class="num">{{.QtyReceived}}</td>
      <td class="num">{{money .UnitCost}}</td>
      <td class="num">{{money .TaxPercent}}</td>
      <td class="num">{{money .ExtendedCost}}</td>
    </tr>
  {{- end}}
  </tbody>
</table>

<table class="summary">
  <tr><td>Subtotal</td><td class="num">{{money .Summary.Subtotal}}</td></tr>
  {{- if ne .Summary.PercentDiscountValue 0.0}}
  <tr><td>Discount ({{money .Summary.DiscountPercent}}%)</td><td class="num">-{{money .Summary.PercentDiscountValue}}</td></tr>
  {{- end}}
  {{- if ne .Summary.DiscountAmount 0.0}}
  <tr><td>Discount</td><td class="num">-{{money .Summary.DiscountAmount}}</td></tr>
  {{- end}}
  {{- if ne .Summary.Freight 0.0}}
  <tr><td>Freight</td><td class="num">{{money .Summary.Freight}}</td></tr>
  {{- end}}
  {{- if ne .Summary.Fee 0.0}}
  <tr><td>Fee</td><td class="num">{{money .Summary.Fee}}</td></tr>
  {{- end}}
  {{- if ne .Summary.Tax 0.0}}
  <tr><td>Tax</td><td class="num">{{money .Summary.Tax}}</td></tr>
  {{- end}}
  <tr class="total"><td>Total</td><td class="num">{{money .Summary.Total}}</td></tr>
</table>

{{- with .Header.NoteToVendor}}
<div class="note"><strong>Note to vendor</strong><br>{{.}}</div>
{{- end}}
</body>
</html>`))

// OrderHTML renders the document markup for one order.
func OrderHTML(order purchase.Order) (string, error) {
	var buf bytes.Buffer
	if err := orderTemplate.Execute(&buf, order); err != nil {
		return "", err
	}
	return buf.String(), nil
}
