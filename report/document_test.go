package report

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/RealRussianBoi/Shopify-Integrated-PDF-Generator/internal/purchase"
)

func sampleOrder() purchase.Order {
	lines := []purchase.OrderLine{
		{Position: 1, SKU: "W-100", PurchaseDescription: "Widget", QtyOrdered: 3, UnitCost: 10, TaxPercent: 10},
		{Position: 2, SKU: "G-200", PurchaseDescription: "Gadget", QtyOrdered: 1, UnitCost: 7.5},
	}
	for i := range lines {
		lines[i].ExtendedCost = purchase.ExtendedCost(lines[i].UnitCost, lines[i].QtyOrdered, lines[i].TaxPercent)
	}
	header := purchase.OrderHeader{
		PONumber:   "PO-1001",
		VendorName: "Acme Corp",
		Status:     purchase.StatusOpen,
		OrderDate:  time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		Freight:    12.25,
	}
	summary := purchase.Recompute(lines, header)
	return purchase.Order{Header: header, Lines: lines, Summary: summary}
}

func TestOrderHTMLEmbedsSummaryFigures(t *testing.T) {
	order := sampleOrder()

	html, err := OrderHTML(order)
	require.NoError(t, err)

	require.Contains(t, html, "Purchase Order PO-1001")
	require.Contains(t, html, "Acme Corp")
	require.Contains(t, html, "Widget")
	// 3*10*1.1 = 33, subtotal 40.5, freight 12.25, total 52.75.
	require.Contains(t, html, ">33.00<")
	require.Contains(t, html, ">40.50<")
	require.Contains(t, html, ">12.25<")
	require.Contains(t, html, ">52.75<")
	require.NotContains(t, html, "Discount")
}

func TestOrderHTMLEscapesVendorInput(t *testing.T) {
	order := sampleOrder()
	order.Header.NoteToVendor = "<script>alert(1)</script>"

	html, err := OrderHTML(order)
	require.NoError(t, err)
	require.NotContains(t, html, "<script>alert(1)</script>")
}

func TestRendererSendsDocumentToGotenberg(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/forms/chromium/convert/html", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1 << 20))
		_, _ = w.Write([]byte("%PDF-1.7 fake"))
	}))
	defer srv.Close()

	renderer := NewRenderer(NewClient(srv.URL, time.Second))
	pdf, err := renderer.RenderOrder(context.Background(), sampleOrder())
	require.NoError(t, err)
	require.Equal(t, []byte("%PDF-1.7 fake"), pdf)
}
