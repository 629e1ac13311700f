package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/hibiken/asynq"

	jobmetrics "github.com/RealRussianBoi/Shopify-Integrated-PDF-Generator/internal/jobs"
	"github.com/RealRussianBoi/Shopify-Integrated-PDF-Generator/internal/purchase"
)

// OrderRenderer is the piece of the report package the job needs.
type OrderRenderer interface {
	RenderOrder(ctx context.Context, order purchase.Order) ([]byte, error)
}

// OrderPDFJob renders queued purchase order documents and parks the result
// in the document store.
type OrderPDFJob struct {
	Orders   *purchase.Service
	Renderer OrderRenderer
	Store    *DocumentStore
	Logger   *slog.Logger
	Metrics  *jobmetrics.Metrics
}

// NewOrderPDFJob wires dependencies for the render handler.
func NewOrderPDFJob(orders *purchase.Service, renderer OrderRenderer, store *DocumentStore, logger *slog.Logger, metrics *jobmetrics.Metrics) *OrderPDFJob {
	return &OrderPDFJob{Orders: orders, Renderer: renderer, Store: store, Logger: logger, Metrics: metrics}
}

// Handle processes TaskOrderPDF tasks. A vanished order skips retry; the
// render request is stale and retrying cannot revive it.
func (j *OrderPDFJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Renderer == nil || j.Store == nil {
		return errors.New("order pdf: handler not configured")
	}
	var payload OrderPDFPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	if payload.OrderID <= 0 || payload.DocumentID == "" {
		return asynq.SkipRetry
	}

	tracker := j.Metrics.Track(TaskOrderPDF)
	err := j.render(ctx, payload)
	return tracker.End(err)
}

func (j *OrderPDFJob) render(ctx context.Context, payload OrderPDFPayload) error {
	order, err := j.Orders.Get(ctx, payload.OrderID)
	if errors.Is(err, purchase.ErrNotFound) {
		j.Logger.Warn("order pdf: order vanished", "order_id", payload.OrderID)
		return asynq.SkipRetry
	}
	if err != nil {
		return err
	}

	pdf, err := j.Renderer.RenderOrder(ctx, order)
	if err != nil {
		return err
	}
	if err := j.Store.Save(ctx, payload.DocumentID, pdf); err != nil {
		return err
	}
	j.Logger.Info("order pdf rendered",
		"order_id", payload.OrderID,
		"document_id", payload.DocumentID,
		"bytes", len(pdf))
	return nil
}
