// Package jobs holds the background task definitions and the Asynq worker
// wiring around them.
package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskOrderPDF renders a purchase order document in the background.
	TaskOrderPDF = "po:render_pdf"
	// TaskCatalogWarmup refreshes the catalog item cache.
	TaskCatalogWarmup = "catalog:warmup"
)

// OrderPDFPayload identifies the order to render and the document slot the
// result is stored under.
type OrderPDFPayload struct {
	OrderID    int64  `json:"order_id"`
	DocumentID string `json:"document_id"`
}

// NewOrderPDFTask constructs an Asynq task for a background render.
func NewOrderPDFTask(payload OrderPDFPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderPDF, data), nil
}

// CatalogWarmupPayload bounds the warmup batch.
type CatalogWarmupPayload struct {
	BatchSize int `json:"batch_size"`
}

// NewCatalogWarmupTask constructs the scheduled warmup task.
func NewCatalogWarmupTask(payload CatalogWarmupPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskCatalogWarmup, data), nil
}
