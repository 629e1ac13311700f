package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/RealRussianBoi/Shopify-Integrated-PDF-Generator/internal/catalog"
	jobmetrics "github.com/RealRussianBoi/Shopify-Integrated-PDF-Generator/internal/jobs"
)

// VariantLister enumerates the variants eligible for warmup.
type VariantLister interface {
	AllVariantIDs(ctx context.Context) ([]int64, error)
}

// CatalogWarmupJob refreshes the catalog cache in batches so the first
// order edits of the day do not pay the cold lookup cost.
type CatalogWarmupJob struct {
	Variants VariantLister
	Cache    *catalog.Cache
	Logger   *slog.Logger
	Metrics  *jobmetrics.Metrics
}

// NewCatalogWarmupJob wires dependencies for the warmup handler.
func NewCatalogWarmupJob(variants VariantLister, cache *catalog.Cache, logger *slog.Logger, metrics *jobmetrics.Metrics) *CatalogWarmupJob {
	return &CatalogWarmupJob{Variants: variants, Cache: cache, Logger: logger, Metrics: metrics}
}

const defaultWarmupBatch = 200

// Handle processes TaskCatalogWarmup tasks.
func (j *CatalogWarmupJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Cache == nil || j.Variants == nil {
		return errors.New("catalog warmup: handler not configured")
	}
	var payload CatalogWarmupPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	if payload.BatchSize <= 0 {
		payload.BatchSize = defaultWarmupBatch
	}

	tracker := j.Metrics.Track(TaskCatalogWarmup)
	err := j.warm(ctx, payload.BatchSize)
	return tracker.End(err)
}

func (j *CatalogWarmupJob) warm(ctx context.Context, batchSize int) error {
	ids, err := j.Variants.AllVariantIDs(ctx)
	if err != nil {
		return err
	}
	warmed := 0
	for start := 0; start < len(ids); start += batchSize {
		end := start + batchSize
		if end > len(ids) {
			end = len(ids)
		}
		n, err := j.Cache.Warm(ctx, ids[start:end])
		if err != nil {
			return err
		}
		warmed += n
	}
	j.Logger.Info("catalog cache warmed", "variants", warmed)
	return nil
}
