package jobs

import (
	"context"
	"log/slog"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/RealRussianBoi/Shopify-Integrated-PDF-Generator/internal/catalog"
	jobmetrics "github.com/RealRussianBoi/Shopify-Integrated-PDF-Generator/internal/jobs"
)

func testRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestDocumentStoreRoundTrip(t *testing.T) {
	store := NewDocumentStore(testRedis(t), time.Minute)
	ctx := context.Background()

	_, err := store.Get(ctx, "11111111-1111-1111-1111-111111111111")
	require.ErrorIs(t, err, ErrDocumentNotReady)

	require.NoError(t, store.Save(ctx, "11111111-1111-1111-1111-111111111111", []byte("%PDF fake")))
	pdf, err := store.Get(ctx, "11111111-1111-1111-1111-111111111111")
	require.NoError(t, err)
	require.Equal(t, []byte("%PDF fake"), pdf)
}

type stubVariants struct {
	ids []int64
}

func (s *stubVariants) AllVariantIDs(ctx context.Context) ([]int64, error) {
	return s.ids, nil
}

type stubItems struct {
	calls int
}

func (s *stubItems) Items(ctx context.Context, variantIDs []int64) ([]catalog.Item, error) {
	s.calls++
	items := make([]catalog.Item, len(variantIDs))
	for i, id := range variantIDs {
		items[i] = catalog.Item{VariantID: id}
	}
	return items, nil
}

func TestCatalogWarmupBatches(t *testing.T) {
	src := &stubItems{}
	cache := catalog.NewCache(testRedis(t), src, time.Minute)
	job := NewCatalogWarmupJob(
		&stubVariants{ids: []int64{1, 2, 3, 4, 5}},
		cache,
		slog.Default(),
		jobmetrics.NewMetrics(prometheus.NewRegistry()),
	)

	task, err := NewCatalogWarmupTask(CatalogWarmupPayload{BatchSize: 2})
	require.NoError(t, err)
	require.NoError(t, job.Handle(context.Background(), task))

	// 5 ids in batches of 2 is three source calls.
	require.Equal(t, 3, src.calls)

	items, err := cache.Items(context.Background(), []int64{1, 2, 3, 4, 5})
	require.NoError(t, err)
	require.Len(t, items, 5)
	require.Equal(t, 3, src.calls)
}
