package jobs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrDocumentNotReady is returned while a queued render has not finished,
// or after its result expired.
var ErrDocumentNotReady = errors.New("jobs: document not ready")

const documentKeyPrefix = "po:document:"

// DocumentStore keeps finished PDF renders in Redis for pickup. Documents
// are transient; clients are expected to download them promptly.
type DocumentStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewDocumentStore constructs the store. A zero ttl defaults to 24h.
func NewDocumentStore(client *redis.Client, ttl time.Duration) *DocumentStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &DocumentStore{client: client, ttl: ttl}
}

// Save stores a finished document.
func (s *DocumentStore) Save(ctx context.Context, documentID string, pdf []byte) error {
	if err := s.client.Set(ctx, documentKeyPrefix+documentID, pdf, s.ttl).Err(); err != nil {
		return fmt.Errorf("jobs: store document %s: %w", documentID, err)
	}
	return nil
}

// Get fetches a finished document.
func (s *DocumentStore) Get(ctx context.Context, documentID string) ([]byte, error) {
	raw, err := s.client.Get(ctx, documentKeyPrefix+documentID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrDocumentNotReady
	}
	return raw, err
}
