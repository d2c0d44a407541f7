package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Ashwinv007/WorkspaceOps-sub000/internal/domain"
)

const idempotencyPrefix = "idem:"

// IdempotencyStore persists request fingerprints with their first 2xx
// response. Expiry rides on the Redis key TTL, so lookups never need an
// explicit age check.
type IdempotencyStore struct {
	client *Client
}

// NewIdempotencyStore creates a new idempotency store
func NewIdempotencyStore(client *Client) *IdempotencyStore {
	return &IdempotencyStore{client: client}
}

// Get retrieves a cached record by fingerprint. A miss returns (nil, nil).
func (s *IdempotencyStore) Get(ctx context.Context, key string) (*domain.IdempotencyRecord, error) {
	data, err := s.client.rdb.Get(ctx, idempotencyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get idempotency record: %w", err)
	}

	var record domain.IdempotencyRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal idempotency record: %w", err)
	}

	return &record, nil
}

// Set stores a record with the given TTL. Records are written once and
// never updated.
func (s *IdempotencyStore) Set(ctx context.Context, record *domain.IdempotencyRecord, ttl time.Duration) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal idempotency record: %w", err)
	}

	if err := s.client.rdb.SetNX(ctx, idempotencyPrefix+record.Key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set idempotency record: %w", err)
	}

	return nil
}
