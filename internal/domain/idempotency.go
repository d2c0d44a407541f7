package domain

import (
	"context"
	"time"
)

// IdempotencyTTL is how long a cached response stays replayable.
const IdempotencyTTL = 24 * time.Hour

// IdempotencyRecord stores the first 2xx response produced for a request
// fingerprint. Records are created once and expire; they are never updated.
type IdempotencyRecord struct {
	Key          string    `json:"key"`
	StatusCode   int       `json:"status_code"`
	ResponseBody []byte    `json:"response_body"`
	CreatedAt    time.Time `json:"created_at"`
}

// IdempotencyStore persists idempotency records with a TTL. Get returns
// (nil, nil) on a miss; implementations without native TTL must treat
// records older than the TTL as absent.
type IdempotencyStore interface {
	Get(ctx context.Context, key string) (*IdempotencyRecord, error)
	Set(ctx context.Context, record *IdempotencyRecord, ttl time.Duration) error
}
