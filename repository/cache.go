package repository

import (
	"context"
	"time"
)

// Cache stores serialized calculation results. A zero ttl means no expiry.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
}
