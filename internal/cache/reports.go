package cache

import (
	"context"
	"crypto/sha1"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ReportCache keeps rendered capacity reports in Redis for a short TTL. The
// aggregation read is already an eventually-consistent snapshot, so serving
// one a few seconds old does not change the contract. A nil client disables
// the cache entirely.
type ReportCache struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

func NewReportCache(client *redis.Client, ttl time.Duration, prefix string) *ReportCache {
	if prefix == "" {
		prefix = "capacity"
	}
	return &ReportCache{client: client, ttl: ttl, prefix: prefix}
}

func (c *ReportCache) Enabled() bool {
	return c != nil && c.client != nil && c.ttl > 0
}

// Key derives a stable cache key from the admin and the raw filter query.
func (c *ReportCache) Key(adminID int64, rawQuery string) string {
	sum := sha1.Sum([]byte(rawQuery))
	return fmt.Sprintf("%s:%d:%x", c.prefix, adminID, sum[:])
}

// Get returns the cached payload if present. Redis failures degrade to a
// cache miss.
func (c *ReportCache) Get(ctx context.Context, key string) ([]byte, bool) {
	if !c.Enabled() {
		return nil, false
	}
	val, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return val, true
}

// Set stores the payload best-effort; a write failure is ignored.
func (c *ReportCache) Set(ctx context.Context, key string, payload []byte) {
	if !c.Enabled() {
		return
	}
	_ = c.client.Set(ctx, key, payload, c.ttl).Err()
}
