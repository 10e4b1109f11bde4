package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/probata/estateledger-backend/internal/logger"
)

// RollupCache is the optional read-through cache in front of the category
// rollup. One snapshot key holds the full rollup; the Allocation Writer
// invalidates it synchronously after commit, never speculatively. A nil
// *RollupCache is a no-op, so callers don't branch on whether caching is
// configured.

const rollupSnapshotKey = "rollup:categories"

type RollupCache struct {
	log *logger.Logger
	rdb *goredis.Client
	ttl time.Duration
}

type CategorySum struct {
	Category string `json:"category"`
	Sum      string `json:"sum"`
}

func NewRollupCache(log *logger.Logger) (*RollupCache, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &RollupCache{
		log: log.With("service", "RollupCache"),
		rdb: rdb,
		ttl: 5 * time.Minute,
	}, nil
}

func (c *RollupCache) Get(ctx context.Context) ([]CategorySum, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}
	raw, err := c.rdb.Get(ctx, rollupSnapshotKey).Bytes()
	if err != nil {
		if err != goredis.Nil {
			c.log.Warn("rollup cache read failed", "error", err)
		}
		return nil, false
	}
	var sums []CategorySum
	if err := json.Unmarshal(raw, &sums); err != nil {
		c.log.Warn("rollup cache payload malformed, dropping", "error", err)
		_ = c.rdb.Del(ctx, rollupSnapshotKey).Err()
		return nil, false
	}
	return sums, true
}

func (c *RollupCache) Set(ctx context.Context, sums []CategorySum) {
	if c == nil || c.rdb == nil {
		return
	}
	raw, err := json.Marshal(sums)
	if err != nil {
		c.log.Warn("rollup cache marshal failed", "error", err)
		return
	}
	if err := c.rdb.Set(ctx, rollupSnapshotKey, raw, c.ttl).Err(); err != nil {
		c.log.Warn("rollup cache write failed", "error", err)
	}
}

// Invalidate drops the snapshot. Called by the writer after a successful
// commit.
func (c *RollupCache) Invalidate(ctx context.Context) {
	if c == nil || c.rdb == nil {
		return
	}
	if err := c.rdb.Del(ctx, rollupSnapshotKey).Err(); err != nil {
		c.log.Warn("rollup cache invalidation failed", "error", err)
	}
}

func (c *RollupCache) Close() error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}
