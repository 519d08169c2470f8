package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/placequest/explorer-api/internal/core/domain"
)

const (
	heatmapKey        = "heatmap:missions:v1"
	defaultHeatmapTTL = time.Minute
)

// HeatmapCache keeps the last computed mission heatmap as a JSON blob.
type HeatmapCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewHeatmapCache wraps client. A non-positive ttl selects one minute.
func NewHeatmapCache(client *redis.Client, ttl time.Duration) *HeatmapCache {
	if ttl <= 0 {
		ttl = defaultHeatmapTTL
	}
	return &HeatmapCache{client: client, ttl: ttl}
}

// Get returns the cached heatmap. A missing key is a miss, not an error.
func (c *HeatmapCache) Get(ctx context.Context) ([]domain.HeatmapCell, bool, error) {
	raw, err := c.client.Get(ctx, heatmapKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("heatmap cache get: %w", err)
	}

	var cells []domain.HeatmapCell
	if err := json.Unmarshal(raw, &cells); err != nil {
		return nil, false, fmt.Errorf("heatmap cache decode: %w", err)
	}
	return cells, true, nil
}

// Set stores cells until the TTL expires.
func (c *HeatmapCache) Set(ctx context.Context, cells []domain.HeatmapCell) error {
	if cells == nil {
		cells = []domain.HeatmapCell{}
	}
	raw, err := json.Marshal(cells)
	if err != nil {
		return fmt.Errorf("heatmap cache encode: %w", err)
	}
	return c.client.Set(ctx, heatmapKey, raw, c.ttl).Err()
}
