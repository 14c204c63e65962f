package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"tubenotes/domain/model"
	"tubenotes/domain/repository"
	"tubenotes/infrastructure/logger"

	"github.com/redis/go-redis/v9"
)

const videoListTTL = 5 * time.Minute

// VideoCache stores per-owner video listings as JSON blobs with a short
// TTL. Every error path degrades to a cache miss; the Mongo store stays the
// source of truth.
type VideoCache struct {
	client *redis.Client
}

func NewVideoCache(client *redis.Client) repository.IVideoCache {
	return &VideoCache{client: client}
}

func listKey(ownerID string) string {
	return fmt.Sprintf("videos:%s", ownerID)
}

func (c *VideoCache) GetList(ctx context.Context, ownerID string) ([]model.Video, error) {
	if c.client == nil {
		return nil, redis.Nil
	}
	raw, err := c.client.Get(ctx, listKey(ownerID)).Result()
	if err != nil {
		return nil, err
	}
	var videos []model.Video
	if err := json.Unmarshal([]byte(raw), &videos); err != nil {
		logger.GetLogger().WithField("error", err).Warn("Cached video list not decodable - treating as miss")
		return nil, err
	}
	return videos, nil
}

func (c *VideoCache) SetList(ctx context.Context, ownerID string, videos []model.Video) {
	if c.client == nil {
		return
	}
	raw, err := json.Marshal(videos)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, listKey(ownerID), raw, videoListTTL).Err(); err != nil {
		logger.GetLogger().WithField("error", err).Warn("Failed to cache video list")
	}
}

func (c *VideoCache) Invalidate(ctx context.Context, ownerID string) {
	if c.client == nil {
		return
	}
	if err := c.client.Del(ctx, listKey(ownerID)).Err(); err != nil {
		logger.GetLogger().WithField("error", err).Warn("Failed to invalidate video list cache")
	}
}
