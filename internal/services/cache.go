package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/solacejournal/solace-backend/internal/database"
)

const (
	// CacheKeyPrefix is the Redis key prefix for cached data.
	CacheKeyPrefix = "cache:"
	// AnalyticsCacheTTL bounds how stale mood analytics may get between
	// entry mutations.
	AnalyticsCacheTTL = 15 * time.Minute
)

// CacheService caches per-user journal aggregations (mood analytics, popular
// tags) in Redis. Keys are scoped by user and invalidated on any entry
// mutation.
type CacheService struct{}

// MoodAnalyticsKey is the cache key for a user's mood analytics query.
// Date bounds are part of the key so different ranges don't collide.
func MoodAnalyticsKey(userID, start, end string) string {
	return fmt.Sprintf("journal:%s:analytics:%s:%s", userID, start, end)
}

// PopularTagsKey is the cache key for a user's popular-tags query.
func PopularTagsKey(userID string, limit int) string {
	return fmt.Sprintf("journal:%s:tags:%d", userID, limit)
}

// Get retrieves a cached value. A miss is (false, nil), not an error.
func (c *CacheService) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	val, err := database.RedisClient.Get(ctx, CacheKeyPrefix+key).Result()
	if err != nil {
		return false, nil
	}
	if err := json.Unmarshal([]byte(val), dest); err != nil {
		return false, err
	}
	return true, nil
}

// Set stores a value with the analytics TTL.
func (c *CacheService) Set(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return database.RedisClient.Set(ctx, CacheKeyPrefix+key, data, AnalyticsCacheTTL).Err()
}

// InvalidateUser drops every cached aggregation for the user. Called after
// any journal entry mutation.
func (c *CacheService) InvalidateUser(ctx context.Context, userID string) error {
	pattern := CacheKeyPrefix + "journal:" + userID + ":*"
	iter := database.RedisClient.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		database.RedisClient.Del(ctx, iter.Val())
	}
	return iter.Err()
}
