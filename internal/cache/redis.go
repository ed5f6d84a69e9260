package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/campusevents/recommendation-service/internal/domain"
)

const defaultTTL = 10 * time.Minute

type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Cache{client: client, ttl: ttl}
}

func recKey(userID int64, limit int) string {
	return fmt.Sprintf("rec:user:%d:limit:%d", userID, limit)
}

func trendingKey(limit int) string {
	return fmt.Sprintf("trending:limit:%d", limit)
}

// GetRecommendations returns cached recommendations, reporting a miss
// with found=false.
func (c *Cache) GetRecommendations(ctx context.Context, userID int64, limit int) ([]domain.Recommendation, bool, error) {
	key := recKey(userID, limit)
	val, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get recommendations from cache: %w", err)
	}

	var recs []domain.Recommendation
	if err := json.Unmarshal([]byte(val), &recs); err != nil {
		return nil, false, fmt.Errorf("unmarshal recommendations %s: %w", key, err)
	}
	return recs, true, nil
}

// SetRecommendations stores recommendations with the configured TTL.
func (c *Cache) SetRecommendations(ctx context.Context, userID int64, limit int, recs []domain.Recommendation) error {
	val, err := json.Marshal(recs)
	if err != nil {
		return fmt.Errorf("marshal recommendations: %w", err)
	}
	if err := c.client.Set(ctx, recKey(userID, limit), val, c.ttl).Err(); err != nil {
		return fmt.Errorf("set recommendations in cache: %w", err)
	}
	return nil
}

// GetTrending returns the cached trending list.
func (c *Cache) GetTrending(ctx context.Context, limit int) ([]domain.TrendingEvent, bool, error) {
	key := trendingKey(limit)
	val, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get trending from cache: %w", err)
	}

	var events []domain.TrendingEvent
	if err := json.Unmarshal([]byte(val), &events); err != nil {
		return nil, false, fmt.Errorf("unmarshal trending %s: %w", key, err)
	}
	return events, true, nil
}

// SetTrending stores the trending list with the configured TTL.
func (c *Cache) SetTrending(ctx context.Context, limit int, events []domain.TrendingEvent) error {
	val, err := json.Marshal(events)
	if err != nil {
		return fmt.Errorf("marshal trending: %w", err)
	}
	if err := c.client.Set(ctx, trendingKey(limit), val, c.ttl).Err(); err != nil {
		return fmt.Errorf("set trending in cache: %w", err)
	}
	return nil
}

// ClearUserCache drops a user's cached recommendations; called when the
// write side records a registration change.
func (c *Cache) ClearUserCache(ctx context.Context, userID int64) error {
	pattern := fmt.Sprintf("rec:user:%d:limit:*", userID)
	iter := c.client.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("cache delete %s: %w", iter.Val(), err)
		}
	}
	return iter.Err()
}

// Ping checks connectivity.
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
