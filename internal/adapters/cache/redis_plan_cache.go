package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"visit-planner-service/internal/domain"
	"visit-planner-service/internal/platform/obs"
)

const planKeyPrefix = "plan:"

// RedisPlanCache holds computed daily plans for a short TTL so that several
// dashboard viewers do not recompute the same plan. Any patient, provider or
// settings write invalidates the whole cache.
type RedisPlanCache struct {
	Client *redis.Client
}

func NewRedisPlanCache(client *redis.Client) *RedisPlanCache {
	return &RedisPlanCache{Client: client}
}

// NewRedisClient creates a redis client and verifies connectivity.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis: ping failed: %w", err)
	}

	return client, nil
}

// GetPlan returns the cached plan for the key, reporting a miss with false.
func (c *RedisPlanCache) GetPlan(ctx context.Context, key string) (_ *domain.DailyPlan, _ bool, err error) {
	defer obs.Time(ctx, "plan.cache.Get")(&err)

	if c.Client == nil {
		return nil, false, errors.New("plan cache: client is nil")
	}

	raw, err := c.Client.Get(ctx, planKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get plan cache: %w", err)
	}

	var plan domain.DailyPlan
	if err := json.Unmarshal(raw, &plan); err != nil {
		// A corrupt entry is treated as a miss; it will be overwritten.
		return nil, false, nil
	}

	return &plan, true, nil
}

// PutPlan stores a plan under the key for the given TTL.
func (c *RedisPlanCache) PutPlan(ctx context.Context, key string, plan *domain.DailyPlan, ttl time.Duration) error {
	if c.Client == nil {
		return errors.New("plan cache: client is nil")
	}

	raw, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("put plan cache: marshal plan: %w", err)
	}

	if err := c.Client.Set(ctx, planKeyPrefix+key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("put plan cache: %w", err)
	}

	return nil
}

// Invalidate removes every cached plan.
func (c *RedisPlanCache) Invalidate(ctx context.Context) error {
	if c.Client == nil {
		return errors.New("plan cache: client is nil")
	}

	iter := c.Client.Scan(ctx, 0, planKeyPrefix+"*", 0).Iterator()
	keys := make([]string, 0, 8)
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("invalidate plan cache: scan: %w", err)
	}

	if len(keys) == 0 {
		return nil
	}

	if err := c.Client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("invalidate plan cache: del: %w", err)
	}

	return nil
}
