package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	domainRepo "forpharma-console/internal/domain/repository"

	"github.com/redis/go-redis/v9"
)

const referenceKeyPrefix = "reference:"

type referenceCache struct {
	redisClient *redis.Client
}

func NewReferenceCache(redisClient *redis.Client) domainRepo.ReferenceCache {
	return &referenceCache{redisClient: redisClient}
}

func referenceKey(organizationID, kind string) string {
	return referenceKeyPrefix + organizationID + ":" + kind
}

func (c *referenceCache) Get(ctx context.Context, organizationID, kind string, out interface{}) (bool, error) {
	payload, err := c.redisClient.Get(ctx, referenceKey(organizationID, kind)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return false, err
	}
	return true, nil
}

func (c *referenceCache) Set(ctx context.Context, organizationID, kind string, value interface{}, ttl time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.redisClient.Set(ctx, referenceKey(organizationID, kind), payload, ttl).Err()
}

func (c *referenceCache) Invalidate(ctx context.Context, organizationID string, kinds ...string) error {
	if len(kinds) == 0 {
		return nil
	}
	keys := make([]string, len(kinds))
	for i, kind := range kinds {
		keys[i] = referenceKey(organizationID, kind)
	}
	return c.redisClient.Del(ctx, keys...).Err()
}
