package cache

import (
	"context"
	"time"

	"github.com/go-redis/redis/v9"
	"github.com/umalmyha/crm/internal/model"
)

type CustomerCache interface {
	FindByID(context.Context, string) (*model.Customer, error)
	EvictByID(context.Context, string) error
	Cache(context.Context, *model.Customer) error
}

type redisCustomerCache struct {
	rc *redisCache[model.Customer]
}

func NewRedisCustomerCache(client *redis.Client, ttl time.Duration) CustomerCache {
	return &redisCustomerCache{rc: &redisCache[model.Customer]{client: client, prefix: "customer", ttl: ttl}}
}

func (r *redisCustomerCache) FindByID(ctx context.Context, id string) (*model.Customer, error) {
	c, err := r.rc.find(ctx, id)
	if err != nil || c == nil {
		return nil, err
	}
	c.InUTC()
	return c, nil
}

func (r *redisCustomerCache) EvictByID(ctx context.Context, id string) error {
	return r.rc.evict(ctx, id)
}

func (r *redisCustomerCache) Cache(ctx context.Context, c *model.Customer) error {
	return r.rc.cache(ctx, c.ID, c)
}
