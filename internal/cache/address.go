package cache

import (
	"context"
	"time"

	"github.com/go-redis/redis/v9"
	"github.com/umalmyha/crm/internal/model"
)

type AddressCache interface {
	FindByID(context.Context, string) (*model.Address, error)
	EvictByID(context.Context, string) error
	Cache(context.Context, *model.Address) error
}

type redisAddressCache struct {
	rc *redisCache[model.Address]
}

func NewRedisAddressCache(client *redis.Client, ttl time.Duration) AddressCache {
	return &redisAddressCache{rc: &redisCache[model.Address]{client: client, prefix: "address", ttl: ttl}}
}

func (r *redisAddressCache) FindByID(ctx context.Context, id string) (*model.Address, error) {
	a, err := r.rc.find(ctx, id)
	if err != nil || a == nil {
		return nil, err
	}
	a.InUTC()
	return a, nil
}

func (r *redisAddressCache) EvictByID(ctx context.Context, id string) error {
	return r.rc.evict(ctx, id)
}

func (r *redisAddressCache) Cache(ctx context.Context, a *model.Address) error {
	return r.rc.cache(ctx, a.ID, a)
}
