package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v9"
	"github.com/vmihailenco/msgpack/v5"
)

// redisCache stores msgpack encoded entities under <prefix>:<id> keys
type redisCache[T any] struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func (r *redisCache[T]) find(ctx context.Context, id string) (*T, error) {
	res, err := r.client.Get(ctx, r.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var v T
	if err := msgpack.Unmarshal(res, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *redisCache[T]) evict(ctx context.Context, id string) error {
	return r.client.Del(ctx, r.key(id)).Err()
}

func (r *redisCache[T]) cache(ctx context.Context, id string, v *T) error {
	encoded, err := msgpack.Marshal(v)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.key(id), encoded, r.ttl).Err()
}

func (r *redisCache[T]) key(id string) string {
	return fmt.Sprintf("%s:%s", r.prefix, id)
}
