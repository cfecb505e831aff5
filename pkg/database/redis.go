package database

import (
	"context"
	"errors"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	redisstore "github.com/eko/gocache/store/redis/v4"
	"github.com/redis/go-redis/v9"
	"github.com/travigo/timetable-maker/pkg/config"
	"github.com/travigo/timetable-maker/pkg/redis_client"
)

type redisDocument struct {
	key    string
	client *redis.Client
	cache  *cache.Cache[string]
}

func NewRedisStore(cfg config.RedisConfig, key string) (GroupStore, error) {
	if err := redis_client.Connect(cfg); err != nil {
		return nil, err
	}

	return newRedisStore(redis_client.Client, key), nil
}

func newRedisStore(client *redis.Client, key string) GroupStore {
	return &documentStore{
		document: &redisDocument{
			key:    key,
			client: client,
			cache:  cache.New[string](redisstore.NewRedis(client)),
		},
	}
}

func (d *redisDocument) Read(ctx context.Context) ([]byte, error) {
	value, err := d.cache.Get(ctx, d.key)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	return []byte(value), nil
}

func (d *redisDocument) Write(ctx context.Context, data []byte) error {
	return d.cache.Set(ctx, d.key, string(data))
}

func (d *redisDocument) Close() error {
	if redis_client.Client == d.client {
		return redis_client.Close()
	}

	return d.client.Close()
}

func isNotFound(err error) bool {
	var notFound *store.NotFound

	return errors.As(err, &notFound) || errors.Is(err, redis.Nil)
}
