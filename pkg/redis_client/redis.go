package redis_client

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/travigo/timetable-maker/pkg/config"
)

var Client *redis.Client

func Connect(cfg config.RedisConfig) error {
	options := &redis.Options{
		Addr: cfg.Address,
		DB:   cfg.Database,
	}
	if cfg.Password != "" {
		options.Password = cfg.Password
	}

	client := redis.NewClient(options)

	if err := client.Ping(context.Background()).Err(); err != nil {
		_ = client.Close()
		return err
	}

	Client = client

	return nil
}

func Close() error {
	if Client == nil {
		return nil
	}

	err := Client.Close()
	Client = nil

	return err
}
