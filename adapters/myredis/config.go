package myredis

import (
	"fmt"

	"github.com/go-redis/redis/v8"
)

// ConfigOption configures the client.
type ConfigOption func(*redis.Options)

// NewRedisUniversalClient creates and configures instance of redis universal client.
func NewRedisUniversalClient(redisAddr string, options ...ConfigOption) (redis.UniversalClient, error) {
	redisOptions, err := redis.ParseURL(redisAddr)
	if err != nil {
		return nil, fmt.Errorf("cant parse redis url: %w", err)
	}
	for _, opt := range options {
		opt(redisOptions)
	}
	return redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs:        []string{redisOptions.Addr},
		DB:           redisOptions.DB,
		Username:     redisOptions.Username,
		Password:     redisOptions.Password,
		DialTimeout:  redisOptions.DialTimeout,
		ReadTimeout:  redisOptions.ReadTimeout,
		WriteTimeout: redisOptions.WriteTimeout,
		MaxRetries:   redisOptions.MaxRetries,
		PoolSize:     redisOptions.PoolSize,
		PoolTimeout:  redisOptions.PoolTimeout,
		MinIdleConns: redisOptions.MinIdleConns,
		IdleTimeout:  redisOptions.IdleTimeout,
		TLSConfig:    redisOptions.TLSConfig,
	}), nil
}
