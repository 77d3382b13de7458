// infrastructure/redis/client.go
package redis

import (
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/finishlineauto/quoteserver/config"
)

// NewClient creates a Redis client for the optional Redis token store.
// Multiple addresses select a cluster client.
func NewClient(cfg config.RedisConfig) redis.UniversalClient {
	if len(cfg.Addresses) > 1 {
		return redis.NewClusterClient(&redis.ClusterOptions{
			Addrs:        cfg.Addresses,
			Password:     cfg.Password,
			MaxRetries:   3,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		})
	}

	return redis.NewClient(&redis.Options{
		Addr:         cfg.Addresses[0],
		Password:     cfg.Password,
		DB:           cfg.DB,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
}
