package utils

import (
	"context"
	"log"
	"time"

	"tripflow/config"

	"github.com/go-redis/redis/v8"
)

// ResponseCacheClient is the Redis client backing the generative response cache.
var ResponseCacheClient *redis.Client

// InitResponseCache initializes the Redis client for the response cache
// (using the cache DB from AppConfig).
func InitResponseCache() {
	ResponseCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCacheDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := ResponseCacheClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Response Cache): %v", err)
	}
}

// GetResponseCacheClient returns the Redis client for the response cache.
func GetResponseCacheClient() *redis.Client {
	if ResponseCacheClient == nil {
		InitResponseCache()
	}
	return ResponseCacheClient
}
