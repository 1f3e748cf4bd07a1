package utils

import (
	"context"
	"log"
	"time"

	"roamly/config"

	"github.com/go-redis/redis/v8"
)

// TravelCacheClient is the dedicated client for travel-estimate caching.
var TravelCacheClient *redis.Client

// InitTravelCache initializes the Redis client used to cache travel-time
// estimates between addresses.
func InitTravelCache() {
	TravelCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTravelCacheDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := TravelCacheClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (Travel Cache): %v", err)
	}
}

// GetTravelCacheClient returns the travel-estimate cache client.
func GetTravelCacheClient() *redis.Client {
	if TravelCacheClient == nil {
		InitTravelCache()
	}
	return TravelCacheClient
}
