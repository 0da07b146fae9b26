package cache

import (
	"context"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

// Optional Redis cache for the dashboard summary. The summary is a full
// scan over the ledger, so it is the one read worth caching; any mutation
// (import, mark paid, CRUD, clear) invalidates it. When Redis is not
// reachable the cache degrades to a no-op.

const (
	dashboardKey = "ledger:dashboard"
	dashboardTTL = 5 * time.Minute
)

var client *redis.Client

// Init initializes the Redis connection.
func Init() error {
	host := os.Getenv("REDIS_HOST")
	if host == "" {
		host = "localhost"
	}
	port := os.Getenv("REDIS_PORT")
	if port == "" {
		port = "6379"
	}

	client = redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		// Close the failed client and set to nil for graceful degradation
		client.Close()
		client = nil
		return err
	}
	return nil
}

// GetCachedDashboard returns the cached dashboard summary JSON if available.
func GetCachedDashboard(ctx context.Context) ([]byte, bool) {
	if client == nil {
		return nil, false
	}
	data, err := client.Get(ctx, dashboardKey).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// CacheDashboard caches the dashboard summary JSON for a few minutes.
func CacheDashboard(ctx context.Context, data []byte) {
	if client == nil {
		return
	}
	client.Set(ctx, dashboardKey, data, dashboardTTL)
}

// InvalidateDashboard drops the cached summary after any ledger mutation.
func InvalidateDashboard(ctx context.Context) {
	if client == nil {
		return
	}
	client.Del(ctx, dashboardKey)
}
