package cache

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client is nil when Redis is not configured or unreachable; callers must
// treat a nil client as "caching disabled".
var Client *redis.Client

func Init() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		return
	}

	Client = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	if err := Client.Ping(context.Background()).Err(); err != nil {
		log.Printf("⚠️ Redis unreachable, caching disabled: %v", err)
		Client = nil
		return
	}
	log.Println("✅ Redis connected")
}

// GetJSON reads key into dest. Returns false on miss, disabled cache, or
// decode failure.
func GetJSON(ctx context.Context, key string, dest interface{}) bool {
	if Client == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	data, err := Client.Get(ctx, key).Result()
	if err != nil {
		return false
	}
	return json.Unmarshal([]byte(data), dest) == nil
}

// SetJSON stores v under key with a TTL. Failures are ignored; the cache is
// never a correctness dependency.
func SetJSON(ctx context.Context, key string, v interface{}, ttl time.Duration) {
	if Client == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	Client.Set(ctx, key, data, ttl)
}
