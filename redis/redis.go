package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/clinicflow/clinic-api/logger"
)

var (
	Client *redis.Client
	Ctx    = context.Background()
)

// slotCacheTTL bounds staleness for cache entries that survive a version
// bump miss; booking writes invalidate eagerly via InvalidateDoctor.
const slotCacheTTL = 5 * time.Minute

func Init() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		logger.L.Warn("REDIS_ADDR not set, availability caching disabled")
		return
	}

	Client = redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   0,
	})

	if _, err := Client.Ping(Ctx).Result(); err != nil {
		logger.L.Fatalw("Failed to connect to Redis", "error", err)
	}
	logger.L.Info("✅ Connected to Redis")
}

// SlotsKey names a cached slot listing. The doctor's version number is baked
// into the key, so bumping the version orphans every stale entry at once.
func SlotsKey(doctorID uint, from, to string, duration time.Duration) string {
	return fmt.Sprintf("slots:%d:v%d:%s:%s:%d", doctorID, slotsVersion(doctorID), from, to, int(duration.Minutes()))
}

func slotsVersion(doctorID uint) int64 {
	if Client == nil {
		return 0
	}
	version, err := Client.Get(Ctx, fmt.Sprintf("slotsver:%d", doctorID)).Int64()
	if err != nil {
		return 0
	}
	return version
}

// InvalidateDoctor drops every cached slot listing for the doctor by bumping
// its cache version. Old entries expire on their TTL.
func InvalidateDoctor(doctorID uint) {
	if Client == nil {
		return
	}
	if err := Client.Incr(Ctx, fmt.Sprintf("slotsver:%d", doctorID)).Err(); err != nil {
		logger.L.Warnw("Failed to bump slot cache version", "doctor", doctorID, "error", err)
	}
}

// GetJSON loads and unmarshals a cached value; ok is false on miss or when
// caching is disabled.
func GetJSON(key string, dest any) bool {
	if Client == nil {
		return false
	}
	data, err := Client.Get(Ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(data, dest) == nil
}

// SetJSON stores a value under the slot-cache TTL. Failures are logged and
// swallowed; the cache is never load-bearing.
func SetJSON(key string, v any) {
	if Client == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := Client.Set(Ctx, key, data, slotCacheTTL).Err(); err != nil {
		logger.L.Warnw("Failed to cache value", "key", key, "error", err)
	}
}
