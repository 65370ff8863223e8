package helpers

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient initializes a redis client.
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

func sessionKey(userID string) string { return "user:session:" + userID }

// StoreSession records a login session hash for the user with the given TTL.
// Failures are returned for the caller to log; sessions are best-effort.
func StoreSession(ctx context.Context, rdb *redis.Client, userID string, fields map[string]any, ttl time.Duration) error {
	key := sessionKey(userID)
	pipe := rdb.Pipeline()
	pipe.HSet(ctx, key, fields)
	pipe.Expire(ctx, key, ttl)
	_, err := pipe.Exec(ctx)
	return err
}

// GetSession returns the stored session hash, or an empty map when none exists.
func GetSession(ctx context.Context, rdb *redis.Client, userID string) (map[string]string, error) {
	return rdb.HGetAll(ctx, sessionKey(userID)).Result()
}

// TouchSession updates session fields while preserving the remaining TTL.
func TouchSession(ctx context.Context, rdb *redis.Client, userID string, fields map[string]any) error {
	key := sessionKey(userID)
	pipe := rdb.Pipeline()
	pipe.HSet(ctx, key, fields)
	if ttl, err := rdb.TTL(ctx, key).Result(); err == nil && ttl > 0 {
		pipe.Expire(ctx, key, ttl)
	}
	_, err := pipe.Exec(ctx)
	return err
}

// DropSession removes the session hash on logout.
func DropSession(ctx context.Context, rdb *redis.Client, userID string) error {
	return rdb.Del(ctx, sessionKey(userID)).Err()
}
