package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix        = "user:%d"
	CategoriesKey        = "categories:all"
	CategoryCountsKey    = "categories:counts"
	StatsKey             = "stats:global"
	TokenBlacklistPrefix = "jwt:blacklist:%s"
)

const (
	UserTTL       = 5 * time.Minute
	CategoriesTTL = 10 * time.Minute
	StatsTTL      = 1 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func TokenBlacklistKey(jti string) string {
	return fmt.Sprintf(TokenBlacklistPrefix, jti)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

// InvalidateAdAggregates drops the cached aggregates affected by any ad
// write: category ad counts and the global stats snapshot.
func InvalidateAdAggregates(ctx context.Context) {
	Invalidate(ctx, CategoryCountsKey)
	Invalidate(ctx, StatsKey)
}

// BlacklistToken stores the token's JTI until the token would have expired.
func BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error {
	if client == nil || ttl <= 0 {
		return nil
	}
	return client.Set(ctx, TokenBlacklistKey(jti), "1", ttl).Err()
}

// IsTokenBlacklisted reports whether the JTI has been revoked. Fails open
// when Redis is unavailable so a cache outage does not lock everyone out.
func IsTokenBlacklisted(ctx context.Context, jti string) bool {
	if client == nil || jti == "" {
		return false
	}
	n, err := client.Exists(ctx, TokenBlacklistKey(jti)).Result()
	if err != nil {
		return false
	}
	return n > 0
}
