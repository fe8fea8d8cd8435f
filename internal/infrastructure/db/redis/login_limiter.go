package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	failWindow  = 15 * time.Minute
	maxFailures = 5
	blockFor    = 15 * time.Minute
)

// LoginLimiter throttles repeated failed logins per username using a Redis
// counter with a sliding expiry. After maxFailures within failWindow the
// username is blocked for blockFor.
// Keys: loginfail:<username> (counter), loginblock:<username> (block marker).
type LoginLimiter struct {
	client *redis.Client
}

// NewLoginLimiter creates a LoginLimiter wrapping the given Redis client.
func NewLoginLimiter(client *redis.Client) *LoginLimiter {
	return &LoginLimiter{client: client}
}

// Allow reports whether a login attempt for username may proceed and, when
// blocked, how long until the block expires.
func (l *LoginLimiter) Allow(ctx context.Context, username string) (bool, time.Duration, error) {
	ttl, err := l.client.PTTL(ctx, l.blockKey(username)).Result()
	if err != nil {
		return false, 0, fmt.Errorf("limiter allow: %w", err)
	}
	if ttl > 0 {
		return false, ttl, nil
	}
	return true, 0, nil
}

// Failure records a failed attempt and installs a block once the counter
// reaches maxFailures.
func (l *LoginLimiter) Failure(ctx context.Context, username string) error {
	key := l.failKey(username)

	n, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("limiter failure: %w", err)
	}
	if n == 1 {
		_ = l.client.Expire(ctx, key, failWindow).Err()
	}
	if n >= maxFailures {
		if err := l.client.Set(ctx, l.blockKey(username), "1", blockFor).Err(); err != nil {
			return fmt.Errorf("limiter block: %w", err)
		}
	}
	return nil
}

// Success resets the failure counter after a successful login.
func (l *LoginLimiter) Success(ctx context.Context, username string) error {
	return l.client.Del(ctx, l.failKey(username), l.blockKey(username)).Err()
}

func (l *LoginLimiter) failKey(username string) string {
	return "loginfail:" + username
}

func (l *LoginLimiter) blockKey(username string) string {
	return "loginblock:" + username
}
