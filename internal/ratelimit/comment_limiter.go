package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"strings"

	redis "github.com/redis/go-redis/v9"
	"github.com/swiftprep/swiftprep/internal/config"
)

const keyCommentUser = "discussion:comment:user:%s"

// CommentLimiter throttles comment and reply creation per user.
type CommentLimiter struct {
	enabled bool

	bucket *TokenBucket

	rate  float64
	burst int
}

func NewCommentLimiter(cfg config.Config) (*CommentLimiter, error) {
	limitCfg := cfg.RateLimit
	if !limitCfg.Enabled {
		return nil, nil
	}

	addr := strings.TrimSpace(limitCfg.RedisAddr)
	if addr == "" {
		return nil, errors.New("rate limit redis addr is required")
	}
	if limitCfg.CommentRate <= 0 || limitCfg.CommentBurst <= 0 {
		return nil, errors.New("comment rate limit must be positive")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: strings.TrimSpace(limitCfg.RedisPassword),
		DB:       limitCfg.RedisDB,
	})

	return &CommentLimiter{
		enabled: true,
		bucket:  NewTokenBucket(client),
		rate:    limitCfg.CommentRate,
		burst:   limitCfg.CommentBurst,
	}, nil
}

func (l *CommentLimiter) Enabled() bool {
	return l != nil && l.enabled
}

// AllowUser reports whether the user may post another comment or reply.
func (l *CommentLimiter) AllowUser(ctx context.Context, userID string) (bool, error) {
	if !l.Enabled() {
		return true, nil
	}
	return l.bucket.Allow(ctx, fmt.Sprintf(keyCommentUser, strings.TrimSpace(userID)), l.rate, l.burst)
}
