package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swiftprep/swiftprep/internal/config"
)

func TestNewCommentLimiterDisabled(t *testing.T) {
	limiter, err := NewCommentLimiter(config.Config{})
	require.NoError(t, err)
	assert.Nil(t, limiter)
	assert.False(t, limiter.Enabled())

	allowed, err := limiter.AllowUser(context.Background(), "1001")
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestNewCommentLimiterValidation(t *testing.T) {
	_, err := NewCommentLimiter(config.Config{
		RateLimit: config.RateLimitConfig{Enabled: true},
	})
	assert.Error(t, err)

	_, err = NewCommentLimiter(config.Config{
		RateLimit: config.RateLimitConfig{
			Enabled:   true,
			RedisAddr: "localhost:6379",
		},
	})
	assert.Error(t, err)

	limiter, err := NewCommentLimiter(config.Config{
		RateLimit: config.RateLimitConfig{
			Enabled:      true,
			RedisAddr:    "localhost:6379",
			CommentRate:  0.5,
			CommentBurst: 5,
		},
	})
	require.NoError(t, err)
	assert.True(t, limiter.Enabled())
}

func TestDefaultBucketTTL(t *testing.T) {
	assert.Equal(t, 20*time.Second, defaultBucketTTL(0.5, 5))
	assert.Equal(t, 2*time.Second, defaultBucketTTL(10, 10))
	assert.Equal(t, time.Second, defaultBucketTTL(100, 1))
	assert.Equal(t, time.Second, defaultBucketTTL(0, 0))
}
