package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRedisClientUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	// port 1 is never a Redis server
	_, err := NewRedisClient(ctx, "127.0.0.1", "1", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "127.0.0.1:1")
}

func TestCloseNil(t *testing.T) {
	var rc *RedisClient
	assert.NoError(t, rc.Close())
}

func TestGetUnreachableIsNotMiss(t *testing.T) {
	// A client pointed at a closed port fails with a dial error, not redis.Nil
	rc := NewRedisClientFrom(redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	}))
	defer rc.Close()

	_, err := rc.Get(context.Background(), "missing")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrCacheMiss)
}
