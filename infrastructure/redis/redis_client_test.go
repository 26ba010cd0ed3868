package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// liveClient connects to REDIS_TEST_HOST, skipping when unset
func liveClient(t *testing.T) *RedisClient {
	t.Helper()
	host := os.Getenv("REDIS_TEST_HOST")
	if host == "" {
		t.Skip("REDIS_TEST_HOST not set")
	}
	port := os.Getenv("REDIS_TEST_PORT")
	if port == "" {
		port = "6379"
	}
	c := NewRedisClient(RedisConfig{Host: host, Port: port})
	t.Cleanup(func() { _ = c.Close() })
	require.NoError(t, c.Ping(context.Background()))
	return c
}

func TestRedisClient_PingUnreachable(t *testing.T) {
	c := NewRedisClient(RedisConfig{Host: "127.0.0.1", Port: "1"})
	defer c.Close()

	assert.Error(t, c.Ping(context.Background()))
}

func TestRedisClient_GetSet(t *testing.T) {
	c := liveClient(t)
	ctx := context.Background()

	_, err := c.Get(ctx, "decorlens:test:missing")
	assert.True(t, IsNil(err))

	require.NoError(t, c.Set(ctx, "decorlens:test:key", []byte("value"), time.Minute))
	got, err := c.Get(ctx, "decorlens:test:key")
	require.NoError(t, err)
	assert.Equal(t, []byte("value"), got)
}

func TestRedisClient_PublishSubscribe(t *testing.T) {
	c := liveClient(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	sub, err := c.Subscribe(ctx, "decorlens:test:events")
	require.NoError(t, err)
	defer sub.Close()

	require.NoError(t, c.Publish(ctx, "decorlens:test:events", []byte(`{"event":"ping"}`)))

	msg, err := sub.ReceiveMessage(ctx)
	require.NoError(t, err)
	assert.Equal(t, `{"event":"ping"}`, msg.Payload)
}
