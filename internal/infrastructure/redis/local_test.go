package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Chrisx-39/FormMaster/internal/infrastructure/redis"
)

func TestLocalLocker(t *testing.T) {
	ctx := context.Background()
	l := redis.NewLocalLocker()

	ok, err := l.TryLock(ctx, "jobs:lock:a", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, _ = l.TryLock(ctx, "jobs:lock:a", time.Minute)
	assert.False(t, ok, "segundo intento mientras está tomado")

	ok, _ = l.TryLock(ctx, "jobs:lock:b", time.Minute)
	assert.True(t, ok)

	require.NoError(t, l.Unlock(ctx, "jobs:lock:a"))
	ok, _ = l.TryLock(ctx, "jobs:lock:a", time.Minute)
	assert.True(t, ok)
}

func TestLocalLocker_ExpiraPorTTL(t *testing.T) {
	ctx := context.Background()
	l := redis.NewLocalLocker()

	ok, _ := l.TryLock(ctx, "k", time.Nanosecond)
	require.True(t, ok)
	time.Sleep(time.Millisecond)
	ok, _ = l.TryLock(ctx, "k", time.Minute)
	assert.True(t, ok)
}

func TestLocalDeduper(t *testing.T) {
	ctx := context.Background()
	d := redis.NewLocalDeduper()

	first, err := d.FirstSeen(ctx, "alerts:low_stock:1", time.Hour)
	require.NoError(t, err)
	assert.True(t, first)

	first, _ = d.FirstSeen(ctx, "alerts:low_stock:1", time.Hour)
	assert.False(t, first)

	first, _ = d.FirstSeen(ctx, "alerts:low_stock:2", time.Hour)
	assert.True(t, first)
}
