package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/frontdesk/internal/cache"
	"github.com/pkordes/frontdesk/testutil"
)

// TestRedis is skipped unless TEST_REDIS_ADDR is set.
func TestRedis(t *testing.T) {
	client := testutil.NewRedisClient(t)
	// A unique prefix keeps parallel runs against a shared Redis apart.
	store := cache.NewRedis(client, "frontdesk-test:"+uuid.NewString()+":")
	ctx := context.Background()

	_, err := store.Get(ctx, "bookings")
	assert.ErrorIs(t, err, cache.ErrMiss)

	require.NoError(t, store.Set(ctx, "bookings", []byte(`[{"id":1}]`), time.Minute))
	got, err := store.Get(ctx, "bookings")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":1}]`, string(got))

	require.NoError(t, store.Delete(ctx, "bookings"))
	_, err = store.Get(ctx, "bookings")
	assert.ErrorIs(t, err, cache.ErrMiss)

	require.NoError(t, store.Delete(ctx))
}
