package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/frontdesk/internal/cache"
)

func TestMemory_SetGetExpire(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	m := cache.NewMemoryWithClock(func() time.Time { return now })
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "bookings", []byte(`[1]`), 10*time.Second))

	got, err := m.Get(ctx, "bookings")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[1]`), got)

	now = now.Add(10 * time.Second)
	_, err = m.Get(ctx, "bookings")
	assert.ErrorIs(t, err, cache.ErrMiss, "entry expires exactly at its TTL")
}

func TestMemory_Miss(t *testing.T) {
	_, err := cache.NewMemory().Get(context.Background(), "nope")
	assert.ErrorIs(t, err, cache.ErrMiss)
}

func TestMemory_ZeroTTLStoresNothing(t *testing.T) {
	m := cache.NewMemory()
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "k", []byte("v"), 0))

	_, err := m.Get(ctx, "k")
	assert.ErrorIs(t, err, cache.ErrMiss)
}

func TestMemory_Delete(t *testing.T) {
	m := cache.NewMemory()
	ctx := context.Background()
	require.NoError(t, m.Set(ctx, "a", []byte("1"), time.Minute))
	require.NoError(t, m.Set(ctx, "b", []byte("2"), time.Minute))

	require.NoError(t, m.Delete(ctx, "a", "missing"))

	_, err := m.Get(ctx, "a")
	assert.ErrorIs(t, err, cache.ErrMiss)
	_, err = m.Get(ctx, "b")
	assert.NoError(t, err)
}

func TestMemory_ValuesAreCopied(t *testing.T) {
	m := cache.NewMemory()
	ctx := context.Background()
	v := []byte("abc")
	require.NoError(t, m.Set(ctx, "k", v, time.Minute))
	v[0] = 'X'

	got, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))

	got[1] = 'Y'
	again, _ := m.Get(ctx, "k")
	assert.Equal(t, "abc", string(again))
}
