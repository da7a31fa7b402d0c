package session

import (
	"context"
	"testing"
	"time"

	"terminal-terrace/conduit/internal/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStore_WithoutRedis(t *testing.T) {
	store := NewStore(nil)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, "jti", 1, time.Hour))
	ok, err := store.Exists(ctx, "anything")
	require.NoError(t, err)
	assert.True(t, ok, "without redis every verified token is accepted")
	assert.NoError(t, store.Delete(ctx, "jti"))
	assert.NoError(t, store.DeleteAllByUserID(ctx, 1))
}

func TestRedisStore(t *testing.T) {
	client := testutils.SetupTestRedis(t)
	if client == nil {
		t.Skip("redis not available")
	}
	store := NewStore(client)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, "token-a", 42, time.Hour))
	require.NoError(t, store.Create(ctx, "token-b", 42, time.Hour))
	require.NoError(t, store.Create(ctx, "token-c", 7, time.Hour))

	count, err := store.CountByUserID(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	t.Run("delete one session", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, "token-a"))

		ok, err := store.Exists(ctx, "token-a")
		require.NoError(t, err)
		assert.False(t, ok)

		ok, err = store.Exists(ctx, "token-b")
		require.NoError(t, err)
		assert.True(t, ok)

		count, err := store.CountByUserID(ctx, 42)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("delete all sessions of a user", func(t *testing.T) {
		require.NoError(t, store.DeleteAllByUserID(ctx, 42))

		ok, err := store.Exists(ctx, "token-b")
		require.NoError(t, err)
		assert.False(t, ok)

		ok, err = store.Exists(ctx, "token-c")
		require.NoError(t, err)
		assert.True(t, ok, "other users are untouched")
	})

	t.Run("deleting an unknown session is not an error", func(t *testing.T) {
		assert.NoError(t, store.Delete(ctx, "missing"))
	})
}
