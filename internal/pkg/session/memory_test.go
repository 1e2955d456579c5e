package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Lifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Create(ctx, "abc", 42, time.Hour))

	userID, err := store.UserID(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)

	require.NoError(t, store.Delete(ctx, "abc"))
	_, err = store.UserID(ctx, "abc")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	assert.NoError(t, store.Delete(ctx, "never-existed"))
}

func TestMemoryStore_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	store := NewMemoryStore()
	store.now = func() time.Time { return now }

	require.NoError(t, store.Create(ctx, "abc", 1, time.Minute))

	now = now.Add(2 * time.Minute)
	_, err := store.UserID(ctx, "abc")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
