package nonces_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-forum-connect/connect/nonces"
)

func TestSeenIsCheckAndSet(t *testing.T) {
	repo := nonces.NewInMemoryRepo(16, time.Minute)
	ctx := context.Background()

	seen, err := repo.Seen(ctx, "nonce-1")
	require.NoError(t, err)
	require.False(t, seen)

	seen, err = repo.Seen(ctx, "nonce-1")
	require.NoError(t, err)
	require.True(t, seen)

	seen, err = repo.Seen(ctx, "nonce-2")
	require.NoError(t, err)
	require.False(t, seen)
}

func TestSeenExpiresAfterTTL(t *testing.T) {
	repo := nonces.NewInMemoryRepo(16, 20*time.Millisecond)
	ctx := context.Background()

	seen, err := repo.Seen(ctx, "nonce-1")
	require.NoError(t, err)
	require.False(t, seen)

	time.Sleep(60 * time.Millisecond)

	seen, err = repo.Seen(ctx, "nonce-1")
	require.NoError(t, err)
	require.False(t, seen)
}

func TestCapacityEvictsOldest(t *testing.T) {
	repo := nonces.NewInMemoryRepo(2, time.Minute)
	ctx := context.Background()

	for _, nonce := range []string{"n-1", "n-2", "n-3"} {
		seen, err := repo.Seen(ctx, nonce)
		require.NoError(t, err)
		require.False(t, seen)
	}

	// n-1 was evicted to make room for n-3, so it reads as fresh again.
	seen, err := repo.Seen(ctx, "n-1")
	require.NoError(t, err)
	require.False(t, seen)

	seen, err = repo.Seen(ctx, "n-3")
	require.NoError(t, err)
	require.True(t, seen)
}

func TestZeroCapacityFallsBackToDefault(t *testing.T) {
	repo := nonces.NewInMemoryRepo(0, time.Minute)
	ctx := context.Background()

	seen, err := repo.Seen(ctx, "nonce-1")
	require.NoError(t, err)
	require.False(t, seen)

	seen, err = repo.Seen(ctx, "nonce-1")
	require.NoError(t, err)
	require.True(t, seen)
}
