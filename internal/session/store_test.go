package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"optionlab/internal/testutil"
)

func newSession(id string, ttl time.Duration) *Session {
	now := time.Now()
	return &Session{
		ID:          id,
		Email:       "a@x.com",
		Name:        "Alice Smith",
		GivenName:   "Alice",
		FamilyName:  "Smith",
		AccessToken: "access",
		CreatedAt:   now,
		ExpiresAt:   now.Add(ttl),
	}
}

// storeContract runs the behaviour every Store must share.
func storeContract(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("missing", func(t *testing.T) {
		_, err := store.Get(ctx, "nope")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("save_get_delete", func(t *testing.T) {
		s := newSession("sid-1", time.Hour)
		require.NoError(t, store.Save(ctx, s))

		got, err := store.Get(ctx, "sid-1")
		require.NoError(t, err)
		assert.Equal(t, "a@x.com", got.Email)
		assert.Equal(t, "Alice", got.GivenName)
		assert.True(t, got.HasToken())

		require.NoError(t, store.Delete(ctx, "sid-1"))
		_, err = store.Get(ctx, "sid-1")
		assert.ErrorIs(t, err, ErrNotFound)

		assert.NoError(t, store.Delete(ctx, "sid-1"), "deleting twice must not fail")
	})

	t.Run("overwrite", func(t *testing.T) {
		s := newSession("sid-2", time.Hour)
		require.NoError(t, store.Save(ctx, s))
		s.Name = "Renamed"
		require.NoError(t, store.Save(ctx, s))

		got, err := store.Get(ctx, "sid-2")
		require.NoError(t, err)
		assert.Equal(t, "Renamed", got.Name)
	})

	t.Run("expired", func(t *testing.T) {
		s := newSession("sid-3", time.Hour)
		s.ExpiresAt = time.Now().Add(-time.Minute)
		require.NoError(t, store.Save(ctx, s))

		_, err := store.Get(ctx, "sid-3")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestMemoryStore(t *testing.T) {
	storeContract(t, NewMemoryStore())
}

func TestMemoryStore_PurgesExpiredOnSave(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	old := newSession("old", time.Hour)
	old.ExpiresAt = time.Now().Add(-time.Second)
	require.NoError(t, store.Save(ctx, old))
	require.NoError(t, store.Save(ctx, newSession("new", time.Hour)))

	assert.Equal(t, 1, store.Len())
}

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	store := NewRedisStore(client)
	storeContract(t, store)

	t.Run("ttl_follows_expiry", func(t *testing.T) {
		require.NoError(t, store.Save(context.Background(), newSession("ttl", 30*time.Minute)))

		ttl := mr.TTL("session:ttl")
		assert.Greater(t, ttl, 29*time.Minute)
		assert.LessOrEqual(t, ttl, 30*time.Minute)

		mr.FastForward(31 * time.Minute)
		_, err := store.Get(context.Background(), "ttl")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestDBStore(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	store := NewDBStore(db)
	storeContract(t, store)

	t.Run("purge_expired", func(t *testing.T) {
		ctx := context.Background()
		stale := newSession("stale", time.Hour)
		stale.ExpiresAt = time.Now().Add(-time.Hour)
		require.NoError(t, store.Save(ctx, stale))
		require.NoError(t, store.Save(ctx, newSession("fresh", time.Hour)))

		n, err := store.PurgeExpired(ctx)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, int64(1))

		_, err = store.Get(ctx, "fresh")
		assert.NoError(t, err)
	})
}
