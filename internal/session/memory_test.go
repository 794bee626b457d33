package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepository(t *testing.T) {
	ctx := t.Context()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	newRepo := func() *MemoryRepository {
		r := NewMemoryRepository()
		r.now = func() time.Time { return now }
		return r
	}

	t.Run("missing session", func(t *testing.T) {
		r := newRepo()

		_, err := r.Load(ctx, "nope")

		assert.ErrorIs(t, err, ErrSessionNotFound)
		assert.ErrorIs(t, r.Touch(ctx, "nope", time.Hour), ErrSessionNotFound)
	})

	t.Run("save then load", func(t *testing.T) {
		r := newRepo()
		store := NewStore()
		store.AddToCart(testProduct(3, 4))

		require.NoError(t, r.Save(ctx, "s1", store.Snapshot(), time.Hour))
		snap, err := r.Load(ctx, "s1")

		require.NoError(t, err)
		require.Len(t, snap.Cart, 1)
		assert.Equal(t, int64(3), snap.Cart[0].Product.ID)
	})

	t.Run("expired entries are not returned", func(t *testing.T) {
		r := newRepo()
		require.NoError(t, r.Save(ctx, "s1", NewStore().Snapshot(), time.Minute))

		r.now = func() time.Time { return now.Add(time.Minute) }

		_, err := r.Load(ctx, "s1")
		assert.ErrorIs(t, err, ErrSessionNotFound)
		assert.Equal(t, 1, r.Sweep())
		assert.Zero(t, r.Sweep())
	})

	t.Run("touch extends expiry", func(t *testing.T) {
		r := newRepo()
		require.NoError(t, r.Save(ctx, "s1", NewStore().Snapshot(), time.Minute))

		r.now = func() time.Time { return now.Add(50 * time.Second) }
		require.NoError(t, r.Touch(ctx, "s1", time.Minute))

		r.now = func() time.Time { return now.Add(100 * time.Second) }
		_, err := r.Load(ctx, "s1")
		assert.NoError(t, err)
	})

	t.Run("delete", func(t *testing.T) {
		r := newRepo()
		require.NoError(t, r.Save(ctx, "s1", NewStore().Snapshot(), time.Minute))

		require.NoError(t, r.Delete(ctx, "s1"))

		_, err := r.Load(ctx, "s1")
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})
}
