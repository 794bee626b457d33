package session

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/aaravmahajanofficial/storefront-demo/internal/cache"
	"github.com/aaravmahajanofficial/storefront-demo/internal/config"
	"github.com/aaravmahajanofficial/storefront-demo/internal/models"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProduct(id int64, stock int) models.Product {
	return models.Product{ID: id, Name: "Test", Price: 1999, Stock: stock}
}

func newRedisRepo(t *testing.T) (*RedisRepository, redismock.ClientMock) {
	t.Helper()

	client, mock := redismock.NewClientMock()
	c := cache.NewRedisCache(client, &config.CacheConfig{DefaultTTL: time.Minute})

	return NewRedisRepository(c), mock
}

func TestRedisRepository(t *testing.T) {
	ctx := t.Context()
	ttl := 24 * time.Hour

	store := NewStore()
	store.AddToCart(testProduct(1, 2))
	store.AddToWishlist(testProduct(2, 0))
	snap := store.Snapshot()
	data, err := json.Marshal(snap)
	require.NoError(t, err)

	t.Run("Save", func(t *testing.T) {
		repo, mock := newRedisRepo(t)
		mock.ExpectSet("session:abc", data, ttl).SetVal("OK")

		require.NoError(t, repo.Save(ctx, "abc", snap, ttl))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Load", func(t *testing.T) {
		repo, mock := newRedisRepo(t)
		mock.ExpectGet("session:abc").SetVal(string(data))

		got, err := repo.Load(ctx, "abc")

		require.NoError(t, err)
		assert.Equal(t, snap.Cart, got.Cart)
		assert.Equal(t, snap.Version, got.Version)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Load missing", func(t *testing.T) {
		repo, mock := newRedisRepo(t)
		mock.ExpectGet("session:abc").SetErr(redis.Nil)

		_, err := repo.Load(ctx, "abc")

		assert.ErrorIs(t, err, ErrSessionNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Load failure", func(t *testing.T) {
		repo, mock := newRedisRepo(t)
		redisErr := errors.New("connection reset")
		mock.ExpectGet("session:abc").SetErr(redisErr)

		_, err := repo.Load(ctx, "abc")

		assert.ErrorIs(t, err, redisErr)
		assert.NotErrorIs(t, err, ErrSessionNotFound)
	})

	t.Run("Touch", func(t *testing.T) {
		repo, mock := newRedisRepo(t)
		mock.ExpectExpire("session:abc", ttl).SetVal(true)
		mock.ExpectExpire("session:gone", ttl).SetVal(false)

		assert.NoError(t, repo.Touch(ctx, "abc", ttl))
		assert.ErrorIs(t, repo.Touch(ctx, "gone", ttl), ErrSessionNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Delete", func(t *testing.T) {
		repo, mock := newRedisRepo(t)
		mock.ExpectDel("session:abc").SetVal(1)

		require.NoError(t, repo.Delete(ctx, "abc"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
