package blobsvc

import (
	"context"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/festify/console/core"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(bucket)
	payload := "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("png"))

	url, err := store.Upload(ctx, "images/rewards", payload)
	require.NoError(t, err)
	assert.True(t, store.IsDurable(url))
	assert.True(t, store.Has(url))
	assert.Equal(t, 1, store.Len())

	name, ok := objectName(bucket, url)
	require.True(t, ok)
	assert.Contains(t, name, "images/rewards/")

	t.Run("durable url is not uploaded again", func(t *testing.T) {
		got, err := store.Upload(ctx, "images/rewards", url)
		require.NoError(t, err)
		assert.Equal(t, url, got)
		assert.Equal(t, 1, store.Len())
	})

	t.Run("invalid payload", func(t *testing.T) {
		_, err := store.Upload(ctx, "images/rewards", "not an image")
		assert.ErrorIs(t, err, core.ErrInvalidImage)
	})

	t.Run("check", func(t *testing.T) {
		require.NoError(t, store.Check(payload))
		require.NoError(t, store.Check(url))
		assert.ErrorIs(t, store.Check("not an image"), core.ErrInvalidImage)
		assert.ErrorIs(t, store.Check("data:image/png;base64,"), core.ErrInvalidImage)
		assert.Equal(t, 1, store.Len())
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, url))
		assert.False(t, store.Has(url))
		require.NoError(t, store.Delete(ctx, url))
		assert.Zero(t, store.Len())
	})

	t.Run("foreign url is ignored", func(t *testing.T) {
		assert.False(t, store.IsDurable("https://example.com/cat.png"))
		require.NoError(t, store.Delete(ctx, "https://example.com/cat.png"))
	})
}
