package kv

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runContract exercises the behaviour every Repository must share.
func runContract(t *testing.T, newRepo func(t *testing.T) Repository) {
	t.Helper()

	t.Run("set then get", func(t *testing.T) {
		r := newRepo(t)
		ctx := context.Background()

		require.NoError(t, r.Set(ctx, "k1", []byte{0x01, 0x02}))

		v, err := r.Get(ctx, "k1")
		require.NoError(t, err)
		require.Equal(t, []byte{0x01, 0x02}, v)
	})

	t.Run("missing key is nil, nil", func(t *testing.T) {
		r := newRepo(t)

		v, err := r.Get(context.Background(), "absent")
		require.NoError(t, err)
		require.Nil(t, v)
	})

	t.Run("set overwrites", func(t *testing.T) {
		r := newRepo(t)
		ctx := context.Background()

		require.NoError(t, r.Set(ctx, "k", []byte("old")))
		require.NoError(t, r.Set(ctx, "k", []byte("new")))

		v, err := r.Get(ctx, "k")
		require.NoError(t, err)
		require.Equal(t, []byte("new"), v)
	})

	t.Run("empty value is present, not missing", func(t *testing.T) {
		r := newRepo(t)
		ctx := context.Background()

		require.NoError(t, r.Set(ctx, "empty", nil))

		v, err := r.Get(ctx, "empty")
		require.NoError(t, err)
		require.NotNil(t, v)
		require.Empty(t, v)
	})

	t.Run("delete removes key and is idempotent", func(t *testing.T) {
		r := newRepo(t)
		ctx := context.Background()

		require.NoError(t, r.Set(ctx, "x", []byte{0x01}))
		require.NoError(t, r.Delete(ctx, "x"))

		v, err := r.Get(ctx, "x")
		require.NoError(t, err)
		require.Nil(t, v)

		require.NoError(t, r.Delete(ctx, "x"))
	})

	t.Run("keys by prefix are sorted", func(t *testing.T) {
		r := newRepo(t)
		ctx := context.Background()

		for _, k := range []string{"sim-b", "metadata-a", "sim-a", "sim-ids", "other"} {
			require.NoError(t, r.Set(ctx, k, []byte("1")))
		}

		keys, err := r.Keys(ctx, "sim-")
		require.NoError(t, err)
		assert.Equal(t, []string{"sim-a", "sim-b", "sim-ids"}, keys)

		keys, err = r.Keys(ctx, "metadata-")
		require.NoError(t, err)
		assert.Equal(t, []string{"metadata-a"}, keys)

		keys, err = r.Keys(ctx, "nothing-")
		require.NoError(t, err)
		assert.Empty(t, keys)
	})

	t.Run("clear removes all keys", func(t *testing.T) {
		r := newRepo(t)
		ctx := context.Background()

		require.NoError(t, r.Set(ctx, "a", []byte{1}))
		require.NoError(t, r.Set(ctx, "b", []byte{2}))
		require.NoError(t, r.Clear(ctx))

		keys, err := r.Keys(ctx, "")
		require.NoError(t, err)
		assert.Empty(t, keys)

		// usable after clear
		require.NoError(t, r.Set(ctx, "c", []byte{3}))
		v, err := r.Get(ctx, "c")
		require.NoError(t, err)
		assert.Equal(t, []byte{3}, v)
	})
}
