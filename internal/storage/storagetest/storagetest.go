// Package storagetest holds the behaviour every storage.Store backend must share.
package storagetest

import (
	"context"
	"testing"

	"github.com/rovshanmuradov/token-launcher/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Run exercises the Store contract against s.
func Run(t *testing.T, s storage.Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("missing key", func(t *testing.T) {
		_, err := s.Get(ctx, "absent")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("put then get", func(t *testing.T) {
		require.NoError(t, s.Put(ctx, "launchedTokens_A", []byte(`[{"mint":"M"}]`)))
		v, err := s.Get(ctx, "launchedTokens_A")
		require.NoError(t, err)
		assert.JSONEq(t, `[{"mint":"M"}]`, string(v))
	})

	t.Run("overwrite", func(t *testing.T) {
		require.NoError(t, s.Put(ctx, "launchedTokens_B", []byte(`[1]`)))
		require.NoError(t, s.Put(ctx, "launchedTokens_B", []byte(`[2,1]`)))
		v, err := s.Get(ctx, "launchedTokens_B")
		require.NoError(t, err)
		assert.Equal(t, `[2,1]`, string(v))
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, s.Put(ctx, "launchedTokens_C", []byte(`[]`)))
		require.NoError(t, s.Delete(ctx, "launchedTokens_C"))
		_, err := s.Get(ctx, "launchedTokens_C")
		assert.ErrorIs(t, err, storage.ErrNotFound)
		assert.NoError(t, s.Delete(ctx, "launchedTokens_C"))
	})

	t.Run("keys are isolated", func(t *testing.T) {
		require.NoError(t, s.Put(ctx, "launchedTokens_D", []byte(`"d"`)))
		_, err := s.Get(ctx, "launchedTokens_E")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}
