package memory

import (
	"context"
	"testing"

	"github.com/rovshanmuradov/token-launcher/internal/storage/storagetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore(t *testing.T) {
	storagetest.Run(t, New())
}

func TestGetReturnsCopy(t *testing.T) {
	s := New()
	require.NoError(t, s.Put(context.Background(), "k", []byte("abc")))

	v, err := s.Get(context.Background(), "k")
	require.NoError(t, err)
	v[0] = 'x'

	again, err := s.Get(context.Background(), "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(again))
}
