package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rovshanmuradov/token-launcher/internal/image"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImageSourceFlag(t *testing.T) {
	src, err := imageSourceFlag("")
	require.NoError(t, err)
	assert.Equal(t, image.SourceNone, src.Kind)

	src, err = imageSourceFlag("https://example.com/cat.png")
	require.NoError(t, err)
	assert.Equal(t, image.SourceURL, src.Kind)

	path := filepath.Join(t.TempDir(), "cat.png")
	require.NoError(t, os.WriteFile(path, []byte("pixels"), 0o600))
	src, err = imageSourceFlag(path)
	require.NoError(t, err)
	assert.Equal(t, image.SourceUpload, src.Kind)
	assert.Equal(t, "cat.png", src.Upload.Filename)
	assert.Equal(t, "image/png", src.Upload.ContentType)

	_, err = imageSourceFlag(filepath.Join(t.TempDir(), "missing.png"))
	assert.Error(t, err)
}

func TestRunUsage(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "none.yaml")

	assert.ErrorIs(t, run(context.Background(), missing, nil), errUsage)
	assert.ErrorIs(t, run(context.Background(), missing, []string{"bogus"}), errUsage)
}

func TestHistoryMemoryLedgerEmpty(t *testing.T) {
	t.Setenv("TOKEN_LAUNCHER_LEDGER_DRIVER", "memory")
	missing := filepath.Join(t.TempDir(), "none.yaml")

	err := run(context.Background(), missing, []string{"history", "-wallet", "11111111111111111111111111111111"})
	assert.NoError(t, err)
}
