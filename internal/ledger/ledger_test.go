package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rovshanmuradov/token-launcher/internal/storage"
	"github.com/rovshanmuradov/token-launcher/internal/storage/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func sampleRecord(mint string, at time.Time) Record {
	return Record{
		ID:          RecordID(mint, at),
		Name:        "Cat Coin",
		Symbol:      "CAT",
		Description: "meow",
		Mint:        mint,
		TxID:        "sig-" + mint,
		Platform:    "bonk",
		SolAmount:   1,
		Timestamp:   at.UTC().Format(time.RFC3339Nano),
		TwitterURL:  "https://x.com/cat/status/1",
	}
}

func TestAppendReadRoundTrip(t *testing.T) {
	l := New(memory.New(), zap.NewNop())
	ctx := context.Background()
	rec := sampleRecord("M", time.Unix(1700000000, 0))

	require.NoError(t, l.Append(ctx, "W", rec))

	got := l.ReadAll(ctx, "W")
	require.Len(t, got, 1)
	assert.Equal(t, rec, got[0])
}

func TestAppendPrependsNewestFirst(t *testing.T) {
	l := New(memory.New(), zap.NewNop())
	ctx := context.Background()
	older := sampleRecord("M1", time.Unix(1700000000, 0))
	newer := sampleRecord("M2", time.Unix(1700000100, 0))

	require.NoError(t, l.Append(ctx, "W", older))
	require.NoError(t, l.Append(ctx, "W", newer))

	got := l.ReadAll(ctx, "W")
	require.Len(t, got, 2)
	assert.Equal(t, "M2", got[0].Mint)
	assert.Equal(t, "M1", got[1].Mint)
}

func TestWalletIsolation(t *testing.T) {
	l := New(memory.New(), zap.NewNop())
	ctx := context.Background()

	require.NoError(t, l.Append(ctx, "W", sampleRecord("M", time.Now())))

	assert.Empty(t, l.ReadAll(ctx, "W2"))
	assert.Len(t, l.ReadAll(ctx, "W"), 1)
}

func TestCorruptDataReadsEmpty(t *testing.T) {
	store := memory.New()
	core, logs := observer.New(zapcore.WarnLevel)
	l := New(store, zap.New(core))
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, Key("W"), []byte("{not json")))

	got := l.ReadAll(ctx, "W")
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.Equal(t, 1, logs.FilterMessage("Corrupt launch history, treating as empty").Len())
}

func TestAppendOverCorruptDataStartsFresh(t *testing.T) {
	store := memory.New()
	l := New(store, zap.NewNop())
	ctx := context.Background()
	require.NoError(t, store.Put(ctx, Key("W"), []byte(`{"oops":true}`)))

	require.NoError(t, l.Append(ctx, "W", sampleRecord("M", time.Now())))

	got := l.ReadAll(ctx, "W")
	require.Len(t, got, 1)
	assert.Equal(t, "M", got[0].Mint)
}

func TestClear(t *testing.T) {
	l := New(memory.New(), zap.NewNop())
	ctx := context.Background()
	require.NoError(t, l.Append(ctx, "W", sampleRecord("M", time.Now())))

	require.NoError(t, l.Clear(ctx, "W"))
	assert.Empty(t, l.ReadAll(ctx, "W"))
}

func TestDecode(t *testing.T) {
	assert.Equal(t, Missing, Decode(nil).Status)
	assert.Equal(t, Decoded, Decode([]byte(`[]`)).Status)
	assert.Equal(t, Decoded, Decode([]byte(`null`)).Status)
	assert.NotNil(t, Decode([]byte(`null`)).Records)

	bad := Decode([]byte(`[{"mint": 5}]`))
	assert.Equal(t, Corrupt, bad.Status)
	assert.Error(t, bad.Err)
	assert.Empty(t, bad.Records)
}

func TestKeyFormat(t *testing.T) {
	assert.Equal(t, "launchedTokens_ABC", Key("ABC"))
}

type failingStore struct{ storage.Store }

func (failingStore) Get(context.Context, string) ([]byte, error) {
	return nil, errors.New("disk on fire")
}

func TestReadAllStoreFailureDegrades(t *testing.T) {
	l := New(failingStore{}, zap.NewNop())
	assert.Empty(t, l.ReadAll(context.Background(), "W"))

	err := l.Append(context.Background(), "W", sampleRecord("M", time.Now()))
	assert.ErrorContains(t, err, "disk on fire")
}

func TestRecordHelpers(t *testing.T) {
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	rec := sampleRecord("M", at)

	assert.Equal(t, "M-1714564800000", rec.ID)
	assert.True(t, rec.Time().Equal(at))
	assert.Equal(t, "https://solscan.io/tx/sig-M", rec.ExplorerURL())
	assert.True(t, Record{Timestamp: "garbage"}.Time().IsZero())
}
