package bonk

import (
	"bytes"
	"context"
	"errors"
	"testing"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

func TestContextLoadsOnce(t *testing.T) {
	calls := 0
	loader := func(context.Context) (CurveConfig, error) {
		calls++
		cfg := StaticCurveConfig()
		cfg.Epoch = 900
		return cfg, nil
	}
	c := NewContext(loader, zaptest.NewLogger(t))

	assert.Equal(t, "", c.Source())
	assert.Equal(t, uint64(900), c.Config(context.Background()).Epoch)
	assert.Equal(t, uint64(900), c.Config(context.Background()).Epoch)
	assert.Equal(t, 1, calls)
	assert.Equal(t, "loaded", c.Source())
}

func TestContextFallsBackToStatic(t *testing.T) {
	c := NewContext(func(context.Context) (CurveConfig, error) {
		return CurveConfig{}, errors.New("rpc down")
	}, zap.NewNop())

	cfg := c.Config(context.Background())
	assert.Equal(t, StaticCurveConfig(), cfg)
	assert.Equal(t, "static", c.Source())
}

func TestStaticCurveConfig(t *testing.T) {
	cfg := StaticCurveConfig()
	assert.Equal(t, "6s1xP3hpbAfFoNtUNF8mfHsjr2Bd97JxFJRWLbL6aHuX", cfg.ID.String())
	assert.Equal(t, uint64(772), cfg.Epoch)
	assert.Equal(t, uint64(2500), cfg.TradeFeeRate)
	assert.Equal(t, uint64(30_000_000_000), cfg.MinFundRaisingB)
	assert.True(t, cfg.MintB.Equals(solana.SolMint))
}

func TestDecodeCurveConfig(t *testing.T) {
	want := StaticCurveConfig()
	layout := globalConfigLayout{
		Discriminator:       [8]byte{1, 2, 3, 4, 5, 6, 7, 8},
		Epoch:               want.Epoch,
		CurveType:           want.CurveType,
		Index:               want.Index,
		MigrateFee:          want.MigrateFee,
		TradeFeeRate:        want.TradeFeeRate,
		MaxShareFeeRate:     want.MaxShareFeeRate,
		MinBaseSupply:       want.MinSupplyA,
		MaxLockRate:         want.MaxLockRate,
		MinBaseSellRate:     want.MinSellRateA,
		MinBaseMigrateRate:  want.MinMigrateRateA,
		MinQuoteFundRaising: want.MinFundRaisingB,
		QuoteMint:           want.MintB,
		ProtocolFeeOwner:    want.ProtocolFeeOwner,
		MigrateFeeOwner:     want.MigrateFeeOwner,
		MigrateToAmmWallet:  want.MigrateToAmmWallet,
		MigrateToCpmmWallet: want.MigrateToCpmmWallet,
	}
	buf := new(bytes.Buffer)
	require.NoError(t, bin.NewBorshEncoder(buf).Encode(layout))

	got, err := DecodeCurveConfig(want.ID, buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = DecodeCurveConfig(want.ID, buf.Bytes()[:20])
	assert.Error(t, err)
}
