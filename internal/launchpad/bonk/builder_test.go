package bonk

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/rovshanmuradov/token-launcher/internal/blockchain/computebudget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type staticBlockhash struct {
	hash solana.Hash
	err  error
}

func (s staticBlockhash) GetRecentBlockhash(context.Context) (solana.Hash, error) {
	return s.hash, s.err
}

func builderParams(owner, mint solana.PublicKey, lamports uint64) BuildParams {
	return BuildParams{
		Config:      StaticCurveConfig(),
		PlatformID:  BonkPlatformID2,
		Mint:        mint.String(),
		Owner:       owner,
		Name:        "Cat",
		Symbol:      "CAT",
		URI:         "https://meta/cat.json",
		Decimals:    Decimals,
		Pool:        DefaultPoolParams(),
		BuyLamports: lamports,
		SlippageBps: SlippageBps,
	}
}

func programAt(tx *solana.Transaction, i int) solana.PublicKey {
	return tx.Message.AccountKeys[tx.Message.Instructions[i].ProgramIDIndex]
}

func TestBuildCreateAndBuy(t *testing.T) {
	owner := solana.NewWallet().PublicKey()
	mint := solana.NewWallet().PublicKey()
	b := NewLaunchLabBuilder(staticBlockhash{hash: solana.Hash{1}}, computebudget.NewLaunchConfig(0.001), zap.NewNop())

	tx, err := b.BuildCreateAndBuy(context.Background(), builderParams(owner, mint, 1_000_000_000))
	require.NoError(t, err)

	require.Len(t, tx.Message.Instructions, 9)
	assert.Equal(t, solana.Hash{1}, tx.Message.RecentBlockhash)
	assert.Equal(t, owner, tx.Message.AccountKeys[0])

	// Подписывают владелец и минт.
	assert.Equal(t, uint8(2), tx.Message.Header.NumRequiredSignatures)
	signers := tx.Message.AccountKeys[:2]
	assert.Contains(t, signers, mint)

	assert.Equal(t, computebudget.ProgramID, programAt(tx, 0))
	assert.Equal(t, computebudget.ProgramID, programAt(tx, 1))
	assert.Equal(t, LaunchLabProgramID, programAt(tx, 2))
	assert.True(t, bytes.HasPrefix(tx.Message.Instructions[2].Data, InitializeDiscriminator))
	assert.Equal(t, solana.SystemProgramID, programAt(tx, 4))
	assert.Equal(t, solana.TokenProgramID, programAt(tx, 5))
	assert.Equal(t, LaunchLabProgramID, programAt(tx, 7))
	assert.True(t, bytes.HasPrefix(tx.Message.Instructions[7].Data, BuyExactInDiscriminator))
	assert.Equal(t, solana.TokenProgramID, programAt(tx, 8))
}

func TestBuildCreateWithoutBuy(t *testing.T) {
	owner := solana.NewWallet().PublicKey()
	mint := solana.NewWallet().PublicKey()
	b := NewLaunchLabBuilder(staticBlockhash{hash: solana.Hash{1}}, computebudget.Config{Units: computebudget.LaunchUnits}, zap.NewNop())

	tx, err := b.BuildCreateAndBuy(context.Background(), builderParams(owner, mint, 0))
	require.NoError(t, err)

	require.Len(t, tx.Message.Instructions, 2)
	assert.Equal(t, LaunchLabProgramID, programAt(tx, 1))
}

func TestBuildCreateAndBuyErrors(t *testing.T) {
	owner := solana.NewWallet().PublicKey()
	mint := solana.NewWallet().PublicKey()
	budget := computebudget.NewLaunchConfig(0.001)

	b := NewLaunchLabBuilder(staticBlockhash{err: errors.New("rpc down")}, budget, zap.NewNop())
	_, err := b.BuildCreateAndBuy(context.Background(), builderParams(owner, mint, 1))
	assert.ErrorContains(t, err, "rpc down")

	b = NewLaunchLabBuilder(staticBlockhash{}, budget, zap.NewNop())
	p := builderParams(owner, mint, 1)
	p.Mint = "M"
	_, err = b.BuildCreateAndBuy(context.Background(), p)
	assert.ErrorContains(t, err, "invalid mint address")
}

func TestDiscriminators(t *testing.T) {
	assert.Len(t, InitializeDiscriminator, 8)
	assert.NotEqual(t, InitializeDiscriminator, BuyExactInDiscriminator)
	assert.Equal(t, anchorDiscriminator("initialize"), InitializeDiscriminator)
}
