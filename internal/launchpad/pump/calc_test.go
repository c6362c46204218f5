package pump

import (
	"bytes"
	"testing"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGlobal() GlobalAccount {
	return GlobalAccount{
		Initialized:                 true,
		FeeRecipient:                solana.MustPublicKeyFromBase58("CebN5WGQ4jvEPvsVU4EoHEpgzq1VV7AbicfhtW4xC9iM"),
		InitialVirtualTokenReserves: 1_073_000_000_000_000,
		InitialVirtualSolReserves:   30_000_000_000,
		InitialRealTokenReserves:    793_100_000_000_000,
		TokenTotalSupply:            1_000_000_000_000_000,
		FeeBasisPoints:              100,
	}
}

func TestBuyTokenAmountFromSolAmount(t *testing.T) {
	g := testGlobal()

	assert.Equal(t, uint64(34_281_150_129_545), BuyTokenAmountFromSolAmount(g, nil, 1_000_000_000))
	assert.Equal(t, uint64(0), BuyTokenAmountFromSolAmount(g, nil, 0))

	// 10 000 SOL выбирают всю реальную ликвидность.
	assert.Equal(t, g.InitialRealTokenReserves, BuyTokenAmountFromSolAmount(g, nil, 10_000_000_000_000))
}

func TestBuyTokenAmountUsesExistingCurve(t *testing.T) {
	g := testGlobal()
	curve := &BondingCurve{
		VirtualTokenReserves: g.InitialVirtualTokenReserves / 2,
		VirtualSolReserves:   g.InitialVirtualSolReserves * 2,
		RealTokenReserves:    g.InitialRealTokenReserves,
	}
	fresh := BuyTokenAmountFromSolAmount(g, nil, 1_000_000_000)
	assert.Less(t, BuyTokenAmountFromSolAmount(g, curve, 1_000_000_000), fresh)
}

func TestMaxSolCost(t *testing.T) {
	assert.Equal(t, uint64(1_050_000_000), MaxSolCost(1_000_000_000, SlippagePercent))
	assert.Equal(t, uint64(0), MaxSolCost(0, SlippagePercent))
}

func TestDecodeGlobalAccount(t *testing.T) {
	want := testGlobal()
	want.Discriminator = [8]byte{1, 2, 3, 4, 5, 6, 7, 8}

	buf := new(bytes.Buffer)
	require.NoError(t, bin.NewBorshEncoder(buf).Encode(want))
	// Хвост аккаунта с полями, которые не читаются.
	buf.Write(make([]byte, 64))

	got, err := DecodeGlobalAccount(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = DecodeGlobalAccount(buf.Bytes()[:40])
	assert.ErrorContains(t, err, "too short")
}
