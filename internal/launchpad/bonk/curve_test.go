package bonk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitialVirtualReserves(t *testing.T) {
	reserves, err := InitialVirtualReserves(DefaultPoolParams(), 0)
	require.NoError(t, err)

	assert.Equal(t, "1073025605595359", reserves.A.String())
	assert.Equal(t, "30000852951", reserves.B.String())
}

func TestInitialVirtualReservesRejectsBadParams(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *PoolParams)
		fee    uint64
	}{
		{"zero sell", func(p *PoolParams) { p.TotalSellA = 0 }, 0},
		{"sell exceeds supply", func(p *PoolParams) { p.TotalSellA = p.Supply }, 0},
		{"fee exceeds raise", func(p *PoolParams) {}, DefaultTotalFundRaisingB},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultPoolParams()
			tt.mutate(&p)
			_, err := InitialVirtualReserves(p, tt.fee)
			assert.Error(t, err)
		})
	}
}

func TestQuoteBuyExactIn(t *testing.T) {
	pool := DefaultPoolParams()
	reserves, err := InitialVirtualReserves(pool, 0)
	require.NoError(t, err)

	quote, err := QuoteBuyExactIn(reserves, pool, 1_000_000_000, 2500, DefaultPlatformFeeRate, SlippageBps)
	require.NoError(t, err)

	assert.Equal(t, uint64(1_000_000_000), quote.AmountIn)
	assert.Equal(t, uint64(2_500_000), quote.TradeFee)
	assert.Equal(t, uint64(10_000_000), quote.PlatformFee)
	assert.Equal(t, uint64(34193904632521), quote.AmountOut)
	assert.Equal(t, uint64(33851965586195), quote.MinAmountOut)
}

func TestQuoteBuyExactInCapsAtTotalSell(t *testing.T) {
	pool := DefaultPoolParams()
	reserves, err := InitialVirtualReserves(pool, 0)
	require.NoError(t, err)

	quote, err := QuoteBuyExactIn(reserves, pool, 10_000_000_000_000, 0, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, pool.TotalSellA, quote.AmountOut)
	assert.Equal(t, quote.AmountOut, quote.MinAmountOut)
}

func TestQuoteBuyExactInEdgeCases(t *testing.T) {
	pool := DefaultPoolParams()
	reserves, err := InitialVirtualReserves(pool, 0)
	require.NoError(t, err)

	quote, err := QuoteBuyExactIn(reserves, pool, 0, 2500, DefaultPlatformFeeRate, SlippageBps)
	require.NoError(t, err)
	assert.Zero(t, quote.AmountOut)

	_, err = QuoteBuyExactIn(reserves, pool, 1, 0, 0, 10_001)
	assert.Error(t, err)
}
