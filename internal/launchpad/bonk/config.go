// =============================
// File: internal/launchpad/bonk/config.go
// =============================
package bonk

import (
	"github.com/gagliardetto/solana-go"
)

// Known LaunchLab protocol addresses
var (
	LaunchLabProgramID = solana.MustPublicKeyFromBase58("LanMV9sAd7wArD4vJFi2qDdfnVhFxYSUg6eADduJ3uj")

	// Constant Product Curve global config
	DefaultConfigID = solana.MustPublicKeyFromBase58("6s1xP3hpbAfFoNtUNF8mfHsjr2Bd97JxFJRWLbL6aHuX")

	MetaplexProgramID = solana.MustPublicKeyFromBase58("metaqbxxUerdq28cj1RbAWkYQm3ybzjb6a8bt518x1s")
)

// Platform config addresses registered with LaunchLab
const (
	RaydiumPlatformID = "4Bu96XjU84XjPDSpveTVf6LYGCkfW5FK7SNkREWcEfV4"
	BonkPlatformID1   = "FfYek5vEz23cMkWsdJwG2oa6EphsvXSHrGpdALN4g6W1"
	BonkPlatformID2   = "8pCtbn9iatQ8493mDQax4xfEUjhoVBpUWYVQoRU18333"
	BonkPlatformID3   = "BuM6KDpWiTcxvrpXywWFiw45R2RNH8WURdvqoTDV1BW4"

	DefaultMintHost = "https://launch-mint-v1.raydium.io"
)

const (
	Decimals      uint8 = 6
	QuoteDecimals uint8 = 9

	// SlippageBps — допуск для buy_exact_in, 100 = 1%.
	SlippageBps uint64 = 100

	// Параметры пула по умолчанию (LaunchpadPoolInitParam)
	DefaultSupply            uint64 = 1_000_000_000_000_000
	DefaultTotalSellA        uint64 = 793_100_000_000_000
	DefaultTotalFundRaisingB uint64 = 85_000_000_000
	DefaultTotalLockedAmount uint64 = 0
	DefaultCliffPeriod       uint64 = 0
	DefaultUnlockPeriod      uint64 = 0

	// Ставки выражены в миллионных долях.
	FeeRateDenominator uint64 = 1_000_000

	// DefaultPlatformFeeRate — комиссия платформы, если её конфиг не прочитан.
	DefaultPlatformFeeRate uint64 = 10_000
)

// MigrateType — куда пул мигрирует после заполнения кривой.
type MigrateType uint8

const (
	MigrateAMM  MigrateType = 0
	MigrateCPMM MigrateType = 1
)

func (m MigrateType) String() string {
	if m == MigrateCPMM {
		return "cpmm"
	}
	return "amm"
}

// CurveConfig — глобальный конфиг кривой LaunchLab.
type CurveConfig struct {
	ID                  solana.PublicKey
	Name                string
	Epoch               uint64
	CurveType           uint8
	Index               uint16
	MigrateFee          uint64
	TradeFeeRate        uint64
	MaxShareFeeRate     uint64
	MinSupplyA          uint64
	MaxLockRate         uint64
	MinSellRateA        uint64
	MinMigrateRateA     uint64
	MinFundRaisingB     uint64
	MintB               solana.PublicKey
	ProtocolFeeOwner    solana.PublicKey
	MigrateFeeOwner     solana.PublicKey
	MigrateToAmmWallet  solana.PublicKey
	MigrateToCpmmWallet solana.PublicKey
}

// StaticCurveConfig — известный снимок конфига Constant Product Curve.
func StaticCurveConfig() CurveConfig {
	return CurveConfig{
		ID:                  DefaultConfigID,
		Name:                "Constant Product Curve",
		Epoch:               772,
		CurveType:           0,
		Index:               0,
		MigrateFee:          0,
		TradeFeeRate:        2500,
		MaxShareFeeRate:     10000,
		MinSupplyA:          10_000_000,
		MaxLockRate:         300_000,
		MinSellRateA:        200_000,
		MinMigrateRateA:     200_000,
		MinFundRaisingB:     30_000_000_000,
		MintB:               solana.SolMint,
		ProtocolFeeOwner:    solana.MustPublicKeyFromBase58("rayvTLcCMDs7P5tgpuoNA6ZYeLERegeCphdqLSgdKms"),
		MigrateFeeOwner:     solana.MustPublicKeyFromBase58("rayHQtJKrtvqUs3HnhDW9RKubHRbu87eESKEYD5xosa"),
		MigrateToAmmWallet:  solana.MustPublicKeyFromBase58("RAYzrepoBdjSFg7MZj2vy4XBSv2azKRXC72ztUMZMJB"),
		MigrateToCpmmWallet: solana.MustPublicKeyFromBase58("RAYpQbFNq9i3mu6cKpTKKRwwHFDeK5AuZz8xvxUrCgw"),
	}
}

// PoolParams — параметры нового пула, отправляемые и в сервис минта, и в initialize.
type PoolParams struct {
	Supply            uint64
	TotalSellA        uint64
	TotalFundRaisingB uint64
	TotalLockedAmount uint64
	CliffPeriod       uint64
	UnlockPeriod      uint64
	MigrateType       MigrateType
}

func DefaultPoolParams() PoolParams {
	return PoolParams{
		Supply:            DefaultSupply,
		TotalSellA:        DefaultTotalSellA,
		TotalFundRaisingB: DefaultTotalFundRaisingB,
		TotalLockedAmount: DefaultTotalLockedAmount,
		CliffPeriod:       DefaultCliffPeriod,
		UnlockPeriod:      DefaultUnlockPeriod,
		MigrateType:       MigrateAMM,
	}
}
