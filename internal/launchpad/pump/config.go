// =============================
// File: internal/launchpad/pump/config.go
// =============================
package pump

import (
	"github.com/gagliardetto/solana-go"
)

// Известные адреса протокола Pump.fun
var (
	ProgramID         = solana.MustPublicKeyFromBase58("6EF8rrecthR5Dkzon8Nwu78hRvfCKubJ14M5uBEwF6P")
	GlobalAddress     = solana.MustPublicKeyFromBase58("4wTV1YmiEkRvAtNtsSGPtUrqRYQMe5SKy2uB4Jjaxnjf")
	MintAuthority     = solana.MustPublicKeyFromBase58("TSLvdd1pWpHVjahSpsvCXUbgwsL3JAcvokwaKt1eokM")
	MetaplexProgramID = solana.MustPublicKeyFromBase58("metaqbxxUerdq28cj1RbAWkYQm3ybzjb6a8bt518x1s")

	// AMM, куда мигрирует кривая после выпуска.
	AMMProgramID = solana.MustPublicKeyFromBase58("pAMMBay6oceH9fJKBRHGP5D4bD4sWpmSwMn52FMfXEA")
)

const (
	DefaultIPFSURL = "https://pump.fun/api/ipfs"

	Decimals uint8 = 6

	// SlippagePercent добавляется к стоимости покупки в max_sol_cost.
	SlippagePercent = 5

	DefaultPriorityFeeSol = 0.001

	feeBasisPointsDenominator = 10_000
)

var (
	CreateDiscriminator = []byte{0x18, 0x1e, 0xc8, 0x28, 0x05, 0x1c, 0x07, 0x77}
	BuyDiscriminator    = []byte{0x66, 0x06, 0x3d, 0x12, 0x01, 0xda, 0xeb, 0xea}
)
