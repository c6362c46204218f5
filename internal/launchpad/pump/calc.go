// internal/launchpad/pump/calc.go
package pump

import (
	"math/big"
)

// BondingCurve — резервы существующей кривой. nil означает новую кривую.
type BondingCurve struct {
	VirtualTokenReserves uint64
	VirtualSolReserves   uint64
	RealTokenReserves    uint64
}

// NewBondingCurve — кривая в состоянии сразу после create.
func NewBondingCurve(g GlobalAccount) BondingCurve {
	return BondingCurve{
		VirtualTokenReserves: g.InitialVirtualTokenReserves,
		VirtualSolReserves:   g.InitialVirtualSolReserves,
		RealTokenReserves:    g.InitialRealTokenReserves,
	}
}

// BuyTokenAmountFromSolAmount считает, сколько токенов даст покупка на lamports
// с учётом комиссии протокола. Результат не превышает реальных резервов.
func BuyTokenAmountFromSolAmount(g GlobalAccount, curve *BondingCurve, lamports uint64) uint64 {
	if lamports == 0 {
		return 0
	}
	c := NewBondingCurve(g)
	if curve != nil {
		c = *curve
	}
	if c.VirtualTokenReserves == 0 {
		return 0
	}

	input := new(big.Int).SetUint64(lamports)
	input.Mul(input, big.NewInt(feeBasisPointsDenominator))
	input.Quo(input, new(big.Int).SetUint64(g.FeeBasisPoints+feeBasisPointsDenominator))

	tokens := new(big.Int).Mul(input, new(big.Int).SetUint64(c.VirtualTokenReserves))
	tokens.Quo(tokens, new(big.Int).Add(new(big.Int).SetUint64(c.VirtualSolReserves), input))

	realReserves := new(big.Int).SetUint64(c.RealTokenReserves)
	if tokens.Cmp(realReserves) > 0 {
		return c.RealTokenReserves
	}
	return tokens.Uint64()
}

// MaxSolCost добавляет допуск проскальзывания к стоимости покупки.
func MaxSolCost(lamports uint64, slippagePercent uint64) uint64 {
	v := new(big.Int).SetUint64(lamports)
	v.Mul(v, new(big.Int).SetUint64(100+slippagePercent))
	v.Quo(v, big.NewInt(100))
	return v.Uint64()
}
