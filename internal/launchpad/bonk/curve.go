// internal/launchpad/bonk/curve.go
package bonk

import (
	"fmt"
	"math/big"
)

// VirtualReserves — начальное состояние constant product кривой.
type VirtualReserves struct {
	A *big.Int
	B *big.Int
}

// InitialVirtualReserves вычисляет виртуальные резервы так, чтобы после продажи
// TotalSellA кривая собрала ровно TotalFundRaisingB за вычетом комиссии миграции.
//
//	M  = supply - totalSell - locked
//	P  = (fundRaising - migrateFee) / M
//	vA = P·S² / (P·S - F)
//	vB = F·(vA - S) / S
func InitialVirtualReserves(pool PoolParams, migrateFee uint64) (VirtualReserves, error) {
	if pool.TotalSellA == 0 || pool.TotalFundRaisingB == 0 {
		return VirtualReserves{}, fmt.Errorf("total sell and fund raising must be positive")
	}
	if pool.Supply <= pool.TotalSellA+pool.TotalLockedAmount {
		return VirtualReserves{}, fmt.Errorf("supply %d leaves nothing to migrate", pool.Supply)
	}
	if pool.TotalFundRaisingB <= migrateFee {
		return VirtualReserves{}, fmt.Errorf("fund raising %d does not cover migrate fee %d", pool.TotalFundRaisingB, migrateFee)
	}

	s := new(big.Rat).SetInt(new(big.Int).SetUint64(pool.TotalSellA))
	f := new(big.Rat).SetInt(new(big.Int).SetUint64(pool.TotalFundRaisingB))
	m := new(big.Rat).SetInt(new(big.Int).SetUint64(pool.Supply - pool.TotalSellA - pool.TotalLockedAmount))
	fNet := new(big.Rat).SetInt(new(big.Int).SetUint64(pool.TotalFundRaisingB - migrateFee))

	price := new(big.Rat).Quo(fNet, m)
	ps := new(big.Rat).Mul(price, s)
	denom := new(big.Rat).Sub(ps, f)
	if denom.Sign() <= 0 {
		return VirtualReserves{}, fmt.Errorf("curve parameters do not form a valid constant product curve")
	}

	vA := new(big.Rat).Quo(new(big.Rat).Mul(ps, s), denom)
	vB := new(big.Rat).Quo(new(big.Rat).Mul(f, new(big.Rat).Sub(vA, s)), s)

	return VirtualReserves{A: ratFloor(vA), B: ratFloor(vB)}, nil
}

// BuyQuote — результат расчёта buy_exact_in.
type BuyQuote struct {
	AmountIn     uint64
	TradeFee     uint64
	PlatformFee  uint64
	AmountOut    uint64
	MinAmountOut uint64
}

// QuoteBuyExactIn считает количество базового токена за amountIn лампортов
// на только что созданном пуле и минимальный выход с учётом slippage.
func QuoteBuyExactIn(
	reserves VirtualReserves,
	pool PoolParams,
	amountIn, tradeFeeRate, platformFeeRate, slippageBps uint64,
) (BuyQuote, error) {
	if slippageBps > 10_000 {
		return BuyQuote{}, fmt.Errorf("slippage %d bps exceeds 100%%", slippageBps)
	}

	in := new(big.Int).SetUint64(amountIn)
	tradeFee := feeCeil(in, tradeFeeRate)
	platformFee := feeCeil(in, platformFeeRate)

	net := new(big.Int).Sub(in, tradeFee)
	net.Sub(net, platformFee)
	if net.Sign() <= 0 {
		return BuyQuote{AmountIn: amountIn, TradeFee: tradeFee.Uint64(), PlatformFee: platformFee.Uint64()}, nil
	}

	// out = vA·x / (vB + x)
	out := new(big.Int).Mul(reserves.A, net)
	out.Quo(out, new(big.Int).Add(reserves.B, net))
	if limit := new(big.Int).SetUint64(pool.TotalSellA); out.Cmp(limit) > 0 {
		out = limit
	}

	minOut := new(big.Int).Mul(out, new(big.Int).SetUint64(10_000-slippageBps))
	minOut.Quo(minOut, big.NewInt(10_000))

	return BuyQuote{
		AmountIn:     amountIn,
		TradeFee:     tradeFee.Uint64(),
		PlatformFee:  platformFee.Uint64(),
		AmountOut:    out.Uint64(),
		MinAmountOut: minOut.Uint64(),
	}, nil
}

func feeCeil(amount *big.Int, rate uint64) *big.Int {
	if rate == 0 {
		return new(big.Int)
	}
	num := new(big.Int).Mul(amount, new(big.Int).SetUint64(rate))
	num.Add(num, new(big.Int).SetUint64(FeeRateDenominator-1))
	return num.Quo(num, new(big.Int).SetUint64(FeeRateDenominator))
}

func ratFloor(r *big.Rat) *big.Int {
	return new(big.Int).Quo(r.Num(), r.Denom())
}
