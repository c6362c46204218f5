// internal/launchpad/bonk/builder.go
package bonk

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/gagliardetto/solana-go/programs/token"
	"github.com/rovshanmuradov/token-launcher/internal/blockchain"
	"github.com/rovshanmuradov/token-launcher/internal/blockchain/computebudget"
	"go.uber.org/zap"
)

// BuildParams — входные данные сборщика транзакции create-and-buy.
type BuildParams struct {
	Config      CurveConfig
	PlatformID  string
	Mint        string
	Owner       solana.PublicKey
	Name        string
	Symbol      string
	URI         string
	Decimals    uint8
	Pool        PoolParams
	BuyLamports uint64
	SlippageBps uint64
}

// TxBuilder собирает неподписанную транзакцию создания пула с первой покупкой.
type TxBuilder interface {
	BuildCreateAndBuy(ctx context.Context, p BuildParams) (*solana.Transaction, error)
}

// BlockhashSource — источник свежего blockhash.
type BlockhashSource interface {
	GetRecentBlockhash(ctx context.Context) (solana.Hash, error)
}

// LaunchLabBuilder собирает транзакцию напрямую из инструкций программы LaunchLab.
type LaunchLabBuilder struct {
	blockhash       BlockhashSource
	budget          computebudget.Config
	platformFeeRate uint64
	logger          *zap.Logger
}

func NewLaunchLabBuilder(blockhash BlockhashSource, budget computebudget.Config, logger *zap.Logger) *LaunchLabBuilder {
	return &LaunchLabBuilder{
		blockhash:       blockhash,
		budget:          budget,
		platformFeeRate: DefaultPlatformFeeRate,
		logger:          logger.Named("launchlab-builder"),
	}
}

// BuildCreateAndBuy: compute budget, initialize, обёртка WSOL, ATA токена,
// buy_exact_in и закрытие WSOL-аккаунта.
func (b *LaunchLabBuilder) BuildCreateAndBuy(ctx context.Context, p BuildParams) (*solana.Transaction, error) {
	mintA, err := solana.PublicKeyFromBase58(p.Mint)
	if err != nil {
		return nil, fmt.Errorf("invalid mint address %q: %w", p.Mint, err)
	}
	platformID, err := solana.PublicKeyFromBase58(p.PlatformID)
	if err != nil {
		return nil, fmt.Errorf("invalid platform id %q: %w", p.PlatformID, err)
	}
	mintB := p.Config.MintB

	acc, err := DerivePoolAccounts(LaunchLabProgramID, mintA, mintB)
	if err != nil {
		return nil, err
	}

	instructions, err := computebudget.BuildInstructions(b.budget)
	if err != nil {
		return nil, err
	}

	initIx, err := BuildInitializeInstruction(acc, p.Owner, p.Owner, p.Config.ID, platformID, mintA, mintB, InitializeArgs{
		Decimals: p.Decimals,
		Name:     p.Name,
		Symbol:   p.Symbol,
		URI:      p.URI,
		Pool:     p.Pool,
	})
	if err != nil {
		return nil, err
	}
	instructions = append(instructions, initIx)

	if p.BuyLamports > 0 {
		buyIxs, err := b.buyInstructions(acc, p, platformID, mintA, mintB)
		if err != nil {
			return nil, err
		}
		instructions = append(instructions, buyIxs...)
	}

	blockhash, err := b.blockhash.GetRecentBlockhash(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent blockhash: %w", err)
	}

	tx, err := solana.NewTransaction(instructions, blockhash, solana.TransactionPayer(p.Owner))
	if err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}
	return tx, nil
}

func (b *LaunchLabBuilder) buyInstructions(acc PoolAccounts, p BuildParams, platformID, mintA, mintB solana.PublicKey) ([]solana.Instruction, error) {
	reserves, err := InitialVirtualReserves(p.Pool, p.Config.MigrateFee)
	if err != nil {
		return nil, err
	}
	quote, err := QuoteBuyExactIn(reserves, p.Pool, p.BuyLamports, p.Config.TradeFeeRate, b.platformFeeRate, p.SlippageBps)
	if err != nil {
		return nil, err
	}

	b.logger.Debug("Initial buy quoted",
		zap.Uint64("amount_in", quote.AmountIn),
		zap.Uint64("amount_out", quote.AmountOut),
		zap.Uint64("min_amount_out", quote.MinAmountOut))

	createWSOL, userTokenB, err := blockchain.CreateATAIdempotent(p.Owner, p.Owner, mintB)
	if err != nil {
		return nil, err
	}
	createBase, userTokenA, err := blockchain.CreateATAIdempotent(p.Owner, p.Owner, mintA)
	if err != nil {
		return nil, err
	}

	buyIx, err := BuildBuyExactInInstruction(acc, p.Owner, p.Config.ID, platformID, mintA, mintB,
		userTokenA, userTokenB, quote.AmountIn, quote.MinAmountOut)
	if err != nil {
		return nil, err
	}

	return []solana.Instruction{
		createWSOL,
		system.NewTransferInstruction(p.BuyLamports, p.Owner, userTokenB).Build(),
		token.NewSyncNativeInstruction(userTokenB).Build(),
		createBase,
		buyIx,
		token.NewCloseAccountInstruction(userTokenB, p.Owner, p.Owner, nil).Build(),
	}, nil
}
