// internal/launchpad/pump/adapter.go
package pump

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/rovshanmuradov/token-launcher/internal/blockchain"
	"github.com/rovshanmuradov/token-launcher/internal/blockchain/computebudget"
	"github.com/rovshanmuradov/token-launcher/internal/launch"
	"github.com/rovshanmuradov/token-launcher/internal/wallet"
	"go.uber.org/zap"
)

const errUnknown = "Unknown error occurred"

// BlockhashSource — источник свежего blockhash.
type BlockhashSource interface {
	GetRecentBlockhash(ctx context.Context) (solana.Hash, error)
}

// Adapter запускает токены на Pump.fun: транзакция собирается локально
// и уже подписана ключом минта, кошельку остаётся поставить свою подпись.
type Adapter struct {
	globals   GlobalSource
	metadata  *MetadataClient
	blockhash BlockhashSource
	budget    computebudget.Config
	newMint   func() solana.PrivateKey
	logger    *zap.Logger
}

func NewAdapter(globals GlobalSource, metadata *MetadataClient, blockhash BlockhashSource, budget computebudget.Config, logger *zap.Logger) *Adapter {
	return &Adapter{
		globals:   globals,
		metadata:  metadata,
		blockhash: blockhash,
		budget:    budget,
		newMint:   func() solana.PrivateKey { return solana.NewWallet().PrivateKey },
		logger:    logger.Named("pump"),
	}
}

func (a *Adapter) Platform() launch.Platform { return launch.PlatformPump }

// BuildUnsignedLaunch пинит метаданные и собирает create + buy.
func (a *Adapter) BuildUnsignedLaunch(ctx context.Context, req launch.BuildRequest) launch.Result[launch.UnsignedLaunch] {
	tx, mint, err := a.build(ctx, req)
	if err != nil {
		a.logger.Warn("Pump launch build failed", zap.Error(err))
		return launch.ErrFrom[launch.UnsignedLaunch](err, errUnknown)
	}
	return launch.Ok(launch.UnsignedLaunch{Tx: tx, Mint: mint.String()})
}

func (a *Adapter) build(ctx context.Context, req launch.BuildRequest) (*solana.Transaction, solana.PublicKey, error) {
	p := req.Params
	mintKey := a.newMint()
	mint := mintKey.PublicKey()

	img, ok := req.Image.Image()
	if !ok {
		return nil, mint, ErrImageRequired
	}
	pinned, err := a.metadata.Pin(ctx, TokenMetadata{
		Name:        p.Name,
		Symbol:      p.Symbol,
		Description: p.Description,
		Twitter:     p.TwitterURL,
		Telegram:    p.Telegram,
		Website:     p.Website,
		Image:       img,
	})
	if err != nil {
		return nil, mint, err
	}

	global, err := a.globals.FetchGlobal(ctx)
	if err != nil {
		return nil, mint, err
	}

	lamports := launch.SolToLamports(p.SolAmount)
	amount := BuyTokenAmountFromSolAmount(global, nil, lamports)

	acc, err := DeriveCurveAccounts(mint, req.Wallet)
	if err != nil {
		return nil, mint, err
	}

	instructions, err := computebudget.BuildInstructions(a.budget)
	if err != nil {
		return nil, mint, err
	}
	createIx, err := BuildCreateInstruction(acc, req.Wallet, p.Name, p.Symbol, pinned.MetadataURI)
	if err != nil {
		return nil, mint, err
	}
	instructions = append(instructions, createIx)

	if lamports > 0 {
		ataIx, userATA, err := blockchain.CreateATAIdempotent(req.Wallet, req.Wallet, mint)
		if err != nil {
			return nil, mint, err
		}
		instructions = append(instructions,
			ataIx,
			BuildBuyInstruction(acc, global.FeeRecipient, req.Wallet, userATA, amount, MaxSolCost(lamports, SlippagePercent)),
		)
	}

	a.logger.Debug("Create-and-buy prepared",
		zap.String("mint", mint.String()),
		zap.Uint64("lamports", lamports),
		zap.Uint64("token_amount", amount))

	blockhash, err := a.blockhash.GetRecentBlockhash(ctx)
	if err != nil {
		return nil, mint, fmt.Errorf("failed to get recent blockhash: %w", err)
	}

	tx, err := solana.NewTransaction(instructions, blockhash, solana.TransactionPayer(req.Wallet))
	if err != nil {
		return nil, mint, fmt.Errorf("failed to create transaction: %w", err)
	}
	if err := wallet.PartialSign(tx, mintKey); err != nil {
		return nil, mint, fmt.Errorf("failed to sign with mint key: %w", err)
	}
	return tx, mint, nil
}

var _ launch.PlatformAdapter = (*Adapter)(nil)
