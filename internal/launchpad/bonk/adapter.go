// internal/launchpad/bonk/adapter.go
package bonk

import (
	"context"

	"github.com/gagliardetto/solana-go"
	"github.com/rovshanmuradov/token-launcher/internal/image"
	"github.com/rovshanmuradov/token-launcher/internal/launch"
	"go.uber.org/zap"
)

const errUnknown = "Unknown error"

// Adapter запускает токены на LaunchLab. Транзакция остаётся частично
// подписанной: подпись минта ставит сервис площадки при регистрации.
type Adapter struct {
	curves     *Context
	mints      *MintClient
	builder    TxBuilder
	platformID string
	pool       PoolParams
	logger     *zap.Logger
}

func NewAdapter(curves *Context, mints *MintClient, builder TxBuilder, platformID string, logger *zap.Logger) *Adapter {
	if platformID == "" {
		platformID = BonkPlatformID2
	}
	return &Adapter{
		curves:     curves,
		mints:      mints,
		builder:    builder,
		platformID: platformID,
		pool:       DefaultPoolParams(),
		logger:     logger.Named("bonk"),
	}
}

func (a *Adapter) Platform() launch.Platform { return launch.PlatformBonk }

// BuildUnsignedLaunch запрашивает минт у сервиса и собирает create-and-buy.
func (a *Adapter) BuildUnsignedLaunch(ctx context.Context, req launch.BuildRequest) launch.Result[launch.UnsignedLaunch] {
	cfg := a.curves.Config(ctx)
	p := req.Params

	img, err := image.OrPlaceholder(req.Image, p.Symbol)
	if err != nil {
		return launch.ErrFrom[launch.UnsignedLaunch](err, errUnknown)
	}

	mint, err := a.mints.RequestMint(ctx, MintRequest{
		Wallet:      req.Wallet,
		Name:        p.Name,
		Symbol:      p.Symbol,
		Description: p.Description,
		Website:     p.Website,
		Twitter:     p.TwitterURL,
		ConfigID:    cfg.ID,
		PlatformID:  a.platformID,
		Decimals:    Decimals,
		Pool:        a.pool,
		Image:       img,
	})
	if err != nil {
		a.logger.Warn("Mint request failed", zap.Error(err))
		return launch.ErrFrom[launch.UnsignedLaunch](err, errUnknown)
	}

	tx, err := a.builder.BuildCreateAndBuy(ctx, BuildParams{
		Config:      cfg,
		PlatformID:  a.platformID,
		Mint:        mint.Mint,
		Owner:       req.Wallet,
		Name:        p.Name,
		Symbol:      p.Symbol,
		URI:         mint.MetadataLink,
		Decimals:    Decimals,
		Pool:        a.pool,
		BuyLamports: launch.SolToLamports(p.SolAmount),
		SlippageBps: SlippageBps,
	})
	if err != nil {
		a.logger.Warn("Create-and-buy build failed", zap.String("mint", mint.Mint), zap.Error(err))
		return launch.ErrFrom[launch.UnsignedLaunch](err, errUnknown)
	}

	return launch.Ok(launch.UnsignedLaunch{
		Tx:           tx,
		Mint:         mint.Mint,
		MetadataLink: mint.MetadataLink,
	})
}

// RegisterSigned передаёт подписанную транзакцию сервису площадки.
func (a *Adapter) RegisterSigned(ctx context.Context, tx *solana.Transaction) launch.Result[struct{}] {
	if err := a.mints.SendTransaction(ctx, tx); err != nil {
		a.logger.Warn("Registration rejected", zap.Error(err))
		return launch.ErrFrom[struct{}](err, ErrRegistrationFallback)
	}
	return launch.Ok(struct{}{})
}

var (
	_ launch.PlatformAdapter = (*Adapter)(nil)
	_ launch.Registrar       = (*Adapter)(nil)
)
