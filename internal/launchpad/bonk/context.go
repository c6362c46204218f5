// internal/launchpad/bonk/context.go
package bonk

import (
	"context"
	"fmt"
	"sync"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/rovshanmuradov/token-launcher/internal/blockchain"
	"go.uber.org/zap"
)

// ConfigLoader читает конфиг кривой.
type ConfigLoader func(ctx context.Context) (CurveConfig, error)

// StaticLoader всегда возвращает StaticCurveConfig.
func StaticLoader() ConfigLoader {
	return func(context.Context) (CurveConfig, error) {
		return StaticCurveConfig(), nil
	}
}

// globalConfigLayout — раскладка аккаунта GlobalConfig программы LaunchLab.
type globalConfigLayout struct {
	Discriminator       [8]byte
	Epoch               uint64
	CurveType           uint8
	Index               uint16
	MigrateFee          uint64
	TradeFeeRate        uint64
	MaxShareFeeRate     uint64
	MinBaseSupply       uint64
	MaxLockRate         uint64
	MinBaseSellRate     uint64
	MinBaseMigrateRate  uint64
	MinQuoteFundRaising uint64
	QuoteMint           solana.PublicKey
	ProtocolFeeOwner    solana.PublicKey
	MigrateFeeOwner     solana.PublicKey
	MigrateToAmmWallet  solana.PublicKey
	MigrateToCpmmWallet solana.PublicKey
}

// DecodeCurveConfig разбирает данные аккаунта GlobalConfig.
func DecodeCurveConfig(id solana.PublicKey, data []byte) (CurveConfig, error) {
	var layout globalConfigLayout
	if err := bin.NewBorshDecoder(data).Decode(&layout); err != nil {
		return CurveConfig{}, fmt.Errorf("decode global config %s: %w", id, err)
	}
	if layout.QuoteMint.IsZero() {
		return CurveConfig{}, fmt.Errorf("global config %s has no quote mint", id)
	}

	return CurveConfig{
		ID:                  id,
		Name:                "Constant Product Curve",
		Epoch:               layout.Epoch,
		CurveType:           layout.CurveType,
		Index:               layout.Index,
		MigrateFee:          layout.MigrateFee,
		TradeFeeRate:        layout.TradeFeeRate,
		MaxShareFeeRate:     layout.MaxShareFeeRate,
		MinSupplyA:          layout.MinBaseSupply,
		MaxLockRate:         layout.MaxLockRate,
		MinSellRateA:        layout.MinBaseSellRate,
		MinMigrateRateA:     layout.MinBaseMigrateRate,
		MinFundRaisingB:     layout.MinQuoteFundRaising,
		MintB:               layout.QuoteMint,
		ProtocolFeeOwner:    layout.ProtocolFeeOwner,
		MigrateFeeOwner:     layout.MigrateFeeOwner,
		MigrateToAmmWallet:  layout.MigrateToAmmWallet,
		MigrateToCpmmWallet: layout.MigrateToCpmmWallet,
	}, nil
}

// RPCLoader читает GlobalConfig из сети.
func RPCLoader(client blockchain.Client, configID solana.PublicKey) ConfigLoader {
	return func(ctx context.Context) (CurveConfig, error) {
		info, err := client.GetAccountInfo(ctx, configID)
		if err != nil {
			return CurveConfig{}, fmt.Errorf("failed to get global config: %w", err)
		}
		if !info.Value.Owner.Equals(LaunchLabProgramID) {
			return CurveConfig{}, fmt.Errorf("global config has incorrect owner: expected %s, got %s",
				LaunchLabProgramID, info.Value.Owner)
		}
		return DecodeCurveConfig(configID, info.Value.Data.GetBinary())
	}
}

// Context владеет конфигом кривой: он загружается один раз при первом
// обращении и затем не обновляется до конца жизни процесса.
type Context struct {
	once   sync.Once
	loader ConfigLoader
	config CurveConfig
	source string
	logger *zap.Logger
}

func NewContext(loader ConfigLoader, logger *zap.Logger) *Context {
	if loader == nil {
		loader = StaticLoader()
	}
	return &Context{loader: loader, logger: logger.Named("bonk-context")}
}

// Config возвращает конфиг кривой. Ошибка загрузки заменяется статическим снимком.
func (c *Context) Config(ctx context.Context) CurveConfig {
	c.once.Do(func() {
		cfg, err := c.loader(ctx)
		if err != nil {
			c.logger.Warn("Curve config unavailable, using static snapshot", zap.Error(err))
			c.config = StaticCurveConfig()
			c.source = "static"
			return
		}
		c.config = cfg
		c.source = "loaded"
		c.logger.Info("Curve config loaded",
			zap.String("config_id", cfg.ID.String()),
			zap.Uint64("epoch", cfg.Epoch),
			zap.Uint64("trade_fee_rate", cfg.TradeFeeRate))
	})
	return c.config
}

// Source сообщает, откуда взят конфиг: "loaded", "static" или "" до первой загрузки.
func (c *Context) Source() string {
	return c.source
}
