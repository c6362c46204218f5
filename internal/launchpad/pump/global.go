// =============================================
// File: internal/launchpad/pump/global.go
// =============================================
package pump

import (
	"context"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/rovshanmuradov/token-launcher/internal/blockchain"
	"go.uber.org/zap"
)

// GlobalAccount — начало аккаунта global программы Pump.fun.
// Поля после FeeBasisPoints не читаются.
type GlobalAccount struct {
	Discriminator               [8]byte
	Initialized                 bool
	Authority                   solana.PublicKey
	FeeRecipient                solana.PublicKey
	InitialVirtualTokenReserves uint64
	InitialVirtualSolReserves   uint64
	InitialRealTokenReserves    uint64
	TokenTotalSupply            uint64
	FeeBasisPoints              uint64
}

const globalAccountMinLen = 8 + 1 + 32 + 32 + 5*8

// DecodeGlobalAccount разбирает данные аккаунта global.
func DecodeGlobalAccount(data []byte) (GlobalAccount, error) {
	if len(data) < globalAccountMinLen {
		return GlobalAccount{}, fmt.Errorf("global account data too short: %d bytes", len(data))
	}
	var g GlobalAccount
	if err := bin.NewBorshDecoder(data).Decode(&g); err != nil {
		return GlobalAccount{}, fmt.Errorf("failed to decode global account: %w", err)
	}
	return g, nil
}

// GlobalSource отдаёт текущее состояние аккаунта global.
type GlobalSource interface {
	FetchGlobal(ctx context.Context) (GlobalAccount, error)
}

// RPCGlobal читает global через RPC.
type RPCGlobal struct {
	client  blockchain.Client
	address solana.PublicKey
	logger  *zap.Logger
}

func NewRPCGlobal(client blockchain.Client, logger *zap.Logger) *RPCGlobal {
	return &RPCGlobal{client: client, address: GlobalAddress, logger: logger.Named("pump-global")}
}

func (g *RPCGlobal) FetchGlobal(ctx context.Context) (GlobalAccount, error) {
	g.logger.Debug("Fetching global account data", zap.String("address", g.address.String()))

	info, err := g.client.GetAccountInfo(ctx, g.address)
	if err != nil {
		return GlobalAccount{}, fmt.Errorf("failed to get global account: %w", err)
	}
	if info == nil || info.Value == nil {
		return GlobalAccount{}, fmt.Errorf("global account not found: %s", g.address)
	}
	if !info.Value.Owner.Equals(ProgramID) {
		return GlobalAccount{}, fmt.Errorf("global account has incorrect owner: expected %s, got %s",
			ProgramID, info.Value.Owner)
	}

	account, err := DecodeGlobalAccount(info.Value.Data.GetBinary())
	if err != nil {
		return GlobalAccount{}, err
	}

	g.logger.Debug("Global account data parsed",
		zap.Bool("initialized", account.Initialized),
		zap.String("fee_recipient", account.FeeRecipient.String()),
		zap.Uint64("fee_basis_points", account.FeeBasisPoints))
	return account, nil
}
