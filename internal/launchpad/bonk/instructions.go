// ==============================================
// File: internal/launchpad/bonk/instructions.go
// ==============================================
package bonk

import (
	"bytes"
	"crypto/sha256"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

var (
	InitializeDiscriminator = anchorDiscriminator("initialize")
	BuyExactInDiscriminator = anchorDiscriminator("buy_exact_in")
)

// anchorDiscriminator — первые 8 байт sha256("global:<name>").
func anchorDiscriminator(name string) []byte {
	sum := sha256.Sum256([]byte("global:" + name))
	return sum[:8]
}

// PoolAccounts — адреса PDA пула для пары mintA/mintB.
type PoolAccounts struct {
	Program        solana.PublicKey
	Authority      solana.PublicKey
	Pool           solana.PublicKey
	VaultA         solana.PublicKey
	VaultB         solana.PublicKey
	Metadata       solana.PublicKey
	EventAuthority solana.PublicKey
}

// DerivePoolAccounts вычисляет все PDA, нужные для initialize и buy_exact_in.
func DerivePoolAccounts(program, mintA, mintB solana.PublicKey) (PoolAccounts, error) {
	acc := PoolAccounts{Program: program}
	var err error

	if acc.Authority, _, err = solana.FindProgramAddress([][]byte{[]byte("vault_auth_seed")}, program); err != nil {
		return acc, fmt.Errorf("failed to derive authority: %w", err)
	}
	if acc.Pool, _, err = solana.FindProgramAddress(
		[][]byte{[]byte("pool"), mintA.Bytes(), mintB.Bytes()}, program); err != nil {
		return acc, fmt.Errorf("failed to derive pool: %w", err)
	}
	if acc.VaultA, _, err = solana.FindProgramAddress(
		[][]byte{[]byte("pool_vault"), acc.Pool.Bytes(), mintA.Bytes()}, program); err != nil {
		return acc, fmt.Errorf("failed to derive vault A: %w", err)
	}
	if acc.VaultB, _, err = solana.FindProgramAddress(
		[][]byte{[]byte("pool_vault"), acc.Pool.Bytes(), mintB.Bytes()}, program); err != nil {
		return acc, fmt.Errorf("failed to derive vault B: %w", err)
	}
	if acc.Metadata, _, err = solana.FindProgramAddress(
		[][]byte{[]byte("metadata"), MetaplexProgramID.Bytes(), mintA.Bytes()}, MetaplexProgramID); err != nil {
		return acc, fmt.Errorf("failed to derive metadata: %w", err)
	}
	if acc.EventAuthority, _, err = solana.FindProgramAddress([][]byte{[]byte("__event_authority")}, program); err != nil {
		return acc, fmt.Errorf("failed to derive event authority: %w", err)
	}
	return acc, nil
}

type mintParams struct {
	Decimals uint8
	Name     string
	Symbol   string
	URI      string
}

type constantCurve struct {
	Supply                uint64
	TotalBaseSell         uint64
	TotalQuoteFundRaising uint64
	MigrateType           uint8
}

type vestingParams struct {
	TotalLockedAmount uint64
	CliffPeriod       uint64
	UnlockPeriod      uint64
}

// InitializeArgs — аргументы initialize.
type InitializeArgs struct {
	Decimals uint8
	Name     string
	Symbol   string
	URI      string
	Pool     PoolParams
}

// BuildInitializeInstruction создаёт пул и минт токена на LaunchLab.
// Минт должен подписать транзакцию.
func BuildInitializeInstruction(
	acc PoolAccounts,
	payer, creator, configID, platformID, mintA, mintB solana.PublicKey,
	args InitializeArgs,
) (solana.Instruction, error) {
	buf := new(bytes.Buffer)
	buf.Write(InitializeDiscriminator)
	enc := bin.NewBorshEncoder(buf)

	if err := enc.Encode(mintParams{
		Decimals: args.Decimals,
		Name:     args.Name,
		Symbol:   args.Symbol,
		URI:      args.URI,
	}); err != nil {
		return nil, fmt.Errorf("encode mint params: %w", err)
	}
	// CurveParams::Constant
	if err := enc.WriteUint8(0); err != nil {
		return nil, fmt.Errorf("encode curve variant: %w", err)
	}
	if err := enc.Encode(constantCurve{
		Supply:                args.Pool.Supply,
		TotalBaseSell:         args.Pool.TotalSellA,
		TotalQuoteFundRaising: args.Pool.TotalFundRaisingB,
		MigrateType:           uint8(args.Pool.MigrateType),
	}); err != nil {
		return nil, fmt.Errorf("encode curve params: %w", err)
	}
	if err := enc.Encode(vestingParams{
		TotalLockedAmount: args.Pool.TotalLockedAmount,
		CliffPeriod:       args.Pool.CliffPeriod,
		UnlockPeriod:      args.Pool.UnlockPeriod,
	}); err != nil {
		return nil, fmt.Errorf("encode vesting params: %w", err)
	}

	accounts := []*solana.AccountMeta{
		{PublicKey: payer, IsSigner: true, IsWritable: true},
		{PublicKey: creator, IsSigner: false, IsWritable: false},
		{PublicKey: configID, IsSigner: false, IsWritable: false},
		{PublicKey: platformID, IsSigner: false, IsWritable: false},
		{PublicKey: acc.Authority, IsSigner: false, IsWritable: false},
		{PublicKey: acc.Pool, IsSigner: false, IsWritable: true},
		{PublicKey: mintA, IsSigner: true, IsWritable: true},
		{PublicKey: mintB, IsSigner: false, IsWritable: false},
		{PublicKey: acc.VaultA, IsSigner: false, IsWritable: true},
		{PublicKey: acc.VaultB, IsSigner: false, IsWritable: true},
		{PublicKey: acc.Metadata, IsSigner: false, IsWritable: true},
		{PublicKey: solana.TokenProgramID, IsSigner: false, IsWritable: false},
		{PublicKey: solana.TokenProgramID, IsSigner: false, IsWritable: false},
		{PublicKey: MetaplexProgramID, IsSigner: false, IsWritable: false},
		{PublicKey: solana.SystemProgramID, IsSigner: false, IsWritable: false},
		{PublicKey: solana.SysVarRentPubkey, IsSigner: false, IsWritable: false},
		{PublicKey: acc.EventAuthority, IsSigner: false, IsWritable: false},
		{PublicKey: acc.Program, IsSigner: false, IsWritable: false},
	}

	return solana.NewInstruction(acc.Program, accounts, buf.Bytes()), nil
}

type buyExactInArgs struct {
	AmountIn         uint64
	MinimumAmountOut uint64
	ShareFeeRate     uint64
}

// BuildBuyExactInInstruction покупает базовый токен за ровно amountIn WSOL.
func BuildBuyExactInInstruction(
	acc PoolAccounts,
	owner, configID, platformID, mintA, mintB, userTokenA, userTokenB solana.PublicKey,
	amountIn, minimumAmountOut uint64,
) (solana.Instruction, error) {
	buf := new(bytes.Buffer)
	buf.Write(BuyExactInDiscriminator)
	if err := bin.NewBorshEncoder(buf).Encode(buyExactInArgs{
		AmountIn:         amountIn,
		MinimumAmountOut: minimumAmountOut,
		ShareFeeRate:     0,
	}); err != nil {
		return nil, fmt.Errorf("encode buy args: %w", err)
	}

	accounts := []*solana.AccountMeta{
		{PublicKey: owner, IsSigner: true, IsWritable: true},
		{PublicKey: acc.Authority, IsSigner: false, IsWritable: false},
		{PublicKey: configID, IsSigner: false, IsWritable: false},
		{PublicKey: platformID, IsSigner: false, IsWritable: false},
		{PublicKey: acc.Pool, IsSigner: false, IsWritable: true},
		{PublicKey: userTokenA, IsSigner: false, IsWritable: true},
		{PublicKey: userTokenB, IsSigner: false, IsWritable: true},
		{PublicKey: acc.VaultA, IsSigner: false, IsWritable: true},
		{PublicKey: acc.VaultB, IsSigner: false, IsWritable: true},
		{PublicKey: mintA, IsSigner: false, IsWritable: false},
		{PublicKey: mintB, IsSigner: false, IsWritable: false},
		{PublicKey: solana.TokenProgramID, IsSigner: false, IsWritable: false},
		{PublicKey: solana.TokenProgramID, IsSigner: false, IsWritable: false},
		{PublicKey: acc.EventAuthority, IsSigner: false, IsWritable: false},
		{PublicKey: acc.Program, IsSigner: false, IsWritable: false},
	}

	return solana.NewInstruction(acc.Program, accounts, buf.Bytes()), nil
}
