// ==============================================
// File: internal/launchpad/pump/instructions.go
// ==============================================
package pump

import (
	"bytes"
	"encoding/binary"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/rovshanmuradov/token-launcher/internal/blockchain"
)

// CurveAccounts — PDA, связанные с минтом и создателем.
type CurveAccounts struct {
	Mint                   solana.PublicKey
	BondingCurve           solana.PublicKey
	AssociatedBondingCurve solana.PublicKey
	Metadata               solana.PublicKey
	CreatorVault           solana.PublicKey
	EventAuthority         solana.PublicKey
}

// DeriveCurveAccounts вычисляет адреса кривой, метаданных и хранилища создателя.
func DeriveCurveAccounts(mint, creator solana.PublicKey) (CurveAccounts, error) {
	acc := CurveAccounts{Mint: mint}
	var err error

	if acc.BondingCurve, _, err = solana.FindProgramAddress(
		[][]byte{[]byte("bonding-curve"), mint.Bytes()}, ProgramID); err != nil {
		return acc, fmt.Errorf("failed to derive bonding curve: %w", err)
	}
	if acc.AssociatedBondingCurve, _, err = solana.FindAssociatedTokenAddress(acc.BondingCurve, mint); err != nil {
		return acc, fmt.Errorf("failed to derive associated bonding curve: %w", err)
	}
	if acc.Metadata, _, err = solana.FindProgramAddress(
		[][]byte{[]byte("metadata"), MetaplexProgramID.Bytes(), mint.Bytes()}, MetaplexProgramID); err != nil {
		return acc, fmt.Errorf("failed to derive metadata: %w", err)
	}
	if acc.CreatorVault, _, err = solana.FindProgramAddress(
		[][]byte{[]byte("creator-vault"), creator.Bytes()}, ProgramID); err != nil {
		return acc, fmt.Errorf("failed to derive creator vault: %w", err)
	}
	if acc.EventAuthority, _, err = solana.FindProgramAddress(
		[][]byte{[]byte("__event_authority")}, ProgramID); err != nil {
		return acc, fmt.Errorf("failed to derive event authority: %w", err)
	}
	return acc, nil
}

type createArgs struct {
	Name    string
	Symbol  string
	URI     string
	Creator solana.PublicKey
}

// BuildCreateInstruction создаёт минт, кривую и метаданные токена.
// Минт и пользователь подписывают транзакцию.
func BuildCreateInstruction(acc CurveAccounts, user solana.PublicKey, name, symbol, uri string) (solana.Instruction, error) {
	buf := new(bytes.Buffer)
	buf.Write(CreateDiscriminator)
	if err := bin.NewBorshEncoder(buf).Encode(createArgs{
		Name:    name,
		Symbol:  symbol,
		URI:     uri,
		Creator: user,
	}); err != nil {
		return nil, fmt.Errorf("encode create args: %w", err)
	}

	accounts := []*solana.AccountMeta{
		{PublicKey: acc.Mint, IsSigner: true, IsWritable: true},
		{PublicKey: MintAuthority, IsSigner: false, IsWritable: false},
		{PublicKey: acc.BondingCurve, IsSigner: false, IsWritable: true},
		{PublicKey: acc.AssociatedBondingCurve, IsSigner: false, IsWritable: true},
		{PublicKey: GlobalAddress, IsSigner: false, IsWritable: false},
		{PublicKey: MetaplexProgramID, IsSigner: false, IsWritable: false},
		{PublicKey: acc.Metadata, IsSigner: false, IsWritable: true},
		{PublicKey: user, IsSigner: true, IsWritable: true},
		{PublicKey: solana.SystemProgramID, IsSigner: false, IsWritable: false},
		{PublicKey: solana.TokenProgramID, IsSigner: false, IsWritable: false},
		{PublicKey: blockchain.AssociatedTokenProgramID, IsSigner: false, IsWritable: false},
		{PublicKey: solana.SysVarRentPubkey, IsSigner: false, IsWritable: false},
		{PublicKey: acc.EventAuthority, IsSigner: false, IsWritable: false},
		{PublicKey: ProgramID, IsSigner: false, IsWritable: false},
	}

	return solana.NewInstruction(ProgramID, accounts, buf.Bytes()), nil
}

// BuildBuyInstruction покупает amount токенов, тратя не более maxSolCost.
func BuildBuyInstruction(
	acc CurveAccounts,
	feeRecipient, user, associatedUser solana.PublicKey,
	amount, maxSolCost uint64,
) solana.Instruction {
	data := make([]byte, len(BuyDiscriminator), len(BuyDiscriminator)+16)
	copy(data, BuyDiscriminator)
	data = binary.LittleEndian.AppendUint64(data, amount)
	data = binary.LittleEndian.AppendUint64(data, maxSolCost)

	// Порядок аккаунтов задан программой
	accounts := []*solana.AccountMeta{
		{PublicKey: GlobalAddress, IsSigner: false, IsWritable: false},
		{PublicKey: feeRecipient, IsSigner: false, IsWritable: true},
		{PublicKey: acc.Mint, IsSigner: false, IsWritable: false},
		{PublicKey: acc.BondingCurve, IsSigner: false, IsWritable: true},
		{PublicKey: acc.AssociatedBondingCurve, IsSigner: false, IsWritable: true},
		{PublicKey: associatedUser, IsSigner: false, IsWritable: true},
		{PublicKey: user, IsSigner: true, IsWritable: true},
		{PublicKey: solana.SystemProgramID, IsSigner: false, IsWritable: false},
		{PublicKey: solana.TokenProgramID, IsSigner: false, IsWritable: false},
		{PublicKey: acc.CreatorVault, IsSigner: false, IsWritable: true},
		{PublicKey: acc.EventAuthority, IsSigner: false, IsWritable: false},
		{PublicKey: ProgramID, IsSigner: false, IsWritable: false},
	}

	return solana.NewInstruction(ProgramID, accounts, data)
}
