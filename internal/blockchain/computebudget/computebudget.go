// internal/blockchain/computebudget/computebudget.go
package computebudget

import (
	"bytes"
	"encoding/binary"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

var ProgramID = solana.MustPublicKeyFromBase58("ComputeBudget111111111111111111111111111111")

const (
	SetComputeUnitLimit uint8 = 2
	SetComputeUnitPrice uint8 = 3
)

type SetComputeUnitLimitInstruction struct {
	Units uint32
}

type SetComputeUnitPriceInstruction struct {
	MicroLamports uint64
}

// Профили лимита для транзакций запуска
const (
	DefaultUnits uint32 = 200_000
	LaunchUnits  uint32 = 400_000
)

// Config — лимит compute units и цена за unit.
type Config struct {
	Units     uint32
	UnitPrice uint64
}

// NewLaunchConfig строит конфиг из общей приоритетной комиссии в SOL,
// распределённой на весь лимит units.
func NewLaunchConfig(priorityFeeSol float64) Config {
	return Config{
		Units:     LaunchUnits,
		UnitPrice: PriorityFeeToUnitPrice(priorityFeeSol, LaunchUnits),
	}
}

// PriorityFeeToUnitPrice переводит комиссию в SOL в микролампорты за unit.
func PriorityFeeToUnitPrice(feeSol float64, units uint32) uint64 {
	if feeSol <= 0 || units == 0 {
		return 0
	}
	microLamports := feeSol * 1e15
	return uint64(microLamports / float64(units))
}

// BuildInstructions создаёт инструкции лимита и, при ненулевой цене, цены.
func BuildInstructions(config Config) ([]solana.Instruction, error) {
	if config.Units == 0 {
		config.Units = DefaultUnits
	}

	limit, err := (&SetComputeUnitLimitInstruction{Units: config.Units}).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build compute unit limit instruction: %w", err)
	}
	instructions := []solana.Instruction{limit}

	if config.UnitPrice > 0 {
		price, err := (&SetComputeUnitPriceInstruction{MicroLamports: config.UnitPrice}).Build()
		if err != nil {
			return nil, fmt.Errorf("failed to build compute unit price instruction: %w", err)
		}
		instructions = append(instructions, price)
	}

	return instructions, nil
}

func (instr *SetComputeUnitLimitInstruction) Build() (solana.Instruction, error) {
	buf := new(bytes.Buffer)
	enc := bin.NewBinEncoder(buf)
	if err := enc.WriteUint8(SetComputeUnitLimit); err != nil {
		return nil, err
	}
	if err := enc.WriteUint32(instr.Units, binary.LittleEndian); err != nil {
		return nil, err
	}
	return solana.NewInstruction(ProgramID, []*solana.AccountMeta{}, buf.Bytes()), nil
}

func (instr *SetComputeUnitPriceInstruction) Build() (solana.Instruction, error) {
	buf := new(bytes.Buffer)
	enc := bin.NewBinEncoder(buf)
	if err := enc.WriteUint8(SetComputeUnitPrice); err != nil {
		return nil, err
	}
	if err := enc.WriteUint64(instr.MicroLamports, binary.LittleEndian); err != nil {
		return nil, err
	}
	return solana.NewInstruction(ProgramID, []*solana.AccountMeta{}, buf.Bytes()), nil
}
