package launch

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/rovshanmuradov/token-launcher/internal/image"
)

// Platform — имя площадки запуска.
type Platform string

const (
	PlatformBonk Platform = "bonk"
	PlatformPump Platform = "pump"
)

const (
	MaxNameLength        = 32
	MaxSymbolLength      = 10
	MaxDescriptionLength = 500

	LamportsPerSol = 1_000_000_000

	// maxLamports — 2^64, первое значение, не помещающееся в uint64.
	maxLamports = float64(1 << 64)
)

// QuickAmounts — суммы SOL, предлагаемые формой запуска.
var QuickAmounts = []float64{1, 3, 5}

var (
	ErrWalletNotConnected  = errors.New("wallet not connected")
	ErrMissingParams       = errors.New("missing required parameters")
	ErrInvalidAmount       = errors.New("sol amount must be a finite non-negative number")
	ErrUnsupportedPlatform = errors.New("unsupported platform")
	ErrLaunchInProgress    = errors.New("launch already in progress for wallet")
	ErrSigningUnsupported  = errors.New("wallet does not support signing")
)

// Params — параметры одной попытки запуска.
type Params struct {
	Name        string       `json:"name"`
	Symbol      string       `json:"symbol"`
	Description string       `json:"description,omitempty"`
	Website     string       `json:"website,omitempty"`
	TwitterURL  string       `json:"twitter,omitempty"`
	Telegram    string       `json:"telegram,omitempty"`
	Image       image.Source `json:"-"`
	Platform    Platform     `json:"platform"`
	SolAmount   float64      `json:"solAmount"`
}

// Validate проверяет обязательные поля, длины и сумму.
func (p Params) Validate() error {
	if strings.TrimSpace(p.Name) == "" || strings.TrimSpace(p.Symbol) == "" {
		return ErrMissingParams
	}
	if n := utf8.RuneCountInString(p.Name); n > MaxNameLength {
		return fmt.Errorf("name exceeds %d characters (%d)", MaxNameLength, n)
	}
	if n := utf8.RuneCountInString(p.Symbol); n > MaxSymbolLength {
		return fmt.Errorf("symbol exceeds %d characters (%d)", MaxSymbolLength, n)
	}
	if n := utf8.RuneCountInString(p.Description); n > MaxDescriptionLength {
		return fmt.Errorf("description exceeds %d characters (%d)", MaxDescriptionLength, n)
	}
	if math.IsNaN(p.SolAmount) || math.IsInf(p.SolAmount, 0) || p.SolAmount < 0 {
		return ErrInvalidAmount
	}
	if math.Round(p.SolAmount*LamportsPerSol) >= maxLamports {
		return fmt.Errorf("%w: %g SOL overflows lamports", ErrInvalidAmount, p.SolAmount)
	}
	return nil
}

// SolToLamports переводит SOL в лампорты с фиксированным множителем.
// Значения вне диапазона uint64 насыщаются: NaN и отрицательные дают 0,
// слишком большие — math.MaxUint64. Validate отклоняет оба случая заранее.
func SolToLamports(sol float64) uint64 {
	v := math.Round(sol * LamportsPerSol)
	switch {
	case !(v > 0):
		return 0
	case v >= maxLamports:
		return math.MaxUint64
	}
	return uint64(v)
}
