// ==================================
// File: internal/wallet/wallet.go
// ==================================
package wallet

import (
	"context"
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/mr-tron/base58"
)

// Account — подключённый кошелёк, каким его видит поток запуска.
type Account interface {
	PublicKey() solana.PublicKey
	Connected() bool
}

// Signer — кошелёк, умеющий подписывать транзакции.
type Signer interface {
	Account
	SignTransaction(ctx context.Context, tx *solana.Transaction) error
}

var ErrSignerNotInMessage = errors.New("signer is not a required signer of the message")

// Wallet представляет локальный кошелёк Solana с приватным ключом.
type Wallet struct {
	PrivateKey solana.PrivateKey
	publicKey  solana.PublicKey
}

// NewWallet создаёт новый кошелёк из base58-encoded приватного ключа.
func NewWallet(privateKeyBase58 string) (*Wallet, error) {
	privateKeyBytes, err := base58.Decode(privateKeyBase58)
	if err != nil {
		return nil, fmt.Errorf("failed to decode private key: %w", err)
	}
	if len(privateKeyBytes) != 64 {
		return nil, fmt.Errorf("invalid private key length: expected 64 bytes, got %d", len(privateKeyBytes))
	}
	return FromPrivateKey(solana.PrivateKey(privateKeyBytes)), nil
}

// FromPrivateKey оборачивает уже декодированный ключ.
func FromPrivateKey(key solana.PrivateKey) *Wallet {
	return &Wallet{PrivateKey: key, publicKey: key.PublicKey()}
}

// Generate создаёт кошелёк со свежей парой ключей.
func Generate() *Wallet {
	return FromPrivateKey(solana.NewWallet().PrivateKey)
}

func (w *Wallet) PublicKey() solana.PublicKey { return w.publicKey }

func (w *Wallet) Connected() bool { return true }

// SignTransaction заполняет слот подписи кошелька, не трогая подписи других участников.
func (w *Wallet) SignTransaction(_ context.Context, tx *solana.Transaction) error {
	return PartialSign(tx, w.PrivateKey)
}

// String возвращает строковое представление кошелька (его публичный ключ).
func (w *Wallet) String() string {
	return w.publicKey.String()
}

// Watch — кошелёк только для чтения: подключён, но подписывать не умеет.
type Watch struct {
	Address solana.PublicKey
}

func (w Watch) PublicKey() solana.PublicKey { return w.Address }

func (w Watch) Connected() bool { return !w.Address.IsZero() }

// PartialSign ставит подпись key в позицию, соответствующую его ключу в сообщении.
func PartialSign(tx *solana.Transaction, key solana.PrivateKey) error {
	required := int(tx.Message.Header.NumRequiredSignatures)
	pub := key.PublicKey()

	idx := -1
	for i := 0; i < required && i < len(tx.Message.AccountKeys); i++ {
		if tx.Message.AccountKeys[i].Equals(pub) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrSignerNotInMessage, pub)
	}

	payload, err := tx.Message.MarshalBinary()
	if err != nil {
		return fmt.Errorf("failed to serialize message: %w", err)
	}
	sig, err := key.Sign(payload)
	if err != nil {
		return fmt.Errorf("failed to sign message: %w", err)
	}

	if len(tx.Signatures) < required {
		padded := make([]solana.Signature, required)
		copy(padded, tx.Signatures)
		tx.Signatures = padded
	}
	tx.Signatures[idx] = sig
	return nil
}

// IsSignedBy сообщает, заполнен ли слот подписи для pub.
func IsSignedBy(tx *solana.Transaction, pub solana.PublicKey) bool {
	for i, key := range tx.Message.AccountKeys {
		if i >= int(tx.Message.Header.NumRequiredSignatures) || i >= len(tx.Signatures) {
			return false
		}
		if key.Equals(pub) {
			return tx.Signatures[i] != (solana.Signature{})
		}
	}
	return false
}
