package blockchain

import (
	"encoding/base64"
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// EncodeBase64 сериализует транзакцию, оставляя пустыми слоты ещё не поставленных подписей.
func EncodeBase64(tx *solana.Transaction) (string, error) {
	required := int(tx.Message.Header.NumRequiredSignatures)
	if len(tx.Signatures) < required {
		padded := make([]solana.Signature, required)
		copy(padded, tx.Signatures)
		tx.Signatures = padded
	}

	raw, err := tx.MarshalBinary()
	if err != nil {
		return "", fmt.Errorf("serialize transaction: %w", err)
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}
