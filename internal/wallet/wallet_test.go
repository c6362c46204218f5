package wallet

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoSignerTx(t *testing.T, payer, other solana.PublicKey) *solana.Transaction {
	t.Helper()
	ix := system.NewTransferInstruction(1, other, payer).Build()
	tx, err := solana.NewTransaction([]solana.Instruction{ix}, solana.Hash{1}, solana.TransactionPayer(payer))
	require.NoError(t, err)
	return tx
}

func TestNewWallet(t *testing.T) {
	src := solana.NewWallet()
	w, err := NewWallet(base58.Encode(src.PrivateKey))
	require.NoError(t, err)
	assert.Equal(t, src.PublicKey(), w.PublicKey())
	assert.True(t, w.Connected())

	_, err = NewWallet("notbase58!!")
	assert.Error(t, err)

	_, err = NewWallet(base58.Encode([]byte{1, 2, 3}))
	assert.ErrorContains(t, err, "invalid private key length")
}

func TestPartialSignKeepsOtherSignatures(t *testing.T) {
	payer := Generate()
	mint := Generate()
	tx := twoSignerTx(t, payer.PublicKey(), mint.PublicKey())
	require.Equal(t, uint8(2), tx.Message.Header.NumRequiredSignatures)

	require.NoError(t, PartialSign(tx, mint.PrivateKey))
	assert.True(t, IsSignedBy(tx, mint.PublicKey()))
	assert.False(t, IsSignedBy(tx, payer.PublicKey()))

	require.NoError(t, payer.SignTransaction(context.Background(), tx))
	assert.True(t, IsSignedBy(tx, mint.PublicKey()))
	assert.True(t, IsSignedBy(tx, payer.PublicKey()))

	require.NoError(t, tx.VerifySignatures())
}

func TestPartialSignDeterministic(t *testing.T) {
	payer := Generate()
	other := Generate()

	a := twoSignerTx(t, payer.PublicKey(), other.PublicKey())
	b := twoSignerTx(t, payer.PublicKey(), other.PublicKey())
	require.NoError(t, PartialSign(a, payer.PrivateKey))
	require.NoError(t, PartialSign(b, payer.PrivateKey))
	assert.Equal(t, a.Signatures, b.Signatures)
}

func TestPartialSignRejectsStranger(t *testing.T) {
	payer := Generate()
	tx := twoSignerTx(t, payer.PublicKey(), Generate().PublicKey())
	err := PartialSign(tx, Generate().PrivateKey)
	assert.ErrorIs(t, err, ErrSignerNotInMessage)
}

func TestWatchWallet(t *testing.T) {
	assert.False(t, Watch{}.Connected())
	w := Watch{Address: Generate().PublicKey()}
	assert.True(t, w.Connected())

	var acct Account = w
	_, canSign := acct.(Signer)
	assert.False(t, canSign)
}

func TestKeyfileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wallet.json")
	w := Generate()

	require.NoError(t, EncryptKeyfile(path, w.PrivateKey, []byte("hunter2"), 1<<10))

	kf, err := ReadKeyfile(path)
	require.NoError(t, err)
	assert.Equal(t, w.PublicKey().String(), kf.Address)

	loaded, err := LoadKeyfile(path, []byte("hunter2"))
	require.NoError(t, err)
	assert.Equal(t, w.PublicKey(), loaded.PublicKey())

	_, err = LoadKeyfile(path, []byte("wrong"))
	assert.ErrorIs(t, err, ErrInvalidPassword)

	err = EncryptKeyfile(path, w.PrivateKey, []byte("again"), 1<<10)
	assert.ErrorIs(t, err, os.ErrExist)
}
