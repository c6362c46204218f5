// internal/wallet/keyfile.go
package wallet

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/gagliardetto/solana-go"
	"golang.org/x/crypto/scrypt"
)

// Параметры scrypt записываются в сам файл; при чтении используются они, а не константы.
const (
	DefaultScryptN = 1 << 18
	scryptR        = 8
	scryptP        = 1
	scryptKeyLen   = 32
	saltLen        = 32
	nonceLen       = 12
)

var ErrInvalidPassword = errors.New("invalid password")

// Keyfile — зашифрованный файл с приватным ключом.
type Keyfile struct {
	Address    string `json:"address"`
	ScryptN    int    `json:"scryptN"`
	Salt       string `json:"salt"`
	Nonce      string `json:"nonce"`
	CipherText string `json:"cipherText"`
}

// EncryptKeyfile шифрует key паролем и записывает файл. Существующий непустой файл не перезаписывается.
func EncryptKeyfile(path string, key solana.PrivateKey, password []byte, scryptN int) error {
	if info, err := os.Stat(path); err == nil && info.Size() > 0 {
		return fmt.Errorf("keyfile is not empty: %w", os.ErrExist)
	}
	if scryptN <= 1 {
		scryptN = DefaultScryptN
	}

	salt := make([]byte, saltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return fmt.Errorf("failed to generate salt: %w", err)
	}
	nonce := make([]byte, nonceLen)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return fmt.Errorf("failed to generate nonce: %w", err)
	}

	aesGCM, err := newGCM(password, salt, scryptN)
	if err != nil {
		return err
	}

	kf := Keyfile{
		Address:    key.PublicKey().String(),
		ScryptN:    scryptN,
		Salt:       base64.StdEncoding.EncodeToString(salt),
		Nonce:      base64.StdEncoding.EncodeToString(nonce),
		CipherText: base64.StdEncoding.EncodeToString(aesGCM.Seal(nil, nonce, key, nil)),
	}
	data, err := json.MarshalIndent(kf, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal keyfile: %w", err)
	}
	return os.WriteFile(path, data, 0o600)
}

// LoadKeyfile расшифровывает файл и возвращает кошелёк.
func LoadKeyfile(path string, password []byte) (*Wallet, error) {
	kf, err := ReadKeyfile(path)
	if err != nil {
		return nil, err
	}

	salt, err := base64.StdEncoding.DecodeString(kf.Salt)
	if err != nil {
		return nil, fmt.Errorf("failed to decode salt: %w", err)
	}
	nonce, err := base64.StdEncoding.DecodeString(kf.Nonce)
	if err != nil {
		return nil, fmt.Errorf("failed to decode nonce: %w", err)
	}
	ciphertext, err := base64.StdEncoding.DecodeString(kf.CipherText)
	if err != nil {
		return nil, fmt.Errorf("failed to decode ciphertext: %w", err)
	}

	aesGCM, err := newGCM(password, salt, kf.ScryptN)
	if err != nil {
		return nil, err
	}
	plaintext, err := aesGCM.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrInvalidPassword
	}
	if len(plaintext) != 64 {
		clear(plaintext)
		return nil, fmt.Errorf("invalid private key length: expected 64 bytes, got %d", len(plaintext))
	}

	w := FromPrivateKey(solana.PrivateKey(plaintext))
	if w.PublicKey().String() != kf.Address {
		return nil, fmt.Errorf("keyfile address mismatch: %s", kf.Address)
	}
	return w, nil
}

// ReadKeyfile читает только заголовок файла (адрес доступен без пароля).
func ReadKeyfile(path string) (*Keyfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read keyfile: %w", err)
	}
	if len(data) == 0 {
		return nil, errors.New("keyfile is empty")
	}
	// UTF-8 BOM
	if len(data) >= 3 && data[0] == 0xEF && data[1] == 0xBB && data[2] == 0xBF {
		data = data[3:]
	}

	var kf Keyfile
	if err := json.Unmarshal(data, &kf); err != nil {
		return nil, fmt.Errorf("failed to unmarshal keyfile: %w", err)
	}
	if kf.ScryptN <= 1 {
		kf.ScryptN = DefaultScryptN
	}
	return &kf, nil
}

func newGCM(password, salt []byte, n int) (cipher.AEAD, error) {
	key, err := scrypt.Key(password, salt, n, scryptR, scryptP, scryptKeyLen)
	if err != nil {
		return nil, fmt.Errorf("failed to derive key: %w", err)
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return aesGCM, nil
}
