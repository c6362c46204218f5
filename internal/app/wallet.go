package app

import (
	"fmt"
	"os"

	"github.com/gagliardetto/solana-go"
	"github.com/rovshanmuradov/token-launcher/internal/config"
	"github.com/rovshanmuradov/token-launcher/internal/wallet"
)

// PrivateKeyEnv — переменная с base58 приватным ключом.
const PrivateKeyEnv = "TOKEN_LAUNCHER_PRIVATE_KEY"

// PasswordFunc запрашивает пароль keyfile.
type PasswordFunc func(prompt string) ([]byte, error)

// LoadWallet выбирает источник кошелька: ключ из окружения, зашифрованный
// keyfile или адрес только для просмотра. Без источника возвращает nil.
func LoadWallet(cfg config.WalletConfig, password PasswordFunc) (wallet.Account, error) {
	if key := os.Getenv(PrivateKeyEnv); key != "" {
		w, err := wallet.NewWallet(key)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", PrivateKeyEnv, err)
		}
		return w, nil
	}

	if cfg.Keyfile != "" {
		if password == nil {
			password = wallet.PromptPassword
		}
		pass, err := password(fmt.Sprintf("Password for %s: ", cfg.Keyfile))
		if err != nil {
			return nil, err
		}
		defer clear(pass)
		w, err := wallet.LoadKeyfile(cfg.Keyfile, pass)
		if err != nil {
			return nil, err
		}
		return w, nil
	}

	if cfg.Address != "" {
		addr, err := solana.PublicKeyFromBase58(cfg.Address)
		if err != nil {
			return nil, fmt.Errorf("invalid wallet address: %w", err)
		}
		return wallet.Watch{Address: addr}, nil
	}

	return nil, nil
}
