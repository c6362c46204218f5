package launch

import (
	"context"

	"github.com/gagliardetto/solana-go"
	"github.com/rovshanmuradov/token-launcher/internal/image"
)

// BuildRequest — всё, что нужно адаптеру для сборки транзакции.
type BuildRequest struct {
	Params Params
	Wallet solana.PublicKey
	// Image — результат ImageResolver; адаптер сам решает, нужна ли заглушка.
	Image image.Resolution
}

// UnsignedLaunch — транзакция до подписи кошелька.
type UnsignedLaunch struct {
	Tx           *solana.Transaction
	Mint         string
	MetadataLink string
}

// PlatformAdapter строит неподписанную транзакцию запуска для одной площадки.
type PlatformAdapter interface {
	Platform() Platform
	BuildUnsignedLaunch(ctx context.Context, req BuildRequest) Result[UnsignedLaunch]
}

// Registrar — дополнительная возможность адаптера: регистрация подписанной
// транзакции на площадке перед отправкой в сеть.
type Registrar interface {
	RegisterSigned(ctx context.Context, tx *solana.Transaction) Result[struct{}]
}

// ImageResolver превращает image.Source в данные.
type ImageResolver interface {
	Resolve(ctx context.Context, src image.Source) image.Resolution
}
