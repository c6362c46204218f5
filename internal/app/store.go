package app

import (
	"context"
	"fmt"

	"github.com/rovshanmuradov/token-launcher/internal/config"
	"github.com/rovshanmuradov/token-launcher/internal/storage"
	"github.com/rovshanmuradov/token-launcher/internal/storage/memory"
	"github.com/rovshanmuradov/token-launcher/internal/storage/postgres"
	"github.com/rovshanmuradov/token-launcher/internal/storage/sqlite"
	"go.uber.org/zap"
)

// OpenStore открывает хранилище ledger по ledger.driver.
func OpenStore(ctx context.Context, cfg config.LedgerConfig, logger *zap.Logger) (storage.Store, error) {
	switch cfg.Driver {
	case "memory":
		return memory.New(), nil
	case "sqlite":
		s, err := sqlite.Open(cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("open sqlite ledger: %w", err)
		}
		return s, nil
	case "postgres":
		s, err := postgres.Open(ctx, cfg.DSN, logger)
		if err != nil {
			return nil, fmt.Errorf("open postgres ledger: %w", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown ledger driver %q", cfg.Driver)
	}
}
