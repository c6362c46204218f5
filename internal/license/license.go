// internal/license/license.go
package license

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// DefaultHeartbeatInterval — период повторной проверки ключа в режиме сервера.
const DefaultHeartbeatInterval = 10 * time.Minute

// Validator — проверка лицензионного ключа.
type Validator interface {
	Validate(ctx context.Context, key string) error
	Heartbeat(ctx context.Context, key string) error
}

// Check валидирует ключ. Пустой ключ означает работу без лицензии.
func Check(ctx context.Context, v Validator, key string, logger *zap.Logger) error {
	if key == "" || v == nil {
		logger.Debug("License check skipped")
		return nil
	}
	return v.Validate(ctx, key)
}

// RunHeartbeat шлёт heartbeat с заданным периодом до отмены ctx.
// Сбой heartbeat только логируется.
func RunHeartbeat(ctx context.Context, v Validator, key string, interval time.Duration, logger *zap.Logger) error {
	if key == "" || v == nil {
		return nil
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := v.Heartbeat(ctx, key); err != nil {
				logger.Warn("License heartbeat failed", zap.Error(err))
			}
		}
	}
}
