// internal/storage/storage.go
package storage

import (
	"context"
	"errors"
)

// ErrNotFound возвращается, когда ключа нет в хранилище.
var ErrNotFound = errors.New("storage: key not found")

// Store — ключ-значение с семантикой localStorage: значение целиком перезаписывается.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}
