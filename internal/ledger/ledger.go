// internal/ledger/ledger.go
package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rovshanmuradov/token-launcher/internal/storage"
	"go.uber.org/zap"
)

const keyPrefix = "launchedTokens_"

// Key возвращает ключ хранилища для кошелька.
func Key(wallet string) string {
	return keyPrefix + wallet
}

// DecodeStatus — исход разбора сохранённой истории.
type DecodeStatus int

const (
	Missing DecodeStatus = iota
	Decoded
	Corrupt
)

func (s DecodeStatus) String() string {
	switch s {
	case Decoded:
		return "decoded"
	case Corrupt:
		return "corrupt"
	default:
		return "missing"
	}
}

// Decoding — результат разбора: при Missing и Corrupt Records пуст.
type Decoding struct {
	Status  DecodeStatus
	Records []Record
	Err     error
}

// Decode разбирает JSON-массив записей. Ошибка разбора не пробрасывается, а становится Corrupt.
func Decode(raw []byte) Decoding {
	if raw == nil {
		return Decoding{Status: Missing, Records: []Record{}}
	}
	var records []Record
	if err := json.Unmarshal(raw, &records); err != nil {
		return Decoding{Status: Corrupt, Records: []Record{}, Err: err}
	}
	if records == nil {
		records = []Record{}
	}
	return Decoding{Status: Decoded, Records: records}
}

// Ledger — история запусков по кошелькам, новые записи в начале.
type Ledger struct {
	store  storage.Store
	logger *zap.Logger
}

func New(store storage.Store, logger *zap.Logger) *Ledger {
	return &Ledger{store: store, logger: logger.Named("ledger")}
}

// Append вставляет запись в начало списка кошелька и сохраняет список целиком.
func (l *Ledger) Append(ctx context.Context, wallet string, rec Record) error {
	d, err := l.load(ctx, wallet)
	if err != nil {
		return err
	}

	records := make([]Record, 0, len(d.Records)+1)
	records = append(records, rec)
	records = append(records, d.Records...)

	raw, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode ledger for %s: %w", wallet, err)
	}
	if err := l.store.Put(ctx, Key(wallet), raw); err != nil {
		return fmt.Errorf("persist ledger for %s: %w", wallet, err)
	}

	l.logger.Debug("Launch recorded",
		zap.String("wallet", wallet),
		zap.String("mint", rec.Mint),
		zap.Int("total", len(records)))
	return nil
}

// ReadAll возвращает записи кошелька; при отсутствии или порче данных — пустой список.
func (l *Ledger) ReadAll(ctx context.Context, wallet string) []Record {
	d, err := l.load(ctx, wallet)
	if err != nil {
		l.logger.Warn("Ledger read failed", zap.String("wallet", wallet), zap.Error(err))
		return []Record{}
	}
	return d.Records
}

// Clear удаляет всю историю кошелька.
func (l *Ledger) Clear(ctx context.Context, wallet string) error {
	if err := l.store.Delete(ctx, Key(wallet)); err != nil {
		return fmt.Errorf("clear ledger for %s: %w", wallet, err)
	}
	return nil
}

func (l *Ledger) load(ctx context.Context, wallet string) (Decoding, error) {
	raw, err := l.store.Get(ctx, Key(wallet))
	if errors.Is(err, storage.ErrNotFound) {
		return Decode(nil), nil
	}
	if err != nil {
		return Decoding{}, fmt.Errorf("load ledger for %s: %w", wallet, err)
	}

	d := Decode(raw)
	if d.Status == Corrupt {
		l.logger.Warn("Corrupt launch history, treating as empty",
			zap.String("wallet", wallet),
			zap.Error(d.Err))
	}
	return d, nil
}
