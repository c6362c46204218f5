package ledger

import (
	"fmt"
	"time"
)

// Record — завершённый запуск токена. После создания не изменяется.
type Record struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Symbol       string  `json:"symbol"`
	Description  string  `json:"description,omitempty"`
	Mint         string  `json:"mint"`
	TxID         string  `json:"txId"`
	Platform     string  `json:"platform"`
	SolAmount    float64 `json:"solAmount"`
	Timestamp    string  `json:"timestamp"`
	Website      string  `json:"website,omitempty"`
	TwitterURL   string  `json:"twitterUrl,omitempty"`
	MetadataLink string  `json:"metadataLink,omitempty"`
}

// RecordID строит идентификатор записи из адреса токена и времени создания.
func RecordID(mint string, at time.Time) string {
	return fmt.Sprintf("%s-%d", mint, at.UnixMilli())
}

// Time разбирает Timestamp; для битых значений возвращает нулевое время.
func (r Record) Time() time.Time {
	t, err := time.Parse(time.RFC3339Nano, r.Timestamp)
	if err != nil {
		return time.Time{}
	}
	return t
}

// ExplorerURL — ссылка на транзакцию в обозревателе.
func (r Record) ExplorerURL() string {
	return "https://solscan.io/tx/" + r.TxID
}
