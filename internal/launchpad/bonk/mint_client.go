// internal/launchpad/bonk/mint_client.go
package bonk

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/rovshanmuradov/token-launcher/internal/blockchain"
	"github.com/rovshanmuradov/token-launcher/internal/image"
	"go.uber.org/zap"
)

const (
	randomMintPath      = "/create/get-random-mint"
	sendTransactionPath = "/create/sendTransaction"

	ErrRegistrationFallback = "Failed to submit to Bonk platform"
)

// MintRequest — данные для запроса нового минта у сервиса площадки.
type MintRequest struct {
	Wallet      solana.PublicKey
	Name        string
	Symbol      string
	Description string
	Website     string
	Twitter     string
	ConfigID    solana.PublicKey
	PlatformID  string
	Decimals    uint8
	Pool        PoolParams
	Image       image.Image
}

// MintData — выданный адрес токена и ссылка на метаданные.
type MintData struct {
	Mint         string `json:"mint"`
	MetadataLink string `json:"metadataLink"`
}

type randomMintResponse struct {
	ID      string   `json:"id"`
	Success bool     `json:"success"`
	Msg     string   `json:"msg,omitempty"`
	Data    MintData `json:"data"`
}

type sendTransactionRequest struct {
	Txs []string `json:"txs"`
}

type sendTransactionResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
	Msg     string          `json:"msg,omitempty"`
}

// MintClient работает с сервисом минта LaunchLab.
type MintClient struct {
	host   string
	http   *http.Client
	now    func() time.Time
	logger *zap.Logger
}

func NewMintClient(host string, client *http.Client, logger *zap.Logger) *MintClient {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &MintClient{
		host:   strings.TrimRight(host, "/"),
		http:   client,
		now:    time.Now,
		logger: logger.Named("bonk-mint"),
	}
}

// RequestMint отправляет параметры токена и картинку, получая адрес минта и ссылку на метаданные.
func (c *MintClient) RequestMint(ctx context.Context, req MintRequest) (MintData, error) {
	body, contentType, err := encodeMintForm(req)
	if err != nil {
		return MintData{}, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.host+randomMintPath, body)
	if err != nil {
		return MintData{}, fmt.Errorf("build mint request: %w", err)
	}
	httpReq.Header.Set("Content-Type", contentType)
	httpReq.Header.Set("ray-token", fmt.Sprintf("token-%d", c.now().UnixMilli()))

	var resp randomMintResponse
	if err := c.do(httpReq, &resp); err != nil {
		return MintData{}, err
	}
	if !resp.Success || resp.Data.Mint == "" {
		msg := resp.Msg
		if msg == "" {
			msg = "mint service did not return a mint"
		}
		return MintData{}, errors.New(msg)
	}

	c.logger.Debug("Mint assigned",
		zap.String("mint", resp.Data.Mint),
		zap.String("metadata", resp.Data.MetadataLink))
	return resp.Data, nil
}

// SendTransaction регистрирует подписанную транзакцию на площадке.
func (c *MintClient) SendTransaction(ctx context.Context, tx *solana.Transaction) error {
	encoded, err := blockchain.EncodeBase64(tx)
	if err != nil {
		return err
	}
	payload, err := json.Marshal(sendTransactionRequest{Txs: []string{encoded}})
	if err != nil {
		return fmt.Errorf("encode registration: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.host+sendTransactionPath, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build registration request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	var resp sendTransactionResponse
	if err := c.do(httpReq, &resp); err != nil {
		return err
	}
	if !resp.Success {
		switch {
		case resp.Error != "":
			return errors.New(resp.Error)
		case resp.Msg != "":
			return errors.New(resp.Msg)
		default:
			return errors.New(ErrRegistrationFallback)
		}
	}
	return nil
}

func (c *MintClient) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", req.URL.Path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s response: %w", req.URL.Path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Debug("Mint service error",
			zap.String("path", req.URL.Path),
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", raw))
		return fmt.Errorf("request failed with status code %d", resp.StatusCode)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s response: %w", req.URL.Path, err)
	}
	return nil
}

// encodeMintForm собирает multipart-форму в порядке полей сервиса.
func encodeMintForm(req MintRequest) (io.Reader, string, error) {
	buf := new(bytes.Buffer)
	w := multipart.NewWriter(buf)

	fields := [][2]string{
		{"wallet", req.Wallet.String()},
		{"name", req.Name},
		{"symbol", req.Symbol},
		{"configId", req.ConfigID.String()},
		{"decimals", strconv.Itoa(int(req.Decimals))},
		{"supply", strconv.FormatUint(req.Pool.Supply, 10)},
		{"totalSellA", strconv.FormatUint(req.Pool.TotalSellA, 10)},
		{"totalFundRaisingB", strconv.FormatUint(req.Pool.TotalFundRaisingB, 10)},
		{"totalLockedAmount", strconv.FormatUint(req.Pool.TotalLockedAmount, 10)},
		{"cliffPeriod", strconv.FormatUint(req.Pool.CliffPeriod, 10)},
		{"unlockPeriod", strconv.FormatUint(req.Pool.UnlockPeriod, 10)},
		{"platformId", req.PlatformID},
		{"migrateType", req.Pool.MigrateType.String()},
		{"description", req.Description},
	}
	if strings.TrimSpace(req.Website) != "" {
		fields = append(fields, [2]string{"website", req.Website})
	}
	if strings.TrimSpace(req.Twitter) != "" {
		fields = append(fields, [2]string{"twitter", req.Twitter})
	}

	for _, f := range fields {
		if err := w.WriteField(f[0], f[1]); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", f[0], err)
		}
	}

	if err := req.Image.WriteFormFile(w, "file", "image.png"); err != nil {
		return nil, "", err
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart: %w", err)
	}
	return buf, w.FormDataContentType(), nil
}
