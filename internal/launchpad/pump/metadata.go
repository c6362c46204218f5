// internal/launchpad/pump/metadata.go
package pump

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/rovshanmuradov/token-launcher/internal/image"
	"go.uber.org/zap"
)

// ErrImageRequired — для пина метаданных нужна картинка.
var ErrImageRequired = errors.New("image required")

// TokenMetadata — поля формы, отправляемые в IPFS.
type TokenMetadata struct {
	Name        string
	Symbol      string
	Description string
	Twitter     string
	Telegram    string
	Website     string
	Image       image.Image
}

// PinnedMetadata — ответ сервиса: содержимое и URI метаданных.
type PinnedMetadata struct {
	Metadata    json.RawMessage `json:"metadata"`
	MetadataURI string          `json:"metadataUri"`
}

// MetadataClient загружает картинку и метаданные токена в IPFS через pump.fun.
type MetadataClient struct {
	url    string
	http   *http.Client
	logger *zap.Logger
}

func NewMetadataClient(url string, client *http.Client, logger *zap.Logger) *MetadataClient {
	if url == "" {
		url = DefaultIPFSURL
	}
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &MetadataClient{url: url, http: client, logger: logger.Named("pump-ipfs")}
}

// Pin отправляет форму и возвращает URI метаданных.
func (c *MetadataClient) Pin(ctx context.Context, md TokenMetadata) (PinnedMetadata, error) {
	if len(md.Image.Data) == 0 {
		return PinnedMetadata{}, ErrImageRequired
	}

	body, contentType, err := encodeMetadataForm(md)
	if err != nil {
		return PinnedMetadata{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, body)
	if err != nil {
		return PinnedMetadata{}, fmt.Errorf("build ipfs request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return PinnedMetadata{}, fmt.Errorf("ipfs request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return PinnedMetadata{}, fmt.Errorf("read ipfs response: %w", err)
	}
	text := string(raw)

	switch {
	case resp.StatusCode == http.StatusInternalServerError:
		if text == "" {
			text = "No error details available"
		}
		return PinnedMetadata{}, fmt.Errorf("Server error (500): %s", text)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return PinnedMetadata{}, fmt.Errorf("HTTP error! status: %d", resp.StatusCode)
	case text == "":
		return PinnedMetadata{}, errors.New("Empty response received from server")
	}

	var pinned PinnedMetadata
	if err := json.Unmarshal(raw, &pinned); err != nil {
		return PinnedMetadata{}, fmt.Errorf("Invalid JSON response: %s", text)
	}
	if strings.TrimSpace(pinned.MetadataURI) == "" {
		return PinnedMetadata{}, errors.New("metadata service did not return a metadataUri")
	}

	c.logger.Debug("Metadata pinned", zap.String("uri", pinned.MetadataURI))
	return pinned, nil
}

func encodeMetadataForm(md TokenMetadata) (io.Reader, string, error) {
	buf := new(bytes.Buffer)
	w := multipart.NewWriter(buf)

	img := md.Image
	img.Filename = "image.png"
	if err := img.WriteFormFile(w, "file", img.Filename); err != nil {
		return nil, "", err
	}

	fields := [][2]string{
		{"name", md.Name},
		{"symbol", md.Symbol},
		{"description", md.Description},
		{"twitter", md.Twitter},
		{"telegram", md.Telegram},
		{"website", md.Website},
		{"showName", "true"},
	}
	for _, f := range fields {
		if err := w.WriteField(f[0], f[1]); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", f[0], err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart: %w", err)
	}
	return buf, w.FormDataContentType(), nil
}
