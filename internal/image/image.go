// internal/image/image.go
package image

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"time"

	"go.uber.org/zap"
)

const (
	// maxImageBytes ограничивает размер скачиваемой картинки.
	maxImageBytes = 10 << 20

	defaultFetchTimeout = 15 * time.Second
)

// Image — бинарные данные картинки, пригодные для multipart-запросов.
type Image struct {
	Data        []byte
	Filename    string
	ContentType string
}

// SourceKind определяет, откуда берётся картинка.
type SourceKind int

const (
	SourceNone SourceKind = iota
	SourceURL
	SourceUpload
)

// Source — ссылка на картинку в форме запуска.
type Source struct {
	Kind   SourceKind
	URL    string
	Upload Image
}

func None() Source              { return Source{Kind: SourceNone} }
func FromURL(url string) Source { return Source{Kind: SourceURL, URL: url} }
func FromUpload(img Image) Source {
	return Source{Kind: SourceUpload, Upload: img}
}

// Resolution — исход Resolve: картинка либо причина недоступности.
type Resolution struct {
	image  Image
	reason string
	ok     bool
}

func Available(img Image) Resolution        { return Resolution{image: img, ok: true} }
func Unavailable(reason string) Resolution { return Resolution{reason: reason} }

// Image возвращает картинку и признак её наличия.
func (r Resolution) Image() (Image, bool) { return r.image, r.ok }

// Reason объясняет, почему картинки нет.
func (r Resolution) Reason() string { return r.reason }

// Resolver превращает Source в бинарные данные.
type Resolver struct {
	client *http.Client
	logger *zap.Logger
}

func NewResolver(client *http.Client, logger *zap.Logger) *Resolver {
	if client == nil {
		client = &http.Client{Timeout: defaultFetchTimeout}
	}
	return &Resolver{client: client, logger: logger.Named("image")}
}

// Resolve никогда не возвращает ошибку: сбои загрузки становятся Unavailable.
func (r *Resolver) Resolve(ctx context.Context, src Source) Resolution {
	switch src.Kind {
	case SourceUpload:
		if len(src.Upload.Data) == 0 {
			return Unavailable("empty upload")
		}
		return Available(src.Upload)
	case SourceURL:
		img, err := r.fetch(ctx, src.URL)
		if err != nil {
			r.logger.Warn("Image fetch failed, continuing without image",
				zap.String("url", src.URL),
				zap.Error(err))
			return Unavailable(err.Error())
		}
		return Available(img)
	default:
		return Unavailable("no image selected")
	}
}

func (r *Resolver) fetch(ctx context.Context, url string) (Image, error) {
	if url == "" {
		return Image{}, fmt.Errorf("empty image url")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Image{}, fmt.Errorf("build request: %w", err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return Image{}, fmt.Errorf("fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Image{}, fmt.Errorf("fetch image: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes+1))
	if err != nil {
		return Image{}, fmt.Errorf("read image: %w", err)
	}
	if len(data) > maxImageBytes {
		return Image{}, fmt.Errorf("image exceeds %d bytes", maxImageBytes)
	}
	if len(data) == 0 {
		return Image{}, fmt.Errorf("empty image body")
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	return Image{Data: data, Filename: "image.png", ContentType: contentType}, nil
}

// WriteFormFile добавляет картинку файловой частью field в multipart-форму.
func (img Image) WriteFormFile(w *multipart.Writer, field, defaultName string) error {
	filename := img.Filename
	if filename == "" {
		filename = defaultName
	}
	contentType := img.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, field, filename))
	h.Set("Content-Type", contentType)

	part, err := w.CreatePart(h)
	if err != nil {
		return fmt.Errorf("create %s part: %w", field, err)
	}
	if _, err := part.Write(img.Data); err != nil {
		return fmt.Errorf("write %s part: %w", field, err)
	}
	return nil
}
