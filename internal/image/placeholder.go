package image

import (
	"fmt"
	"image/color"

	"github.com/skip2/go-qrcode"
)

const (
	PlaceholderFilename = "default-token-icon.png"
	placeholderSize     = 400
)

var (
	placeholderBackground = color.RGBA{R: 0x1f, G: 0x29, B: 0x37, A: 0xff}
	placeholderGlyph      = color.RGBA{R: 0x9c, G: 0xa3, B: 0xaf, A: 0xff}
)

// Placeholder рисует заглушку: тёмный квадрат с QR-кодом символа токена.
func Placeholder(symbol string) (Image, error) {
	content := symbol
	if content == "" {
		content = "?"
	}

	qr, err := qrcode.New(content, qrcode.Medium)
	if err != nil {
		return Image{}, fmt.Errorf("failed to create placeholder glyph: %w", err)
	}
	qr.BackgroundColor = placeholderBackground
	qr.ForegroundColor = placeholderGlyph

	png, err := qr.PNG(placeholderSize)
	if err != nil {
		return Image{}, fmt.Errorf("failed to render placeholder: %w", err)
	}

	return Image{
		Data:        png,
		Filename:    PlaceholderFilename,
		ContentType: "image/png",
	}, nil
}

// OrPlaceholder возвращает картинку из res или заглушку для symbol.
func OrPlaceholder(res Resolution, symbol string) (Image, error) {
	if img, ok := res.Image(); ok {
		return img, nil
	}
	return Placeholder(symbol)
}
