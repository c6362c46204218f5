// internal/feed/feed.go
package feed

import (
	"context"
	"fmt"
	"strings"

	"github.com/rovshanmuradov/token-launcher/internal/image"
	"github.com/rovshanmuradov/token-launcher/internal/launch"
)

// Post — запись ленты, из которой можно запустить токен.
type Post struct {
	ID        string `json:"id"`
	Author    string `json:"author"`
	Handle    string `json:"handle"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
	Likes     int    `json:"likes"`
	Retweets  int    `json:"retweets"`
	Replies   int    `json:"replies"`
	Avatar    string `json:"avatar,omitempty"`
	Image     string `json:"image,omitempty"`
}

// Source отдаёт посты ленты.
type Source interface {
	Posts(ctx context.Context) ([]Post, error)
}

// Static — фиксированная лента.
type Static []Post

func (s Static) Posts(context.Context) ([]Post, error) {
	out := make([]Post, len(s))
	copy(out, s)
	return out, nil
}

// Mock — демонстрационная лента из трёх постов.
func Mock() Static {
	return Static{
		{
			ID:        "1",
			Author:    "Zach Warunek",
			Handle:    "@ZachWarunek",
			Content:   "Just launched my new token! 🚀 The community response has been incredible. This is just the beginning of something amazing.",
			Timestamp: "2h",
			Likes:     1247,
			Retweets:  89,
			Replies:   23,
			Avatar:    "/avatars/zach.jpg",
		},
		{
			ID:        "2",
			Author:    "Crypto Builder",
			Handle:    "@CryptoBuilder",
			Content:   "Building the future of DeFi one token at a time. The possibilities are endless when you have the right tools! 💎",
			Timestamp: "4h",
			Likes:     892,
			Retweets:  156,
			Replies:   45,
			Avatar:    "/avatars/builder.jpg",
		},
		{
			ID:        "3",
			Author:    "Token Master",
			Handle:    "@TokenMaster",
			Content:   "New token launch incoming! Get ready for the next big thing in the Solana ecosystem. 🎯",
			Timestamp: "6h",
			Likes:     2103,
			Retweets:  234,
			Replies:   67,
			Avatar:    "/avatars/master.jpg",
		},
	}
}

// StatusURL — ссылка на пост в X.
func (p Post) StatusURL() string {
	return fmt.Sprintf("https://x.com/%s/status/%s", strings.TrimPrefix(p.Handle, "@"), p.ID)
}

// FormDefaults — начальные значения формы запуска для выбранного поста.
// Имя и символ пользователь вводит сам.
func FormDefaults(p Post, platform launch.Platform) launch.Params {
	if platform == "" {
		platform = launch.PlatformPump
	}
	params := launch.Params{
		TwitterURL: p.StatusURL(),
		Platform:   platform,
	}
	if p.Image != "" {
		params.Image = image.FromURL(p.Image)
	}
	return params
}
