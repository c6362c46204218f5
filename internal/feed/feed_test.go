package feed

import (
	"context"
	"testing"

	"github.com/rovshanmuradov/token-launcher/internal/image"
	"github.com/rovshanmuradov/token-launcher/internal/launch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockFeed(t *testing.T) {
	posts, err := Mock().Posts(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 3)

	assert.Equal(t, "@ZachWarunek", posts[0].Handle)
	assert.Equal(t, "Crypto Builder", posts[1].Author)
	assert.Equal(t, 2103, posts[2].Likes)

	// Копия: изменения не затрагивают ленту.
	posts[0].Author = "changed"
	again, _ := Mock().Posts(context.Background())
	assert.Equal(t, "Zach Warunek", again[0].Author)
}

func TestFormDefaults(t *testing.T) {
	post := Mock()[1]

	p := FormDefaults(post, "")
	assert.Equal(t, "https://x.com/CryptoBuilder/status/2", p.TwitterURL)
	assert.Equal(t, launch.PlatformPump, p.Platform)
	assert.Empty(t, p.Name)
	assert.Empty(t, p.Symbol)
	assert.Equal(t, image.SourceNone, p.Image.Kind)

	post.Image = "https://img.example/cat.png"
	p = FormDefaults(post, launch.PlatformBonk)
	assert.Equal(t, launch.PlatformBonk, p.Platform)
	assert.Equal(t, image.FromURL("https://img.example/cat.png"), p.Image)
}
