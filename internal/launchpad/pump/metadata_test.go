package pump

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rovshanmuradov/token-launcher/internal/image"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testMetadata() TokenMetadata {
	return TokenMetadata{
		Name:        "Cat",
		Symbol:      "CAT",
		Description: "meow",
		Twitter:     "https://x.com/ZachWarunek/status/1",
		Image:       image.Image{Data: []byte("png"), Filename: "cat.png", ContentType: "image/png"},
	}
}

func TestPinSendsForm(t *testing.T) {
	var (
		form     map[string][]string
		filename string
		accept   string
		body     []byte
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		accept = r.Header.Get("Accept")
		require.NoError(t, r.ParseMultipartForm(1<<20))
		form = r.MultipartForm.Value
		f, hdr, err := r.FormFile("file")
		require.NoError(t, err)
		defer f.Close()
		filename = hdr.Filename
		body, _ = io.ReadAll(f)
		w.Write([]byte(`{"metadata":{"name":"Cat"},"metadataUri":"https://ipfs.io/ipfs/Qm1"}`))
	}))
	defer srv.Close()

	c := NewMetadataClient(srv.URL, srv.Client(), zap.NewNop())
	pinned, err := c.Pin(context.Background(), testMetadata())
	require.NoError(t, err)

	assert.Equal(t, "https://ipfs.io/ipfs/Qm1", pinned.MetadataURI)
	assert.Equal(t, "application/json", accept)
	assert.Equal(t, "image.png", filename)
	assert.Equal(t, []byte("png"), body)
	assert.Equal(t, []string{"true"}, form["showName"])
	assert.Equal(t, []string{""}, form["telegram"])
	assert.Equal(t, []string{""}, form["website"])
	assert.Equal(t, []string{"https://x.com/ZachWarunek/status/1"}, form["twitter"])
}

func TestPinErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{"500 with body", 500, "boom", "Server error (500): boom"},
		{"500 empty", 500, "", "Server error (500): No error details available"},
		{"other status", 403, "denied", "HTTP error! status: 403"},
		{"empty body", 200, "", "Empty response received from server"},
		{"bad json", 200, "<html>", "Invalid JSON response: <html>"},
		{"no uri", 200, `{"metadata":{}}`, "metadata service did not return a metadataUri"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewMetadataClient(srv.URL, srv.Client(), zap.NewNop()).Pin(context.Background(), testMetadata())
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}
}

func TestPinRequiresImage(t *testing.T) {
	c := NewMetadataClient("http://127.0.0.1:1", nil, zap.NewNop())
	md := testMetadata()
	md.Image = image.Image{}

	_, err := c.Pin(context.Background(), md)
	assert.ErrorIs(t, err, ErrImageRequired)
}
