package screen

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rovshanmuradov/token-launcher/internal/feed"
	"github.com/rovshanmuradov/token-launcher/internal/image"
	"github.com/rovshanmuradov/token-launcher/internal/launch"
	"github.com/rovshanmuradov/token-launcher/internal/ledger"
	"github.com/rovshanmuradov/token-launcher/internal/ui"
	"github.com/rovshanmuradov/token-launcher/internal/wallet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeLauncher struct {
	mu     sync.Mutex
	params []launch.Params
}

func (f *fakeLauncher) Launch(_ context.Context, _ wallet.Account, p launch.Params) launch.Attempt {
	f.mu.Lock()
	f.params = append(f.params, p)
	f.mu.Unlock()

	rec := ledger.Record{Name: p.Name, Symbol: p.Symbol, Mint: "Mint111", TxID: "sig111", Platform: string(p.Platform)}
	return launch.Attempt{State: launch.Done, Result: launch.Ok(rec), Mint: rec.Mint, Signature: rec.TxID}
}

type fakeHistory map[string][]ledger.Record

func (h fakeHistory) ReadAll(_ context.Context, w string) []ledger.Record { return h[w] }

func newServices(t *testing.T, acct wallet.Account) (*ui.Services, *fakeLauncher) {
	t.Helper()
	l := &fakeLauncher{}
	return &ui.Services{
		Launcher:  l,
		History:   fakeHistory{},
		Feed:      feed.Mock(),
		Wallet:    acct,
		Platforms: []launch.Platform{launch.PlatformBonk, launch.PlatformPump},

		NewPreviews: func() *image.Previews { return image.NewPreviews(zap.NewNop()) },
	}, l
}

// runCmd выполняет команду, раскрывая пакеты tea.Batch.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		return []tea.Msg{msg}
	}
	var out []tea.Msg
	for _, c := range batch {
		out = append(out, runCmd(c)...)
	}
	return out
}

func findMsg[T any](msgs []tea.Msg) (T, bool) {
	for _, m := range msgs {
		if v, ok := m.(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

func keyRunes(s string, alt bool) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s), Alt: alt}
}

func TestMenuNavigates(t *testing.T) {
	svc, _ := newServices(t, nil)
	m := NewMenuScreen(svc)
	assert.Contains(t, m.View(), "Wallet not connected")

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	msg, ok := findMsg[ui.RouterMsg](runCmd(cmd))
	require.True(t, ok)
	assert.Equal(t, ui.RouteLedger, msg.To)
}

func TestMenuShowsWallet(t *testing.T) {
	w := wallet.Generate()
	svc, _ := newServices(t, w)
	assert.Contains(t, NewMenuScreen(svc).View(), w.PublicKey().String())
}

func TestFeedSelectsPost(t *testing.T) {
	svc, _ := newServices(t, nil)
	f := NewFeedScreen(svc)

	posts, ok := findMsg[ui.PostsMsg](runCmd(f.Init()))
	require.True(t, ok)
	f.Update(posts)
	assert.Len(t, f.posts, 3)

	f.Update(tea.KeyMsg{Type: tea.KeyDown})
	_, cmd := f.Update(tea.KeyMsg{Type: tea.KeyEnter})
	nav, ok := findMsg[ui.RouterMsg](runCmd(cmd))
	require.True(t, ok)
	assert.Equal(t, ui.RouteLaunch, nav.To)
	require.NotNil(t, nav.Post)
	assert.Equal(t, posts.Posts[1].ID, nav.Post.ID)

	form := NewLaunchScreen(svc, nav.Post)
	assert.Equal(t, nav.Post.StatusURL(), form.inputs[fieldTwitter].Value())
	assert.Empty(t, form.inputs[fieldName].Value())
	assert.Equal(t, launch.PlatformPump, form.currentPlatform())
}

func TestLaunchFormSubmits(t *testing.T) {
	svc, launcher := newServices(t, wallet.Generate())
	s := NewLaunchScreen(svc, nil)
	s.inputs[fieldName].SetValue("Cat")
	s.inputs[fieldSymbol].SetValue("CAT")

	s.Update(keyRunes("3", true))
	assert.Equal(t, "3", s.inputs[fieldAmount].Value())

	s.Update(tea.KeyMsg{Type: tea.KeyCtrlP})
	assert.Equal(t, launch.PlatformBonk, s.currentPlatform())

	_, cmd := s.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	require.True(t, s.Launching())

	// во время запуска форма не редактируется
	s.Update(tea.KeyMsg{Type: tea.KeyCtrlP})
	assert.Equal(t, launch.PlatformBonk, s.currentPlatform())

	s.Update(ui.TransitionMsg{Transition: launch.Transition{To: launch.Broadcasting}})
	assert.Contains(t, s.View(), "broadcasting...")

	finished, ok := findMsg[ui.LaunchFinishedMsg](runCmd(cmd))
	require.True(t, ok)
	s.Update(finished)

	assert.False(t, s.Launching())
	require.Len(t, launcher.params, 1)
	p := launcher.params[0]
	assert.Equal(t, "Cat", p.Name)
	assert.Equal(t, 3.0, p.SolAmount)
	assert.Equal(t, launch.PlatformBonk, p.Platform)
	assert.Equal(t, image.SourceNone, p.Image.Kind)

	view := s.View()
	assert.Contains(t, view, "Mint111")
	assert.Contains(t, view, "https://solscan.io/tx/sig111")
}

func TestLaunchFormValidation(t *testing.T) {
	svc, launcher := newServices(t, nil)
	s := NewLaunchScreen(svc, nil)

	_, cmd := s.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.Nil(t, cmd)
	assert.False(t, s.Launching())
	assert.Contains(t, s.View(), "missing required parameters")

	s.inputs[fieldName].SetValue("Cat")
	s.inputs[fieldSymbol].SetValue("CAT")
	s.inputs[fieldAmount].SetValue("lots")
	_, err := s.Params()
	assert.ErrorContains(t, err, "invalid SOL amount")
	assert.Empty(t, launcher.params)
}

func TestLaunchFormUsesLoadedPreview(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write([]byte("pixels"))
	}))
	defer srv.Close()

	svc, _ := newServices(t, nil)
	svc.Previewer = image.NewResolver(srv.Client(), zap.NewNop())
	s := NewLaunchScreen(svc, nil)
	s.inputs[fieldName].SetValue("Cat")
	s.inputs[fieldSymbol].SetValue("CAT")
	s.inputs[fieldImageURL].SetValue(srv.URL + "/cat.png")

	_, cmd := s.Update(tea.KeyMsg{Type: tea.KeyCtrlO})
	preview, ok := findMsg[ui.PreviewMsg](runCmd(cmd))
	require.True(t, ok)
	s.Update(preview)
	assert.Contains(t, s.View(), "Image loaded")

	p, err := s.Params()
	require.NoError(t, err)
	assert.Equal(t, image.SourceUpload, p.Image.Kind)
	assert.Equal(t, []byte("pixels"), p.Image.Upload.Data)

	s.Close()
	p, err = s.Params()
	require.NoError(t, err)
	assert.Equal(t, image.SourceURL, p.Image.Kind)
}

func loadPreview(t *testing.T, s *LaunchScreen, url string) {
	t.Helper()
	s.inputs[fieldImageURL].SetValue(url)
	_, cmd := s.Update(tea.KeyMsg{Type: tea.KeyCtrlO})
	preview, ok := findMsg[ui.PreviewMsg](runCmd(cmd))
	require.True(t, ok)
	s.Update(preview)
	_, loaded := s.previewImage()
	require.True(t, loaded)
}

func TestLaunchFormPreviewIsPerForm(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write([]byte("first-post-pixels"))
	}))
	defer srv.Close()

	svc, _ := newServices(t, nil)
	svc.Previewer = image.NewResolver(srv.Client(), zap.NewNop())

	first := NewLaunchScreen(svc, nil)
	loadPreview(t, first, srv.URL+"/a.png")
	held := first.previews.Current()
	require.NotNil(t, held)

	second := NewLaunchScreen(svc, nil)
	second.inputs[fieldName].SetValue("Dog")
	second.inputs[fieldSymbol].SetValue("DOG")
	p, err := second.Params()
	require.NoError(t, err)
	assert.Equal(t, image.SourceNone, p.Image.Kind)

	first.Close()
	assert.True(t, held.Released())
	assert.Equal(t, 0, first.previews.Live())
}

func TestLaunchFormDropsPreviewOnURLEdit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("pixels"))
	}))
	defer srv.Close()

	svc, _ := newServices(t, nil)
	svc.Previewer = image.NewResolver(srv.Client(), zap.NewNop())
	s := NewLaunchScreen(svc, nil)
	s.inputs[fieldName].SetValue("Cat")
	s.inputs[fieldSymbol].SetValue("CAT")
	loadPreview(t, s, srv.URL+"/cat.png")
	held := s.previews.Current()

	for range fieldImageURL {
		s.Update(tea.KeyMsg{Type: tea.KeyTab})
	}
	require.Equal(t, fieldImageURL, s.focus)
	s.Update(keyRunes("x", false))

	assert.True(t, held.Released())
	p, err := s.Params()
	require.NoError(t, err)
	assert.Equal(t, image.SourceURL, p.Image.Kind)
	assert.Equal(t, srv.URL+"/cat.pngx", p.Image.URL)
}

func TestLaunchFormIgnoresStalePreview(t *testing.T) {
	svc, _ := newServices(t, nil)
	s := NewLaunchScreen(svc, nil)
	s.inputs[fieldImageURL].SetValue("https://example.com/new.png")

	stale := &image.Handle{}
	s.Update(ui.PreviewMsg{URL: "https://example.com/old.png", Handle: stale})

	assert.True(t, stale.Released())
	assert.Nil(t, s.previews.Current())
}

func TestLedgerWithoutWallet(t *testing.T) {
	svc, _ := newServices(t, nil)
	l := NewLedgerScreen(svc)

	records, ok := findMsg[ui.RecordsMsg](runCmd(l.Init()))
	require.True(t, ok)
	l.Update(records)
	assert.Contains(t, l.View(), "Connect your wallet")
}

func TestLedgerListsRecords(t *testing.T) {
	w := wallet.Generate()
	svc, _ := newServices(t, w)
	at := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)
	svc.History = fakeHistory{w.PublicKey().String(): {
		{Name: "Cat", Symbol: "CAT", Mint: "M2", TxID: "tx2", Platform: "pump", Timestamp: at.Add(time.Hour).Format(time.RFC3339Nano)},
		{Name: "Dog", Symbol: "DOG", Mint: "M1", TxID: "tx1", Platform: "bonk", Timestamp: at.Format(time.RFC3339Nano)},
	}}

	l := NewLedgerScreen(svc)
	records, ok := findMsg[ui.RecordsMsg](runCmd(l.Init()))
	require.True(t, ok)
	l.Update(records)

	rec, ok := l.Selected()
	require.True(t, ok)
	assert.Equal(t, "M2", rec.Mint)
	assert.Contains(t, l.View(), "https://solscan.io/tx/tx2")

	l.Update(tea.KeyMsg{Type: tea.KeyDown})
	rec, _ = l.Selected()
	assert.Equal(t, "M1", rec.Mint)
}

func TestLedgerEmpty(t *testing.T) {
	svc, _ := newServices(t, wallet.Generate())
	l := NewLedgerScreen(svc)
	records, _ := findMsg[ui.RecordsMsg](runCmd(l.Init()))
	l.Update(records)
	assert.Contains(t, l.View(), "No launches yet")
}
