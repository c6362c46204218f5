package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rovshanmuradov/token-launcher/internal/feed"
	"github.com/rovshanmuradov/token-launcher/internal/image"
	"github.com/rovshanmuradov/token-launcher/internal/launch"
	"github.com/rovshanmuradov/token-launcher/internal/ledger"
	"github.com/rovshanmuradov/token-launcher/internal/wallet"
)

// Launcher запускает токен. Реализуется launch.Orchestrator.
type Launcher interface {
	Launch(ctx context.Context, acct wallet.Account, params launch.Params) launch.Attempt
}

// History читает записи ledger.
type History interface {
	ReadAll(ctx context.Context, wallet string) []ledger.Record
}

// Previewer загружает превью картинки по URL.
type Previewer interface {
	Preview(ctx context.Context, url string) (*image.Handle, error)
}

// Services — зависимости экранов.
type Services struct {
	Ctx       context.Context
	Launcher  Launcher
	History   History
	Feed      feed.Source
	Wallet    wallet.Account
	Previewer Previewer
	Updates   *UpdateSender
	Platforms []launch.Platform

	// DefaultPlatform выбирается в новой форме; пустое значение означает pump.
	DefaultPlatform launch.Platform

	// NewPreviews создаёт хранилище превью для одной формы запуска.
	NewPreviews func() *image.Previews
}

func (s *Services) context() context.Context {
	if s.Ctx != nil {
		return s.Ctx
	}
	return context.Background()
}

// WalletAddress возвращает адрес подключённого кошелька или пустую строку.
func (s *Services) WalletAddress() string {
	if s.Wallet == nil || !s.Wallet.Connected() {
		return ""
	}
	return s.Wallet.PublicKey().String()
}

// LaunchCmd выполняет попытку запуска в фоне.
func (s *Services) LaunchCmd(params launch.Params) tea.Cmd {
	ctx := s.context()
	return func() tea.Msg {
		return LaunchFinishedMsg{Attempt: s.Launcher.Launch(ctx, s.Wallet, params)}
	}
}

// LoadRecordsCmd читает историю подключённого кошелька.
func (s *Services) LoadRecordsCmd() tea.Cmd {
	ctx := s.context()
	addr := s.WalletAddress()
	return func() tea.Msg {
		if addr == "" {
			return RecordsMsg{}
		}
		return RecordsMsg{Wallet: addr, Records: s.History.ReadAll(ctx, addr)}
	}
}

func (s *Services) LoadPostsCmd() tea.Cmd {
	ctx := s.context()
	return func() tea.Msg {
		if s.Feed == nil {
			return PostsMsg{}
		}
		posts, err := s.Feed.Posts(ctx)
		return PostsMsg{Posts: posts, Err: err}
	}
}

// PreviewCmd загружает картинку по URL для формы.
func (s *Services) PreviewCmd(url string) tea.Cmd {
	ctx := s.context()
	return func() tea.Msg {
		h, err := s.Previewer.Preview(ctx, url)
		return PreviewMsg{URL: url, Handle: h, Err: err}
	}
}

// ListenUpdates ждёт следующее событие оркестратора.
func (s *Services) ListenUpdates() tea.Cmd {
	if s.Updates == nil {
		return nil
	}
	return s.Updates.Listen()
}
