package ui

import (
	"github.com/rovshanmuradov/token-launcher/internal/feed"
	"github.com/rovshanmuradov/token-launcher/internal/image"
	"github.com/rovshanmuradov/token-launcher/internal/launch"
	"github.com/rovshanmuradov/token-launcher/internal/ledger"
)

// Сообщения tea для обмена между экранами и фоновыми командами.

// RouterMsg — переход на другой экран. Post задаётся при запуске из ленты.
type RouterMsg struct {
	To   Route
	Post *feed.Post
}

// TransitionMsg — смена стадии запуска, пришедшая от оркестратора.
type TransitionMsg struct {
	Transition launch.Transition
}

// LaunchFinishedMsg — итог попытки запуска.
type LaunchFinishedMsg struct {
	Attempt launch.Attempt
}

// RecordsMsg — история запусков кошелька. Пустой Wallet означает, что кошелёк не подключён.
type RecordsMsg struct {
	Wallet  string
	Records []ledger.Record
}

type PostsMsg struct {
	Posts []feed.Post
	Err   error
}

// PreviewMsg — загруженное превью картинки формы.
type PreviewMsg struct {
	URL    string
	Handle *image.Handle
	Err    error
}

type ErrorMsg struct {
	Err   error
	Title string
}

// Route — экран приложения.
type Route int

const (
	RouteMenu Route = iota
	RouteFeed
	RouteLaunch
	RouteLedger
)

func (r Route) String() string {
	switch r {
	case RouteMenu:
		return "menu"
	case RouteFeed:
		return "feed"
	case RouteLaunch:
		return "launch"
	case RouteLedger:
		return "ledger"
	default:
		return "unknown"
	}
}
