package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap — сочетания клавиш приложения.
type KeyMap struct {
	// Global navigation
	Quit key.Binding
	Back key.Binding
	Help key.Binding

	Up       key.Binding
	Down     key.Binding
	Enter    key.Binding
	Tab      key.Binding
	ShiftTab key.Binding

	// Launch form
	Submit         key.Binding
	TogglePlatform key.Binding
	QuickAmount1   key.Binding
	QuickAmount3   key.Binding
	QuickAmount5   key.Binding
	PreviewImage   key.Binding

	// Feed and ledger
	Refresh key.Binding
	Launch  key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),

		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "next field"),
		),
		ShiftTab: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab", "prev field"),
		),

		Submit: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "launch"),
		),
		TogglePlatform: key.NewBinding(
			key.WithKeys("ctrl+p"),
			key.WithHelp("ctrl+p", "platform"),
		),
		QuickAmount1: key.NewBinding(
			key.WithKeys("alt+1"),
			key.WithHelp("alt+1", "1 SOL"),
		),
		QuickAmount3: key.NewBinding(
			key.WithKeys("alt+3"),
			key.WithHelp("alt+3", "3 SOL"),
		),
		QuickAmount5: key.NewBinding(
			key.WithKeys("alt+5"),
			key.WithHelp("alt+5", "5 SOL"),
		),
		PreviewImage: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("ctrl+o", "load image"),
		),

		Refresh: key.NewBinding(
			key.WithKeys("r", "f5"),
			key.WithHelp("r/F5", "refresh"),
		),
		Launch: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "launch token"),
		),
	}
}

// ContextualHelp возвращает подсказки для экрана.
func (k KeyMap) ContextualHelp(route Route) []key.Binding {
	switch route {
	case RouteMenu:
		return []key.Binding{k.Up, k.Down, k.Enter, k.Quit}
	case RouteFeed:
		return []key.Binding{k.Up, k.Down, k.Enter, k.Refresh, k.Back, k.Quit}
	case RouteLaunch:
		return []key.Binding{k.Tab, k.ShiftTab, k.TogglePlatform, k.QuickAmount1, k.QuickAmount3, k.QuickAmount5, k.PreviewImage, k.Submit, k.Back}
	case RouteLedger:
		return []key.Binding{k.Up, k.Down, k.Enter, k.Refresh, k.Launch, k.Back, k.Quit}
	default:
		return []key.Binding{k.Help, k.Quit}
	}
}
