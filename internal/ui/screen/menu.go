package screen

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rovshanmuradov/token-launcher/internal/ui"
	"github.com/rovshanmuradov/token-launcher/internal/ui/router"
	"github.com/rovshanmuradov/token-launcher/internal/ui/style"
)

type menuItem struct {
	label       string
	description string
	route       ui.Route
}

// MenuScreen — стартовый экран.
type MenuScreen struct {
	svc    *ui.Services
	keyMap ui.KeyMap
	help   help.Model

	width, height int
	selected      int
	items         []menuItem
}

func NewMenuScreen(svc *ui.Services) *MenuScreen {
	return &MenuScreen{
		svc:    svc,
		keyMap: ui.DefaultKeyMap(),
		help:   help.New(),
		items: []menuItem{
			{"Feed", "Pick a post and turn it into a token", ui.RouteFeed},
			{"Launch token", "Fill in the form and launch on bonk or pump", ui.RouteLaunch},
			{"My launches", "Tokens launched by the connected wallet", ui.RouteLedger},
		},
	}
}

func (m *MenuScreen) Init() tea.Cmd { return nil }

func (m *MenuScreen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, m.keyMap.Up):
		if m.selected > 0 {
			m.selected--
		}
	case key.Matches(keyMsg, m.keyMap.Down):
		if m.selected < len(m.items)-1 {
			m.selected++
		}
	case key.Matches(keyMsg, m.keyMap.Enter):
		route := m.items[m.selected].route
		return m, navigate(ui.RouterMsg{To: route})
	}
	return m, nil
}

func (m *MenuScreen) View() string {
	var b strings.Builder
	b.WriteString(style.TitleStyle.Render("Token Launcher"))
	b.WriteString("\n")

	if addr := m.svc.WalletAddress(); addr != "" {
		b.WriteString(style.InfoStyle.Render("Wallet: " + addr))
	} else {
		b.WriteString(style.WarningStyle.Render("Wallet not connected"))
	}
	b.WriteString("\n\n")

	for i, item := range m.items {
		if i == m.selected {
			b.WriteString(style.SelectedItemStyle.Render("▶ " + item.label))
		} else {
			b.WriteString(style.ItemStyle.Render("  " + item.label))
		}
		b.WriteString("\n")
		b.WriteString(style.MutedStyle.Render("    " + item.description))
		b.WriteString("\n\n")
	}

	b.WriteString(m.help.ShortHelpView(m.keyMap.ContextualHelp(ui.RouteMenu)))
	return b.String()
}

func (m *MenuScreen) SetSize(width, height int) {
	m.width, m.height = width, height
	m.help.Width = width
}

func navigate(msg ui.RouterMsg) tea.Cmd {
	return func() tea.Msg { return msg }
}
