package screen

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rovshanmuradov/token-launcher/internal/ledger"
	"github.com/rovshanmuradov/token-launcher/internal/ui"
	"github.com/rovshanmuradov/token-launcher/internal/ui/router"
	"github.com/rovshanmuradov/token-launcher/internal/ui/style"
)

const connectWalletText = "Connect your wallet"

// LedgerScreen — запуски подключённого кошелька, от новых к старым.
type LedgerScreen struct {
	svc    *ui.Services
	keyMap ui.KeyMap
	help   help.Model
	table  table.Model

	width, height int
	loaded        bool
	wallet        string
	records       []ledger.Record
}

func NewLedgerScreen(svc *ui.Services) *LedgerScreen {
	t := table.New(
		table.WithColumns(ledgerColumns()),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	return &LedgerScreen{
		svc:    svc,
		keyMap: ui.DefaultKeyMap(),
		help:   help.New(),
		table:  t,
	}
}

func ledgerColumns() []table.Column {
	return []table.Column{
		{Title: "Name", Width: 18},
		{Title: "Symbol", Width: 10},
		{Title: "Platform", Width: 8},
		{Title: "SOL", Width: 6},
		{Title: "Date", Width: 16},
		{Title: "Mint", Width: 44},
	}
}

func (l *LedgerScreen) Init() tea.Cmd {
	return l.svc.LoadRecordsCmd()
}

func (l *LedgerScreen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case ui.RecordsMsg:
		l.loaded = true
		l.wallet = msg.Wallet
		l.records = msg.Records
		l.table.SetRows(recordRows(msg.Records))
		l.table.SetCursor(0)
		return l, nil

	case ui.LaunchFinishedMsg:
		if msg.Attempt.Result.IsOk() {
			return l, l.svc.LoadRecordsCmd()
		}
		return l, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, l.keyMap.Refresh):
			return l, l.svc.LoadRecordsCmd()
		case key.Matches(msg, l.keyMap.Launch):
			return l, navigate(ui.RouterMsg{To: ui.RouteLaunch})
		}
	}

	var cmd tea.Cmd
	l.table, cmd = l.table.Update(msg)
	return l, cmd
}

func recordRows(records []ledger.Record) []table.Row {
	rows := make([]table.Row, 0, len(records))
	for _, rec := range records {
		date := "-"
		if t := rec.Time(); !t.IsZero() {
			date = t.Local().Format("2006-01-02 15:04")
		}
		rows = append(rows, table.Row{
			rec.Name,
			rec.Symbol,
			rec.Platform,
			fmt.Sprintf("%g", rec.SolAmount),
			date,
			rec.Mint,
		})
	}
	return rows
}

// Selected возвращает запись под курсором.
func (l *LedgerScreen) Selected() (ledger.Record, bool) {
	i := l.table.Cursor()
	if i < 0 || i >= len(l.records) {
		return ledger.Record{}, false
	}
	return l.records[i], true
}

func (l *LedgerScreen) View() string {
	var b strings.Builder
	b.WriteString(style.TitleStyle.Render("My launches"))
	b.WriteString("\n")

	switch {
	case !l.loaded:
		b.WriteString(style.MutedStyle.Render("Loading..."))
	case l.wallet == "":
		b.WriteString(style.WarningStyle.Render(connectWalletText))
	case len(l.records) == 0:
		b.WriteString(style.MutedStyle.Render("No launches yet"))
	default:
		b.WriteString(style.MutedStyle.Render(l.wallet))
		b.WriteString("\n")
		b.WriteString(l.table.View())
		if rec, ok := l.Selected(); ok {
			b.WriteString("\n")
			b.WriteString(l.renderDetail(rec))
		}
	}

	b.WriteString("\n\n")
	b.WriteString(l.help.ShortHelpView(l.keyMap.ContextualHelp(ui.RouteLedger)))
	return b.String()
}

func (l *LedgerScreen) renderDetail(rec ledger.Record) string {
	lines := []string{
		style.PlatformBadge(rec.Platform) + " " + rec.Name + " (" + rec.Symbol + ")",
		"Tx: " + style.LinkStyle.Render(rec.ExplorerURL()),
	}
	if rec.Description != "" {
		lines = append(lines, style.MutedStyle.Render(rec.Description))
	}
	if rec.MetadataLink != "" {
		lines = append(lines, "Metadata: "+rec.MetadataLink)
	}
	return strings.Join(lines, "\n")
}

func (l *LedgerScreen) SetSize(width, height int) {
	l.width, l.height = width, height
	l.help.Width = width
	if height > 14 {
		l.table.SetHeight(height - 14)
	}
}
