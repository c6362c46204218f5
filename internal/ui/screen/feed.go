package screen

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rovshanmuradov/token-launcher/internal/feed"
	"github.com/rovshanmuradov/token-launcher/internal/ui"
	"github.com/rovshanmuradov/token-launcher/internal/ui/router"
	"github.com/rovshanmuradov/token-launcher/internal/ui/style"
)

// FeedScreen показывает посты ленты. Enter открывает форму запуска по посту.
type FeedScreen struct {
	svc    *ui.Services
	keyMap ui.KeyMap
	help   help.Model

	width, height int
	posts         []feed.Post
	selected      int
	loading       bool
	err           error
}

func NewFeedScreen(svc *ui.Services) *FeedScreen {
	return &FeedScreen{
		svc:     svc,
		keyMap:  ui.DefaultKeyMap(),
		help:    help.New(),
		loading: true,
	}
}

func (f *FeedScreen) Init() tea.Cmd {
	f.loading = true
	return f.svc.LoadPostsCmd()
}

func (f *FeedScreen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case ui.PostsMsg:
		f.loading = false
		f.err = msg.Err
		f.posts = msg.Posts
		if f.selected >= len(f.posts) {
			f.selected = 0
		}

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, f.keyMap.Up):
			if f.selected > 0 {
				f.selected--
			}
		case key.Matches(msg, f.keyMap.Down):
			if f.selected < len(f.posts)-1 {
				f.selected++
			}
		case key.Matches(msg, f.keyMap.Refresh):
			return f, f.Init()
		case key.Matches(msg, f.keyMap.Enter):
			if len(f.posts) == 0 {
				return f, nil
			}
			post := f.posts[f.selected]
			return f, navigate(ui.RouterMsg{To: ui.RouteLaunch, Post: &post})
		}
	}
	return f, nil
}

func (f *FeedScreen) View() string {
	var b strings.Builder
	b.WriteString(style.TitleStyle.Render("Feed"))
	b.WriteString("\n")

	switch {
	case f.loading:
		b.WriteString(style.MutedStyle.Render("Loading posts..."))
	case f.err != nil:
		b.WriteString(style.ErrorStyle.Render("Feed unavailable: " + f.err.Error()))
	case len(f.posts) == 0:
		b.WriteString(style.MutedStyle.Render("No posts"))
	default:
		for i, p := range f.posts {
			b.WriteString(f.renderPost(p, i == f.selected))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(f.help.ShortHelpView(f.keyMap.ContextualHelp(ui.RouteFeed)))
	return b.String()
}

func (f *FeedScreen) renderPost(p feed.Post, selected bool) string {
	header := fmt.Sprintf("%s %s · %s", p.Author, style.MutedStyle.Render(p.Handle), p.Timestamp)
	stats := style.MutedStyle.Render(fmt.Sprintf("♥ %d  ⟲ %d  ✉ %d", p.Likes, p.Retweets, p.Replies))
	body := lipgloss.JoinVertical(lipgloss.Left, header, p.Content, stats)

	panel := style.PanelStyle
	if selected {
		panel = style.ActivePanelStyle
	}
	if f.width > 8 {
		panel = panel.Width(f.width - 4)
	}
	return panel.Render(body)
}

func (f *FeedScreen) SetSize(width, height int) {
	f.width, f.height = width, height
	f.help.Width = width
}
