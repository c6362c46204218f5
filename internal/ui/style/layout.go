package style

import (
	"github.com/charmbracelet/lipgloss"
)

var palette = DefaultPalette()

// Header styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(palette.Primary).
			Bold(true).
			Margin(1, 0)

	SubHeaderStyle = lipgloss.NewStyle().
			Foreground(palette.Secondary).
			Bold(true).
			Margin(0, 0, 1, 0)
)

var (
	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(palette.TextMuted).
			Padding(1, 2)

	ActivePanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(palette.Primary).
				Padding(1, 2)
)

// List styles
var (
	ItemStyle = lipgloss.NewStyle().
			Foreground(palette.Text).
			Padding(0, 2)

	SelectedItemStyle = lipgloss.NewStyle().
				Foreground(palette.Background).
				Background(palette.Primary).
				Padding(0, 2).
				Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(palette.TextMuted)
)

// Form styles
var (
	FormLabelStyle = lipgloss.NewStyle().
			Foreground(palette.Text).
			Bold(true).
			Width(14)

	FormLabelFocusedStyle = FormLabelStyle.
				Foreground(palette.Primary)
)

// Status styles
var (
	SuccessStyle = lipgloss.NewStyle().
			Foreground(palette.Success).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(palette.Error).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(palette.Warning).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(palette.Info)

	LinkStyle = lipgloss.NewStyle().
			Foreground(palette.Info).
			Underline(true)
)

// PlatformBadge рисует метку площадки её цветом.
func PlatformBadge(platform string) string {
	return lipgloss.NewStyle().
		Foreground(palette.Background).
		Background(palette.PlatformColor(platform)).
		Padding(0, 1).
		Bold(true).
		Render(platform)
}

// AdaptiveJoinHorizontal складывает блоки вертикально на узких экранах.
func AdaptiveJoinHorizontal(width int, blocks ...string) string {
	if width < 80 {
		return lipgloss.JoinVertical(lipgloss.Left, blocks...)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, blocks...)
}
