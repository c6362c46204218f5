package style

import "github.com/charmbracelet/lipgloss"

var (
	Cyan    = lipgloss.Color("#00E5FF")
	Magenta = lipgloss.Color("#FF1B6B")
	Yellow  = lipgloss.Color("#FFB500")
	Green   = lipgloss.Color("#2AFFAA")
	Red     = lipgloss.Color("#FF5555")
	Blue    = lipgloss.Color("#3B82F6")
	Orange  = lipgloss.Color("#FF8A00")

	Base03 = lipgloss.Color("#1B1D23") // фон
	Base02 = lipgloss.Color("#262831")
	Base01 = lipgloss.Color("#6C7280") // приглушённый текст
	Base2  = lipgloss.Color("#ECEFF4")
	Base1  = lipgloss.Color("#B4BCC8")
)

// Palette — цвета интерфейса.
type Palette struct {
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Success   lipgloss.Color
	Error     lipgloss.Color
	Warning   lipgloss.Color
	Info      lipgloss.Color

	Background    lipgloss.Color
	BackgroundAlt lipgloss.Color
	Text          lipgloss.Color
	TextMuted     lipgloss.Color
	TextSecondary lipgloss.Color

	// Цвета площадок запуска
	Bonk lipgloss.Color
	Pump lipgloss.Color
}

func DefaultPalette() Palette {
	return Palette{
		Primary:   Cyan,
		Secondary: Magenta,
		Success:   Green,
		Error:     Red,
		Warning:   Yellow,
		Info:      Blue,

		Background:    Base03,
		BackgroundAlt: Base02,
		Text:          Base2,
		TextMuted:     Base01,
		TextSecondary: Base1,

		Bonk: Orange,
		Pump: Green,
	}
}

// PlatformColor возвращает цвет площадки по имени.
func (p Palette) PlatformColor(platform string) lipgloss.Color {
	switch platform {
	case "bonk":
		return p.Bonk
	case "pump":
		return p.Pump
	default:
		return p.TextSecondary
	}
}
