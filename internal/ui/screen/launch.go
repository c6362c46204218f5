package screen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rovshanmuradov/token-launcher/internal/feed"
	"github.com/rovshanmuradov/token-launcher/internal/image"
	"github.com/rovshanmuradov/token-launcher/internal/launch"
	"github.com/rovshanmuradov/token-launcher/internal/ui"
	"github.com/rovshanmuradov/token-launcher/internal/ui/router"
	"github.com/rovshanmuradov/token-launcher/internal/ui/style"
)

// Поля формы запуска.
const (
	fieldName = iota
	fieldSymbol
	fieldDescription
	fieldWebsite
	fieldTwitter
	fieldTelegram
	fieldImageURL
	fieldAmount
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"Name", "Symbol", "Description", "Website", "Twitter", "Telegram", "Image URL", "Buy (SOL)",
}

// LaunchScreen — форма запуска токена и ход текущей попытки.
type LaunchScreen struct {
	svc    *ui.Services
	keyMap ui.KeyMap
	help   help.Model

	width, height int
	inputs        [fieldCount]textinput.Model
	focus         int
	platform      int
	spinner       spinner.Model

	previews *image.Previews

	launching  bool
	stage      string
	formErr    string
	previewErr string
	result     *launch.Attempt
}

// NewLaunchScreen создаёт форму. Если post задан, форма заполняется по нему.
func NewLaunchScreen(svc *ui.Services, post *feed.Post) *LaunchScreen {
	s := &LaunchScreen{
		svc:     svc,
		keyMap:  ui.DefaultKeyMap(),
		help:    help.New(),
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
	}

	limits := [fieldCount]int{
		fieldName:        launch.MaxNameLength,
		fieldSymbol:      launch.MaxSymbolLength,
		fieldDescription: launch.MaxDescriptionLength,
	}
	for i := range s.inputs {
		in := textinput.New()
		in.Prompt = ""
		in.Placeholder = strings.ToLower(fieldLabels[i])
		if limits[i] > 0 {
			in.CharLimit = limits[i]
		}
		s.inputs[i] = in
	}
	s.inputs[fieldAmount].Placeholder = "0"
	s.inputs[fieldName].Focus()

	defaultPlatform := svc.DefaultPlatform
	if defaultPlatform == "" {
		defaultPlatform = launch.PlatformPump
	}
	s.platform = s.platformIndex(defaultPlatform)
	if svc.NewPreviews != nil {
		s.previews = svc.NewPreviews()
	}
	if post != nil {
		defaults := feed.FormDefaults(*post, s.currentPlatform())
		s.inputs[fieldTwitter].SetValue(defaults.TwitterURL)
		if defaults.Image.Kind == image.SourceURL {
			s.inputs[fieldImageURL].SetValue(defaults.Image.URL)
		}
	}
	return s
}

func (s *LaunchScreen) platformIndex(p launch.Platform) int {
	for i, name := range s.svc.Platforms {
		if name == p {
			return i
		}
	}
	return 0
}

func (s *LaunchScreen) currentPlatform() launch.Platform {
	if len(s.svc.Platforms) == 0 {
		return launch.PlatformPump
	}
	return s.svc.Platforms[s.platform]
}

func (s *LaunchScreen) Init() tea.Cmd { return textinput.Blink }

func (s *LaunchScreen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case ui.TransitionMsg:
		if s.launching {
			s.stage = msg.Transition.To.String()
		}
		return s, nil

	case ui.LaunchFinishedMsg:
		s.launching = false
		attempt := msg.Attempt
		s.result = &attempt
		return s, nil

	case ui.PreviewMsg:
		s.handlePreview(msg)
		return s, nil

	case spinner.TickMsg:
		if !s.launching {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *LaunchScreen) handleKey(msg tea.KeyMsg) (router.Screen, tea.Cmd) {
	if s.launching {
		return s, nil
	}

	switch {
	case key.Matches(msg, s.keyMap.Submit):
		return s, s.submit()
	case key.Matches(msg, s.keyMap.TogglePlatform):
		if n := len(s.svc.Platforms); n > 0 {
			s.platform = (s.platform + 1) % n
		}
		return s, nil
	case key.Matches(msg, s.keyMap.QuickAmount1):
		s.setAmount(launch.QuickAmounts[0])
		return s, nil
	case key.Matches(msg, s.keyMap.QuickAmount3):
		s.setAmount(launch.QuickAmounts[1])
		return s, nil
	case key.Matches(msg, s.keyMap.QuickAmount5):
		s.setAmount(launch.QuickAmounts[2])
		return s, nil
	case key.Matches(msg, s.keyMap.PreviewImage):
		url := strings.TrimSpace(s.inputs[fieldImageURL].Value())
		if url == "" || s.svc.Previewer == nil {
			return s, nil
		}
		s.previewErr = ""
		return s, s.svc.PreviewCmd(url)
	case key.Matches(msg, s.keyMap.Tab):
		return s, s.moveFocus(1)
	case key.Matches(msg, s.keyMap.ShiftTab):
		return s, s.moveFocus(-1)
	}

	before := s.inputs[fieldImageURL].Value()
	var cmd tea.Cmd
	s.inputs[s.focus], cmd = s.inputs[s.focus].Update(msg)
	if s.inputs[fieldImageURL].Value() != before {
		s.dropPreview()
	}
	return s, cmd
}

func (s *LaunchScreen) setAmount(sol float64) {
	s.inputs[fieldAmount].SetValue(strconv.FormatFloat(sol, 'f', -1, 64))
}

func (s *LaunchScreen) moveFocus(delta int) tea.Cmd {
	s.inputs[s.focus].Blur()
	s.focus = (s.focus + delta + fieldCount) % fieldCount
	return s.inputs[s.focus].Focus()
}

func (s *LaunchScreen) handlePreview(msg ui.PreviewMsg) {
	current := strings.TrimSpace(s.inputs[fieldImageURL].Value())
	if msg.URL != current {
		// превью для URL, который уже изменён
		if msg.Handle != nil {
			msg.Handle.Release()
		}
		return
	}
	if msg.Err != nil {
		s.previewErr = msg.Err.Error()
		return
	}
	if s.previews == nil {
		msg.Handle.Release()
		return
	}
	if err := s.previews.Replace(msg.Handle); err != nil {
		s.previewErr = err.Error()
	}
}

func (s *LaunchScreen) dropPreview() {
	s.previewErr = ""
	if s.previews != nil {
		s.previews.Clear()
	}
}

// Close освобождает превью формы. Вызывается при снятии экрана.
func (s *LaunchScreen) Close() {
	if s.previews != nil {
		s.previews.Close()
	}
}

// Params собирает параметры запуска из формы.
func (s *LaunchScreen) Params() (launch.Params, error) {
	value := func(i int) string { return strings.TrimSpace(s.inputs[i].Value()) }

	amount := 0.0
	if raw := value(fieldAmount); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return launch.Params{}, fmt.Errorf("invalid SOL amount %q", raw)
		}
		amount = v
	}

	params := launch.Params{
		Name:        value(fieldName),
		Symbol:      value(fieldSymbol),
		Description: value(fieldDescription),
		Website:     value(fieldWebsite),
		TwitterURL:  value(fieldTwitter),
		Telegram:    value(fieldTelegram),
		Platform:    s.currentPlatform(),
		SolAmount:   amount,
		Image:       image.None(),
	}
	if img, ok := s.previewImage(); ok {
		params.Image = image.FromUpload(img)
	} else if url := value(fieldImageURL); url != "" {
		params.Image = image.FromURL(url)
	}
	return params, params.Validate()
}

func (s *LaunchScreen) previewImage() (image.Image, bool) {
	if s.previews == nil {
		return image.Image{}, false
	}
	h := s.previews.Current()
	if h == nil {
		return image.Image{}, false
	}
	return h.Image()
}

func (s *LaunchScreen) submit() tea.Cmd {
	params, err := s.Params()
	if err != nil {
		s.formErr = err.Error()
		return nil
	}
	s.formErr = ""
	s.result = nil
	s.launching = true
	s.stage = launch.Idle.String()
	return tea.Batch(s.spinner.Tick, s.svc.LaunchCmd(params))
}

// Launching сообщает, идёт ли попытка запуска.
func (s *LaunchScreen) Launching() bool { return s.launching }

func (s *LaunchScreen) View() string {
	var b strings.Builder
	b.WriteString(style.TitleStyle.Render("Launch token"))
	b.WriteString("\n")

	b.WriteString("Platform: ")
	b.WriteString(style.PlatformBadge(string(s.currentPlatform())))
	b.WriteString("\n\n")

	for i := range s.inputs {
		label := style.FormLabelStyle
		if i == s.focus {
			label = style.FormLabelFocusedStyle
		}
		b.WriteString(label.Render(fieldLabels[i]))
		b.WriteString(s.inputs[i].View())
		b.WriteString("\n")
	}

	if img, ok := s.previewImage(); ok {
		b.WriteString(style.InfoStyle.Render(fmt.Sprintf("Image loaded: %.1f KB %s", float64(len(img.Data))/1024, img.ContentType)))
		b.WriteString("\n")
	}
	if s.previewErr != "" {
		b.WriteString(style.WarningStyle.Render("Image preview failed: " + s.previewErr))
		b.WriteString("\n")
	}
	if s.formErr != "" {
		b.WriteString(style.ErrorStyle.Render(s.formErr))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch {
	case s.launching:
		b.WriteString(s.spinner.View() + " " + stageLabel(s.stage))
	case s.result != nil:
		b.WriteString(renderAttempt(*s.result))
	}

	b.WriteString("\n\n")
	b.WriteString(s.help.ShortHelpView(s.keyMap.ContextualHelp(ui.RouteLaunch)))
	return b.String()
}

func stageLabel(stage string) string {
	return strings.ReplaceAll(stage, "_", " ") + "..."
}

func renderAttempt(a launch.Attempt) string {
	rec, ok := a.Result.Unwrap()
	if !ok {
		return style.ErrorStyle.Render("Launch failed: " + a.Result.Reason())
	}
	return strings.Join([]string{
		style.SuccessStyle.Render(fmt.Sprintf("%s (%s) launched on %s", rec.Name, rec.Symbol, rec.Platform)),
		"Mint: " + rec.Mint,
		"Tx:   " + style.LinkStyle.Render(rec.ExplorerURL()),
	}, "\n")
}

func (s *LaunchScreen) SetSize(width, height int) {
	s.width, s.height = width, height
	s.help.Width = width
	for i := range s.inputs {
		s.inputs[i].Width = max(20, width-20)
	}
}
