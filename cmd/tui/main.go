package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rovshanmuradov/token-launcher/internal/app"
	"github.com/rovshanmuradov/token-launcher/internal/config"
	"github.com/rovshanmuradov/token-launcher/internal/image"
	"github.com/rovshanmuradov/token-launcher/internal/launch"
	"github.com/rovshanmuradov/token-launcher/internal/ui"
	"github.com/rovshanmuradov/token-launcher/internal/ui/router"
	"github.com/rovshanmuradov/token-launcher/internal/ui/screen"
	"github.com/rovshanmuradov/token-launcher/internal/utils/logger"
	"go.uber.org/zap"
)

// AppModel — корневая модель TUI.
type AppModel struct {
	router *router.Router
	svc    *ui.Services
	width  int
	height int
}

func NewAppModel(svc *ui.Services) *AppModel {
	return &AppModel{
		router: router.New(screen.NewMenuScreen(svc)),
		svc:    svc,
	}
}

func (m *AppModel) Init() tea.Cmd {
	return tea.Batch(
		m.router.Init(),
		m.svc.ListenUpdates(),
	)
}

func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, m.router.Update(msg)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.router.CloseAll()
			return m, tea.Quit
		}

	case ui.PreviewMsg:
		// форма, запросившая превью, уже закрыта
		if _, ok := m.router.Current().(*screen.LaunchScreen); !ok {
			if msg.Handle != nil {
				msg.Handle.Release()
			}
			return m, nil
		}

	case ui.RouterMsg:
		return m, m.navigate(msg)

	case ui.TransitionMsg:
		// слушатель событий оркестратора перезапускается после каждого сообщения
		return m, tea.Batch(m.router.Update(msg), m.svc.ListenUpdates())
	}

	return m, m.router.Update(msg)
}

func (m *AppModel) navigate(msg ui.RouterMsg) tea.Cmd {
	switch msg.To {
	case ui.RouteMenu:
		return m.router.Replace(screen.NewMenuScreen(m.svc))
	case ui.RouteFeed:
		return m.router.Push(screen.NewFeedScreen(m.svc))
	case ui.RouteLaunch:
		return m.router.Push(screen.NewLaunchScreen(m.svc, msg.Post))
	case ui.RouteLedger:
		return m.router.Push(screen.NewLedgerScreen(m.svc))
	default:
		return nil
	}
}

func (m *AppModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}
	return m.router.View()
}

func main() {
	configPath := flag.String("config", "configs/config.yaml", "Path to config file")
	flag.Parse()

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Printf("Config %s not loaded (%v), using defaults", *configPath, err)
		if cfg, err = config.Default(); err != nil {
			log.Fatalf("Failed to build default config: %v", err)
		}
	}

	// Логи только в файл: консольный вывод ломает экран.
	logCfg := logger.DefaultConfig()
	logCfg.LogFile = cfg.LogFile
	logCfg.Development = cfg.DebugLogging
	logCfg.Console = false
	appLogger, err := logger.New(logCfg)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer func() {
		_ = appLogger.Sync()
	}()

	updates := ui.NewUpdateSender(0, appLogger.Logger)
	defer updates.Close()

	a, err := app.New(rootCtx, cfg, appLogger.Logger, app.WithObserver(updates.Observe))
	if err != nil {
		appLogger.Fatal("Failed to initialize launcher", zap.Error(err))
	}
	defer a.Close()

	if err := a.Warmup(rootCtx); err != nil {
		appLogger.Fatal("Startup checks failed", zap.Error(err))
	}

	acct, err := app.LoadWallet(cfg.Wallet, nil)
	if err != nil {
		appLogger.Fatal("Failed to load wallet", zap.Error(err))
	}

	svc := &ui.Services{
		Ctx:       rootCtx,
		Launcher:  a.Orchestrator,
		History:   a.Ledger,
		Feed:      a.Feed,
		Wallet:    acct,
		Previewer: a.Images,
		Updates:   updates,
		Platforms: a.Registry.List(),

		DefaultPlatform: launch.Platform(cfg.Launch.DefaultPlatform),

		NewPreviews: func() *image.Previews {
			return image.NewPreviews(appLogger.Logger)
		},
	}

	appLogger.Info("Starting token launcher TUI")

	recovery := ui.NewRecoveryHandler(appLogger.Logger, func() (tea.Model, []tea.ProgramOption) {
		return ui.NewSafeModel(NewAppModel(svc), appLogger.Logger), []tea.ProgramOption{
			tea.WithAltScreen(),
			tea.WithContext(rootCtx),
		}
	})
	if err := recovery.Run(rootCtx); err != nil {
		appLogger.Error("TUI application failed", zap.Error(err))
	}

	appLogger.Info("Shutting down TUI application")
}
