// internal/app/app.go
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rovshanmuradov/token-launcher/internal/blockchain"
	"github.com/rovshanmuradov/token-launcher/internal/blockchain/computebudget"
	"github.com/rovshanmuradov/token-launcher/internal/blockchain/solbc"
	"github.com/rovshanmuradov/token-launcher/internal/config"
	"github.com/rovshanmuradov/token-launcher/internal/export"
	"github.com/rovshanmuradov/token-launcher/internal/feed"
	"github.com/rovshanmuradov/token-launcher/internal/image"
	"github.com/rovshanmuradov/token-launcher/internal/launch"
	"github.com/rovshanmuradov/token-launcher/internal/launchpad/bonk"
	"github.com/rovshanmuradov/token-launcher/internal/launchpad/pump"
	"github.com/rovshanmuradov/token-launcher/internal/ledger"
	"github.com/rovshanmuradov/token-launcher/internal/license"
	"github.com/rovshanmuradov/token-launcher/internal/storage"
	"github.com/rovshanmuradov/token-launcher/internal/utils/metrics"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// App связывает конфигурацию с адаптерами, хранилищем и оркестратором.
type App struct {
	Config       *config.Config
	Logger       *zap.Logger
	Chain        blockchain.Client
	Store        storage.Store
	Ledger       *ledger.Ledger
	Registry     *launch.Registry
	Orchestrator *launch.Orchestrator
	Images       *image.Resolver
	Metrics      *metrics.Collector
	Feed         feed.Source
	Exporter     *export.LaunchExporter
	License      license.Validator

	bonkCurves *bonk.Context
	pumpGlobal pump.GlobalSource
}

type options struct {
	chain     blockchain.Client
	store     storage.Store
	http      *http.Client
	observers []launch.Observer
}

type Option func(*options)

// WithChain подменяет RPC-клиент (тесты, локальный валидатор).
func WithChain(c blockchain.Client) Option { return func(o *options) { o.chain = c } }

// WithStore подменяет хранилище ledger.
func WithStore(s storage.Store) Option { return func(o *options) { o.store = s } }

func WithHTTPClient(c *http.Client) Option { return func(o *options) { o.http = c } }

// WithObserver добавляет наблюдателя переходов оркестратора.
func WithObserver(obs launch.Observer) Option {
	return func(o *options) { o.observers = append(o.observers, obs) }
}

func New(ctx context.Context, cfg *config.Config, logger *zap.Logger, opts ...Option) (*App, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.http == nil {
		o.http = &http.Client{Timeout: 30 * time.Second}
	}
	if o.chain == nil {
		o.chain = solbc.NewClient(cfg.RPCURL, logger)
	}
	if o.store == nil {
		store, err := OpenStore(ctx, cfg.Ledger, logger)
		if err != nil {
			return nil, err
		}
		o.store = store
	}

	a := &App{
		Config:   cfg,
		Logger:   logger,
		Chain:    o.chain,
		Store:    o.store,
		Ledger:   ledger.New(o.store, logger),
		Registry: launch.NewRegistry(logger),
		Images:   image.NewResolver(o.http, logger),
		Metrics:  metrics.NewCollector(),
		Feed:     feed.Mock(),
		Exporter: export.NewLaunchExporter(logger),
	}
	if cfg.License != "" {
		a.License = license.NewKeygenValidator(cfg.Keygen.Account, cfg.Keygen.Token, cfg.Keygen.Product, logger)
	}

	for _, p := range cfg.Launch.Platforms {
		adapter, err := a.newAdapter(launch.Platform(p), o.http)
		if err != nil {
			o.store.Close()
			return nil, err
		}
		if err := a.Registry.Register(adapter); err != nil {
			o.store.Close()
			return nil, err
		}
	}

	orchOpts := []launch.Option{launch.WithObserver(a.Metrics.Observe)}
	for _, obs := range o.observers {
		orchOpts = append(orchOpts, launch.WithObserver(obs))
	}
	if cfg.Launch.ExclusivePerWallet {
		orchOpts = append(orchOpts, launch.WithInFlightGuard(launch.NewInFlightGuard()))
	}
	a.Orchestrator = launch.NewOrchestrator(a.Registry, a.Images, o.chain, a.Ledger, logger, orchOpts...)

	logger.Info("Launcher initialized",
		zap.Strings("platforms", cfg.Launch.Platforms),
		zap.String("ledger", cfg.Ledger.Driver),
		zap.Bool("exclusive_per_wallet", cfg.Launch.ExclusivePerWallet))
	return a, nil
}

func (a *App) newAdapter(p launch.Platform, client *http.Client) (launch.PlatformAdapter, error) {
	switch p {
	case launch.PlatformBonk:
		loader := bonk.StaticLoader()
		if a.Config.Bonk.FetchConfig {
			loader = bonk.RPCLoader(a.Chain, bonk.DefaultConfigID)
		}
		a.bonkCurves = bonk.NewContext(loader, a.Logger)
		builder := bonk.NewLaunchLabBuilder(a.Chain, computebudget.Config{Units: computebudget.LaunchUnits}, a.Logger)
		return bonk.NewAdapter(
			a.bonkCurves,
			bonk.NewMintClient(a.Config.Bonk.MintHost, client, a.Logger),
			builder,
			a.Config.Bonk.PlatformID,
			a.Logger,
		), nil
	case launch.PlatformPump:
		a.pumpGlobal = pump.NewRPCGlobal(a.Chain, a.Logger)
		return pump.NewAdapter(
			a.pumpGlobal,
			pump.NewMetadataClient(a.Config.Pump.IPFSURL, client, a.Logger),
			a.Chain,
			computebudget.NewLaunchConfig(a.Config.Pump.PriorityFeeSol),
			a.Logger,
		), nil
	default:
		return nil, fmt.Errorf("%w: %s", launch.ErrUnsupportedPlatform, p)
	}
}

// Warmup проверяет лицензию и параллельно прогревает конфиг кривой bonk
// и аккаунт global pump. Сбой прогрева платформ не фатален.
func (a *App) Warmup(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return license.Check(gctx, a.License, a.Config.License, a.Logger)
	})
	if a.bonkCurves != nil {
		g.Go(func() error {
			a.bonkCurves.Config(gctx)
			a.Logger.Debug("Bonk curve config ready", zap.String("source", a.bonkCurves.Source()))
			return nil
		})
	}
	if a.pumpGlobal != nil {
		g.Go(func() error {
			if _, err := a.pumpGlobal.FetchGlobal(gctx); err != nil {
				a.Logger.Warn("Pump global account unavailable", zap.Error(err))
			}
			return nil
		})
	}
	return g.Wait()
}

func (a *App) Close() error {
	var errs []error
	if err := a.Store.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close store: %w", err))
	}
	return errors.Join(errs...)
}
