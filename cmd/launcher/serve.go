package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/rovshanmuradov/token-launcher/internal/api"
	"github.com/rovshanmuradov/token-launcher/internal/app"
	"github.com/rovshanmuradov/token-launcher/internal/config"
	"github.com/rovshanmuradov/token-launcher/internal/license"
	"github.com/rovshanmuradov/token-launcher/internal/utils/logger"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func runServe(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	addr := fs.String("addr", cfg.Server.Addr, "Listen address")
	if err := fs.Parse(args); err != nil {
		return err
	}

	logCfg := logger.DefaultConfig()
	logCfg.LogFile = cfg.LogFile
	logCfg.Development = cfg.DebugLogging
	log, err := logger.New(logCfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = log.Sync() }()
	logStartup(log.Logger, "serve", cfg)

	a, err := app.New(ctx, cfg, log.WithComponent("app"))
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.Warmup(ctx); err != nil {
		return err
	}

	server := api.NewServer(api.Deps{
		Registry: a.Registry,
		Images:   a.Images,
		Ledger:   a.Ledger,
		Feed:     a.Feed,
		Metrics:  a.Metrics.Handler(),
	}, log.Logger)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Run(gctx, *addr)
	})
	g.Go(func() error {
		return license.RunHeartbeat(gctx, a.License, cfg.License, license.DefaultHeartbeatInterval, log.Logger)
	})

	if err := g.Wait(); err != nil {
		log.LogError("Server stopped with error", err)
		return err
	}
	log.Info("Shutdown complete", zap.String("addr", *addr))
	return nil
}
