// ====================================
// File: cmd/launcher/main.go
// ====================================
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rovshanmuradov/token-launcher/internal/config"
	"github.com/rovshanmuradov/token-launcher/internal/logger"
	"go.uber.org/zap"
)

const usage = `Usage: launcher [-config path] <command> [flags]

Commands:
  serve    run the HTTP API
  launch   launch a token from the command line
  history  print launches of a wallet
  export   export launches of a wallet to CSV or JSON
`

var errUsage = errors.New("usage")

func main() {
	configPath := flag.String("config", "configs/config.yaml", "Path to config file")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *configPath, flag.Args()); err != nil {
		if errors.Is(err, errUsage) {
			flag.Usage()
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, configPath string, args []string) error {
	if len(args) == 0 {
		return errUsage
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "serve":
		return runServe(ctx, cfg, rest)
	case "launch", "history", "export":
		log, err := logger.CreatePrettyLogger(cfg.DebugLogging)
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		defer func() { _ = log.Sync() }()

		switch cmd {
		case "launch":
			return runLaunch(ctx, cfg, log, rest)
		case "history":
			return runHistory(ctx, cfg, log, rest)
		default:
			return runExport(ctx, cfg, log, rest)
		}
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
	}
}

// loadConfig читает файл, а при его отсутствии берёт значения по умолчанию.
func loadConfig(path string) (*config.Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return config.Default()
	}
	return config.LoadConfig(path)
}

func logStartup(log *zap.Logger, cmd string, cfg *config.Config) {
	log.Debug("Command starting",
		zap.String("command", cmd),
		zap.String("rpc", cfg.RPCURL),
		zap.String("ledger", cfg.Ledger.Driver))
}
