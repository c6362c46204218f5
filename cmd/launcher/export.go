package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/rovshanmuradov/token-launcher/internal/app"
	"github.com/rovshanmuradov/token-launcher/internal/config"
	"github.com/rovshanmuradov/token-launcher/internal/export"
	"github.com/rovshanmuradov/token-launcher/internal/ledger"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

func runExport(ctx context.Context, cfg *config.Config, log *zap.Logger, args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	walletFlag := fs.String("wallet", "", "Wallet address")
	format := fs.String("format", string(export.FormatCSV), "Output format (csv|json)")
	platform := fs.String("platform", "", "Only this platform (bonk|pump)")
	from := fs.String("from", "", "Start date YYYY-MM-DD")
	to := fs.String("to", "", "End date YYYY-MM-DD, inclusive")
	daily := fs.String("daily", "", "Write a daily report for YYYY-MM-DD instead")
	out := fs.String("out", "exports", "Output directory")
	if err := fs.Parse(args); err != nil {
		return err
	}
	logStartup(log, "export", cfg)

	wallet, err := resolveWallet(cfg, *walletFlag)
	if err != nil {
		return err
	}

	store, err := app.OpenStore(ctx, cfg.Ledger, log)
	if err != nil {
		return err
	}
	defer store.Close()

	records := ledger.New(store, log).ReadAll(ctx, wallet)
	exporter := export.NewLaunchExporter(log)

	if *daily != "" {
		day, err := time.ParseInLocation(dateLayout, *daily, time.Local)
		if err != nil {
			return fmt.Errorf("parse -daily: %w", err)
		}
		path, err := exporter.ExportDailyReport(records, day, *out)
		if err != nil {
			return err
		}
		if path == "" {
			fmt.Println("No launches for", *daily)
			return nil
		}
		fmt.Println(path)
		return nil
	}

	f, err := export.ParseFormat(*format)
	if err != nil {
		return err
	}
	opts := export.ExportOptions{
		Format:         f,
		PlatformFilter: *platform,
		OutputDir:      *out,
	}
	if *from != "" {
		if opts.StartTime, err = time.ParseInLocation(dateLayout, *from, time.Local); err != nil {
			return fmt.Errorf("parse -from: %w", err)
		}
	}
	if *to != "" {
		end, err := time.ParseInLocation(dateLayout, *to, time.Local)
		if err != nil {
			return fmt.Errorf("parse -to: %w", err)
		}
		opts.EndTime = end.Add(24*time.Hour - time.Nanosecond)
	}

	path, err := exporter.ExportLaunches(wallet, records, opts)
	if err != nil {
		return err
	}
	fmt.Println(path)
	return nil
}
