package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/rovshanmuradov/token-launcher/internal/app"
	"github.com/rovshanmuradov/token-launcher/internal/config"
	"github.com/rovshanmuradov/token-launcher/internal/export"
	"github.com/rovshanmuradov/token-launcher/internal/ledger"
	"go.uber.org/zap"
)

var errNoWallet = errors.New("no wallet: pass -wallet or configure one")

// resolveWallet возвращает адрес из флага или из настроенного кошелька.
func resolveWallet(cfg *config.Config, flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	acct, err := app.LoadWallet(cfg.Wallet, nil)
	if err != nil {
		return "", err
	}
	if acct == nil || !acct.Connected() {
		return "", errNoWallet
	}
	return acct.PublicKey().String(), nil
}

func runHistory(ctx context.Context, cfg *config.Config, log *zap.Logger, args []string) error {
	fs := flag.NewFlagSet("history", flag.ContinueOnError)
	walletFlag := fs.String("wallet", "", "Wallet address")
	if err := fs.Parse(args); err != nil {
		return err
	}
	logStartup(log, "history", cfg)

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
	if len(records) == 0 {
		fmt.Println("No launches yet")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tPLATFORM\tSYMBOL\tNAME\tSOL\tMINT\tEXPLORER")
	for _, rec := range records {
		date := "-"
		if t := rec.Time(); !t.IsZero() {
			date = t.Local().Format(time.DateTime)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%g\t%s\t%s\n",
			date, rec.Platform, rec.Symbol, rec.Name, rec.SolAmount, rec.Mint, rec.ExplorerURL())
	}
	if err := w.Flush(); err != nil {
		return err
	}

	summary := export.NewLaunchExporter(log).Summarize(records)
	fmt.Printf("\n%d launches, %.3f SOL spent\n", summary.TotalLaunches, summary.TotalSolSpent)
	return nil
}
