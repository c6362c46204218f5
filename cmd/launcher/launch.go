package main

import (
	"context"
	"flag"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/rovshanmuradov/token-launcher/internal/app"
	"github.com/rovshanmuradov/token-launcher/internal/blockchain/solbc"
	"github.com/rovshanmuradov/token-launcher/internal/config"
	"github.com/rovshanmuradov/token-launcher/internal/image"
	"github.com/rovshanmuradov/token-launcher/internal/launch"
	ulogger "github.com/rovshanmuradov/token-launcher/internal/utils/logger"
	"go.uber.org/zap"
)

const defaultWaitTimeout = 60 * time.Second

func runLaunch(ctx context.Context, cfg *config.Config, log *zap.Logger, args []string) error {
	fs := flag.NewFlagSet("launch", flag.ContinueOnError)
	platform := fs.String("platform", cfg.Launch.DefaultPlatform, "Launch platform (bonk|pump)")
	name := fs.String("name", "", "Token name")
	symbol := fs.String("symbol", "", "Token symbol")
	description := fs.String("description", "", "Token description")
	website := fs.String("website", "", "Website URL")
	twitter := fs.String("twitter", "", "Twitter/X URL")
	telegram := fs.String("telegram", "", "Telegram URL")
	img := fs.String("image", "", "Image URL or local file path")
	sol := fs.Float64("sol", 0, "Initial buy in SOL")
	wait := fs.Bool("wait", false, "Wait for transaction confirmation")
	waitTimeout := fs.Duration("wait-timeout", defaultWaitTimeout, "Confirmation wait limit")
	if err := fs.Parse(args); err != nil {
		return err
	}
	// correlation_id связывает все строки лога одной попытки
	log = ulogger.Wrap(log).WithOperation("launch")
	logStartup(log, "launch", cfg)

	src, err := imageSourceFlag(*img)
	if err != nil {
		return err
	}

	acct, err := app.LoadWallet(cfg.Wallet, nil)
	if err != nil {
		return err
	}

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.Warmup(ctx); err != nil {
		return err
	}

	attempt := a.Orchestrator.Launch(ctx, acct, launch.Params{
		Name:        *name,
		Symbol:      *symbol,
		Description: *description,
		Website:     *website,
		TwitterURL:  *twitter,
		Telegram:    *telegram,
		Image:       src,
		Platform:    launch.Platform(*platform),
		SolAmount:   *sol,
	})
	rec, ok := attempt.Result.Unwrap()
	if !ok {
		return fmt.Errorf("launch failed: %s", attempt.Result.Reason())
	}

	fmt.Printf("Mint:      %s\n", rec.Mint)
	fmt.Printf("Signature: %s\n", rec.TxID)
	fmt.Printf("Explorer:  %s\n", rec.ExplorerURL())

	if !*wait {
		return nil
	}

	sig, err := solana.SignatureFromBase58(attempt.Signature)
	if err != nil {
		return fmt.Errorf("parse signature: %w", err)
	}
	ulogger.Wrap(log).WithWallet(acct.PublicKey().String()).
		Info("Waiting for confirmation", zap.String("signature", attempt.Signature))
	if err := solbc.WaitForConfirmation(ctx, a.Chain, sig, *waitTimeout); err != nil {
		return fmt.Errorf("confirmation: %w", err)
	}
	fmt.Println("Confirmed")
	return nil
}

// imageSourceFlag: http(s) ссылка загружается резолвером, иначе читается локальный файл.
func imageSourceFlag(value string) (image.Source, error) {
	switch {
	case value == "":
		return image.None(), nil
	case strings.HasPrefix(value, "http://"), strings.HasPrefix(value, "https://"):
		return image.FromURL(value), nil
	}

	data, err := os.ReadFile(value)
	if err != nil {
		return image.Source{}, fmt.Errorf("read image: %w", err)
	}
	return image.FromUpload(image.Image{
		Data:        data,
		Filename:    filepath.Base(value),
		ContentType: mime.TypeByExtension(filepath.Ext(value)),
	}), nil
}
