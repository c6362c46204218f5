// =================================
// File: internal/config/config.go
// =================================
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

type Config struct {
	License      string `mapstructure:"license"`
	RPCURL       string `mapstructure:"rpc_url"`
	DebugLogging bool   `mapstructure:"debug_logging"`
	LogFile      string `mapstructure:"log_file"`

	Launch LaunchConfig `mapstructure:"launch"`
	Bonk   BonkConfig   `mapstructure:"bonk"`
	Pump   PumpConfig   `mapstructure:"pump"`
	Ledger LedgerConfig `mapstructure:"ledger"`
	Server ServerConfig `mapstructure:"server"`
	Wallet WalletConfig `mapstructure:"wallet"`
	Keygen KeygenConfig `mapstructure:"keygen"`
}

type LaunchConfig struct {
	Platforms          []string `mapstructure:"platforms"`
	DefaultPlatform    string   `mapstructure:"default_platform"`
	ExclusivePerWallet bool     `mapstructure:"exclusive_per_wallet"`
}

type BonkConfig struct {
	MintHost    string `mapstructure:"mint_host"`
	PlatformID  string `mapstructure:"platform_id"`
	FetchConfig bool   `mapstructure:"fetch_config"`
}

type PumpConfig struct {
	IPFSURL        string  `mapstructure:"ipfs_url"`
	PriorityFeeSol float64 `mapstructure:"priority_fee_sol"`
}

// LedgerConfig выбирает хранилище истории запусков.
type LedgerConfig struct {
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

type WalletConfig struct {
	Keyfile string `mapstructure:"keyfile"`
	Address string `mapstructure:"address"`
}

type KeygenConfig struct {
	Account string `mapstructure:"account"`
	Product string `mapstructure:"product"`
	Token   string `mapstructure:"token"`
}

const (
	DefaultRPCURL         = "https://api.mainnet-beta.solana.com"
	DefaultLogFile        = "launcher.log"
	DefaultPlatform       = "pump"
	DefaultBonkMintHost   = "https://launch-mint-v1.raydium.io"
	DefaultBonkPlatformID = "8pCtbn9iatQ8493mDQax4xfEUjhoVBpUWYVQoRU18333"
	DefaultPumpIPFSURL    = "https://pump.fun/api/ipfs"
	DefaultPriorityFeeSol = 0.001
	DefaultLedgerDriver   = "sqlite"
	DefaultLedgerDSN      = "launches.db"
	DefaultServerAddr     = ":8080"

	envPrefix = "TOKEN_LAUNCHER"
)

var knownPlatforms = map[string]bool{"bonk": true, "pump": true}

var knownDrivers = map[string]bool{"memory": true, "sqlite": true, "postgres": true}

// LoadConfig читает JSON/YAML файл конфигурации и применяет переменные окружения.
func LoadConfig(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return decode(v)
}

// Default возвращает конфигурацию без файла: только значения по умолчанию и окружение.
func Default() (*Config, error) {
	return decode(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()

	defaults := map[string]interface{}{
		"rpc_url":                     DefaultRPCURL,
		"log_file":                    DefaultLogFile,
		"launch.platforms":            []string{"bonk", "pump"},
		"launch.default_platform":     DefaultPlatform,
		"launch.exclusive_per_wallet": true,
		"bonk.mint_host":              DefaultBonkMintHost,
		"bonk.platform_id":            DefaultBonkPlatformID,
		"bonk.fetch_config":           true,
		"pump.ipfs_url":               DefaultPumpIPFSURL,
		"pump.priority_fee_sol":       DefaultPriorityFeeSol,
		"ledger.driver":               DefaultLedgerDriver,
		"ledger.dsn":                  DefaultLedgerDSN,
		"server.addr":                 DefaultServerAddr,
		"wallet.keyfile":              "",
		"wallet.address":              "",
	}
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	loadEnvironmentVariables(v, &cfg)
	return &cfg, validateConfig(&cfg)
}

func validateConfig(cfg *Config) error {
	if cfg.RPCURL == "" {
		return errors.New("rpc_url is empty")
	}
	if err := validateURLWithCache(cfg.RPCURL, "http"); err != nil {
		return errors.New("invalid RPC URL protocol")
	}
	if err := validateURLWithCache(cfg.Bonk.MintHost, "http"); err != nil {
		return errors.New("invalid bonk.mint_host")
	}
	if err := validateURLWithCache(cfg.Pump.IPFSURL, "http"); err != nil {
		return errors.New("invalid pump.ipfs_url")
	}
	if len(cfg.Launch.Platforms) == 0 {
		return errors.New("launch.platforms is empty")
	}
	for _, p := range cfg.Launch.Platforms {
		if !knownPlatforms[p] {
			return fmt.Errorf("unknown platform %q", p)
		}
	}
	if !knownPlatforms[cfg.Launch.DefaultPlatform] {
		return fmt.Errorf("unknown default platform %q", cfg.Launch.DefaultPlatform)
	}
	if !knownDrivers[cfg.Ledger.Driver] {
		return fmt.Errorf("unknown ledger driver %q", cfg.Ledger.Driver)
	}
	if cfg.Ledger.Driver != "memory" && cfg.Ledger.DSN == "" {
		return errors.New("ledger.dsn is required")
	}
	if cfg.Pump.PriorityFeeSol < 0 {
		return errors.New("invalid pump.priority_fee_sol")
	}
	return nil
}

var urlCache sync.Map

func validateURLWithCache(rawURL string, protocol string) error {
	if _, ok := urlCache.Load(rawURL); ok {
		return nil
	}
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return errors.New("invalid URL format")
	}
	if !strings.HasPrefix(parsed.Scheme, protocol) {
		return errors.New("invalid URL protocol")
	}
	urlCache.Store(rawURL, parsed)
	return nil
}

// loadEnvironmentVariables дополняет то, что AutomaticEnv не умеет: списки через запятую.
func loadEnvironmentVariables(v *viper.Viper, cfg *Config) {
	envPlatforms := v.GetString("PLATFORMS")
	if envPlatforms == "" {
		return
	}
	var clean []string
	for _, p := range strings.Split(envPlatforms, ",") {
		if p = strings.ToLower(strings.TrimSpace(p)); p != "" {
			clean = append(clean, p)
		}
	}
	if len(clean) > 0 {
		cfg.Launch.Platforms = clean
	}
}
