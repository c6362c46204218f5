package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, `{"rpc_url": "https://rpc.example.com"}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "https://rpc.example.com", cfg.RPCURL)
	assert.Equal(t, []string{"bonk", "pump"}, cfg.Launch.Platforms)
	assert.Equal(t, DefaultPlatform, cfg.Launch.DefaultPlatform)
	assert.True(t, cfg.Launch.ExclusivePerWallet)
	assert.Equal(t, DefaultBonkMintHost, cfg.Bonk.MintHost)
	assert.Equal(t, DefaultPumpIPFSURL, cfg.Pump.IPFSURL)
	assert.Equal(t, DefaultLedgerDriver, cfg.Ledger.Driver)
	assert.Equal(t, DefaultServerAddr, cfg.Server.Addr)
}

func TestLoadConfigNested(t *testing.T) {
	path := writeConfig(t, `{
		"rpc_url": "https://rpc.example.com",
		"launch": {"platforms": ["bonk"], "default_platform": "bonk", "exclusive_per_wallet": false},
		"ledger": {"driver": "memory"}
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"bonk"}, cfg.Launch.Platforms)
	assert.Equal(t, "bonk", cfg.Launch.DefaultPlatform)
	assert.False(t, cfg.Launch.ExclusivePerWallet)
	assert.Equal(t, "memory", cfg.Ledger.Driver)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	path := writeConfig(t, `{"rpc_url": "https://rpc.example.com"}`)
	t.Setenv("TOKEN_LAUNCHER_RPC_URL", "https://override.example.com")
	t.Setenv("TOKEN_LAUNCHER_PLATFORMS", " pump , ")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "https://override.example.com", cfg.RPCURL)
	assert.Equal(t, []string{"pump"}, cfg.Launch.Platforms)
}

func TestLoadConfigValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bad rpc scheme", `{"rpc_url": "ftp://rpc.example.com"}`},
		{"unknown platform", `{"launch": {"platforms": ["jupiter"]}}`},
		{"unknown driver", `{"ledger": {"driver": "mongo"}}`},
		{"missing dsn", `{"ledger": {"driver": "postgres", "dsn": ""}}`},
		{"negative fee", `{"pump": {"priority_fee_sol": -1}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}
