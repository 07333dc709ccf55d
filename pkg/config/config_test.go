package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"

	"cycle-ledger/internal/testutil"
)

const defaultYAML = `
token:
  name: Cycle Token
  symbol: CYC
  decimals: 8
  initial_supply: "1000000"
  owner: "0x0101010101010101010101010101010101010101010101010101010101"
  fee: "10"
ledger:
  wal_path: ledger.wal
  max_history: 500000
auction:
  period_seconds: 86400
  min_cycles: 10000000000000
api:
  listen_addr: ":8080"
logging:
  level: info
`

func TestLoadMergesDefaultConfig(t *testing.T) {
	sandbox, err := testutil.NewSandbox()
	if err != nil {
		t.Fatalf("NewSandbox: %v", err)
	}
	defer sandbox.Cleanup()

	configDir := filepath.Join(sandbox.Root, "config")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		t.Fatalf("mkdir config dir: %v", err)
	}
	if err := sandbox.WriteFile(filepath.Join("config", "default.yaml"), []byte(defaultYAML), 0o644); err != nil {
		t.Fatalf("write default.yaml: %v", err)
	}

	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	if err := os.Chdir(sandbox.Root); err != nil {
		t.Fatalf("Chdir: %v", err)
	}
	defer os.Chdir(wd)
	viper.Reset()

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Token.Symbol != "CYC" {
		t.Fatalf("Token.Symbol = %q, want CYC", cfg.Token.Symbol)
	}
	if cfg.Ledger.MaxHistory != 500000 {
		t.Fatalf("Ledger.MaxHistory = %d, want 500000", cfg.Ledger.MaxHistory)
	}
	if cfg.Auction.PeriodSeconds != 86400 {
		t.Fatalf("Auction.PeriodSeconds = %d, want 86400", cfg.Auction.PeriodSeconds)
	}
}
