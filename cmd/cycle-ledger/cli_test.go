package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"gopkg.in/yaml.v3"

	"cycle-ledger/core"
	"cycle-ledger/pkg/config"
)

// resetCLI rewinds the package-level engine singleton so each test opens its
// own WAL under a fresh temp directory instead of sharing state.
func resetCLI(t *testing.T) core.Principal {
	t.Helper()
	owner := core.NewPrincipal([]byte("cli-owner-fixture"))
	t.Setenv("TOKEN_OWNER", owner.Hex())
	t.Setenv("TOKEN_INITIAL_SUPPLY", "1000000")
	t.Setenv("LEDGER_WAL_PATH", filepath.Join(t.TempDir(), "cli.wal"))
	clgEngine = nil
	clgOnce = sync.Once{}
	t.Cleanup(func() {
		if clgEngine != nil {
			clgEngine.Ledger.Close()
		}
	})
	return owner
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestCLITransferAndBalance(t *testing.T) {
	owner := resetCLI(t)
	bob := core.NewPrincipal([]byte("cli-bob-fixture"))

	if _, err := runCLI(t, "transfer", "--caller", owner.Hex(), "--to", bob.Hex(), "--amt", "100"); err != nil {
		t.Fatalf("transfer: %v", err)
	}

	out, err := runCLI(t, "balance", "--principal", bob.Hex())
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if strings.TrimSpace(out) != "100" {
		t.Fatalf("balance output = %q, want 100", out)
	}
}

func TestCLIMintRequiresOwner(t *testing.T) {
	resetCLI(t)
	bob := core.NewPrincipal([]byte("cli-bob-fixture"))
	intruder := core.NewPrincipal([]byte("cli-intruder-fixture"))

	if _, err := runCLI(t, "mint", "--caller", intruder.Hex(), "--to", bob.Hex(), "--amt", "10"); err == nil {
		t.Fatal("expected mint by non-owner to fail")
	}
}

func TestCLIBidCyclesTooSmall(t *testing.T) {
	resetCLI(t)
	bob := core.NewPrincipal([]byte("cli-bob-fixture"))

	if _, err := runCLI(t, "bid-cycles", "--caller", bob.Hex(), "--cycles", "1"); err == nil {
		t.Fatal("expected bid below the minimum to fail")
	}
}

func TestCLISetFeeRequiresOwner(t *testing.T) {
	owner := resetCLI(t)
	intruder := core.NewPrincipal([]byte("cli-intruder-fixture"))

	if _, err := runCLI(t, "set-fee", "--caller", intruder.Hex(), "--amt", "5"); err == nil {
		t.Fatal("expected set-fee by non-owner to fail")
	}
	if _, err := runCLI(t, "set-fee", "--caller", owner.Hex(), "--amt", "5"); err != nil {
		t.Fatalf("set-fee by owner: %v", err)
	}

	out, err := runCLI(t, "metadata")
	if err != nil {
		t.Fatalf("metadata: %v", err)
	}
	var meta core.Metadata
	if err := json.Unmarshal([]byte(out), &meta); err != nil {
		t.Fatalf("decode metadata output: %v", err)
	}
	if meta.Fee.Cmp(core.TokensFromUint64(5)) != 0 {
		t.Fatalf("fee = %s, want 5", meta.Fee)
	}
}

func TestCLIApproveAndNotify(t *testing.T) {
	owner := resetCLI(t)
	bob := core.NewPrincipal([]byte("cli-bob-fixture"))

	out, err := runCLI(t, "approve-and-notify", "--caller", owner.Hex(), "--spender", bob.Hex(), "--amt", "50")
	if err != nil {
		t.Fatalf("approve-and-notify: %v", err)
	}
	id := strings.TrimSpace(out)

	// The notification was consumed by the notify step, so a second
	// acknowledgement must be rejected.
	if _, err := runCLI(t, "consume-notification", "--caller", bob.Hex(), "--tx", id); err == nil {
		t.Fatal("expected consume-notification on an actioned tx to fail")
	}
}

func TestCLIConfigExportRoundTripsYAML(t *testing.T) {
	t.Setenv("TOKEN_SYMBOL", "CYC")
	resetCLI(t)

	out, err := runCLI(t, "config-export")
	if err != nil {
		t.Fatalf("config-export: %v", err)
	}
	var cfg config.Config
	if err := yaml.Unmarshal([]byte(out), &cfg); err != nil {
		t.Fatalf("decode exported YAML: %v", err)
	}
	if cfg.Token.Symbol != "CYC" {
		t.Fatalf("exported Token.Symbol = %q, want CYC", cfg.Token.Symbol)
	}
	if cfg.Token.InitialSupply != "1000000" {
		t.Fatalf("exported Token.InitialSupply = %q, want 1000000", cfg.Token.InitialSupply)
	}
}

func TestCLITokenInfoReportsSymbol(t *testing.T) {
	t.Setenv("TOKEN_SYMBOL", "CYC")
	resetCLI(t)

	out, err := runCLI(t, "token-info")
	if err != nil {
		t.Fatalf("token-info: %v", err)
	}
	var info core.TokenInfo
	if err := json.Unmarshal([]byte(out), &info); err != nil {
		t.Fatalf("decode token-info output: %v", err)
	}
	if info.Metadata.Symbol != "CYC" {
		t.Fatalf("Metadata.Symbol = %q, want CYC", info.Metadata.Symbol)
	}
}
