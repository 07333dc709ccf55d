// Command cycle-ledger is the operator CLI for a cycle-ledger token engine:
// transfers, minting, approvals, and cycle-auction administration against a
// WAL-backed ledger on disk.
package main

import (
	"fmt"
	"os"
	"sync"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"cycle-ledger/core"
)

var (
	clgEngine *core.Engine
	clgLogger = logrus.StandardLogger()
	clgOnce   sync.Once
)

var rootCmd = &cobra.Command{
	Use:           "cycle-ledger",
	Short:         "Operate a cycle-ledger token engine and its cycle auction",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		clgInitMiddleware()
		return clgOpenEngine()
	},
}

// clgInitMiddleware loads .env and sets the log level exactly once per
// process, mirroring the lazy bootstrap used by the rest of this codebase's
// command-line entry points.
func clgInitMiddleware() {
	clgOnce.Do(func() {
		_ = godotenv.Load()
		if lvl, err := logrus.ParseLevel(clgEnvOrDefault("LOG_LEVEL", "info")); err == nil {
			clgLogger.SetLevel(lvl)
		}
	})
}

func clgEnvOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// clgOpenEngine builds the engine package-level global from env-configured
// ledger paths. Every subcommand's RunE assumes clgEngine is non-nil.
func clgOpenEngine() error {
	if clgEngine != nil {
		return nil
	}
	meta := core.Metadata{
		Name:        clgEnvOrDefault("TOKEN_NAME", "Cycle Token"),
		Symbol:      clgEnvOrDefault("TOKEN_SYMBOL", "CYC"),
		Decimals:    8,
		IsTestToken: clgEnvOrDefault("TOKEN_TEST_NET", "") == "true",
	}
	if raw := clgEnvOrDefault("TOKEN_OWNER", ""); raw != "" {
		owner, err := core.ParsePrincipalHex(raw)
		if err != nil {
			return fmt.Errorf("parse TOKEN_OWNER: %w", err)
		}
		meta.Owner = owner
	}
	if raw := clgEnvOrDefault("TOKEN_INITIAL_SUPPLY", "0"); raw != "" {
		supply, err := core.TokensFromString(raw)
		if err != nil {
			return fmt.Errorf("parse TOKEN_INITIAL_SUPPLY: %w", err)
		}
		meta.TotalSupply = supply
	}

	cfg := core.LedgerConfig{
		WALPath:      clgEnvOrDefault("LEDGER_WAL_PATH", "cycle-ledger.wal"),
		SnapshotPath: clgEnvOrDefault("LEDGER_SNAPSHOT_PATH", ""),
		ArchivePath:  clgEnvOrDefault("LEDGER_ARCHIVE_PATH", ""),
	}

	engine, err := core.NewEngine(meta, cfg, core.DefaultAuctionPeriodSeconds, clgNowNanos, clgCyclesBalance)
	if err != nil {
		return fmt.Errorf("open engine: %w", err)
	}
	clgEngine = engine
	clgLogger.WithField("wal", cfg.WALPath).Debug("cli: engine opened")
	return nil
}

func init() {
	rootCmd.AddCommand(
		clgTransferCmd, clgTransferFromCmd, clgTransferIncludeFeeCmd, clgBatchTransferCmd,
		clgApproveCmd, clgMintCmd, clgBurnCmd,
		clgNotifyCmd, clgConsumeNotificationCmd, clgApproveAndNotifyCmd,
		clgBidCyclesCmd, clgRunAuctionCmd, clgBiddingInfoCmd, clgAuctionInfoCmd,
		clgSetMinCyclesCmd, clgSetAuctionPeriodCmd,
		clgSetNameCmd, clgSetLogoCmd, clgSetFeeCmd, clgSetFeeToCmd, clgSetOwnerCmd, clgConfigExportCmd,
		clgBalanceCmd, clgAllowanceCmd, clgHoldersCmd, clgTransactionsCmd, clgTransactionCmd,
		clgMetadataCmd, clgTokenInfoCmd, clgHistorySizeCmd, clgUserApprovalsCmd, clgAllowanceSizeCmd,
		clgUserTransactionCountCmd, clgMinCyclesCmd, clgIdlCmd,
	)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
