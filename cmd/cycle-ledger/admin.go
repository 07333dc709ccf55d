package main

import (
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"cycle-ledger/pkg/config"
)

var clgSetNameCmd = &cobra.Command{
	Use:   "set-name",
	Short: "Rename the token (owner-only)",
	RunE: func(cmd *cobra.Command, args []string) error {
		caller, err := clgPrincipalFlag(cmd, "caller")
		if err != nil {
			return err
		}
		name, err := cmd.Flags().GetString("name")
		if err != nil {
			return err
		}
		return clgEngine.SetName(caller, name)
	},
}

var clgSetLogoCmd = &cobra.Command{
	Use:   "set-logo",
	Short: "Replace the token's logo (owner-only)",
	RunE: func(cmd *cobra.Command, args []string) error {
		caller, err := clgPrincipalFlag(cmd, "caller")
		if err != nil {
			return err
		}
		logo, err := cmd.Flags().GetString("logo")
		if err != nil {
			return err
		}
		return clgEngine.SetLogo(caller, logo)
	},
}

var clgSetFeeCmd = &cobra.Command{
	Use:   "set-fee",
	Short: "Set the per-transaction fee (owner-only)",
	RunE: func(cmd *cobra.Command, args []string) error {
		caller, err := clgPrincipalFlag(cmd, "caller")
		if err != nil {
			return err
		}
		fee, err := clgTokensFlag(cmd, "amt")
		if err != nil {
			return err
		}
		return clgEngine.SetFee(caller, fee)
	},
}

var clgSetFeeToCmd = &cobra.Command{
	Use:   "set-fee-to",
	Short: "Set the principal that receives the owner share of fees (owner-only)",
	RunE: func(cmd *cobra.Command, args []string) error {
		caller, err := clgPrincipalFlag(cmd, "caller")
		if err != nil {
			return err
		}
		feeTo, err := clgPrincipalFlag(cmd, "fee-to")
		if err != nil {
			return err
		}
		return clgEngine.SetFeeTo(caller, feeTo)
	},
}

var clgSetOwnerCmd = &cobra.Command{
	Use:   "set-owner",
	Short: "Hand ownership of the token to another principal (owner-only)",
	RunE: func(cmd *cobra.Command, args []string) error {
		caller, err := clgPrincipalFlag(cmd, "caller")
		if err != nil {
			return err
		}
		newOwner, err := clgPrincipalFlag(cmd, "owner")
		if err != nil {
			return err
		}
		return clgEngine.SetOwner(caller, newOwner)
	},
}

// clgConfigExportCmd renders the running engine's effective configuration in
// the same YAML shape pkg/config loads, so an operator can seed a config/
// directory from a live deployment.
var clgConfigExportCmd = &cobra.Command{
	Use:   "config-export",
	Short: "Export the engine's effective configuration as YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		meta := clgEngine.GetMetadata()

		var cfg config.Config
		cfg.Token.Name = meta.Name
		cfg.Token.Symbol = meta.Symbol
		cfg.Token.Decimals = int(meta.Decimals)
		cfg.Token.Logo = meta.Logo
		cfg.Token.InitialSupply = meta.TotalSupply.String()
		cfg.Token.Owner = meta.Owner.Hex()
		cfg.Token.Fee = meta.Fee.String()
		cfg.Token.FeeTo = meta.FeeTo.Hex()
		cfg.Token.IsTestToken = meta.IsTestToken
		cfg.Ledger.WALPath = clgEnvOrDefault("LEDGER_WAL_PATH", "cycle-ledger.wal")
		cfg.Ledger.SnapshotPath = clgEnvOrDefault("LEDGER_SNAPSHOT_PATH", "")
		cfg.Ledger.ArchivePath = clgEnvOrDefault("LEDGER_ARCHIVE_PATH", "")
		cfg.Auction.PeriodSeconds = clgEngine.BiddingInfo(meta.Owner).AuctionPeriod
		cfg.Auction.MinCycles = clgEngine.GetMinCycles()
		cfg.Logging.Level = clgEnvOrDefault("LOG_LEVEL", "info")

		data, err := yaml.Marshal(&cfg)
		if err != nil {
			return err
		}
		cmd.Print(string(data))
		return nil
	},
}

func init() {
	clgSetNameCmd.Flags().String("caller", "", "owner principal (hex)")
	clgSetNameCmd.Flags().String("name", "", "new token name")
	clgSetNameCmd.MarkFlagRequired("caller")
	clgSetNameCmd.MarkFlagRequired("name")

	clgSetLogoCmd.Flags().String("caller", "", "owner principal (hex)")
	clgSetLogoCmd.Flags().String("logo", "", "new logo, as a data URL or plain URL")
	clgSetLogoCmd.MarkFlagRequired("caller")
	clgSetLogoCmd.MarkFlagRequired("logo")

	clgSetFeeCmd.Flags().String("caller", "", "owner principal (hex)")
	clgSetFeeCmd.Flags().String("amt", "", "fee charged on every transfer and approval")
	clgSetFeeCmd.MarkFlagRequired("caller")
	clgSetFeeCmd.MarkFlagRequired("amt")

	clgSetFeeToCmd.Flags().String("caller", "", "owner principal (hex)")
	clgSetFeeToCmd.Flags().String("fee-to", "", "principal that receives the owner share of fees (hex)")
	clgSetFeeToCmd.MarkFlagRequired("caller")
	clgSetFeeToCmd.MarkFlagRequired("fee-to")

	clgSetOwnerCmd.Flags().String("caller", "", "current owner principal (hex)")
	clgSetOwnerCmd.Flags().String("owner", "", "new owner principal (hex)")
	clgSetOwnerCmd.MarkFlagRequired("caller")
	clgSetOwnerCmd.MarkFlagRequired("owner")
}
