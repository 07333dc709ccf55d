package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"cycle-ledger/core"
)

var clgBalanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Show a principal's balance",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := clgPrincipalFlag(cmd, "principal")
		if err != nil {
			return err
		}
		cmd.Println(clgEngine.BalanceOf(p).String())
		return nil
	},
}

var clgAllowanceCmd = &cobra.Command{
	Use:   "allowance",
	Short: "Show the remaining allowance a spender has over an owner's balance",
	RunE: func(cmd *cobra.Command, args []string) error {
		owner, err := clgPrincipalFlag(cmd, "owner")
		if err != nil {
			return err
		}
		spender, err := clgPrincipalFlag(cmd, "spender")
		if err != nil {
			return err
		}
		cmd.Println(clgEngine.Allowance(owner, spender).String())
		return nil
	},
}

var clgHoldersCmd = &cobra.Command{
	Use:   "holders",
	Short: "List the largest balance holders",
	RunE: func(cmd *cobra.Command, args []string) error {
		start, err := cmd.Flags().GetInt("start")
		if err != nil {
			return err
		}
		limit, err := cmd.Flags().GetInt("limit")
		if err != nil {
			return err
		}
		return clgPrintJSON(cmd, clgEngine.GetHolders(start, limit))
	},
}

var clgTransactionsCmd = &cobra.Command{
	Use:   "transactions",
	Short: "Page through ledger history, most recent first",
	RunE: func(cmd *cobra.Command, args []string) error {
		count, err := cmd.Flags().GetInt("count")
		if err != nil {
			return err
		}
		who, err := clgOptionalPrincipalFlag(cmd, "principal")
		if err != nil {
			return err
		}
		var start *core.TxId
		if cmd.Flags().Changed("start") {
			s, err := cmd.Flags().GetUint64("start")
			if err != nil {
				return err
			}
			start = &s
		}
		return clgPrintJSON(cmd, clgEngine.GetTransactions(who, count, start))
	},
}

var clgMetadataCmd = &cobra.Command{
	Use:   "metadata",
	Short: "Show token metadata",
	RunE: func(cmd *cobra.Command, args []string) error {
		return clgPrintJSON(cmd, clgEngine.GetMetadata())
	},
}

var clgTokenInfoCmd = &cobra.Command{
	Use:   "token-info",
	Short: "Show token metadata plus ledger and holder statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return clgPrintJSON(cmd, clgEngine.GetTokenInfo())
	},
}

var clgTransactionCmd = &cobra.Command{
	Use:   "transaction",
	Short: "Show a single ledger record by id",
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := cmd.Flags().GetUint64("id")
		if err != nil {
			return err
		}
		rec, ok := clgEngine.Ledger.Get(id)
		if !ok {
			return errTransactionNotFound
		}
		return clgPrintJSON(cmd, rec)
	},
}

var clgHistorySizeCmd = &cobra.Command{
	Use:   "history-size",
	Short: "Show the total number of ledger records ever appended",
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.Println(clgEngine.HistorySize())
		return nil
	},
}

var clgUserApprovalsCmd = &cobra.Command{
	Use:   "user-approvals",
	Short: "List every spender a principal has approved",
	RunE: func(cmd *cobra.Command, args []string) error {
		owner, err := clgPrincipalFlag(cmd, "principal")
		if err != nil {
			return err
		}
		return clgPrintJSON(cmd, clgEngine.GetUserApprovals(owner))
	},
}

var clgAllowanceSizeCmd = &cobra.Command{
	Use:   "allowance-size",
	Short: "Show the total number of outstanding approvals",
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.Println(clgEngine.GetAllowanceSize())
		return nil
	},
}

var clgUserTransactionCountCmd = &cobra.Command{
	Use:   "user-transaction-count",
	Short: "Count the retained ledger records mentioning a principal",
	RunE: func(cmd *cobra.Command, args []string) error {
		who, err := clgPrincipalFlag(cmd, "principal")
		if err != nil {
			return err
		}
		cmd.Println(clgEngine.GetUserTransactionCount(who))
		return nil
	},
}

var clgMinCyclesCmd = &cobra.Command{
	Use:   "min-cycles",
	Short: "Show the cycles threshold the fee-ratio curve is anchored to",
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.Println(clgEngine.GetMinCycles())
		return nil
	},
}

var clgIdlCmd = &cobra.Command{
	Use:   "idl",
	Short: "Show the token's interface description",
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.Println(clgEngine.GetIdl())
		return nil
	},
}

func clgPrintJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	clgBalanceCmd.Flags().String("principal", "", "principal to query (hex)")
	clgBalanceCmd.MarkFlagRequired("principal")

	clgAllowanceCmd.Flags().String("owner", "", "owner principal (hex)")
	clgAllowanceCmd.Flags().String("spender", "", "spender principal (hex)")
	clgAllowanceCmd.MarkFlagRequired("owner")
	clgAllowanceCmd.MarkFlagRequired("spender")

	clgHoldersCmd.Flags().Int("start", 0, "offset into the holder ranking")
	clgHoldersCmd.Flags().Int("limit", 100, "maximum holders to return")

	clgTransactionsCmd.Flags().Int("count", 100, "maximum records to return")
	clgTransactionsCmd.Flags().String("principal", "", "restrict to transactions involving this principal (hex)")
	clgTransactionsCmd.Flags().Uint64("start", 0, "transaction id to page from, most recent first")

	clgTransactionCmd.Flags().Uint64("id", 0, "transaction id")
	clgTransactionCmd.MarkFlagRequired("id")

	clgUserApprovalsCmd.Flags().String("principal", "", "approving principal (hex)")
	clgUserApprovalsCmd.MarkFlagRequired("principal")

	clgUserTransactionCountCmd.Flags().String("principal", "", "principal to count records for (hex)")
	clgUserTransactionCountCmd.MarkFlagRequired("principal")
}
