package main

import (
	"github.com/spf13/cobra"

	"cycle-ledger/core"
)

var clgTransferCmd = &cobra.Command{
	Use:   "transfer",
	Short: "Transfer tokens, deducting the fee from the sender",
	RunE: func(cmd *cobra.Command, args []string) error {
		to, err := clgPrincipalFlag(cmd, "to")
		if err != nil {
			return err
		}
		caller, err := clgPrincipalFlag(cmd, "caller")
		if err != nil {
			return err
		}
		amount, err := clgTokensFlag(cmd, "amt")
		if err != nil {
			return err
		}
		id, err := clgEngine.Transfer(caller, to, amount, nil)
		if err != nil {
			return err
		}
		cmd.Println(id)
		return nil
	},
}

var clgTransferIncludeFeeCmd = &cobra.Command{
	Use:   "transfer-include-fee",
	Short: "Transfer tokens where amount already includes the fee",
	RunE: func(cmd *cobra.Command, args []string) error {
		to, err := clgPrincipalFlag(cmd, "to")
		if err != nil {
			return err
		}
		caller, err := clgPrincipalFlag(cmd, "caller")
		if err != nil {
			return err
		}
		amount, err := clgTokensFlag(cmd, "amt")
		if err != nil {
			return err
		}
		id, err := clgEngine.TransferIncludeFee(caller, to, amount)
		if err != nil {
			return err
		}
		cmd.Println(id)
		return nil
	},
}

var clgTransferFromCmd = &cobra.Command{
	Use:   "transfer-from",
	Short: "Move previously-approved tokens out of another principal's balance",
	RunE: func(cmd *cobra.Command, args []string) error {
		caller, err := clgPrincipalFlag(cmd, "caller")
		if err != nil {
			return err
		}
		from, err := clgPrincipalFlag(cmd, "from")
		if err != nil {
			return err
		}
		to, err := clgPrincipalFlag(cmd, "to")
		if err != nil {
			return err
		}
		amount, err := clgTokensFlag(cmd, "amt")
		if err != nil {
			return err
		}
		id, err := clgEngine.TransferFrom(caller, from, to, amount)
		if err != nil {
			return err
		}
		cmd.Println(id)
		return nil
	},
}

var clgBatchTransferCmd = &cobra.Command{
	Use:   "batch-transfer",
	Short: "Transfer tokens to several recipients atomically, as repeated --to/--amt pairs",
	RunE: func(cmd *cobra.Command, args []string) error {
		caller, err := clgPrincipalFlag(cmd, "caller")
		if err != nil {
			return err
		}
		tos, err := cmd.Flags().GetStringArray("to")
		if err != nil {
			return err
		}
		amts, err := cmd.Flags().GetStringArray("amt")
		if err != nil {
			return err
		}
		if len(tos) != len(amts) {
			return errBatchTransferArgMismatch
		}
		items := make([]core.BatchTransferItem, len(tos))
		for i := range tos {
			to, err := core.ParsePrincipalHex(tos[i])
			if err != nil {
				return err
			}
			amount, err := core.TokensFromString(amts[i])
			if err != nil {
				return err
			}
			items[i] = core.BatchTransferItem{To: to, Amount: amount}
		}
		ids, err := clgEngine.BatchTransfer(caller, items)
		if err != nil {
			return err
		}
		for _, id := range ids {
			cmd.Println(id)
		}
		return nil
	},
}

func init() {
	clgTransferCmd.Flags().String("caller", "", "sender principal (hex)")
	clgTransferCmd.Flags().String("to", "", "recipient principal (hex)")
	clgTransferCmd.Flags().String("amt", "", "amount, net of fee")
	clgTransferCmd.MarkFlagRequired("caller")
	clgTransferCmd.MarkFlagRequired("to")
	clgTransferCmd.MarkFlagRequired("amt")

	clgTransferIncludeFeeCmd.Flags().String("caller", "", "sender principal (hex)")
	clgTransferIncludeFeeCmd.Flags().String("to", "", "recipient principal (hex)")
	clgTransferIncludeFeeCmd.Flags().String("amt", "", "amount, inclusive of fee")
	clgTransferIncludeFeeCmd.MarkFlagRequired("caller")
	clgTransferIncludeFeeCmd.MarkFlagRequired("to")
	clgTransferIncludeFeeCmd.MarkFlagRequired("amt")

	clgTransferFromCmd.Flags().String("caller", "", "spender principal (hex)")
	clgTransferFromCmd.Flags().String("from", "", "holder principal (hex)")
	clgTransferFromCmd.Flags().String("to", "", "recipient principal (hex)")
	clgTransferFromCmd.Flags().String("amt", "", "amount")
	clgTransferFromCmd.MarkFlagRequired("caller")
	clgTransferFromCmd.MarkFlagRequired("from")
	clgTransferFromCmd.MarkFlagRequired("to")
	clgTransferFromCmd.MarkFlagRequired("amt")

	clgBatchTransferCmd.Flags().String("caller", "", "sender principal (hex)")
	clgBatchTransferCmd.Flags().StringArray("to", nil, "recipient principal (hex), repeatable")
	clgBatchTransferCmd.Flags().StringArray("amt", nil, "amount, repeatable, paired by position with --to")
	clgBatchTransferCmd.MarkFlagRequired("caller")
	clgBatchTransferCmd.MarkFlagRequired("to")
	clgBatchTransferCmd.MarkFlagRequired("amt")
}
