package main

import (
	"github.com/spf13/cobra"
)

var clgNotifyCmd = &cobra.Command{
	Use:   "notify",
	Short: "Notify a recipient that a transaction was recorded for it",
	RunE: func(cmd *cobra.Command, args []string) error {
		to, err := clgPrincipalFlag(cmd, "to")
		if err != nil {
			return err
		}
		id, err := cmd.Flags().GetUint64("tx")
		if err != nil {
			return err
		}
		return clgEngine.Notify(id, to)
	},
}

var clgConsumeNotificationCmd = &cobra.Command{
	Use:   "consume-notification",
	Short: "Acknowledge a pending transaction notification as its recipient",
	RunE: func(cmd *cobra.Command, args []string) error {
		caller, err := clgPrincipalFlag(cmd, "caller")
		if err != nil {
			return err
		}
		id, err := cmd.Flags().GetUint64("tx")
		if err != nil {
			return err
		}
		return clgEngine.ConsumeNotification(id, caller)
	},
}

var clgApproveAndNotifyCmd = &cobra.Command{
	Use:   "approve-and-notify",
	Short: "Approve a spender and notify it of the approval in one step",
	RunE: func(cmd *cobra.Command, args []string) error {
		caller, err := clgPrincipalFlag(cmd, "caller")
		if err != nil {
			return err
		}
		spender, err := clgPrincipalFlag(cmd, "spender")
		if err != nil {
			return err
		}
		amount, err := clgTokensFlag(cmd, "amt")
		if err != nil {
			return err
		}
		id, err := clgEngine.ApproveAndNotify(caller, spender, amount)
		if err != nil {
			return err
		}
		cmd.Println(id)
		return nil
	},
}

func init() {
	clgNotifyCmd.Flags().Uint64("tx", 0, "transaction id to notify about")
	clgNotifyCmd.Flags().String("to", "", "recipient principal (hex)")
	clgNotifyCmd.MarkFlagRequired("tx")
	clgNotifyCmd.MarkFlagRequired("to")

	clgConsumeNotificationCmd.Flags().Uint64("tx", 0, "transaction id to acknowledge")
	clgConsumeNotificationCmd.Flags().String("caller", "", "acknowledging principal (hex)")
	clgConsumeNotificationCmd.MarkFlagRequired("tx")
	clgConsumeNotificationCmd.MarkFlagRequired("caller")

	clgApproveAndNotifyCmd.Flags().String("caller", "", "owner principal (hex)")
	clgApproveAndNotifyCmd.Flags().String("spender", "", "spender principal (hex)")
	clgApproveAndNotifyCmd.Flags().String("amt", "", "amount")
	clgApproveAndNotifyCmd.MarkFlagRequired("caller")
	clgApproveAndNotifyCmd.MarkFlagRequired("spender")
	clgApproveAndNotifyCmd.MarkFlagRequired("amt")
}
