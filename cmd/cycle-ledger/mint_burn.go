package main

import (
	"github.com/spf13/cobra"
)

var clgApproveCmd = &cobra.Command{
	Use:   "approve",
	Short: "Approve a spender for an amount, charging the fee immediately",
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
		id, err := clgEngine.Approve(caller, spender, amount)
		if err != nil {
			return err
		}
		cmd.Println(id)
		return nil
	},
}

var clgMintCmd = &cobra.Command{
	Use:   "mint",
	Short: "Mint new supply to a recipient (owner-only unless the token is a test token)",
	RunE: func(cmd *cobra.Command, args []string) error {
		caller, err := clgPrincipalFlag(cmd, "caller")
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
		id, err := clgEngine.Mint(caller, to, amount)
		if err != nil {
			return err
		}
		cmd.Println(id)
		return nil
	},
}

var clgBurnCmd = &cobra.Command{
	Use:   "burn",
	Short: "Burn tokens from a holder (owner-only when burning on someone else's behalf)",
	RunE: func(cmd *cobra.Command, args []string) error {
		caller, err := clgPrincipalFlag(cmd, "caller")
		if err != nil {
			return err
		}
		from, err := clgOptionalPrincipalFlag(cmd, "from")
		if err != nil {
			return err
		}
		amount, err := clgTokensFlag(cmd, "amt")
		if err != nil {
			return err
		}
		id, err := clgEngine.Burn(caller, from, amount)
		if err != nil {
			return err
		}
		cmd.Println(id)
		return nil
	},
}

func init() {
	clgApproveCmd.Flags().String("caller", "", "owner principal (hex)")
	clgApproveCmd.Flags().String("spender", "", "spender principal (hex)")
	clgApproveCmd.Flags().String("amt", "", "amount")
	clgApproveCmd.MarkFlagRequired("caller")
	clgApproveCmd.MarkFlagRequired("spender")
	clgApproveCmd.MarkFlagRequired("amt")

	clgMintCmd.Flags().String("caller", "", "caller principal (hex)")
	clgMintCmd.Flags().String("to", "", "recipient principal (hex)")
	clgMintCmd.Flags().String("amt", "", "amount")
	clgMintCmd.MarkFlagRequired("caller")
	clgMintCmd.MarkFlagRequired("to")
	clgMintCmd.MarkFlagRequired("amt")

	clgBurnCmd.Flags().String("caller", "", "caller principal (hex)")
	clgBurnCmd.Flags().String("from", "", "holder principal (hex); defaults to caller when omitted")
	clgBurnCmd.Flags().String("amt", "", "amount")
	clgBurnCmd.MarkFlagRequired("caller")
	clgBurnCmd.MarkFlagRequired("amt")
}
