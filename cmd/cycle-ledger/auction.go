package main

import (
	"github.com/spf13/cobra"
)

var clgBidCyclesCmd = &cobra.Command{
	Use:   "bid-cycles",
	Short: "Bid cycles into the current auction round",
	RunE: func(cmd *cobra.Command, args []string) error {
		bidder, err := clgPrincipalFlag(cmd, "caller")
		if err != nil {
			return err
		}
		cycles, err := cmd.Flags().GetUint64("cycles")
		if err != nil {
			return err
		}
		return clgEngine.BidCycles(bidder, cycles)
	},
}

var clgRunAuctionCmd = &cobra.Command{
	Use:   "run-auction",
	Short: "Settle the current auction round and disburse the pool pro-rata",
	RunE: func(cmd *cobra.Command, args []string) error {
		info, err := clgEngine.RunAuction()
		if err != nil {
			return err
		}
		cmd.Printf("auction %d: distributed %s tokens across tx %d to %d\n",
			info.AuctionID, info.TokensDistributed.String(), info.FirstTransactionID, info.LastTransactionID)
		return nil
	},
}

var clgBiddingInfoCmd = &cobra.Command{
	Use:   "bidding-info",
	Short: "Show the current auction round's cycles bid, total and by caller",
	RunE: func(cmd *cobra.Command, args []string) error {
		caller, err := clgPrincipalFlag(cmd, "caller")
		if err != nil {
			return err
		}
		info := clgEngine.BiddingInfo(caller)
		cmd.Printf("total=%d caller=%d fee_ratio=%f period=%ds\n",
			info.TotalCyclesBid, info.CallerCyclesBid, info.FeeRatio, info.AuctionPeriod)
		return nil
	},
}

var clgAuctionInfoCmd = &cobra.Command{
	Use:   "auction-info",
	Short: "Show a past auction round's settlement record",
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := cmd.Flags().GetUint64("id")
		if err != nil {
			return err
		}
		info, ok := clgEngine.AuctionInfo(id)
		if !ok {
			return errAuctionNotFound
		}
		cmd.Printf("auction %d: distributed=%s cycles=%d fee_ratio=%f\n",
			info.AuctionID, info.TokensDistributed.String(), info.CyclesCollected, info.FeeRatio)
		return nil
	},
}

var clgSetMinCyclesCmd = &cobra.Command{
	Use:   "set-min-cycles",
	Short: "Set the cycles balance threshold the fee-ratio curve is anchored to",
	RunE: func(cmd *cobra.Command, args []string) error {
		caller, err := clgPrincipalFlag(cmd, "caller")
		if err != nil {
			return err
		}
		value, err := cmd.Flags().GetUint64("value")
		if err != nil {
			return err
		}
		return clgEngine.SetMinCycles(caller, value)
	},
}

var clgSetAuctionPeriodCmd = &cobra.Command{
	Use:   "set-auction-period",
	Short: "Set the cooldown, in seconds, between auction settlements",
	RunE: func(cmd *cobra.Command, args []string) error {
		caller, err := clgPrincipalFlag(cmd, "caller")
		if err != nil {
			return err
		}
		seconds, err := cmd.Flags().GetUint64("seconds")
		if err != nil {
			return err
		}
		return clgEngine.SetAuctionPeriod(caller, seconds)
	},
}

func init() {
	clgBidCyclesCmd.Flags().String("caller", "", "bidder principal (hex)")
	clgBidCyclesCmd.Flags().Uint64("cycles", 0, "cycles to bid")
	clgBidCyclesCmd.MarkFlagRequired("caller")
	clgBidCyclesCmd.MarkFlagRequired("cycles")

	clgBiddingInfoCmd.Flags().String("caller", "", "principal to report the caller-specific bid for")
	clgBiddingInfoCmd.MarkFlagRequired("caller")

	clgAuctionInfoCmd.Flags().Uint64("id", 0, "auction round id")

	clgSetMinCyclesCmd.Flags().String("caller", "", "owner principal (hex)")
	clgSetMinCyclesCmd.Flags().Uint64("value", 0, "minimum cycles threshold")
	clgSetMinCyclesCmd.MarkFlagRequired("caller")
	clgSetMinCyclesCmd.MarkFlagRequired("value")

	clgSetAuctionPeriodCmd.Flags().String("caller", "", "owner principal (hex)")
	clgSetAuctionPeriodCmd.Flags().Uint64("seconds", 0, "auction cooldown in seconds")
	clgSetAuctionPeriodCmd.MarkFlagRequired("caller")
	clgSetAuctionPeriodCmd.MarkFlagRequired("seconds")
}
