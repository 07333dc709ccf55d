package core

import (
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"
)

// DisburseRewards closes the open bidding round, splitting the current
// AUCTION_PRINCIPAL balance pro rata across every bidder by cycles bid,
// and records one auction-operation TxRecord per payout. It fails with
// ErrNoBids if nothing has been bid since the last settlement.
//
// Bidders are paid out in Principal byte order rather than map iteration
// order so the assigned ledger ids, and therefore FirstTransactionID and
// LastTransactionID, are deterministic and reproducible.
func (a *AuctionState) DisburseRewards(balances *Balances, ledger *Ledger, now uint64) (AuctionInfo, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if len(a.Bidding.Bids) == 0 {
		return AuctionInfo{}, ErrNoBids
	}

	totalCycles := a.Bidding.CyclesSinceAuction
	pool := balances.BalanceOf(AUCTION_PRINCIPAL)
	totalCyclesTok := TokensFromUint64(totalCycles)

	bidders := make([]Principal, 0, len(a.Bidding.Bids))
	for bidder := range a.Bidding.Bids {
		bidders = append(bidders, bidder)
	}
	sort.Slice(bidders, func(i, j int) bool { return bidders[i].Less(bidders[j]) })

	firstTxID := ledger.Len()
	lastTxID := firstTxID
	transferred := TokensZero

	for _, bidder := range bidders {
		cycles := a.Bidding.Bids[bidder]
		share, ok := pool.Mul(TokensFromUint64(cycles))
		if !ok {
			panic("auction: pool * bidder cycles overflows 128 bits")
		}
		share, ok = share.Div(totalCyclesTok)
		if !ok {
			panic("auction: division by zero total cycles")
		}
		if err := balances.TransferBalance(AUCTION_PRINCIPAL, bidder, share); err != nil {
			panic(fmt.Sprintf("auction: payout to bidder failed: %v", err))
		}
		lastTxID = ledger.Append(newAuctionRecord(bidder, share, now))
		transferred, ok = transferred.Add(share)
		if !ok {
			panic("auction: total distributed overflows 128 bits")
		}
	}

	info := AuctionInfo{
		AuctionID:          uint64(len(a.History)),
		AuctionTime:        now,
		TokensDistributed:  transferred,
		CyclesCollected:    totalCycles,
		FeeRatio:           a.Bidding.FeeRatio,
		FirstTransactionID: firstTxID,
		LastTransactionID:  lastTxID,
	}
	a.History = append(a.History, info)
	a.Bidding.Bids = make(map[Principal]uint64)
	a.Bidding.CyclesSinceAuction = 0
	a.Bidding.LastAuction = now

	logrus.WithFields(logrus.Fields{
		"auction_id":       info.AuctionID,
		"cycles_collected": info.CyclesCollected,
		"distributed":      info.TokensDistributed.String(),
		"bidders":          len(bidders),
	}).Info("auction: settlement complete")

	return info, nil
}
