package core

import "testing"

func TestAuctionBidBelowMinimumRejected(t *testing.T) {
	a := NewAuctionState(DefaultAuctionPeriodSeconds, 0)
	if err := a.BidCycles(testAlice(), MinBiddingAmount-1); err != ErrBiddingTooSmall {
		t.Fatalf("expected ErrBiddingTooSmall, got %v", err)
	}
	if err := a.BidCycles(testAlice(), MinBiddingAmount); err != nil {
		t.Fatalf("bid at the minimum should succeed: %v", err)
	}
}

func TestAuctionTooEarlyToSettle(t *testing.T) {
	a := NewAuctionState(100, 0)
	if remaining := a.CooldownSecondsRemaining(50 * nanosPerSecond); remaining == 0 {
		t.Fatal("expected a nonzero cooldown before the period elapses")
	}
	if remaining := a.CooldownSecondsRemaining(100 * nanosPerSecond); remaining != 0 {
		t.Fatalf("cooldown should be zero once the period elapses, got %d", remaining)
	}
}

func TestDisburseRewardsNoBids(t *testing.T) {
	a := NewAuctionState(0, 0)
	balances := NewBalances()
	ledger, err := NewLedger(tmpLedgerConfig(t))
	if err != nil {
		t.Fatalf("NewLedger: %v", err)
	}
	defer ledger.Close()
	if _, err := a.DisburseRewards(balances, ledger, 1); err != ErrNoBids {
		t.Fatalf("expected ErrNoBids, got %v", err)
	}
}

// TestDisburseRewardsSplitsPoolProRata: a 6000-token pool split between
// two bidders of 2,000,000 and 4,000,000
// cycles distributes exactly 2000 and 4000 tokens, assigning transaction
// ids 1 and 2 (id 0 having already been used by the initial mint).
func TestDisburseRewardsSplitsPoolProRata(t *testing.T) {
	a := NewAuctionState(0, 0)
	balances := NewBalances()
	ledger, err := NewLedger(tmpLedgerConfig(t))
	if err != nil {
		t.Fatalf("NewLedger: %v", err)
	}
	defer ledger.Close()

	owner := testAlice()
	ledger.Append(newMintRecord(owner, owner, TokensFromUint64(6000), 0)) // tx 0: seed supply
	balances.Credit(AUCTION_PRINCIPAL, TokensFromUint64(6000))

	alice, bob := testAlice(), testBob()
	if err := a.BidCycles(alice, 2_000_000); err != nil {
		t.Fatalf("alice bid: %v", err)
	}
	if err := a.BidCycles(bob, 4_000_000); err != nil {
		t.Fatalf("bob bid: %v", err)
	}

	info, err := a.DisburseRewards(balances, ledger, 12345)
	if err != nil {
		t.Fatalf("DisburseRewards: %v", err)
	}
	if info.CyclesCollected != 6_000_000 {
		t.Fatalf("cycles_collected = %d, want 6000000", info.CyclesCollected)
	}
	if info.TokensDistributed.Cmp(TokensFromUint64(6000)) != 0 {
		t.Fatalf("tokens_distributed = %s, want 6000", info.TokensDistributed)
	}
	if info.FirstTransactionID != 1 || info.LastTransactionID != 2 {
		t.Fatalf("tx id range = [%d,%d], want [1,2]", info.FirstTransactionID, info.LastTransactionID)
	}
	if info.AuctionID != 0 {
		t.Fatalf("auction_id = %d, want 0", info.AuctionID)
	}

	if got := balances.BalanceOf(alice); got.Cmp(TokensFromUint64(2000)) != 0 {
		t.Fatalf("alice payout = %s, want 2000", got)
	}
	if got := balances.BalanceOf(bob); got.Cmp(TokensFromUint64(4000)) != 0 {
		t.Fatalf("bob payout = %s, want 4000", got)
	}
	if got := balances.BalanceOf(AUCTION_PRINCIPAL); !got.IsZero() {
		t.Fatalf("auction pool should be fully drained, got %s", got)
	}

	// The bidding round resets after settlement.
	if _, err := a.DisburseRewards(balances, ledger, 12346); err != ErrNoBids {
		t.Fatalf("expected ErrNoBids on the now-empty round, got %v", err)
	}
}

// TestDisburseRewardsRecordsZeroShareBidders covers a bidder whose pro-rata
// share floors to zero against a small pool: settlement records an Auction
// TxRecord for every bidder unconditionally, so LastTransactionID must
// still land on an id that was actually appended.
func TestDisburseRewardsRecordsZeroShareBidders(t *testing.T) {
	a := NewAuctionState(0, 0)
	balances := NewBalances()
	ledger, err := NewLedger(tmpLedgerConfig(t))
	if err != nil {
		t.Fatalf("NewLedger: %v", err)
	}
	defer ledger.Close()

	balances.Credit(AUCTION_PRINCIPAL, TokensFromUint64(1))

	alice, bob := testAlice(), testBob()
	if err := a.BidCycles(alice, MinBiddingAmount); err != nil {
		t.Fatalf("alice bid: %v", err)
	}
	if err := a.BidCycles(bob, 10*MinBiddingAmount); err != nil {
		t.Fatalf("bob bid: %v", err)
	}

	info, err := a.DisburseRewards(balances, ledger, 1)
	if err != nil {
		t.Fatalf("DisburseRewards: %v", err)
	}

	if info.LastTransactionID != info.FirstTransactionID+1 {
		t.Fatalf("expected two recorded payouts, got range [%d,%d]", info.FirstTransactionID, info.LastTransactionID)
	}
	last, ok := ledger.Get(info.LastTransactionID)
	if !ok {
		t.Fatalf("LastTransactionID %d was never appended", info.LastTransactionID)
	}
	if last.Operation != OpAuction {
		t.Fatalf("expected an Auction record at %d, got %v", info.LastTransactionID, last.Operation)
	}

	first, ok := ledger.Get(info.FirstTransactionID)
	if !ok || first.Operation != OpAuction {
		t.Fatalf("expected an Auction record at %d (possibly zero-amount), got %+v, ok=%v", info.FirstTransactionID, first, ok)
	}
}

func TestEngineRunAuctionTooEarly(t *testing.T) {
	owner := testAlice()
	e := newTestEngine(t, owner, 0, 0, owner)
	if err := e.BidCycles(testBob(), MinBiddingAmount); err != nil {
		t.Fatalf("BidCycles: %v", err)
	}
	_, err := e.RunAuction()
	if err == nil {
		t.Fatal("expected an error before the auction period has elapsed")
	}
	if _, ok := err.(*AuctionError); !ok {
		t.Fatalf("expected *AuctionError, got %T", err)
	}
}

func TestEngineSetAuctionPeriodUnauthorized(t *testing.T) {
	owner := testAlice()
	e := newTestEngine(t, owner, 0, 0, owner)
	if err := e.SetAuctionPeriod(testBob(), 1); err == nil {
		t.Fatal("expected an error for a non-owner caller")
	}
	if err := e.SetAuctionPeriod(owner, 1); err != nil {
		t.Fatalf("SetAuctionPeriod: %v", err)
	}
}
