package core

import "testing"

func TestEngineSnapshotRestoreRoundTrip(t *testing.T) {
	owner := testAlice()
	bob := testBob()
	e := newTestEngine(t, owner, 1000, 10, owner)
	if _, err := e.Transfer(owner, bob, TokensFromUint64(100), nil); err != nil {
		t.Fatalf("Transfer: %v", err)
	}
	if _, err := e.Approve(owner, bob, TokensFromUint64(5)); err != nil {
		t.Fatalf("Approve: %v", err)
	}

	snap := e.Snapshot()
	if snap.Version() != 1 {
		t.Fatalf("Version() = %d, want 1", snap.Version())
	}
	var v Versioned = snap
	if err := v.Upgrade(nil); err != nil {
		t.Fatalf("Upgrade() on the current version should be a no-op, got %v", err)
	}

	restored, err := NewEngine(Metadata{Name: "x", Symbol: "x", Owner: owner}, tmpLedgerConfig(t), DefaultAuctionPeriodSeconds, testClock(0), testCycles(0))
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	defer restored.Ledger.Close()
	restored.Restore(snap)

	if got := restored.BalanceOf(bob); got.Cmp(e.BalanceOf(bob)) != 0 {
		t.Fatalf("restored bob balance = %s, want %s", got, e.BalanceOf(bob))
	}
	if got := restored.Allowance(owner, bob); got.Cmp(e.Allowance(owner, bob)) != 0 {
		t.Fatalf("restored allowance = %s, want %s", got, e.Allowance(owner, bob))
	}
	if restored.HistorySize() != e.HistorySize() {
		t.Fatalf("restored history size = %d, want %d", restored.HistorySize(), e.HistorySize())
	}
	if restored.Stats.TotalSupply().Cmp(e.Stats.TotalSupply()) != 0 {
		t.Fatalf("restored total supply = %s, want %s", restored.Stats.TotalSupply(), e.Stats.TotalSupply())
	}
}
