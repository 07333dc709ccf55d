package core

import "testing"

func TestAllowancesSetAndRevoke(t *testing.T) {
	a := NewAllowances()
	alice, bob := testAlice(), testBob()
	a.Set(alice, bob, TokensFromUint64(100))
	if got := a.Allowance(alice, bob); got.Cmp(TokensFromUint64(100)) != 0 {
		t.Fatalf("allowance = %s, want 100", got)
	}
	a.Set(alice, bob, TokensZero)
	if got := a.Allowance(alice, bob); !got.IsZero() {
		t.Fatalf("allowance after revoke = %s, want 0", got)
	}
	if a.Size() != 0 {
		t.Fatalf("revoked allowance should be pruned, size=%d", a.Size())
	}
}

func TestAllowancesDecrementInsufficient(t *testing.T) {
	a := NewAllowances()
	alice, bob := testAlice(), testBob()
	a.Set(alice, bob, TokensFromUint64(10))
	if err := a.Decrement(alice, bob, TokensFromUint64(20)); err != ErrInsufficientAllowance {
		t.Fatalf("expected ErrInsufficientAllowance, got %v", err)
	}
	if err := a.Decrement(alice, bob, TokensFromUint64(10)); err != nil {
		t.Fatalf("decrement: %v", err)
	}
	if got := a.Allowance(alice, bob); !got.IsZero() {
		t.Fatalf("allowance after full decrement = %s, want 0", got)
	}
}

func TestAllowancesDecrementUnknownPair(t *testing.T) {
	a := NewAllowances()
	if err := a.Decrement(testAlice(), testBob(), TokensFromUint64(1)); err != ErrInsufficientAllowance {
		t.Fatalf("expected ErrInsufficientAllowance for unknown pair, got %v", err)
	}
}

func TestAllowancesUserApprovals(t *testing.T) {
	a := NewAllowances()
	alice, bob, john := testAlice(), testBob(), testJohn()
	a.Set(alice, bob, TokensFromUint64(10))
	a.Set(alice, john, TokensFromUint64(20))
	approvals := a.UserApprovals(alice)
	if len(approvals) != 2 {
		t.Fatalf("expected 2 approvals, got %d", len(approvals))
	}
}

func TestAllowancesRestoreDropsZeroes(t *testing.T) {
	a := NewAllowances()
	alice, bob := testAlice(), testBob()
	a.Restore(map[Principal]map[Principal]Tokens128{
		alice: {bob: TokensZero},
	})
	if a.Size() != 0 {
		t.Fatalf("restore should drop zero-valued allowances, size=%d", a.Size())
	}
}
