package core

import (
	"sort"
	"sync"
)

// Balances holds every principal's token balance. Zero balances are never
// stored; a missing entry and an explicit zero are equivalent.
//
// The host model this engine is embedded in serializes every mutating
// call, so the mutex below is never contended on the write side; it exists
// so Balances can be read safely from other goroutines (e.g. a read-only
// query server running alongside the mutating engine).
type Balances struct {
	mu sync.RWMutex
	m  map[Principal]Tokens128
}

// NewBalances returns an empty balance table.
func NewBalances() *Balances {
	return &Balances{m: make(map[Principal]Tokens128)}
}

// BalanceOf returns p's balance, or zero if p holds nothing.
func (b *Balances) BalanceOf(p Principal) Tokens128 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.m[p]
}

// Credit adds amount to p's balance. It returns false without modifying
// state if the credit would overflow 128 bits.
func (b *Balances) Credit(p Principal, amount Tokens128) bool {
	if amount.IsZero() {
		return true
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	newBal, ok := b.m[p].Add(amount)
	if !ok {
		return false
	}
	b.m[p] = newBal
	return true
}

// Debit subtracts amount from p's balance. An absent entry debited for zero
// succeeds as a no-op; any other shortfall reports ErrInsufficientBalance.
func (b *Balances) Debit(p Principal, amount Tokens128) error {
	if amount.IsZero() {
		return nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	cur, ok := b.m[p]
	if !ok {
		return NewInsufficientBalance(TokensZero)
	}
	newBal, ok := cur.Sub(amount)
	if !ok {
		return NewInsufficientBalance(cur)
	}
	if newBal.IsZero() {
		delete(b.m, p)
	} else {
		b.m[p] = newBal
	}
	return nil
}

// TransferBalance moves amount from `from` to `to` atomically. It is the
// single primitive every mutating engine operation funnels through.
func (b *Balances) TransferBalance(from, to Principal, amount Tokens128) error {
	if amount.IsZero() {
		return nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	cur, ok := b.m[from]
	if !ok {
		return NewInsufficientBalance(TokensZero)
	}
	newFrom, ok := cur.Sub(amount)
	if !ok {
		return NewInsufficientBalance(cur)
	}
	if from == to {
		// A self-transfer leaves the balance unchanged.
		return nil
	}
	newTo, ok := b.m[to].Add(amount)
	if !ok {
		// Debiting `from` already proved amount <= total supply - to's
		// balance is bounded the same way, so this can only happen if an
		// invariant upstream (total supply accounting) has already broken.
		panic("balances: credit overflow violates total-supply invariant")
	}
	if newFrom.IsZero() {
		delete(b.m, from)
	} else {
		b.m[from] = newFrom
	}
	b.m[to] = newTo
	return nil
}

// Holder pairs a principal with its balance, used by GetHolders.
type Holder struct {
	Principal Principal `json:"principal"`
	Amount    Tokens128 `json:"amount"`
}

// GetHolders returns up to limit holders starting at start, sorted by
// balance descending, with Principal byte order as a deterministic
// tie-break.
func (b *Balances) GetHolders(start, limit int) []Holder {
	b.mu.RLock()
	defer b.mu.RUnlock()
	all := make([]Holder, 0, len(b.m))
	for p, amt := range b.m {
		all = append(all, Holder{Principal: p, Amount: amt})
	}
	sort.Slice(all, func(i, j int) bool {
		if c := all[i].Amount.Cmp(all[j].Amount); c != 0 {
			return c > 0
		}
		return all[i].Principal.Less(all[j].Principal)
	})
	if start < 0 {
		start = 0
	}
	if start >= len(all) {
		return []Holder{}
	}
	end := start + limit
	if limit < 0 || end > len(all) {
		end = len(all)
	}
	out := make([]Holder, end-start)
	copy(out, all[start:end])
	return out
}

// Len returns the number of principals holding a nonzero balance.
func (b *Balances) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.m)
}

// All returns a defensive copy of the full balance table, used to build a
// persistence snapshot.
func (b *Balances) All() map[Principal]Tokens128 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make(map[Principal]Tokens128, len(b.m))
	for p, amt := range b.m {
		out[p] = amt
	}
	return out
}

// Restore replaces the balance table wholesale, used when loading a
// persistence snapshot.
func (b *Balances) Restore(m map[Principal]Tokens128) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.m = make(map[Principal]Tokens128, len(m))
	for p, amt := range m {
		if !amt.IsZero() {
			b.m[p] = amt
		}
	}
}
