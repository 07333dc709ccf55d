package core

import "fmt"

// BalanceOf returns p's current balance.
func (e *Engine) BalanceOf(p Principal) Tokens128 { return e.Balances.BalanceOf(p) }

// Allowance returns the amount spender may still draw from owner.
func (e *Engine) Allowance(owner, spender Principal) Tokens128 {
	return e.Allowances.Allowance(owner, spender)
}

// GetHolders returns up to limit holders starting at start, ranked by
// balance descending.
func (e *Engine) GetHolders(start, limit int) []Holder { return e.Balances.GetHolders(start, limit) }

// GetUserApprovals lists every spender owner has approved.
func (e *Engine) GetUserApprovals(owner Principal) []Approval {
	return e.Allowances.UserApprovals(owner)
}

// GetAllowanceSize returns the total number of outstanding approvals.
func (e *Engine) GetAllowanceSize() int { return e.Allowances.Size() }

// GetTransactions paginates the ledger history, optionally filtered to a
// single principal.
func (e *Engine) GetTransactions(who *Principal, count int, startID *TxId) PaginatedResult {
	return e.Ledger.GetTransactions(who, count, startID)
}

// GetTransaction looks up a single record by id. Unlike the internal
// Ledger.Get, an unknown id is a programming error at the call site (the
// caller should have gotten the id from a prior operation or query), so it
// traps rather than returning an error.
func (e *Engine) GetTransaction(id TxId) TxRecord {
	rec, ok := e.Ledger.Get(id)
	if !ok {
		panic(fmt.Sprintf("engine: transaction %d does not exist", id))
	}
	return rec
}

// HistorySize returns the total number of records ever appended.
func (e *Engine) HistorySize() uint64 { return e.Ledger.Len() }

// GetUserTransactionCount counts how many records mention who.
func (e *Engine) GetUserTransactionCount(who Principal) int {
	return e.Ledger.GetLenUserHistory(who)
}

// GetMetadata returns the token's static configuration.
func (e *Engine) GetMetadata() Metadata { return e.Stats.AsMetadata() }

// GetTokenInfo returns the aggregate point-in-time view of the token.
func (e *Engine) GetTokenInfo() TokenInfo {
	return TokenInfo{
		Metadata:      e.Stats.AsMetadata(),
		FeeRatio:      e.Auction.FeeRatio(),
		HistorySize:   e.Ledger.Len(),
		DeployTime:    e.Stats.Snapshot().DeployTime,
		HolderNumber:  e.Balances.Len(),
		CyclesBalance: e.Cycles(),
	}
}

// GetMinCycles returns the configured minimum cycles threshold.
func (e *Engine) GetMinCycles() uint64 { return e.Stats.MinCyclesValue() }

// AuctionInfo returns a past settlement by its index.
func (e *Engine) AuctionInfo(id uint64) (AuctionInfo, bool) { return e.Auction.AuctionInfoByID(id) }

// AuctionHistoryLen returns how many settlements have run.
func (e *Engine) AuctionHistoryLen() int { return e.Auction.HistoryLen() }

// tokenIDL is the static, human-readable interface description returned by
// get_idl; it mirrors what a canister's candid getter would expose for its
// out-of-process callers.
const tokenIDL = `service : {
  transfer: (principal, nat) -> (variant { Ok: nat64; Err: text });
  transfer_from: (principal, principal, nat) -> (variant { Ok: nat64; Err: text });
  transfer_include_fee: (principal, nat) -> (variant { Ok: nat64; Err: text });
  approve: (principal, nat) -> (variant { Ok: nat64; Err: text });
  mint: (principal, nat) -> (variant { Ok: nat64; Err: text });
  burn: (opt principal, nat) -> (variant { Ok: nat64; Err: text });
  balance_of: (principal) -> (nat) query;
  allowance: (principal, principal) -> (nat) query;
  get_metadata: () -> (record {}) query;
  get_token_info: () -> (record {}) query;
  bid_cycles: (principal) -> (variant { Ok: nat64; Err: text });
  run_auction: () -> (variant { Ok: record {}; Err: text });
}`

// GetIdl returns the static interface description clients use to discover
// the token's operations.
func (e *Engine) GetIdl() string { return tokenIDL }
