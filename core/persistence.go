package core

// Versioned is implemented by every top-level persistence envelope so a
// loader can recognize its shape before attempting to decode it, the same
// role the host runtime's own versioned-state helper plays across upgrades.
type Versioned interface {
	Version() int
	Upgrade(prev []byte) error
}

// TokenStateSnapshot is the token half of a persisted engine: everything
// needed to reconstruct Stats, Balances and Allowances.
type TokenStateSnapshot struct {
	Stats      statsSnapshot                         `json:"stats"`
	Balances   map[Principal]Tokens128               `json:"balances"`
	Allowances map[Principal]map[Principal]Tokens128 `json:"allowances"`
	History    []TxRecord                            `json:"history"`
	VecOffset  uint64                                `json:"vec_offset"`
}

// AuctionStateSnapshot is the auction half of a persisted engine.
type AuctionStateSnapshot struct {
	Bidding BiddingState  `json:"bidding_state"`
	History []AuctionInfo `json:"auction_history"`
}

// StableState is the full, versioned persistence envelope for one engine.
type StableState struct {
	TokenState   TokenStateSnapshot   `json:"token_state"`
	AuctionState AuctionStateSnapshot `json:"auction_state"`
}

// Version identifies the StableState layout; a loader encountering a
// different version should migrate rather than decode blindly.
func (StableState) Version() int { return 1 }

// Upgrade would decode a prior-version envelope and transform it into the
// current layout. There is only one version so far, so there is nothing to
// migrate from; a v2 envelope adds its transform here rather than breaking
// this signature.
func (StableState) Upgrade(prev []byte) error { return nil }

// Snapshot captures the engine's full mutable state for persistence. The
// ledger's own WAL already durably records history, so this is primarily
// useful for out-of-band backups or migrating to a fresh WAL file.
func (e *Engine) Snapshot() StableState {
	history, vecOffset := e.Ledger.Snapshot()
	bidding, auctionHistory := e.Auction.Snapshot()
	return StableState{
		TokenState: TokenStateSnapshot{
			Stats:      e.Stats.Snapshot(),
			Balances:   e.Balances.All(),
			Allowances: e.Allowances.All(),
			History:    history,
			VecOffset:  vecOffset,
		},
		AuctionState: AuctionStateSnapshot{
			Bidding: bidding,
			History: auctionHistory,
		},
	}
}

// Restore replaces the engine's entire mutable state from a previously
// captured StableState.
func (e *Engine) Restore(s StableState) {
	e.Stats.Restore(s.TokenState.Stats)
	e.Balances.Restore(s.TokenState.Balances)
	e.Allowances.Restore(s.TokenState.Allowances)
	e.Ledger.Restore(s.TokenState.History, s.TokenState.VecOffset)
	e.Auction.Restore(s.AuctionState.Bidding, s.AuctionState.History)
}
