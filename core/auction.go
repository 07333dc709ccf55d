package core

import "sync"

// MinBiddingAmount is the smallest cycles bid the auction will accept.
const MinBiddingAmount uint64 = 1_000_000

// DefaultAuctionPeriodSeconds is how long the auction waits, after its last
// settlement, before another run_auction call is accepted.
const DefaultAuctionPeriodSeconds uint64 = 24 * 60 * 60

const nanosPerSecond = 1_000_000_000

// BiddingState is the open round of cycle bids accumulating fee-ratio
// leverage until the next settlement.
type BiddingState struct {
	Bids               map[Principal]uint64 `json:"bids"`
	CyclesSinceAuction uint64               `json:"cycles_since_auction"`
	FeeRatio           float64              `json:"fee_ratio"`
	LastAuction        uint64               `json:"last_auction"`
	AuctionPeriod      uint64               `json:"auction_period"` // nanoseconds
}

// AuctionInfo is the immutable record of one completed settlement.
type AuctionInfo struct {
	AuctionID          uint64    `json:"auction_id"`
	AuctionTime        uint64    `json:"auction_time"`
	TokensDistributed  Tokens128 `json:"tokens_distributed"`
	CyclesCollected    uint64    `json:"cycles_collected"`
	FeeRatio           float64   `json:"fee_ratio"`
	FirstTransactionID TxId      `json:"first_transaction_id"`
	LastTransactionID  TxId      `json:"last_transaction_id"`
}

// BiddingInfoView is the read-only projection returned to queries.
type BiddingInfoView struct {
	TotalCyclesBid  uint64  `json:"total_cycles_bid"`
	CallerCyclesBid uint64  `json:"caller_cycles_bid"`
	FeeRatio        float64 `json:"fee_ratio"`
	AuctionPeriod   uint64  `json:"auction_period"`
}

// AuctionState tracks the open bidding round plus the history of past
// settlements.
type AuctionState struct {
	mu      sync.RWMutex
	Bidding BiddingState
	History []AuctionInfo
}

// NewAuctionState starts a fresh auction with no bids, anchored at now.
func NewAuctionState(periodSeconds, now uint64) *AuctionState {
	if periodSeconds == 0 {
		periodSeconds = DefaultAuctionPeriodSeconds
	}
	return &AuctionState{
		Bidding: BiddingState{
			Bids:          make(map[Principal]uint64),
			LastAuction:   now,
			AuctionPeriod: periodSeconds * nanosPerSecond,
		},
	}
}

// FeeRatio returns the ratio applied to every transfer fee since the last
// settlement.
func (a *AuctionState) FeeRatio() float64 {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.Bidding.FeeRatio
}

// RecomputeFeeRatio sets the fee ratio from the host's current cycles
// balance relative to the configured minimum, clamped to [0, 1].
func (a *AuctionState) RecomputeFeeRatio(cyclesBalance, minCycles uint64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if minCycles == 0 {
		a.Bidding.FeeRatio = 0
		return
	}
	ratio := float64(cyclesBalance) / float64(minCycles)
	switch {
	case ratio > 1:
		ratio = 1
	case ratio < 0:
		ratio = 0
	}
	a.Bidding.FeeRatio = ratio
}

// BidCycles records a bid of cycles on bidder's behalf, rejecting amounts
// below MinBiddingAmount. Repeated bids from the same bidder accumulate.
func (a *AuctionState) BidCycles(bidder Principal, cycles uint64) error {
	if cycles < MinBiddingAmount {
		return ErrBiddingTooSmall
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.Bidding.Bids[bidder] += cycles
	a.Bidding.CyclesSinceAuction += cycles
	return nil
}

// CooldownSecondsRemaining returns how many whole seconds remain before
// another settlement may run, or 0 if one may run now.
func (a *AuctionState) CooldownSecondsRemaining(now uint64) uint64 {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if now <= a.Bidding.LastAuction {
		return a.Bidding.AuctionPeriod / nanosPerSecond
	}
	elapsed := now - a.Bidding.LastAuction
	if elapsed >= a.Bidding.AuctionPeriod {
		return 0
	}
	return (a.Bidding.AuctionPeriod - elapsed) / nanosPerSecond
}

// BiddingInfo reports the open round's totals plus caller's own bid.
func (a *AuctionState) BiddingInfo(caller Principal) BiddingInfoView {
	a.mu.RLock()
	defer a.mu.RUnlock()
	total := uint64(0)
	for _, c := range a.Bidding.Bids {
		total += c
	}
	return BiddingInfoView{
		TotalCyclesBid:  total,
		CallerCyclesBid: a.Bidding.Bids[caller],
		FeeRatio:        a.Bidding.FeeRatio,
		AuctionPeriod:   a.Bidding.AuctionPeriod / nanosPerSecond,
	}
}

// AuctionInfoByID returns a past settlement by its index, if it exists.
func (a *AuctionState) AuctionInfoByID(id uint64) (AuctionInfo, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if id >= uint64(len(a.History)) {
		return AuctionInfo{}, false
	}
	return a.History[id], true
}

// HistoryLen returns how many settlements have run.
func (a *AuctionState) HistoryLen() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.History)
}

// SetAuctionPeriod reconfigures the cooldown, in seconds.
func (a *AuctionState) SetAuctionPeriod(seconds uint64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.Bidding.AuctionPeriod = seconds * nanosPerSecond
}

// Snapshot renders the auction's state for persistence.
func (a *AuctionState) Snapshot() (BiddingState, []AuctionInfo) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	bidsCopy := make(map[Principal]uint64, len(a.Bidding.Bids))
	for p, c := range a.Bidding.Bids {
		bidsCopy[p] = c
	}
	bidding := a.Bidding
	bidding.Bids = bidsCopy
	history := make([]AuctionInfo, len(a.History))
	copy(history, a.History)
	return bidding, history
}

// Restore replaces the auction's state wholesale from a persisted
// snapshot.
func (a *AuctionState) Restore(bidding BiddingState, history []AuctionInfo) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if bidding.Bids == nil {
		bidding.Bids = make(map[Principal]uint64)
	}
	a.Bidding = bidding
	a.History = append([]AuctionInfo(nil), history...)
}
