package core

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Engine wires Balances, Allowances, a Ledger and an AuctionState into the
// full set of mutating operations a token deployment exposes. It is the
// single entry point the CLI and query server depend on.
type Engine struct {
	Stats      *Stats
	Balances   *Balances
	Allowances *Allowances
	Ledger     *Ledger
	Auction    *AuctionState

	// Notifier performs the out-of-band notification side effect of
	// notify/approve_and_notify. The default stubs out the actual RPC and
	// always succeeds; callers embedding the engine in a real host replace
	// it with a call into that host's messaging layer.
	Notifier NotifierFunc

	// Now returns the current time in nanoseconds; Cycles returns the
	// host's current cycles balance. Both are injected so tests can control
	// them deterministically.
	Now    func() uint64
	Cycles func() uint64
}

// NotifierFunc delivers a best-effort notification that txID has been
// recorded, to principal to.
type NotifierFunc func(txID TxId, to Principal) error

func defaultNotifier(TxId, Principal) error { return nil }

// NewEngine deploys a new token from meta, minting its initial supply (if
// any) to meta.Owner as transaction 0.
func NewEngine(meta Metadata, ledgerCfg LedgerConfig, auctionPeriodSeconds uint64, now func() uint64, cycles func() uint64) (*Engine, error) {
	ledger, err := NewLedger(ledgerCfg)
	if err != nil {
		return nil, err
	}
	deployTime := now()
	e := &Engine{
		Stats:      NewStats(meta, deployTime),
		Balances:   NewBalances(),
		Allowances: NewAllowances(),
		Ledger:     ledger,
		Auction:    NewAuctionState(auctionPeriodSeconds, deployTime),
		Notifier:   defaultNotifier,
		Now:        now,
		Cycles:     cycles,
	}
	if !meta.TotalSupply.IsZero() {
		if _, err := e.mintInternal(meta.Owner, meta.Owner, meta.TotalSupply); err != nil {
			return nil, err
		}
	}
	logrus.WithFields(logrus.Fields{
		"symbol": meta.Symbol, "owner": meta.Owner.Hex(), "supply": meta.TotalSupply.String(),
	}).Info("engine: token deployed")
	return e, nil
}

// chargeFee splits fee between feeTo and AUCTION_PRINCIPAL according to
// ratio. The ratio is fixed to 12 decimal digits and the auction share is
// computed in truncating integer arithmetic, so the split never rounds up.
func (e *Engine) chargeFee(user, feeTo Principal, fee Tokens128, ratio float64) {
	if fee.IsZero() {
		return
	}
	if ratio < 0 || ratio > 1 {
		panic(fmt.Sprintf("engine: fee ratio %f outside [0,1]", ratio))
	}
	const scale = 1_000_000_000_000 // matches the fee ratio's fixed-point precision
	scaledRatio := TokensFromUint64(uint64(ratio * scale))
	auctionPart, ok := fee.Mul(scaledRatio)
	if !ok {
		panic("engine: fee * scaled ratio overflows 128 bits")
	}
	auctionPart, ok = auctionPart.Div(TokensFromUint64(scale))
	if !ok {
		panic("engine: fee ratio division failed")
	}
	ownerPart, ok := fee.Sub(auctionPart)
	if !ok {
		panic("engine: auction share exceeds total fee")
	}
	if err := e.Balances.TransferBalance(user, feeTo, ownerPart); err != nil {
		panic(fmt.Sprintf("engine: fee transfer to owner failed: %v", err))
	}
	if err := e.Balances.TransferBalance(user, AUCTION_PRINCIPAL, auctionPart); err != nil {
		panic(fmt.Sprintf("engine: fee transfer to auction pool failed: %v", err))
	}
}

// Transfer moves amount from caller to to, charging the configured fee on
// top. If feeLimit is non-nil, the call fails rather than pay a fee above
// it.
func (e *Engine) Transfer(caller, to Principal, amount Tokens128, feeLimit *Tokens128) (TxId, error) {
	checked, err := NewWithRecipient(caller, to)
	if err != nil {
		return 0, err
	}
	fee, feeTo := e.Stats.FeeInfo()
	if feeLimit != nil && fee.Cmp(*feeLimit) > 0 {
		return 0, ErrFeeExceededLimit
	}
	need, ok := amount.Add(fee)
	if !ok {
		return 0, ErrAmountOverflow
	}
	bal := e.Balances.BalanceOf(checked.Inner())
	if bal.Cmp(need) < 0 {
		return 0, NewInsufficientBalance(bal)
	}
	e.chargeFee(checked.Inner(), feeTo, fee, e.Auction.FeeRatio())
	if err := e.Balances.TransferBalance(checked.Inner(), checked.Recipient(), amount); err != nil {
		panic(fmt.Sprintf("engine: transfer invariant violated: %v", err))
	}
	rec := newTransferRecord(checked.Inner(), checked.Inner(), checked.Recipient(), amount, fee, e.Now())
	return e.Ledger.Append(rec), nil
}

// TransferIncludeFee moves amount from caller to to, deducting the fee from
// amount itself so the recipient receives amount-fee and the sender is
// debited exactly amount.
func (e *Engine) TransferIncludeFee(caller, to Principal, amount Tokens128) (TxId, error) {
	checked, err := NewWithRecipient(caller, to)
	if err != nil {
		return 0, err
	}
	fee, feeTo := e.Stats.FeeInfo()
	if amount.Cmp(fee) <= 0 {
		return 0, ErrAmountTooSmall
	}
	bal := e.Balances.BalanceOf(checked.Inner())
	if bal.Cmp(amount) < 0 {
		return 0, NewInsufficientBalance(bal)
	}
	received, ok := amount.Sub(fee)
	if !ok {
		return 0, ErrAmountOverflow
	}
	e.chargeFee(checked.Inner(), feeTo, fee, e.Auction.FeeRatio())
	if err := e.Balances.TransferBalance(checked.Inner(), checked.Recipient(), received); err != nil {
		panic(fmt.Sprintf("engine: transfer_include_fee invariant violated: %v", err))
	}
	rec := newTransferRecord(checked.Inner(), checked.Inner(), checked.Recipient(), received, fee, e.Now())
	return e.Ledger.Append(rec), nil
}

// TransferFrom moves amount from `from` to `to` on caller's behalf,
// consuming caller's allowance over from's funds.
func (e *Engine) TransferFrom(caller, from, to Principal, amount Tokens128) (TxId, error) {
	checked, err := NewSenderRecipient(caller, from, to)
	if err != nil {
		return 0, err
	}
	fee, feeTo := e.Stats.FeeInfo()
	need, ok := amount.Add(fee)
	if !ok {
		return 0, ErrAmountOverflow
	}
	allowance := e.Allowances.Allowance(checked.From(), checked.Inner())
	if allowance.Cmp(need) < 0 {
		return 0, ErrInsufficientAllowance
	}
	bal := e.Balances.BalanceOf(checked.From())
	if bal.Cmp(need) < 0 {
		return 0, NewInsufficientBalance(bal)
	}
	e.chargeFee(checked.From(), feeTo, fee, e.Auction.FeeRatio())
	if err := e.Balances.TransferBalance(checked.From(), checked.To(), amount); err != nil {
		panic(fmt.Sprintf("engine: transfer_from invariant violated: %v", err))
	}
	if err := e.Allowances.Decrement(checked.From(), checked.Inner(), need); err != nil {
		panic(fmt.Sprintf("engine: allowance invariant violated: %v", err))
	}
	rec := newTransferFromRecord(checked.Inner(), checked.From(), checked.To(), amount, fee, e.Now())
	return e.Ledger.Append(rec), nil
}

// Approve sets the amount spender may draw from caller, inclusive of the
// fee it will owe when it later spends it, and charges the approval fee
// immediately.
func (e *Engine) Approve(caller, spender Principal, amount Tokens128) (TxId, error) {
	checked, err := NewWithRecipient(caller, spender)
	if err != nil {
		return 0, err
	}
	fee, feeTo := e.Stats.FeeInfo()
	bal := e.Balances.BalanceOf(checked.Inner())
	if bal.Cmp(fee) < 0 {
		return 0, NewInsufficientBalance(bal)
	}
	amountWithFee, ok := amount.Add(fee)
	if !ok {
		return 0, ErrAmountOverflow
	}
	e.chargeFee(checked.Inner(), feeTo, fee, e.Auction.FeeRatio())
	e.Allowances.Set(checked.Inner(), checked.Recipient(), amountWithFee)
	rec := newApproveRecord(checked.Inner(), checked.Recipient(), amount, fee, e.Now())
	return e.Ledger.Append(rec), nil
}

// Mint credits amount to to. Any caller may mint on a test token; on a
// production token only the owner may.
func (e *Engine) Mint(caller, to Principal, amount Tokens128) (TxId, error) {
	if !e.Stats.IsTestToken() {
		if _, err := NewOwnerGuard(caller, e.Stats.OwnerPrincipal()); err != nil {
			return 0, err
		}
	}
	return e.mintInternal(caller, to, amount)
}

func (e *Engine) mintInternal(caller, to Principal, amount Tokens128) (TxId, error) {
	if _, ok := e.Stats.AddSupply(amount); !ok {
		return 0, ErrAmountOverflow
	}
	if ok := e.Balances.Credit(to, amount); !ok {
		panic("engine: mint credit overflows 128 bits despite total-supply check")
	}
	rec := newMintRecord(caller, to, amount, e.Now())
	return e.Ledger.Append(rec), nil
}

// Burn debits amount from `from` (or from caller, if from is nil). Burning
// someone else's balance is restricted to the owner.
func (e *Engine) Burn(caller Principal, from *Principal, amount Tokens128) (TxId, error) {
	target := caller
	if from != nil && *from != caller {
		if _, err := NewOwnerGuard(caller, e.Stats.OwnerPrincipal()); err != nil {
			return 0, err
		}
		target = *from
	}
	if err := e.Balances.Debit(target, amount); err != nil {
		return 0, err
	}
	if _, ok := e.Stats.SubSupply(amount); !ok {
		panic("engine: total supply underflow on burn")
	}
	rec := newBurnRecord(caller, target, amount, e.Now())
	return e.Ledger.Append(rec), nil
}

// BatchTransferItem is one leg of a BatchTransfer call.
type BatchTransferItem struct {
	To     Principal
	Amount Tokens128
}

// BatchTransfer applies every item as an all-or-nothing unit: if caller
// cannot cover the sum of every leg plus its fee, nothing is transferred.
func (e *Engine) BatchTransfer(caller Principal, items []BatchTransferItem) ([]TxId, error) {
	fee, feeTo := e.Stats.FeeInfo()
	total := TokensZero
	for _, it := range items {
		if _, err := NewWithRecipient(caller, it.To); err != nil {
			return nil, err
		}
		need, ok := it.Amount.Add(fee)
		if !ok {
			return nil, ErrAmountOverflow
		}
		total, ok = total.Add(need)
		if !ok {
			return nil, ErrAmountOverflow
		}
	}
	bal := e.Balances.BalanceOf(caller)
	if bal.Cmp(total) < 0 {
		return nil, NewInsufficientBalance(bal)
	}
	ratio := e.Auction.FeeRatio()
	ids := make([]TxId, len(items))
	for i, it := range items {
		e.chargeFee(caller, feeTo, fee, ratio)
		if err := e.Balances.TransferBalance(caller, it.To, it.Amount); err != nil {
			panic(fmt.Sprintf("engine: batch_transfer invariant violated: %v", err))
		}
		rec := newTransferRecord(caller, caller, it.To, it.Amount, fee, e.Now())
		ids[i] = e.Ledger.Append(rec)
	}
	return ids, nil
}

// SetName, SetLogo, SetFee, SetFeeTo and SetOwner are owner-only
// configuration mutators.

func (e *Engine) SetName(caller Principal, name string) error {
	if _, err := NewOwnerGuard(caller, e.Stats.OwnerPrincipal()); err != nil {
		return err
	}
	e.Stats.SetName(name)
	return nil
}

func (e *Engine) SetLogo(caller Principal, logo string) error {
	if _, err := NewOwnerGuard(caller, e.Stats.OwnerPrincipal()); err != nil {
		return err
	}
	e.Stats.SetLogo(logo)
	return nil
}

func (e *Engine) SetFee(caller Principal, fee Tokens128) error {
	if _, err := NewOwnerGuard(caller, e.Stats.OwnerPrincipal()); err != nil {
		return err
	}
	e.Stats.SetFee(fee)
	return nil
}

func (e *Engine) SetFeeTo(caller, feeTo Principal) error {
	if _, err := NewOwnerGuard(caller, e.Stats.OwnerPrincipal()); err != nil {
		return err
	}
	e.Stats.SetFeeTo(feeTo)
	return nil
}

func (e *Engine) SetOwner(caller, newOwner Principal) error {
	if _, err := NewOwnerGuard(caller, e.Stats.OwnerPrincipal()); err != nil {
		return err
	}
	e.Stats.SetOwner(newOwner)
	return nil
}

// SetMinCycles reconfigures the cycles threshold the auction's fee ratio is
// computed against. Unlike the other setters, an unauthorized caller here
// reports an AuctionError, matching the auction subsystem's own error type.
func (e *Engine) SetMinCycles(caller Principal, value uint64) error {
	if caller != e.Stats.OwnerPrincipal() {
		return NewAuctionUnauthorized(caller)
	}
	e.Stats.SetMinCycles(value)
	return nil
}

// SetAuctionPeriod reconfigures the cooldown between settlements, in
// seconds.
func (e *Engine) SetAuctionPeriod(caller Principal, seconds uint64) error {
	if caller != e.Stats.OwnerPrincipal() {
		return NewAuctionUnauthorized(caller)
	}
	e.Auction.SetAuctionPeriod(seconds)
	return nil
}

// BidCycles records a cycle bid from bidder toward the next settlement.
func (e *Engine) BidCycles(bidder Principal, cycles uint64) error {
	return e.Auction.BidCycles(bidder, cycles)
}

// BiddingInfo reports the open round's state as seen by caller.
func (e *Engine) BiddingInfo(caller Principal) BiddingInfoView {
	return e.Auction.BiddingInfo(caller)
}

// RunAuction settles the open bidding round if the cooldown has elapsed,
// recomputing the fee ratio from the current cycles balance first.
func (e *Engine) RunAuction() (AuctionInfo, error) {
	now := e.Now()
	if remaining := e.Auction.CooldownSecondsRemaining(now); remaining > 0 {
		return AuctionInfo{}, NewTooEarlyToBeginAuction(remaining)
	}
	e.Auction.RecomputeFeeRatio(e.Cycles(), e.Stats.MinCyclesValue())
	return e.Auction.DisburseRewards(e.Balances, e.Ledger, now)
}
