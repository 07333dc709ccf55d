package core

import "sync"

// DefaultMinCycles is the cycles balance at and above which the fee ratio
// reaches 1; below it the ratio falls in proportion to the balance.
const DefaultMinCycles uint64 = 10_000_000_000_000

// Metadata is the caller-supplied configuration used to deploy a token.
type Metadata struct {
	Logo        string    `json:"logo"`
	Name        string    `json:"name"`
	Symbol      string    `json:"symbol"`
	Decimals    uint8     `json:"decimals"`
	TotalSupply Tokens128 `json:"total_supply"`
	Owner       Principal `json:"owner"`
	Fee         Tokens128 `json:"fee"`
	FeeTo       Principal `json:"fee_to"`
	IsTestToken bool      `json:"is_test_token"`
}

// TokenInfo is the aggregate, point-in-time view returned by get_token_info.
type TokenInfo struct {
	Metadata      Metadata `json:"metadata"`
	FeeRatio      float64  `json:"fee_ratio"`
	HistorySize   uint64   `json:"history_size"`
	DeployTime    uint64   `json:"deploy_time"`
	HolderNumber  int      `json:"holder_number"`
	CyclesBalance uint64   `json:"cycles_balance"`
}

// Stats holds the mutable, owner-controlled token configuration plus the
// running total supply.
type Stats struct {
	mu          sync.RWMutex
	logo        string
	name        string
	symbol      string
	decimals    uint8
	totalSupply Tokens128
	owner       Principal
	fee         Tokens128
	feeTo       Principal
	deployTime  uint64
	minCycles   uint64
	isTestToken bool
}

// NewStats builds the initial Stats from deploy-time metadata.
func NewStats(meta Metadata, deployTime uint64) *Stats {
	return &Stats{
		logo:        meta.Logo,
		name:        meta.Name,
		symbol:      meta.Symbol,
		decimals:    meta.Decimals,
		totalSupply: TokensZero,
		owner:       meta.Owner,
		fee:         meta.Fee,
		feeTo:       meta.FeeTo,
		deployTime:  deployTime,
		minCycles:   DefaultMinCycles,
		isTestToken: meta.IsTestToken,
	}
}

// FeeInfo returns the current transfer fee and its destination.
func (s *Stats) FeeInfo() (Tokens128, Principal) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fee, s.feeTo
}

// OwnerPrincipal returns the token owner.
func (s *Stats) OwnerPrincipal() Principal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.owner
}

// IsTestToken reports whether mint is open to any caller.
func (s *Stats) IsTestToken() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isTestToken
}

// TotalSupply returns the current total supply.
func (s *Stats) TotalSupply() Tokens128 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.totalSupply
}

// MinCyclesValue returns the configured minimum cycles threshold.
func (s *Stats) MinCyclesValue() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.minCycles
}

// AddSupply increases total supply by amount, failing if it would overflow
// 128 bits.
func (s *Stats) AddSupply(amount Tokens128) (Tokens128, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	newSupply, ok := s.totalSupply.Add(amount)
	if !ok {
		return Tokens128{}, false
	}
	s.totalSupply = newSupply
	return newSupply, true
}

// SubSupply decreases total supply by amount, failing if amount exceeds the
// current supply.
func (s *Stats) SubSupply(amount Tokens128) (Tokens128, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	newSupply, ok := s.totalSupply.Sub(amount)
	if !ok {
		return Tokens128{}, false
	}
	s.totalSupply = newSupply
	return newSupply, true
}

func (s *Stats) SetName(name string)      { s.mu.Lock(); s.name = name; s.mu.Unlock() }
func (s *Stats) SetLogo(logo string)      { s.mu.Lock(); s.logo = logo; s.mu.Unlock() }
func (s *Stats) SetSymbol(symbol string)  { s.mu.Lock(); s.symbol = symbol; s.mu.Unlock() }
func (s *Stats) SetFee(fee Tokens128)     { s.mu.Lock(); s.fee = fee; s.mu.Unlock() }
func (s *Stats) SetFeeTo(to Principal)    { s.mu.Lock(); s.feeTo = to; s.mu.Unlock() }
func (s *Stats) SetOwner(owner Principal) { s.mu.Lock(); s.owner = owner; s.mu.Unlock() }
func (s *Stats) SetMinCycles(v uint64)    { s.mu.Lock(); s.minCycles = v; s.mu.Unlock() }

// AsMetadata snapshots the current configuration as a Metadata value, used
// by get_metadata and get_token_info.
func (s *Stats) AsMetadata() Metadata {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Metadata{
		Logo:        s.logo,
		Name:        s.name,
		Symbol:      s.symbol,
		Decimals:    s.decimals,
		TotalSupply: s.totalSupply,
		Owner:       s.owner,
		Fee:         s.fee,
		FeeTo:       s.feeTo,
		IsTestToken: s.isTestToken,
	}
}

// statsSnapshot is the JSON-serializable form of Stats used in persistence.
type statsSnapshot struct {
	Logo        string    `json:"logo"`
	Name        string    `json:"name"`
	Symbol      string    `json:"symbol"`
	Decimals    uint8     `json:"decimals"`
	TotalSupply Tokens128 `json:"total_supply"`
	Owner       Principal `json:"owner"`
	Fee         Tokens128 `json:"fee"`
	FeeTo       Principal `json:"fee_to"`
	DeployTime  uint64    `json:"deploy_time"`
	MinCycles   uint64    `json:"min_cycles"`
	IsTestToken bool      `json:"is_test_token"`
}

// Snapshot renders the current configuration for persistence.
func (s *Stats) Snapshot() statsSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return statsSnapshot{
		Logo: s.logo, Name: s.name, Symbol: s.symbol, Decimals: s.decimals,
		TotalSupply: s.totalSupply, Owner: s.owner, Fee: s.fee, FeeTo: s.feeTo,
		DeployTime: s.deployTime, MinCycles: s.minCycles, IsTestToken: s.isTestToken,
	}
}

// Restore replaces the configuration wholesale from a persisted snapshot.
func (s *Stats) Restore(snap statsSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logo, s.name, s.symbol, s.decimals = snap.Logo, snap.Name, snap.Symbol, snap.Decimals
	s.totalSupply, s.owner, s.fee, s.feeTo = snap.TotalSupply, snap.Owner, snap.Fee, snap.FeeTo
	s.deployTime, s.minCycles, s.isTestToken = snap.DeployTime, snap.MinCycles, snap.IsTestToken
}
