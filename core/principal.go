package core

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"strings"
)

// PrincipalLen is the wire length of a Principal, matching the opaque
// 29-byte identity form used by the host runtime this engine is embedded in.
const PrincipalLen = 29

// Principal is an opaque, totally ordered, hashable identity. The zero value
// is ANONYMOUS_PRINCIPAL.
type Principal [PrincipalLen]byte

// ANONYMOUS_PRINCIPAL is used only for uninitialized defaults; it is never a
// valid caller identity.
var ANONYMOUS_PRINCIPAL = Principal{}

// AUCTION_PRINCIPAL is the host's management identity, chosen as the holder
// of auction-accumulated fees because no real actor can ever sign as it.
var AUCTION_PRINCIPAL = Principal{
	0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
	0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
	0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
}

// NewPrincipal copies up to PrincipalLen bytes of b into a Principal,
// left-aligned. Shorter inputs are zero-padded on the right.
func NewPrincipal(b []byte) Principal {
	var p Principal
	n := len(b)
	if n > PrincipalLen {
		n = PrincipalLen
	}
	copy(p[:], b[:n])
	return p
}

// ParsePrincipalHex parses a "0x"-prefixed or bare hex string into a
// Principal. The decoded length must equal PrincipalLen.
func ParsePrincipalHex(s string) (Principal, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "0x")
	b, err := hex.DecodeString(s)
	if err != nil {
		return Principal{}, fmt.Errorf("principal: invalid hex %q: %w", s, err)
	}
	if len(b) != PrincipalLen {
		return Principal{}, fmt.Errorf("principal: expected %d bytes, got %d", PrincipalLen, len(b))
	}
	var p Principal
	copy(p[:], b)
	return p, nil
}

// String renders the principal as a 0x-prefixed hex string.
func (p Principal) String() string {
	return "0x" + hex.EncodeToString(p[:])
}

// Hex is an alias for String, matching the query surface's naming.
func (p Principal) Hex() string { return p.String() }

// Less gives Principal a total order, used for deterministic tie-breaking in
// get_holders and auction disbursement iteration.
func (p Principal) Less(other Principal) bool {
	return bytes.Compare(p[:], other[:]) < 0
}

// IsAnonymous reports whether p is the uninitialized-default sentinel.
func (p Principal) IsAnonymous() bool { return p == ANONYMOUS_PRINCIPAL }

// MarshalText renders the principal as a hex string so ledger snapshots and
// WAL records stay human-inspectable. Implementing TextMarshaler (rather
// than MarshalJSON) also lets encoding/json accept Principal as a map key,
// which the balance and bidding tables rely on.
func (p Principal) MarshalText() ([]byte, error) {
	return []byte(p.Hex()), nil
}

// UnmarshalText parses the hex string produced by MarshalText.
func (p *Principal) UnmarshalText(data []byte) error {
	parsed, err := ParsePrincipalHex(string(data))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// ---------------------------------------------------------------------
// CheckedPrincipal guards
//
// Each caller-vs-argument precondition gets its own concrete guard type
// with a validating constructor. The constructor is the only way to obtain
// a guard value, so a function that accepts one can assume the
// precondition already holds.
// ---------------------------------------------------------------------

// WithRecipient guards an operation where the caller must differ from a
// single recipient argument (transfer, approve, transfer_include_fee).
type WithRecipient struct {
	caller    Principal
	recipient Principal
}

// NewWithRecipient validates caller != recipient.
func NewWithRecipient(caller, recipient Principal) (WithRecipient, error) {
	if caller == recipient {
		return WithRecipient{}, ErrSelfTransfer
	}
	return WithRecipient{caller: caller, recipient: recipient}, nil
}

func (c WithRecipient) Inner() Principal     { return c.caller }
func (c WithRecipient) Recipient() Principal { return c.recipient }

// SenderRecipient guards transfer_from: the ledger-level from/to must
// differ, which is the self-transfer check that matters here since the
// caller moves someone else's funds.
type SenderRecipient struct {
	caller Principal
	from   Principal
	to     Principal
}

// NewSenderRecipient validates from != to.
func NewSenderRecipient(caller, from, to Principal) (SenderRecipient, error) {
	if from == to {
		return SenderRecipient{}, ErrSelfTransfer
	}
	return SenderRecipient{caller: caller, from: from, to: to}, nil
}

func (c SenderRecipient) Inner() Principal { return c.caller }
func (c SenderRecipient) From() Principal  { return c.from }
func (c SenderRecipient) To() Principal    { return c.to }

// OwnerGuard guards operations restricted to the token owner.
type OwnerGuard struct {
	caller Principal
}

// NewOwnerGuard validates caller == owner.
func NewOwnerGuard(caller, owner Principal) (OwnerGuard, error) {
	if caller != owner {
		return OwnerGuard{}, ErrUnauthorized
	}
	return OwnerGuard{caller: caller}, nil
}

func (c OwnerGuard) Inner() Principal { return c.caller }

// TestNetGuard guards operations allowed on any caller, but only when the
// token is flagged as a test token.
type TestNetGuard struct {
	caller Principal
}

// NewTestNetGuard validates isTestToken.
func NewTestNetGuard(caller Principal, isTestToken bool) (TestNetGuard, error) {
	if !isTestToken {
		return TestNetGuard{}, ErrUnauthorized
	}
	return TestNetGuard{caller: caller}, nil
}

func (c TestNetGuard) Inner() Principal { return c.caller }
