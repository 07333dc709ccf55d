package core

import (
	"fmt"
	"math/big"
)

// maxTokens128 is 2^128 - 1. math/big.Int is used instead of a fixed-width
// uint128 package (e.g. holiman/uint256, which is a 256-bit type and would
// silently admit values this ledger must reject) so every arithmetic op can
// be checked against the exact 128-bit ceiling token amounts live under.
var maxTokens128 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))

// Tokens128 is a checked unsigned 128-bit amount. The zero value is 0.
// Values are treated as immutable: every arithmetic method returns a new
// Tokens128 and never mutates its receiver's backing big.Int in place.
type Tokens128 struct {
	val big.Int
}

// TokensZero is the additive identity.
var TokensZero = Tokens128{}

// TokensFromUint64 builds a Tokens128 from a uint64.
func TokensFromUint64(v uint64) Tokens128 {
	return Tokens128{val: *new(big.Int).SetUint64(v)}
}

// TokensFromString parses a base-10 string into a Tokens128, rejecting
// negative values and values above the 128-bit ceiling.
func TokensFromString(s string) (Tokens128, error) {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return Tokens128{}, fmt.Errorf("tokens128: invalid integer %q", s)
	}
	if v.Sign() < 0 {
		return Tokens128{}, fmt.Errorf("tokens128: negative value %q", s)
	}
	if v.Cmp(maxTokens128) > 0 {
		return Tokens128{}, fmt.Errorf("tokens128: %q overflows 128 bits", s)
	}
	return Tokens128{val: *v}, nil
}

// Add returns a+b and false if the sum would exceed 2^128-1.
func (a Tokens128) Add(b Tokens128) (Tokens128, bool) {
	sum := new(big.Int).Add(&a.val, &b.val)
	if sum.Cmp(maxTokens128) > 0 {
		return Tokens128{}, false
	}
	return Tokens128{val: *sum}, true
}

// Sub returns a-b and false if b > a.
func (a Tokens128) Sub(b Tokens128) (Tokens128, bool) {
	if a.val.Cmp(&b.val) < 0 {
		return Tokens128{}, false
	}
	diff := new(big.Int).Sub(&a.val, &b.val)
	return Tokens128{val: *diff}, true
}

// Mul returns a*b and false if the product would exceed 2^128-1.
func (a Tokens128) Mul(b Tokens128) (Tokens128, bool) {
	prod := new(big.Int).Mul(&a.val, &b.val)
	if prod.Cmp(maxTokens128) > 0 {
		return Tokens128{}, false
	}
	return Tokens128{val: *prod}, true
}

// Div returns the floor of a/b and false if b is zero.
func (a Tokens128) Div(b Tokens128) (Tokens128, bool) {
	if b.val.Sign() == 0 {
		return Tokens128{}, false
	}
	q := new(big.Int).Div(&a.val, &b.val)
	return Tokens128{val: *q}, true
}

// Cmp returns -1, 0 or 1 as a is less than, equal to, or greater than b.
func (a Tokens128) Cmp(b Tokens128) int { return a.val.Cmp(&b.val) }

// IsZero reports whether a is 0.
func (a Tokens128) IsZero() bool { return a.val.Sign() == 0 }

// String renders a as a base-10 integer.
func (a Tokens128) String() string { return a.val.String() }

// Uint64 truncates a to a uint64, for contexts (cycle amounts, test fixtures)
// known to stay within that range.
func (a Tokens128) Uint64() uint64 { return a.val.Uint64() }

// MarshalJSON renders the amount as a JSON string so values above 2^53 do
// not lose precision when decoded by non-Go consumers.
func (a Tokens128) MarshalJSON() ([]byte, error) {
	return []byte(`"` + a.val.String() + `"`), nil
}

// UnmarshalJSON parses the string produced by MarshalJSON.
func (a *Tokens128) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	parsed, err := TokensFromString(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
