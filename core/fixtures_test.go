package core

import "github.com/ethereum/go-ethereum/crypto"

// testPrincipal derives a deterministic, distinct Principal from a seed
// string so fixtures like alice/bob/john keep stable identities across
// test runs.
func testPrincipal(seed string) Principal {
	h := crypto.Keccak256([]byte(seed))
	return NewPrincipal(h[:PrincipalLen])
}

func testAlice() Principal { return testPrincipal("alice") }
func testBob() Principal   { return testPrincipal("bob") }
func testJohn() Principal  { return testPrincipal("john") }
func testXtc() Principal   { return testPrincipal("xtc") }

// testClock returns a monotonically increasing nanosecond clock seeded at
// an arbitrary but fixed instant, used wherever a test needs Engine.Now.
func testClock(start uint64) func() uint64 {
	t := start
	return func() uint64 {
		t += nanosPerSecond
		return t
	}
}

// testCycles returns a fixed cycles-balance function, used wherever a test
// needs Engine.Cycles.
func testCycles(balance uint64) func() uint64 {
	return func() uint64 { return balance }
}
