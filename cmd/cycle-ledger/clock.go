package main

import (
	"strconv"
	"time"
)

// clgNowNanos is the engine's wall clock, passed to core.NewEngine as its
// Now function.
func clgNowNanos() uint64 {
	return uint64(time.Now().UnixNano())
}

// clgCyclesBalance reports the canister-style cycles balance this process
// is running with. Outside the Internet Computer there is no metered
// balance to read, so it is env-configured, defaulting to zero, which
// keeps the auction fee ratio at its floor until an operator sets it.
func clgCyclesBalance() uint64 {
	return clgEnvOrDefaultUint64("CANISTER_CYCLES_BALANCE", 0)
}

func clgEnvOrDefaultUint64(key string, fallback uint64) uint64 {
	raw := clgEnvOrDefault(key, "")
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return fallback
	}
	return v
}
