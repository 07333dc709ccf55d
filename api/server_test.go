package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"cycle-ledger/core"
)

func testEngine(t *testing.T) (*core.Engine, core.Principal) {
	t.Helper()
	owner := core.NewPrincipal([]byte("owner-principal-fixture"))
	e, err := core.NewEngine(
		core.Metadata{Name: "Cycle Token", Symbol: "CYC", Decimals: 8, TotalSupply: core.TokensFromUint64(1000), Owner: owner},
		core.LedgerConfig{},
		core.DefaultAuctionPeriodSeconds,
		func() uint64 { return 1 },
		func() uint64 { return 0 },
	)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	t.Cleanup(func() { e.Ledger.Close() })
	return e, owner
}

func TestHandleBalance(t *testing.T) {
	engine, owner := testEngine(t)
	srv := NewServer(engine)

	req := httptest.NewRequest(http.MethodGet, "/balance/"+owner.Hex(), nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["balance"] != "1000" {
		t.Fatalf("balance = %q, want 1000", body["balance"])
	}
}

func TestHandleBalanceInvalidPrincipal(t *testing.T) {
	engine, _ := testEngine(t)
	srv := NewServer(engine)

	req := httptest.NewRequest(http.MethodGet, "/balance/not-hex", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestHandleTransactionNotFound(t *testing.T) {
	engine, _ := testEngine(t)
	srv := NewServer(engine)

	req := httptest.NewRequest(http.MethodGet, "/transactions/999", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestHandleUserApprovals(t *testing.T) {
	engine, owner := testEngine(t)
	srv := NewServer(engine)

	spender := core.NewPrincipal([]byte("spender-principal-fixture"))
	if _, err := engine.Approve(owner, spender, core.TokensFromUint64(10)); err != nil {
		t.Fatalf("Approve: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/approvals/"+owner.Hex(), nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var approvals []core.Approval
	if err := json.NewDecoder(rec.Body).Decode(&approvals); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(approvals) != 1 || approvals[0].Spender != spender {
		t.Fatalf("approvals = %+v, want one entry for the spender", approvals)
	}
}

func TestHandleAllowanceSize(t *testing.T) {
	engine, _ := testEngine(t)
	srv := NewServer(engine)

	req := httptest.NewRequest(http.MethodGet, "/allowance-size", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body map[string]int
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["allowance_size"] != 0 {
		t.Fatalf("allowance_size = %d, want 0", body["allowance_size"])
	}
}

func TestHandleTokenInfo(t *testing.T) {
	engine, _ := testEngine(t)
	srv := NewServer(engine)

	req := httptest.NewRequest(http.MethodGet, "/token-info", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var info core.TokenInfo
	if err := json.NewDecoder(rec.Body).Decode(&info); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if info.Metadata.Symbol != "CYC" {
		t.Fatalf("Metadata.Symbol = %q, want CYC", info.Metadata.Symbol)
	}
}
