// Package api exposes the engine's read-only query surface over HTTP using
// go-chi, grounded in the same router/middleware idiom the rest of this
// codebase uses for its host-facing entry points.
package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"cycle-ledger/core"
)

// Server serves every query-only engine operation over HTTP. It never
// mutates the wrapped engine.
type Server struct {
	engine *core.Engine
	router chi.Router
}

// NewServer builds a Server backed by engine.
func NewServer(engine *core.Engine) *Server {
	s := &Server{engine: engine, router: chi.NewRouter()}
	s.router.Use(middleware.RequestID, middleware.Recoverer)
	s.router.Use(requestLogger)
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logrus.WithFields(logrus.Fields{"method": r.Method, "path": r.URL.Path}).Debug("api: request")
		next.ServeHTTP(w, r)
	})
}

func (s *Server) routes() {
	s.router.Get("/metadata", s.handleMetadata)
	s.router.Get("/token-info", s.handleTokenInfo)
	s.router.Get("/idl", s.handleIDL)
	s.router.Get("/balance/{principal}", s.handleBalance)
	s.router.Get("/allowance/{owner}/{spender}", s.handleAllowance)
	s.router.Get("/holders", s.handleHolders)
	s.router.Get("/history-size", s.handleHistorySize)
	s.router.Get("/transactions", s.handleTransactions)
	s.router.Get("/transactions/{id}", s.handleTransaction)
	s.router.Get("/approvals/{owner}", s.handleUserApprovals)
	s.router.Get("/allowance-size", s.handleAllowanceSize)
	s.router.Get("/user-transaction-count/{principal}", s.handleUserTransactionCount)
	s.router.Get("/min-cycles", s.handleMinCycles)
	s.router.Get("/auction/bidding-info/{caller}", s.handleBiddingInfo)
	s.router.Get("/auction/{id}", s.handleAuctionInfo)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.WithError(err).Error("api: encode response")
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func principalParam(r *http.Request, name string) (core.Principal, error) {
	return core.ParsePrincipalHex(chi.URLParam(r, name))
}

func (s *Server) handleMetadata(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.engine.GetMetadata())
}

func (s *Server) handleTokenInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.engine.GetTokenInfo())
}

func (s *Server) handleIDL(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(s.engine.GetIdl()))
}

func (s *Server) handleBalance(w http.ResponseWriter, r *http.Request) {
	p, err := principalParam(r, "principal")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"balance": s.engine.BalanceOf(p).String()})
}

func (s *Server) handleAllowance(w http.ResponseWriter, r *http.Request) {
	owner, err := principalParam(r, "owner")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	spender, err := principalParam(r, "spender")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"allowance": s.engine.Allowance(owner, spender).String()})
}

func (s *Server) handleHolders(w http.ResponseWriter, r *http.Request) {
	start := intQueryParam(r, "start", 0)
	limit := intQueryParam(r, "limit", 100)
	writeJSON(w, http.StatusOK, s.engine.GetHolders(start, limit))
}

func (s *Server) handleHistorySize(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]uint64{"history_size": s.engine.HistorySize()})
}

func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	count := intQueryParam(r, "count", 100)
	var who *core.Principal
	if raw := r.URL.Query().Get("principal"); raw != "" {
		p, err := core.ParsePrincipalHex(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		who = &p
	}
	var start *core.TxId
	if raw := r.URL.Query().Get("start"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		start = &id
	}
	writeJSON(w, http.StatusOK, s.engine.GetTransactions(who, count, start))
}

func (s *Server) handleTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	rec, ok := s.engine.Ledger.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, errTransactionNotFound)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleUserApprovals(w http.ResponseWriter, r *http.Request) {
	owner, err := principalParam(r, "owner")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, s.engine.GetUserApprovals(owner))
}

func (s *Server) handleAllowanceSize(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]int{"allowance_size": s.engine.GetAllowanceSize()})
}

func (s *Server) handleUserTransactionCount(w http.ResponseWriter, r *http.Request) {
	p, err := principalParam(r, "principal")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"count": s.engine.GetUserTransactionCount(p)})
}

func (s *Server) handleMinCycles(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]uint64{"min_cycles": s.engine.GetMinCycles()})
}

func (s *Server) handleBiddingInfo(w http.ResponseWriter, r *http.Request) {
	caller, err := principalParam(r, "caller")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, s.engine.BiddingInfo(caller))
}

func (s *Server) handleAuctionInfo(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	info, ok := s.engine.AuctionInfo(id)
	if !ok {
		writeError(w, http.StatusNotFound, errAuctionNotFound)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

func intQueryParam(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
