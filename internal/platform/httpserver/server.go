package httpserver

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	ballotengine "ballotbox/contexts/governance/ballot-engine"
	ballotdomainerrors "ballotbox/contexts/governance/ballot-engine/domain/errors"
	ballothttp "ballotbox/contexts/governance/ballot-engine/transport/http"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "ballotbox/internal/platform/httpserver/docs"
)

type Server struct {
	mux    *http.ServeMux
	logger *slog.Logger
	addr   string
	ballot ballotengine.Module
}

func New(ballot ballotengine.Module, logger *slog.Logger, addr string) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:    http.NewServeMux(),
		logger: logger,
		addr:   addr,
		ballot: ballot,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("POST /api/ballot/v1/election", s.handleCreateElection)
	s.mux.HandleFunc("GET /api/ballot/v1/election", s.handleGetElection)
	s.mux.HandleFunc("POST /api/ballot/v1/voters/{account_id}/authorize", s.handleAuthorizeVoter)
	s.mux.HandleFunc("GET /api/ballot/v1/voters/{account_id}", s.handleVoterStatus)
	s.mux.HandleFunc("POST /api/ballot/v1/votes", s.handleCastVote)
	s.mux.HandleFunc("GET /api/ballot/v1/candidates", s.handleCandidates)
	s.mux.HandleFunc("POST /api/ballot/v1/tally", s.handleTally)
	s.mux.HandleFunc("GET /api/ballot/v1/analytics", s.handleAnalytics)
}

func (s *Server) handleCreateElection(w http.ResponseWriter, r *http.Request) {
	callerID := resolveCallerID(r)
	if callerID == "" {
		writeBallotError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}

	var req ballothttp.CreateElectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBallotError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.ballot.Handler.CreateElectionHandler(r.Context(), callerID, req)
	if err != nil {
		writeBallotDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetElection(w http.ResponseWriter, r *http.Request) {
	resp, err := s.ballot.Handler.GetElectionHandler(r.Context())
	if err != nil {
		writeBallotDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAuthorizeVoter(w http.ResponseWriter, r *http.Request) {
	callerID := resolveCallerID(r)
	if callerID == "" {
		writeBallotError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}

	accountID := r.PathValue("account_id")
	resp, err := s.ballot.Handler.AuthorizeVoterHandler(r.Context(), callerID, accountID)
	if err != nil {
		writeBallotDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleVoterStatus(w http.ResponseWriter, r *http.Request) {
	accountID := r.PathValue("account_id")
	resp, err := s.ballot.Handler.VoterStatusHandler(r.Context(), accountID)
	if err != nil {
		writeBallotDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCastVote(w http.ResponseWriter, r *http.Request) {
	callerID := resolveCallerID(r)
	if callerID == "" {
		writeBallotError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}

	var req ballothttp.CastVoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBallotError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.ballot.Handler.CastVoteHandler(r.Context(), callerID, req)
	if err != nil {
		writeBallotDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCandidates(w http.ResponseWriter, r *http.Request) {
	resp, err := s.ballot.Handler.CandidatesHandler(r.Context())
	if err != nil {
		writeBallotDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleTally(w http.ResponseWriter, r *http.Request) {
	callerID := resolveCallerID(r)
	if callerID == "" {
		writeBallotError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}

	resp, err := s.ballot.Handler.TallyHandler(r.Context(), callerID)
	if err != nil {
		writeBallotDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	resp, err := s.ballot.Handler.AnalyticsHandler(r.Context())
	if err != nil {
		writeBallotDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeBallotDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ballotdomainerrors.ErrInvalidConfiguration):
		writeBallotError(w, http.StatusBadRequest, "invalid_configuration", err.Error())
	case errors.Is(err, ballotdomainerrors.ErrInvalidCandidate):
		writeBallotError(w, http.StatusBadRequest, "invalid_candidate", err.Error())
	case errors.Is(err, ballotdomainerrors.ErrUnauthorized):
		writeBallotError(w, http.StatusForbidden, "not_owner", err.Error())
	case errors.Is(err, ballotdomainerrors.ErrNotAuthorized):
		writeBallotError(w, http.StatusForbidden, "not_authorized", err.Error())
	case errors.Is(err, ballotdomainerrors.ErrAlreadyVoted):
		writeBallotError(w, http.StatusConflict, "already_voted", err.Error())
	case errors.Is(err, ballotdomainerrors.ErrElectionExists):
		writeBallotError(w, http.StatusConflict, "election_exists", err.Error())
	case errors.Is(err, ballotdomainerrors.ErrElectionNotFound):
		writeBallotError(w, http.StatusNotFound, "election_not_found", err.Error())
	default:
		writeBallotError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeBallotError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, ballothttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// resolveCallerID trusts the host-supplied identity header; the engine never
// authenticates callers itself.
func resolveCallerID(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get("X-User-Id"))
}
