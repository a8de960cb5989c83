package httpserver

import (
	"net/http"
	"testing"

	ballothttp "ballotbox/contexts/governance/ballot-engine/transport/http"
)

func TestMutationsRequireIdentityHeader(t *testing.T) {
	server := newTestServer()
	constructElection(t, server)

	cases := []struct {
		name   string
		method string
		target string
		body   string
	}{
		{"create", http.MethodPost, "/api/ballot/v1/election", `{"name":"x","candidates":["a"]}`},
		{"authorize", http.MethodPost, "/api/ballot/v1/voters/alice/authorize", ""},
		{"vote", http.MethodPost, "/api/ballot/v1/votes", `{"candidate_index":0}`},
		{"tally", http.MethodPost, "/api/ballot/v1/tally", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := doJSON(t, server, tc.method, tc.target, "", tc.body)
			if rr.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d: %s", rr.Code, rr.Body.String())
			}
			var resp ballothttp.ErrorResponse
			decodeInto(t, rr, &resp)
			if resp.Code != "missing_user" {
				t.Fatalf("expected missing_user, got %q", resp.Code)
			}
		})
	}
}

func TestDomainErrorStatusMapping(t *testing.T) {
	server := newTestServer()

	// Reads against an unconstructed engine map to 404.
	rr := doJSON(t, server, http.MethodGet, "/api/ballot/v1/election", "", "")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 before construction, got %d", rr.Code)
	}
	var resp ballothttp.ErrorResponse
	decodeInto(t, rr, &resp)
	if resp.Code != "election_not_found" {
		t.Fatalf("expected election_not_found, got %q", resp.Code)
	}

	// Invalid configuration maps to 400.
	rr = doJSON(t, server, http.MethodPost, "/api/ballot/v1/election", "owner-1", `{"name":"x","candidates":[]}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty candidates, got %d: %s", rr.Code, rr.Body.String())
	}
	decodeInto(t, rr, &resp)
	if resp.Code != "invalid_configuration" {
		t.Fatalf("expected invalid_configuration, got %q", resp.Code)
	}

	constructElection(t, server)

	// Second construction maps to 409.
	rr = doJSON(t, server, http.MethodPost, "/api/ballot/v1/election", "owner-2", `{"name":"x","candidates":["a"]}`)
	if rr.Code != http.StatusConflict {
		t.Fatalf("expected 409 for second construction, got %d", rr.Code)
	}
	decodeInto(t, rr, &resp)
	if resp.Code != "election_exists" {
		t.Fatalf("expected election_exists, got %q", resp.Code)
	}

	// Non-owner authorize maps to 403 not_owner.
	rr = doJSON(t, server, http.MethodPost, "/api/ballot/v1/voters/carol/authorize", "alice", "")
	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-owner authorize, got %d", rr.Code)
	}
	decodeInto(t, rr, &resp)
	if resp.Code != "not_owner" {
		t.Fatalf("expected not_owner, got %q", resp.Code)
	}

	// Unauthorized voter maps to 403 not_authorized.
	rr = doJSON(t, server, http.MethodPost, "/api/ballot/v1/votes", "bob", `{"candidate_index":0}`)
	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for unauthorized vote, got %d", rr.Code)
	}
	decodeInto(t, rr, &resp)
	if resp.Code != "not_authorized" {
		t.Fatalf("expected not_authorized, got %q", resp.Code)
	}

	// Out-of-range candidate maps to 400.
	doJSON(t, server, http.MethodPost, "/api/ballot/v1/voters/alice/authorize", "owner-1", "")
	rr = doJSON(t, server, http.MethodPost, "/api/ballot/v1/votes", "alice", `{"candidate_index":99}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for out-of-range candidate, got %d", rr.Code)
	}
	decodeInto(t, rr, &resp)
	if resp.Code != "invalid_candidate" {
		t.Fatalf("expected invalid_candidate, got %q", resp.Code)
	}

	// Repeat ballot maps to 409.
	doJSON(t, server, http.MethodPost, "/api/ballot/v1/votes", "alice", `{"candidate_index":0}`)
	rr = doJSON(t, server, http.MethodPost, "/api/ballot/v1/votes", "alice", `{"candidate_index":1}`)
	if rr.Code != http.StatusConflict {
		t.Fatalf("expected 409 for repeat ballot, got %d", rr.Code)
	}
	decodeInto(t, rr, &resp)
	if resp.Code != "already_voted" {
		t.Fatalf("expected already_voted, got %q", resp.Code)
	}

	// Non-owner tally maps to 403 not_owner.
	rr = doJSON(t, server, http.MethodPost, "/api/ballot/v1/tally", "alice", "")
	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-owner tally, got %d", rr.Code)
	}
	decodeInto(t, rr, &resp)
	if resp.Code != "not_owner" {
		t.Fatalf("expected not_owner, got %q", resp.Code)
	}
}

func TestMalformedJSONBody(t *testing.T) {
	server := newTestServer()
	rr := doJSON(t, server, http.MethodPost, "/api/ballot/v1/election", "owner-1", `{"name":`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed body, got %d", rr.Code)
	}
	var resp ballothttp.ErrorResponse
	decodeInto(t, rr, &resp)
	if resp.Code != "invalid_json" {
		t.Fatalf("expected invalid_json, got %q", resp.Code)
	}
}
