// Package ballotengine implements the Ballot Engine inside the governance
// context.
//
// The module owns the single-owner election state machine: voter
// authorization, one ballot per authorized account, live per-candidate
// tallies, and audit event production through an outbox-backed worker. It
// keeps business rules in the domain/application layers and isolates
// infrastructure concerns behind ports and adapters.
package ballotengine
