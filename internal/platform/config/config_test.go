package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	// Neutralize runner environment; empty values fall back to tag defaults.
	for _, key := range []string{"SERVICE_NAME", "HTTP_PORT", "OUTBOX_RELAY_INTERVAL", "OUTBOX_RELAY_BATCH_SIZE"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.ServiceName != "ballotbox" {
		t.Fatalf("expected default service name, got %q", cfg.ServiceName)
	}
	if cfg.HTTPPort != "8080" {
		t.Fatalf("expected default port, got %q", cfg.HTTPPort)
	}
	if cfg.RelayInterval != 5*time.Second {
		t.Fatalf("expected default relay interval, got %s", cfg.RelayInterval)
	}
	if cfg.RelayBatchSize != 100 {
		t.Fatalf("expected default batch size, got %d", cfg.RelayBatchSize)
	}
}

func TestLoadElectionSeed(t *testing.T) {
	t.Setenv("ELECTION_OWNER", "owner-1")
	t.Setenv("ELECTION_NAME", "Best Language")
	t.Setenv("ELECTION_CANDIDATES", "Rust,Go,Zig")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if !cfg.HasElectionSeed() {
		t.Fatalf("expected complete seed, got %+v", cfg)
	}
	if len(cfg.ElectionCandidates) != 3 || cfg.ElectionCandidates[2] != "Zig" {
		t.Fatalf("unexpected candidates: %v", cfg.ElectionCandidates)
	}
}

func TestHasElectionSeedRequiresAllValues(t *testing.T) {
	t.Setenv("ELECTION_OWNER", "owner-1")
	t.Setenv("ELECTION_NAME", "")
	t.Setenv("ELECTION_CANDIDATES", "Rust")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.HasElectionSeed() {
		t.Fatalf("partial seed should not count as complete: %+v", cfg)
	}
}
