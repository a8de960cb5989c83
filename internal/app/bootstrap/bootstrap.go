package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	ballotengine "ballotbox/contexts/governance/ballot-engine"
	postgresadapter "ballotbox/contexts/governance/ballot-engine/adapters/postgres"
	"ballotbox/contexts/governance/ballot-engine/application/commands"
	"ballotbox/contexts/governance/ballot-engine/application/workers"
	domainerrors "ballotbox/contexts/governance/ballot-engine/domain/errors"
	"ballotbox/internal/platform/config"
	"ballotbox/internal/platform/db"
	"ballotbox/internal/platform/httpserver"
	"ballotbox/internal/platform/messaging"
)

// Package bootstrap is the composition root. Construction and wiring stay
// here so module code remains framework-agnostic.

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	logger   *slog.Logger
}

func (a *APIApp) Run() error {
	return a.server.Start()
}

func (a *APIApp) Close() error {
	return a.postgres.Close()
}

type WorkerApp struct {
	postgres     *db.Postgres
	relay        workers.OutboxRelay
	audit        workers.AuditTrailConsumer
	pollInterval time.Duration
	logger       *slog.Logger
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")

	var (
		module ballotengine.Module
		pg     *db.Postgres
	)
	if strings.TrimSpace(cfg.PostgresDSN) != "" {
		pg, err = db.Connect(cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		if err := postgresadapter.Migrate(pg.DB); err != nil {
			_ = pg.Close()
			return nil, err
		}
		repo := postgresadapter.NewRepository(pg.DB, logger)
		module = ballotengine.NewModule(ballotengine.Dependencies{
			Elections: repo,
			Outbox:    repo,
			Clock:     postgresadapter.SystemClock{},
			IDGen:     postgresadapter.UUIDGenerator{},
			Logger:    logger,
		})
	} else {
		logger.Warn("POSTGRES_DSN is empty; election state will not survive restarts",
			"event", "bootstrap_memory_store",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
		module = ballotengine.NewInMemoryModule(nil, logger)
	}

	if err := seedElection(context.Background(), module, cfg, logger); err != nil {
		_ = pg.Close()
		return nil, err
	}

	server := httpserver.New(module, logger, normalizeAddr(cfg.HTTPPort))
	return &APIApp{
		server:   server,
		postgres: pg,
		logger:   logger,
	}, nil
}

func BuildWorker() (*WorkerApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "worker")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}
	if err := postgresadapter.Migrate(pg.DB); err != nil {
		_ = pg.Close()
		return nil, err
	}

	repo := postgresadapter.NewRepository(pg.DB, logger)
	bus := messaging.NewBus(logger)
	return &WorkerApp{
		postgres: pg,
		relay: workers.OutboxRelay{
			Outbox:    repo,
			Publisher: bus,
			Clock:     postgresadapter.SystemClock{},
			BatchSize: cfg.RelayBatchSize,
			Logger:    logger,
		},
		audit: workers.AuditTrailConsumer{
			Subscriber: bus,
			Logger:     logger,
		},
		pollInterval: cfg.RelayInterval,
		logger:       logger,
	}, nil
}

func (w *WorkerApp) Run(ctx context.Context) error {
	if err := w.audit.Start(ctx); err != nil {
		return err
	}
	interval := w.pollInterval
	if interval <= 0 {
		interval = 5 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := w.relay.RunOnce(ctx); err != nil {
				// Relay failures are retried on the next tick; the outbox keeps
				// unpublished rows pending.
				w.logger.Error("outbox relay cycle failed",
					"event", "bootstrap_relay_cycle_failed",
					"module", "internal/app/bootstrap",
					"layer", "platform",
					"error", err.Error(),
				)
			}
		}
	}
}

func (w *WorkerApp) Close() error {
	return w.postgres.Close()
}

// seedElection constructs the election from environment-supplied arguments
// when the repository holds none. Restarting against a durable repository is
// a no-op.
func seedElection(ctx context.Context, module ballotengine.Module, cfg config.Config, logger *slog.Logger) error {
	if !cfg.HasElectionSeed() {
		return nil
	}
	_, err := module.Handler.Results.Election(ctx)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domainerrors.ErrElectionNotFound) {
		return err
	}

	election, err := module.Handler.Ballots.CreateElection(ctx, commands.CreateElectionCommand{
		OwnerID:        cfg.ElectionOwner,
		Name:           cfg.ElectionName,
		CandidateNames: cfg.ElectionCandidates,
	})
	if err != nil {
		return err
	}
	logger.Info("election seeded from environment",
		"event", "bootstrap_election_seeded",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"election_id", election.ElectionID,
		"name", election.Name,
		"candidate_count", len(election.Candidates),
	)
	return nil
}

func normalizeAddr(port string) string {
	port = strings.TrimSpace(port)
	if port == "" {
		return ":8080"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return ":" + port
}
