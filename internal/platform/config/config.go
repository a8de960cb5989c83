package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is centralized process configuration. The election constructor
// arguments live here because the host driver supplies them: when all three
// ELECTION_* values are present, bootstrap constructs the election at
// startup if the repository holds none.
type Config struct {
	ServiceName string `env:"SERVICE_NAME" envDefault:"ballotbox"`
	HTTPPort    string `env:"HTTP_PORT" envDefault:"8080"`
	PostgresDSN string `env:"POSTGRES_DSN"`

	ElectionOwner      string   `env:"ELECTION_OWNER"`
	ElectionName       string   `env:"ELECTION_NAME"`
	ElectionCandidates []string `env:"ELECTION_CANDIDATES" envSeparator:","`

	RelayInterval  time.Duration `env:"OUTBOX_RELAY_INTERVAL" envDefault:"5s"`
	RelayBatchSize int           `env:"OUTBOX_RELAY_BATCH_SIZE" envDefault:"100"`
}

func Load() (Config, error) {
	// A missing .env file is the normal production case.
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

// HasElectionSeed reports whether the environment carries a complete set of
// constructor arguments.
func (c Config) HasElectionSeed() bool {
	return c.ElectionOwner != "" && c.ElectionName != "" && len(c.ElectionCandidates) > 0
}
