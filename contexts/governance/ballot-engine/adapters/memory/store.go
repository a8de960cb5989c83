package memory

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"ballotbox/contexts/governance/ballot-engine/domain/entities"
	domainerrors "ballotbox/contexts/governance/ballot-engine/domain/errors"
	"ballotbox/contexts/governance/ballot-engine/ports"

	"github.com/google/uuid"
)

type outboxRecord struct {
	record ports.OutboxRecord
	seq    int
}

// Store is the in-memory repository. One mutex around the entire state is
// the serialization boundary for the election instance.
type Store struct {
	mu sync.RWMutex

	election  *entities.Election
	outbox    map[string]outboxRecord
	outboxSeq int
}

func NewStore(seed *entities.Election) *Store {
	store := &Store{
		outbox: make(map[string]outboxRecord),
	}
	if seed != nil {
		copied := seed.Clone()
		store.election = &copied
	}
	return store
}

func (s *Store) CreateElection(_ context.Context, election entities.Election) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.election != nil {
		return domainerrors.ErrElectionExists
	}
	copied := election.Clone()
	s.election = &copied
	return nil
}

func (s *Store) GetElection(_ context.Context) (entities.Election, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.election == nil {
		return entities.Election{}, domainerrors.ErrElectionNotFound
	}
	return s.election.Clone(), nil
}

// UpdateElection runs the mutation against a copy and swaps it in only when
// the closure succeeds, so a failed call leaves no partial state.
func (s *Store) UpdateElection(_ context.Context, mutate func(*entities.Election) error) (entities.Election, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.election == nil {
		return entities.Election{}, domainerrors.ErrElectionNotFound
	}
	working := s.election.Clone()
	if err := mutate(&working); err != nil {
		return entities.Election{}, err
	}
	s.election = &working
	return working.Clone(), nil
}

func (s *Store) AppendOutbox(_ context.Context, event ports.EventEnvelope) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.outboxSeq++
	record := ports.OutboxRecord{
		OutboxID:  uuid.NewString(),
		EventType: event.EventType,
		Payload:   payload,
		Status:    "pending",
		CreatedAt: time.Now().UTC(),
	}
	s.outbox[record.OutboxID] = outboxRecord{record: record, seq: s.outboxSeq}
	return nil
}

func (s *Store) ListPendingOutbox(_ context.Context, limit int) ([]ports.OutboxRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pending := make([]outboxRecord, 0, len(s.outbox))
	for _, row := range s.outbox {
		if row.record.Status == "pending" {
			pending = append(pending, row)
		}
	}
	sort.Slice(pending, func(i, j int) bool {
		return pending[i].seq < pending[j].seq
	})
	if limit > 0 && len(pending) > limit {
		pending = pending[:limit]
	}
	records := make([]ports.OutboxRecord, 0, len(pending))
	for _, row := range pending {
		records = append(records, row.record)
	}
	return records, nil
}

func (s *Store) MarkOutboxPublished(_ context.Context, outboxID string, publishedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.outbox[outboxID]
	if !ok {
		return nil
	}
	at := publishedAt.UTC()
	row.record.Status = "published"
	row.record.PublishedAt = &at
	s.outbox[outboxID] = row
	return nil
}

// PendingOutboxCount is a test hook.
func (s *Store) PendingOutboxCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, row := range s.outbox {
		if row.record.Status == "pending" {
			count++
		}
	}
	return count
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
