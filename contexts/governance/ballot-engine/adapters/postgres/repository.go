package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"ballotbox/contexts/governance/ballot-engine/domain/entities"
	domainerrors "ballotbox/contexts/governance/ballot-engine/domain/errors"
	"ballotbox/contexts/governance/ballot-engine/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	outboxStatusPending   = "pending"
	outboxStatusPublished = "published"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

// Migrate creates the durable layout: election header, candidate sequence,
// voter roster, and the audit outbox.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&electionModel{},
		&candidateModel{},
		&voterRecordModel{},
		&outboxModel{},
	)
}

func (r *Repository) CreateElection(ctx context.Context, election entities.Election) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&electionModel{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return domainerrors.ErrElectionExists
		}
		row := electionModelFromEntity(election)
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
		candidates := candidateModelsFromEntity(election)
		if len(candidates) > 0 {
			if err := tx.Create(&candidates).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrElectionExists) || isUniqueViolation(err) {
			return domainerrors.ErrElectionExists
		}
		return r.logError("ballot_repo_create_election_failed", err,
			"election_id", strings.TrimSpace(election.ElectionID),
		)
	}
	return nil
}

func (r *Repository) GetElection(ctx context.Context) (entities.Election, error) {
	election, err := loadElection(r.db.WithContext(ctx))
	if err != nil {
		if errors.Is(err, domainerrors.ErrElectionNotFound) {
			return entities.Election{}, err
		}
		return entities.Election{}, r.logError("ballot_repo_get_election_failed", err)
	}
	return election, nil
}

// UpdateElection applies the mutation closure inside one transaction; a
// closure error rolls everything back so no partial state survives.
func (r *Repository) UpdateElection(ctx context.Context, mutate func(*entities.Election) error) (entities.Election, error) {
	var updated entities.Election
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		election, err := loadElection(tx.Clauses(clause.Locking{Strength: "UPDATE"}))
		if err != nil {
			return err
		}
		if err := mutate(&election); err != nil {
			return err
		}
		if err := persistElection(tx, election); err != nil {
			return err
		}
		updated = election
		return nil
	})
	if err != nil {
		if isDomainError(err) {
			return entities.Election{}, err
		}
		return entities.Election{}, r.logError("ballot_repo_update_election_failed", err)
	}
	return updated, nil
}

func (r *Repository) AppendOutbox(ctx context.Context, event ports.EventEnvelope) error {
	row, err := outboxModelFromEnvelope(event)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return r.logError("ballot_repo_append_outbox_failed", err,
			"event_id", event.EventID,
			"event_type", event.EventType,
		)
	}
	return nil
}

func (r *Repository) ListPendingOutbox(ctx context.Context, limit int) ([]ports.OutboxRecord, error) {
	if limit <= 0 {
		limit = 100
	}
	var rows []outboxModel
	if err := r.db.WithContext(ctx).
		Where("status = ?", outboxStatusPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, r.logError("ballot_repo_list_pending_outbox_failed", err)
	}
	records := make([]ports.OutboxRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, row.toRecord())
	}
	return records, nil
}

func (r *Repository) MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error {
	at := publishedAt.UTC()
	err := r.db.WithContext(ctx).Model(&outboxModel{}).
		Where("id = ?", strings.TrimSpace(outboxID)).
		Updates(map[string]any{
			"status":       outboxStatusPublished,
			"published_at": &at,
		}).Error
	if err != nil {
		return r.logError("ballot_repo_mark_outbox_published_failed", err,
			"outbox_id", strings.TrimSpace(outboxID),
		)
	}
	return nil
}

func loadElection(tx *gorm.DB) (entities.Election, error) {
	var header electionModel
	if err := tx.Order("created_at ASC").First(&header).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Election{}, domainerrors.ErrElectionNotFound
		}
		return entities.Election{}, err
	}

	var candidates []candidateModel
	if err := tx.Where("election_id = ?", header.ID).Order("idx ASC").Find(&candidates).Error; err != nil {
		return entities.Election{}, err
	}
	var voters []voterRecordModel
	if err := tx.Where("election_id = ?", header.ID).Find(&voters).Error; err != nil {
		return entities.Election{}, err
	}

	election := entities.Election{
		ElectionID: header.ID,
		Owner:      header.Owner,
		Name:       header.Name,
		TotalVotes: header.TotalVotes,
		Candidates: make([]entities.Candidate, len(candidates)),
		Voters:     make(map[string]entities.VoterRecord, len(voters)),
		CreatedAt:  header.CreatedAt,
		UpdatedAt:  header.UpdatedAt,
	}
	for _, candidate := range candidates {
		election.Candidates[candidate.Idx] = entities.Candidate{
			Name:      candidate.Name,
			VoteCount: candidate.VoteCount,
		}
	}
	for _, voter := range voters {
		election.Voters[voter.AccountID] = voter.toEntity()
	}
	return election, nil
}

func persistElection(tx *gorm.DB, election entities.Election) error {
	header := electionModelFromEntity(election)
	if err := tx.Model(&electionModel{}).
		Where("id = ?", header.ID).
		Updates(map[string]any{
			"total_votes": header.TotalVotes,
			"updated_at":  header.UpdatedAt,
		}).Error; err != nil {
		return err
	}

	candidates := candidateModelsFromEntity(election)
	if len(candidates) > 0 {
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "election_id"}, {Name: "idx"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"vote_count",
			}),
		}).Create(&candidates).Error; err != nil {
			return err
		}
	}

	voters := voterRecordModelsFromEntity(election)
	if len(voters) > 0 {
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "election_id"}, {Name: "account_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"authorized",
				"has_voted",
				"candidate_index",
				"updated_at",
			}),
		}).Create(&voters).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *Repository) logError(event string, err error, args ...any) error {
	fields := append([]any{
		"event", event,
		"module", "governance/ballot-engine",
		"layer", "adapter",
		"error", err.Error(),
	}, args...)
	r.logger.Error("ballot repository operation failed", fields...)
	return err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

func isDomainError(err error) bool {
	return errors.Is(err, domainerrors.ErrElectionNotFound) ||
		errors.Is(err, domainerrors.ErrUnauthorized) ||
		errors.Is(err, domainerrors.ErrNotAuthorized) ||
		errors.Is(err, domainerrors.ErrAlreadyVoted) ||
		errors.Is(err, domainerrors.ErrInvalidCandidate) ||
		errors.Is(err, domainerrors.ErrInvalidConfiguration)
}

// SystemClock satisfies ports.Clock with wall-clock time.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// UUIDGenerator satisfies ports.IDGenerator.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
