package postgresadapter

import (
	"encoding/json"
	"strings"
	"time"

	"ballotbox/contexts/governance/ballot-engine/domain/entities"
	"ballotbox/contexts/governance/ballot-engine/ports"
)

type electionModel struct {
	ID         string    `gorm:"column:id;primaryKey"`
	Owner      string    `gorm:"column:owner"`
	Name       string    `gorm:"column:name"`
	TotalVotes int       `gorm:"column:total_votes"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (electionModel) TableName() string {
	return "elections"
}

type candidateModel struct {
	ElectionID string `gorm:"column:election_id;primaryKey"`
	Idx        int    `gorm:"column:idx;primaryKey"`
	Name       string `gorm:"column:name"`
	VoteCount  int    `gorm:"column:vote_count"`
}

func (candidateModel) TableName() string {
	return "candidates"
}

type voterRecordModel struct {
	ElectionID     string    `gorm:"column:election_id;primaryKey"`
	AccountID      string    `gorm:"column:account_id;primaryKey"`
	Authorized     bool      `gorm:"column:authorized"`
	HasVoted       bool      `gorm:"column:has_voted"`
	CandidateIndex *int      `gorm:"column:candidate_index"`
	CreatedAt      time.Time `gorm:"column:created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`
}

func (voterRecordModel) TableName() string {
	return "voter_records"
}

type outboxModel struct {
	ID          string     `gorm:"column:id;primaryKey"`
	EventType   string     `gorm:"column:event_type"`
	Payload     []byte     `gorm:"column:payload"`
	Status      string     `gorm:"column:status"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	PublishedAt *time.Time `gorm:"column:published_at"`
}

func (outboxModel) TableName() string {
	return "ballot_outbox"
}

func electionModelFromEntity(election entities.Election) electionModel {
	row := electionModel{
		ID:         strings.TrimSpace(election.ElectionID),
		Owner:      election.Owner,
		Name:       election.Name,
		TotalVotes: election.TotalVotes,
		CreatedAt:  election.CreatedAt.UTC(),
		UpdatedAt:  election.UpdatedAt.UTC(),
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	if row.UpdatedAt.IsZero() {
		row.UpdatedAt = row.CreatedAt
	}
	return row
}

func candidateModelsFromEntity(election entities.Election) []candidateModel {
	rows := make([]candidateModel, 0, len(election.Candidates))
	for i, candidate := range election.Candidates {
		rows = append(rows, candidateModel{
			ElectionID: strings.TrimSpace(election.ElectionID),
			Idx:        i,
			Name:       candidate.Name,
			VoteCount:  candidate.VoteCount,
		})
	}
	return rows
}

func voterRecordModelsFromEntity(election entities.Election) []voterRecordModel {
	rows := make([]voterRecordModel, 0, len(election.Voters))
	for accountID, record := range election.Voters {
		row := voterRecordModel{
			ElectionID: strings.TrimSpace(election.ElectionID),
			AccountID:  accountID,
			Authorized: record.Authorized,
			HasVoted:   record.HasVoted,
			CreatedAt:  election.UpdatedAt.UTC(),
			UpdatedAt:  election.UpdatedAt.UTC(),
		}
		if record.ChosenCandidate != nil {
			chosen := *record.ChosenCandidate
			row.CandidateIndex = &chosen
		}
		rows = append(rows, row)
	}
	return rows
}

func (m voterRecordModel) toEntity() entities.VoterRecord {
	record := entities.VoterRecord{
		AccountID:  m.AccountID,
		Authorized: m.Authorized,
		HasVoted:   m.HasVoted,
	}
	if m.CandidateIndex != nil {
		chosen := *m.CandidateIndex
		record.ChosenCandidate = &chosen
	}
	return record
}

func outboxModelFromEnvelope(event ports.EventEnvelope) (outboxModel, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return outboxModel{}, err
	}
	return outboxModel{
		ID:        event.EventID,
		EventType: event.EventType,
		Payload:   payload,
		Status:    outboxStatusPending,
		CreatedAt: time.Now().UTC(),
	}, nil
}

func (m outboxModel) toRecord() ports.OutboxRecord {
	return ports.OutboxRecord{
		OutboxID:    m.ID,
		EventType:   m.EventType,
		Payload:     m.Payload,
		Status:      m.Status,
		CreatedAt:   m.CreatedAt,
		PublishedAt: m.PublishedAt,
	}
}
