package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// EventType enumerates all domain event types.
type EventType string

const (
	EventAccountCreated EventType = "arcade.account.created"
	EventAwardPosted    EventType = "arcade.ledger.award.posted"
	EventScoreSubmitted EventType = "arcade.leaderboard.score.submitted"
)

// AggregateType enumerates the aggregate root types for outbox events.
type AggregateType string

const (
	AggregateAccount     AggregateType = "account"
	AggregateLedger      AggregateType = "ledger"
	AggregateLeaderboard AggregateType = "leaderboard"
)

// OutboxDraft is the payload written to the event_outbox table. It is inserted
// in the same SQL transaction as the state change it describes and published
// asynchronously by the outbox consumer.
type OutboxDraft struct {
	EventID       uuid.UUID       `json:"event_id"`
	AggregateType AggregateType   `json:"aggregate_type"`
	AggregateID   string          `json:"aggregate_id"`
	EventType     EventType       `json:"event_type"`
	PartitionKey  string          `json:"partition_key"`
	Payload       json.RawMessage `json:"payload"`
	OccurredAt    time.Time       `json:"occurred_at"`
}

// NewAwardPostedEvent builds the outbox draft for a posted award.
func NewAwardPostedEvent(entry *CoinTransaction) OutboxDraft {
	payload, _ := json.Marshal(entry)
	return OutboxDraft{
		EventID:       uuid.New(),
		AggregateType: AggregateLedger,
		AggregateID:   entry.AccountID.String(),
		EventType:     EventAwardPosted,
		PartitionKey:  entry.AccountID.String(),
		Payload:       payload,
		OccurredAt:    entry.CreatedAt,
	}
}

// NewAccountCreatedEvent builds the outbox draft for a freshly created account.
func NewAccountCreatedEvent(acct *Account) OutboxDraft {
	payload, _ := json.Marshal(acct)
	return OutboxDraft{
		EventID:       uuid.New(),
		AggregateType: AggregateAccount,
		AggregateID:   acct.ID.String(),
		EventType:     EventAccountCreated,
		PartitionKey:  acct.ID.String(),
		Payload:       payload,
		OccurredAt:    acct.CreatedAt,
	}
}

// NewScoreSubmittedEvent builds the outbox draft for a leaderboard submission.
func NewScoreSubmittedEvent(s *Score) OutboxDraft {
	payload, _ := json.Marshal(s)
	return OutboxDraft{
		EventID:       uuid.New(),
		AggregateType: AggregateLeaderboard,
		AggregateID:   s.GameID,
		EventType:     EventScoreSubmitted,
		PartitionKey:  s.AccountID.String(),
		Payload:       payload,
		OccurredAt:    s.CreatedAt,
	}
}
