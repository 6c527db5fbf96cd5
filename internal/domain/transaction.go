package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// TransactionType enumerates coin transaction types.
type TransactionType string

const (
	// TxGameReward is the only type the reward ledger mints today. Kept as an
	// enum so future sinks (shop purchases, gifts) share the same table.
	TxGameReward TransactionType = "game_reward"
)

// CoinTransaction represents a coin_transactions row (append-only audit entry).
// Rows are created exactly once per successful award and never mutated.
type CoinTransaction struct {
	ID           uuid.UUID       `json:"id"`
	AccountID    uuid.UUID       `json:"account_id"`
	GameID       string          `json:"game_id"`
	Type         TransactionType `json:"type"`
	Amount       int64           `json:"amount"`
	BalanceAfter int64           `json:"balance_after"`
	Metadata     json.RawMessage `json:"metadata"`
	CreatedAt    time.Time       `json:"created_at"`
}

// AwardResult is returned to the caller on a successful award.
type AwardResult struct {
	CoinsEarned   int64     `json:"coins_earned"`
	NewBalance    int64     `json:"new_balance"`
	TransactionID uuid.UUID `json:"transaction_id"`
}
