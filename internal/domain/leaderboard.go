package domain

import (
	"time"

	"github.com/google/uuid"
)

// Score represents a scores row: one leaderboard submission. The username is
// snapshotted at submission time so the board renders without a join.
type Score struct {
	ID        int64     `json:"id"`
	AccountID uuid.UUID `json:"account_id"`
	GameID    string    `json:"game_id"`
	Username  string    `json:"username"`
	Score     int64     `json:"score"`
	CreatedAt time.Time `json:"created_at"`
}

// PlayerStats summarizes an account's history for one game.
type PlayerStats struct {
	BestScore    int64 `json:"best_score"`
	GamesPlayed  int   `json:"games_played"`
	AverageScore int64 `json:"average_score"`
}

// Favorite represents a favorites row: one game pinned by an account.
type Favorite struct {
	AccountID uuid.UUID `json:"account_id"`
	GameID    string    `json:"game_id"`
	Title     string    `json:"title"`
	Category  string    `json:"category"`
	AddedAt   time.Time `json:"added_at"`
}
