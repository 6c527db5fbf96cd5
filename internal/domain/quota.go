package domain

import (
	"time"

	"github.com/google/uuid"
)

// DailyQuota represents a daily_quotas row: per-account, per-calendar-day
// abuse counters. Rows are keyed on (account, day) so counters reset
// implicitly at the day boundary; they are never explicitly deleted.
type DailyQuota struct {
	AccountID   uuid.UUID        `json:"account_id"`
	Day         string           `json:"day"`
	GameCounts  map[string]int64 `json:"game_counts"`
	CoinsEarned int64            `json:"coins_earned"`
	LastAwardAt *time.Time       `json:"last_award_at,omitempty"`
}

// Plays returns the number of awards recorded for a game on this day.
func (q *DailyQuota) Plays(gameID string) int64 {
	if q == nil || q.GameCounts == nil {
		return 0
	}
	return q.GameCounts[gameID]
}

// DayKey formats the quota day bucket. Days are UTC calendar days.
func DayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
