package policy

import (
	"time"

	"github.com/pixelarcade/platform/internal/domain"
)

// Daily abuse limits, applied per account.
const (
	MaxPlaysPerGamePerDay = 10
	MaxCoinsPerDay        = 3000
	AwardCooldown         = 30 * time.Second
)

// CheckFailureMode controls what happens when the quota or cooldown read
// itself fails: fail open (availability over strictness) or fail closed.
type CheckFailureMode string

const (
	FailOpen   CheckFailureMode = "allow"
	FailClosed CheckFailureMode = "deny"
)

// Breach identifies which daily limit an award would violate.
type Breach string

const (
	BreachNone      Breach = ""
	BreachGameLimit Breach = "daily_game_limit"
	BreachCoinCap   Breach = "daily_coin_cap"
	BreachCooldown  Breach = "cooldown"
)

// LimitEvaluation holds the result of a daily limits check.
type LimitEvaluation struct {
	Allowed  bool
	Breached Breach
}

// EvaluateDailyLimits checks an award attempt against the account's quota
// record for the current day. A nil quota means no awards yet today and always
// passes. Checks run in pipeline order: per-game play count, daily coin cap,
// then cooldown.
func EvaluateDailyLimits(q *domain.DailyQuota, gameID string, now time.Time) LimitEvaluation {
	if q == nil {
		return LimitEvaluation{Allowed: true}
	}
	if q.Plays(gameID) >= MaxPlaysPerGamePerDay {
		return LimitEvaluation{Breached: BreachGameLimit}
	}
	if q.CoinsEarned >= MaxCoinsPerDay {
		return LimitEvaluation{Breached: BreachCoinCap}
	}
	if q.LastAwardAt != nil && now.Sub(*q.LastAwardAt) < AwardCooldown {
		return LimitEvaluation{Breached: BreachCooldown}
	}
	return LimitEvaluation{Allowed: true}
}
