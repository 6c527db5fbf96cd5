package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pixelarcade/platform/internal/domain"
)

type quotaRepo struct{}

// NewQuotaRepository returns a pgx-backed QuotaRepository.
func NewQuotaRepository() QuotaRepository {
	return &quotaRepo{}
}

func (r *quotaRepo) FindForDay(ctx context.Context, db DBTX, accountID uuid.UUID, day string) (*domain.DailyQuota, error) {
	row := db.QueryRow(ctx, `
		SELECT account_id, day, game_counts, coins_earned, last_award_at
		FROM daily_quotas
		WHERE account_id = $1 AND day = $2`, accountID, day)

	var q domain.DailyQuota
	var counts []byte
	err := row.Scan(&q.AccountID, &q.Day, &counts, &q.CoinsEarned, &q.LastAwardAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan quota: %w", err)
	}
	if err := json.Unmarshal(counts, &q.GameCounts); err != nil {
		return nil, fmt.Errorf("decode game counts: %w", err)
	}
	return &q, nil
}

// ApplyAward upserts with merge semantics: the jsonb per-game counter and the
// daily coin total are incremented server-side, everything else is preserved.
func (r *quotaRepo) ApplyAward(ctx context.Context, tx pgx.Tx, accountID uuid.UUID, day, gameID string, reward int64, now time.Time) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO daily_quotas (account_id, day, game_counts, coins_earned, last_award_at)
		VALUES ($1, $2, jsonb_build_object($3::text, 1), $4, $5)
		ON CONFLICT (account_id, day) DO UPDATE SET
		  game_counts = jsonb_set(
		    daily_quotas.game_counts,
		    ARRAY[$3::text],
		    to_jsonb(COALESCE((daily_quotas.game_counts ->> $3::text)::bigint, 0) + 1)
		  ),
		  coins_earned = daily_quotas.coins_earned + $4,
		  last_award_at = $5`,
		accountID, day, gameID, reward, now)
	if err != nil {
		return fmt.Errorf("upsert daily quota: %w", err)
	}
	return nil
}
