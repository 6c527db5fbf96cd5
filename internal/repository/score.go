package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pixelarcade/platform/internal/domain"
)

type scoreRepo struct{}

// NewScoreRepository returns a pgx-backed ScoreRepository.
func NewScoreRepository() ScoreRepository {
	return &scoreRepo{}
}

const scoreColumns = `id, account_id, game_id, username, score, created_at`

func (r *scoreRepo) Insert(ctx context.Context, db DBTX, s *domain.Score) (*domain.Score, error) {
	row := db.QueryRow(ctx, `
		INSERT INTO scores (account_id, game_id, username, score, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+scoreColumns,
		s.AccountID, s.GameID, s.Username, s.Score, s.CreatedAt)

	var out domain.Score
	if err := row.Scan(&out.ID, &out.AccountID, &out.GameID, &out.Username, &out.Score, &out.CreatedAt); err != nil {
		return nil, fmt.Errorf("insert score: %w", err)
	}
	return &out, nil
}

func (r *scoreRepo) Top(ctx context.Context, db DBTX, gameID string, since *time.Time, limit int) ([]domain.Score, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}

	var rows pgx.Rows
	var err error
	if since != nil {
		rows, err = db.Query(ctx, `
			SELECT `+scoreColumns+`
			FROM scores
			WHERE game_id = $1 AND created_at >= $2
			ORDER BY score DESC, created_at ASC
			LIMIT $3`, gameID, *since, limit)
	} else {
		rows, err = db.Query(ctx, `
			SELECT `+scoreColumns+`
			FROM scores
			WHERE game_id = $1
			ORDER BY score DESC, created_at ASC
			LIMIT $2`, gameID, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("query top scores: %w", err)
	}
	defer rows.Close()

	return collectScores(rows)
}

func (r *scoreRepo) ByAccount(ctx context.Context, db DBTX, gameID string, accountID uuid.UUID, limit int) ([]domain.Score, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	rows, err := db.Query(ctx, `
		SELECT `+scoreColumns+`
		FROM scores
		WHERE game_id = $1 AND account_id = $2
		ORDER BY score DESC, created_at ASC
		LIMIT $3`, gameID, accountID, limit)
	if err != nil {
		return nil, fmt.Errorf("query account scores: %w", err)
	}
	defer rows.Close()

	return collectScores(rows)
}

func collectScores(rows pgx.Rows) ([]domain.Score, error) {
	var scores []domain.Score
	for rows.Next() {
		var s domain.Score
		if err := rows.Scan(&s.ID, &s.AccountID, &s.GameID, &s.Username, &s.Score, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan score row: %w", err)
		}
		scores = append(scores, s)
	}
	return scores, rows.Err()
}
