package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pixelarcade/platform/internal/domain"
)

type accountRepo struct{}

// NewAccountRepository returns a pgx-backed AccountRepository.
func NewAccountRepository() AccountRepository {
	return &accountRepo{}
}

const accountColumns = `id, email, username, coins, total_coins_earned, games_played, created_at, last_login_at`

func (r *accountRepo) FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.Account, error) {
	row := db.QueryRow(ctx, `
		SELECT `+accountColumns+`
		FROM accounts WHERE id = $1`, id)
	return scanAccount(row)
}

func (r *accountRepo) Create(ctx context.Context, db DBTX, acct *domain.Account) error {
	_, err := db.Exec(ctx, `
		INSERT INTO accounts (id, email, username, coins, total_coins_earned, games_played, created_at, last_login_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		acct.ID,
		acct.Email,
		acct.Username,
		acct.Coins,
		acct.TotalCoinsEarned,
		acct.GamesPlayed,
		acct.CreatedAt,
		acct.LastLoginAt,
	)
	if err != nil {
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

// ApplyAward uses server-side arithmetic so concurrent awards for the same
// account compose instead of overwriting each other.
func (r *accountRepo) ApplyAward(ctx context.Context, tx pgx.Tx, id uuid.UUID, reward int64) (*domain.Account, error) {
	row := tx.QueryRow(ctx, `
		UPDATE accounts
		SET coins = coins + $1,
		    total_coins_earned = total_coins_earned + $1,
		    games_played = games_played + 1
		WHERE id = $2
		RETURNING `+accountColumns, reward, id)
	return scanAccount(row)
}

func (r *accountRepo) TouchLogin(ctx context.Context, db DBTX, id uuid.UUID) (*domain.Account, error) {
	row := db.QueryRow(ctx, `
		UPDATE accounts SET last_login_at = now()
		WHERE id = $1
		RETURNING `+accountColumns, id)
	return scanAccount(row)
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var a domain.Account
	err := row.Scan(&a.ID, &a.Email, &a.Username, &a.Coins, &a.TotalCoinsEarned, &a.GamesPlayed, &a.CreatedAt, &a.LastLoginAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan account: %w", err)
	}
	return &a, nil
}
