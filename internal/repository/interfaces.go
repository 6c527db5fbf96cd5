package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pixelarcade/platform/internal/domain"
)

// DBTX abstracts pgx.Tx and pgxpool.Pool so repositories work with both.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

// AccountRepository provides access to accounts.
type AccountRepository interface {
	// FindByID returns an account by ID, or nil if absent.
	FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.Account, error)

	// Create inserts a new account.
	Create(ctx context.Context, db DBTX, acct *domain.Account) error

	// ApplyAward atomically increments coins, total_coins_earned and
	// games_played using server-side arithmetic, returning the post-update
	// account. Returns nil if the account does not exist. The increments are
	// commutative, so concurrent awards never lose updates.
	ApplyAward(ctx context.Context, tx pgx.Tx, id uuid.UUID, reward int64) (*domain.Account, error)

	// TouchLogin updates last_login_at and returns the account, or nil if absent.
	TouchLogin(ctx context.Context, db DBTX, id uuid.UUID) (*domain.Account, error)
}

// TransactionRepository provides access to coin_transactions.
type TransactionRepository interface {
	// Insert creates an append-only ledger entry. Returns the inserted row.
	Insert(ctx context.Context, db DBTX, entry *domain.CoinTransaction) (*domain.CoinTransaction, error)

	// FindByID returns a transaction by ID.
	FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.CoinTransaction, error)

	// ListByAccount returns transactions for an account, newest first, with
	// cursor-based pagination.
	ListByAccount(ctx context.Context, db DBTX, accountID uuid.UUID, cursor *string, limit int) ([]domain.CoinTransaction, error)
}

// QuotaRepository provides access to daily_quotas.
type QuotaRepository interface {
	// FindForDay returns the quota record for an account and day, or nil if
	// no award has been recorded yet that day.
	FindForDay(ctx context.Context, db DBTX, accountID uuid.UUID, day string) (*domain.DailyQuota, error)

	// ApplyAward upserts the quota record with merge semantics: per-game play
	// count += 1, coins_earned += reward, last_award_at = now. Fields not
	// mentioned are preserved.
	ApplyAward(ctx context.Context, tx pgx.Tx, accountID uuid.UUID, day, gameID string, reward int64, now time.Time) error
}

// ScoreRepository provides access to scores (leaderboard submissions).
type ScoreRepository interface {
	// Insert records a new leaderboard submission. Returns the inserted row.
	Insert(ctx context.Context, db DBTX, s *domain.Score) (*domain.Score, error)

	// Top returns the highest scores for a game, optionally restricted to
	// submissions at or after since.
	Top(ctx context.Context, db DBTX, gameID string, since *time.Time, limit int) ([]domain.Score, error)

	// ByAccount returns an account's scores for a game, best first.
	ByAccount(ctx context.Context, db DBTX, gameID string, accountID uuid.UUID, limit int) ([]domain.Score, error)
}

// FavoriteRepository provides access to favorites.
type FavoriteRepository interface {
	// ListByAccount returns an account's favorites, most recent first.
	ListByAccount(ctx context.Context, db DBTX, accountID uuid.UUID) ([]domain.Favorite, error)

	// Upsert adds or refreshes a favorite.
	Upsert(ctx context.Context, db DBTX, fav *domain.Favorite) error

	// Delete removes a favorite. Returns true if a row was removed.
	Delete(ctx context.Context, db DBTX, accountID uuid.UUID, gameID string) (bool, error)
}

// OutboxRepository provides access to the event_outbox table.
type OutboxRepository interface {
	// Insert writes an outbox event (within the same transaction as the state
	// change it describes).
	Insert(ctx context.Context, db DBTX, draft domain.OutboxDraft) error

	// FetchUnpublished returns unpublished events for the outbox consumer.
	FetchUnpublished(ctx context.Context, db DBTX, limit int) ([]OutboxRow, error)

	// MarkPublished stamps events as published.
	MarkPublished(ctx context.Context, db DBTX, ids []int64) error
}

// OutboxRow is an outbox event with its table sequence id, as read back by
// the consumer.
type OutboxRow struct {
	SeqID int64
	domain.OutboxDraft
}

// AuthUserRepository provides access to auth_users.
type AuthUserRepository interface {
	// FindByEmail returns an auth user by email, or nil if absent.
	FindByEmail(ctx context.Context, db DBTX, email string) (*domain.AuthUser, error)

	// Create inserts a new auth user.
	Create(ctx context.Context, db DBTX, user *domain.AuthUser) error
}
