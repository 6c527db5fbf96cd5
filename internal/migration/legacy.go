package migration

import (
	"context"
	"crypto/sha256"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// The legacy portal keyed accounts and transactions by opaque string IDs.
// Imports map them to UUIDs deterministically so re-running an import, or
// importing the same account from two export files, never duplicates rows.

// DeterministicUUID derives a stable UUID from a legacy string ID using SHA256.
func DeterministicUUID(namespace, legacyID string) uuid.UUID {
	h := sha256.New()
	h.Write([]byte(namespace))
	h.Write([]byte(":"))
	h.Write([]byte(legacyID))
	digest := h.Sum(nil)

	var id uuid.UUID
	copy(id[:], digest[:16])
	id[6] = (id[6] & 0x0f) | 0x50 // version 5
	id[8] = (id[8] & 0x3f) | 0x80 // variant RFC4122
	return id
}

// lockedPasswordHash is an intentionally invalid bcrypt value. Imported users
// cannot log in with it; they must go through a password reset.
const lockedPasswordHash = "!imported"

// LegacyAccount is one account record from a legacy portal export file.
type LegacyAccount struct {
	ID               string    `json:"id"`
	Email            string    `json:"email"`
	Username         string    `json:"username"`
	Coins            int64     `json:"coins"`
	TotalCoinsEarned int64     `json:"total_coins_earned"`
	GamesPlayed      int64     `json:"games_played"`
	CreatedAt        time.Time `json:"created_at"`
}

// LegacyTransaction is one coin transaction from a legacy portal export file.
type LegacyTransaction struct {
	ID           string    `json:"id"`
	AccountID    string    `json:"account_id"`
	GameID       string    `json:"game_id"`
	Amount       int64     `json:"amount"`
	BalanceAfter int64     `json:"balance_after"`
	CreatedAt    time.Time `json:"created_at"`
}

// Importer loads legacy portal export data into the current schema.
type Importer struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewImporter creates a legacy import bridge.
func NewImporter(pool *pgxpool.Pool, logger *slog.Logger) *Importer {
	return &Importer{pool: pool, logger: logger}
}

// ImportAccount inserts one legacy account with its deterministic UUID.
// Idempotent: an already-imported account is left untouched.
func (im *Importer) ImportAccount(ctx context.Context, acct LegacyAccount) (uuid.UUID, error) {
	id := DeterministicUUID("account", acct.ID)

	username := acct.Username
	if username == "" {
		username = acct.Email
	}

	tx, err := im.pool.Begin(ctx)
	if err != nil {
		return uuid.Nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO auth_users (id, email, password_hash)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO NOTHING`,
		id, acct.Email, lockedPasswordHash)
	if err != nil {
		return uuid.Nil, fmt.Errorf("insert auth user: %w", err)
	}

	tag, err := tx.Exec(ctx, `
		INSERT INTO accounts (id, email, username, coins, total_coins_earned, games_played, created_at, last_login_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		ON CONFLICT (id) DO NOTHING`,
		id, acct.Email, username, acct.Coins, acct.TotalCoinsEarned, acct.GamesPlayed, acct.CreatedAt)
	if err != nil {
		return uuid.Nil, fmt.Errorf("insert account: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return uuid.Nil, fmt.Errorf("commit: %w", err)
	}

	if tag.RowsAffected() == 0 {
		im.logger.Debug("account already imported", "legacy_id", acct.ID, "id", id)
	} else {
		im.logger.Info("imported account", "legacy_id", acct.ID, "id", id, "coins", acct.Coins)
	}
	return id, nil
}

// ImportTransactions inserts legacy coin transactions for already-imported
// accounts. Rows that were imported before are skipped.
func (im *Importer) ImportTransactions(ctx context.Context, txs []LegacyTransaction) (int, error) {
	imported := 0
	for _, t := range txs {
		txID := DeterministicUUID("transaction", t.ID)
		accountID := DeterministicUUID("account", t.AccountID)

		tag, err := im.pool.Exec(ctx, `
			INSERT INTO coin_transactions (id, account_id, game_id, type, amount, balance_after, metadata, created_at)
			VALUES ($1, $2, $3, 'game_reward', $4, $5, '{"imported":true}', $6)
			ON CONFLICT (id) DO NOTHING`,
			txID, accountID, t.GameID, t.Amount, t.BalanceAfter, t.CreatedAt)
		if err != nil {
			return imported, fmt.Errorf("insert transaction %s: %w", t.ID, err)
		}
		imported += int(tag.RowsAffected())
	}

	im.logger.Info("imported transactions", "count", imported, "total", len(txs))
	return imported, nil
}

// VerifyBalances cross-checks imported balances against the export file.
type BalanceMismatch struct {
	LegacyID string `json:"legacy_id"`
	Expected int64  `json:"expected"`
	Actual   int64  `json:"actual"`
}

// VerifyBalances returns mismatches between exported and imported balances.
func (im *Importer) VerifyBalances(ctx context.Context, accounts []LegacyAccount) ([]BalanceMismatch, error) {
	var mismatches []BalanceMismatch
	for _, acct := range accounts {
		id := DeterministicUUID("account", acct.ID)

		var coins int64
		err := im.pool.QueryRow(ctx, `SELECT coins FROM accounts WHERE id = $1`, id).Scan(&coins)
		if err != nil {
			mismatches = append(mismatches, BalanceMismatch{LegacyID: acct.ID, Expected: acct.Coins, Actual: -1})
			continue
		}
		if coins != acct.Coins {
			mismatches = append(mismatches, BalanceMismatch{LegacyID: acct.ID, Expected: acct.Coins, Actual: coins})
		}
	}
	return mismatches, nil
}
