package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pixelarcade/platform/internal/domain"
)

type transactionRepo struct{}

// NewTransactionRepository returns a pgx-backed TransactionRepository.
func NewTransactionRepository() TransactionRepository {
	return &transactionRepo{}
}

const txColumns = `id, account_id, game_id, type, amount, balance_after, metadata, created_at`

func (r *transactionRepo) Insert(ctx context.Context, db DBTX, entry *domain.CoinTransaction) (*domain.CoinTransaction, error) {
	meta := entry.Metadata
	if meta == nil {
		meta = json.RawMessage(`{}`)
	}

	row := db.QueryRow(ctx, `
		INSERT INTO coin_transactions (id, account_id, game_id, type, amount, balance_after, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+txColumns,
		entry.ID,
		entry.AccountID,
		entry.GameID,
		string(entry.Type),
		entry.Amount,
		entry.BalanceAfter,
		meta,
		entry.CreatedAt,
	)
	return scanTransaction(row)
}

func (r *transactionRepo) FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.CoinTransaction, error) {
	row := db.QueryRow(ctx, `
		SELECT `+txColumns+`
		FROM coin_transactions WHERE id = $1`, id)
	return scanTransaction(row)
}

func (r *transactionRepo) ListByAccount(ctx context.Context, db DBTX, accountID uuid.UUID, cursor *string, limit int) ([]domain.CoinTransaction, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	var rows pgx.Rows
	var err error
	if cursor != nil {
		rows, err = db.Query(ctx, `
			SELECT `+txColumns+`
			FROM coin_transactions
			WHERE account_id = $1
			  AND (created_at, id) <= ((SELECT created_at, id FROM coin_transactions WHERE id = $2))
			ORDER BY created_at DESC, id DESC
			LIMIT $3`, accountID, *cursor, limit)
	} else {
		rows, err = db.Query(ctx, `
			SELECT `+txColumns+`
			FROM coin_transactions
			WHERE account_id = $1
			ORDER BY created_at DESC, id DESC
			LIMIT $2`, accountID, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var txs []domain.CoinTransaction
	for rows.Next() {
		var tx domain.CoinTransaction
		if err := rows.Scan(&tx.ID, &tx.AccountID, &tx.GameID, &tx.Type, &tx.Amount, &tx.BalanceAfter, &tx.Metadata, &tx.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan transaction row: %w", err)
		}
		txs = append(txs, tx)
	}
	return txs, rows.Err()
}

func scanTransaction(row pgx.Row) (*domain.CoinTransaction, error) {
	var tx domain.CoinTransaction
	err := row.Scan(&tx.ID, &tx.AccountID, &tx.GameID, &tx.Type, &tx.Amount, &tx.BalanceAfter, &tx.Metadata, &tx.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan transaction: %w", err)
	}
	return &tx, nil
}
