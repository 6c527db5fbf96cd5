package ledger

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pixelarcade/platform/internal/domain"
	"github.com/pixelarcade/platform/internal/policy"
	"github.com/pixelarcade/platform/internal/repository"
)

// Engine is the reward ledger. It validates a score submission, enforces the
// daily quota and cooldown policy, computes the reward, and applies the award
// as one atomic multi-row update.
//
// There is no in-process locking: correctness under concurrent awards for the
// same account rests on the store's transactional increments, which are
// commutative. Quota and cooldown checks read-then-decide and are advisory
// under high concurrency.
type Engine struct {
	pool         *pgxpool.Pool
	accounts     repository.AccountRepository
	transactions repository.TransactionRepository
	quotas       repository.QuotaRepository
	outbox       repository.OutboxRepository
	failMode     policy.CheckFailureMode
	logger       *slog.Logger
	now          func() time.Time
}

// NewEngine creates a reward ledger. failMode controls whether a failed quota
// or cooldown read allows or denies the award.
func NewEngine(
	pool *pgxpool.Pool,
	accounts repository.AccountRepository,
	transactions repository.TransactionRepository,
	quotas repository.QuotaRepository,
	outbox repository.OutboxRepository,
	failMode policy.CheckFailureMode,
	logger *slog.Logger,
) *Engine {
	return &Engine{
		pool:         pool,
		accounts:     accounts,
		transactions: transactions,
		quotas:       quotas,
		outbox:       outbox,
		failMode:     failMode,
		logger:       logger,
		now:          time.Now,
	}
}

// Award runs the validate → quota → cooldown → compute → apply pipeline for
// one score submission, short-circuiting on the first failed check.
//
// On success exactly three effects are applied in one SQL transaction: the
// account counters are incremented, an immutable coin transaction is inserted,
// and the daily quota record is upserted. Either all land or none do. A
// retried call after AWARD_APPLY_FAILED mints a fresh transaction id, so
// retries are not idempotent.
func (e *Engine) Award(ctx context.Context, accountID uuid.UUID, gameID string, score int64) (*domain.AwardResult, error) {
	if score < 0 {
		return nil, domain.ErrInvalidScore("score must be non-negative")
	}

	pol, ok := policy.Lookup(gameID)
	if !ok {
		return nil, domain.ErrUnknownGame(gameID)
	}
	if score > pol.MaxAcceptedScore {
		return nil, domain.ErrInvalidScore("score exceeds maximum for game")
	}

	now := e.now()
	day := domain.DayKey(now)

	quota, err := e.quotas.FindForDay(ctx, e.pool, accountID, day)
	if err != nil {
		if e.failMode == policy.FailClosed {
			return nil, domain.ErrStorageUnavailable(err)
		}
		// Fail open: availability over strictness.
		e.logger.Warn("quota check failed, allowing award",
			"account_id", accountID, "game_id", gameID, "error", err)
		quota = nil
	}

	if eval := policy.EvaluateDailyLimits(quota, gameID, now); !eval.Allowed {
		switch eval.Breached {
		case policy.BreachGameLimit:
			return nil, domain.ErrDailyGameLimit()
		case policy.BreachCoinCap:
			return nil, domain.ErrDailyCoinCap()
		case policy.BreachCooldown:
			return nil, domain.ErrCooldownActive()
		}
	}

	reward := policy.ComputeReward(pol, score)

	tx, err := e.pool.Begin(ctx)
	if err != nil {
		return nil, domain.ErrAwardApplyFailed(err)
	}
	defer tx.Rollback(ctx)

	acct, err := e.accounts.ApplyAward(ctx, tx, accountID, reward)
	if err != nil {
		return nil, domain.ErrAwardApplyFailed(err)
	}
	if acct == nil {
		return nil, domain.ErrAccountNotFound(accountID.String())
	}

	entry, err := e.transactions.Insert(ctx, tx, &domain.CoinTransaction{
		ID:           uuid.New(),
		AccountID:    accountID,
		GameID:       gameID,
		Type:         domain.TxGameReward,
		Amount:       reward,
		BalanceAfter: acct.Coins,
		Metadata:     scoreMetadata(score),
		CreatedAt:    now,
	})
	if err != nil {
		return nil, domain.ErrAwardApplyFailed(err)
	}

	if err := e.quotas.ApplyAward(ctx, tx, accountID, day, gameID, reward, now); err != nil {
		return nil, domain.ErrAwardApplyFailed(err)
	}

	if err := e.outbox.Insert(ctx, tx, domain.NewAwardPostedEvent(entry)); err != nil {
		return nil, domain.ErrAwardApplyFailed(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, domain.ErrAwardApplyFailed(err)
	}

	e.logger.Info("award posted",
		"account_id", accountID,
		"game_id", gameID,
		"score", score,
		"reward", reward,
		"balance", acct.Coins,
		"transaction_id", entry.ID,
	)

	return &domain.AwardResult{
		CoinsEarned:   reward,
		NewBalance:    acct.Coins,
		TransactionID: entry.ID,
	}, nil
}

// Initialize creates the coin account on first login with the starting balance,
// or touches last_login_at and returns the existing balance. It never mutates
// coins for an existing account.
func (e *Engine) Initialize(ctx context.Context, accountID uuid.UUID, email string) (int64, error) {
	acct, err := e.accounts.TouchLogin(ctx, e.pool, accountID)
	if err != nil {
		return 0, domain.ErrInternal("touch login", err)
	}
	if acct != nil {
		return acct.Coins, nil
	}

	now := e.now()
	fresh := &domain.Account{
		ID:          accountID,
		Email:       email,
		Username:    domain.UsernameFromEmail(email),
		Coins:       domain.StartingCoins,
		CreatedAt:   now,
		LastLoginAt: now,
	}

	tx, err := e.pool.Begin(ctx)
	if err != nil {
		return 0, domain.ErrInternal("begin tx", err)
	}
	defer tx.Rollback(ctx)

	if err := e.accounts.Create(ctx, tx, fresh); err != nil {
		return 0, domain.ErrInternal("create account", err)
	}
	if err := e.outbox.Insert(ctx, tx, domain.NewAccountCreatedEvent(fresh)); err != nil {
		return 0, domain.ErrInternal("insert outbox event", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, domain.ErrInternal("commit tx", err)
	}

	e.logger.Info("account initialized", "account_id", accountID, "coins", fresh.Coins)
	return fresh.Coins, nil
}

// GetBalance returns the account's coin balance, or 0 if the account does not
// exist or the read fails. Fail-open for display purposes.
func (e *Engine) GetBalance(ctx context.Context, accountID uuid.UUID) int64 {
	acct, err := e.accounts.FindByID(ctx, e.pool, accountID)
	if err != nil {
		e.logger.Warn("balance read failed", "account_id", accountID, "error", err)
		return 0
	}
	if acct == nil {
		return 0
	}
	return acct.Coins
}
