package ledger

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pixelarcade/platform/internal/domain"
	"github.com/pixelarcade/platform/internal/policy"
	"github.com/pixelarcade/platform/internal/repository"
)

type fakeQuotaRepo struct {
	quota *domain.DailyQuota
	err   error
}

func (f *fakeQuotaRepo) FindForDay(_ context.Context, _ repository.DBTX, _ uuid.UUID, _ string) (*domain.DailyQuota, error) {
	return f.quota, f.err
}

func (f *fakeQuotaRepo) ApplyAward(_ context.Context, _ pgx.Tx, _ uuid.UUID, _, _ string, _ int64, _ time.Time) error {
	return nil
}

type fakeAccountRepo struct {
	acct *domain.Account
	err  error
}

func (f *fakeAccountRepo) FindByID(_ context.Context, _ repository.DBTX, _ uuid.UUID) (*domain.Account, error) {
	return f.acct, f.err
}

func (f *fakeAccountRepo) Create(_ context.Context, _ repository.DBTX, _ *domain.Account) error {
	return nil
}

func (f *fakeAccountRepo) ApplyAward(_ context.Context, _ pgx.Tx, _ uuid.UUID, _ int64) (*domain.Account, error) {
	return f.acct, f.err
}

func (f *fakeAccountRepo) TouchLogin(_ context.Context, _ repository.DBTX, _ uuid.UUID) (*domain.Account, error) {
	return f.acct, f.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestEngine(quotas *fakeQuotaRepo, mode policy.CheckFailureMode) *Engine {
	return NewEngine(nil, &fakeAccountRepo{}, nil, quotas, nil, mode, testLogger())
}

func appErrCode(t *testing.T, err error) string {
	t.Helper()
	var appErr *domain.AppError
	require.ErrorAs(t, err, &appErr)
	return appErr.Code
}

func TestAwardRejectsNegativeScore(t *testing.T) {
	e := newTestEngine(&fakeQuotaRepo{}, policy.FailOpen)

	_, err := e.Award(context.Background(), uuid.New(), "snake", -1)
	assert.Equal(t, "INVALID_SCORE", appErrCode(t, err))
}

func TestAwardRejectsUnknownGame(t *testing.T) {
	e := newTestEngine(&fakeQuotaRepo{}, policy.FailOpen)

	_, err := e.Award(context.Background(), uuid.New(), "chess", 100)
	assert.Equal(t, "UNKNOWN_GAME", appErrCode(t, err))
}

func TestAwardRejectsScoreOverGameMaximum(t *testing.T) {
	e := newTestEngine(&fakeQuotaRepo{}, policy.FailOpen)

	_, err := e.Award(context.Background(), uuid.New(), "pong", 6)
	assert.Equal(t, "INVALID_SCORE", appErrCode(t, err))
}

func TestAwardDailyGameLimit(t *testing.T) {
	e := newTestEngine(&fakeQuotaRepo{quota: &domain.DailyQuota{
		GameCounts: map[string]int64{"snake": 10},
	}}, policy.FailOpen)

	_, err := e.Award(context.Background(), uuid.New(), "snake", 100)
	assert.Equal(t, "DAILY_GAME_LIMIT", appErrCode(t, err))
}

func TestAwardDailyCoinCap(t *testing.T) {
	e := newTestEngine(&fakeQuotaRepo{quota: &domain.DailyQuota{
		CoinsEarned: 3000,
	}}, policy.FailOpen)

	_, err := e.Award(context.Background(), uuid.New(), "snake", 100)
	assert.Equal(t, "DAILY_COIN_CAP", appErrCode(t, err))
}

func TestAwardCooldown(t *testing.T) {
	e := newTestEngine(&fakeQuotaRepo{quota: &domain.DailyQuota{}}, policy.FailOpen)
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	e.now = func() time.Time { return base }

	last := base.Add(-5 * time.Second)
	e.quotas.(*fakeQuotaRepo).quota.LastAwardAt = &last

	_, err := e.Award(context.Background(), uuid.New(), "snake", 100)
	assert.Equal(t, "COOLDOWN_ACTIVE", appErrCode(t, err))
}

func TestAwardQuotaReadFailureFailClosed(t *testing.T) {
	e := newTestEngine(&fakeQuotaRepo{err: errors.New("connection refused")}, policy.FailClosed)

	_, err := e.Award(context.Background(), uuid.New(), "snake", 100)
	assert.Equal(t, "STORAGE_UNAVAILABLE", appErrCode(t, err))
}

func TestGetBalance(t *testing.T) {
	accounts := &fakeAccountRepo{acct: &domain.Account{Coins: 1250}}
	e := NewEngine(nil, accounts, nil, nil, nil, policy.FailOpen, testLogger())

	assert.Equal(t, int64(1250), e.GetBalance(context.Background(), uuid.New()))
}

func TestGetBalanceFailsOpenToZero(t *testing.T) {
	tests := []struct {
		name     string
		accounts *fakeAccountRepo
	}{
		{"missing account", &fakeAccountRepo{acct: nil}},
		{"read error", &fakeAccountRepo{err: errors.New("timeout")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEngine(nil, tt.accounts, nil, nil, nil, policy.FailOpen, testLogger())
			assert.Equal(t, int64(0), e.GetBalance(context.Background(), uuid.New()))
		})
	}
}

func TestScoreMetadata(t *testing.T) {
	assert.JSONEq(t, `{"score":42}`, string(scoreMetadata(42)))
	assert.JSONEq(t, `{"score":0}`, string(scoreMetadata(0)))
}
