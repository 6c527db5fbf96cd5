package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pixelarcade/platform/internal/domain"
	"github.com/pixelarcade/platform/internal/policy"
	"github.com/pixelarcade/platform/internal/projection"
	"github.com/pixelarcade/platform/internal/repository"
)

const (
	globalBoardSize   = 100
	personalBoardSize = 50
)

// LeaderboardService handles score submission and board queries. Board reads
// go through a short-TTL projection cache; submissions invalidate it.
type LeaderboardService struct {
	pool   *pgxpool.Pool
	scores repository.ScoreRepository
	outbox repository.OutboxRepository
	boards projection.Store
	logger *slog.Logger
}

// NewLeaderboardService creates a new LeaderboardService.
func NewLeaderboardService(pool *pgxpool.Pool, scores repository.ScoreRepository, outbox repository.OutboxRepository, boards projection.Store, logger *slog.Logger) *LeaderboardService {
	return &LeaderboardService{pool: pool, scores: scores, outbox: outbox, boards: boards, logger: logger}
}

// SubmitScore records a leaderboard entry. Submissions are bounds-checked
// against the game's maximum accepted score but do not award coins; the
// reward ledger is a separate call.
func (s *LeaderboardService) SubmitScore(ctx context.Context, accountID uuid.UUID, username, gameID string, score int64) (*domain.Score, error) {
	if _, ok := policy.Lookup(gameID); !ok {
		return nil, domain.ErrUnknownGame(gameID)
	}
	if !policy.ValidateScore(gameID, score) {
		return nil, domain.ErrInvalidScore("score out of range for game")
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, domain.ErrInternal("begin tx", err)
	}
	defer tx.Rollback(ctx)

	entry, err := s.scores.Insert(ctx, tx, &domain.Score{
		AccountID: accountID,
		GameID:    gameID,
		Username:  username,
		Score:     score,
		CreatedAt: time.Now(),
	})
	if err != nil {
		return nil, domain.ErrInternal("insert score", err)
	}

	if err := s.outbox.Insert(ctx, tx, domain.NewScoreSubmittedEvent(entry)); err != nil {
		return nil, domain.ErrInternal("insert outbox event", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, domain.ErrInternal("commit tx", err)
	}

	if err := projection.InvalidateBoards(ctx, s.boards, gameID); err != nil {
		s.logger.Warn("board cache invalidation failed", "game_id", gameID, "error", err)
	}

	s.logger.Info("score submitted", "account_id", accountID, "game_id", gameID, "score", score)
	return entry, nil
}

// Global returns the all-time top scores for a game.
func (s *LeaderboardService) Global(ctx context.Context, gameID string) ([]domain.Score, error) {
	if cached, err := projection.GetBoard(ctx, s.boards, gameID, "global"); err == nil {
		return cached.Scores, nil
	}

	scores, err := s.scores.Top(ctx, s.pool, gameID, nil, globalBoardSize)
	if err != nil {
		return nil, domain.ErrInternal("load global leaderboard", err)
	}
	if err := projection.UpdateBoard(ctx, s.boards, gameID, "global", scores); err != nil {
		s.logger.Warn("board cache update failed", "game_id", gameID, "error", err)
	}
	return scores, nil
}

// Weekly returns the top scores for a game since the start of the current
// week (Monday 00:00 UTC).
func (s *LeaderboardService) Weekly(ctx context.Context, gameID string) ([]domain.Score, error) {
	if cached, err := projection.GetBoard(ctx, s.boards, gameID, "weekly"); err == nil {
		return cached.Scores, nil
	}

	since := weekStart(time.Now())
	scores, err := s.scores.Top(ctx, s.pool, gameID, &since, globalBoardSize)
	if err != nil {
		return nil, domain.ErrInternal("load weekly leaderboard", err)
	}
	if err := projection.UpdateBoard(ctx, s.boards, gameID, "weekly", scores); err != nil {
		s.logger.Warn("board cache update failed", "game_id", gameID, "error", err)
	}
	return scores, nil
}

// PersonalBoard bundles an account's score history with summary stats.
type PersonalBoard struct {
	Scores []domain.Score     `json:"scores"`
	Stats  domain.PlayerStats `json:"stats"`
}

// Personal returns an account's best scores for a game plus summary stats.
func (s *LeaderboardService) Personal(ctx context.Context, gameID string, accountID uuid.UUID) (*PersonalBoard, error) {
	scores, err := s.scores.ByAccount(ctx, s.pool, gameID, accountID, personalBoardSize)
	if err != nil {
		return nil, domain.ErrInternal("load personal leaderboard", err)
	}

	board := &PersonalBoard{Scores: scores}
	if len(scores) > 0 {
		var sum int64
		for _, sc := range scores {
			sum += sc.Score
		}
		board.Stats = domain.PlayerStats{
			BestScore:    scores[0].Score,
			GamesPlayed:  len(scores),
			AverageScore: sum / int64(len(scores)),
		}
	}
	return board, nil
}

// weekStart returns Monday 00:00 UTC of the week containing t.
func weekStart(t time.Time) time.Time {
	t = t.UTC()
	offset := (int(t.Weekday()) + 6) % 7
	monday := t.AddDate(0, 0, -offset)
	return time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, time.UTC)
}
