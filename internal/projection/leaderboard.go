package projection

import (
	"context"
	"fmt"
	"time"

	"github.com/pixelarcade/platform/internal/domain"
)

// CachedBoard is a materialized leaderboard, cached between reads. Boards are
// read far more often than scores arrive, and a slightly stale board is fine.
type CachedBoard struct {
	GameID    string         `json:"game_id"`
	Board     string         `json:"board"`
	Scores    []domain.Score `json:"scores"`
	UpdatedAt string         `json:"updated_at"`
}

const boardTTL = 30 * time.Second

func boardKey(gameID, board string) string {
	return fmt.Sprintf("projection:leaderboard:%s:%s", gameID, board)
}

// UpdateBoard caches a freshly computed leaderboard.
func UpdateBoard(ctx context.Context, store Store, gameID, board string, scores []domain.Score) error {
	p := CachedBoard{
		GameID:    gameID,
		Board:     board,
		Scores:    scores,
		UpdatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	return SetJSON(ctx, store, boardKey(gameID, board), p, boardTTL)
}

// GetBoard retrieves a cached leaderboard, or an error on miss or expiry.
func GetBoard(ctx context.Context, store Store, gameID, board string) (*CachedBoard, error) {
	var p CachedBoard
	if err := GetJSON(ctx, store, boardKey(gameID, board), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// InvalidateBoards drops all cached boards for a game, called after a new
// score lands.
func InvalidateBoards(ctx context.Context, store Store, gameID string) error {
	for _, board := range []string{"global", "weekly"} {
		if err := store.Delete(ctx, boardKey(gameID, board)); err != nil {
			return err
		}
	}
	return nil
}
