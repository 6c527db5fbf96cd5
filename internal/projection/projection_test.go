package projection

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pixelarcade/platform/internal/domain"
)

func TestInMemoryStoreSetGetDelete(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", []byte("v"), 0))

	got, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)

	require.NoError(t, store.Delete(ctx, "k"))
	_, err = store.Get(ctx, "k")
	assert.Error(t, err)
}

func TestInMemoryStoreTTL(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", []byte("v"), 10*time.Millisecond))

	_, err := store.Get(ctx, "k")
	require.NoError(t, err)

	time.Sleep(20 * time.Millisecond)
	_, err = store.Get(ctx, "k")
	assert.Error(t, err)
}

func TestBoardCacheRoundTrip(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()

	scores := []domain.Score{
		{GameID: "snake", Username: "alice", Score: 900},
		{GameID: "snake", Username: "bob", Score: 500},
	}
	require.NoError(t, UpdateBoard(ctx, store, "snake", "global", scores))

	cached, err := GetBoard(ctx, store, "snake", "global")
	require.NoError(t, err)
	assert.Equal(t, "snake", cached.GameID)
	assert.Equal(t, "global", cached.Board)
	require.Len(t, cached.Scores, 2)
	assert.Equal(t, int64(900), cached.Scores[0].Score)
}

func TestBoardCacheMiss(t *testing.T) {
	store := NewInMemoryStore()

	_, err := GetBoard(context.Background(), store, "snake", "global")
	assert.Error(t, err)
}

func TestInvalidateBoardsDropsBothViews(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()

	require.NoError(t, UpdateBoard(ctx, store, "snake", "global", nil))
	require.NoError(t, UpdateBoard(ctx, store, "snake", "weekly", nil))
	require.NoError(t, UpdateBoard(ctx, store, "tetris", "global", nil))

	require.NoError(t, InvalidateBoards(ctx, store, "snake"))

	_, err := GetBoard(ctx, store, "snake", "global")
	assert.Error(t, err)
	_, err = GetBoard(ctx, store, "snake", "weekly")
	assert.Error(t, err)

	_, err = GetBoard(ctx, store, "tetris", "global")
	assert.NoError(t, err)
}
