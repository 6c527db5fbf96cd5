//go:build integration

package integration

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pixelarcade/platform/test/integration/testutil"
)

func submitScore(t *testing.T, env *testutil.TestEnv, token, gameID string, score int64) {
	t.Helper()
	resp := env.POST("/scores", map[string]interface{}{
		"game_id": gameID,
		"score":   score,
	}, token)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)
}

type boardResponse struct {
	Scores []struct {
		Username string `json:"username"`
		Score    int64  `json:"score"`
	} `json:"scores"`
}

func TestLeaderboard_GlobalOrdering(t *testing.T) {
	env := testutil.NewTestEnv(t)
	env.CleanAll()

	tokenA, _ := env.RegisterAccount("alice@test.com", "securepass")
	tokenB, _ := env.RegisterAccount("bob@test.com", "securepass")

	submitScore(t, env, tokenA, "snake", 500)
	submitScore(t, env, tokenB, "snake", 900)
	submitScore(t, env, tokenA, "snake", 700)

	resp := env.AuthGET("/leaderboard/snake", tokenA)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var board boardResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&board))
	require.Len(t, board.Scores, 3)

	assert.Equal(t, int64(900), board.Scores[0].Score)
	assert.Equal(t, "bob", board.Scores[0].Username)
	assert.Equal(t, int64(700), board.Scores[1].Score)
	assert.Equal(t, int64(500), board.Scores[2].Score)
}

func TestLeaderboard_ScopedPerGame(t *testing.T) {
	env := testutil.NewTestEnv(t)
	env.CleanAll()

	token, _ := env.RegisterAccount("scoped@test.com", "securepass")
	submitScore(t, env, token, "snake", 500)
	submitScore(t, env, token, "tetris", 9000)

	resp := env.AuthGET("/leaderboard/snake", token)
	defer resp.Body.Close()

	var board boardResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&board))
	require.Len(t, board.Scores, 1)
	assert.Equal(t, int64(500), board.Scores[0].Score)
}

func TestLeaderboard_WeeklyIncludesFreshScores(t *testing.T) {
	env := testutil.NewTestEnv(t)
	env.CleanAll()

	token, _ := env.RegisterAccount("weekly@test.com", "securepass")
	submitScore(t, env, token, "pacman", 12000)

	resp := env.AuthGET("/leaderboard/pacman?board=weekly", token)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var board boardResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&board))
	require.Len(t, board.Scores, 1)
}

func TestLeaderboard_InvalidBoardParam(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, _ := env.RegisterAccount("badboard@test.com", "securepass")

	resp := env.AuthGET("/leaderboard/snake?board=monthly", token)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestLeaderboard_PersonalStats(t *testing.T) {
	env := testutil.NewTestEnv(t)
	env.CleanAll()

	token, _ := env.RegisterAccount("stats@test.com", "securepass")
	submitScore(t, env, token, "snake", 100)
	submitScore(t, env, token, "snake", 300)
	submitScore(t, env, token, "snake", 200)

	resp := env.AuthGET("/leaderboard/snake/me", token)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var personal struct {
		Scores []struct {
			Score int64 `json:"score"`
		} `json:"scores"`
		Stats struct {
			BestScore    int64 `json:"best_score"`
			GamesPlayed  int   `json:"games_played"`
			AverageScore int64 `json:"average_score"`
		} `json:"stats"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&personal))

	require.Len(t, personal.Scores, 3)
	assert.Equal(t, int64(300), personal.Scores[0].Score) // best first
	assert.Equal(t, int64(300), personal.Stats.BestScore)
	assert.Equal(t, 3, personal.Stats.GamesPlayed)
	assert.Equal(t, int64(200), personal.Stats.AverageScore)
}

func TestSubmitScore_ValidatedAgainstGameRules(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, _ := env.RegisterAccount("subval@test.com", "securepass")

	resp := env.POST("/scores", map[string]interface{}{
		"game_id": "chess",
		"score":   100,
	}, token)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = env.POST("/scores", map[string]interface{}{
		"game_id": "snake",
		"score":   99999,
	}, token)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSubmitScore_DoesNotAwardCoins(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, _ := env.RegisterAccount("nocoins@test.com", "securepass")

	submitScore(t, env, token, "snake", 5000)
	assert.Equal(t, int64(1000), env.Balance(token))
}
