//go:build integration

package integration

import (
	"encoding/json"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pixelarcade/platform/test/integration/testutil"
)

type awardResponse struct {
	CoinsEarned   int64  `json:"coins_earned"`
	NewBalance    int64  `json:"new_balance"`
	TransactionID string `json:"transaction_id"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func decodeAward(t *testing.T, resp *http.Response) awardResponse {
	t.Helper()
	defer resp.Body.Close()
	var result awardResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	return result
}

func decodeError(t *testing.T, resp *http.Response) errorResponse {
	t.Helper()
	defer resp.Body.Close()
	var result errorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	return result
}

func TestAward_ComputesReward(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, _ := env.RegisterAccount("award1@test.com", "securepass")

	// snake: 10 base + 200 * 0.1 = 30
	resp := env.Award(token, "snake", 200)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	result := decodeAward(t, resp)
	assert.Equal(t, int64(30), result.CoinsEarned)
	assert.Equal(t, int64(1030), result.NewBalance)
	assert.NotEmpty(t, result.TransactionID)

	assert.Equal(t, int64(1030), env.Balance(token))
}

func TestAward_RewardClampedToMax(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, _ := env.RegisterAccount("clamp@test.com", "securepass")

	// tetris: 20 + 100000 * 0.2 far exceeds the 500 cap
	resp := env.Award(token, "tetris", 100000)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	result := decodeAward(t, resp)
	assert.Equal(t, int64(500), result.CoinsEarned)
}

func TestAward_UnknownGameRejected(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, _ := env.RegisterAccount("unknown@test.com", "securepass")

	resp := env.Award(token, "chess", 100)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "UNKNOWN_GAME", decodeError(t, resp).Code)

	assert.Equal(t, int64(1000), env.Balance(token))
}

func TestAward_InvalidScoreRejected(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, _ := env.RegisterAccount("badscore@test.com", "securepass")

	tests := []struct {
		name   string
		gameID string
		score  int64
	}{
		{"negative score", "snake", -5},
		{"over game maximum", "snake", 10001},
		{"pong over tiny maximum", "pong", 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := env.Award(token, tt.gameID, tt.score)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Equal(t, "INVALID_SCORE", decodeError(t, resp).Code)
		})
	}

	assert.Equal(t, int64(1000), env.Balance(token))
}

func TestAward_CooldownBlocksSecondCall(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, accountID := env.RegisterAccount("cooldown@test.com", "securepass")

	resp := env.Award(token, "snake", 100)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = env.Award(token, "snake", 100)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "COOLDOWN_ACTIVE", decodeError(t, resp).Code)

	// After the cooldown window the next award goes through.
	env.ClearCooldown(accountID)
	resp = env.Award(token, "snake", 100)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAward_CooldownIsPerAccountNotPerGame(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, _ := env.RegisterAccount("crossgame@test.com", "securepass")

	resp := env.Award(token, "snake", 100)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = env.Award(token, "tetris", 100)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "COOLDOWN_ACTIVE", decodeError(t, resp).Code)
}

func TestAward_DailyGameLimit(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, accountID := env.RegisterAccount("gamelimit@test.com", "securepass")

	env.SeedQuota(accountID, "snake", 10, 500)

	resp := env.Award(token, "snake", 100)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "DAILY_GAME_LIMIT", decodeError(t, resp).Code)

	// A different game is still playable.
	resp = env.Award(token, "tetris", 100)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAward_DailyCoinCap(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, accountID := env.RegisterAccount("coincap@test.com", "securepass")

	env.SeedQuota(accountID, "snake", 3, 3000)

	resp := env.Award(token, "tetris", 100)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "DAILY_COIN_CAP", decodeError(t, resp).Code)
}

func TestAward_CoinCapChecksBeforeAwardNotAfter(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, accountID := env.RegisterAccount("capcross@test.com", "securepass")

	// At 2999 the cap check passes; the award may carry the day total past
	// 3000. The overshoot is by design: the cap gates entry, not the sum.
	env.SeedQuota(accountID, "snake", 3, 2999)

	resp := env.Award(token, "tetris", 2000) // 20 + 400 = 420, clamped within 500
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	env.ClearCooldown(accountID)
	resp = env.Award(token, "tetris", 2000)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "DAILY_COIN_CAP", decodeError(t, resp).Code)
}

func TestAward_WritesTransactionRecord(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, _ := env.RegisterAccount("txrecord@test.com", "securepass")

	resp := env.Award(token, "breakout", 1000)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	award := decodeAward(t, resp)

	resp = env.AuthGET("/wallet/transactions", token)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var list struct {
		Transactions []struct {
			ID           string          `json:"id"`
			GameID       string          `json:"game_id"`
			Type         string          `json:"type"`
			Amount       int64           `json:"amount"`
			BalanceAfter int64           `json:"balance_after"`
			Metadata     json.RawMessage `json:"metadata"`
		} `json:"transactions"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	require.Len(t, list.Transactions, 1)

	tx := list.Transactions[0]
	assert.Equal(t, award.TransactionID, tx.ID)
	assert.Equal(t, "breakout", tx.GameID)
	assert.Equal(t, "game_reward", tx.Type)
	assert.Equal(t, award.CoinsEarned, tx.Amount)
	assert.Equal(t, award.NewBalance, tx.BalanceAfter)
	assert.JSONEq(t, `{"score":1000}`, string(tx.Metadata))
}

func TestAward_MissingAccountRowLeavesNoWrites(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, accountID := env.RegisterAccount("ghost@test.com", "securepass")

	// The token still authenticates; only the balance row is gone. The apply
	// transaction must detect the missing row and roll back everything.
	env.DeleteAccountRow(accountID)

	resp := env.Award(token, "snake", 100)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "ACCOUNT_NOT_FOUND", decodeError(t, resp).Code)

	assert.Zero(t, env.RowsForAccount("coin_transactions", accountID))
	assert.Zero(t, env.RowsForAccount("daily_quotas", accountID))
}

func TestAward_AccountsAreIsolated(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token1, _ := env.RegisterAccount("isol1@test.com", "securepass")
	token2, _ := env.RegisterAccount("isol2@test.com", "securepass")

	resp := env.Award(token1, "snake", 500)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, int64(1060), env.Balance(token1)) // 10 + 50
	assert.Equal(t, int64(1000), env.Balance(token2))
}

func TestAward_ConcurrentAwardsNeverLoseCoins(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, _ := env.RegisterAccount("concurrent@test.com", "securepass")

	// All requests race past the advisory checks before any of them has
	// written a quota row. Every one that succeeds must land its full
	// increment; the final balance is exactly the sum of what was reported.
	const workers = 5
	var wg sync.WaitGroup
	var mu sync.Mutex
	var earned int64

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp := env.Award(token, "snake", 100)
			defer resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				var result awardResponse
				if err := json.NewDecoder(resp.Body).Decode(&result); err == nil {
					mu.Lock()
					earned += result.CoinsEarned
					mu.Unlock()
				}
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1000)+earned, env.Balance(token))
}
