//go:build integration

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// RegisterAccount creates a new account and returns the auth token and account ID.
func (env *TestEnv) RegisterAccount(email, password string) (token string, accountID uuid.UUID) {
	env.t.Helper()
	resp := env.POST("/auth/register", map[string]string{
		"email":    email,
		"password": password,
	}, "")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		env.t.Fatalf("RegisterAccount: expected 201, got %d", resp.StatusCode)
	}

	var result struct {
		Token     string    `json:"token"`
		AccountID uuid.UUID `json:"account_id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		env.t.Fatalf("RegisterAccount: decode: %v", err)
	}
	return result.Token, result.AccountID
}

// LoginAccount authenticates an existing account and returns the auth token.
func (env *TestEnv) LoginAccount(email, password string) string {
	env.t.Helper()
	resp := env.POST("/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, "")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		env.t.Fatalf("LoginAccount: expected 200, got %d", resp.StatusCode)
	}

	var result struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		env.t.Fatalf("LoginAccount: decode: %v", err)
	}
	return result.Token
}

// GET performs an unauthenticated GET request.
func (env *TestEnv) GET(path string) *http.Response {
	env.t.Helper()
	resp, err := http.Get(env.Server.URL + path)
	if err != nil {
		env.t.Fatalf("GET %s: %v", path, err)
	}
	return resp
}

// POST performs a POST request with optional auth token.
func (env *TestEnv) POST(path string, body interface{}, token string) *http.Response {
	env.t.Helper()
	return env.request("POST", path, body, token)
}

// AuthGET performs an authenticated GET request.
func (env *TestEnv) AuthGET(path, token string) *http.Response {
	env.t.Helper()
	return env.request("GET", path, nil, token)
}

// AuthPUT performs an authenticated PUT request.
func (env *TestEnv) AuthPUT(path string, body interface{}, token string) *http.Response {
	env.t.Helper()
	return env.request("PUT", path, body, token)
}

// AuthDELETE performs an authenticated DELETE request.
func (env *TestEnv) AuthDELETE(path, token string) *http.Response {
	env.t.Helper()
	return env.request("DELETE", path, nil, token)
}

// OPTIONS performs an OPTIONS request.
func (env *TestEnv) OPTIONS(path string) *http.Response {
	env.t.Helper()
	return env.request("OPTIONS", path, nil, "")
}

func (env *TestEnv) request(method, path string, body interface{}, token string) *http.Response {
	env.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			env.t.Fatalf("%s %s: encode: %v", method, path, err)
		}
	}
	req, err := http.NewRequest(method, env.Server.URL+path, &buf)
	if err != nil {
		env.t.Fatalf("%s %s: new request: %v", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		env.t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

// ClearCooldown rewinds last_award_at on today's quota row so the next award
// is not blocked by the 30-second cooldown.
func (env *TestEnv) ClearCooldown(accountID uuid.UUID) {
	env.t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := env.Pool.Exec(ctx,
		"UPDATE daily_quotas SET last_award_at = last_award_at - interval '1 minute' WHERE account_id = $1",
		accountID)
	if err != nil {
		env.t.Fatalf("ClearCooldown: %v", err)
	}
}

// SeedQuota writes today's quota row directly, bypassing the API.
func (env *TestEnv) SeedQuota(accountID uuid.UUID, gameID string, plays int64, coinsEarned int64) {
	env.t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	day := time.Now().UTC().Format("2006-01-02")
	_, err := env.Pool.Exec(ctx, `
		INSERT INTO daily_quotas (account_id, day, game_counts, coins_earned, last_award_at)
		VALUES ($1, $2, jsonb_build_object($3::text, $4::bigint), $5, now() - interval '1 minute')
		ON CONFLICT (account_id, day) DO UPDATE SET
			game_counts = jsonb_build_object($3::text, $4::bigint),
			coins_earned = $5,
			last_award_at = now() - interval '1 minute'`,
		accountID, day, gameID, plays, coinsEarned)
	if err != nil {
		env.t.Fatalf("SeedQuota: %v", err)
	}
}

// DeleteAccountRow removes the accounts row directly, bypassing the API. The
// auth user survives, so the account's token still authenticates.
func (env *TestEnv) DeleteAccountRow(accountID uuid.UUID) {
	env.t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := env.Pool.Exec(ctx, "DELETE FROM accounts WHERE id = $1", accountID); err != nil {
		env.t.Fatalf("DeleteAccountRow: %v", err)
	}
}

// RowsForAccount counts a table's rows belonging to one account.
func (env *TestEnv) RowsForAccount(table string, accountID uuid.UUID) int {
	env.t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var n int
	err := env.Pool.QueryRow(ctx,
		"SELECT count(*) FROM "+table+" WHERE account_id = $1", accountID).Scan(&n)
	if err != nil {
		env.t.Fatalf("RowsForAccount %s: %v", table, err)
	}
	return n
}

// Balance reads the account's coin balance via the API.
func (env *TestEnv) Balance(token string) int64 {
	env.t.Helper()
	resp := env.AuthGET("/wallet/balance", token)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		env.t.Fatalf("Balance: expected 200, got %d", resp.StatusCode)
	}

	var result struct {
		Coins int64 `json:"coins"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		env.t.Fatalf("Balance: decode: %v", err)
	}
	return result.Coins
}

// Award posts a score for the account and returns the raw response.
func (env *TestEnv) Award(token, gameID string, score int64) *http.Response {
	env.t.Helper()
	return env.POST("/arcade/award", map[string]interface{}{
		"game_id": gameID,
		"score":   score,
	}, token)
}
