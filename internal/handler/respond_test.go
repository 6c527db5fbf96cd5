package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pixelarcade/platform/internal/domain"
)

func decodeErrorBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func TestRespondErrorAppError(t *testing.T) {
	tests := []struct {
		name       string
		err        *domain.AppError
		wantStatus int
		wantCode   string
	}{
		{"invalid score", domain.ErrInvalidScore("bad"), http.StatusBadRequest, "INVALID_SCORE"},
		{"unknown game", domain.ErrUnknownGame("chess"), http.StatusBadRequest, "UNKNOWN_GAME"},
		{"game limit", domain.ErrDailyGameLimit(), http.StatusTooManyRequests, "DAILY_GAME_LIMIT"},
		{"coin cap", domain.ErrDailyCoinCap(), http.StatusTooManyRequests, "DAILY_COIN_CAP"},
		{"cooldown", domain.ErrCooldownActive(), http.StatusTooManyRequests, "COOLDOWN_ACTIVE"},
		{"account missing", domain.ErrAccountNotFound("x"), http.StatusNotFound, "ACCOUNT_NOT_FOUND"},
		{"apply failed", domain.ErrAwardApplyFailed(errors.New("db")), http.StatusInternalServerError, "AWARD_APPLY_FAILED"},
		{"storage down", domain.ErrStorageUnavailable(errors.New("db")), http.StatusServiceUnavailable, "STORAGE_UNAVAILABLE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			RespondError(rec, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			body := decodeErrorBody(t, rec)
			assert.Equal(t, tt.wantCode, body["code"])
		})
	}
}

func TestRespondErrorHidesInternalCause(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondError(rec, domain.ErrAwardApplyFailed(errors.New("pq: deadlock detected")))

	assert.NotContains(t, rec.Body.String(), "deadlock")
}

func TestRespondErrorUnknownError(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondError(rec, errors.New("something broke"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeErrorBody(t, rec)
	assert.Equal(t, "INTERNAL_ERROR", body["code"])
	assert.NotContains(t, rec.Body.String(), "something broke")
}

func TestRespondJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondJSON(rec, http.StatusCreated, map[string]int64{"coins": 1000})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"coins":1000}`, rec.Body.String())
}
