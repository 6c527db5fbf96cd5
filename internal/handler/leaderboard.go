package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/pixelarcade/platform/internal/auth"
	"github.com/pixelarcade/platform/internal/domain"
	"github.com/pixelarcade/platform/internal/service"
)

// LeaderboardHandler handles score submission and board queries.
type LeaderboardHandler struct {
	svc *service.LeaderboardService
}

// NewLeaderboardHandler creates a new LeaderboardHandler.
func NewLeaderboardHandler(svc *service.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{svc: svc}
}

// submitScoreRequest is the body of POST /scores.
type submitScoreRequest struct {
	GameID string `json:"game_id"`
	Score  int64  `json:"score"`
}

// SubmitScore handles POST /scores.
func (h *LeaderboardHandler) SubmitScore(w http.ResponseWriter, r *http.Request) {
	accountID, err := accountIDFromContext(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	var req submitScoreRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondError(w, domain.ErrValidation("invalid request body"))
		return
	}

	username := ""
	if claims := auth.ClaimsFromContext(r.Context()); claims != nil {
		username = domain.UsernameFromEmail(claims.Email)
	}

	entry, err := h.svc.SubmitScore(r.Context(), accountID, username, req.GameID, req.Score)
	if err != nil {
		RespondError(w, err)
		return
	}

	RespondJSON(w, http.StatusCreated, entry)
}

// GetBoard handles GET /leaderboard/{gameID}?board=global|weekly.
func (h *LeaderboardHandler) GetBoard(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "gameID")

	var scores []domain.Score
	var err error
	switch r.URL.Query().Get("board") {
	case "", "global":
		scores, err = h.svc.Global(r.Context(), gameID)
	case "weekly":
		scores, err = h.svc.Weekly(r.Context(), gameID)
	default:
		RespondError(w, domain.ErrValidation("board must be global or weekly"))
		return
	}
	if err != nil {
		RespondError(w, err)
		return
	}

	RespondJSON(w, http.StatusOK, map[string]interface{}{"scores": scores})
}

// GetPersonal handles GET /leaderboard/{gameID}/me.
func (h *LeaderboardHandler) GetPersonal(w http.ResponseWriter, r *http.Request) {
	accountID, err := accountIDFromContext(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	board, err := h.svc.Personal(r.Context(), chi.URLParam(r, "gameID"), accountID)
	if err != nil {
		RespondError(w, err)
		return
	}

	RespondJSON(w, http.StatusOK, board)
}
