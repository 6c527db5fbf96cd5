package handler

import (
	"net/http"

	"github.com/pixelarcade/platform/internal/domain"
	"github.com/pixelarcade/platform/internal/guard"
	"github.com/pixelarcade/platform/internal/ledger"
	"github.com/pixelarcade/platform/internal/policy"
)

// ArcadeHandler exposes the reward ledger and the reward policy table.
type ArcadeHandler struct {
	engine  *ledger.Engine
	limiter *guard.RateLimiter
}

// NewArcadeHandler creates a new ArcadeHandler.
func NewArcadeHandler(engine *ledger.Engine, limiter *guard.RateLimiter) *ArcadeHandler {
	return &ArcadeHandler{engine: engine, limiter: limiter}
}

// awardRequest is the body of POST /arcade/award.
type awardRequest struct {
	GameID string `json:"game_id"`
	Score  int64  `json:"score"`
}

// Award handles POST /arcade/award.
func (h *ArcadeHandler) Award(w http.ResponseWriter, r *http.Request) {
	accountID, err := accountIDFromContext(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	if res := h.limiter.Check(r.Context(), accountID.String()); !res.Allowed {
		RespondError(w, domain.ErrRateLimited(res.Reason))
		return
	}

	var req awardRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondError(w, domain.ErrValidation("invalid request body"))
		return
	}

	result, err := h.engine.Award(r.Context(), accountID, req.GameID, req.Score)
	if err != nil {
		RespondError(w, err)
		return
	}

	RespondJSON(w, http.StatusOK, result)
}

// ListGames handles GET /arcade/games: the fixed reward policy table, exposed
// so game pages can display reward info and pre-check scores.
func (h *ArcadeHandler) ListGames(w http.ResponseWriter, r *http.Request) {
	RespondJSON(w, http.StatusOK, map[string]interface{}{"games": policy.Games()})
}

// validateScoreRequest is the body of POST /arcade/validate-score.
type validateScoreRequest struct {
	GameID string `json:"game_id"`
	Score  int64  `json:"score"`
}

// ValidateScore handles POST /arcade/validate-score. Pure pre-check; no state
// is touched.
func (h *ArcadeHandler) ValidateScore(w http.ResponseWriter, r *http.Request) {
	var req validateScoreRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondError(w, domain.ErrValidation("invalid request body"))
		return
	}

	RespondJSON(w, http.StatusOK, map[string]bool{
		"valid": policy.ValidateScore(req.GameID, req.Score),
	})
}
