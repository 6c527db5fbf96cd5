package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/pixelarcade/platform/internal/domain"
	"github.com/pixelarcade/platform/internal/service"
)

// FavoritesHandler handles the favorites list endpoints.
type FavoritesHandler struct {
	svc *service.FavoritesService
}

// NewFavoritesHandler creates a new FavoritesHandler.
func NewFavoritesHandler(svc *service.FavoritesService) *FavoritesHandler {
	return &FavoritesHandler{svc: svc}
}

// List handles GET /favorites.
func (h *FavoritesHandler) List(w http.ResponseWriter, r *http.Request) {
	accountID, err := accountIDFromContext(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	favs, err := h.svc.List(r.Context(), accountID)
	if err != nil {
		RespondError(w, err)
		return
	}

	RespondJSON(w, http.StatusOK, map[string]interface{}{"favorites": favs})
}

// addFavoriteRequest is the body of PUT /favorites/{gameID}.
type addFavoriteRequest struct {
	Title    string `json:"title"`
	Category string `json:"category"`
}

// Add handles PUT /favorites/{gameID}.
func (h *FavoritesHandler) Add(w http.ResponseWriter, r *http.Request) {
	accountID, err := accountIDFromContext(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	var req addFavoriteRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondError(w, domain.ErrValidation("invalid request body"))
		return
	}

	fav, err := h.svc.Add(r.Context(), accountID, chi.URLParam(r, "gameID"), req.Title, req.Category)
	if err != nil {
		RespondError(w, err)
		return
	}

	RespondJSON(w, http.StatusOK, fav)
}

// Remove handles DELETE /favorites/{gameID}.
func (h *FavoritesHandler) Remove(w http.ResponseWriter, r *http.Request) {
	accountID, err := accountIDFromContext(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	if err := h.svc.Remove(r.Context(), accountID, chi.URLParam(r, "gameID")); err != nil {
		RespondError(w, err)
		return
	}

	RespondJSON(w, http.StatusNoContent, nil)
}
