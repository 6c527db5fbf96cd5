package handler

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/pixelarcade/platform/internal/domain"
	"github.com/pixelarcade/platform/internal/ledger"
	"github.com/pixelarcade/platform/internal/repository"
)

// WalletHandler handles coin balance and transaction history endpoints.
type WalletHandler struct {
	engine       *ledger.Engine
	transactions repository.TransactionRepository
	db           repository.DBTX
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(engine *ledger.Engine, transactions repository.TransactionRepository, db repository.DBTX) *WalletHandler {
	return &WalletHandler{engine: engine, transactions: transactions, db: db}
}

// GetBalance handles GET /wallet/balance. Returns 0 for missing accounts and
// on read failures; balance display never errors.
func (h *WalletHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	accountID, err := accountIDFromContext(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	coins := h.engine.GetBalance(r.Context(), accountID)
	RespondJSON(w, http.StatusOK, map[string]int64{"coins": coins})
}

// txListResponse wraps a list of transactions with cursor.
type txListResponse struct {
	Transactions []domain.CoinTransaction `json:"transactions"`
	NextCursor   *string                  `json:"next_cursor,omitempty"`
}

// GetTransactions handles GET /wallet/transactions with cursor-based pagination.
func (h *WalletHandler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	accountID, err := accountIDFromContext(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	limitStr := r.URL.Query().Get("limit")
	limit := 20
	if limitStr != "" {
		if n, err := strconv.Atoi(limitStr); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}

	var cursor *string
	if c := r.URL.Query().Get("cursor"); c != "" {
		if _, err := uuid.Parse(c); err != nil {
			RespondError(w, domain.ErrValidation("cursor must be a transaction id"))
			return
		}
		cursor = &c
	}

	txs, err := h.transactions.ListByAccount(r.Context(), h.db, accountID, cursor, limit+1)
	if err != nil {
		RespondError(w, domain.ErrInternal("list transactions", err))
		return
	}

	resp := txListResponse{Transactions: txs}
	if len(txs) > limit {
		resp.Transactions = txs[:limit]
		nextID := txs[limit].ID.String()
		resp.NextCursor = &nextID
	}

	RespondJSON(w, http.StatusOK, resp)
}
