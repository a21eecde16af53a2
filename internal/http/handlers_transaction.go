package http

import (
	"net/http"
	"strconv"
	"time"

	"fintrack/internal/core"
	"fintrack/internal/log"
	"fintrack/internal/services"
)

type createTransactionRequest struct {
	Amount   core.Money `json:"amount"`
	Type     string     `json:"type"`
	Category string     `json:"category"`
	Date     string     `json:"date"`
}

type transactionView struct {
	ID        int64                `json:"id"`
	Amount    core.Money           `json:"amount"`
	Type      core.TransactionType `json:"type"`
	Category  string               `json:"category"`
	Date      string               `json:"date"`
	CreatedAt string               `json:"createdAt"`
}

type listTransactionsResponse struct {
	Transactions []transactionView     `json:"transactions"`
	Summary      core.Summary          `json:"summary"`
	ByCategory   map[string]core.Money `json:"byCategory"`
}

type deleteTransactionResponse struct {
	Deleted int64 `json:"deleted"`
}

func newTransactionView(t core.Transaction) transactionView {
	return transactionView{
		ID:        t.ID,
		Amount:    t.Amount,
		Type:      t.Type,
		Category:  t.Category,
		Date:      t.Date.String(),
		CreatedAt: t.CreatedAt.Format(time.RFC3339),
	}
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		respondError(w, r, http.StatusUnauthorized, "authorization required")
		return
	}

	var req createTransactionRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	date, err := core.ParseDate(req.Date)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	created, err := s.ledger.CreateTransaction(r.Context(), userID, services.CreateTransactionInput{
		Amount:   req.Amount,
		Type:     core.TransactionType(req.Type),
		Category: req.Category,
		Date:     date,
	})
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	logger := log.FromContext(r.Context())
	logger.InfoContext(r.Context(), "transaction created",
		log.FieldOperation, log.OpCreate,
		log.FieldUserID, userID,
		log.FieldTransactionID, created.ID,
		log.FieldAmountCents, created.Amount.Cents,
		log.FieldType, string(created.Type),
		log.FieldCategory, created.Category,
	)

	respondJSON(w, r, http.StatusOK, newTransactionView(created))
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		respondError(w, r, http.StatusUnauthorized, "authorization required")
		return
	}

	transactions, err := s.ledger.ListTransactions(r.Context(), userID)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	views := make([]transactionView, 0, len(transactions))
	for _, t := range transactions {
		views = append(views, newTransactionView(t))
	}

	respondJSON(w, r, http.StatusOK, listTransactionsResponse{
		Transactions: views,
		Summary:      core.Summarize(transactions),
		ByCategory:   core.CategoryBreakdown(transactions),
	})
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		respondError(w, r, http.StatusUnauthorized, "authorization required")
		return
	}

	transactionID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid transaction id")
		return
	}

	if err := s.ledger.DeleteTransaction(r.Context(), userID, transactionID); err != nil {
		respondDomainError(w, r, err)
		return
	}

	logger := log.FromContext(r.Context())
	logger.InfoContext(r.Context(), "transaction deleted",
		log.FieldOperation, log.OpDelete,
		log.FieldUserID, userID,
		log.FieldTransactionID, transactionID,
	)

	respondJSON(w, r, http.StatusOK, deleteTransactionResponse{Deleted: transactionID})
}
