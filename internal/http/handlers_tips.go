package http

import (
	"errors"
	"net/http"

	"fintrack/internal/log"
	"fintrack/internal/tips"
)

type tipsRequest struct {
	Transactions []tips.Snapshot `json:"transactions"`
}

func (s *Server) handleTips(w http.ResponseWriter, r *http.Request) {
	var req tipsRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := s.advisor.Suggest(r.Context(), req.Transactions)
	if err != nil {
		if !errors.Is(err, tips.ErrUnavailable) {
			respondDomainError(w, r, err)
			return
		}
		// Degraded path: the result carries a fallback suggestion and the
		// request still succeeds.
		logger := log.FromContext(r.Context())
		logger.WarnContext(r.Context(), "tips generator unavailable, serving fallback",
			log.FieldOperation, log.OpSuggest,
			log.FieldError, err.Error(),
		)
	}

	logger := log.FromContext(r.Context())
	logger.InfoContext(r.Context(), "tips generated",
		log.FieldOperation, log.OpSuggest,
		log.FieldTipsSource, string(result.Source),
	)

	respondJSON(w, r, http.StatusOK, result)
}
