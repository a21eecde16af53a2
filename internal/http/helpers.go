package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"fintrack/internal/auth"
	"fintrack/internal/core"
	"fintrack/internal/log"
	"fintrack/internal/services"
	"fintrack/internal/storage"
	"fintrack/internal/tips"
)

type errorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "failed to encode response",
			log.FieldError, err.Error(),
			log.FieldPath, r.URL.Path,
		)
	}
}

func respondError(w http.ResponseWriter, r *http.Request, status int, message string) {
	respondJSON(w, r, status, errorResponse{Error: message})
}

// respondDomainError maps known sentinel errors to HTTP statuses. Anything
// unrecognized is logged and reported as a 500 without leaking internals.
func respondDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, core.ErrInvalidAmount),
		errors.Is(err, core.ErrInvalidType),
		errors.Is(err, core.ErrEmptyCategory),
		errors.Is(err, core.ErrCategoryTooLong),
		errors.Is(err, core.ErrInvalidDate),
		errors.Is(err, core.ErrEmptyEmail),
		errors.Is(err, core.ErrEmptyName),
		errors.Is(err, services.ErrPasswordTooShort),
		errors.Is(err, tips.ErrInvalidInput):
		respondError(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenExpired):
		respondError(w, r, http.StatusUnauthorized, err.Error())
	case errors.Is(err, services.ErrForbidden):
		respondError(w, r, http.StatusForbidden, err.Error())
	case errors.Is(err, storage.ErrNotFound):
		respondError(w, r, http.StatusNotFound, err.Error())
	case errors.Is(err, storage.ErrEmailTaken):
		respondError(w, r, http.StatusConflict, err.Error())
	default:
		logger := log.FromContext(r.Context())
		logger.ErrorContext(r.Context(), "request failed",
			log.FieldError, err.Error(),
			log.FieldPath, r.URL.Path,
		)
		respondError(w, r, http.StatusInternalServerError, "internal server error")
	}
}

// decodeJSON reads the body into dst. Unknown fields are ignored, so a
// payload carrying extra fields (an owner id, say) decodes fine and the
// extras never reach the domain.
func decodeJSON(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}
