package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"kalender/internal/delivery/http/helpers"
	"kalender/internal/domain"
)

// writeServiceError maps a service error onto the response envelope. Only
// unexpected errors are logged.
func writeServiceError(logger *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case domain.IsValidation(err):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
	case errors.Is(err, domain.ErrDuplicateParticipation):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeDuplicate, err.Error())
	default:
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
	}
}
