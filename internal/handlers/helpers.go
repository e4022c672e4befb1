// File: internal/handlers/helpers.go
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"docuchat/internal/domain"
	"docuchat/internal/services"
)

// writeJSON is a helper for sending JSON responses.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError is a helper for sending JSON error responses.
func writeError(w http.ResponseWriter, message string, status int) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeServiceError translates the error taxonomy into HTTP responses:
// validation and not-found surface with their message, storage and unknown
// failures are logged in detail and answered generically.
func writeServiceError(w http.ResponseWriter, logger services.Logger, err error) {
	var vErr *domain.ValidationError
	var sErr *domain.StorageError

	switch {
	case errors.As(err, &vErr):
		writeError(w, vErr.Message, http.StatusBadRequest)
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, err.Error(), http.StatusNotFound)
	case errors.As(err, &sErr):
		logger.Error("storage failure", "op", sErr.Op, "error", sErr.Err)
		writeError(w, "database error", http.StatusInternalServerError)
	default:
		logger.Error("unhandled failure", "error", err)
		writeError(w, "internal server error", http.StatusInternalServerError)
	}
}

// pathID extracts a numeric id path variable.
func pathID(r *http.Request, name string) (uint, error) {
	id, err := strconv.ParseUint(mux.Vars(r)[name], 10, 32)
	if err != nil {
		return 0, domain.NewValidationError("invalid %s", name)
	}
	return uint(id), nil
}
