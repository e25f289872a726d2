package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/okunev/chatlite/internal/common"
)

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}

// writeServiceError maps the service sentinel errors onto HTTP statuses.
// Anything unrecognized is a store-layer failure surfaced as 500; the
// handler logs it, the body stays generic.
func (s *HTTPServer) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, common.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, common.ErrUnauthorized), errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired):
		writeError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, common.ErrForbidden):
		writeError(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, common.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	default:
		s.logger.Error(r.Context(), err.Error())
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
