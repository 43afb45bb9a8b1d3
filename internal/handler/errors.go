package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/globetrotter/planner/internal/api"
	"github.com/globetrotter/planner/internal/domain"
)

// notFoundBody returns an ErrorResponse for a missing resource.
// The caller supplies the message because the handler is the layer that
// knows what was being looked up.
func notFoundBody(message string) api.ErrorResponse {
	return api.NewError("not_found", message)
}

// validationBody returns an ErrorResponse for a domain validation failure.
func validationBody(err error) api.ErrorResponse {
	return api.NewError("validation_error", unwrapMessage(err))
}

// requestBody returns an ErrorResponse for a request rejected before reaching
// the service layer (missing body, malformed JSON, bad path parameter).
func requestBody(message string) api.ErrorResponse {
	return api.NewError("validation_error", message)
}

// unwrapMessage extracts the human-readable part from a wrapped sentinel error.
// e.g. "service.TripService.Create: validation error: name is required" → "name is required"
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	const marker = "validation error: "
	if i := strings.LastIndex(msg, marker); i >= 0 && len(msg) > i+len(marker) {
		return msg[i+len(marker):]
	}
	return msg
}

// fail maps a service error to its HTTP response. notFound is the message used
// when err wraps domain.ErrNotFound.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error, notFound string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, notFoundBody(notFound))
	case errors.Is(err, domain.ErrValidation):
		writeJSON(w, http.StatusUnprocessableEntity, validationBody(err))
	case errors.Is(err, domain.ErrUnauthorized):
		writeJSON(w, http.StatusUnauthorized, api.NewError("unauthorized", "unauthorized"))
	default:
		s.log.ErrorContext(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusInternalServerError, api.NewError("internal_error", "internal server error"))
	}
}
