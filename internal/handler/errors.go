package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/wanderplan/trip-planner/backend/internal/domain"
)

// errorResponse is the JSON error body for every failure.
type errorResponse struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func errorBody(code, message string) errorResponse {
	return errorResponse{Error: errorDetail{Code: code, Message: message}}
}

// respondError maps a domain error to its HTTP status and writes the body.
// Anything that is not part of the error taxonomy is a 500 with a generic
// body; the real error goes to the log, not the client.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody("not_found", "itinerary not found"))
	case errors.Is(err, domain.ErrValidation):
		writeJSON(w, http.StatusUnprocessableEntity, errorBody("validation_error", unwrapMessage(err)))
	case errors.Is(err, domain.ErrAdjustment):
		writeJSON(w, http.StatusUnprocessableEntity, errorBody("adjustment_rejected", unwrapMessage(err)))
	case errors.Is(err, domain.ErrGeneration):
		writeJSON(w, http.StatusBadGateway, errorBody("generation_failed", unwrapMessage(err)))
	default:
		slog.ErrorContext(r.Context(), "unhandled error", "error", err, "path", r.URL.Path)
		writeJSON(w, http.StatusInternalServerError, errorBody("internal_error", "internal server error"))
	}
}

// unwrapMessage extracts the human-readable part from a wrapped sentinel error.
// e.g. "service.ItineraryService.Save: validation error: destination is required"
// → "destination is required"
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	for _, sentinel := range []error{domain.ErrValidation, domain.ErrAdjustment, domain.ErrGeneration} {
		marker := sentinel.Error() + ": "
		if i := strings.Index(msg, marker); i >= 0 {
			return msg[i+len(marker):]
		}
	}
	return msg
}
