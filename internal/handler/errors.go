package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/pkordes/frontdesk/internal/domain"
)

// Error codes returned in ErrorResponse bodies.
const (
	codeNotFound   = "not_found"
	codeValidation = "validation_error"
	codeForbidden  = "forbidden"
	codeUpstream   = "upstream_error"
	codeInternal   = "internal_error"
)

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries a machine-readable code and a human-readable message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErrorBody(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Error: ErrorDetail{Code: code, Message: message}})
}

// requestError rejects a request before it reaches the service layer
// (e.g. a malformed query parameter).
func requestError(w http.ResponseWriter, message string) {
	writeErrorBody(w, http.StatusUnprocessableEntity, codeValidation, message)
}

// writeError maps a service error onto a status code and error body.
// Unclassified errors are logged and answered with a generic 500.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, context.Canceled):
		// The client is gone; nobody will read a body.
		s.log.DebugContext(r.Context(), "request canceled", "error", err)
		return
	case errors.Is(err, domain.ErrNotFound):
		writeErrorBody(w, http.StatusNotFound, codeNotFound, unwrapMessage(err, domain.ErrNotFound))
	case errors.Is(err, domain.ErrValidation):
		writeErrorBody(w, http.StatusUnprocessableEntity, codeValidation, unwrapMessage(err, domain.ErrValidation))
	case errors.Is(err, domain.ErrForbidden):
		writeErrorBody(w, http.StatusForbidden, codeForbidden, unwrapMessage(err, domain.ErrForbidden))
	case errors.Is(err, domain.ErrUpstream), errors.Is(err, context.DeadlineExceeded):
		s.log.WarnContext(r.Context(), "hotel backend failure", "error", err)
		writeErrorBody(w, http.StatusBadGateway, codeUpstream, "hotel backend unavailable")
	default:
		s.log.ErrorContext(r.Context(), "unhandled error", "error", err)
		writeErrorBody(w, http.StatusInternalServerError, codeInternal, "internal server error")
	}
}

// unwrapMessage extracts the human-readable part that follows the sentinel
// in a wrapped error, e.g.
// "service.BookingService.Delete: validation error: booking id must be positive"
// becomes "booking id must be positive". Without a detail the sentinel's own
// text is used.
func unwrapMessage(err, sentinel error) string {
	msg := err.Error()
	marker := sentinel.Error() + ": "
	if i := strings.LastIndex(msg, marker); i >= 0 {
		return msg[i+len(marker):]
	}
	return sentinel.Error()
}
