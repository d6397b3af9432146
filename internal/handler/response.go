package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/dukerupert/folio/internal/domain"
	"github.com/dukerupert/folio/internal/middleware"
)

// Envelope is the body of every API response.
type Envelope struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// JSON writes v as a JSON body with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// OK writes {"ok":true}.
func OK(w http.ResponseWriter) {
	JSON(w, http.StatusOK, Envelope{OK: true})
}

// ErrorResponse logs err and writes {"ok":false,"error":...} with the
// status derived from its domain code. Internal details never reach the body.
func ErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	code := domain.ErrorCode(err)
	status := ErrorCodeToHTTPStatus(code)

	logger := middleware.GetLogger(r.Context())
	attrs := []any{
		"error", err.Error(),
		"code", code,
		"op", domain.ErrorOp(err),
		"status", status,
	}
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", attrs...)
	} else {
		logger.Info("request rejected", attrs...)
	}

	JSON(w, status, Envelope{OK: false, Error: domain.ErrorMessage(err)})
}

// MethodNotAllowedResponse writes a 405 naming the allowed verbs in the Allow header.
func MethodNotAllowedResponse(w http.ResponseWriter, r *http.Request, allowed ...string) {
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	ErrorResponse(w, r, domain.MethodNotAllowed(r.Method+" "+r.URL.Path))
}

// NotFoundResponse writes a 404.
func NotFoundResponse(w http.ResponseWriter, r *http.Request) {
	ErrorResponse(w, r, domain.NotFound("", "The requested resource"))
}

// InternalErrorResponse logs err and returns a generic 500.
func InternalErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	ErrorResponse(w, r, domain.Internal(err, "", "An unexpected error occurred"))
}

// ErrorCodeToHTTPStatus maps domain error codes to HTTP status codes.
func ErrorCodeToHTTPStatus(code string) int {
	switch code {
	case domain.EINVALID:
		return http.StatusBadRequest // 400
	case domain.ENOTFOUND:
		return http.StatusNotFound // 404
	case domain.EMETHOD:
		return http.StatusMethodNotAllowed // 405
	case domain.ETOOLARGE:
		return http.StatusRequestEntityTooLarge // 413
	case domain.ECONFIG, domain.EDELIVERY, domain.EINTERNAL:
		return http.StatusInternalServerError // 500
	default:
		return http.StatusInternalServerError // 500
	}
}
