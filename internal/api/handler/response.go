package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/hszk-dev/vidshare/internal/domain/model"
)

// DataResponse is the success envelope.
type DataResponse struct {
	Data any `json:"data"`
}

// ErrorResponse is the failure envelope.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			http.Error(w, "failed to encode response", http.StatusInternalServerError)
		}
	}
}

// Data writes payload inside the success envelope.
func Data(w http.ResponseWriter, status int, payload any) {
	JSON(w, status, DataResponse{Data: payload})
}

func Error(w http.ResponseWriter, status int, err string, message string) {
	JSON(w, status, ErrorResponse{
		Error:   err,
		Message: message,
	})
}

// ServiceError maps an error's kind to a status code and writes it.
// Client errors carry only the message of the error that set the kind.
// Upstream and internal failures are logged; their details never reach the client.
func ServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch kind := model.KindOf(err); {
	case errors.Is(kind, model.ErrValidation):
		Error(w, http.StatusBadRequest, "validation_failed", model.PublicMessage(err))
	case errors.Is(kind, model.ErrNotFound):
		Error(w, http.StatusNotFound, "not_found", model.PublicMessage(err))
	case errors.Is(kind, model.ErrForbidden):
		Error(w, http.StatusForbidden, "forbidden", model.PublicMessage(err))
	case errors.Is(kind, model.ErrConflict):
		Error(w, http.StatusConflict, "conflict", model.PublicMessage(err))
	case errors.Is(kind, model.ErrUpstream):
		slog.ErrorContext(r.Context(), "upstream failure",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
		Error(w, http.StatusBadGateway, "upstream_unavailable", "A backing service is unavailable")
	default:
		slog.ErrorContext(r.Context(), "unexpected error",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
		Error(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
	}
}

// Unauthorized writes a 401 response.
func Unauthorized(w http.ResponseWriter, message string) {
	Error(w, http.StatusUnauthorized, "unauthorized", message)
}
