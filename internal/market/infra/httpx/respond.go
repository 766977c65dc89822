package httpx

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/freshly-yours/marketplace/internal/market/core/ports"
)

// ErrorResponse is the uniform error body: a stable machine code and a
// human-readable message.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Field   string `json:"field,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, ErrorResponse{Error: code, Message: msg})
}

// respondDomainError translates a service error into the HTTP taxonomy.
// Every domain error is handled here; nothing propagates past the handlers.
func respondDomainError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *ports.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "validation_failed",
			Message: verr.Message,
			Field:   verr.Field,
		})
	case errors.Is(err, ports.ErrNoSuppliers):
		writeError(w, http.StatusBadRequest, "no_suppliers_available", "No suppliers available")
	case errors.Is(err, ports.ErrInvalidSupplier):
		writeError(w, http.StatusBadRequest, "invalid_supplier", "Invalid supplier")
	case errors.Is(err, ports.ErrOrderNotFound):
		writeError(w, http.StatusNotFound, "order_not_found", "Order not found")
	case errors.Is(err, ports.ErrProductNotFound):
		writeError(w, http.StatusNotFound, "product_not_found", "Product not found")
	case errors.Is(err, ports.ErrAccessDenied):
		writeError(w, http.StatusForbidden, "access_denied", "Access denied")
	case errors.Is(err, ports.ErrStatusConflict):
		writeError(w, http.StatusConflict, "illegal_transition", err.Error())
	case errors.Is(err, ports.ErrRevisionConflict):
		writeError(w, http.StatusConflict, "concurrent_update", "Order was modified concurrently, retry")
	case errors.Is(err, ports.ErrDuplicateEmail):
		writeError(w, http.StatusConflict, "email_taken", "Email already registered")
	case errors.Is(err, ports.ErrInvalidCredential):
		writeError(w, http.StatusUnauthorized, "invalid_credentials", "Invalid email or password")
	default:
		slog.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "Something went wrong")
	}
}
