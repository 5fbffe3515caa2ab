package httpx

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/ollanpharmacy/pharmacy-api/internal/catalog"
	"github.com/ollanpharmacy/pharmacy-api/internal/orders"
	"github.com/ollanpharmacy/pharmacy-api/internal/users"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func statusFor(k orders.Kind) int {
	switch k {
	case orders.KindValidation:
		return http.StatusBadRequest
	case orders.KindNotFound:
		return http.StatusNotFound
	case orders.KindUnauthorized:
		return http.StatusForbidden
	case orders.KindConflict:
		return http.StatusConflict
	case orders.KindExternal:
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// writeError maps typed domain failures to status codes; anything unexpected
// is logged in full and surfaces as a generic server error.
func writeError(w http.ResponseWriter, err error) {
	var oe *orders.Error
	if errors.As(err, &oe) {
		writeJSON(w, statusFor(oe.Kind), map[string]string{"error": oe.Message, "code": oe.Code})
		return
	}
	switch {
	case errors.Is(err, users.ErrEmailTaken):
		writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
	case errors.Is(err, users.ErrInvalidCode),
		errors.Is(err, users.ErrInvalidResetToken),
		errors.Is(err, users.ErrInvalidRole):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, users.ErrAlreadyVerified):
		writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
	case errors.Is(err, users.ErrBadCredential):
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": err.Error()})
	case errors.Is(err, users.ErrNotVerified):
		writeJSON(w, http.StatusForbidden, map[string]string{"error": err.Error()})
	case errors.Is(err, users.ErrNotFound), errors.Is(err, catalog.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	default:
		log.Printf("internal error: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "server error"})
	}
}
