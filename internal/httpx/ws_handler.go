package httpx

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ollanpharmacy/pharmacy-api/internal/auth"
	"github.com/ollanpharmacy/pharmacy-api/internal/broadcast"
	"github.com/ollanpharmacy/pharmacy-api/internal/users"
)

type WSHandler struct {
	Hub *broadcast.Hub
}

func (h *WSHandler) Register(r chi.Router) {
	r.Get("/ws", h.serve)
}

// serve upgrades admin and rider dashboards to the live event stream.
func (h *WSHandler) serve(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.UserFrom(r.Context())
	if !ok || (u.Role != users.RoleAdmin && u.Role != users.RoleRider) {
		http.Error(w, `{"error":"forbidden"}`, http.StatusForbidden)
		return
	}
	h.Hub.ServeWS(w, r)
}
