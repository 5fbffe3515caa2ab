package httpx

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ollanpharmacy/pharmacy-api/internal/auth"
	"github.com/ollanpharmacy/pharmacy-api/internal/users"
)

// UsersHandler serves the authenticated account-management endpoints.
type UsersHandler struct {
	Users *users.Service
}

func (h *UsersHandler) Register(r chi.Router) {
	r.Put("/profile", h.updateProfile)

	admin := r.With(auth.RequireRole(users.RoleAdmin))
	admin.Post("/users/role", h.updateRole)
}

type updateProfileReq struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (h *UsersHandler) updateProfile(w http.ResponseWriter, r *http.Request) {
	var req updateProfileReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	u, _ := auth.UserFrom(r.Context())

	updated, err := h.Users.UpdateProfile(r.Context(), u.ID, req.Name, req.Email)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "profile updated", "user": updated})
}

type updateRoleReq struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

func (h *UsersHandler) updateRole(w http.ResponseWriter, r *http.Request) {
	var req updateRoleReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "user id is required"})
		return
	}

	updated, err := h.Users.UpdateUserRole(r.Context(), req.UserID, users.Role(req.Role))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "user role updated", "user": updated})
}
