package httpx

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ollanpharmacy/pharmacy-api/internal/auth"
	"github.com/ollanpharmacy/pharmacy-api/internal/users"
)

type AuthHandler struct {
	Users     *users.Service
	JWTSecret string
}

func (h *AuthHandler) Register(r chi.Router) {
	r.Post("/auth/signup", h.signup)
	r.Post("/auth/verify", h.verify)
	r.Post("/auth/resend-verification", h.resendVerification)
	r.Post("/auth/login", h.login)
	r.Post("/auth/forgot-password", h.forgotPassword)
	r.Post("/auth/reset-password", h.resetPassword)
}

type signupReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

func (h *AuthHandler) signup(w http.ResponseWriter, r *http.Request) {
	var req signupReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if req.Name == "" || req.Email == "" || req.Phone == "" || len(req.Password) < 8 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name, email, phone and a password of at least 8 characters are required"})
		return
	}

	u, err := h.Users.Signup(r.Context(), req.Name, req.Email, req.Phone, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"message": "verification code sent", "user": u})
}

type verifyReq struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

func (h *AuthHandler) verify(w http.ResponseWriter, r *http.Request) {
	var req verifyReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Code == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "email and code are required"})
		return
	}
	if err := h.Users.VerifyEmail(r.Context(), req.Email, req.Code); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "email verified"})
}

type emailReq struct {
	Email string `json:"email"`
}

func (h *AuthHandler) resendVerification(w http.ResponseWriter, r *http.Request) {
	var req emailReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "email is required"})
		return
	}
	if err := h.Users.ResendVerification(r.Context(), req.Email); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "verification code resent"})
}

func (h *AuthHandler) forgotPassword(w http.ResponseWriter, r *http.Request) {
	var req emailReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "email is required"})
		return
	}
	if err := h.Users.ForgotPassword(r.Context(), req.Email); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "password reset email sent"})
}

type resetPasswordReq struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

func (h *AuthHandler) resetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Token == "" || len(req.Password) < 8 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "token and a password of at least 8 characters are required"})
		return
	}
	if err := h.Users.ResetPassword(r.Context(), req.Token, req.Password); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "password reset successful"})
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Password == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "email and password are required"})
		return
	}
	u, err := h.Users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	token, err := auth.Mint(h.JWTSecret, u.ID, u.Role)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"token": token, "user": u})
}
