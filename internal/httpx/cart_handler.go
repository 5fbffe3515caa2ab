package httpx

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ollanpharmacy/pharmacy-api/internal/auth"
	"github.com/ollanpharmacy/pharmacy-api/internal/cart"
)

type CartHandler struct {
	Carts *cart.Repo
}

func (h *CartHandler) Register(r chi.Router) {
	r.Get("/cart", h.get)
	r.Post("/cart/items", h.add)
	r.Delete("/cart/items/{productID}", h.remove)
}

func (h *CartHandler) get(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.UserFrom(r.Context())
	c, err := h.Carts.Get(r.Context(), u.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	if c == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "cart not found"})
		return
	}
	writeJSON(w, http.StatusOK, c)
}

type addItemReq struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

func (h *CartHandler) add(w http.ResponseWriter, r *http.Request) {
	var req addItemReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ProductID == "" || req.Quantity < 1 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "product id and quantity (minimum 1) are required"})
		return
	}
	u, _ := auth.UserFrom(r.Context())
	if err := h.Carts.Add(r.Context(), u.ID, req.ProductID, req.Quantity); err != nil {
		writeError(w, err)
		return
	}
	c, err := h.Carts.Get(r.Context(), u.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "product added to cart", "cart": c})
}

func (h *CartHandler) remove(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.UserFrom(r.Context())
	if err := h.Carts.Remove(r.Context(), u.ID, chi.URLParam(r, "productID")); err != nil {
		writeError(w, err)
		return
	}
	c, err := h.Carts.Get(r.Context(), u.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "product removed from cart", "cart": c})
}
