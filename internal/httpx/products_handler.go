package httpx

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ollanpharmacy/pharmacy-api/internal/auth"
	"github.com/ollanpharmacy/pharmacy-api/internal/catalog"
	"github.com/ollanpharmacy/pharmacy-api/internal/users"
)

type ProductsHandler struct {
	Repo      *catalog.Repo
	UploadDir string
}

// RegisterPublic exposes the read-only catalog.
func (h *ProductsHandler) RegisterPublic(r chi.Router) {
	r.Get("/products", h.list)
	r.Get("/products/{id}", h.get)
}

// RegisterAdmin exposes catalog mutations; callers are already authenticated.
func (h *ProductsHandler) RegisterAdmin(r chi.Router) {
	admin := r.With(auth.RequireRole(users.RoleAdmin))
	admin.Post("/products", h.create)
	admin.Put("/products/{id}", h.update)
	admin.Delete("/products/{id}", h.delete)
	admin.Post("/products/{id}/image", h.uploadImage)
}

func (h *ProductsHandler) list(w http.ResponseWriter, r *http.Request) {
	ps, err := h.Repo.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ps)
}

func (h *ProductsHandler) get(w http.ResponseWriter, r *http.Request) {
	p, err := h.Repo.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

type productReq struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int    `json:"price"`
	Stock       int    `json:"stock"`
	Category    string `json:"category"`
	ImageURL    string `json:"image_url"`
}

func (req *productReq) valid() bool {
	return req.Name != "" && req.Price > 0 && req.Stock >= 0
}

func (h *ProductsHandler) create(w http.ResponseWriter, r *http.Request) {
	var req productReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || !req.valid() {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name, positive price and non-negative stock are required"})
		return
	}
	p := catalog.Product{
		Name: req.Name, Description: req.Description, Price: req.Price,
		Stock: req.Stock, Category: req.Category, ImageURL: req.ImageURL,
	}
	if err := h.Repo.Create(r.Context(), &p); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *ProductsHandler) update(w http.ResponseWriter, r *http.Request) {
	var req productReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || !req.valid() {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name, positive price and non-negative stock are required"})
		return
	}
	p := catalog.Product{
		ID:   chi.URLParam(r, "id"),
		Name: req.Name, Description: req.Description, Price: req.Price,
		Stock: req.Stock, Category: req.Category, ImageURL: req.ImageURL,
	}
	if err := h.Repo.Update(r.Context(), &p); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *ProductsHandler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Repo.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "product deleted"})
}

func (h *ProductsHandler) uploadImage(w http.ResponseWriter, r *http.Request) {
	url, err := saveUpload(r, "image", h.UploadDir)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if err := h.Repo.SetImageURL(r.Context(), chi.URLParam(r, "id"), url); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"image_url": url})
}
