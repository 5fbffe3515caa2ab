package httpx

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ollanpharmacy/pharmacy-api/internal/auth"
	"github.com/ollanpharmacy/pharmacy-api/internal/orders"
	"github.com/ollanpharmacy/pharmacy-api/internal/users"
)

type OrdersHandler struct {
	Engine    *orders.Engine
	UploadDir string
}

func (h *OrdersHandler) Register(r chi.Router) {
	r.Post("/orders", h.create)
	r.Post("/orders/upload-prescription", h.uploadPrescription)
	r.Post("/orders/verify-payment", h.verifyPayment)
	r.Get("/orders/mine", h.mine)

	admin := r.With(auth.RequireRole(users.RoleAdmin))
	admin.Get("/orders", h.all)
	admin.Get("/orders/admin", h.adminList)
	admin.Post("/orders/status", h.updateStatus)
	admin.Post("/orders/assign", h.assign)
	admin.Get("/riders", h.riders)

	rider := r.With(auth.RequireRole(users.RoleRider))
	rider.Get("/orders/rider", h.riderList)
	rider.Post("/orders/delivery-status", h.updateDeliveryStatus)
}

type createOrderReq struct {
	Customer        orders.CustomerInfo `json:"customer_info"`
	DeliveryFee     *int                `json:"delivery_fee"`
	PrescriptionURL string              `json:"prescription_url"`
}

func (h *OrdersHandler) create(w http.ResponseWriter, r *http.Request) {
	var req createOrderReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if req.DeliveryFee == nil {
		writeError(w, orders.ErrMissingFields)
		return
	}
	u, _ := auth.UserFrom(r.Context())

	o, err := h.Engine.CreateOrder(r.Context(), u, orders.CreateOrderInput{
		Customer:        req.Customer,
		DeliveryFee:     *req.DeliveryFee,
		PrescriptionURL: req.PrescriptionURL,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"message": "order created", "order": o})
}

func (h *OrdersHandler) uploadPrescription(w http.ResponseWriter, r *http.Request) {
	url, err := saveUpload(r, "prescription", h.UploadDir)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"prescription_url": url})
}

type verifyPaymentReq struct {
	OrderID   string `json:"order_id"`
	Reference string `json:"reference"`
	Note      string `json:"note"`
}

func (h *OrdersHandler) verifyPayment(w http.ResponseWriter, r *http.Request) {
	var req verifyPaymentReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.OrderID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "order id is required"})
		return
	}
	u, _ := auth.UserFrom(r.Context())

	o, err := h.Engine.VerifyPayment(r.Context(), u, req.OrderID, req.Reference, req.Note)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "payment verified", "order": o})
}

func (h *OrdersHandler) mine(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.UserFrom(r.Context())
	list, err := h.Engine.GetUserOrders(r.Context(), u.Email)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *OrdersHandler) all(w http.ResponseWriter, r *http.Request) {
	list, err := h.Engine.GetAllOrders(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *OrdersHandler) adminList(w http.ResponseWriter, r *http.Request) {
	list, err := h.Engine.GetAdminOrders(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

type updateStatusReq struct {
	OrderID string `json:"order_id"`
	Action  string `json:"action"`
}

func (h *OrdersHandler) updateStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.OrderID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "order id is required"})
		return
	}
	u, _ := auth.UserFrom(r.Context())

	o, err := h.Engine.UpdateOrderStatus(r.Context(), u, req.OrderID, req.Action)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "order " + req.Action + "ed", "order": o})
}

type assignReq struct {
	OrderID string `json:"order_id"`
	RiderID string `json:"rider_id"`
}

func (h *OrdersHandler) assign(w http.ResponseWriter, r *http.Request) {
	var req assignReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.OrderID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "order id is required"})
		return
	}
	u, _ := auth.UserFrom(r.Context())

	o, err := h.Engine.AssignOrder(r.Context(), u, req.OrderID, req.RiderID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "order assigned", "order": o})
}

type deliveryStatusReq struct {
	OrderID        string `json:"order_id"`
	DeliveryStatus string `json:"delivery_status"`
}

func (h *OrdersHandler) updateDeliveryStatus(w http.ResponseWriter, r *http.Request) {
	var req deliveryStatusReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.OrderID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "order id is required"})
		return
	}
	u, _ := auth.UserFrom(r.Context())

	o, err := h.Engine.UpdateDeliveryStatus(r.Context(), u, req.OrderID, orders.DeliveryStatus(req.DeliveryStatus))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "delivery status updated", "order": o})
}

func (h *OrdersHandler) riderList(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.UserFrom(r.Context())
	list, err := h.Engine.GetRiderOrders(r.Context(), u.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *OrdersHandler) riders(w http.ResponseWriter, r *http.Request) {
	list, err := h.Engine.GetRiders(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}
