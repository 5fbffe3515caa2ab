package orders

import "time"

// CustomerInfo is captured verbatim at order creation and never re-derived
// from the user record, so the order survives later profile edits.
type CustomerInfo struct {
	Name              string `json:"name"`
	Email             string `json:"email"`
	Phone             string `json:"phone"`
	Address           string `json:"address,omitempty"`
	City              string `json:"city,omitempty"`
	State             string `json:"state,omitempty"`
	DeliveryOption    string `json:"delivery_option"`
	PickupLocation    string `json:"pickup_location"`
	EstimatedDelivery string `json:"estimated_delivery"`
}

// LineItem snapshots quantity and unit price at order time; immutable after
// creation.
type LineItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Price     int    `json:"price"`
}

type Order struct {
	ID               string         `json:"id"`
	UserID           string         `json:"user_id"`
	Items            []LineItem     `json:"items"`
	Customer         CustomerInfo   `json:"customer_info"`
	DeliveryFee      int            `json:"delivery_fee"`
	TotalAmount      int            `json:"total_amount"`
	PrescriptionURL  string         `json:"prescription_url,omitempty"`
	PaymentReference string         `json:"payment_reference"`
	PaymentNote      string         `json:"payment_note,omitempty"`
	Status           Status         `json:"status"`
	DeliveryStatus   DeliveryStatus `json:"delivery_status"`
	RiderID          string         `json:"rider_id,omitempty"`
	RiderName        string         `json:"rider_name,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

// ShortRef is the customer-facing order reference used in notifications.
func ShortRef(orderID string) string {
	if len(orderID) <= 6 {
		return orderID
	}
	return orderID[len(orderID)-6:]
}

func (o *Order) Subtotal() int {
	sum := 0
	for _, it := range o.Items {
		sum += it.Price * it.Quantity
	}
	return sum
}
