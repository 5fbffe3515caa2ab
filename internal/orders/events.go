package orders

import (
	"encoding/json"
	"time"
)

// Live events broadcast to connected admin/rider dashboards.
const (
	EventNewOrder        = "new_order"
	EventPaymentVerified = "payment_verified"
	EventStatusUpdate    = "status_update"
	EventOrderAssigned   = "order_assigned"
	EventDeliveryUpdate  = "delivery_update"
)

// Kafka topic carrying notification requests from the API to the notifier.
const TopicNotifications = "orders.notifications"

const EventNotificationRequested = "NotificationRequested"

type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"`
	CorrelationID string          `json:"correlation_id,omitempty"` // usually order_id
	Payload       json.RawMessage `json:"payload"`
}

type NotificationRequest struct {
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Name     string `json:"name"`
	OrderRef string `json:"order_ref"`
	Status   string `json:"status"`
	Note     string `json:"note,omitempty"`
}

// PartitionKey keeps every event of one order on the same partition so the
// notifier sees them in order.
func PartitionKey(orderID string) []byte { return []byte(orderID) }
