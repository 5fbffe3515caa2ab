package notify

import (
	"context"
	"fmt"
	"log"

	"github.com/ollanpharmacy/pharmacy-api/internal/orders"
)

// Dispatcher fans a status update out to the configured channels. Every
// channel is one attempt with its own failure handling; nothing propagates
// back to the order flow.
type Dispatcher struct {
	Email    *EmailSender
	WhatsApp *WhatsAppSender
}

// StatusMessage renders the customer-facing text for a status change.
func StatusMessage(name, orderRef, status, note string) string {
	switch status {
	case "processing":
		return fmt.Sprintf("Hi %s! Your order #%s is being processed. We'll notify you once it's ready.", name, orderRef)
	case "accepted":
		return fmt.Sprintf("Great news %s! Your order #%s has been accepted and is being prepared.", name, orderRef)
	case "rejected":
		return fmt.Sprintf("Sorry %s, your order #%s has been rejected. %s", name, orderRef, note)
	case "en_route":
		return fmt.Sprintf("Your order #%s is on the way! Our rider will deliver it shortly.", orderRef)
	case "delivered":
		return fmt.Sprintf("Your order #%s has been delivered successfully. Thank you for choosing us!", orderRef)
	}
	return fmt.Sprintf("Order #%s status updated to: %s", orderRef, status)
}

func (d *Dispatcher) SendStatusUpdate(ctx context.Context, n orders.NotificationRequest) {
	msg := StatusMessage(n.Name, n.OrderRef, n.Status, n.Note)
	subject := fmt.Sprintf("Ollan Pharmacy: Order #%s Update", n.OrderRef)

	if d.Email != nil && n.Email != "" {
		if err := d.Email.Send(ctx, n.Email, subject, msg); err != nil {
			log.Printf("email notification to %s failed: %v", n.Email, err)
		}
	}
	if d.WhatsApp != nil && n.Phone != "" {
		if err := d.WhatsApp.SendText(ctx, n.Phone, msg); err != nil {
			log.Printf("whatsapp notification to %s failed: %v", n.Phone, err)
		}
	}
}
