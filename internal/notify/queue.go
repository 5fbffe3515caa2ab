package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"

	"github.com/ollanpharmacy/pharmacy-api/internal/kafkax"
	"github.com/ollanpharmacy/pharmacy-api/internal/orders"
	"github.com/ollanpharmacy/pharmacy-api/internal/redisx"
)

// QueuePublisher implements the engine's Notifier by enqueueing the request
// for the notifier worker instead of sending inline. Publishing never blocks
// the order flow.
type QueuePublisher struct {
	Producer *kafkax.Producer
	Service  string
}

func (q *QueuePublisher) SendStatusUpdate(ctx context.Context, n orders.NotificationRequest) {
	env := orders.Envelope{
		EventID:       uuid.NewString(),
		EventType:     orders.EventNotificationRequested,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      q.Service,
		CorrelationID: n.OrderRef,
		Payload:       kafkax.MustMarshal(n),
	}
	q.Producer.Publish(orders.PartitionKey(n.OrderRef), kafkax.MustMarshal(env),
		kafkago.Header{Key: "x-event-type", Value: []byte(orders.EventNotificationRequested)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}

// Handler consumes notification requests in the worker. Sends are one attempt:
// a channel failure is logged by the dispatcher and the offset commits anyway,
// so nothing is retried.
func Handler(rdb *redis.Client, d *Dispatcher, service string) kafkax.Handler {
	return func(ctx context.Context, m kafkago.Message) error {
		var env orders.Envelope
		if err := json.Unmarshal(m.Value, &env); err != nil {
			return err
		}
		if env.EventType != orders.EventNotificationRequested {
			return nil
		}

		dkey := fmt.Sprintf(redisx.KeyDedup, service, env.EventID)
		if exists, _ := redisx.Exists(ctx, rdb, dkey); exists {
			return nil
		}
		_ = rdb.Set(ctx, dkey, "1", redisx.TTLDedup).Err()

		n, err := kafkax.UnwrapPayload[orders.NotificationRequest](env.Payload)
		if err != nil {
			log.Printf("bad notification payload event=%s: %v", env.EventID, err)
			return nil
		}
		d.SendStatusUpdate(ctx, n)
		return nil
	}
}
