package kafkax

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
)

type Producer struct {
	w         *kafka.Writer
	inbox     chan kafka.Message
	closeCh   chan struct{}
	closeOnce sync.Once
}

func NewProducer(brokers []string, topic string, buf int) *Producer {
	return &Producer{
		w: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
			Async:        true,
		},
		inbox:   make(chan kafka.Message, buf),
		closeCh: make(chan struct{}),
	}
}

func (p *Producer) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				// Close() may already have shut the inbox; the once guard
				// makes both shutdown paths safe to overlap.
				p.Close()
				for m := range p.inbox {
					p.write(m)
				}
				_ = p.w.Close()
				close(p.closeCh)
				return
			case m, ok := <-p.inbox:
				if !ok {
					_ = p.w.Close()
					close(p.closeCh)
					return
				}
				p.write(m)
			}
		}
	}()
}

func (p *Producer) write(m kafka.Message) {
	if err := p.w.WriteMessages(context.Background(), m); err != nil {
		log.Printf("kafka write: %v", err)
	}
}

// Publish never blocks the caller path: if the inbox is full the message is
// dropped and logged, matching the best-effort contract of the queue.
func (p *Producer) Publish(key, value []byte, headers ...kafka.Header) {
	m := kafka.Message{
		Key:     key,
		Value:   value,
		Time:    time.Now(),
		Headers: headers,
	}
	select {
	case p.inbox <- m:
	default:
		log.Printf("kafka producer inbox full, dropping message key=%s", key)
	}
}

// Close the inbox so the loop flushes remaining messages and exits. Idempotent,
// and safe to combine with context cancellation in either order.
func (p *Producer) Close() { p.closeOnce.Do(func() { close(p.inbox) }) }

// WaitClosed blocks until the loop has drained and closed the writer.
func (p *Producer) WaitClosed() { <-p.closeCh }
