package broadcast

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	sendBufferSize = 32
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type event struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub fans order events out to every connected dashboard client. Delivery is
// at-most-once: a client whose send buffer is full is dropped and must
// reconcile through a full query after reconnecting.
type Hub struct {
	mu      sync.Mutex
	clients map[*client]struct{}
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*client]struct{})}
}

// Publish marshals {event, data} and hands it to every client. Never blocks.
func (h *Hub) Publish(eventType string, data any) {
	msg, err := json.Marshal(event{Event: eventType, Data: data})
	if err != nil {
		log.Printf("broadcast marshal: %v", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
			delete(h.clients, c)
			close(c.send)
		}
	}
}

func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// ServeWS upgrades the request and keeps the connection registered until the
// peer goes away.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	c := &client{conn: conn, send: make(chan []byte, sendBufferSize)}

	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()

	go c.writePump()
	c.readPump(h)
}

func (h *Hub) drop(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

func (c *client) writePump() {
	defer c.conn.Close()
	for msg := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
	_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}

// readPump discards inbound frames; clients are listen-only. It returns when
// the connection errors or closes.
func (c *client) readPump(h *Hub) {
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			h.drop(c)
			c.conn.Close()
			return
		}
	}
}
