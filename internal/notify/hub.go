package notify

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// client is a single connected websocket listener.
type client struct {
	conn    *websocket.Conn
	send    chan []byte
	closing sync.Once
}

// Hub fans notification events out to connected websocket clients. It
// implements Publisher. A slow client that cannot drain its send buffer is
// disconnected rather than blocking the broadcast.
type Hub struct {
	mu      sync.RWMutex
	clients map[*client]struct{}
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{clients: make(map[*client]struct{})}
}

// Publish serializes the event and queues it on every connected client.
func (h *Hub) Publish(event Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("Error marshaling notification event: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		select {
		case c.send <- payload:
		default:
			go h.remove(c)
		}
	}
}

// ClientCount returns the number of currently connected listeners.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// HandleConnection upgrades the request to a websocket and registers the
// client with the hub until the connection drops.
func (h *Hub) HandleConnection(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Websocket upgrade failed: %v", err)
		return
	}

	c := &client{
		conn: conn,
		send: make(chan []byte, 16),
	}

	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()

	go h.writePump(c)
	go h.readPump(c)
}

func (h *Hub) remove(c *client) {
	c.closing.Do(func() {
		h.mu.Lock()
		delete(h.clients, c)
		h.mu.Unlock()
		close(c.send)
		c.conn.Close()
	})
}

func (h *Hub) readPump(c *client) {
	defer h.remove(c)
	for {
		// Inbound messages are ignored; the read loop only detects
		// disconnects.
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writePump(c *client) {
	for payload := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			h.remove(c)
			return
		}
	}
}
