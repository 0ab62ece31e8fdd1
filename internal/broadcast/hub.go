package broadcast

import (
	"context"
	"sync"

	"github.com/vogiaan1904/ticketbottle-counter/pkg/logger"
)

// Message types pushed to observers.
const (
	TypeInit   = "init"
	TypeUpdate = "update"
)

type Client struct {
	ID   string
	Kind string
	Send chan []byte
}

func NewClient(id, kind string, buffer int) *Client {
	if buffer < 1 {
		buffer = 1
	}
	return &Client{ID: id, Kind: kind, Send: make(chan []byte, buffer)}
}

// Hub fans payloads out to every registered client. A client whose buffer is
// full loses its oldest queued payload so the newest snapshot always lands.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client
	l       logger.Logger
}

func NewHub(l logger.Logger) *Hub {
	return &Hub{clients: make(map[string]*Client), l: l}
}

func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[client.ID] = client
}

// Unregister removes the client and closes its channel. Calling it twice is
// safe.
func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[client.ID]; !ok {
		return
	}
	delete(h.clients, client.ID)
	close(client.Send)
}

func (h *Hub) Broadcast(payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, client := range h.clients {
		h.deliver(client, payload)
	}
}

func (h *Hub) deliver(client *Client, payload []byte) {
	select {
	case client.Send <- payload:
		return
	default:
	}
	select {
	case <-client.Send:
		h.l.Warn(context.Background(), "Dropped stale snapshot for slow observer",
			"client_id", client.ID,
			"kind", client.Kind,
		)
	default:
	}
	select {
	case client.Send <- payload:
	default:
		h.l.Warn(context.Background(), "Dropped snapshot for slow observer",
			"client_id", client.ID,
			"kind", client.Kind,
		)
	}
}

func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close unregisters every client.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, client := range h.clients {
		delete(h.clients, id)
		close(client.Send)
	}
}
