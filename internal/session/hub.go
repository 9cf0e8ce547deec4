package session

import (
	"log/slog"
	"sync"

	"github.com/coder/websocket"
)

// Hub tracks live clients for lifecycle and shutdown. Boards are
// per-connection, so unlike a collaborative hub there is no room fanout;
// the hub's job is knowing who is connected and closing everyone out on
// stop.
type Hub struct {
	mu         sync.RWMutex
	clients    map[string]*Client // clientID -> client
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		case <-h.done:
			h.closeAll()
			return
		}
	}
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Stop disconnects all clients and ends the run loop.
func (h *Hub) Stop() {
	close(h.done)
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	h.clients[client.ClientID] = client
	h.mu.Unlock()

	client.SendWelcome()
	client.SendState(0)

	slog.Info("client connected", "client", client.ClientID, "board", client.Session.BoardID)
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	_, ok := h.clients[client.ClientID]
	if ok {
		delete(h.clients, client.ClientID)
		close(client.send)
	}
	h.mu.Unlock()
	if !ok {
		return
	}

	slog.Info("client disconnected", "client", client.ClientID, "board", client.Session.BoardID)
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, client := range h.clients {
		client.conn.Close(websocket.StatusGoingAway, "server shutting down")
		delete(h.clients, id)
	}
}
