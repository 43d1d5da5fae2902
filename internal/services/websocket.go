package services

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // admin console origins are enforced by the CORS layer
	},
}

// Client is one connected admin browser tab.
type Client struct {
	AdminID uint
	Conn    *websocket.Conn
	Send    chan []byte
	Hub     *Hub
}

// Hub maintains the set of connected admin tabs and fans booking change events
// out to all of them.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	mutex      sync.RWMutex
	logger     *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte),
		logger:     logger,
	}
}

// Run starts the hub loop.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mutex.Lock()
			h.clients[client] = true
			h.mutex.Unlock()
			h.logger.Info("admin tab connected", zap.Uint("adminId", client.AdminID))

		case client := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
			}
			h.mutex.Unlock()
			h.logger.Info("admin tab disconnected", zap.Uint("adminId", client.AdminID))

		case message := <-h.broadcast:
			h.mutex.Lock()
			for client := range h.clients {
				select {
				case client.Send <- message:
				default:
					close(client.Send)
					delete(h.clients, client)
				}
			}
			h.mutex.Unlock()
		}
	}
}

// Broadcast queues a message for every connected tab.
func (h *Hub) Broadcast(message []byte) {
	h.broadcast <- message
}

// ConnectedClients returns the number of connected tabs.
func (h *Hub) ConnectedClients() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}

// HandleWebSocket upgrades the request and attaches the tab to the hub.
func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request, adminID uint) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	client := &Client{
		AdminID: adminID,
		Conn:    conn,
		Send:    make(chan []byte, 256),
		Hub:     h,
	}

	h.register <- client

	go client.writePump()
	go client.readPump()
}

// readPump drains the connection; the admin feed is one-way, so inbound frames
// are discarded and the loop exists only to detect disconnects.
func (c *Client) readPump() {
	defer func() {
		c.Hub.unregister <- c
		c.Conn.Close()
	}()

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.Hub.logger.Warn("websocket read error", zap.Error(err))
			}
			break
		}
	}
}

// writePump pumps messages from the hub to the connection.
func (c *Client) writePump() {
	defer c.Conn.Close()

	for message := range c.Send {
		if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			c.Hub.logger.Warn("websocket write error", zap.Error(err))
			return
		}
	}
	c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
}
