package realtime

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Event types pushed to connected clients.
const (
	EventMenuUpdate     = "menu_update"
	EventOrderUpdate    = "order_update"
	EventSettingsUpdate = "settings_update"
	EventKitchenUpdate  = "kitchen_update"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub fans change notifications out to every connected websocket client
// (menu pages, the kitchen dashboard, admin tabs). It is constructed once
// in main and passed down; there is no package-level instance.
type Hub struct {
	mu       sync.Mutex
	clients  map[*websocket.Conn]string // conn -> role
	log      *logrus.Logger
	upgrader websocket.Upgrader
}

func NewHub(log *logrus.Logger) *Hub {
	return &Hub{
		clients: make(map[*websocket.Conn]string),
		log:     log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

func (h *Hub) Register(conn *websocket.Conn, role string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[conn] = role
}

func (h *Hub) Unregister(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, conn)
	conn.Close()
}

// ClientCount is used by tests and the health endpoint.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *Hub) BroadcastMenuUpdate(data interface{}) {
	h.broadcast(Message{Event: EventMenuUpdate, Data: data})
}

func (h *Hub) BroadcastOrderUpdate(data interface{}) {
	h.broadcast(Message{Event: EventOrderUpdate, Data: data})
}

func (h *Hub) BroadcastSettingsUpdate(data interface{}) {
	h.broadcast(Message{Event: EventSettingsUpdate, Data: data})
}

func (h *Hub) BroadcastKitchenUpdate(data interface{}) {
	h.broadcast(Message{Event: EventKitchenUpdate, Data: data})
}

func (h *Hub) broadcast(msg Message) {
	h.mu.Lock()
	defer h.mu.Unlock()

	data, err := json.Marshal(msg)
	if err != nil {
		h.log.Errorf("marshal broadcast message: %v", err)
		return
	}

	for conn, role := range h.clients {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			h.log.Errorf("send to %s client: %v", role, err)
			continue
		}
	}
}

// ServeWS upgrades the request and keeps the connection registered until
// the client goes away. Incoming frames are drained and ignored; the
// channel is push-only.
func (h *Hub) ServeWS(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Errorf("websocket upgrade: %v", err)
		return
	}

	role := c.Query("role")
	if role == "" {
		role = "customer"
	}
	h.Register(conn, role)

	go func() {
		defer h.Unregister(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
