package server

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const writeWait = 2 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The server binds to localhost by default and serves its own page.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Hub fans run events out to connected websocket clients.
type Hub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
	logger  logrus.FieldLogger
}

// NewHub creates an empty Hub.
func NewHub(logger logrus.FieldLogger) *Hub {
	return &Hub{
		clients: make(map[*websocket.Conn]struct{}),
		logger:  logger,
	}
}

func (h *Hub) add(ws *websocket.Conn) {
	h.mu.Lock()
	h.clients[ws] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) remove(ws *websocket.Conn) {
	h.mu.Lock()
	delete(h.clients, ws)
	h.mu.Unlock()
	_ = ws.Close()
}

// Count returns the number of connected clients.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// BroadcastJSON sends v to every client, dropping clients that fail to
// accept it in time.
func (h *Hub) BroadcastJSON(v any) {
	b, err := json.Marshal(v)
	if err != nil {
		h.logger.WithError(err).Error("Failed to encode websocket event")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for ws := range h.clients {
		_ = ws.SetWriteDeadline(time.Now().Add(writeWait))
		if err := ws.WriteMessage(websocket.TextMessage, b); err != nil {
			_ = ws.Close()
			delete(h.clients, ws)
		}
	}
}

func (h *Hub) handle(c *gin.Context) {
	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	// Written before registering so it never races a broadcast.
	_ = ws.WriteJSON(Event{Type: EventWelcome, At: time.Now().UTC()})

	h.add(ws)
	h.logger.Debug("Websocket client connected")

	// Incoming messages are ignored; reading detects disconnects.
	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			break
		}
	}

	h.remove(ws)
	h.logger.Debug("Websocket client disconnected")
}
