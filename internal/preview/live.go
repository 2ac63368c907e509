package preview

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/vango-dev/tinyvue/pkg/metrics"
)

// MessageType represents the type of live message.
type MessageType string

const (
	MessageRender MessageType = "render"
	MessageError  MessageType = "error"
)

// Message is sent to browsers via WebSocket.
type Message struct {
	Type  MessageType `json:"type"`
	HTML  string      `json:"html,omitempty"`
	Error string      `json:"error,omitempty"`
}

const writeTimeout = 5 * time.Second

// client is one live connection. Writes are serialized per connection.
type client struct {
	id   string
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) send(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

// Live manages WebSocket connections for live preview.
type Live struct {
	clients  map[*client]struct{}
	mu       sync.RWMutex
	upgrader websocket.Upgrader
	metrics  *metrics.Collector
	logger   *slog.Logger
}

// NewLive creates a live connection manager. m may be nil.
func NewLive(m *metrics.Collector, logger *slog.Logger) *Live {
	if logger == nil {
		logger = slog.Default()
	}
	return &Live{
		clients: make(map[*client]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // Allow all origins in preview
			},
		},
		metrics: m,
		logger:  logger,
	}
}

// Handle upgrades the request and keeps the connection until the client
// goes away. hello, when non-nil, returns the first message for the new
// client; it runs after the client is registered, so no render can be
// missed between the two.
func (l *Live) Handle(w http.ResponseWriter, r *http.Request, hello func() Message) {
	conn, err := l.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	c := &client{id: uuid.Must(uuid.NewV7()).String(), conn: conn}
	l.add(c)
	defer l.remove(c)

	if hello != nil {
		data, err := json.Marshal(hello())
		if err == nil && c.send(data) != nil {
			return
		}
	}

	// Keep connection alive until client disconnects
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (l *Live) add(c *client) {
	l.mu.Lock()
	l.clients[c] = struct{}{}
	n := len(l.clients)
	l.mu.Unlock()

	if l.metrics != nil {
		l.metrics.RecordClientConnect()
	}
	l.logger.Info("preview: client connected", "client", c.id, "clients", n)
}

func (l *Live) remove(c *client) {
	l.mu.Lock()
	_, ok := l.clients[c]
	delete(l.clients, c)
	l.mu.Unlock()

	if !ok {
		return
	}
	c.conn.Close()
	if l.metrics != nil {
		l.metrics.RecordClientDisconnect()
	}
	l.logger.Info("preview: client disconnected", "client", c.id)
}

// BroadcastRender pushes html to every client.
func (l *Live) BroadcastRender(html string) {
	l.broadcast(Message{Type: MessageRender, HTML: html})
}

// BroadcastError pushes an error to every client.
func (l *Live) BroadcastError(msg string) {
	l.broadcast(Message{Type: MessageError, Error: msg})
}

// broadcast sends a message to all connected clients.
func (l *Live) broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}

	l.mu.RLock()
	clients := make([]*client, 0, len(l.clients))
	for c := range l.clients {
		clients = append(clients, c)
	}
	l.mu.RUnlock()

	sent := 0
	for _, c := range clients {
		if err := c.send(data); err != nil {
			l.logger.Debug("preview: dropping client", "client", c.id, "error", err)
			l.remove(c)
			continue
		}
		sent++
	}
	if l.metrics != nil {
		l.metrics.RecordBroadcast(sent)
	}
}

// ClientCount returns the number of connected clients.
func (l *Live) ClientCount() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.clients)
}

// Close closes all client connections.
func (l *Live) Close() {
	l.mu.RLock()
	clients := make([]*client, 0, len(l.clients))
	for c := range l.clients {
		clients = append(clients, c)
	}
	l.mu.RUnlock()

	for _, c := range clients {
		l.remove(c)
	}
}
